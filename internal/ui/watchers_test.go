package ui

import (
	"testing"
)

func TestWatcherRegistryRemoveDuringNotify(t *testing.T) {
	var r watcherRegistry
	var calls []string
	var selfID WatcherID

	selfID = r.add(TextWatcherFuncs{After: func(string) {
		calls = append(calls, "self")
		r.remove(selfID)
	}})
	r.add(TextWatcherFuncs{After: func(string) {
		calls = append(calls, "other")
	}})

	r.sendAfterTextChanged("x")
	r.sendAfterTextChanged("y")

	want := []string{"self", "other", "other"}
	if len(calls) != len(want) {
		t.Fatalf("Expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, calls)
			break
		}
	}
	if r.len() != 1 {
		t.Errorf("Expected 1 watcher left, got %d", r.len())
	}
}

func TestTextWatcherFuncsNilFields(t *testing.T) {
	var w TextWatcher = TextWatcherFuncs{}
	w.BeforeTextChanged("", 0, 0, 0)
	w.OnTextChanged("", 0, 0, 0)
	w.AfterTextChanged("")
}
