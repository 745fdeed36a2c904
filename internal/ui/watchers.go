package ui

// TextWatcher receives the change notifications of a text surface. Offsets
// are rune indices into the raw text.
type TextWatcher interface {
	// BeforeTextChanged is called before count runes at start are replaced
	// by after new runes; text is the old content.
	BeforeTextChanged(text string, start, count, after int)
	// OnTextChanged is called once before runes at start were replaced by
	// count new runes; text is the new content.
	OnTextChanged(text string, start, before, count int)
	// AfterTextChanged is called once the surface has settled, after any
	// markup formatting has been applied.
	AfterTextChanged(text string)
}

// TextWatcherFuncs adapts plain functions to TextWatcher. Nil fields are
// skipped.
type TextWatcherFuncs struct {
	Before func(text string, start, count, after int)
	On     func(text string, start, before, count int)
	After  func(text string)
}

func (f TextWatcherFuncs) BeforeTextChanged(text string, start, count, after int) {
	if f.Before != nil {
		f.Before(text, start, count, after)
	}
}

func (f TextWatcherFuncs) OnTextChanged(text string, start, before, count int) {
	if f.On != nil {
		f.On(text, start, before, count)
	}
}

func (f TextWatcherFuncs) AfterTextChanged(text string) {
	if f.After != nil {
		f.After(text)
	}
}

// WatcherID identifies a registration so it can be removed again
type WatcherID uint64

type watcherEntry struct {
	id      WatcherID
	watcher TextWatcher
}

// watcherRegistry fans notifications out to watchers in registration order
type watcherRegistry struct {
	entries []watcherEntry
	nextID  WatcherID
}

func (r *watcherRegistry) add(w TextWatcher) WatcherID {
	r.nextID++
	r.entries = append(r.entries, watcherEntry{id: r.nextID, watcher: w})
	return r.nextID
}

func (r *watcherRegistry) remove(id WatcherID) bool {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *watcherRegistry) len() int {
	return len(r.entries)
}

// snapshot lets a watcher remove itself while being notified
func (r *watcherRegistry) snapshot() []watcherEntry {
	return append([]watcherEntry(nil), r.entries...)
}

func (r *watcherRegistry) sendBeforeTextChanged(text string, start, count, after int) {
	for _, e := range r.snapshot() {
		e.watcher.BeforeTextChanged(text, start, count, after)
	}
}

func (r *watcherRegistry) sendOnTextChanged(text string, start, before, count int) {
	for _, e := range r.snapshot() {
		e.watcher.OnTextChanged(text, start, before, count)
	}
}

func (r *watcherRegistry) sendAfterTextChanged(text string) {
	for _, e := range r.snapshot() {
		e.watcher.AfterTextChanged(text)
	}
}
