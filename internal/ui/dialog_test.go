package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestConfirmationDialogAnswers(t *testing.T) {
	tests := []struct {
		name    string
		key     *tcell.EventKey
		wantYes bool
		wantNo  bool
	}{
		{"y confirms", tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone), true, false},
		{"Y confirms", tcell.NewEventKey(tcell.KeyRune, 'Y', tcell.ModNone), true, false},
		{"n declines", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), false, true},
		{"escape declines", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var yes, no bool
			d := NewConfirmationDialog()
			d.Show("Title", "Sure?", func() { yes = true }, func() { no = true })

			if !d.HandleKey(tt.key) {
				t.Fatal("Expected key to be consumed")
			}
			if yes != tt.wantYes || no != tt.wantNo {
				t.Errorf("Expected yes=%v no=%v, got yes=%v no=%v", tt.wantYes, tt.wantNo, yes, no)
			}
			if d.IsVisible() {
				t.Error("Expected dialog hidden after answering")
			}
		})
	}
}

func TestConfirmationDialogConsumesOtherKeys(t *testing.T) {
	d := NewConfirmationDialog()
	if d.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("Expected hidden dialog to ignore keys")
	}

	d.Show("Title", "Sure?", nil, nil)
	if !d.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("Expected visible dialog to consume keys")
	}
	if !d.IsVisible() {
		t.Error("Expected dialog to stay open on unrelated keys")
	}
}

func TestConfirmationDialogCallbackMayReopen(t *testing.T) {
	d := NewConfirmationDialog()
	d.Show("First", "one", func() {
		d.Show("Second", "two", nil, nil)
	}, nil)

	d.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))

	if !d.IsVisible() || d.title != "Second" {
		t.Errorf("Expected the second dialog open, got visible=%v title=%q", d.IsVisible(), d.title)
	}
}

func TestConfirmationDialogDrawsMarkup(t *testing.T) {
	s := newTestScreen(t, 60, 20)
	d := NewConfirmationDialog()
	d.Show("Clear", "*all*", nil, nil)
	d.Draw(s)

	// 50x8 dialog centered at (5, 6); message starts at (7, 9)
	r, _, style, _ := s.GetContent(7, 9)
	if r != 'a' {
		t.Fatalf("Expected markers stripped from the message, got %q", r)
	}
	if _, _, attr := style.Decompose(); attr&tcell.AttrBold == 0 {
		t.Error("Expected bold message text")
	}
}

func TestHelpDialogScroll(t *testing.T) {
	h := NewHelpDialog()
	h.Show()
	h.visibleLines = 5

	h.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	h.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if h.scrollOffset != 2 {
		t.Errorf("Expected scroll offset 2, got %d", h.scrollOffset)
	}

	h.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	if want := len(h.getHelpContent()) - 5; h.scrollOffset != want {
		t.Errorf("Expected scroll offset %d, got %d", want, h.scrollOffset)
	}
	h.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if want := len(h.getHelpContent()) - 5; h.scrollOffset != want {
		t.Errorf("Expected scroll to stop at %d, got %d", want, h.scrollOffset)
	}

	h.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if h.IsVisible() {
		t.Error("Expected Escape to close the help dialog")
	}
}
