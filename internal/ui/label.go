package ui

import (
	"github.com/csams/chatmark/internal/markup"
	"github.com/gdamore/tcell/v2"
)

// Label is a read-only text surface. Its markup is formatted in display
// mode as soon as the text changes, with the markers stripped.
type Label struct {
	text     string
	result   markup.Result
	attrs    []markup.Attr
	watchers watcherRegistry
	style    tcell.Style
}

func NewLabel(text string, style tcell.Style) *Label {
	l := &Label{style: style}
	l.apply(text)
	return l
}

func (l *Label) AddTextWatcher(w TextWatcher) WatcherID {
	return l.watchers.add(w)
}

func (l *Label) RemoveTextWatcher(id WatcherID) bool {
	return l.watchers.remove(id)
}

// Text returns the raw text including markers
func (l *Label) Text() string {
	return l.text
}

// Displayed returns the text as drawn, with the markers stripped
func (l *Label) Displayed() string {
	return l.result.Text
}

// SetText replaces the text and formats it at once
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	old := l.text
	oldLen, newLen := len([]rune(old)), len([]rune(text))

	l.watchers.sendBeforeTextChanged(old, 0, oldLen, newLen)
	l.text = text
	l.watchers.sendOnTextChanged(text, 0, oldLen, newLen)
	l.apply(text)
	l.watchers.sendAfterTextChanged(text)
}

func (l *Label) apply(text string) {
	l.text = text
	l.result = markup.Scan(text, markup.DisplayStripMarkers)
	l.attrs = l.result.Attributes()
}

// Draw renders the label into the w x h box
func (l *Label) Draw(s tcell.Screen, x, y, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	st := styledText{
		runes:       []rune(l.result.Text),
		attrs:       l.attrs,
		base:        l.style,
		markerColor: ColorMarker,
	}
	st.draw(s, x, y, w, h, 0)
}
