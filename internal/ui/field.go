package ui

import (
	"context"
	"slices"
	"time"

	"github.com/csams/chatmark/internal/markup"
	"github.com/gdamore/tcell/v2"
	"pkt.systems/pslog"
)

// DefaultFormatDelay is how long the field waits after the last edit
// before re-scanning its markup
const DefaultFormatDelay = 220 * time.Millisecond

// FieldOptions configures a MarkupField
type FieldOptions struct {
	// Text is the initial content, formatted at once when non-empty
	Text        string
	FormatDelay time.Duration
	MarkerColor tcell.Color
	// Post runs fn on the goroutine that owns the field. The debounced
	// format is delivered through it. Nil runs fn in place.
	Post func(fn func())
	// Placeholder is shown dimmed while the field is empty
	Placeholder string
	Logger      pslog.Logger
}

// MarkupField is an editable text surface that styles its own markup.
// Edits are applied at once; the markup is re-scanned in edit mode once
// typing pauses, with marker glyphs kept and dimmed.
//
// The field is not safe for concurrent use. Everything except the
// debounce timer runs on the goroutine that owns it.
type MarkupField struct {
	raw   []rune
	attrs []markup.Attr

	// Selection ends; equal when there is only a cursor
	anchor int
	cursor int

	watchers   watcherRegistry
	suppressed int
	debouncer  *Debouncer
	post       func(fn func())

	// Display preview of the current text
	preview       bool
	previewResult markup.Result
	previewCursor int

	markerColor tcell.Color
	placeholder string
	scroll      int
	logger      pslog.Logger
}

// NewMarkupField creates a field. A field created with text is formatted
// immediately.
func NewMarkupField(opts FieldOptions) *MarkupField {
	f := &MarkupField{
		post:        opts.Post,
		markerColor: opts.MarkerColor,
		placeholder: opts.Placeholder,
		logger:      opts.Logger,
	}
	if f.post == nil {
		f.post = func(fn func()) { fn() }
	}
	if f.markerColor == tcell.ColorDefault {
		f.markerColor = ColorMarker
	}
	if f.logger == nil {
		f.logger = pslog.Ctx(context.Background())
	}
	delay := opts.FormatDelay
	if delay <= 0 {
		delay = DefaultFormatDelay
	}
	f.debouncer = NewDebouncer(delay, func() {
		f.post(f.Format)
	})

	if opts.Text != "" {
		f.raw = []rune(opts.Text)
		f.attrs = make([]markup.Attr, len(f.raw))
		f.cursor = len(f.raw)
		f.anchor = f.cursor
		f.Format()
	}
	return f
}

// AddTextWatcher registers w. Watchers are notified in registration order.
func (f *MarkupField) AddTextWatcher(w TextWatcher) WatcherID {
	return f.watchers.add(w)
}

// RemoveTextWatcher unregisters a watcher, reporting whether it was known
func (f *MarkupField) RemoveTextWatcher(id WatcherID) bool {
	return f.watchers.remove(id)
}

func (f *MarkupField) Text() string {
	return string(f.raw)
}

// Len returns the length of the text in runes
func (f *MarkupField) Len() int {
	return len(f.raw)
}

// Attributes returns a copy of the per-rune style attributes
func (f *MarkupField) Attributes() []markup.Attr {
	return slices.Clone(f.attrs)
}

// Selection returns the selected rune range as start <= end
func (f *MarkupField) Selection() (start, end int) {
	return min(f.anchor, f.cursor), max(f.anchor, f.cursor)
}

// Cursor returns the rune index of the cursor
func (f *MarkupField) Cursor() int {
	return f.cursor
}

// SetSelection selects [start, end), clamping both ends to the text.
// The cursor goes to end.
func (f *MarkupField) SetSelection(start, end int) {
	f.anchor = clamp(start, 0, len(f.raw))
	f.cursor = clamp(end, 0, len(f.raw))
}

// SetText replaces the whole content as an edit, so watchers are notified
// and a format is scheduled
func (f *MarkupField) SetText(text string) {
	f.leavePreview()
	f.replace(0, len(f.raw), []rune(text))
}

// Clear empties the field and formats it at once
func (f *MarkupField) Clear() {
	f.SetText("")
	f.Flush()
}

// Format re-scans the text in edit mode and swaps in the result with change
// notifications suppressed. The selection is restored afterwards, then
// watchers get AfterTextChanged.
func (f *MarkupField) Format() {
	res := markup.Scan(string(f.raw), markup.EditPreserveMarkers)
	anchor, cursor := f.anchor, f.cursor

	f.withoutNotifications(func() {
		f.replace(0, len(f.raw), []rune(res.Text))
		f.attrs = res.Attributes()
	})

	f.SetSelection(anchor, cursor)
	f.logger.Trace("markup formatted", "len", res.Len(), "spans", len(res.Spans))
	f.watchers.sendAfterTextChanged(res.Text)
}

// Flush runs a pending format now, on the caller's goroutine
func (f *MarkupField) Flush() {
	if f.debouncer.IsPending() {
		f.debouncer.Cancel()
		f.Format()
	}
}

// FormatPending reports whether a format is scheduled
func (f *MarkupField) FormatPending() bool {
	return f.debouncer.IsPending()
}

// Close cancels a scheduled format
func (f *MarkupField) Close() {
	f.debouncer.Cancel()
}

// withoutNotifications runs fn with watcher notifications and format
// scheduling switched off
func (f *MarkupField) withoutNotifications(fn func()) {
	f.suppressed++
	defer func() { f.suppressed-- }()
	fn()
}

func (f *MarkupField) notifying() bool {
	return f.suppressed == 0
}

// replace swaps raw[start:end] for insert and leaves the cursor after the
// inserted runes. Inserted runes are unstyled until the next format.
func (f *MarkupField) replace(start, end int, insert []rune) {
	start = clamp(start, 0, len(f.raw))
	end = clamp(end, start, len(f.raw))
	before := end - start

	if f.notifying() {
		f.watchers.sendBeforeTextChanged(string(f.raw), start, before, len(insert))
	}

	f.raw = slices.Concat(f.raw[:start:start], insert, f.raw[end:])
	f.attrs = slices.Concat(f.attrs[:start:start], make([]markup.Attr, len(insert)), f.attrs[end:])
	f.cursor = start + len(insert)
	f.anchor = f.cursor

	if f.notifying() {
		f.watchers.sendOnTextChanged(string(f.raw), start, before, len(insert))
		f.debouncer.Call()
	}
}

// Insert replaces the selection with text
func (f *MarkupField) Insert(text string) {
	start, end := f.Selection()
	f.replace(start, end, []rune(text))
}

// deleteBackward removes the selection, or the rune before the cursor
func (f *MarkupField) deleteBackward() {
	start, end := f.Selection()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	f.replace(start, end, nil)
}

// deleteForward removes the selection, or the rune after the cursor
func (f *MarkupField) deleteForward() {
	start, end := f.Selection()
	if start == end {
		if end == len(f.raw) {
			return
		}
		end++
	}
	f.replace(start, end, nil)
}

// moveTo places the cursor at pos, extending the selection when extend is set
func (f *MarkupField) moveTo(pos int, extend bool) {
	f.cursor = clamp(pos, 0, len(f.raw))
	if !extend {
		f.anchor = f.cursor
	}
}

func (f *MarkupField) lineStart(pos int) int {
	for pos > 0 && f.raw[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (f *MarkupField) lineEnd(pos int) int {
	for pos < len(f.raw) && f.raw[pos] != '\n' {
		pos++
	}
	return pos
}

// Previewing reports whether the field shows its display preview
func (f *MarkupField) Previewing() bool {
	return f.preview
}

// TogglePreview switches between the editable text and a read-only display
// preview with the markers stripped. The cursor is carried across through
// the preview's position map.
func (f *MarkupField) TogglePreview() {
	if f.preview {
		f.leavePreview()
		return
	}
	f.Flush()
	f.previewResult = markup.Scan(string(f.raw), markup.DisplayStripMarkers)
	f.previewCursor = f.previewResult.Positions.OriginalToConverted(f.cursor)
	f.preview = true
	f.scroll = 0
}

func (f *MarkupField) leavePreview() {
	if !f.preview {
		return
	}
	f.preview = false
	f.moveTo(f.previewResult.Positions.ConvertedToOriginal(f.previewCursor), false)
	f.scroll = 0
}

// HandleKey applies an editing key. It returns false for keys the field
// does not use.
func (f *MarkupField) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlP {
		f.TogglePreview()
		return true
	}
	if f.preview {
		if f.handlePreviewKey(ev) {
			return true
		}
		if ev.Key() == tcell.KeyEscape {
			f.leavePreview()
			return true
		}
		f.leavePreview()
	}

	extend := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyRune:
		f.Insert(string(ev.Rune()))
	case tcell.KeyEnter:
		if ev.Modifiers()&tcell.ModAlt == 0 {
			return false
		}
		f.Insert("\n")
	case tcell.KeyTab:
		f.Insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.deleteBackward()
	case tcell.KeyDelete:
		f.deleteForward()
	case tcell.KeyLeft:
		if start, _ := f.Selection(); !extend && f.anchor != f.cursor {
			f.moveTo(start, false)
		} else {
			f.moveTo(f.cursor-1, extend)
		}
	case tcell.KeyRight:
		if _, end := f.Selection(); !extend && f.anchor != f.cursor {
			f.moveTo(end, false)
		} else {
			f.moveTo(f.cursor+1, extend)
		}
	case tcell.KeyHome:
		f.moveTo(f.lineStart(f.cursor), extend)
	case tcell.KeyEnd:
		f.moveTo(f.lineEnd(f.cursor), extend)
	case tcell.KeyCtrlA:
		f.SetSelection(0, len(f.raw))
	case tcell.KeyCtrlU:
		f.replace(f.lineStart(f.cursor), f.cursor, nil)
	default:
		return false
	}
	return true
}

// handlePreviewKey moves the preview cursor. The preview is read-only.
func (f *MarkupField) handlePreviewKey(ev *tcell.EventKey) bool {
	n := f.previewResult.Len()
	switch ev.Key() {
	case tcell.KeyLeft:
		f.previewCursor = clamp(f.previewCursor-1, 0, n)
	case tcell.KeyRight:
		f.previewCursor = clamp(f.previewCursor+1, 0, n)
	case tcell.KeyHome:
		f.previewCursor = 0
	case tcell.KeyEnd:
		f.previewCursor = n
	default:
		return false
	}
	return true
}

// content returns what the field currently shows
func (f *MarkupField) content() (runes []rune, attrs []markup.Attr, cursor int) {
	if f.preview {
		return []rune(f.previewResult.Text), f.previewResult.Attributes(), f.previewCursor
	}
	return f.raw, f.attrs, f.cursor
}

// Lines returns the number of screen lines the content needs at width
func (f *MarkupField) Lines(width int) int {
	runes, _, _ := f.content()
	return lineCount(runes, width)
}

// Draw renders the field into the w x h box and places the terminal cursor
func (f *MarkupField) Draw(s tcell.Screen, x, y, w, h int) {
	if w < 1 || h < 1 {
		return
	}
	base := tcell.StyleDefault.Foreground(ColorFg)
	runes, attrs, cursor := f.content()

	if len(runes) == 0 && f.placeholder != "" {
		drawText(s, x, y, base.Foreground(ColorFgDark).Italic(true), f.placeholder)
		s.ShowCursor(x, y)
		return
	}

	st := styledText{
		runes:       runes,
		attrs:       attrs,
		base:        base,
		markerColor: f.markerColor,
	}
	if !f.preview {
		st.selStart, st.selEnd = f.Selection()
	}

	// Keep the cursor row inside the box
	pos := layoutRunes(runes, w)
	row := pos[cursor].y
	if row < f.scroll {
		f.scroll = row
	} else if row >= f.scroll+h {
		f.scroll = row - h + 1
	}

	st.draw(s, x, y, w, h, f.scroll)
	s.ShowCursor(x+pos[cursor].x, y+row-f.scroll)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
