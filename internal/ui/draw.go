package ui

import (
	"github.com/csams/chatmark/internal/markup"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// tabStop is the column multiple a tab advances to
const tabStop = 4

// tabCells returns the cells a tab at column x takes on a line of width
// cells. A tab never wraps on its own; it is cut at the right edge.
func tabCells(x, width int) int {
	return min(tabStop-x%tabStop, max(width-x, 1))
}

// cellPos is the screen offset of a rune relative to the drawing origin
type cellPos struct {
	x, y int
}

// layoutRunes wraps text at width cells and at newlines. It returns the
// offset of every rune plus the offset just past the last one, where a
// cursor at the end of the text goes.
func layoutRunes(text []rune, width int) []cellPos {
	if width < 1 {
		width = 1
	}
	pos := make([]cellPos, len(text)+1)
	x, y := 0, 0
	for i, r := range text {
		if r == '\n' {
			pos[i] = cellPos{x, y}
			x, y = 0, y+1
			continue
		}
		if r == '\t' {
			if x >= width {
				x, y = 0, y+1
			}
			pos[i] = cellPos{x, y}
			x += tabCells(x, width)
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x > 0 && x+w > width {
			x, y = 0, y+1
		}
		pos[i] = cellPos{x, y}
		x += w
	}
	if x >= width {
		x, y = 0, y+1
	}
	pos[len(text)] = cellPos{x, y}
	return pos
}

// lineCount returns the number of screen lines text needs at width
func lineCount(text []rune, width int) int {
	pos := layoutRunes(text, width)
	return pos[len(pos)-1].y + 1
}

// lineWidth returns the cells one unwrapped line of text takes
func lineWidth(line string) int {
	x := 0
	for _, r := range line {
		if r == '\t' {
			x += tabStop - x%tabStop
			continue
		}
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

// textLines returns the number of lines the runes occupy at width, not
// counting a cursor parked past the last one
func textLines(text []rune, width int) int {
	if len(text) == 0 {
		return 1
	}
	pos := layoutRunes(text, width)
	return pos[len(text)-1].y + 1
}

// styledText is a block of text ready to be drawn
type styledText struct {
	runes       []rune
	attrs       []markup.Attr
	base        tcell.Style
	markerColor tcell.Color
	// highlight marks runes that matched a search
	highlight map[int]bool
	// selection is a half-open rune range drawn reversed
	selStart, selEnd int
}

// draw renders the block into the w x h box at (x, y), skipping the first
// scroll lines. It returns the layout so callers can place a cursor.
func (st styledText) draw(s tcell.Screen, x, y, w, h, scroll int) []cellPos {
	width := max(w, 1)
	pos := layoutRunes(st.runes, width)
	for i, r := range st.runes {
		p := pos[i]
		row := p.y - scroll
		if row < 0 || row >= h || r == '\n' {
			continue
		}

		style := st.base
		if i < len(st.attrs) {
			style = styleForAttr(st.base, st.attrs[i], st.markerColor)
		}
		if st.highlight[i] {
			style = style.Foreground(ColorHighlight).Bold(true)
		}
		if i >= st.selStart && i < st.selEnd {
			style = style.Reverse(true)
		}
		if r == '\t' {
			for c := range tabCells(p.x, width) {
				s.SetContent(x+p.x+c, y+row, ' ', nil, style)
			}
			continue
		}
		s.SetContent(x+p.x, y+row, r, nil, style)
	}
	return pos
}
