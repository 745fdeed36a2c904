package ui

import (
	"github.com/csams/chatmark/internal/markup"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// dialogRect centers a dialog of the wanted size, shrinking it to the screen
func dialogRect(s tcell.Screen, width, height int) (x, y, w, h int) {
	sw, sh := s.Size()
	w, h = width, height
	if w > sw-2 {
		w = sw - 2
	}
	if h > sh-2 {
		h = sh - 2
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return (sw - w) / 2, (sh - h) / 2, w, h
}

// drawDialogFrame fills the box with bg and draws a single-line border
func drawDialogFrame(s tcell.Screen, startX, startY, width, height int, style tcell.Style) {
	for y := startY; y < startY+height; y++ {
		for x := startX; x < startX+width; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}

	for x := startX; x < startX+width; x++ {
		switch x {
		case startX:
			s.SetContent(x, startY, '┌', nil, style)
			s.SetContent(x, startY+height-1, '└', nil, style)
		case startX + width - 1:
			s.SetContent(x, startY, '┐', nil, style)
			s.SetContent(x, startY+height-1, '┘', nil, style)
		default:
			s.SetContent(x, startY, '─', nil, style)
			s.SetContent(x, startY+height-1, '─', nil, style)
		}
	}
	for y := startY + 1; y < startY+height-1; y++ {
		s.SetContent(startX, y, '│', nil, style)
		s.SetContent(startX+width-1, y, '│', nil, style)
	}
}

// drawCentered draws text centered within [startX, startX+width)
func drawCentered(s tcell.Screen, startX, y, width int, style tcell.Style, text string) {
	x := startX + (width-runewidth.StringWidth(text))/2
	if x < startX {
		x = startX
	}
	drawText(s, x, y, style, text)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	pos := 0
	for _, r := range text {
		s.SetContent(x+pos, y, r, nil, style)
		pos += max(runewidth.RuneWidth(r), 1)
	}
}

// drawMarkup draws text with its markup rendered in display mode, wrapped
// inside the w x h box. It returns the number of lines used.
func drawMarkup(s tcell.Screen, x, y, w, h int, base tcell.Style, text string) int {
	res := markup.Scan(text, markup.DisplayStripMarkers)
	st := styledText{
		runes:       []rune(res.Text),
		attrs:       res.Attributes(),
		base:        base,
		markerColor: ColorMarker,
	}
	st.draw(s, x, y, w, h, 0)
	return min(textLines(st.runes, w), h)
}
