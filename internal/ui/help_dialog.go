package ui

import (
	"github.com/gdamore/tcell/v2"
)

type HelpDialog struct {
	visible      bool
	scrollOffset int
	visibleLines int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{
		visible:      false,
		visibleLines: 15,
	}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	helpLines := h.getHelpContent()
	startX, startY, dialogWidth, dialogHeight := dialogRect(s, 64, len(helpLines)+6)

	dialogStyle := tcell.StyleDefault.Background(ColorBgDark).Foreground(ColorFg)
	drawDialogFrame(s, startX, startY, dialogWidth, dialogHeight, dialogStyle)

	titleStyle := dialogStyle.Foreground(ColorYellow).Bold(true)
	drawCentered(s, startX, startY+1, dialogWidth, titleStyle, "Help - Keybindings")

	// Content rows sit between the title and the footer
	contentStartY := startY + 3
	h.visibleLines = max(dialogHeight-5, 1)
	contentWidth := max(dialogWidth-4, 1)
	for i := 0; i < h.visibleLines && i+h.scrollOffset < len(helpLines); i++ {
		drawMarkup(s, startX+2, contentStartY+i, contentWidth, 1, dialogStyle, helpLines[i+h.scrollOffset])
	}

	footerStyle := dialogStyle.Foreground(ColorFgDark)
	footer := "Press Esc or F1 to close this help dialog"
	if len(helpLines) > h.visibleLines {
		footer = "Up/Down to scroll, Esc to close"
	}
	drawCentered(s, startX, startY+dialogHeight-2, dialogWidth, footerStyle, footer)
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF1:
		h.Hide()
	case tcell.KeyUp:
		h.scrollUp()
	case tcell.KeyDown:
		h.scrollDown()
	case tcell.KeyHome:
		h.scrollOffset = 0
	case tcell.KeyEnd:
		h.scrollOffset = h.maxScroll()
	}

	return true // Consume all other keys when visible
}

// getHelpContent returns the help text, written in the markup it documents
func (h *HelpDialog) getHelpContent() []string {
	return []string{
		"*Markup:*",
		"  Wrap words in * for *bold*, _ for _italic_, ~ for ~strike~.",
		"  A marker without a partner on the same line stays as typed.",
		"",
		"*Compose:*",
		"  Enter         Send message",
		"  Alt+Enter     Insert newline",
		"  Ctrl+P        Toggle _preview_ of the message",
		"  Shift+arrows  Extend selection",
		"  Ctrl+A        Select all",
		"",
		"*History:*",
		"  PgUp/PgDn     Scroll sent messages",
		"  Ctrl+F        Fuzzy search sent messages (from the selection)",
		"  Ctrl+L        Clear conversation",
		"",
		"*Other:*",
		"  F1            Show this help dialog",
		"  Esc           Close dialogs / leave search",
		"  Ctrl+C        Quit",
	}
}

func (h *HelpDialog) maxScroll() int {
	return max(len(h.getHelpContent())-h.visibleLines, 0)
}

// scrollUp scrolls the help content up by one line
func (h *HelpDialog) scrollUp() {
	if h.scrollOffset > 0 {
		h.scrollOffset--
	}
}

// scrollDown scrolls the help content down by one line
func (h *HelpDialog) scrollDown() {
	if h.scrollOffset < h.maxScroll() {
		h.scrollOffset++
	}
}
