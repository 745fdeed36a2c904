package ui

import (
	"github.com/gdamore/tcell/v2"
)

// ConfirmationDialog asks a yes/no question. The message may carry markup.
type ConfirmationDialog struct {
	visible bool
	title   string
	message string
	onYes   func()
	onNo    func()
}

func NewConfirmationDialog() *ConfirmationDialog {
	return &ConfirmationDialog{
		visible: false,
	}
}

func (c *ConfirmationDialog) Show(title, message string, onYes, onNo func()) {
	c.visible = true
	c.title = title
	c.message = message
	c.onYes = onYes
	c.onNo = onNo
}

func (c *ConfirmationDialog) Hide() {
	c.visible = false
	c.title = ""
	c.message = ""
	c.onYes = nil
	c.onNo = nil
}

func (c *ConfirmationDialog) IsVisible() bool {
	return c.visible
}

func (c *ConfirmationDialog) Draw(s tcell.Screen) {
	if !c.visible {
		return
	}

	startX, startY, dialogWidth, dialogHeight := dialogRect(s, 50, 8)

	dialogStyle := tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite)
	drawDialogFrame(s, startX, startY, dialogWidth, dialogHeight, dialogStyle)

	titleStyle := dialogStyle.Foreground(tcell.ColorYellow).Bold(true)
	drawCentered(s, startX, startY+1, dialogWidth, titleStyle, c.title)

	// Message rows stop above the buttons
	if rows := dialogHeight - 5; rows > 0 {
		drawMarkup(s, startX+2, startY+3, max(dialogWidth-4, 1), rows, dialogStyle, c.message)
	}

	buttonStyle := dialogStyle.Bold(true)
	buttonsY := startY + dialogHeight - 2
	drawText(s, startX+dialogWidth/2-6, buttonsY, buttonStyle, "[Y]es")
	drawText(s, startX+dialogWidth/2+2, buttonsY, buttonStyle, "[N]o")
}

func (c *ConfirmationDialog) HandleKey(ev *tcell.EventKey) bool {
	if !c.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		c.answer(false)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'y', 'Y':
			c.answer(true)
		case 'n', 'N':
			c.answer(false)
		}
	}

	return true // Consume all other keys when visible
}

// answer hides the dialog before running the callback so the callback may
// open a new dialog
func (c *ConfirmationDialog) answer(yes bool) {
	fn := c.onNo
	if yes {
		fn = c.onYes
	}
	c.Hide()
	if fn != nil {
		fn()
	}
}
