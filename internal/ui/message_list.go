package ui

import (
	"strings"

	"github.com/csams/chatmark/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// MessageList draws the conversation as right aligned bubbles anchored to
// the bottom of its box. Each bubble shows the message in display mode.
type MessageList struct {
	conversation *models.Conversation
	searchState  *SearchState
	markerColor  tcell.Color

	// scroll counts the lines hidden below the box
	scroll     int
	lastHeight int
	lastTotal  int
}

// visibleMessage is a message that passed the search filter
type visibleMessage struct {
	msg       *models.Message
	positions []int
}

func NewMessageList(conversation *models.Conversation, searchState *SearchState, markerColor tcell.Color) *MessageList {
	return &MessageList{
		conversation: conversation,
		searchState:  searchState,
		markerColor:  markerColor,
	}
}

func (m *MessageList) GetSearchState() *SearchState {
	return m.searchState
}

// Visible returns the messages that match the current search, oldest first
func (m *MessageList) Visible() []*models.Message {
	vis := m.visible()
	msgs := make([]*models.Message, len(vis))
	for i, v := range vis {
		msgs[i] = v.msg
	}
	return msgs
}

func (m *MessageList) visible() []visibleMessage {
	var out []visibleMessage
	for _, msg := range m.conversation.Messages() {
		ok, res := m.searchState.MatchMessage(msg.PlainText())
		if !ok {
			continue
		}
		out = append(out, visibleMessage{msg: msg, positions: res.Positions})
	}
	return out
}

// ScrollUp shows older messages
func (m *MessageList) ScrollUp(lines int) {
	m.scroll = clamp(m.scroll+lines, 0, max(m.lastTotal-m.lastHeight, 0))
}

// ScrollDown shows newer messages
func (m *MessageList) ScrollDown(lines int) {
	m.scroll = clamp(m.scroll-lines, 0, max(m.lastTotal-m.lastHeight, 0))
}

// ScrollToBottom shows the newest message
func (m *MessageList) ScrollToBottom() {
	m.scroll = 0
}

// bubble is the laid out form of one message
type bubble struct {
	vm     visibleMessage
	runes  []rune
	inner  int // text width inside the bubble
	lines  int
	height int // text lines, timestamp and gap
}

// layout sizes every bubble for a list of width w
func (m *MessageList) layout(w int) []bubble {
	maxInner := max(w*3/4-2, 1)
	var bubbles []bubble
	for _, vm := range m.visible() {
		text := vm.msg.PlainText()
		natural := 1
		for _, line := range strings.Split(text, "\n") {
			natural = max(natural, lineWidth(line))
		}
		inner := min(natural, maxInner)
		runes := []rune(text)
		lines := textLines(runes, inner)
		bubbles = append(bubbles, bubble{
			vm:     vm,
			runes:  runes,
			inner:  inner,
			lines:  lines,
			height: lines + 2,
		})
	}
	return bubbles
}

// Draw renders the list into the w x h box at (x, y)
func (m *MessageList) Draw(s tcell.Screen, x, y, w, h int) {
	if w < 4 || h < 1 {
		return
	}
	bubbles := m.layout(w)

	total := 0
	for _, b := range bubbles {
		total += b.height
	}
	m.lastTotal, m.lastHeight = total, h
	m.scroll = clamp(m.scroll, 0, max(total-h, 0))

	if len(bubbles) == 0 {
		msg := "No messages yet"
		if len(m.searchState.query) > 0 {
			msg = "No messages match the search"
		}
		drawCentered(s, x, y+h/2, w, tcell.StyleDefault.Foreground(ColorFgDark), msg)
		return
	}

	// top is the first virtual row shown; negative when everything fits
	top := total - h - m.scroll
	row := 0
	for _, b := range bubbles {
		sy := y + row - top
		row += b.height
		if sy+b.height <= y || sy >= y+h {
			continue
		}
		m.drawBubble(s, b, x, sy, w, y, y+h)
	}
}

// drawBubble draws b with its top at row sy, clipped to rows [clipTop, clipBottom)
func (m *MessageList) drawBubble(s tcell.Screen, b bubble, x, sy, w, clipTop, clipBottom int) {
	bubbleStyle := tcell.StyleDefault.Background(ColorBubble).Foreground(ColorFg)
	bx := x + w - b.inner - 3

	for r := 0; r < b.lines; r++ {
		if sy+r < clipTop || sy+r >= clipBottom {
			continue
		}
		for cx := bx; cx < bx+b.inner+2; cx++ {
			s.SetContent(cx, sy+r, ' ', nil, bubbleStyle)
		}
	}

	highlight := make(map[int]bool, len(b.vm.positions))
	for _, p := range b.vm.positions {
		highlight[p] = true
	}
	res := b.vm.msg.Rendered()
	st := styledText{
		runes:       b.runes,
		attrs:       res.Attributes(),
		base:        bubbleStyle,
		markerColor: m.markerColor,
		highlight:   highlight,
	}
	skip := max(clipTop-sy, 0)
	rows := min(b.lines-skip, clipBottom-(sy+skip))
	if rows > 0 {
		st.draw(s, bx+1, sy+skip, b.inner, rows, skip)
	}

	tagY := sy + b.lines
	if tagY >= clipTop && tagY < clipBottom {
		tag := b.vm.msg.SentAt.Format("15:04")
		drawText(s, bx+b.inner+2-runewidth.StringWidth(tag), tagY, tcell.StyleDefault.Foreground(ColorBubbleTag), tag)
	}
}
