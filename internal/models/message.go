package models

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/csams/chatmark/internal/markup"
)

// Message is a sent chat message. Text keeps the raw markup the user typed.
type Message struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`

	// Display rendering, computed once on first use
	renderOnce sync.Once
	rendered   markup.Result
}

// GenerateMessageID creates an ID for a message based on its text and send
// time. Two sends of the same text in the same instant share an ID.
func GenerateMessageID(text string, sentAt time.Time) string {
	h := sha256.New()
	h.Write([]byte(text + sentAt.Format(time.RFC3339Nano)))
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// NewMessage creates a message stamped with sentAt
func NewMessage(text string, sentAt time.Time) *Message {
	return &Message{
		ID:     GenerateMessageID(text, sentAt),
		Text:   text,
		SentAt: sentAt,
	}
}

// Rendered returns the message scanned for display, with markers stripped
func (m *Message) Rendered() markup.Result {
	m.renderOnce.Do(func() {
		m.rendered = markup.Scan(m.Text, markup.DisplayStripMarkers)
	})
	return m.rendered
}

// PlainText returns the message as displayed, without marker glyphs
func (m *Message) PlainText() string {
	return m.Rendered().Text
}
