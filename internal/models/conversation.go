package models

import "sync"

// Conversation is the ordered list of sent messages, oldest first
type Conversation struct {
	mu       sync.RWMutex
	messages []*Message
	limit    int
}

// NewConversation creates a conversation keeping at most limit messages.
// A limit of 0 keeps everything.
func NewConversation(limit int) *Conversation {
	if limit < 0 {
		limit = 0
	}
	return &Conversation{limit: limit}
}

// Add appends a message, dropping the oldest ones past the limit. Every
// call appends, even when msg repeats an earlier message.
func (c *Conversation) Add(msg *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
	if c.limit > 0 && len(c.messages) > c.limit {
		c.messages = append([]*Message(nil), c.messages[len(c.messages)-c.limit:]...)
	}
}

// Remove deletes the oldest message with the given ID
func (c *Conversation) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.messages {
		if m.ID == id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every message
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// Messages returns a snapshot of the messages
func (c *Conversation) Messages() []*Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
