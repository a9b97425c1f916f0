package app

import (
	"time"
)

// Message is a status line that expires ttl after it was created. Expiry is
// checked on read; nothing clears it.
type Message struct {
	text    string
	created time.Time
	ttl     time.Duration
}

// NewMessage returns a Message created at the given time.
func NewMessage(text string, created time.Time, ttl time.Duration) *Message {
	return &Message{text: text, created: created, ttl: ttl}
}

// Text returns the message, or false once it has expired. A nil Message has
// no text.
func (m *Message) Text(now time.Time) (string, bool) {
	if m == nil || now.Sub(m.created) >= m.ttl {
		return "", false
	}
	return m.text, true
}
