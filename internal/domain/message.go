package domain

import (
	"strings"
	"time"
)

// UnknownSender is used when a message arrives without a sender name.
const UnknownSender = "Unknown"

type Message struct {
	ID        string
	From      string
	Email     string
	Subject   string
	Body      string
	Folder    Folder
	Category  string
	Read      bool
	CreatedAt time.Time
	Labels    []string
}

// HasDate reports whether the message carries a timestamp worth rendering.
func (m *Message) HasDate() bool {
	return !m.CreatedAt.IsZero()
}

// Sender returns the display form of the sender, "Name <email>" when both are known.
func (m *Message) Sender() string {
	switch {
	case m.Email == "":
		return m.From
	case m.From == "" || m.From == UnknownSender:
		return m.Email
	default:
		return m.From + " <" + m.Email + ">"
	}
}

// Initials returns up to two uppercase initials of the sender name.
func (m *Message) Initials() string {
	return initials(m.From)
}

func initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			if len(out) == 2 {
				break
			}
			start = false
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return strings.ToUpper(string(out))
}
