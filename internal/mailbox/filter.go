// Package mailbox derives what the message list shows from the loaded
// messages and the navigation selection.
package mailbox

import (
	"strings"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// Filter returns the messages visible under sel, in input order. A folder
// selection takes precedence over a category selection; with neither set
// every message is kept. unreadOnly additionally drops read messages.
// The result is never nil.
func Filter(msgs []domain.Message, sel Selection, unreadOnly bool) []domain.Message {
	out := make([]domain.Message, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		switch {
		case sel.Folder != domain.FolderNone:
			if m.Folder != sel.Folder {
				continue
			}
		case sel.Category != "":
			if m.Category != sel.Category {
				continue
			}
		}
		if unreadOnly && m.Read {
			continue
		}
		out = append(out, *m)
	}
	return out
}

// Search keeps messages whose sender, address, subject or body contains
// query, ignoring case. An empty query returns msgs unchanged.
func Search(msgs []domain.Message, query string) []domain.Message {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return msgs
	}
	out := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		if containsFold(m.From, q) || containsFold(m.Email, q) ||
			containsFold(m.Subject, q) || containsFold(m.Body, q) {
			out = append(out, m)
		}
	}
	return out
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// UnreadCount returns how many of msgs are unread.
func UnreadCount(msgs []domain.Message) int {
	n := 0
	for _, m := range msgs {
		if !m.Read {
			n++
		}
	}
	return n
}

// FolderCounts returns the number of messages filed under each folder.
func FolderCounts(msgs []domain.Message) map[domain.Folder]int {
	counts := make(map[domain.Folder]int, len(domain.Folders))
	for _, m := range msgs {
		if m.Folder != domain.FolderNone {
			counts[m.Folder]++
		}
	}
	return counts
}
