package cli

import (
	"time"

	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/layout"
	"github.com/lu-zhengda/mailpane/internal/mailbox"
)

// ---------------------------------------------------------------------------
// Message JSON type (list)
// ---------------------------------------------------------------------------

type jsonMessage struct {
	ID        string   `json:"id"`
	From      string   `json:"from"`
	Email     string   `json:"email,omitempty"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Folder    string   `json:"folder,omitempty"`
	Category  string   `json:"category,omitempty"`
	Read      bool     `json:"read"`
	CreatedAt string   `json:"created_at,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

func toJSONMessages(msgs []domain.Message) []jsonMessage {
	out := make([]jsonMessage, 0, len(msgs))
	for i := range msgs {
		out = append(out, toJSONMessage(&msgs[i]))
	}
	return out
}

func toJSONMessage(m *domain.Message) jsonMessage {
	j := jsonMessage{
		ID:       m.ID,
		From:     m.From,
		Email:    m.Email,
		Subject:  m.Subject,
		Body:     m.Body,
		Folder:   string(m.Folder),
		Category: m.Category,
		Read:     m.Read,
		Labels:   m.Labels,
	}
	if m.HasDate() {
		j.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}
	return j
}

// ---------------------------------------------------------------------------
// Category JSON type (categories)
// ---------------------------------------------------------------------------

type jsonCategory struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

func toJSONCategories(cats []mailbox.CategoryCount) []jsonCategory {
	out := make([]jsonCategory, 0, len(cats))
	for _, c := range cats {
		out = append(out, jsonCategory{Name: c.Name, Label: c.Label(), Count: c.Count})
	}
	return out
}

// ---------------------------------------------------------------------------
// Account JSON type (accounts)
// ---------------------------------------------------------------------------

type jsonAccount struct {
	Label string `json:"label,omitempty"`
	Email string `json:"email,omitempty"`
}

func toJSONAccounts(accounts []domain.Account) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, jsonAccount{Label: a.Label, Email: a.Email})
	}
	return out
}

// ---------------------------------------------------------------------------
// Layout JSON type (layout show)
// ---------------------------------------------------------------------------

type jsonLayout struct {
	Sizes     [3]float64 `json:"sizes"`
	Collapsed bool       `json:"collapsed"`
	Width     int        `json:"width"`
	Columns   [3]int     `json:"columns"`
}

func toJSONLayout(l layout.Layout, width int, columns [3]int) jsonLayout {
	return jsonLayout{
		Sizes:     l.Sizes,
		Collapsed: l.Collapsed,
		Width:     width,
		Columns:   columns,
	}
}

// ---------------------------------------------------------------------------
// Action JSON type (layout reset)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK     bool   `json:"ok"`
	Action string `json:"action"`
}
