package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// Messages emitted by inboxModel.

type messageSelectedMsg struct {
	id string
}

// inboxModel is the middle pane: title, All/Unread tabs and the filtered
// message list.
type inboxModel struct {
	messages   []domain.Message
	title      string
	unreadOnly bool
	unread     int
	selectedID string
	cursor     int
	offset     int
	width      int
	height     int
	focused    bool
}

func newInbox() inboxModel {
	return inboxModel{}
}

func (m inboxModel) Update(msg tea.Msg) (inboxModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.messages)-1 {
				m.cursor++
				m.adjustScroll()
			}

		case key.Matches(msg, keys.Enter):
			id := m.SelectedID()
			if id == "" {
				return m, nil
			}
			return m, func() tea.Msg { return messageSelectedMsg{id: id} }
		}
	}

	return m, nil
}

// headerLines is the number of rows used by the title and tab line.
const headerLines = 2

func (m inboxModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(m.title, m.width)))
	b.WriteByte('\n')
	b.WriteString(m.tabs())
	b.WriteByte('\n')

	if len(m.messages) == 0 {
		b.WriteString(mutedTextStyle.Render("No messages"))
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(m.messages))
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		line := m.renderRow(i)
		if i == m.cursor && m.focused {
			line = selectedStyle.Width(m.width).Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

// SetMessages replaces the visible list, keeping the cursor on the same
// message when it is still present.
func (m *inboxModel) SetMessages(msgs []domain.Message) {
	current := m.SelectedID()
	m.messages = msgs
	m.cursor = 0
	for i := range msgs {
		if msgs[i].ID == current {
			m.cursor = i
			break
		}
	}
	m.offset = 0
	m.adjustScroll()
}

// SetSize updates the dimensions available for rendering.
func (m *inboxModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.adjustScroll()
}

// SelectedID returns the ID of the highlighted message.
func (m inboxModel) SelectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.messages) {
		return ""
	}
	return m.messages[m.cursor].ID
}

// --- internal helpers ---

func (m inboxModel) tabs() string {
	all, unread := "All mail", "Unread"
	if m.unread > 0 {
		unread = fmt.Sprintf("Unread (%d)", m.unread)
	}
	if m.unreadOnly {
		return mutedTextStyle.Render(all) + "  " + activeTabStyle.Render(unread)
	}
	return activeTabStyle.Render(all) + "  " + mutedTextStyle.Render(unread)
}

func (m inboxModel) visibleRows() int {
	return max(m.height-headerLines, 1)
}

func (m *inboxModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m inboxModel) renderRow(idx int) string {
	e := m.messages[idx]

	marker := "  "
	if !e.Read {
		marker = unreadDotStyle.Render("● ")
	}
	if m.selectedID != "" && e.ID == m.selectedID {
		marker = titleStyle.Render("▶ ")
	}

	date := ""
	if e.HasDate() {
		date = relativeDate(e.CreatedAt, time.Now())
	}

	fromWidth := min(18, max(m.width/3, 4))
	dateWidth := len(date)
	subjectWidth := max(m.width-fromWidth-dateWidth-6, 4) // marker(2) + two gaps(4)

	subject := e.Subject
	if len(e.Labels) > 0 {
		subject += " [" + strings.Join(e.Labels, "] [") + "]"
	}

	fromCol := lipgloss.NewStyle().Width(fromWidth).Render(truncate(e.From, fromWidth))
	subjectCol := lipgloss.NewStyle().Width(subjectWidth).Render(truncate(subject, subjectWidth))
	dateCol := mutedTextStyle.Width(dateWidth).Render(date)

	line := marker + fromCol + "  " + subjectCol + "  " + dateCol
	if !e.Read {
		line = unreadStyle.Render(line)
	}
	return line
}

// --- utility functions ---

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

// relativeDate renders t relative to now, switching to a calendar date after a week.
func relativeDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}
