package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// Messages emitted by readerModel.

type replyMsg struct {
	message  domain.Message
	replyAll bool
}

type forwardMsg struct {
	message domain.Message
}

type closeReaderMsg struct{}

// readerModel is the detail pane showing the selected message.
type readerModel struct {
	message      *domain.Message
	content      string
	scrollOffset int
	maxScroll    int
	width        int
	height       int
	focused      bool
}

func newReader() readerModel {
	return readerModel{}
}

func (r readerModel) Update(msg tea.Msg) (readerModel, tea.Cmd) {
	if !r.focused || r.message == nil {
		return r, nil
	}
	current := *r.message

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.scrollOffset > 0 {
				r.scrollOffset--
			}

		case key.Matches(msg, keys.Down):
			if r.scrollOffset < r.maxScroll {
				r.scrollOffset++
			}

		case key.Matches(msg, keys.Back):
			return r, func() tea.Msg { return closeReaderMsg{} }

		case key.Matches(msg, keys.Reply):
			return r, func() tea.Msg { return replyMsg{message: current} }

		case key.Matches(msg, keys.ReplyAll):
			return r, func() tea.Msg { return replyMsg{message: current, replyAll: true} }

		case key.Matches(msg, keys.Forward):
			return r, func() tea.Msg { return forwardMsg{message: current} }
		}
	}

	return r, nil
}

func (r readerModel) View() string {
	if r.width <= 0 || r.height <= 0 {
		return ""
	}
	if r.message == nil {
		return mutedTextStyle.Render("No message selected")
	}

	lines := strings.Split(r.content, "\n")
	start := min(r.scrollOffset, len(lines))
	end := min(start+max(r.height, 1), len(lines))
	return strings.Join(lines[start:end], "\n")
}

// Show displays msg in the detail pane.
func (r *readerModel) Show(msg domain.Message) {
	r.message = &msg
	r.scrollOffset = 0
	r.content = renderMessage(msg, r.width)
	r.recalcMaxScroll()
}

// Close clears the detail pane.
func (r *readerModel) Close() {
	r.message = nil
	r.content = ""
	r.scrollOffset = 0
	r.maxScroll = 0
}

// SetSize updates the reader dimensions and re-renders for the new width.
func (r *readerModel) SetSize(w, h int) {
	r.width = w
	r.height = h
	if r.message != nil {
		r.content = renderMessage(*r.message, r.width)
	}
	r.recalcMaxScroll()
}

// IsVisible reports whether a message is shown.
func (r readerModel) IsVisible() bool {
	return r.message != nil
}

func (r *readerModel) recalcMaxScroll() {
	if r.content == "" {
		r.maxScroll = 0
		r.scrollOffset = 0
		return
	}
	lines := strings.Count(r.content, "\n") + 1
	r.maxScroll = max(lines-max(r.height, 1), 0)
	if r.scrollOffset > r.maxScroll {
		r.scrollOffset = r.maxScroll
	}
}

// renderMessage formats a message with its headers, a separator and the body.
// The date line is omitted for messages without a timestamp.
func renderMessage(msg domain.Message, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("[" + msg.Initials() + "] "))
	b.WriteString(msg.From)
	b.WriteByte('\n')

	if msg.Email != "" {
		b.WriteString(mutedTextStyle.Render("Reply-To: "))
		b.WriteString(msg.Email)
		b.WriteByte('\n')
	}

	b.WriteString(mutedTextStyle.Render("Subject:  "))
	b.WriteString(msg.Subject)
	b.WriteByte('\n')

	if msg.HasDate() {
		b.WriteString(mutedTextStyle.Render("Date:     "))
		b.WriteString(msg.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"))
		b.WriteByte('\n')
	}

	if len(msg.Labels) > 0 {
		badges := make([]string, len(msg.Labels))
		for i, l := range msg.Labels {
			badges[i] = badgeStyle.Render(l)
		}
		b.WriteString(strings.Join(badges, " "))
		b.WriteByte('\n')
	}

	b.WriteString(mutedTextStyle.Render(strings.Repeat("─", max(width, 20))))
	b.WriteByte('\n')

	if msg.Body != "" {
		b.WriteByte('\n')
		b.WriteString(msg.Body)
	}
	return b.String()
}
