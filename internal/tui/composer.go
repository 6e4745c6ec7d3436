package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// composerMode describes the kind of composition taking place.
type composerMode int

const (
	modeCompose composerMode = iota
	modeReply
	modeReplyAll
	modeForward
)

// Messages emitted by composerModel.

type draftSavedMsg struct {
	draft draft
}

type cancelComposeMsg struct{}

// draft is what the composer produces. There is no transport, so a draft
// only lives until the composer closes.
type draft struct {
	ID        string
	To        string
	CC        string
	Subject   string
	Body      string
	InReplyTo string
}

// Field indices within the composer form.
const (
	fieldTo      = 0
	fieldCC      = 1
	fieldSubject = 2
	fieldBody    = 3
	fieldCount   = 4
)

// composerModel is the compose/reply/forward form shown in the detail pane.
type composerModel struct {
	toInput      textinput.Model
	ccInput      textinput.Model
	subjectInput textinput.Model
	bodyInput    textarea.Model

	activeField int
	mode        composerMode
	replyTo     *domain.Message

	width   int
	height  int
	visible bool
}

func newComposer() composerModel {
	to := textinput.New()
	to.Placeholder = "recipient@example.com"
	to.CharLimit = 500
	to.Prompt = ""

	cc := textinput.New()
	cc.Placeholder = "cc@example.com"
	cc.CharLimit = 500
	cc.Prompt = ""

	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.CharLimit = 200
	subject.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Write your message..."
	body.SetWidth(40)
	body.SetHeight(6)
	body.CharLimit = 0

	return composerModel{
		toInput:      to,
		ccInput:      cc,
		subjectInput: subject,
		bodyInput:    body,
	}
}

func (c composerModel) Update(msg tea.Msg) (composerModel, tea.Cmd) {
	if !c.visible {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			c.activeField = (c.activeField + 1) % fieldCount
			c.updateFocus()
			return c, nil

		case "esc":
			return c, func() tea.Msg { return cancelComposeMsg{} }

		case "ctrl+s":
			d := c.BuildDraft()
			return c, func() tea.Msg {
				log.Printf("[compose] %s draft %s to %q kept locally, nothing was sent", c.modeTitle(), d.ID, d.To)
				return draftSavedMsg{draft: d}
			}
		}
	}

	var cmd tea.Cmd
	switch c.activeField {
	case fieldTo:
		c.toInput, cmd = c.toInput.Update(msg)
	case fieldCC:
		c.ccInput, cmd = c.ccInput.Update(msg)
	case fieldSubject:
		c.subjectInput, cmd = c.subjectInput.Update(msg)
	case fieldBody:
		c.bodyInput, cmd = c.bodyInput.Update(msg)
	}
	return c, cmd
}

func (c composerModel) View() string {
	if !c.visible || c.width <= 0 {
		return ""
	}

	innerWidth := max(c.width-4, 20)
	inputWidth := max(innerWidth-10, 10)

	c.toInput.Width = inputWidth
	c.ccInput.Width = inputWidth
	c.subjectInput.Width = inputWidth
	c.bodyInput.SetWidth(innerWidth)
	// title(1) border(2) fields(3) separator(1) blank(1) help(1)
	c.bodyInput.SetHeight(max(c.height-9, 3))

	label := func(s string) string { return mutedTextStyle.Render(fmt.Sprintf("%-9s", s)) }

	rows := []string{
		label("To:") + c.toInput.View(),
		label("CC:") + c.ccInput.View(),
		label("Subject:") + c.subjectInput.View(),
		mutedTextStyle.Render(strings.Repeat("─", innerWidth)),
		c.bodyInput.View(),
		"",
		mutedTextStyle.Render("Tab:fields  Ctrl+S:save draft  Esc:cancel"),
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(0, 1).
		Width(c.width - 2)

	return titleStyle.Render(" "+c.modeTitle()+" ") + "\n" + boxStyle.Render(strings.Join(rows, "\n"))
}

// Compose opens an empty form.
func (c *composerModel) Compose() tea.Cmd {
	c.mode = modeCompose
	c.replyTo = nil
	c.clearFields()
	c.visible = true
	c.activeField = fieldTo
	return c.updateFocus()
}

// Reply opens the form addressed to the sender of msg with the body quoted.
func (c *composerModel) Reply(msg domain.Message, replyAll bool) tea.Cmd {
	c.mode = modeReply
	if replyAll {
		c.mode = modeReplyAll
	}
	c.replyTo = &msg
	c.clearFields()
	c.visible = true

	c.toInput.SetValue(msg.Sender())
	c.subjectInput.SetValue(prefixSubject("Re: ", msg.Subject))
	c.bodyInput.SetValue(formatReplyQuote(msg))

	c.activeField = fieldBody
	return c.updateFocus()
}

// Forward opens the form with msg's subject and body carried over.
func (c *composerModel) Forward(msg domain.Message) tea.Cmd {
	c.mode = modeForward
	c.replyTo = &msg
	c.clearFields()
	c.visible = true

	c.subjectInput.SetValue(prefixSubject("Fwd: ", msg.Subject))
	c.bodyInput.SetValue(formatForwardBody(msg))

	c.activeField = fieldTo
	return c.updateFocus()
}

// Close hides the composer and clears all fields.
func (c *composerModel) Close() {
	c.visible = false
	c.replyTo = nil
	c.clearFields()
}

// SetSize updates the available dimensions for the composer.
func (c *composerModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// IsVisible reports whether the composer is currently displayed.
func (c composerModel) IsVisible() bool {
	return c.visible
}

// BuildDraft collects the form values under a fresh draft ID.
func (c composerModel) BuildDraft() draft {
	d := draft{
		ID:      uuid.NewString(),
		To:      strings.TrimSpace(c.toInput.Value()),
		CC:      strings.TrimSpace(c.ccInput.Value()),
		Subject: c.subjectInput.Value(),
		Body:    c.bodyInput.Value(),
	}
	if c.replyTo != nil {
		d.InReplyTo = c.replyTo.ID
	}
	return d
}

// --- internal helpers ---

func (c *composerModel) clearFields() {
	c.toInput.SetValue("")
	c.ccInput.SetValue("")
	c.subjectInput.SetValue("")
	c.bodyInput.SetValue("")
}

func (c *composerModel) updateFocus() tea.Cmd {
	c.toInput.Blur()
	c.ccInput.Blur()
	c.subjectInput.Blur()
	c.bodyInput.Blur()

	switch c.activeField {
	case fieldTo:
		return c.toInput.Focus()
	case fieldCC:
		return c.ccInput.Focus()
	case fieldSubject:
		return c.subjectInput.Focus()
	case fieldBody:
		return c.bodyInput.Focus()
	}
	return nil
}

func (c composerModel) modeTitle() string {
	switch c.mode {
	case modeReply:
		return "Reply"
	case modeReplyAll:
		return "Reply All"
	case modeForward:
		return "Forward"
	default:
		return "Compose"
	}
}

// prefixSubject adds prefix unless subject already starts with it.
func prefixSubject(prefix, subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), strings.ToLower(prefix)) {
		return subject
	}
	return prefix + subject
}

func formatReplyQuote(msg domain.Message) string {
	header := fmt.Sprintf("\n%s wrote:", msg.Sender())
	if msg.HasDate() {
		header = fmt.Sprintf("\nOn %s, %s wrote:", msg.CreatedAt.Format("Jan 2, 2006"), msg.Sender())
	}

	var quoted strings.Builder
	for _, line := range strings.Split(msg.Body, "\n") {
		quoted.WriteString("> ")
		quoted.WriteString(line)
		quoted.WriteString("\n")
	}
	return header + "\n" + quoted.String()
}

func formatForwardBody(msg domain.Message) string {
	var b strings.Builder
	b.WriteString("\n---------- Forwarded message ----------\n")
	fmt.Fprintf(&b, "From: %s\n", msg.Sender())
	if msg.HasDate() {
		fmt.Fprintf(&b, "Date: %s\n", msg.CreatedAt.Format("Jan 2, 2006"))
	}
	fmt.Fprintf(&b, "Subject: %s\n", msg.Subject)
	b.WriteString("\n")
	b.WriteString(msg.Body)
	return b.String()
}
