package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/mailbox"
)

// Messages emitted by sidebarModel.

type folderSelectedMsg struct {
	folder domain.Folder
}

type categorySelectedMsg struct {
	category string
}

type navKind int

const (
	navFolder navKind = iota
	navAllMail
	navCategory
)

type navItem struct {
	kind     navKind
	folder   domain.Folder
	category string
	count    int
}

func (it navItem) label() string {
	switch it.kind {
	case navFolder:
		return it.folder.String()
	case navAllMail:
		return mailbox.AllMailTitle
	default:
		return it.category
	}
}

// sidebarModel is the navigation pane: account header, folders, All Mail
// and the categories derived from the loaded messages.
type sidebarModel struct {
	items     []navItem
	cursor    int
	selection mailbox.Selection
	account   domain.Account
	collapsed bool
	width     int
	height    int
	focused   bool
}

func newSidebar() sidebarModel {
	s := sidebarModel{selection: mailbox.NewSelection()}
	s.SetMessages(nil)
	return s
}

// SetMessages rebuilds the navigation entries and their counts.
func (s *sidebarModel) SetMessages(msgs []domain.Message) {
	counts := mailbox.FolderCounts(msgs)
	items := make([]navItem, 0, len(domain.Folders)+1)
	for _, f := range domain.Folders {
		items = append(items, navItem{kind: navFolder, folder: f, count: counts[f]})
	}
	items = append(items, navItem{kind: navAllMail, count: len(msgs)})

	// The uncategorized group is reachable through All Mail only.
	for _, c := range mailbox.Categories(msgs) {
		if c.Name == "" {
			continue
		}
		items = append(items, navItem{kind: navCategory, category: c.Name, count: c.Count})
	}
	s.items = items
	if s.cursor >= len(items) {
		s.cursor = len(items) - 1
	}
}

// SetSelection marks the entry matching sel as active.
func (s *sidebarModel) SetSelection(sel mailbox.Selection) {
	s.selection = sel
}

// SetSize updates the sidebar dimensions.
func (s *sidebarModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

func (s sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	if !s.focused || len(s.items) == 0 {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.cursor--
			if s.cursor < 0 {
				s.cursor = len(s.items) - 1
			}
		case key.Matches(msg, keys.Down):
			s.cursor++
			if s.cursor >= len(s.items) {
				s.cursor = 0
			}
		case key.Matches(msg, keys.Enter):
			return s, s.selectCmd(s.items[s.cursor])
		}
	}

	return s, nil
}

func (s sidebarModel) selectCmd(it navItem) tea.Cmd {
	switch it.kind {
	case navFolder:
		return func() tea.Msg { return folderSelectedMsg{folder: it.folder} }
	case navAllMail:
		return func() tea.Msg { return folderSelectedMsg{folder: domain.FolderNone} }
	default:
		return func() tea.Msg { return categorySelectedMsg{category: it.category} }
	}
}

func (s sidebarModel) View() string {
	if s.width <= 0 {
		return ""
	}
	if s.collapsed {
		return s.collapsedView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(s.accountName(), s.width)))
	b.WriteByte('\n')
	if s.account.Label != "" && s.account.Email != "" {
		b.WriteString(mutedTextStyle.Render(truncate(s.account.Email, s.width)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for i, it := range s.items {
		if it.kind == navCategory && (i == 0 || s.items[i-1].kind != navCategory) {
			b.WriteByte('\n')
			b.WriteString(mutedTextStyle.Render("Categories"))
			b.WriteByte('\n')
		}
		b.WriteString(s.renderLine(it, i))
		b.WriteByte('\n')
	}
	return b.String()
}

// collapsedView shows a two-letter abbreviation per entry.
func (s sidebarModel) collapsedView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(accountInitials(s.account), s.width)))
	b.WriteString("\n\n")
	for i, it := range s.items {
		line := lipgloss.NewStyle().Width(s.width).Render(truncate(it.label(), min(2, s.width)))
		if s.isActive(it) {
			line = titleStyle.Render(line)
		}
		if s.focused && i == s.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (s sidebarModel) renderLine(it navItem, idx int) string {
	prefix := "  "
	if s.isActive(it) {
		prefix = "▶ "
	}

	count := ""
	if it.count > 0 {
		count = fmt.Sprintf("%d", it.count)
	}
	nameWidth := s.width - lipgloss.Width(prefix) - len(count) - 1
	name := truncate(it.label(), max(nameWidth, 1))
	gap := max(s.width-lipgloss.Width(prefix+name)-len(count), 1)

	line := prefix + name + strings.Repeat(" ", gap) + mutedTextStyle.Render(count)
	padded := lipgloss.NewStyle().Width(s.width).Render(line)

	if s.focused && idx == s.cursor {
		return selectedStyle.Render(padded)
	}
	return padded
}

func (s sidebarModel) isActive(it navItem) bool {
	switch it.kind {
	case navFolder:
		return s.selection.State() == mailbox.StateFolder && s.selection.Folder == it.folder
	case navAllMail:
		return s.selection.State() == mailbox.StateNone
	default:
		return s.selection.State() == mailbox.StateCategory && s.selection.Category == it.category
	}
}

func (s sidebarModel) accountName() string {
	if name := s.account.String(); name != "" {
		return name
	}
	return "mailpane"
}

func accountInitials(a domain.Account) string {
	if a.String() == "" {
		return "mp"
	}
	return a.Initials()
}
