package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages emitted by searchModel.

type searchChangedMsg struct{}

type closeSearchMsg struct {
	keep bool
}

// searchModel is the search box above the message list. The list narrows
// as the query is typed.
type searchModel struct {
	input  textinput.Model
	active bool
	width  int
}

func newSearch() searchModel {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return searchModel{input: ti}
}

func (s searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	if !s.active {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Back):
			return s, func() tea.Msg { return closeSearchMsg{} }
		case key.Matches(msg, keys.Enter):
			return s, func() tea.Msg { return closeSearchMsg{keep: true} }
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		return s, tea.Batch(cmd, func() tea.Msg { return searchChangedMsg{} })
	}
	return s, cmd
}

func (s searchModel) View() string {
	if !s.active && s.input.Value() == "" {
		return ""
	}
	if !s.active {
		return mutedTextStyle.Render(truncate("/ "+s.input.Value(), s.width))
	}
	return s.input.View()
}

// Open focuses the search box, keeping any previous query.
func (s *searchModel) Open() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Close leaves search mode. Unless keep is set the query is cleared.
func (s *searchModel) Close(keep bool) {
	s.active = false
	s.input.Blur()
	if !keep {
		s.input.SetValue("")
	}
}

// SetWidth sizes the input to the list pane.
func (s *searchModel) SetWidth(w int) {
	s.width = w
	s.input.Width = max(w-3, 1)
}

// IsActive reports whether the search box has focus.
func (s searchModel) IsActive() bool {
	return s.active
}

// Query returns the current search text.
func (s searchModel) Query() string {
	return s.input.Value()
}
