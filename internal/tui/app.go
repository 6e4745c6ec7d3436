package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/mailpane/internal/app"
	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/layout"
	"github.com/lu-zhengda/mailpane/internal/mailbox"
	"github.com/lu-zhengda/mailpane/internal/store"
)

type pane int

const (
	paneSidebar pane = iota
	paneList
	paneReader
)

func (p pane) layoutPane() layout.Pane {
	switch p {
	case paneSidebar:
		return layout.PaneNav
	case paneReader:
		return layout.PaneDetail
	default:
		return layout.PaneList
	}
}

// resizeStep is the share of the total pane weight moved per key press.
const resizeStep = 0.05

// --- async result messages ---

type messagesLoadedMsg struct {
	result app.Result
}

type errMsg struct {
	err error
}

// Options wires the TUI to its stores.
type Options struct {
	Messages          *store.Messages
	Loader            *app.Loader
	Layout            *layout.Persister
	Accounts          []domain.Account
	StartFolder       domain.Folder
	NavCollapsedWidth int
}

// --- root model ---

type model struct {
	ctx            context.Context
	messages       *store.Messages
	loader         *app.Loader
	persister      *layout.Persister
	layout         layout.Layout
	collapsedWidth int
	accounts       []domain.Account
	account        int

	selection  mailbox.Selection
	unreadOnly bool
	visible    []domain.Message

	sidebar  sidebarModel
	inbox    inboxModel
	reader   readerModel
	composer composerModel
	search   searchModel

	activePane pane
	statusBar  statusBar

	width  int
	height int
}

// NewModel creates the root TUI model. The stored layout is read here; the
// messages are fetched by the command returned from Init. ctx bounds the
// fetch and every preference write.
func NewModel(ctx context.Context, opts Options) model {
	sel := mailbox.NewSelection()
	sel.SelectFolder(opts.StartFolder)

	sb := newStatusBar()
	sb.multiAccount = len(opts.Accounts) > 1

	m := model{
		ctx:            ctx,
		messages:       opts.Messages,
		loader:         opts.Loader,
		persister:      opts.Layout,
		layout:         opts.Layout.Load(ctx),
		collapsedWidth: opts.NavCollapsedWidth,
		accounts:       opts.Accounts,
		selection:      sel,
		sidebar:        newSidebar(),
		inbox:          newInbox(),
		reader:         newReader(),
		composer:       newComposer(),
		search:         newSearch(),
		statusBar:      sb,
	}
	m.sidebar.collapsed = m.layout.Collapsed
	if len(m.accounts) > 0 {
		m.sidebar.account = m.accounts[0]
	}
	m.setFocus(paneList)
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- window resize ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeSubModels()
		return m, nil

	// --- async result messages ---
	case messagesLoadedMsg:
		switch err := msg.result.Err; {
		case errors.Is(err, context.Canceled):
			return m, nil
		case err != nil:
			m.statusBar.setError("No messages: fetch failed, see log")
		default:
			m.statusBar.setMessage(fmt.Sprintf("Loaded %d messages", len(msg.result.Messages)))
		}
		m.refresh()
		return m, nil

	case errMsg:
		m.statusBar.setError(fmt.Sprintf("Error: %v", msg.err))
		return m, nil

	// --- sub-model emitted messages ---
	case folderSelectedMsg:
		m.selection.SelectFolder(msg.folder)
		m.afterNavigation()
		return m, nil

	case categorySelectedMsg:
		m.selection.SelectCategory(msg.category)
		m.afterNavigation()
		return m, nil

	case messageSelectedMsg:
		selected, ok := m.messages.Get(msg.id)
		if !ok {
			return m, nil
		}
		m.selection.SelectMessage(msg.id)
		m.inbox.selectedID = msg.id
		m.composer.Close()
		m.reader.Show(selected)
		m.statusBar.detailOpen = m.selection.HasMessage()
		m.setFocus(paneReader)
		return m, nil

	case closeReaderMsg:
		m.closeReader()
		m.setFocus(paneList)
		return m, nil

	case replyMsg:
		cmd := m.composer.Reply(msg.message, msg.replyAll)
		m.setFocus(paneReader)
		return m, cmd

	case forwardMsg:
		cmd := m.composer.Forward(msg.message)
		m.setFocus(paneReader)
		return m, cmd

	case draftSavedMsg:
		m.composer.Close()
		m.statusBar.setMessage(fmt.Sprintf("Draft %s kept locally (nothing is sent)", msg.draft.ID[:8]))
		m.focusAfterCompose()
		return m, nil

	case cancelComposeMsg:
		m.composer.Close()
		m.focusAfterCompose()
		return m, nil

	case searchChangedMsg:
		m.refresh()
		return m, nil

	case closeSearchMsg:
		m.search.Close(msg.keep)
		m.refresh()
		m.resizeSubModels()
		return m, nil

	// --- key events ---
	case tea.KeyMsg:
		// Composer gets all key events when visible.
		if m.composer.IsVisible() {
			var cmd tea.Cmd
			m.composer, cmd = m.composer.Update(msg)
			return m, cmd
		}

		// Search gets all key events when active.
		if m.search.IsActive() {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Compose):
			cmd := m.composer.Compose()
			m.setFocus(paneReader)
			return m, cmd

		case key.Matches(msg, keys.Search):
			cmd := m.search.Open()
			m.setFocus(paneList)
			m.resizeSubModels()
			return m, cmd

		case key.Matches(msg, keys.Tab):
			m.setFocus(m.nextPane())
			return m, nil

		case key.Matches(msg, keys.UnreadTab):
			m.unreadOnly = !m.unreadOnly
			m.refresh()
			return m, nil

		case key.Matches(msg, keys.Collapse):
			m.layout = m.layout.Toggle()
			m.sidebar.collapsed = m.layout.Collapsed
			m.resizeSubModels()
			return m, m.saveCollapsedCmd(m.layout.Collapsed)

		case key.Matches(msg, keys.Grow):
			return m.resizePane(1)

		case key.Matches(msg, keys.Shrink):
			return m.resizePane(-1)

		case key.Matches(msg, keys.SwitchAccount):
			if len(m.accounts) < 2 {
				m.statusBar.setMessage("Only one account configured")
				return m, nil
			}
			m.account = (m.account + 1) % len(m.accounts)
			m.sidebar.account = m.accounts[m.account]
			m.statusBar.setMessage(fmt.Sprintf("Switched to %s", m.accounts[m.account]))
			return m, nil
		}

		// Delegate to focused sub-model.
		var cmd tea.Cmd
		switch m.activePane {
		case paneSidebar:
			m.sidebar, cmd = m.sidebar.Update(msg)
		case paneList:
			m.inbox, cmd = m.inbox.Update(msg)
		case paneReader:
			m.reader, cmd = m.reader.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	navWidth, listWidth, detailWidth := m.layout.Widths(m.width, m.collapsedWidth)
	height := m.contentHeight()

	listBody := m.inbox.View()
	if sv := m.search.View(); sv != "" {
		listBody = sv + "\n" + listBody
	}
	detailBody := m.reader.View()
	if m.composer.IsVisible() {
		detailBody = m.composer.View()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane(paneSidebar, navWidth, height, m.sidebar.View()),
		m.renderPane(paneList, listWidth, height, listBody),
		m.renderPane(paneReader, detailWidth, height, detailBody),
	)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar.View())
}

// renderPane draws body inside a bordered box of exactly w by h cells.
func (m model) renderPane(p pane, w, h int, body string) string {
	if w < 2 || h < 2 {
		return ""
	}
	style := paneStyle
	if p == m.activePane {
		style = focusedPaneStyle
	}
	return style.Width(w - 2).Height(h - 2).MaxWidth(w).MaxHeight(h).Render(body)
}

// --- state helpers ---

// refresh recomputes the visible list from the store, the selection, the
// unread tab and the search query. An open message that the new filter
// excludes is closed.
func (m *model) refresh() {
	all := m.messages.All()
	filtered := mailbox.Filter(all, m.selection, m.unreadOnly)
	if m.selection.Reconcile(filtered) {
		m.closeReader()
		if m.activePane == paneReader && !m.composer.IsVisible() {
			m.setFocus(paneList)
		}
	}
	m.visible = mailbox.Search(filtered, m.search.Query())

	m.sidebar.SetMessages(all)
	m.sidebar.SetSelection(m.selection)
	m.inbox.title = m.selection.Title()
	m.inbox.unreadOnly = m.unreadOnly
	m.inbox.unread = mailbox.UnreadCount(mailbox.Filter(all, m.selection, false))
	m.inbox.SetMessages(m.visible)
}

func (m *model) afterNavigation() {
	m.refresh()
	m.setFocus(paneList)
	m.statusBar.setMessage(fmt.Sprintf("%s: %d messages", m.selection.Title(), len(m.visible)))
}

func (m *model) closeReader() {
	m.selection.ClearMessage()
	m.inbox.selectedID = ""
	m.reader.Close()
	m.statusBar.detailOpen = m.selection.HasMessage()
}

func (m *model) focusAfterCompose() {
	if m.reader.IsVisible() {
		m.setFocus(paneReader)
		return
	}
	m.setFocus(paneList)
}

func (m *model) setFocus(p pane) {
	m.activePane = p
	m.sidebar.focused = p == paneSidebar
	m.inbox.focused = p == paneList
	m.reader.focused = p == paneReader
}

func (m model) nextPane() pane {
	switch m.activePane {
	case paneSidebar:
		return paneList
	case paneList:
		if m.reader.IsVisible() || m.composer.IsVisible() {
			return paneReader
		}
		return paneSidebar
	default:
		return paneSidebar
	}
}

// resizePane moves one step of weight into (dir > 0) or out of (dir < 0)
// the focused pane and persists the new sizes.
func (m model) resizePane(dir float64) (tea.Model, tea.Cmd) {
	p := m.activePane.layoutPane()
	if p == layout.PaneNav && m.layout.Collapsed {
		m.statusBar.setMessage("Navigation is collapsed")
		return m, nil
	}
	s := m.layout.Sizes
	next := m.layout.Resize(p, dir*(s[0]+s[1]+s[2])*resizeStep)
	if next == m.layout {
		return m, nil
	}
	m.layout = next
	m.resizeSubModels()
	return m, m.saveSizesCmd(next.Sizes)
}

// --- layout helpers ---

func (m model) contentHeight() int {
	return max(m.height-1, 0) // status bar
}

func (m *model) resizeSubModels() {
	navWidth, listWidth, detailWidth := m.layout.Widths(m.width, m.collapsedWidth)
	inner := max(m.contentHeight()-2, 0) // pane border

	m.statusBar.width = m.width
	m.sidebar.SetSize(max(navWidth-2, 0), inner)
	m.search.SetWidth(max(listWidth-2, 0))

	listHeight := inner
	if m.search.View() != "" {
		listHeight--
	}
	m.inbox.SetSize(max(listWidth-2, 0), max(listHeight, 0))
	m.reader.SetSize(max(detailWidth-2, 0), inner)
	m.composer.SetSize(max(detailWidth-2, 0), inner)
}

// --- async commands ---

func (m model) loadCmd() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		return messagesLoadedMsg{result: loader.Load(ctx)}
	}
}

func (m model) saveSizesCmd(sizes [3]float64) tea.Cmd {
	ctx, p := m.ctx, m.persister
	return func() tea.Msg {
		if err := p.SaveSizes(ctx, sizes); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m model) saveCollapsedCmd(collapsed bool) tea.Cmd {
	ctx, p := m.ctx, m.persister
	return func() tea.Msg {
		if err := p.SaveCollapsed(ctx, collapsed); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// Run starts the Bubble Tea TUI application and blocks until it exits.
// An in-flight fetch is cancelled when the program stops.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(
		NewModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := prog.Run()
	return err
}
