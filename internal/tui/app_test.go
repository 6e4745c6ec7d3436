package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-zhengda/mailpane/internal/app"
	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/layout"
	"github.com/lu-zhengda/mailpane/internal/provider"
	"github.com/lu-zhengda/mailpane/internal/store"
)

func fixtureMessages() []domain.Message {
	return []domain.Message{
		{ID: "m1", From: "William Smith", Email: "william@example.com", Subject: "Meeting Tomorrow", Body: "See you at 10.", Folder: domain.FolderInbox, Category: "work", CreatedAt: time.Date(2023, 10, 22, 9, 0, 0, 0, time.UTC)},
		{ID: "m2", From: "Alice Smith", Subject: "Re: Project Update", Folder: domain.FolderInbox, Category: "personal", Read: true},
		{ID: "m3", From: "Bob Johnson", Subject: "Weekend Plans", Folder: domain.FolderSent, Category: "work", Read: true},
		{ID: "m4", From: "Emily Davis", Subject: "Invoice attached"},
	}
}

func newTestModel(t *testing.T, kv store.KV, src provider.MessageSource) model {
	t.Helper()
	msgs := store.NewMessages()
	return NewModel(context.Background(), Options{
		Messages:          msgs,
		Loader:            app.NewLoader(msgs, src),
		Layout:            layout.New(kv),
		Accounts:          []domain.Account{{Label: "Alicia Koch", Email: "alicia@example.com"}, {Email: "alicia@gmail.com"}},
		StartFolder:       domain.FolderInbox,
		NavCollapsedWidth: 4,
	})
}

func staticSource(msgs []domain.Message) provider.MessageSource {
	return provider.SourceFunc(func(context.Context) ([]domain.Message, error) { return msgs, nil })
}

// loaded returns a model that has completed its initial fetch.
func loaded(t *testing.T, kv store.KV) model {
	t.Helper()
	m := newTestModel(t, kv, staticSource(fixtureMessages()))
	next, _ := send(m, m.Init()())
	return next
}

func send(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func visibleIDs(m model) []string {
	out := make([]string, 0, len(m.visible))
	for _, msg := range m.visible {
		out = append(out, msg.ID)
	}
	return out
}

func TestModel_InitialLoadShowsInbox(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())

	assert.Equal(t, []string{"m1", "m2"}, visibleIDs(m))
	assert.Equal(t, "Inbox", m.inbox.title)
	assert.Equal(t, "Loaded 4 messages", m.statusBar.message)
	assert.False(t, m.statusBar.isError)
}

func TestModel_FetchFailureLeavesListEmpty(t *testing.T) {
	src := provider.SourceFunc(func(context.Context) ([]domain.Message, error) {
		return nil, errors.New("connection refused")
	})
	m := newTestModel(t, store.NewMemoryKV(), src)
	m, _ = send(m, m.Init()())
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Empty(t, m.visible)
	assert.True(t, m.statusBar.isError)
	assert.Contains(t, m.View(), "No messages")
}

func TestModel_CancelledFetchIsIgnored(t *testing.T) {
	m := newTestModel(t, store.NewMemoryKV(), staticSource(nil))
	m, _ = send(m, messagesLoadedMsg{result: app.Result{Err: context.Canceled}})

	assert.Equal(t, "Loading messages...", m.statusBar.message)
}

func TestModel_FolderAndCategorySelection(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())

	m, _ = send(m, folderSelectedMsg{folder: domain.FolderSent})
	assert.Equal(t, []string{"m3"}, visibleIDs(m))
	assert.Equal(t, "Sent", m.inbox.title)

	m, _ = send(m, categorySelectedMsg{category: "work"})
	assert.Equal(t, domain.FolderNone, m.selection.Folder)
	assert.Equal(t, []string{"m1", "m3"}, visibleIDs(m))
	assert.Equal(t, "work", m.inbox.title)

	m, _ = send(m, folderSelectedMsg{folder: domain.FolderNone})
	assert.Equal(t, []string{"m1", "m2", "m3", "m4"}, visibleIDs(m))
	assert.Equal(t, "All Mail", m.inbox.title)
}

func TestModel_SidebarEnterSelectsFolder(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab}) // list -> sidebar
	require.Equal(t, paneSidebar, m.activePane)

	m, _ = send(m, press("j")) // Drafts
	m, _ = send(m, press("j")) // Sent
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())

	assert.Equal(t, domain.FolderSent, m.selection.Folder)
	assert.Equal(t, paneList, m.activePane)
	assert.Equal(t, []string{"m3"}, visibleIDs(m))
}

func TestModel_OpenMessageAndClose(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Equal(t, "m1", m.selection.MessageID)
	assert.True(t, m.reader.IsVisible())
	assert.True(t, m.statusBar.detailOpen)
	assert.Equal(t, paneReader, m.activePane)

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.False(t, m.selection.HasMessage())
	assert.False(t, m.reader.IsVisible())
	assert.False(t, m.statusBar.detailOpen)
	assert.Equal(t, paneList, m.activePane)
}

func TestModel_StaleSelectionClosedWhenFiltered(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())
	m, _ = send(m, messageSelectedMsg{id: "m1"})

	// m1 is also in the work category, so it stays open.
	m, _ = send(m, categorySelectedMsg{category: "work"})
	assert.Equal(t, "m1", m.selection.MessageID)
	assert.True(t, m.reader.IsVisible())

	m, _ = send(m, folderSelectedMsg{folder: domain.FolderSent})
	assert.False(t, m.selection.HasMessage())
	assert.False(t, m.reader.IsVisible())
	assert.False(t, m.statusBar.detailOpen)
}

func TestModel_UnreadTab(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())

	m, _ = send(m, press("u"))
	assert.True(t, m.unreadOnly)
	assert.Equal(t, []string{"m1"}, visibleIDs(m))

	m, _ = send(m, press("u"))
	assert.Equal(t, []string{"m1", "m2"}, visibleIDs(m))
}

func TestModel_CollapsePersists(t *testing.T) {
	kv := store.NewMemoryKV()
	m := loaded(t, kv)

	m, cmd := send(m, press("["))
	assert.True(t, m.layout.Collapsed)
	assert.True(t, m.sidebar.collapsed)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	v, err := kv.Get(context.Background(), layout.KeyCollapsed)
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	reopened := newTestModel(t, kv, staticSource(nil))
	assert.True(t, reopened.layout.Collapsed)
}

func TestModel_ResizePersists(t *testing.T) {
	kv := store.NewMemoryKV()
	m := loaded(t, kv)
	before := m.layout.Sizes

	m, cmd := send(m, press(">"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Greater(t, m.layout.Sizes[1], before[1])
	assert.Less(t, m.layout.Sizes[2], before[2])
	assert.Equal(t, before[0], m.layout.Sizes[0])

	stored := layout.New(kv).Load(context.Background())
	assert.Equal(t, m.layout.Sizes, stored.Sizes)
}

func TestModel_ResizeCollapsedNavIsIgnored(t *testing.T) {
	kv := store.NewMemoryKV()
	m := loaded(t, kv)
	m, _ = send(m, press("["))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab}) // list -> sidebar

	before := m.layout
	m, cmd := send(m, press(">"))
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.layout)
}

func TestModel_SearchNarrowsList(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())
	m, _ = send(m, folderSelectedMsg{folder: domain.FolderNone})

	m, _ = send(m, press("/"))
	require.True(t, m.search.IsActive())
	m, _ = send(m, press("invoice"))
	m, _ = send(m, searchChangedMsg{})
	assert.Equal(t, []string{"m4"}, visibleIDs(m))

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.False(t, m.search.IsActive())
	assert.Equal(t, []string{"m4"}, visibleIDs(m))

	m, _ = send(m, press("/"))
	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Empty(t, m.search.Query())
	assert.Len(t, m.visible, 4)
}

func TestModel_ComposeKeepsDraftLocally(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())

	m, _ = send(m, press("c"))
	require.True(t, m.composer.IsVisible())
	assert.Equal(t, paneReader, m.activePane)

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg, ok := cmd().(draftSavedMsg)
	require.True(t, ok)
	_, err := uuid.Parse(msg.draft.ID)
	assert.NoError(t, err)

	m, _ = send(m, msg)
	assert.False(t, m.composer.IsVisible())
	assert.Equal(t, paneList, m.activePane)
	assert.Contains(t, m.statusBar.message, "nothing is sent")
}

func TestModel_ReplyPrefillsComposer(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())
	m, _ = send(m, messageSelectedMsg{id: "m1"})

	m, cmd := send(m, press("r"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())

	require.True(t, m.composer.IsVisible())
	assert.Equal(t, "William Smith <william@example.com>", m.composer.toInput.Value())
	assert.Equal(t, "Re: Meeting Tomorrow", m.composer.subjectInput.Value())
	assert.Contains(t, m.composer.bodyInput.Value(), "> See you at 10.")

	m, _ = send(m, cancelComposeMsg{})
	assert.False(t, m.composer.IsVisible())
	assert.Equal(t, paneReader, m.activePane)
}

func TestModel_SwitchAccount(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())
	assert.Equal(t, "Alicia Koch", m.sidebar.account.String())

	m, _ = send(m, press("@"))
	assert.Equal(t, "alicia@gmail.com", m.sidebar.account.String())

	m, _ = send(m, press("@"))
	assert.Equal(t, "Alicia Koch", m.sidebar.account.String())
}

func TestModel_ViewFitsWindow(t *testing.T) {
	for _, collapsed := range []bool{false, true} {
		m := loaded(t, store.NewMemoryKV())
		if collapsed {
			m, _ = send(m, press("["))
		}
		m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 30})
		m, _ = send(m, messageSelectedMsg{id: "m1"})

		view := m.View()
		assert.Contains(t, view, "Meeting Tomorrow")
		for _, line := range strings.Split(view, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 120)
		}
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
		{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "Jan 5"},
		{time.Date(2023, 10, 22, 9, 0, 0, 0, time.UTC), "Oct 22, 2023"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeDate(tt.t, now))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "h", truncate("hello", 1))
	assert.Equal(t, "", truncate("hello", 0))
}

func TestFormatReplyQuote_OmitsMissingDate(t *testing.T) {
	msg := domain.Message{From: "Emily Davis", Body: "line one\nline two"}
	got := formatReplyQuote(msg)
	assert.NotContains(t, got, "On ")
	assert.Contains(t, got, "Emily Davis wrote:")
	assert.Contains(t, got, "> line one\n> line two\n")
}

func TestPrefixSubject(t *testing.T) {
	assert.Equal(t, "Re: Hi", prefixSubject("Re: ", "Hi"))
	assert.Equal(t, "RE: Hi", prefixSubject("Re: ", "RE: Hi"))
	assert.Equal(t, "Fwd: Hi", prefixSubject("Fwd: ", "Hi"))
}

func TestModel_UnreadTabCountsCurrentFolder(t *testing.T) {
	m := loaded(t, store.NewMemoryKV())
	assert.Equal(t, 1, m.inbox.unread)

	m, _ = send(m, folderSelectedMsg{folder: domain.FolderNone})
	assert.Equal(t, 2, m.inbox.unread)
}
