package bridgettetui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/bridgette-app/bridgette/internal/model"
)

// fakeProvider implements data.Provider with overridable funcs so each
// test stubs only what it touches.
type fakeProvider struct {
	conversationsFn      func(ctx context.Context) ([]model.Conversation, error)
	createConversationFn func(ctx context.Context, req model.ConversationCreate) (model.Conversation, error)
	messagesFn           func(ctx context.Context, conversationID string) ([]model.Message, error)
	sendMessageFn        func(ctx context.Context, req model.MessageCreate) (model.Message, error)
	toggleStarFn         func(ctx context.Context, conversationID string) (bool, error)
	archiveFn            func(ctx context.Context, conversationID string) error
	familyFn             func(ctx context.Context) (model.Family, error)
	expensesFn           func(ctx context.Context) ([]model.Expense, error)
}

func (f *fakeProvider) Me(ctx context.Context) (model.CurrentUser, error) {
	return model.CurrentUser{Email: "me@example.com"}, nil
}

func (f *fakeProvider) Conversations(ctx context.Context) ([]model.Conversation, error) {
	if f.conversationsFn != nil {
		return f.conversationsFn(ctx)
	}
	return nil, nil
}

func (f *fakeProvider) CreateConversation(ctx context.Context, req model.ConversationCreate) (model.Conversation, error) {
	if f.createConversationFn != nil {
		return f.createConversationFn(ctx, req)
	}
	return model.Conversation{ID: "conv-new", Subject: req.Subject, Category: req.Category}, nil
}

func (f *fakeProvider) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	if f.messagesFn != nil {
		return f.messagesFn(ctx, conversationID)
	}
	return nil, nil
}

func (f *fakeProvider) SendMessage(ctx context.Context, req model.MessageCreate) (model.Message, error) {
	if f.sendMessageFn != nil {
		return f.sendMessageFn(ctx, req)
	}
	return model.Message{ID: "srv-1", ConversationID: req.ConversationID, Content: req.Content, Tone: req.Tone}, nil
}

func (f *fakeProvider) ToggleStar(ctx context.Context, conversationID string) (bool, error) {
	if f.toggleStarFn != nil {
		return f.toggleStarFn(ctx, conversationID)
	}
	return true, nil
}

func (f *fakeProvider) ArchiveConversation(ctx context.Context, conversationID string) error {
	if f.archiveFn != nil {
		return f.archiveFn(ctx, conversationID)
	}
	return nil
}

func (f *fakeProvider) Family(ctx context.Context) (model.Family, error) {
	if f.familyFn != nil {
		return f.familyFn(ctx)
	}
	return model.Family{FamilyName: "Test Family", Parent1Email: "me@example.com"}, nil
}

func (f *fakeProvider) CreateFamily(ctx context.Context, req model.FamilyCreate) (model.Family, error) {
	return model.Family{ID: "fam-1", FamilyName: req.FamilyName, Parent1Email: "me@example.com", Parent2Email: req.Parent2Email}, nil
}

func (f *fakeProvider) AddChild(ctx context.Context, child model.Child) (model.Child, error) {
	child.ID = "child-new"
	return child, nil
}

func (f *fakeProvider) UpdateChild(ctx context.Context, childID string, child model.Child) (model.Child, error) {
	child.ID = childID
	return child, nil
}

func (f *fakeProvider) DeleteChild(ctx context.Context, childID string) error {
	return nil
}

func (f *fakeProvider) Expenses(ctx context.Context) ([]model.Expense, error) {
	if f.expensesFn != nil {
		return f.expensesFn(ctx)
	}
	return nil, nil
}

func (f *fakeProvider) AdminStats(ctx context.Context) (model.AdminStats, error) {
	return model.AdminStats{}, nil
}

func (f *fakeProvider) AdminFamilies(ctx context.Context) ([]model.AdminFamily, error) {
	return nil, nil
}

func (f *fakeProvider) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	return nil, nil
}

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	if cfg.Provider == nil {
		cfg.Provider = &fakeProvider{}
	}
	if cfg.CurrentUser.Email == "" {
		cfg.CurrentUser = model.CurrentUser{FirstName: "Pat", LastName: "Doe", Email: "me@example.com"}
	}
	m, err := NewModel(cfg)
	require.NoError(t, err)
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune{r},
	}
}

func applyUpdate(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(*Model)
	require.True(t, ok)
	return out
}

func applyUpdateWithCmd(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(*Model)
	require.True(t, ok)
	if cmd == nil {
		return out
	}
	return runCmd(t, out, cmd)
}

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	return runCmdDepth(t, m, cmd, 0)
}

const maxRunCmdDepth = 8

func runCmdDepth(t *testing.T, m *Model, cmd tea.Cmd, depth int) *Model {
	t.Helper()
	if cmd == nil || depth >= maxRunCmdDepth {
		return m
	}

	// Run cmd with a short timeout to skip blocking commands (ticks).
	type result struct{ msg tea.Msg }
	ch := make(chan result, 1)
	go func() { ch <- result{cmd()} }()
	select {
	case r := <-ch:
		switch typed := r.msg.(type) {
		case nil:
			return m
		case tea.BatchMsg:
			out := m
			for _, sub := range typed {
				out = runCmdDepth(t, out, sub, depth+1)
			}
			return out
		default:
			next, nextCmd := m.Update(typed)
			out, ok := next.(*Model)
			require.True(t, ok)
			return runCmdDepth(t, out, nextCmd, depth+1)
		}
	case <-time.After(50 * time.Millisecond):
		return m
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, Config{})

	require.Equal(t, defaultConversationPoll, m.conversationPoll)
	require.Equal(t, defaultMessagePoll, m.messagePoll)
	require.Equal(t, ThemeDefault, m.theme)
	require.Equal(t, []ViewID{ViewConversations}, m.viewStack)
	require.NotNil(t, m.views[ViewConversations])
	require.NotNil(t, m.views[ViewMessages])
	require.NotNil(t, m.views[ViewFamily])
	require.NotNil(t, m.views[ViewExpenses])
	require.Nil(t, m.views[ViewAdmin])
}

func TestNewModelRejectsInvalidTheme(t *testing.T) {
	_, err := NewModel(Config{Provider: &fakeProvider{}, Theme: "matrix"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid theme")
}

func TestNewModelRequiresProvider(t *testing.T) {
	_, err := NewModel(Config{})
	require.Error(t, err)
}

func TestAdminViewOnlyForAdmins(t *testing.T) {
	m := newTestModel(t, Config{
		CurrentUser: model.CurrentUser{Email: "admin@example.com", Role: "admin"},
	})
	require.NotNil(t, m.views[ViewAdmin])

	regular := newTestModel(t, Config{})
	regular = applyUpdate(t, regular, runeKey('A'))
	require.Equal(t, ViewConversations, regular.activeViewID())
}

func TestUpdateHandlesResizeHelpAndQuit(t *testing.T) {
	m := newTestModel(t, Config{})

	m = applyUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 120, m.width)
	require.Equal(t, 40, m.height)

	m = applyUpdate(t, m, runeKey('?'))
	require.True(t, m.showHelp)
	m = applyUpdate(t, m, runeKey('?'))
	require.False(t, m.showHelp)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestViewSwitchKeys(t *testing.T) {
	m := newTestModel(t, Config{})

	m = applyUpdate(t, m, runeKey('F'))
	require.Equal(t, ViewFamily, m.activeViewID())

	m = applyUpdate(t, m, runeKey('X'))
	require.Equal(t, ViewExpenses, m.activeViewID())

	m = applyUpdateWithCmd(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ViewFamily, m.activeViewID())

	m = applyUpdate(t, m, runeKey('C'))
	require.Equal(t, ViewConversations, m.activeViewID())
}

func TestOpenConversationRoutesToMessagesView(t *testing.T) {
	m := newTestModel(t, Config{})

	m = applyUpdateWithCmd(t, m, openConversationMsg{id: "conv-1", subject: "School pickup"})
	require.Equal(t, ViewMessages, m.activeViewID())

	view := m.views[ViewMessages].(*messagesView)
	require.Equal(t, "conv-1", view.conversationID)
	require.Equal(t, "School pickup", view.subject)
}

func TestComposingViewKeepsViewSwitchKeys(t *testing.T) {
	m := newTestModel(t, Config{})
	m = applyUpdateWithCmd(t, m, openConversationMsg{id: "conv-1", subject: "Subject"})

	view := m.views[ViewMessages].(*messagesView)
	m = applyUpdate(t, m, runeKey('i'))
	require.True(t, view.composing)

	// While composing, F is text input, not a view switch.
	m = applyUpdate(t, m, runeKey('F'))
	require.Equal(t, ViewMessages, m.activeViewID())
	require.Equal(t, "F", view.input)

	// ctrl+c still quits.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestPushViewIgnoresUnknownAndDuplicate(t *testing.T) {
	m := newTestModel(t, Config{})

	m.pushView("bogus")
	require.Equal(t, []ViewID{ViewConversations}, m.viewStack)

	m.pushView(ViewConversations)
	require.Equal(t, []ViewID{ViewConversations}, m.viewStack)

	m.popView()
	require.Equal(t, []ViewID{ViewConversations}, m.viewStack)
}

func TestViewRendersChrome(t *testing.T) {
	m := newTestModel(t, Config{})
	m = applyUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	require.Contains(t, out, "bridgette")
	require.Contains(t, out, "Pat Doe")
	require.Contains(t, out, "online")
}

func TestViewShowsOfflineIndicator(t *testing.T) {
	offline := true
	m := newTestModel(t, Config{Offline: func() bool { return offline }})
	m = applyUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	require.Contains(t, m.View(), "offline")
	offline = false
	require.Contains(t, m.View(), "online")
}
