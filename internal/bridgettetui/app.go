// Package bridgettetui is the terminal interface for Bridgette.
package bridgettetui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bridgette-app/bridgette/internal/bridgettetui/data"
	"github.com/bridgette-app/bridgette/internal/model"
)

const (
	defaultConversationPoll = 1500 * time.Millisecond
	defaultMessagePoll      = 750 * time.Millisecond
)

type Theme string

const (
	ThemeDefault      Theme = "default"
	ThemeHighContrast Theme = "high-contrast"
)

type ViewID string

const (
	ViewConversations ViewID = "conversations"
	ViewMessages      ViewID = "messages"
	ViewFamily        ViewID = "family"
	ViewExpenses      ViewID = "expenses"
	ViewAdmin         ViewID = "admin"
)

var viewSwitchKeys = map[string]ViewID{
	"C": ViewConversations,
	"F": ViewFamily,
	"X": ViewExpenses,
	"A": ViewAdmin,
}

// Config configures the TUI model.
type Config struct {
	Provider    data.Provider
	CurrentUser model.CurrentUser
	Theme       string

	// ConversationPoll is the refresh cadence for the conversation list.
	ConversationPoll time.Duration
	// MessagePoll is the refresh cadence for the open message stream.
	MessagePoll time.Duration

	// Offline reports snapshot-fallback state for the chrome; may be nil.
	Offline func() bool
}

// Model is the root bubbletea model: chrome, a view stack, and the views.
type Model struct {
	provider data.Provider
	user     model.CurrentUser
	theme    Theme
	offline  func() bool

	conversationPoll time.Duration
	messagePoll      time.Duration

	width    int
	height   int
	showHelp bool

	viewStack []ViewID
	views     map[ViewID]viewModel
}

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme Theme) string
}

type pushViewMsg struct {
	id ViewID
}

type popViewMsg struct{}

// openConversationMsg routes a selection from the conversations view into
// the messages view.
type openConversationMsg struct {
	id      string
	subject string
}

func pushViewCmd(id ViewID) tea.Cmd {
	return func() tea.Msg {
		return pushViewMsg{id: id}
	}
}

func popViewCmd() tea.Cmd {
	return func() tea.Msg {
		return popViewMsg{}
	}
}

func openConversationCmd(id, subject string) tea.Cmd {
	return func() tea.Msg {
		return openConversationMsg{id: id, subject: subject}
	}
}

// NewModel builds the root model.
func NewModel(cfg Config) (*Model, error) {
	normalized, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	m := &Model{
		provider:         normalized.Provider,
		user:             normalized.CurrentUser,
		theme:            Theme(normalized.Theme),
		offline:          normalized.Offline,
		conversationPoll: normalized.ConversationPoll,
		messagePoll:      normalized.MessagePoll,
		viewStack:        []ViewID{ViewConversations},
		views:            make(map[ViewID]viewModel),
	}
	m.initViews()
	return m, nil
}

// Run starts the TUI program.
func Run(cfg Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case openConversationMsg:
		m.pushView(ViewMessages)
		if view := m.views[ViewMessages]; view != nil {
			if setter, ok := view.(interface {
				SetConversation(id, subject string) tea.Cmd
			}); ok {
				return m, setter.SetConversation(typed.id, typed.subject)
			}
		}
		return m, nil
	case pushViewMsg:
		m.pushView(typed.id)
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case popViewMsg:
		m.popView()
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, cmd
		}
	}

	if active := m.activeView(); active != nil {
		return m, active.Update(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	active := m.activeView()
	if active == nil {
		return "no active view"
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	if m.showHelp {
		overlay := m.renderHelpOverlay(m.width, contentHeight, m.theme)
		return lipgloss.JoinVertical(lipgloss.Left, header, overlay, footer)
	}

	body := active.View(m.width, contentHeight, m.theme)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if m.showHelp {
		if key == "?" || key == "esc" {
			m.showHelp = false
			return nil, true
		}
		return nil, true
	}

	// Views with active text input consume every key except ctrl+c.
	if view, ok := m.activeView().(interface{ capturesInput() bool }); ok && view.capturesInput() {
		if key == "ctrl+c" {
			return tea.Quit, true
		}
		return nil, false
	}

	switch key {
	case "q", "ctrl+c":
		return tea.Quit, true
	case "?":
		m.showHelp = true
		return nil, true
	}

	if next, ok := viewSwitchKeys[key]; ok {
		if next == ViewAdmin && !m.user.IsAdmin() {
			return nil, true
		}
		m.pushView(next)
		if view := m.activeView(); view != nil {
			return view.Init(), true
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) activeView() viewModel {
	return m.views[m.activeViewID()]
}

func (m *Model) activeViewID() ViewID {
	if len(m.viewStack) == 0 {
		return ViewConversations
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *Model) pushView(id ViewID) {
	if id == "" {
		return
	}
	if _, ok := m.views[id]; !ok {
		return
	}
	if m.activeViewID() == id {
		return
	}
	m.viewStack = append(m.viewStack, id)
}

func (m *Model) popView() {
	if len(m.viewStack) <= 1 {
		return
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

func (m *Model) initViews() {
	m.views[ViewConversations] = newConversationsView(m.provider, m.conversationPoll)
	m.views[ViewMessages] = newMessagesView(m.provider, m.user, m.messagePoll)
	m.views[ViewFamily] = newFamilyView(m.provider)
	m.views[ViewExpenses] = newExpensesView(m.provider, m.user)
	if m.user.IsAdmin() {
		m.views[ViewAdmin] = newAdminView(m.provider)
	}
}

func (m *Model) isOffline() bool {
	return m.offline != nil && m.offline()
}

func (c Config) normalize() (Config, error) {
	if c.Provider == nil {
		return Config{}, fmt.Errorf("provider required")
	}
	if c.ConversationPoll <= 0 {
		c.ConversationPoll = defaultConversationPoll
	}
	if c.MessagePoll <= 0 {
		c.MessagePoll = defaultMessagePoll
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = string(ThemeDefault)
	}
	switch Theme(c.Theme) {
	case ThemeDefault, ThemeHighContrast:
	default:
		return Config{}, fmt.Errorf("invalid theme %q", c.Theme)
	}
	return c, nil
}
