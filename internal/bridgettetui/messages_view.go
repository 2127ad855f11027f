package bridgettetui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bridgette-app/bridgette/internal/bridgettetui/data"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/styles"
	"github.com/bridgette-app/bridgette/internal/model"
)

type messagesTickMsg struct {
	generation int64
}

type messagesLoadedMsg struct {
	now            time.Time
	generation     int64
	seq            int64
	conversationID string
	silent         bool
	messages       []model.Message
	err            error
}

type sendResultMsg struct {
	generation int64
	tempID     string
	message    model.Message
	err        error
}

// messagesView renders one conversation's message stream. Polling is scoped
// by a generation token so switching conversations orphans the previous
// tick loop, and every load carries a sequence number so a slow response
// can never overwrite a newer one.
type messagesView struct {
	provider     data.Provider
	user         model.CurrentUser
	pollInterval time.Duration

	conversationID string
	subject        string

	generation int64
	issuedSeq  int64
	appliedSeq int64

	now     time.Time
	lastErr error
	loading bool
	loaded  bool

	messages []model.Message

	// scroll is the offset from the bottom in rendered lines; zero means
	// pinned to the newest message.
	scroll     int
	pendingNew bool

	composing    bool
	input        string
	toneIdx      int
	sendInFlight bool

	toast string

	lastWidth  int
	lastHeight int
}

func newMessagesView(provider data.Provider, user model.CurrentUser, pollInterval time.Duration) *messagesView {
	if pollInterval <= 0 {
		pollInterval = defaultMessagePoll
	}
	return &messagesView{
		provider:     provider,
		user:         user,
		pollInterval: pollInterval,
	}
}

// SetConversation retargets the stream. All per-conversation state resets
// and the old generation's ticks become no-ops.
func (v *messagesView) SetConversation(id, subject string) tea.Cmd {
	v.conversationID = id
	v.subject = subject
	v.generation++
	v.issuedSeq = 0
	v.appliedSeq = 0
	v.messages = nil
	v.loaded = false
	v.lastErr = nil
	v.scroll = 0
	v.pendingNew = false
	v.sendInFlight = false
	v.toast = ""
	return tea.Batch(v.loadCmd(false), v.tickCmd())
}

func (v *messagesView) Init() tea.Cmd {
	if v.conversationID == "" {
		return nil
	}
	v.generation++
	return tea.Batch(v.loadCmd(false), v.tickCmd())
}

func (v *messagesView) capturesInput() bool {
	return v.composing
}

func (v *messagesView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case messagesTickMsg:
		if typed.generation != v.generation {
			return nil
		}
		return tea.Batch(v.loadCmd(true), v.tickCmd())
	case messagesLoadedMsg:
		v.applyLoaded(typed)
		return nil
	case sendResultMsg:
		return v.applySendResult(typed)
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *messagesView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.composing {
		return v.handleComposeKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		if v.scroll > 0 {
			v.scroll--
		}
		if v.scroll == 0 {
			v.pendingNew = false
		}
		return nil
	case "k", "up":
		v.scroll++
		return nil
	case "g", "home":
		v.scroll = maxInt(0, v.contentLines()-1)
		return nil
	case "G", "end":
		v.jumpBottom()
		return nil
	case "i":
		if v.conversationID == "" {
			return nil
		}
		v.composing = true
		v.toast = ""
		return nil
	case "tab":
		v.toneIdx = (v.toneIdx + 1) % len(model.Tones)
		return nil
	case "[":
		return v.switchConversationCmd(-1)
	case "]":
		return v.switchConversationCmd(1)
	case "r":
		if v.conversationID == "" {
			return nil
		}
		return v.loadCmd(false)
	case "esc":
		return popViewCmd()
	}
	return nil
}

func (v *messagesView) handleComposeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.composing = false
		return nil
	case tea.KeyTab:
		v.toneIdx = (v.toneIdx + 1) % len(model.Tones)
		return nil
	case tea.KeyEnter:
		return v.submitSend()
	case tea.KeyBackspace:
		if len(v.input) > 0 {
			runes := []rune(v.input)
			v.input = string(runes[:len(runes)-1])
		}
		return nil
	case tea.KeySpace:
		v.input += " "
		return nil
	case tea.KeyRunes:
		v.input += string(msg.Runes)
		return nil
	}
	return nil
}

// submitSend runs the optimistic pipeline: append a temp-id record, clear
// the input, and post in the background. The poll loop keeps running while
// the send is in flight.
func (v *messagesView) submitSend() tea.Cmd {
	content := strings.TrimSpace(v.input)
	if content == "" || v.conversationID == "" || v.user.Email == "" || v.sendInFlight {
		return nil
	}

	tone := model.Tones[v.toneIdx]
	pending := model.NewPendingMessage(v.conversationID, v.user.Email, content, tone, time.Now().UTC())
	v.messages = append(v.messages, pending)
	v.input = ""
	v.sendInFlight = true
	v.jumpBottom()

	provider := v.provider
	generation := v.generation
	req := model.MessageCreate{
		ConversationID: v.conversationID,
		Content:        content,
		Tone:           tone,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		sent, err := provider.SendMessage(ctx, req)
		return sendResultMsg{generation: generation, tempID: pending.ID, message: sent, err: err}
	}
}

func (v *messagesView) applySendResult(msg sendResultMsg) tea.Cmd {
	if msg.generation != v.generation {
		return nil
	}
	v.sendInFlight = false

	if msg.err != nil {
		// Failed sends retract every optimistic entry so the stream only
		// shows what the server accepted.
		v.messages = data.RemovePending(v.messages)
		v.toast = "send failed: " + msg.err.Error()
		return nil
	}

	v.messages = data.ReplacePending(v.messages, msg.tempID, msg.message)
	return v.loadCmd(true)
}

func (v *messagesView) loadCmd(silent bool) tea.Cmd {
	if v.conversationID == "" {
		return nil
	}
	v.issuedSeq++
	seq := v.issuedSeq
	generation := v.generation
	conversationID := v.conversationID
	provider := v.provider
	if !silent {
		v.loading = true
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		messages, err := provider.Messages(ctx, conversationID)
		return messagesLoadedMsg{
			now:            time.Now().UTC(),
			generation:     generation,
			seq:            seq,
			conversationID: conversationID,
			silent:         silent,
			messages:       messages,
			err:            err,
		}
	}
}

func (v *messagesView) tickCmd() tea.Cmd {
	generation := v.generation
	return tea.Tick(v.pollInterval, func(time.Time) tea.Msg {
		return messagesTickMsg{generation: generation}
	})
}

func (v *messagesView) applyLoaded(msg messagesLoadedMsg) {
	if msg.generation != v.generation || msg.conversationID != v.conversationID {
		return
	}
	if msg.seq <= v.appliedSeq {
		return
	}
	v.appliedSeq = msg.seq
	v.now = msg.now
	v.loading = false

	if msg.err != nil {
		v.lastErr = msg.err
		if !msg.silent {
			v.toast = "load failed: " + msg.err.Error()
		}
		return
	}

	v.lastErr = nil
	v.loaded = true

	before := len(v.messages)
	v.messages = data.MergeMessages(v.messages, msg.messages)
	if len(v.messages) > before && v.scroll > 0 {
		v.pendingNew = true
	}
}

// switchConversationCmd looks up the neighbor in last-activity order and
// re-routes through the root model.
func (v *messagesView) switchConversationCmd(delta int) tea.Cmd {
	if v.conversationID == "" {
		return nil
	}
	provider := v.provider
	current := v.conversationID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		conversations, err := provider.Conversations(ctx)
		if err != nil || len(conversations) == 0 {
			return nil
		}

		visible := make([]model.Conversation, 0, len(conversations))
		for _, conv := range conversations {
			if !conv.IsArchived {
				visible = append(visible, conv)
			}
		}
		for i, conv := range visible {
			if conv.ID == current {
				next := i + delta
				if next < 0 || next >= len(visible) {
					return nil
				}
				return openConversationMsg{id: visible[next].ID, subject: visible[next].Subject}
			}
		}
		return nil
	}
}

func (v *messagesView) jumpBottom() {
	v.scroll = 0
	v.pendingNew = false
}

func (v *messagesView) contentLines() int {
	width := v.lastWidth
	if width <= 0 {
		width = 80
	}
	return len(v.renderLines(width, themePalette(ThemeDefault)))
}

func (v *messagesView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	v.lastWidth = width
	v.lastHeight = height

	palette := themePalette(theme)

	title := v.renderTitle(width, palette)
	compose := v.renderComposeBar(width, palette)
	status := v.renderStatusLine(width, palette)

	chrome := lipgloss.Height(title) + lipgloss.Height(compose)
	if status != "" {
		chrome++
	}
	bodyHeight := maxInt(1, height-chrome)

	var body string
	switch {
	case v.conversationID == "":
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Open a conversation from the list (C)")
	case v.loading && !v.loaded:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Loading messages…")
	default:
		body = v.renderWindow(width, bodyHeight, palette)
	}

	parts := []string{title, body, compose}
	if status != "" {
		parts = append(parts, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *messagesView) renderTitle(width int, palette styles.Theme) string {
	subject := v.subject
	if subject == "" {
		subject = "(no conversation)"
	}
	line := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render(subject)
	if v.pendingNew {
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Accent)).Render("new messages, press G")
	}
	return truncateVis(line, width)
}

func (v *messagesView) renderWindow(width, height int, palette styles.Theme) string {
	lines := v.renderLines(width, palette)
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("No messages yet. Press i to write one.")
	}

	v.scroll = clampInt(v.scroll, 0, maxInt(0, len(lines)-height))
	end := len(lines) - v.scroll
	start := maxInt(0, end-height)
	return strings.Join(lines[start:end], "\n")
}

func (v *messagesView) renderLines(width int, palette styles.Theme) []string {
	msgStyles := styles.NewMessageStyles(palette)
	bodyWidth := maxInt(10, width-2)

	lines := make([]string, 0, len(v.messages)*4)
	for _, msg := range v.messages {
		own := msg.IsOwn(v.user.Email)
		pending := msg.IsPending()

		header := msgStyles.RenderHeader(msg.SenderEmail, msg.Timestamp, own)
		header += " " + msgStyles.RenderToneBadge(string(msg.Tone))
		if own {
			header += " " + msgStyles.RenderStatus(string(msg.Status), pending)
		}

		lines = append(lines, truncateVis(header, width))
		body := msgStyles.RenderBody(msg.Content, bodyWidth, pending)
		lines = append(lines, strings.Split(body, "\n")...)
		lines = append(lines, "")
	}
	return lines
}

func (v *messagesView) renderComposeBar(width int, palette styles.Theme) string {
	msgStyles := styles.NewMessageStyles(palette)
	tone := model.Tones[v.toneIdx]
	badge := msgStyles.RenderToneBadge(string(tone))

	if !v.composing {
		hint := badge + " " + lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("i to compose, tab to change tone")
		return truncateVis(hint, width)
	}

	prompt := badge + " > " + v.input + "▌"
	if v.sendInFlight {
		prompt += lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("  sending…")
	}
	return truncateVis(prompt, width)
}

func (v *messagesView) renderStatusLine(width int, palette styles.Theme) string {
	switch {
	case v.toast != "":
		return truncateVis(lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render(v.toast), width)
	case v.lastErr != nil && v.loaded:
		return truncateVis(lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render(fmt.Sprintf("refresh failing, last update %s", relativeTime(v.now, time.Now().UTC()))), width)
	}
	return ""
}
