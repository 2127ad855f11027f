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

const loadTimeout = 8 * time.Second

// categoryFilters is the cycle order for the category filter.
var categoryFilters = append([]string{model.CategoryAll},
	func() []string {
		out := make([]string, 0, len(model.Categories))
		for _, c := range model.Categories {
			out = append(out, string(c))
		}
		return out
	}()...)

type conversationsTickMsg struct {
	generation int64
}

type conversationsLoadedMsg struct {
	now           time.Time
	generation    int64
	seq           int64
	silent        bool
	conversations []model.Conversation
	err           error
}

type starResultMsg struct {
	id      string
	starred bool
	err     error
}

type archiveResultMsg struct {
	id  string
	err error
}

type createConversationResultMsg struct {
	conversation model.Conversation
	err          error
}

type conversationsView struct {
	provider     data.Provider
	pollInterval time.Duration

	// generation scopes tick and load messages to the current mount;
	// bumping it on Init cancels the previous poll loop.
	generation int64
	issuedSeq  int64
	appliedSeq int64

	now     time.Time
	lastErr error
	loading bool
	loaded  bool

	conversations []model.Conversation

	search       string
	searchActive bool
	categoryIdx  int

	selected int
	top      int

	// new-conversation overlay
	creating        bool
	createInFlight  bool
	overlaySubject  string
	overlayCategory int

	toast string

	lastHeight int
}

func newConversationsView(provider data.Provider, pollInterval time.Duration) *conversationsView {
	if pollInterval <= 0 {
		pollInterval = defaultConversationPoll
	}
	return &conversationsView{
		provider:     provider,
		pollInterval: pollInterval,
	}
}

func (v *conversationsView) Init() tea.Cmd {
	v.generation++
	return tea.Batch(v.loadCmd(false), v.tickCmd())
}

func (v *conversationsView) capturesInput() bool {
	return v.searchActive || v.creating
}

func (v *conversationsView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case conversationsTickMsg:
		if typed.generation != v.generation {
			return nil
		}
		return tea.Batch(v.loadCmd(true), v.tickCmd())
	case conversationsLoadedMsg:
		v.applyLoaded(typed)
		return nil
	case starResultMsg:
		if typed.err != nil {
			// No rollback: the next successful poll re-syncs the flag.
			v.toast = "star failed: " + typed.err.Error()
		}
		return nil
	case archiveResultMsg:
		if typed.err != nil {
			v.toast = "archive failed: " + typed.err.Error()
		}
		return nil
	case createConversationResultMsg:
		return v.applyCreateResult(typed)
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *conversationsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.creating {
		return v.handleOverlayKey(msg)
	}
	if v.searchActive {
		return v.handleSearchKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		v.moveSelection(1)
		return nil
	case "k", "up":
		v.moveSelection(-1)
		return nil
	case "g":
		v.selected = 0
		v.top = 0
		return nil
	case "G", "end":
		filtered := v.filtered()
		v.selected = maxInt(0, len(filtered)-1)
		v.ensureVisible(len(filtered))
		return nil
	case "enter":
		if conv, ok := v.selectedConversation(); ok {
			return openConversationCmd(conv.ID, conv.Subject)
		}
		return nil
	case "n":
		v.creating = true
		v.overlaySubject = ""
		v.overlayCategory = 0
		v.toast = ""
		return nil
	case "*":
		return v.toggleStar()
	case "e":
		return v.archiveSelected()
	case "/":
		v.searchActive = true
		return nil
	case "c":
		v.categoryIdx = (v.categoryIdx + 1) % len(categoryFilters)
		v.clampSelection()
		return nil
	case "r":
		return v.loadCmd(false)
	case "esc":
		if v.search != "" || v.categoryIdx != 0 {
			v.search = ""
			v.categoryIdx = 0
			v.clampSelection()
			return nil
		}
		return nil
	}
	return nil
}

func (v *conversationsView) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.searchActive = false
		v.search = ""
		v.clampSelection()
	case tea.KeyEnter:
		v.searchActive = false
	case tea.KeyBackspace:
		if len(v.search) > 0 {
			runes := []rune(v.search)
			v.search = string(runes[:len(runes)-1])
		}
		v.clampSelection()
	case tea.KeyRunes:
		v.search += string(msg.Runes)
		v.clampSelection()
	case tea.KeySpace:
		v.search += " "
		v.clampSelection()
	}
	return nil
}

func (v *conversationsView) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.creating = false
		v.createInFlight = false
		return nil
	case tea.KeyTab:
		v.overlayCategory = (v.overlayCategory + 1) % len(model.Categories)
		return nil
	case tea.KeyEnter:
		return v.submitCreate()
	case tea.KeyBackspace:
		if len(v.overlaySubject) > 0 {
			runes := []rune(v.overlaySubject)
			v.overlaySubject = string(runes[:len(runes)-1])
		}
		return nil
	case tea.KeySpace:
		v.overlaySubject += " "
		return nil
	case tea.KeyRunes:
		v.overlaySubject += string(msg.Runes)
		return nil
	}
	return nil
}

func (v *conversationsView) submitCreate() tea.Cmd {
	if v.createInFlight {
		return nil
	}
	subject := strings.TrimSpace(v.overlaySubject)
	if subject == "" {
		v.toast = "subject is required"
		return nil
	}

	req := model.ConversationCreate{
		Subject:  subject,
		Category: model.Categories[v.overlayCategory],
	}
	v.createInFlight = true
	provider := v.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		conv, err := provider.CreateConversation(ctx, req)
		return createConversationResultMsg{conversation: conv, err: err}
	}
}

func (v *conversationsView) applyCreateResult(msg createConversationResultMsg) tea.Cmd {
	v.createInFlight = false
	if msg.err != nil {
		v.toast = "create failed: " + msg.err.Error()
		return nil
	}

	v.creating = false
	v.overlaySubject = ""
	v.conversations = append([]model.Conversation{msg.conversation}, v.conversations...)
	v.search = ""
	v.categoryIdx = 0
	v.selected = 0
	v.top = 0

	// The new conversation becomes active immediately; the next poll
	// brings the authoritative ordering.
	return tea.Batch(
		openConversationCmd(msg.conversation.ID, msg.conversation.Subject),
		v.loadCmd(true),
	)
}

func (v *conversationsView) toggleStar() tea.Cmd {
	conv, ok := v.selectedConversation()
	if !ok {
		return nil
	}

	// Flip locally first; the remote result is advisory.
	for i := range v.conversations {
		if v.conversations[i].ID == conv.ID {
			v.conversations[i].IsStarred = !v.conversations[i].IsStarred
			break
		}
	}

	provider := v.provider
	id := conv.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		starred, err := provider.ToggleStar(ctx, id)
		return starResultMsg{id: id, starred: starred, err: err}
	}
}

func (v *conversationsView) archiveSelected() tea.Cmd {
	conv, ok := v.selectedConversation()
	if !ok {
		return nil
	}

	// Archived conversations leave the visible list immediately; a failed
	// remote call re-surfaces it on the next poll.
	for i := range v.conversations {
		if v.conversations[i].ID == conv.ID {
			v.conversations[i].IsArchived = true
			break
		}
	}
	v.clampSelection()

	provider := v.provider
	id := conv.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		err := provider.ArchiveConversation(ctx, id)
		return archiveResultMsg{id: id, err: err}
	}
}

func (v *conversationsView) loadCmd(silent bool) tea.Cmd {
	v.issuedSeq++
	seq := v.issuedSeq
	generation := v.generation
	provider := v.provider
	if !silent {
		v.loading = true
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		conversations, err := provider.Conversations(ctx)
		return conversationsLoadedMsg{
			now:           time.Now().UTC(),
			generation:    generation,
			seq:           seq,
			silent:        silent,
			conversations: conversations,
			err:           err,
		}
	}
}

func (v *conversationsView) tickCmd() tea.Cmd {
	generation := v.generation
	return tea.Tick(v.pollInterval, func(time.Time) tea.Msg {
		return conversationsTickMsg{generation: generation}
	})
}

func (v *conversationsView) applyLoaded(msg conversationsLoadedMsg) {
	if msg.generation != v.generation {
		return
	}
	if msg.seq <= v.appliedSeq {
		// A newer response already landed; this one is stale.
		return
	}
	v.appliedSeq = msg.seq
	v.now = msg.now
	v.loading = false

	if msg.err != nil {
		// Silent polls park the error; non-silent loads surface it.
		v.lastErr = msg.err
		if !msg.silent {
			v.toast = "load failed: " + msg.err.Error()
		}
		return
	}

	v.lastErr = nil
	v.loaded = true
	anchor := ""
	if conv, ok := v.selectedConversation(); ok {
		anchor = conv.ID
	}

	v.conversations = msg.conversations

	filtered := v.filtered()
	if anchor != "" {
		for i := range filtered {
			if filtered[i].ID == anchor {
				v.selected = i
				break
			}
		}
	}
	v.clampSelection()
}

func (v *conversationsView) filtered() []model.Conversation {
	category := categoryFilters[v.categoryIdx]
	out := make([]model.Conversation, 0, len(v.conversations))
	for _, conv := range v.conversations {
		if conv.MatchesFilter(v.search, category) {
			out = append(out, conv)
		}
	}
	return out
}

func (v *conversationsView) selectedConversation() (model.Conversation, bool) {
	filtered := v.filtered()
	if v.selected < 0 || v.selected >= len(filtered) {
		return model.Conversation{}, false
	}
	return filtered[v.selected], true
}

func (v *conversationsView) moveSelection(delta int) {
	count := len(v.filtered())
	if count == 0 {
		v.selected = 0
		v.top = 0
		return
	}
	v.selected = clampInt(v.selected+delta, 0, count-1)
	v.ensureVisible(count)
}

func (v *conversationsView) clampSelection() {
	count := len(v.filtered())
	if count == 0 {
		v.selected = 0
		v.top = 0
		return
	}
	v.selected = clampInt(v.selected, 0, count-1)
	v.ensureVisible(count)
}

func (v *conversationsView) ensureVisible(count int) {
	visible := maxInt(1, v.visibleRows())
	if v.selected < v.top {
		v.top = v.selected
	}
	if v.selected >= v.top+visible {
		v.top = v.selected - visible + 1
	}
	v.top = clampInt(v.top, 0, maxInt(0, count-1))
}

func (v *conversationsView) visibleRows() int {
	// Two rendered lines per conversation row.
	if v.lastHeight <= 0 {
		return 10
	}
	return maxInt(1, (v.lastHeight-3)/2)
}

func (v *conversationsView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	v.lastHeight = height

	palette := themePalette(theme)
	header := v.renderFilterLine(width, palette)

	var body string
	switch {
	case v.creating:
		body = v.renderOverlay(width, height-lipgloss.Height(header)-1, palette)
	case v.loading && !v.loaded:
		body = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Loading conversations…")
	default:
		body = v.renderRows(width, height-lipgloss.Height(header)-1, palette)
	}

	lines := []string{header, body}
	if v.toast != "" {
		toast := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render(truncate(v.toast, maxInt(0, width-2)))
		lines = append(lines, toast)
	} else if v.lastErr != nil && v.loaded {
		stale := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("refresh failing, showing last data")
		lines = append(lines, stale)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *conversationsView) renderFilterLine(width int, palette styles.Theme) string {
	category := categoryFilters[v.categoryIdx]
	left := fmt.Sprintf("category:%s", category)
	if v.searchActive {
		left += "  /" + v.search + "▌"
	} else if v.search != "" {
		left += "  /" + v.search
	}
	right := fmt.Sprintf("%d conversations", len(v.filtered()))

	gap := maxInt(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render(truncateVis(line, width))
}

func (v *conversationsView) renderRows(width, height int, palette styles.Theme) string {
	filtered := v.filtered()
	if len(filtered) == 0 {
		if v.search != "" || v.categoryIdx != 0 {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("No conversations match the filter")
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("No conversations yet. Press n to start one.")
	}

	msgStyles := styles.NewMessageStyles(palette)
	v.ensureVisible(len(filtered))

	out := make([]string, 0, height)
	remaining := height
	for i := v.top; i < len(filtered) && remaining > 1; i++ {
		conv := filtered[i]
		selected := i == v.selected

		star := " "
		if conv.IsStarred {
			star = "★"
		}
		unread := ""
		if conv.UnreadCount > 0 {
			unread = " " + msgStyles.RenderUnreadIndicator(true) + fmt.Sprintf(" %d", conv.UnreadCount)
		}

		subjectStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Foreground))
		if selected {
			subjectStyle = subjectStyle.Bold(true).Foreground(lipgloss.Color(palette.Chrome.SelectedItem))
		}

		title := fmt.Sprintf("%s %s%s", star, subjectStyle.Render(conv.Subject), unread)
		meta := fmt.Sprintf("  %s  %d messages  %s",
			msgStyles.RenderCategoryBadge(string(conv.Category)),
			conv.MessageCount,
			relativeTime(conv.LastActivity(), v.now),
		)

		out = append(out, truncateVis(title, width), truncateVis(lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render(meta), width))
		remaining -= 2
	}
	return strings.Join(out, "\n")
}

func (v *conversationsView) renderOverlay(width, height int, palette styles.Theme) string {
	category := model.Categories[v.overlayCategory]

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render("New conversation"),
		"",
		"Subject:  " + v.overlaySubject + "▌",
		"Category: " + lipgloss.NewStyle().Foreground(lipgloss.Color(palette.CategoryColor(string(category)))).Render(string(category)) + "  (tab to cycle)",
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Enter create  Esc cancel"),
	}
	if v.createInFlight {
		lines = append(lines, "", "creating…")
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Base.Border)).
		Padding(1, 2).
		Width(minInt(maxInt(40, width-10), 72))

	return lipgloss.Place(width, maxInt(1, height), lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}
