package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// MessageStyles contains pre-built styles for message rendering.
type MessageStyles struct {
	Theme Theme

	OwnHeader   lipgloss.Style
	OtherHeader lipgloss.Style
	Timestamp   lipgloss.Style
	Body        lipgloss.Style
	PendingBody lipgloss.Style
	Unread      lipgloss.Style
}

// NewMessageStyles builds a reusable style set for messages.
func NewMessageStyles(theme Theme) MessageStyles {
	return MessageStyles{
		Theme:       theme,
		OwnHeader:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Message.Own)).Bold(true),
		OtherHeader: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Message.Other)).Bold(true),
		Timestamp:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Muted)),
		Body:        lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Foreground)),
		PendingBody: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Message.Pending)).Faint(true),
		Unread:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Accent)).Bold(true),
	}
}

// RenderHeader renders a message header with sender + timestamp.
func (s MessageStyles) RenderHeader(sender string, ts time.Time, own bool) string {
	name := strings.TrimSpace(sender)
	if name == "" {
		name = "unknown"
	}

	header := s.OtherHeader
	if own {
		header = s.OwnHeader
	}

	return header.Render(name) + " " + s.Timestamp.Render(ts.Format("15:04"))
}

// RenderBody renders wrapped body text. Pending messages render faint until
// the server acknowledges them.
func (s MessageStyles) RenderBody(body string, width int, pending bool) string {
	style := s.Body
	if pending {
		style = s.PendingBody
	}
	return style.Render(wrapMessageBody(body, width))
}

// RenderToneBadge renders the tone label next to a message header.
func (s MessageStyles) RenderToneBadge(tone string) string {
	var color string
	switch tone {
	case "friendly":
		color = s.Theme.Tone.Friendly
	case "neutral-legal":
		color = s.Theme.Tone.NeutralLegal
	default:
		color = s.Theme.Tone.MatterOfFact
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("[" + tone + "]")
}

// RenderStatus renders the delivery state marker for own messages.
func (s MessageStyles) RenderStatus(status string, pending bool) string {
	if pending {
		return s.Timestamp.Render("…")
	}
	switch status {
	case "read":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.Status.Read)).Render("✓✓")
	case "delivered":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.Status.Delivered)).Render("✓✓")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.Status.Sent)).Render("✓")
	}
}

// RenderCategoryBadge renders a [category] pill in the category's color.
func (s MessageStyles) RenderCategoryBadge(category string) string {
	if category == "" {
		return ""
	}
	color := s.Theme.CategoryColor(category)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("[" + category + "]")
}

// RenderUnreadIndicator renders a bold unread dot.
func (s MessageStyles) RenderUnreadIndicator(unread bool) string {
	if !unread {
		return ""
	}
	return s.Unread.Render("●")
}

func wrapMessageBody(body string, width int) string {
	if width <= 0 {
		return body
	}

	parts := strings.Split(body, "\n")
	for i := range parts {
		parts[i] = wordwrap.String(parts[i], width)
	}
	return strings.Join(parts, "\n")
}
