package bridgettetui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpItem struct {
	key  string
	desc string
}

type helpSection struct {
	title string
	items []helpItem
}

func (m *Model) renderHelpOverlay(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)

	sections := helpForView(m.activeViewID())
	lines := make([]string, 0, 32)
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render("Help")
	lines = append(lines, head, "")

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Base.Accent))
	for _, sec := range sections {
		if strings.TrimSpace(sec.title) != "" {
			lines = append(lines, lipgloss.NewStyle().Bold(true).Render(sec.title))
		}
		for _, it := range sec.items {
			lines = append(lines, "  "+keyStyle.Render(it.key)+"  "+it.desc)
		}
		lines = append(lines, "")
	}

	lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Dismiss: ? or Esc"))
	content := strings.Join(lines, "\n")

	panelWidth := minInt(maxInt(50, width-10), 96)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Base.Border)).
		Background(lipgloss.Color(palette.Base.Background)).
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Padding(1, 2).
		Width(panelWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(content))
}

func helpForView(id ViewID) []helpSection {
	global := helpSection{
		title: "Global",
		items: []helpItem{
			{key: "q / Ctrl+C", desc: "quit"},
			{key: "Esc", desc: "back"},
			{key: "C / F / X", desc: "conversations / family / expenses"},
			{key: "?", desc: "toggle help"},
		},
	}

	switch id {
	case ViewConversations:
		return []helpSection{
			global,
			{title: "Conversations", items: []helpItem{
				{key: "j/k", desc: "move selection"},
				{key: "Enter", desc: "open conversation"},
				{key: "n", desc: "new conversation"},
				{key: "*", desc: "star/unstar"},
				{key: "e", desc: "archive"},
				{key: "/", desc: "filter by subject"},
				{key: "c", desc: "cycle category filter"},
			}},
		}
	case ViewMessages:
		return []helpSection{
			global,
			{title: "Messages", items: []helpItem{
				{key: "j/k", desc: "scroll"},
				{key: "g/G", desc: "top/bottom"},
				{key: "i", desc: "compose"},
				{key: "tab", desc: "cycle tone (while composing)"},
				{key: "Enter", desc: "send (while composing)"},
				{key: "[ / ]", desc: "previous/next conversation"},
			}},
		}
	case ViewFamily:
		return []helpSection{
			global,
			{title: "Family", items: []helpItem{
				{key: "j/k", desc: "move selection"},
				{key: "a", desc: "add child"},
				{key: "Enter", desc: "edit child"},
				{key: "d", desc: "remove child"},
				{key: "r", desc: "refresh"},
			}},
		}
	case ViewAdmin:
		return []helpSection{
			global,
			{title: "Admin", items: []helpItem{
				{key: "j/k", desc: "move selection"},
				{key: "tab", desc: "toggle families/users"},
				{key: "/", desc: "filter families by name"},
				{key: "r", desc: "refresh"},
			}},
		}
	default:
		return []helpSection{global}
	}
}
