package bridgettetui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bridgette-app/bridgette/internal/bridgettetui/styles"
)

func (m *Model) renderHeader() string {
	palette := themePalette(m.theme)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Background(lipgloss.Color(palette.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	left := "bridgette"
	center := m.user.FullName()
	right := m.connectionStatus(palette)
	line := joinHeader(left, center, right, m.width)
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	palette := themePalette(m.theme)

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Background(lipgloss.Color(palette.Chrome.Footer)).
		Padding(0, 1)

	base := "[C]onversations [F]amily e[X]penses [?]Help q Quit"
	if m.user.IsAdmin() {
		base = "[C]onversations [F]amily e[X]penses [A]dmin [?]Help q Quit"
	}
	return style.Width(maxInt(0, m.width)).Render(truncate(base, maxInt(0, m.width-2)))
}

func (m *Model) connectionStatus(palette styles.Theme) string {
	if m.isOffline() {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(palette.Status.Offline)).
			Bold(true).
			Render("offline")
	}
	return "online"
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return left
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		line := left
		if right != "" {
			line = left + "  " + right
		}
		return truncateVis(line, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return truncateVis(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}
