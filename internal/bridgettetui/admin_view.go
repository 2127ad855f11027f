package bridgettetui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bridgette-app/bridgette/internal/bridgettetui/data"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/styles"
	"github.com/bridgette-app/bridgette/internal/model"
)

type adminTab int

const (
	adminTabFamilies adminTab = iota
	adminTabUsers
)

type adminLoadedMsg struct {
	stats    model.AdminStats
	families []model.AdminFamily
	users    []model.AdminUser
	err      error
}

// adminView is the platform dashboard, visible only to admin users. It
// loads everything in one shot; admins refresh manually.
type adminView struct {
	provider data.Provider

	loading bool
	loaded  bool
	lastErr error

	stats    model.AdminStats
	families []model.AdminFamily
	users    []model.AdminUser

	tab          adminTab
	filter       string
	filterActive bool
	selected     int
	top          int

	lastHeight int
}

func newAdminView(provider data.Provider) *adminView {
	return &adminView{provider: provider}
}

func (v *adminView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *adminView) capturesInput() bool {
	return v.filterActive
}

func (v *adminView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case adminLoadedMsg:
		v.loading = false
		if typed.err != nil {
			v.lastErr = typed.err
			return nil
		}
		v.lastErr = nil
		v.loaded = true
		v.stats = typed.stats
		v.families = typed.families
		v.users = typed.users
		v.clampSelection()
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *adminView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.filterActive {
		switch msg.Type {
		case tea.KeyEsc:
			v.filterActive = false
			v.filter = ""
			v.clampSelection()
		case tea.KeyEnter:
			v.filterActive = false
		case tea.KeyBackspace:
			if len(v.filter) > 0 {
				runes := []rune(v.filter)
				v.filter = string(runes[:len(runes)-1])
			}
			v.clampSelection()
		case tea.KeySpace:
			v.filter += " "
			v.clampSelection()
		case tea.KeyRunes:
			v.filter += string(msg.Runes)
			v.clampSelection()
		}
		return nil
	}

	switch msg.String() {
	case "j", "down":
		v.selected++
		v.clampSelection()
	case "k", "up":
		v.selected--
		v.clampSelection()
	case "tab":
		if v.tab == adminTabFamilies {
			v.tab = adminTabUsers
		} else {
			v.tab = adminTabFamilies
		}
		v.selected = 0
		v.top = 0
	case "/":
		if v.tab == adminTabFamilies {
			v.filterActive = true
		}
	case "r":
		return v.loadCmd()
	case "esc":
		if v.filter != "" {
			v.filter = ""
			v.clampSelection()
			return nil
		}
		return popViewCmd()
	}
	return nil
}

func (v *adminView) loadCmd() tea.Cmd {
	v.loading = true
	provider := v.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		stats, err := provider.AdminStats(ctx)
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		families, err := provider.AdminFamilies(ctx)
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		users, err := provider.AdminUsers(ctx)
		if err != nil {
			return adminLoadedMsg{err: err}
		}
		return adminLoadedMsg{stats: stats, families: families, users: users}
	}
}

func (v *adminView) filteredFamilies() []model.AdminFamily {
	filter := strings.ToLower(strings.TrimSpace(v.filter))
	if filter == "" {
		return v.families
	}
	out := make([]model.AdminFamily, 0, len(v.families))
	for _, f := range v.families {
		if strings.Contains(strings.ToLower(f.FamilyName), filter) {
			out = append(out, f)
		}
	}
	return out
}

func (v *adminView) rowCount() int {
	if v.tab == adminTabFamilies {
		return len(v.filteredFamilies())
	}
	return len(v.users)
}

func (v *adminView) clampSelection() {
	count := v.rowCount()
	if count == 0 {
		v.selected = 0
		v.top = 0
		return
	}
	v.selected = clampInt(v.selected, 0, count-1)
	visible := maxInt(1, v.lastHeight-5)
	if v.selected < v.top {
		v.top = v.selected
	}
	if v.selected >= v.top+visible {
		v.top = v.selected - visible + 1
	}
}

func (v *adminView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	v.lastHeight = height

	palette := themePalette(theme)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))

	switch {
	case v.loading && !v.loaded:
		return muted.Render("Loading admin data…")
	case v.lastErr != nil && !v.loaded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render("admin load failed: " + v.lastErr.Error())
	}

	lines := []string{
		v.renderStats(width, palette),
		v.renderTabs(width, palette),
		"",
	}

	visible := maxInt(1, height-len(lines)-1)
	if v.tab == adminTabFamilies {
		lines = append(lines, v.renderFamilies(width, visible, palette)...)
	} else {
		lines = append(lines, v.renderUsers(width, visible, palette)...)
	}
	if v.lastErr != nil {
		lines = append(lines, muted.Render("refresh failing, showing last data"))
	}
	return strings.Join(lines, "\n")
}

func (v *adminView) renderStats(width int, palette styles.Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))
	line := title.Render("Admin") + muted.Render(fmt.Sprintf(
		"  families %d (%d linked, %d unlinked)  users %d  children %d",
		v.stats.TotalFamilies, v.stats.LinkedFamilies, v.stats.UnlinkedFamilies,
		v.stats.TotalUsers, v.stats.TotalChildren,
	))
	return truncateVis(line, width)
}

func (v *adminView) renderTabs(width int, palette styles.Theme) string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.SelectedItem))
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))

	families := inactive.Render("Families")
	users := inactive.Render("Users")
	if v.tab == adminTabFamilies {
		families = active.Render("Families")
	} else {
		users = active.Render("Users")
	}

	line := families + "  " + users
	if v.filterActive {
		line += "  /" + v.filter + "▌"
	} else if v.filter != "" {
		line += "  /" + v.filter
	}
	return truncateVis(line, width)
}

func (v *adminView) renderFamilies(width, visible int, palette styles.Theme) []string {
	families := v.filteredFamilies()
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))
	if len(families) == 0 {
		return []string{muted.Render("no families match")}
	}

	lines := make([]string, 0, visible)
	for i := v.top; i < len(families) && i < v.top+visible; i++ {
		f := families[i]
		marker := "  "
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Foreground))
		if i == v.selected {
			marker = "> "
			nameStyle = nameStyle.Bold(true).Foreground(lipgloss.Color(palette.Chrome.SelectedItem))
		}

		linked := muted.Render("unlinked")
		if f.IsLinked {
			linked = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Read)).Render("linked")
		}
		parents := f.Parent1.Email
		if f.Parent2 != nil {
			parents += ", " + f.Parent2.Email
		}
		line := fmt.Sprintf("%s%s  %s  %s  %s", marker, nameStyle.Render(f.FamilyName), linked,
			muted.Render(fmt.Sprintf("%d children", f.ChildrenCount)), muted.Render(parents))
		lines = append(lines, truncateVis(line, width))
	}
	return lines
}

func (v *adminView) renderUsers(width, visible int, palette styles.Theme) []string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))
	if len(v.users) == 0 {
		return []string{muted.Render("no users")}
	}

	lines := make([]string, 0, visible)
	for i := v.top; i < len(v.users) && i < v.top+visible; i++ {
		u := v.users[i]
		marker := "  "
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Foreground))
		if i == v.selected {
			marker = "> "
			nameStyle = nameStyle.Bold(true).Foreground(lipgloss.Color(palette.Chrome.SelectedItem))
		}

		family := muted.Render("no family")
		if u.HasFamily {
			family = muted.Render(u.FamilyName)
		}
		line := fmt.Sprintf("%s%s  %s  %s", marker, nameStyle.Render(u.FirstName+" "+u.LastName), u.Email, family)
		lines = append(lines, truncateVis(line, width))
	}
	return lines
}
