package bridgettetui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/bridgette-app/bridgette/internal/model"
)

func newLoadedAdminView() *adminView {
	v := newAdminView(&fakeProvider{})
	v.Update(adminLoadedMsg{
		stats: model.AdminStats{TotalFamilies: 2, LinkedFamilies: 1, UnlinkedFamilies: 1, TotalUsers: 3, TotalChildren: 4},
		families: []model.AdminFamily{
			{ID: "fam-1", FamilyName: "Doe Household", Parent1: model.AdminParent{Email: "a@example.com"}, IsLinked: true, ChildrenCount: 2},
			{ID: "fam-2", FamilyName: "Smith Household", Parent1: model.AdminParent{Email: "b@example.com"}, ChildrenCount: 2},
		},
		users: []model.AdminUser{
			{FirstName: "Ana", LastName: "Doe", Email: "a@example.com", HasFamily: true, FamilyName: "Doe Household"},
			{FirstName: "Ben", LastName: "Smith", Email: "b@example.com", HasFamily: true, FamilyName: "Smith Household"},
			{FirstName: "Cal", LastName: "Free", Email: "c@example.com"},
		},
	})
	return v
}

func TestAdminTabToggle(t *testing.T) {
	v := newLoadedAdminView()
	require.Equal(t, adminTabFamilies, v.tab)
	require.Equal(t, 2, v.rowCount())

	v.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, adminTabUsers, v.tab)
	require.Equal(t, 3, v.rowCount())
	require.Zero(t, v.selected)
}

func TestAdminFamilyFilterCaseInsensitive(t *testing.T) {
	v := newLoadedAdminView()

	v.handleKey(runeKey('/'))
	require.True(t, v.capturesInput())
	for _, r := range "SMITH" {
		v.handleKey(runeKey(r))
	}
	require.Len(t, v.filteredFamilies(), 1)
	require.Equal(t, "fam-2", v.filteredFamilies()[0].ID)

	v.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, v.capturesInput())
	require.Len(t, v.filteredFamilies(), 2)
}

func TestAdminFilterOnlyOnFamiliesTab(t *testing.T) {
	v := newLoadedAdminView()
	v.handleKey(tea.KeyMsg{Type: tea.KeyTab})

	v.handleKey(runeKey('/'))
	require.False(t, v.filterActive)
}

func TestAdminRenderStats(t *testing.T) {
	v := newLoadedAdminView()

	out := v.View(120, 24, ThemeDefault)
	require.Contains(t, out, "families 2 (1 linked, 1 unlinked)")
	require.Contains(t, out, "users 3")
	require.Contains(t, out, "children 4")
	require.Contains(t, out, "Doe Household")
}
