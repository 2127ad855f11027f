package bridgettetui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/model"
)

func testFamily() model.Family {
	return model.Family{
		ID:           "fam-1",
		FamilyName:   "Doe Household",
		Parent1Email: "me@example.com",
		Parent2Email: "other@example.com",
		Children: []model.Child{
			{ID: "child-1", Name: "Alex", DateOfBirth: "2017-04-02", School: "Lincoln Elementary"},
			{ID: "child-2", Name: "Sam", DateOfBirth: "2020-11-19"},
		},
	}
}

func TestFamilyLoads(t *testing.T) {
	v := newFamilyView(&fakeProvider{
		familyFn: func(ctx context.Context) (model.Family, error) {
			return testFamily(), nil
		},
	})

	msg := v.loadCmd()().(familyLoadedMsg)
	v.Update(msg)

	require.True(t, v.loaded)
	require.False(t, v.noFamily)
	require.Len(t, v.family.Children, 2)
}

func TestFamilyNotFoundShowsSetup(t *testing.T) {
	v := newFamilyView(&fakeProvider{
		familyFn: func(ctx context.Context) (model.Family, error) {
			return model.Family{}, &api.Error{Status: 404, Detail: "No family found"}
		},
	})

	msg := v.loadCmd()().(familyLoadedMsg)
	require.True(t, msg.notFound)
	require.NoError(t, msg.err)
	v.Update(msg)
	require.True(t, v.noFamily)

	// Enter opens the setup form, which captures input.
	v.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.setupOpen)
	require.True(t, v.capturesInput())
}

func TestFamilySetupRequiresName(t *testing.T) {
	v := newFamilyView(&fakeProvider{})
	v.noFamily = true
	v.openSetup()

	require.Nil(t, v.submitSetup())
	require.Contains(t, v.toast, "family name")
}

func TestFamilyCreateLeavesSetup(t *testing.T) {
	v := newFamilyView(&fakeProvider{})
	v.noFamily = true
	v.openSetup()
	v.setupName = "Doe Household"

	cmd := v.submitSetup()
	require.NotNil(t, cmd)
	v.Update(cmd().(familyCreatedMsg))

	require.False(t, v.setupOpen)
	require.False(t, v.noFamily)
	require.Equal(t, "Doe Household", v.family.FamilyName)
}

func TestFamilyEditFormPrefilled(t *testing.T) {
	v := newFamilyView(&fakeProvider{})
	v.loaded = true
	v.family = testFamily()

	v.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.formOpen)
	require.Equal(t, "child-1", v.formChildID)
	require.Equal(t, "Alex", v.formValues[fieldChildName])
	require.Equal(t, "2017-04-02", v.formValues[fieldChildDOB])
}

func TestFamilyAddFormValidates(t *testing.T) {
	v := newFamilyView(&fakeProvider{})
	v.loaded = true
	v.family = testFamily()

	v.handleKey(runeKey('a'))
	require.True(t, v.formOpen)
	require.Empty(t, v.formChildID)

	// Missing name and date of birth.
	require.Nil(t, v.submitForm())
	require.NotEmpty(t, v.toast)
}

func TestFamilyDeleteNeedsConfirmation(t *testing.T) {
	deleted := make(chan string, 1)
	v := newFamilyView(&fakeProvider{})
	v.loaded = true
	v.family = testFamily()

	v.handleKey(runeKey('d'))
	require.Equal(t, "child-1", v.confirmDeleteID)

	// Any key but y cancels.
	v.handleKey(runeKey('n'))
	require.Empty(t, v.confirmDeleteID)

	v.handleKey(runeKey('d'))
	cmd := v.handleKey(runeKey('y'))
	require.NotNil(t, cmd)
	require.Empty(t, v.confirmDeleteID)

	go func() {
		msg := cmd().(childDeletedMsg)
		deleted <- msg.id
	}()
	require.Equal(t, "child-1", <-deleted)
}
