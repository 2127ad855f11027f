package bridgettetui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/data"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/styles"
	"github.com/bridgette-app/bridgette/internal/model"
)

type familyLoadedMsg struct {
	family   model.Family
	notFound bool
	err      error
}

type familyCreatedMsg struct {
	family model.Family
	err    error
}

type childSavedMsg struct {
	err error
}

type childDeletedMsg struct {
	id  string
	err error
}

type childFormField int

const (
	fieldChildName childFormField = iota
	fieldChildDOB
	fieldChildGrade
	fieldChildSchool
	fieldChildAllergies
	fieldChildMedications
	fieldChildNotes
	childFormFieldCount
)

var childFieldLabels = map[childFormField]string{
	fieldChildName:        "Name",
	fieldChildDOB:         "Date of birth (YYYY-MM-DD)",
	fieldChildGrade:       "Grade",
	fieldChildSchool:      "School",
	fieldChildAllergies:   "Allergies",
	fieldChildMedications: "Medications",
	fieldChildNotes:       "Notes",
}

// familyView shows the shared family profile and edits the children list.
// It loads on entry and on demand; there is no poll loop here since the
// profile changes rarely.
type familyView struct {
	provider data.Provider

	loading bool
	loaded  bool
	lastErr error

	family   model.Family
	noFamily bool

	selected int

	// child add/edit form
	formOpen     bool
	formChildID  string // empty when adding
	formValues   [childFormFieldCount]string
	formField    childFormField
	formInFlight bool

	// family setup form, shown when no family exists yet
	setupOpen     bool
	setupName     string
	setupCoParent string
	setupField    int
	setupInFlight bool

	confirmDeleteID string

	toast string
}

func newFamilyView(provider data.Provider) *familyView {
	return &familyView{provider: provider}
}

func (v *familyView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *familyView) capturesInput() bool {
	return v.formOpen || v.setupOpen
}

func (v *familyView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case familyLoadedMsg:
		v.loading = false
		if typed.err != nil {
			v.lastErr = typed.err
			return nil
		}
		v.lastErr = nil
		v.loaded = true
		v.noFamily = typed.notFound
		if !typed.notFound {
			v.family = typed.family
		}
		v.clampSelection()
		return nil
	case familyCreatedMsg:
		v.setupInFlight = false
		if typed.err != nil {
			v.toast = "setup failed: " + typed.err.Error()
			return nil
		}
		v.setupOpen = false
		v.noFamily = false
		v.family = typed.family
		v.toast = ""
		return nil
	case childSavedMsg:
		v.formInFlight = false
		if typed.err != nil {
			v.toast = "save failed: " + typed.err.Error()
			return nil
		}
		v.formOpen = false
		v.toast = ""
		return v.loadCmd()
	case childDeletedMsg:
		if typed.err != nil {
			v.toast = "remove failed: " + typed.err.Error()
			return nil
		}
		v.toast = ""
		return v.loadCmd()
	case tea.KeyMsg:
		return v.handleKey(typed)
	}
	return nil
}

func (v *familyView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.setupOpen {
		return v.handleSetupKey(msg)
	}
	if v.formOpen {
		return v.handleFormKey(msg)
	}
	if v.confirmDeleteID != "" {
		return v.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "j", "down":
		v.selected++
		v.clampSelection()
		return nil
	case "k", "up":
		v.selected--
		v.clampSelection()
		return nil
	case "a":
		if v.noFamily {
			return nil
		}
		v.openForm(model.Child{})
		return nil
	case "enter":
		if v.noFamily {
			v.openSetup()
			return nil
		}
		if child, ok := v.selectedChild(); ok {
			v.openForm(child)
		}
		return nil
	case "d":
		if child, ok := v.selectedChild(); ok {
			v.confirmDeleteID = child.ID
		}
		return nil
	case "r":
		return v.loadCmd()
	case "esc":
		return popViewCmd()
	}
	return nil
}

func (v *familyView) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		id := v.confirmDeleteID
		v.confirmDeleteID = ""
		provider := v.provider
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			return childDeletedMsg{id: id, err: provider.DeleteChild(ctx, id)}
		}
	default:
		v.confirmDeleteID = ""
		return nil
	}
}

func (v *familyView) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	field := func() *string {
		if v.setupField == 0 {
			return &v.setupName
		}
		return &v.setupCoParent
	}()

	switch msg.Type {
	case tea.KeyEsc:
		v.setupOpen = false
		return nil
	case tea.KeyTab, tea.KeyDown:
		v.setupField = (v.setupField + 1) % 2
		return nil
	case tea.KeyUp:
		v.setupField = (v.setupField + 1) % 2
		return nil
	case tea.KeyEnter:
		return v.submitSetup()
	case tea.KeyBackspace:
		if len(*field) > 0 {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
		return nil
	case tea.KeySpace:
		*field += " "
		return nil
	case tea.KeyRunes:
		*field += string(msg.Runes)
		return nil
	}
	return nil
}

func (v *familyView) submitSetup() tea.Cmd {
	if v.setupInFlight {
		return nil
	}
	name := strings.TrimSpace(v.setupName)
	if name == "" {
		v.toast = "family name is required"
		return nil
	}

	req := model.FamilyCreate{
		FamilyName:   name,
		Parent2Email: strings.TrimSpace(v.setupCoParent),
	}
	v.setupInFlight = true
	provider := v.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		family, err := provider.CreateFamily(ctx, req)
		return familyCreatedMsg{family: family, err: err}
	}
}

func (v *familyView) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	field := &v.formValues[v.formField]

	switch msg.Type {
	case tea.KeyEsc:
		v.formOpen = false
		return nil
	case tea.KeyTab, tea.KeyDown:
		v.formField = (v.formField + 1) % childFormFieldCount
		return nil
	case tea.KeyUp:
		v.formField = (v.formField + childFormFieldCount - 1) % childFormFieldCount
		return nil
	case tea.KeyEnter:
		return v.submitForm()
	case tea.KeyBackspace:
		if len(*field) > 0 {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
		return nil
	case tea.KeySpace:
		*field += " "
		return nil
	case tea.KeyRunes:
		*field += string(msg.Runes)
		return nil
	}
	return nil
}

func (v *familyView) submitForm() tea.Cmd {
	if v.formInFlight {
		return nil
	}

	child := model.Child{
		ID:          v.formChildID,
		Name:        strings.TrimSpace(v.formValues[fieldChildName]),
		DateOfBirth: strings.TrimSpace(v.formValues[fieldChildDOB]),
		Grade:       strings.TrimSpace(v.formValues[fieldChildGrade]),
		School:      strings.TrimSpace(v.formValues[fieldChildSchool]),
		Allergies:   strings.TrimSpace(v.formValues[fieldChildAllergies]),
		Medications: strings.TrimSpace(v.formValues[fieldChildMedications]),
		Notes:       strings.TrimSpace(v.formValues[fieldChildNotes]),
	}
	if err := child.Validate(); err != nil {
		v.toast = err.Error()
		return nil
	}

	v.formInFlight = true
	provider := v.provider
	editing := v.formChildID != ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		var err error
		if editing {
			_, err = provider.UpdateChild(ctx, child.ID, child)
		} else {
			_, err = provider.AddChild(ctx, child)
		}
		return childSavedMsg{err: err}
	}
}

func (v *familyView) openForm(child model.Child) {
	v.formOpen = true
	v.formChildID = child.ID
	v.formField = fieldChildName
	v.formInFlight = false
	v.formValues = [childFormFieldCount]string{
		fieldChildName:        child.Name,
		fieldChildDOB:         child.DateOfBirth,
		fieldChildGrade:       child.Grade,
		fieldChildSchool:      child.School,
		fieldChildAllergies:   child.Allergies,
		fieldChildMedications: child.Medications,
		fieldChildNotes:       child.Notes,
	}
	v.toast = ""
}

func (v *familyView) openSetup() {
	v.setupOpen = true
	v.setupName = ""
	v.setupCoParent = ""
	v.setupField = 0
	v.setupInFlight = false
	v.toast = ""
}

func (v *familyView) loadCmd() tea.Cmd {
	v.loading = true
	provider := v.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		family, err := provider.Family(ctx)
		if api.IsNotFound(err) {
			return familyLoadedMsg{notFound: true}
		}
		return familyLoadedMsg{family: family, err: err}
	}
}

func (v *familyView) selectedChild() (model.Child, bool) {
	if v.selected < 0 || v.selected >= len(v.family.Children) {
		return model.Child{}, false
	}
	return v.family.Children[v.selected], true
}

func (v *familyView) clampSelection() {
	if len(v.family.Children) == 0 {
		v.selected = 0
		return
	}
	v.selected = clampInt(v.selected, 0, len(v.family.Children)-1)
}

func (v *familyView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	palette := themePalette(theme)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))

	switch {
	case v.loading && !v.loaded:
		return muted.Render("Loading family profile…")
	case v.lastErr != nil && !v.loaded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render("family load failed: " + v.lastErr.Error())
	case v.setupOpen:
		return v.renderSetup(width, height, palette)
	case v.noFamily:
		return muted.Render("No family profile yet. Press Enter to set one up.")
	case v.formOpen:
		return v.renderForm(width, height, palette)
	}

	lines := v.renderProfile(width, palette)
	if v.confirmDeleteID != "" {
		if child, ok := v.selectedChild(); ok {
			lines = append(lines, "", lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Status.Offline)).Render(
				fmt.Sprintf("Remove %s? y/N", child.Name)))
		}
	}
	if v.toast != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render(v.toast))
	}
	return strings.Join(lines, "\n")
}

func (v *familyView) renderProfile(width int, palette styles.Theme) []string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb))

	linked := "waiting for co-parent"
	if v.family.IsLinked() {
		linked = "linked"
	}

	lines := []string{
		truncateVis(title.Render(v.family.FamilyName)+"  "+muted.Render(linked), width),
		truncateVis(muted.Render("parents: ")+v.family.Parent1Email+parent2Suffix(v.family), width),
	}
	if v.family.CustodyArrangement != "" {
		lines = append(lines, truncateVis(muted.Render("custody: ")+v.family.CustodyArrangement, width))
	}
	lines = append(lines, "", title.Render(fmt.Sprintf("Children (%d)", len(v.family.Children))))

	if len(v.family.Children) == 0 {
		lines = append(lines, muted.Render("  none yet, press a to add"))
		return lines
	}

	for i, child := range v.family.Children {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Foreground))
		if i == v.selected {
			marker = "> "
			style = style.Bold(true).Foreground(lipgloss.Color(palette.Chrome.SelectedItem))
		}
		line := marker + style.Render(child.Name) + muted.Render("  born "+child.DateOfBirth)
		if child.School != "" {
			line += muted.Render("  " + child.School)
		}
		if child.Grade != "" {
			line += muted.Render("  grade " + child.Grade)
		}
		lines = append(lines, truncateVis(line, width))
		if child.Allergies != "" {
			lines = append(lines, truncateVis(muted.Render("    allergies: "+child.Allergies), width))
		}
	}
	return lines
}

func parent2Suffix(family model.Family) string {
	if family.Parent2Email == "" {
		return ""
	}
	return ", " + family.Parent2Email
}

func (v *familyView) renderForm(width, height int, palette styles.Theme) string {
	title := "Add child"
	if v.formChildID != "" {
		title = "Edit child"
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render(title),
		"",
	}
	for f := childFormField(0); f < childFormFieldCount; f++ {
		label := childFieldLabels[f]
		value := v.formValues[f]
		cursor := ""
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))
		if f == v.formField {
			cursor = "▌"
			labelStyle = labelStyle.Bold(true).Foreground(lipgloss.Color(palette.Base.Accent))
		}
		lines = append(lines, labelStyle.Render(label+": ")+value+cursor)
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Tab next field  Enter save  Esc cancel"))
	if v.formInFlight {
		lines = append(lines, "saving…")
	}
	if v.toast != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render(v.toast))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Base.Border)).
		Padding(1, 2).
		Width(minInt(maxInt(44, width-10), 80))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}

func (v *familyView) renderSetup(width, height int, palette styles.Theme) string {
	nameCursor, coParentCursor := "▌", ""
	if v.setupField == 1 {
		nameCursor, coParentCursor = "", "▌"
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render("Set up family"),
		"",
		"Family name:     " + v.setupName + nameCursor,
		"Co-parent email: " + v.setupCoParent + coParentCursor,
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted)).Render("Tab next field  Enter create  Esc cancel"),
	}
	if v.setupInFlight {
		lines = append(lines, "creating…")
	}
	if v.toast != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render(v.toast))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(palette.Base.Border)).
		Padding(1, 2).
		Width(minInt(maxInt(44, width-10), 80))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel.Render(strings.Join(lines, "\n")))
}
