package styles

import "github.com/charmbracelet/lipgloss"

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
}

// MessageColors defines colors for message bubbles.
type MessageColors struct {
	Own     string
	Other   string
	Pending string
}

// CategoryColors defines colors for conversation categories.
type CategoryColors struct {
	Custody    string
	Medical    string
	School     string
	Activities string
	Financial  string
	General    string
	Urgent     string
}

// ToneColors defines colors for message tone badges.
type ToneColors struct {
	MatterOfFact string
	Friendly     string
	NeutralLegal string
}

// StatusColors defines colors for delivery and connectivity state.
type StatusColors struct {
	Read      string
	Delivered string
	Sent      string
	Offline   string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header       string
	Footer       string
	Breadcrumb   string
	SelectedItem string
	Scrollbar    string
}

// BorderColors defines border colors for pane state.
type BorderColors struct {
	ActivePane   string
	InactivePane string
	Divider      string
}

// Theme defines the Bridgette TUI style/theme tokens.
type Theme struct {
	Name        string
	BorderStyle string // "rounded", "sharp", "double", "hidden"

	Base     BaseColors
	Message  MessageColors
	Category CategoryColors
	Tone     ToneColors
	Status   StatusColors
	Chrome   ChromeColors
	Borders  BorderColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

// CategoryColor returns the color for a conversation category.
func (t Theme) CategoryColor(category string) string {
	switch category {
	case "custody":
		return t.Category.Custody
	case "medical":
		return t.Category.Medical
	case "school":
		return t.Category.School
	case "activities":
		return t.Category.Activities
	case "financial":
		return t.Category.Financial
	case "urgent":
		return t.Category.Urgent
	default:
		return t.Category.General
	}
}

func (t Theme) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent))
}
