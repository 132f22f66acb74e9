package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/eos/internal/eos"
)

// Theme defines the color scheme of tables and the explorer.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	OK      lipgloss.Color
	Bad     lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:    "default",
		Primary: lipgloss.Color("#00cccc"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Good:    lipgloss.Color("#00ff88"),
		OK:      lipgloss.Color("#ffcc00"),
		Bad:     lipgloss.Color("#ff8800"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Good:    lipgloss.Color("#cccccc"),
		OK:      lipgloss.Color("#ffaa00"),
		Bad:     lipgloss.Color("#ff6600"),
		Error:   lipgloss.Color("#ff0000"),
	}
)

var themes = []Theme{ThemeDefault, ThemeMinimal}

// Themes lists the built-in themes.
func Themes() []Theme { return themes }

// GetTheme returns the named theme, or the default one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// Severity returns the color of a severity level.
func (t Theme) Severity(s eos.Severity) lipgloss.Color {
	switch s {
	case eos.Good:
		return t.Good
	case eos.OK:
		return t.OK
	case eos.Bad:
		return t.Bad
	}
	return t.Error
}
