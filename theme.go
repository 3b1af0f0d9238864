package menufig

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme provides the style set the terminal host paints with.
type Theme struct {
	Brand        lipgloss.Style // navbar title
	Navbar       lipgloss.Style
	Button       lipgloss.Style // navbar / footer buttons
	ButtonActive lipgloss.Style
	Card         lipgloss.Style // open menu container
	Label        lipgloss.Style // control labels
	Control      lipgloss.Style
	ControlFocus lipgloss.Style
	Muted        lipgloss.Style // hints, slider marks
	Figure       lipgloss.Style // figure pane
	Toast        lipgloss.Style // notification
}

// Pre-defined themes

// ThemeLumen is the light default, named after the bootstrap theme the
// original shipped with.
var ThemeLumen = Theme{
	Brand:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("31")).Padding(0, 1),
	Navbar:       lipgloss.NewStyle().Background(lipgloss.Color("31")),
	Button:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("31")).Padding(0, 1),
	ButtonActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("31")).Background(lipgloss.Color("15")).Padding(0, 1),
	Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	Label:        lipgloss.NewStyle().Bold(true),
	Control:      lipgloss.NewStyle(),
	ControlFocus: lipgloss.NewStyle().Foreground(lipgloss.Color("31")).Bold(true),
	Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Figure:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Toast:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Foreground(lipgloss.Color("196")).Padding(0, 1),
}

// ThemeDark is a dark variant with light text on dark background.
var ThemeDark = Theme{
	Brand:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Padding(0, 1),
	Navbar:       lipgloss.NewStyle().Background(lipgloss.Color("236")),
	Button:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
	ButtonActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Padding(0, 1),
	Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	Label:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
	Control:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	ControlFocus: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Figure:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	Toast:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("203")).Foreground(lipgloss.Color("203")).Padding(0, 1),
}

// ThemeMono is a minimal theme using only attributes.
var ThemeMono = Theme{
	Brand:        lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
	Navbar:       lipgloss.NewStyle(),
	Button:       lipgloss.NewStyle().Padding(0, 1),
	ButtonActive: lipgloss.NewStyle().Reverse(true).Padding(0, 1),
	Card:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Label:        lipgloss.NewStyle().Bold(true),
	Control:      lipgloss.NewStyle(),
	ControlFocus: lipgloss.NewStyle().Underline(true),
	Muted:        lipgloss.NewStyle().Faint(true),
	Figure:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Toast:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Bold(true).Padding(0, 1),
}

var themes = map[string]Theme{
	"LUMEN": ThemeLumen,
	"DARK":  ThemeDark,
	"MONO":  ThemeMono,
}

// ThemeByName returns the named theme, falling back to ThemeLumen.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return ThemeLumen
}
