package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name         string
	Base         lipgloss.Style
	Border       lipgloss.Color
	Header       lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Clock        lipgloss.Style
	Running      lipgloss.Style
	Paused       lipgloss.Style
	Done         lipgloss.Style
	Input        lipgloss.Style
	Focused      lipgloss.Style
	Dim          lipgloss.Style
	Highlight    lipgloss.Style
	Error        lipgloss.Style
	ProgressFrom string
	ProgressTo   string
}

var Themes = map[string]Theme{
	"lavender": {
		Name:         "Lavender",
		Base:         lipgloss.NewStyle().Margin(1, 2),
		Border:       lipgloss.Color("#7C3AED"),
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6D28D9")).Bold(true),
		Tab:          lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Padding(0, 2),
		ActiveTab:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Bold(true).Padding(0, 2),
		Clock:        lipgloss.NewStyle().Foreground(lipgloss.Color("#5B21B6")).Bold(true),
		Running:      lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")).Bold(true),
		Paused:       lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706")).Bold(true),
		Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("#DB2777")).Bold(true),
		Input:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8B5CF6")).Padding(0, 1),
		Focused:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true),
		ProgressFrom: "#C4B5FD",
		ProgressTo:   "#6D28D9",
	},
	"dracula": {
		Name:         "Dracula",
		Base:         lipgloss.NewStyle().Margin(1, 2),
		Border:       lipgloss.Color("62"),
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Tab:          lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Padding(0, 2),
		ActiveTab:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Bold(true).Padding(0, 2),
		Clock:        lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Running:      lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),
		Paused:       lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Input:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Focused:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		ProgressFrom: "#BD93F9",
		ProgressTo:   "#FF79C6",
	},
	"mono": {
		Name:         "Mono",
		Base:         lipgloss.NewStyle().Margin(1, 2),
		Border:       lipgloss.Color("245"),
		Header:       lipgloss.NewStyle().Bold(true),
		Tab:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 2),
		ActiveTab:    lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 2),
		Clock:        lipgloss.NewStyle().Bold(true),
		Running:      lipgloss.NewStyle().Bold(true),
		Paused:       lipgloss.NewStyle().Italic(true),
		Done:         lipgloss.NewStyle().Bold(true).Underline(true),
		Input:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Focused:      lipgloss.NewStyle().Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Highlight:    lipgloss.NewStyle().Underline(true),
		Error:        lipgloss.NewStyle().Bold(true),
		ProgressFrom: "#808080",
		ProgressTo:   "#F0F0F0",
	},
}

// ResolveTheme returns the named theme, or lavender when the name is unknown.
func ResolveTheme(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["lavender"]
}

// ThemeNames lists the available themes in a stable order.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nextTheme cycles to the theme after current.
func nextTheme(current string) string {
	names := ThemeNames()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
