package tui

import (
	"fmt"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// handleThemeCycle switches to the next theme and remembers it.
func handleThemeCycle(m Model, _ string) (Model, tea.Cmd, bool) {
	name := nextTheme(m.themeName)
	m = m.applyTheme(name)
	m.setStatus(fmt.Sprintf("Theme: %s", m.theme.Name))
	return m, m.saveSetting(config.SettingTheme, name), true
}

func (m Model) applyTheme(name string) Model {
	m.themeName = name
	m.theme = ResolveTheme(name)
	m.free = m.free.withTheme(m.theme)
	if m.guided.ctrl != nil {
		m.guided.view = m.guided.view.withTheme(m.theme)
	}
	return m
}
