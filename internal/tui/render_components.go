package tui

import (
	"fmt"
	"strings"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) View() string {
	var body string
	switch m.viewMode() {
	case ModeTimer:
		body = m.renderTimer(m.free)
	case ModeGuidedCatalog:
		body = m.renderGuidedCatalog()
	case ModeGuidedTimer:
		body = m.renderTimer(m.guided.view)
	case ModeHistory:
		body = m.renderHistory()
	}
	return m.theme.Base.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		"",
		m.renderFooter(),
	))
}

func (m Model) renderHeader() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = m.theme.ActiveTab.Render(name)
		} else {
			tabs[i] = m.theme.Tab.Render(name)
		}
	}
	title := m.theme.Header.Render("SpiritualPath")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderTimer(v TimerView) string {
	s := v.snap
	var status string
	label := FormatTimerStatus(s.Running, s.Remaining, s.Duration)
	switch {
	case s.Running:
		status = m.theme.Running.Render(label)
	case s.Remaining == 0:
		status = m.theme.Done.Render(label)
	case s.Remaining < s.Duration:
		status = m.theme.Paused.Render(label)
	default:
		status = m.theme.Dim.Render(label)
	}

	lines := []string{m.theme.Header.Render(v.title)}
	if v.description != "" {
		lines = append(lines, m.theme.Dim.Render(v.description))
	}
	lines = append(lines,
		"",
		m.theme.Clock.Render(FormatClock(s.Remaining))+"  "+status,
		v.progress.ViewAs(s.Progress()),
		"",
		m.theme.Dim.Render(fmt.Sprintf("Length %s", FormatClock(s.Duration))),
		m.renderPresets(v),
	)

	if v.dialog.open {
		lines = append(lines, "", m.renderDialog(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderPresets(v TimerView) string {
	parts := make([]string, 0, len(v.presets))
	for i, p := range v.presets {
		text := fmt.Sprintf("[%d] %s", i+1, FormatDuration(secondsToDuration(p)))
		if p == v.snap.Duration {
			parts = append(parts, m.theme.Highlight.Render(text))
		} else {
			parts = append(parts, m.theme.Dim.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderDialog(v TimerView) string {
	c := v.dialog.completion
	title := fmt.Sprintf("Session complete: %s", FormatDuration(secondsToDuration(c.ElapsedSeconds)))
	hint := "[ctrl+s] Save  [esc] Skip"
	if v.dialog.saving {
		hint = "Saving..."
	}
	box := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Done.Render(title),
		m.theme.Dim.Render("Notes (optional, #tags welcome)"),
		v.dialog.notes.View(),
		m.theme.Dim.Render(hint),
	)
	return m.theme.Input.BorderForeground(m.theme.Border).Render(box)
}

func (m Model) renderGuidedCatalog() string {
	lines := []string{m.theme.Header.Render("Guided Meditations"), ""}
	for i, g := range config.GuidedMeditations {
		cursor := "  "
		style := m.theme.Dim
		if i == m.guided.cursor {
			cursor = "> "
			style = m.theme.Focused
		}
		lines = append(lines,
			style.Render(fmt.Sprintf("%s%s (%s)", cursor, g.Title, FormatDuration(secondsToDuration(config.GuidedDuration(g.ID))))),
			m.theme.Dim.Render("    "+g.Description),
		)
	}
	if m.guided.ctrl != nil {
		s := m.guided.view.snap
		lines = append(lines, "", m.theme.Dim.Render(fmt.Sprintf("Last selected: %s, %s left", m.guided.view.title, FormatClock(s.Remaining))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHistory() string {
	if !m.history.loaded {
		return m.theme.Dim.Render("Loading history...")
	}
	st := m.history.stats
	summary := FormatSessionCount(st.Count)
	if st.Count > 0 {
		summary = fmt.Sprintf("%s  |  total %s  |  average %s  |  longest %s",
			summary,
			FormatDuration(secondsToDuration(st.TotalSeconds)),
			FormatDuration(secondsToDuration(st.AverageSeconds())),
			FormatDuration(secondsToDuration(st.LongestSeconds)))
	}
	lines := []string{m.theme.Header.Render(summary), ""}

	end := min(m.history.offset+config.MaxHistoryRows, len(m.history.sessions))
	for i := m.history.offset; i < end; i++ {
		row := m.renderSessionRow(m.history.sessions[i])
		if i == m.history.cursor {
			lines = append(lines, m.theme.Focused.Render("> "+row))
		} else {
			lines = append(lines, m.theme.Dim.Render("  "+row))
		}
	}
	if len(m.history.sessions) > end {
		lines = append(lines, m.theme.Dim.Render(fmt.Sprintf("  ... %d more", len(m.history.sessions)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSessionRow(s models.Session) string {
	when := s.CompletedAt.Local().Format("2006-01-02 15:04")
	row := fmt.Sprintf("%s  %6s", when, FormatClock(s.DurationSeconds))
	if s.GuidedID != nil {
		if g, ok := config.FindGuided(*s.GuidedID); ok {
			row += "  " + g.Title
		}
	}
	if note := strings.Join(strings.Fields(util.Deref(s.Notes)), " "); note != "" {
		row += "  " + ansi.Truncate(note, config.MaxNotePreview, config.TruncationSuffix)
	}
	return row
}

func (m Model) renderFooter() string {
	var status string
	if m.statusMessage != "" {
		if m.statusIsError {
			status = m.theme.Error.Render(m.statusMessage)
		} else {
			status = m.theme.Highlight.Render(m.statusMessage)
		}
	}
	help := m.keys.HelpForView(m.viewMode())
	if m.width > 0 {
		help = ansi.Truncate(help, m.width-4, config.TruncationSuffix)
	}
	lines := []string{}
	if status != "" {
		lines = append(lines, status)
	}
	lines = append(lines, m.theme.Dim.Render(help), m.theme.Dim.Render("v"+VersionLabel()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
