package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
	"github.com/akyairhashvil/spiritualpath/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

var timerModes = []int{ModeTimer, ModeGuidedTimer}

func defaultKeyRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()

	r.RegisterKeys([]string{" "}, "start/pause", timerModes, handleToggle)
	r.RegisterKeys([]string{"r"}, "reset", timerModes, handleReset)
	r.RegisterKeys([]string{"+", "="}, "+1 min", timerModes, handleStepUp)
	r.RegisterKeys([]string{"-", "_"}, "-1 min", timerModes, handleStepDown)
	r.RegisterKeys([]string{"1", "2", "3", "4"}, "presets", timerModes, handlePreset)
	r.RegisterKeys([]string{"s"}, "save", timerModes, handleReopenSave)
	r.RegisterKeys([]string{"esc"}, "back", []int{ModeGuidedTimer}, handleGuidedBack)

	r.RegisterKeys([]string{"up", "k"}, "", []int{ModeGuidedCatalog}, handleGuidedUp)
	r.RegisterKeys([]string{"down", "j"}, "", []int{ModeGuidedCatalog}, handleGuidedDown)
	r.RegisterKeys([]string{"enter"}, "begin", []int{ModeGuidedCatalog}, handleGuidedSelect)

	r.RegisterKeys([]string{"up", "k"}, "", []int{ModeHistory}, handleHistoryUp)
	r.RegisterKeys([]string{"down", "j"}, "", []int{ModeHistory}, handleHistoryDown)
	r.RegisterKeys([]string{"d"}, "delete", []int{ModeHistory}, handleHistoryDelete)
	r.RegisterKeys([]string{"p"}, "pdf report", []int{ModeHistory}, handleHistoryReport)
	r.RegisterKeys([]string{"r"}, "refresh", []int{ModeHistory}, handleHistoryRefresh)

	r.RegisterKeys([]string{"tab"}, "next tab", nil, handleNextTab)
	r.RegisterKeys([]string{"shift+tab"}, "", nil, handlePrevTab)
	r.RegisterKeys([]string{"t"}, "theme", nil, handleThemeCycle)
	r.RegisterKeys([]string{"q"}, "quit", nil, handleQuit)
	return r
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if v, ok := m.activeView(); ok && v.dialog.open {
		return m.handleDialogKey(v, msg)
	}
	m.clearStatus()
	next, cmd, _ := m.keys.Handle(m, key)
	return next, cmd
}

func (m Model) handleDialogKey(v TimerView, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		v, cmd := v.save(m.ctx)
		m.setStatus("Saving session...")
		return m.setActiveView(v), cmd
	case "esc":
		if v.dialog.saving {
			return m, nil
		}
		m.setStatus("Session not saved. Press s to save it before starting again.")
		return m.setActiveView(v.closeDialog()), nil
	}
	v, cmd := v.updateDialog(msg)
	return m.setActiveView(v), cmd
}

// --- Timer ---

func handleToggle(m Model, _ string) (Model, tea.Cmd, bool) {
	v, _ := m.activeView()
	v, err := v.toggle()
	if err != nil {
		m.setStatusError(describeTimerError(err, v.bounds))
	}
	return m.setActiveView(v), nil, true
}

func handleReset(m Model, _ string) (Model, tea.Cmd, bool) {
	v, _ := m.activeView()
	return m.setActiveView(v.reset()), nil, true
}

func handleStepUp(m Model, _ string) (Model, tea.Cmd, bool) {
	v, _ := m.activeView()
	v, err := v.stepDuration(v.step)
	return m.afterDurationChange(v, err)
}

func handleStepDown(m Model, _ string) (Model, tea.Cmd, bool) {
	v, _ := m.activeView()
	v, err := v.stepDuration(-v.step)
	return m.afterDurationChange(v, err)
}

func handlePreset(m Model, key string) (Model, tea.Cmd, bool) {
	i, err := strconv.Atoi(key)
	if err != nil {
		return m, nil, false
	}
	v, _ := m.activeView()
	v, err = v.preset(i - 1)
	return m.afterDurationChange(v, err)
}

// afterDurationChange reports a rejected change, or remembers the free
// timer's new length for the next launch.
func (m Model) afterDurationChange(v TimerView, err error) (Model, tea.Cmd, bool) {
	mode := m.viewMode()
	m = m.setActiveView(v)
	if err != nil {
		m.setStatusError(describeTimerError(err, v.bounds))
		return m, nil, true
	}
	if mode != ModeTimer {
		return m, nil, true
	}
	return m, m.saveSetting(config.SettingLastDuration, strconv.Itoa(v.snap.Duration)), true
}

func handleReopenSave(m Model, _ string) (Model, tea.Cmd, bool) {
	v, _ := m.activeView()
	v, cmd, ok := v.reopenDialog()
	if !ok {
		m.setStatusError("No completed session to save")
		return m, nil, true
	}
	return m.setActiveView(v), cmd, true
}

func describeTimerError(err error, b timer.Bounds) string {
	var terr *timer.Error
	if !errors.As(err, &terr) {
		return err.Error()
	}
	if errors.Is(err, timer.ErrInvalidDuration) {
		return fmt.Sprintf("Duration must be between %s and %s", FormatClock(b.Min), FormatClock(b.Max))
	}
	switch terr.Reason {
	case "timer is running":
		return "Pause the timer before changing its length"
	case "no time remaining":
		return "Session finished. Press r to reset"
	}
	return terr.Reason
}

// --- Guided ---

func handleGuidedUp(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.guided.cursor > 0 {
		m.guided.cursor--
	}
	return m, nil, true
}

func handleGuidedDown(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.guided.cursor < len(config.GuidedMeditations)-1 {
		m.guided.cursor++
	}
	return m, nil, true
}

func handleGuidedSelect(m Model, _ string) (Model, tea.Cmd, bool) {
	if len(config.GuidedMeditations) == 0 {
		return m, nil, true
	}
	g := config.GuidedMeditations[m.guided.cursor]
	next, err := m.selectGuided(g)
	if err != nil {
		m.setStatusError(fmt.Sprintf("Error starting %s: %v", g.Title, err))
		return m, nil, true
	}
	return next, nil, true
}

func handleGuidedBack(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.guided.ctrl != nil {
		m.guided.ctrl.Pause()
		m.guided.view = m.guided.view.refresh()
	}
	m.guided.active = false
	return m, nil, true
}

// --- History ---

func handleHistoryUp(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.history.cursor > 0 {
		m.history.cursor--
	}
	m.history.offset = clampOffset(m.history.cursor, m.history.offset, config.MaxHistoryRows)
	return m, nil, true
}

func handleHistoryDown(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.history.cursor < len(m.history.sessions)-1 {
		m.history.cursor++
	}
	m.history.offset = clampOffset(m.history.cursor, m.history.offset, config.MaxHistoryRows)
	return m, nil, true
}

func handleHistoryDelete(m Model, _ string) (Model, tea.Cmd, bool) {
	if len(m.history.sessions) == 0 {
		return m, nil, true
	}
	id := m.history.sessions[m.history.cursor].ID
	ctx, db := m.ctx, m.db
	return m, func() tea.Msg {
		return sessionDeletedMsg{id: id, err: db.DeleteSession(ctx, id)}
	}, true
}

func handleHistoryRefresh(m Model, _ string) (Model, tea.Cmd, bool) {
	return m, m.loadHistory(), true
}

func handleHistoryReport(m Model, _ string) (Model, tea.Cmd, bool) {
	data := ReportData{
		UserID:      m.cfg.UserID,
		GeneratedAt: m.clock.Now(),
		Stats:       m.history.stats,
		Sessions:    m.history.sessions,
	}
	path := filepath.Join(util.ReportsDir(config.AppName), ReportFileName(data.GeneratedAt))
	m.setStatus("Generating report...")
	return m, func() tea.Msg {
		out, err := GeneratePDFReport(path, data)
		return reportDoneMsg{path: out, err: err}
	}, true
}

// --- Global ---

func handleNextTab(m Model, _ string) (Model, tea.Cmd, bool) {
	return m.switchTab(Tab((int(m.tab) + 1) % len(tabNames)))
}

func handlePrevTab(m Model, _ string) (Model, tea.Cmd, bool) {
	return m.switchTab(Tab((int(m.tab) + len(tabNames) - 1) % len(tabNames)))
}

func (m Model) switchTab(t Tab) (Model, tea.Cmd, bool) {
	m.tab = t
	if t == TabHistory {
		return m, m.loadHistory(), true
	}
	return m, nil, true
}

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	return m, tea.Quit, true
}

// ReportFileName names a report after the day it was generated.
func ReportFileName(at time.Time) string {
	return fmt.Sprintf("%s-report-%s.pdf", config.AppName, at.Format("2006-01-02"))
}
