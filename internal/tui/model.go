package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/database"
	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Tab is a top-level screen.
type Tab int

const (
	TabTimer Tab = iota
	TabGuided
	TabHistory
)

var tabNames = []string{"Timer", "Guided", "History"}

// View modes select which key bindings apply.
const (
	ModeTimer = iota
	ModeGuidedCatalog
	ModeGuidedTimer
	ModeHistory
)

// Deps wires the TUI to the rest of the application.
type Deps struct {
	DB      Database
	Config  *config.Config
	Clock   timer.Clock
	Alerter timer.Alerter
	Logger  *zap.Logger
}

type guidedState struct {
	cursor int
	active bool
	ctrl   *timer.Controller
	view   TimerView
}

type historyState struct {
	sessions []models.Session
	stats    models.SessionStats
	cursor   int
	offset   int
	loaded   bool
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	db      Database
	cfg     *config.Config
	clock   timer.Clock
	alerter timer.Alerter
	logger  *zap.Logger
	bridge  *eventBridge
	keys    *HandlerRegistry

	theme     Theme
	themeName string
	tab       Tab
	nextID    int

	freeCtrl *timer.Controller
	free     TimerView
	guided   guidedState
	history  historyState

	statusMessage string
	statusIsError bool
	width, height int
}

// NewModel builds the root model. The free timer starts at the last duration
// the user picked, falling back to the configured default.
func NewModel(ctx context.Context, deps Deps) (Model, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = timer.SystemClock
	}

	m := Model{
		ctx:     ctx,
		db:      deps.DB,
		cfg:     cfg,
		clock:   clock,
		alerter: deps.Alerter,
		logger:  logger,
		bridge:  newEventBridge(),
		keys:    defaultKeyRegistry(),
	}
	m.themeName = cfg.Theme
	if name, ok := m.db.GetSetting(ctx, config.SettingTheme); ok {
		m.themeName = name
	}
	m.theme = ResolveTheme(m.themeName)

	seconds := m.initialDuration()
	m.nextID++
	ctrl, err := m.newController(m.nextID, seconds, m.recorder(""))
	if err != nil {
		m.bridge.close()
		return Model{}, fmt.Errorf("create timer: %w", err)
	}
	m.freeCtrl = ctrl
	m.free = NewTimerView(m.nextID, ctrl, cfg.Timer, m.theme)
	return m, nil
}

func (m Model) initialDuration() int {
	bounds := m.bounds()
	if n, err := strconv.Atoi(m.settingOr(config.SettingLastDuration, "")); err == nil && bounds.Contains(n) {
		return n
	}
	if bounds.Contains(m.cfg.Timer.DefaultSeconds) {
		return m.cfg.Timer.DefaultSeconds
	}
	return bounds.Min
}

func (m Model) settingOr(key, fallback string) string {
	if v, ok := m.db.GetSetting(m.ctx, key); ok {
		return v
	}
	return fallback
}

func (m Model) bounds() timer.Bounds {
	return timer.Bounds{Min: m.cfg.Timer.MinSeconds, Max: m.cfg.Timer.MaxSeconds}
}

func (m Model) recorder(guidedID string) timer.SessionRecorder {
	return &database.SessionSink{Repo: m.db, UserID: m.cfg.UserID, GuidedID: guidedID, Now: m.clock.Now}
}

func (m Model) newController(id, seconds int, rec timer.SessionRecorder) (*timer.Controller, error) {
	bridge := m.bridge
	return timer.New(seconds, timer.Options{
		Bounds:     m.bounds(),
		Clock:      m.clock,
		Recorder:   rec,
		Alerter:    m.alerter,
		Logger:     m.logger.Named("timer").With(zap.Int("view", id)),
		OnChange:   func(timer.Snapshot) { bridge.changed(id) },
		OnComplete: func(c timer.Completion) { bridge.completed(id, c) },
	})
}

// Close stops every countdown and releases the event bridge.
func (m Model) Close() {
	if m.freeCtrl != nil {
		m.freeCtrl.Close()
	}
	if m.guided.ctrl != nil {
		m.guided.ctrl.Close()
	}
	m.bridge.close()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.bridge), m.loadHistory())
}

func (m Model) viewMode() int {
	switch m.tab {
	case TabGuided:
		if m.guided.active {
			return ModeGuidedTimer
		}
		return ModeGuidedCatalog
	case TabHistory:
		return ModeHistory
	default:
		return ModeTimer
	}
}

// activeView returns the timer view on screen, if any.
func (m Model) activeView() (TimerView, bool) {
	switch m.viewMode() {
	case ModeTimer:
		return m.free, true
	case ModeGuidedTimer:
		return m.guided.view, true
	}
	return TimerView{}, false
}

func (m Model) setActiveView(v TimerView) Model {
	switch m.viewMode() {
	case ModeTimer:
		m.free = v
	case ModeGuidedTimer:
		m.guided.view = v
	}
	return m
}

// updateView applies fn to whichever view owns id.
func (m Model) updateView(id int, fn func(TimerView) TimerView) Model {
	if m.free.id == id {
		m.free = fn(m.free)
	} else if m.guided.active && m.guided.view.id == id {
		m.guided.view = fn(m.guided.view)
	}
	return m
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusIsError = false
}

func (m *Model) setStatusError(msg string) {
	m.statusMessage = msg
	m.statusIsError = true
}

func (m *Model) clearStatus() {
	m.statusMessage = ""
	m.statusIsError = false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case timerChangedMsg:
		m = m.updateView(msg.id, TimerView.refresh)
		return m, waitForEvent(m.bridge)
	case timerCompletedMsg:
		return m.handleCompletion(msg)
	case sessionSavedMsg:
		return m.handleSessionSaved(msg)
	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg), nil
	case sessionDeletedMsg:
		return m.handleSessionDeleted(msg)
	case reportDoneMsg:
		if msg.err != nil {
			m.setStatusError(fmt.Sprintf("Error generating report: %v", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Report saved to %s", msg.path))
		}
		return m, nil
	case settingSavedMsg:
		if msg.err != nil {
			m.logger.Warn("setting not saved", zap.String("key", msg.key), zap.Error(msg.err))
		}
		return m, nil
	}

	if v, ok := m.activeView(); ok && v.dialog.open {
		v, cmd := v.updateDialog(msg)
		return m.setActiveView(v), cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height
	if m.width > 0 {
		m.free = m.free.withWidth(m.width)
		if m.guided.active {
			m.guided.view = m.guided.view.withWidth(m.width)
		}
	}
	return m
}

func (m Model) handleCompletion(msg timerCompletedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m = m.updateView(msg.id, func(v TimerView) TimerView {
		v = v.refresh()
		v, cmd = v.openDialog(msg.completion)
		return v
	})
	m.setStatus(fmt.Sprintf("Meditation complete: %s", FormatDuration(secondsToDuration(msg.completion.ElapsedSeconds))))
	return m, tea.Batch(cmd, waitForEvent(m.bridge))
}

func (m Model) handleSessionSaved(msg sessionSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m = m.updateView(msg.id, func(v TimerView) TimerView {
			v.dialog.saving = false
			return v
		})
		m.setStatusError(fmt.Sprintf("Error saving session: %v", msg.err))
		return m, nil
	}
	m = m.updateView(msg.id, TimerView.closeDialog)
	m.setStatus("Session saved")
	return m, m.loadHistory()
}

// selectGuided swaps in a fresh controller preset to the chosen meditation.
func (m Model) selectGuided(g models.GuidedMeditation) (Model, error) {
	seconds := config.GuidedDuration(g.ID)
	if !m.bounds().Contains(seconds) {
		seconds = m.initialDuration()
	}
	m.nextID++
	ctrl, err := m.newController(m.nextID, seconds, m.recorder(g.ID))
	if err != nil {
		return m, err
	}
	if m.guided.ctrl != nil {
		m.guided.ctrl.Close()
	}
	v := NewTimerView(m.nextID, ctrl, m.cfg.Timer, m.theme)
	v.title = g.Title
	v.description = g.Description
	v.guidedID = g.ID
	if m.width > 0 {
		v = v.withWidth(m.width)
	}
	m.guided.ctrl = ctrl
	m.guided.view = v
	m.guided.active = true
	return m, nil
}

func (m Model) loadHistory() tea.Cmd {
	ctx, db, user := m.ctx, m.db, m.cfg.UserID
	return func() tea.Msg {
		sessions, err := db.GetSessionsForUser(ctx, user, config.HistoryLoadLimit)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		stats, err := db.GetSessionStats(ctx, user)
		return historyLoadedMsg{sessions: sessions, stats: stats, err: err}
	}
}

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) Model {
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Error loading history: %v", msg.err))
		return m
	}
	m.history.sessions = msg.sessions
	m.history.stats = msg.stats
	m.history.loaded = true
	if m.history.cursor >= len(m.history.sessions) {
		m.history.cursor = max(0, len(m.history.sessions)-1)
	}
	m.history.offset = clampOffset(m.history.cursor, m.history.offset, config.MaxHistoryRows)
	return m
}

func (m Model) handleSessionDeleted(msg sessionDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatusError(fmt.Sprintf("Error deleting session: %v", msg.err))
		return m, nil
	}
	m.setStatus("Session deleted")
	return m, m.loadHistory()
}

func (m Model) saveSetting(key, value string) tea.Cmd {
	ctx, db := m.ctx, m.db
	return func() tea.Msg {
		return settingSavedMsg{key: key, err: db.SetSetting(ctx, key, value)}
	}
}

// clampOffset keeps cursor inside a window of size rows starting at offset.
func clampOffset(cursor, offset, rows int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+rows {
		return cursor - rows + 1
	}
	return offset
}
