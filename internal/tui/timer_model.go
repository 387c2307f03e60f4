package tui

import (
	"context"
	"strings"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// TimerView renders and drives one countdown. The free timer and every
// guided meditation use the same view over a timer.TimerController.
type TimerView struct {
	id          int
	ctrl        timer.TimerController
	title       string
	description string
	guidedID    string

	bounds  timer.Bounds
	step    int
	presets []int

	snap     timer.Snapshot
	progress progress.Model
	dialog   completionDialog
}

// completionDialog asks for optional notes after a natural completion.
type completionDialog struct {
	open       bool
	saving     bool
	completion timer.Completion
	notes      textarea.Model
}

func NewTimerView(id int, ctrl timer.TimerController, cfg config.TimerConfig, theme Theme) TimerView {
	notes := textarea.New()
	notes.Placeholder = "How did your meditation go?"
	notes.CharLimit = config.MaxNoteLength
	notes.SetWidth(config.NotesWidth)
	notes.SetHeight(config.NotesHeight)
	notes.ShowLineNumbers = false

	v := TimerView{
		id:       id,
		ctrl:     ctrl,
		title:    "Meditation Timer",
		bounds:   timer.Bounds{Min: cfg.MinSeconds, Max: cfg.MaxSeconds},
		step:     cfg.StepSeconds,
		presets:  cfg.PresetSeconds(),
		progress: newProgress(theme),
		dialog:   completionDialog{notes: notes},
	}
	v.snap = ctrl.Snapshot()
	return v
}

func newProgress(theme Theme) progress.Model {
	p := progress.New(progress.WithGradient(theme.ProgressFrom, theme.ProgressTo), progress.WithoutPercentage())
	p.Width = config.ProgressWidth
	return p
}

// refresh re-reads the controller state.
func (v TimerView) refresh() TimerView {
	v.snap = v.ctrl.Snapshot()
	return v
}

// toggle starts a stopped timer or pauses a running one.
func (v TimerView) toggle() (TimerView, error) {
	if v.snap.Running {
		v.ctrl.Pause()
		return v.refresh(), nil
	}
	err := v.ctrl.Start()
	return v.refresh(), err
}

func (v TimerView) reset() TimerView {
	v.ctrl.Reset()
	return v.refresh()
}

// setDuration changes the session length; rejected while running or out of
// bounds, leaving the state untouched.
func (v TimerView) setDuration(seconds int) (TimerView, error) {
	err := v.ctrl.SetDuration(seconds)
	return v.refresh(), err
}

func (v TimerView) stepDuration(delta int) (TimerView, error) {
	return v.setDuration(v.snap.Duration + delta)
}

func (v TimerView) preset(i int) (TimerView, error) {
	if i < 0 || i >= len(v.presets) {
		return v, nil
	}
	return v.setDuration(v.presets[i])
}

// openDialog shows the notes editor for c.
func (v TimerView) openDialog(c timer.Completion) (TimerView, tea.Cmd) {
	v.dialog.open = true
	v.dialog.saving = false
	v.dialog.completion = c
	v.dialog.notes.Reset()
	return v, v.dialog.notes.Focus()
}

// reopenDialog shows the dialog again for a completion that was dismissed
// without saving.
func (v TimerView) reopenDialog() (TimerView, tea.Cmd, bool) {
	c, ok := v.ctrl.LastCompletion()
	if !ok {
		return v, nil, false
	}
	v.dialog.open = true
	v.dialog.saving = false
	v.dialog.completion = c
	return v, v.dialog.notes.Focus(), true
}

func (v TimerView) closeDialog() TimerView {
	v.dialog.open = false
	v.dialog.saving = false
	v.dialog.notes.Blur()
	return v
}

// save hands the note to the controller's recorder off the UI goroutine.
func (v TimerView) save(ctx context.Context) (TimerView, tea.Cmd) {
	if v.dialog.saving {
		return v, nil
	}
	v.dialog.saving = true
	note := strings.TrimSpace(v.dialog.notes.Value())
	ctrl, id := v.ctrl, v.id
	return v, func() tea.Msg {
		return sessionSavedMsg{id: id, err: ctrl.SaveSession(ctx, note)}
	}
}

func (v TimerView) updateDialog(msg tea.Msg) (TimerView, tea.Cmd) {
	var cmd tea.Cmd
	v.dialog.notes, cmd = v.dialog.notes.Update(msg)
	return v, cmd
}

func (v TimerView) withTheme(theme Theme) TimerView {
	width := v.progress.Width
	v.progress = newProgress(theme)
	v.progress.Width = width
	return v
}

func (v TimerView) withWidth(width int) TimerView {
	target := config.ProgressWidth
	if width < config.CompactModeThreshold {
		target = width / 2
	}
	if target < config.MinProgressWidth {
		target = config.MinProgressWidth
	}
	v.progress.Width = target
	notesWidth := min(config.NotesWidth, width-6)
	if notesWidth < config.MinProgressWidth {
		notesWidth = config.MinProgressWidth
	}
	v.dialog.notes.SetWidth(notesWidth)
	return v
}
