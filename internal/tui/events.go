package tui

import (
	"github.com/akyairhashvil/spiritualpath/internal/models"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---

// timerChangedMsg reports that the controller behind view id moved.
type timerChangedMsg struct{ id int }

type timerCompletedMsg struct {
	id         int
	completion timer.Completion
}

type sessionSavedMsg struct {
	id  int
	err error
}

type historyLoadedMsg struct {
	sessions []models.Session
	stats    models.SessionStats
	err      error
}

type sessionDeletedMsg struct {
	id  string
	err error
}

type reportDoneMsg struct {
	path string
	err  error
}

type settingSavedMsg struct {
	key string
	err error
}

// eventBridge carries controller callbacks, which fire on the clock's
// goroutine, into the bubbletea loop.
type eventBridge struct {
	changes     chan int
	completions chan timerCompletedMsg
	done        chan struct{}
}

func newEventBridge() *eventBridge {
	return &eventBridge{
		changes:     make(chan int, 16),
		completions: make(chan timerCompletedMsg, 4),
		done:        make(chan struct{}),
	}
}

// changed never blocks: a dropped signal is harmless because views read the
// controller's snapshot when any signal arrives.
func (b *eventBridge) changed(id int) {
	select {
	case b.changes <- id:
	default:
	}
}

func (b *eventBridge) completed(id int, c timer.Completion) {
	select {
	case b.completions <- timerCompletedMsg{id: id, completion: c}:
	case <-b.done:
	}
}

func (b *eventBridge) close() {
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}

// waitForEvent blocks until the next controller event. Completions win over
// change signals.
func waitForEvent(b *eventBridge) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.completions:
			return msg
		default:
		}
		select {
		case msg := <-b.completions:
			return msg
		case id := <-b.changes:
			return timerChangedMsg{id: id}
		case <-b.done:
			return nil
		}
	}
}
