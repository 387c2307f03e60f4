package timer

import "context"

//go:generate mockgen -source=sink.go -destination=mock_sink_test.go -package=timer_test

// SessionRecorder persists a completed session. The controller calls it at
// most once per save request and never retries.
type SessionRecorder interface {
	RecordSession(ctx context.Context, elapsedSeconds int, note string) error
}

// Alerter signals a natural completion to the user, audibly or visually.
// Errors are logged and never affect controller state.
type Alerter interface {
	Alert() error
}

// AlerterFunc adapts a function to the Alerter interface.
type AlerterFunc func() error

func (f AlerterFunc) Alert() error { return f() }
