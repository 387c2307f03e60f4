package timer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration reports a non-positive or out-of-bounds duration.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidState reports an operation not permitted in the current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrNoRecorder is returned by SaveSession when no sink is configured.
	ErrNoRecorder = errors.New("no session recorder configured")
)

// Error describes a rejected controller operation. The controller remains
// usable after any Error.
type Error struct {
	Op     string
	Value  int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case errors.Is(e.Err, ErrInvalidDuration):
		return fmt.Sprintf("timer %s %d: %v (%s)", e.Op, e.Value, e.Err, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("timer %s: %v: %s", e.Op, e.Err, e.Reason)
	default:
		return fmt.Sprintf("timer %s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func invalidDuration(op string, seconds int, b Bounds) error {
	return &Error{
		Op:     op,
		Value:  seconds,
		Reason: fmt.Sprintf("must be within [%d, %d] seconds", b.Min, b.Max),
		Err:    ErrInvalidDuration,
	}
}

func invalidState(op, reason string) error {
	return &Error{Op: op, Reason: reason, Err: ErrInvalidState}
}
