// Package timer implements the meditation countdown: a duration, the
// seconds remaining, and a running flag advanced by wall-clock time.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"go.uber.org/zap"
)

// TimerController is the capability set the presentation layer relies on.
// Every countdown display in the application is driven through it.
type TimerController interface {
	SetDuration(seconds int) error
	Start() error
	Pause()
	Reset()
	Snapshot() Snapshot
	LastCompletion() (Completion, bool)
	SaveSession(ctx context.Context, note string) error
}

var _ TimerController = (*Controller)(nil)

// Bounds is the inclusive range of accepted durations in seconds.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds is 1 minute to 1 hour.
var DefaultBounds = Bounds{Min: config.MinDurationSeconds, Max: config.MaxDurationSeconds}

// Contains reports whether seconds is positive and within the bounds.
func (b Bounds) Contains(seconds int) bool {
	return seconds > 0 && seconds >= b.Min && seconds <= b.Max
}

// Snapshot is a read-only copy of the timer state.
type Snapshot struct {
	Duration  int
	Remaining int
	Running   bool
}

// Progress is the elapsed fraction of the session in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Duration-s.Remaining) / float64(s.Duration)
}

// Elapsed returns the seconds consumed so far.
func (s Snapshot) Elapsed() int {
	return s.Duration - s.Remaining
}

// Completion describes a natural run-to-zero.
type Completion struct {
	ElapsedSeconds int
	CompletedAt    time.Time
}

// Options wires a Controller to its collaborators. Zero values get defaults:
// DefaultBounds, SystemClock and a no-op logger.
type Options struct {
	Bounds   Bounds
	Clock    Clock
	Recorder SessionRecorder
	Alerter  Alerter
	Logger   *zap.Logger

	// OnChange receives a snapshot after every state change. It may be
	// called from the clock's goroutine and must not block.
	OnChange func(Snapshot)
	// OnComplete is called exactly once per natural completion.
	OnComplete func(Completion)
}

// Controller is a single countdown. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	bounds     Bounds
	clock      Clock
	recorder   SessionRecorder
	alerter    Alerter
	logger     *zap.Logger
	onChange   func(Snapshot)
	onComplete func(Completion)

	duration  int
	remaining int
	running   bool
	closed    bool

	// Elapsed time is measured from anchor; anchorRemaining is the value of
	// remaining when the current run started.
	anchor          time.Time
	anchorRemaining int

	// gen invalidates callbacks that fired before a pause or reset took the lock.
	gen     uint64
	pending Timer

	completion *Completion
}

// New creates a stopped controller with the given duration.
func New(seconds int, opts Options) (*Controller, error) {
	if opts.Bounds == (Bounds{}) {
		opts.Bounds = DefaultBounds
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if !opts.Bounds.Contains(seconds) {
		return nil, invalidDuration("new", seconds, opts.Bounds)
	}
	return &Controller{
		bounds:     opts.Bounds,
		clock:      opts.Clock,
		recorder:   opts.Recorder,
		alerter:    opts.Alerter,
		logger:     opts.Logger,
		onChange:   opts.OnChange,
		onComplete: opts.OnComplete,
		duration:   seconds,
		remaining:  seconds,
	}, nil
}

// Bounds returns the accepted duration range.
func (c *Controller) Bounds() Bounds {
	return c.bounds
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Duration: c.duration, Remaining: c.remaining, Running: c.running}
}

// SetDuration changes the session length while stopped or paused and
// rewinds remaining to the new duration.
func (c *Controller) SetDuration(seconds int) error {
	c.mu.Lock()
	if !c.bounds.Contains(seconds) {
		c.mu.Unlock()
		return invalidDuration("set duration", seconds, c.bounds)
	}
	if c.running {
		c.mu.Unlock()
		return invalidState("set duration", "timer is running")
	}
	c.duration = seconds
	c.remaining = seconds
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("timer duration set", zap.Int("seconds", seconds))
	c.notifyChange(snap)
	return nil
}

// Start begins or resumes the countdown. Starting a running timer is a no-op.
// Any completion not yet saved is discarded.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return invalidState("start", "timer is closed")
	}
	if c.running {
		c.mu.Unlock()
		return nil
	}
	if c.remaining == 0 {
		c.mu.Unlock()
		return invalidState("start", "no time remaining")
	}
	c.running = true
	c.completion = nil
	c.gen++
	c.anchor = c.clock.Now()
	c.anchorRemaining = c.remaining
	c.scheduleLocked(config.TickInterval)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("timer started", zap.Int("remaining", snap.Remaining))
	c.notifyChange(snap)
	return nil
}

// Pause stops the countdown and keeps the remaining seconds. Pausing a
// stopped timer is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	// Apply seconds that elapsed but whose tick has not been delivered yet.
	done := c.advanceLocked(c.clock.Now())
	if !done {
		c.stopLocked()
	}
	snap := c.snapshotLocked()
	comp := c.completion
	c.mu.Unlock()

	c.logger.Debug("timer paused", zap.Int("remaining", snap.Remaining))
	c.notifyChange(snap)
	if done {
		c.finish(*comp)
	}
}

// Reset stops the countdown and rewinds to the full duration. It never
// signals completion.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopLocked()
	c.remaining = c.duration
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("timer reset", zap.Int("duration", snap.Duration))
	c.notifyChange(snap)
}

// LastCompletion returns the most recent natural completion that has not
// been saved and has not been superseded by a new run.
func (c *Controller) LastCompletion() (Completion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completion == nil {
		return Completion{}, false
	}
	return *c.completion, true
}

// SaveSession hands the last completion and an optional note to the
// recorder. A failed save leaves the completion in place so the caller may
// try again; the controller itself never retries.
func (c *Controller) SaveSession(ctx context.Context, note string) error {
	c.mu.Lock()
	if c.completion == nil {
		c.mu.Unlock()
		return invalidState("save session", "no completed session")
	}
	if c.recorder == nil {
		c.mu.Unlock()
		return ErrNoRecorder
	}
	comp := *c.completion
	c.completion = nil
	rec := c.recorder
	c.mu.Unlock()

	if err := rec.RecordSession(ctx, comp.ElapsedSeconds, note); err != nil {
		c.mu.Lock()
		if c.completion == nil && !c.running {
			c.completion = &comp
		}
		c.mu.Unlock()
		c.logger.Warn("session not recorded", zap.Int("elapsed", comp.ElapsedSeconds), zap.Error(err))
		return fmt.Errorf("record session: %w", err)
	}
	c.logger.Info("session recorded", zap.Int("elapsed", comp.ElapsedSeconds))
	return nil
}

// Close cancels any scheduled tick and detaches the callbacks.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopLocked()
	c.closed = true
	c.onChange = nil
	c.onComplete = nil
	c.mu.Unlock()
}

func (c *Controller) scheduleLocked(delay time.Duration) {
	gen := c.gen
	c.pending = c.clock.AfterFunc(delay, func() { c.tick(gen) })
}

// stopLocked cancels the outstanding callback and invalidates any that has
// already fired.
func (c *Controller) stopLocked() {
	c.running = false
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// advanceLocked recomputes remaining from elapsed wall time and reports
// whether the countdown reached zero.
func (c *Controller) advanceLocked(now time.Time) bool {
	elapsed := now.Sub(c.anchor)
	if elapsed < 0 {
		elapsed = 0
	}
	consumed := int(elapsed / config.TickInterval)
	if consumed > c.anchorRemaining {
		consumed = c.anchorRemaining
	}
	c.remaining = c.anchorRemaining - consumed
	if c.remaining > 0 {
		return false
	}
	c.stopLocked()
	c.completion = &Completion{ElapsedSeconds: c.duration, CompletedAt: now}
	return true
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if !c.running || gen != c.gen {
		c.mu.Unlock()
		return
	}
	now := c.clock.Now()
	done := c.advanceLocked(now)
	if !done {
		// Next boundary is measured from the anchor, not from this callback.
		consumed := c.anchorRemaining - c.remaining
		next := c.anchor.Add(time.Duration(consumed+1) * config.TickInterval)
		delay := next.Sub(now)
		if delay <= 0 {
			delay = time.Millisecond
		}
		c.scheduleLocked(delay)
	}
	snap := c.snapshotLocked()
	comp := c.completion
	c.mu.Unlock()

	c.notifyChange(snap)
	if done {
		c.finish(*comp)
	}
}

func (c *Controller) finish(comp Completion) {
	c.logger.Info("meditation complete", zap.Int("elapsed", comp.ElapsedSeconds))
	if c.alerter != nil {
		if err := c.alerter.Alert(); err != nil {
			c.logger.Warn("completion alert failed", zap.Error(err))
		}
	}
	c.mu.Lock()
	cb := c.onComplete
	c.mu.Unlock()
	if cb != nil {
		cb(comp)
	}
}

func (c *Controller) notifyChange(s Snapshot) {
	c.mu.Lock()
	cb := c.onChange
	c.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}
