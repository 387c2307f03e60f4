package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/timer"
)

// FakeClock is a manual timer.Clock. Time only moves through Advance, which
// fires due callbacks in deadline order with Now set to each deadline.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*FakeTimer
}

// FakeTimer is a callback scheduled on a FakeClock.
type FakeTimer struct {
	clock   *FakeClock
	at      time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

var _ timer.Clock = (*FakeClock)(nil)

// NewFakeClock returns a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) timer.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &FakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop cancels the callback. It reports false if it already fired or stopped.
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, firing every callback that falls due.
// Callbacks run on the caller's goroutine without the clock lock held.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		c.mu.Unlock()
		next.f()
	}
}

// Pending reports the number of scheduled callbacks that have neither fired
// nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *FakeClock) nextDueLocked(target time.Time) *FakeTimer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at.Equal(c.timers[j].at) {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at.Before(c.timers[j].at)
	})
	if len(c.timers) == 0 || c.timers[0].at.After(target) {
		return nil
	}
	return c.timers[0]
}

// LaggingClock delivers every callback late by Lag, simulating a scheduler
// under load.
type LaggingClock struct {
	*FakeClock
	Lag time.Duration
}

func (c *LaggingClock) AfterFunc(d time.Duration, f func()) timer.Timer {
	return c.FakeClock.AfterFunc(d+c.Lag, f)
}
