// Package countdown implements the countdown timer: a configured duration
// that ticks down once per second to a finished state.
package countdown

import (
	"errors"
	"fmt"
	"time"
)

const (
	TickInterval    = time.Second
	MinDuration     = time.Minute
	DefaultDuration = 5 * time.Minute
	AdjustStep      = time.Minute
)

var ErrRunning = errors.New("timer is running")

type Timer struct {
	configured time.Duration
	remaining  time.Duration
	running    bool
	finished   bool
}

// New returns a paused timer. Durations below MinDuration are raised to it.
func New(d time.Duration) *Timer {
	if d < MinDuration {
		d = MinDuration
	}
	return &Timer{configured: d, remaining: d}
}

func (t *Timer) Configured() time.Duration { return t.configured }
func (t *Timer) Remaining() time.Duration  { return t.remaining }
func (t *Timer) Running() bool             { return t.running }
func (t *Timer) Finished() bool            { return t.finished }

// Toggle starts or pauses. On a finished timer it instead restores the
// configured duration and clears the finished flag, leaving it paused.
func (t *Timer) Toggle() {
	if t.finished {
		t.finished = false
		t.remaining = t.configured
		return
	}
	if !t.running && t.remaining <= 0 {
		return
	}
	t.running = !t.running
}

// Tick subtracts d. It returns true on the tick that finishes the timer.
func (t *Timer) Tick(d time.Duration) bool {
	if !t.running || t.remaining <= 0 || d <= 0 {
		return false
	}
	if t.remaining <= d {
		t.remaining = 0
		t.running = false
		t.finished = true
		return true
	}
	t.remaining -= d
	return false
}

// Reset stops the timer and restores the configured duration.
func (t *Timer) Reset() {
	t.running = false
	t.finished = false
	t.remaining = t.configured
}

// Adjust changes the configured duration by delta while stopped, never
// below MinDuration. Remaining is reset to the new duration.
func (t *Timer) Adjust(delta time.Duration) error {
	if t.running {
		return ErrRunning
	}
	next := t.configured + delta
	if next < MinDuration {
		next = MinDuration
	}
	t.configured = next
	t.remaining = next
	t.finished = false
	return nil
}

// Progress is the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.configured <= 0 {
		return 0
	}
	p := float64(t.configured-t.remaining) / float64(t.configured)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Format renders d as MM:SS.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
