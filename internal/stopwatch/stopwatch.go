// Package stopwatch accumulates elapsed time in fixed ticks and records lap
// snapshots, most recent first.
package stopwatch

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// TickInterval is the stopwatch resolution.
const TickInterval = 10 * time.Millisecond

var ErrNotRunning = errors.New("stopwatch is not running")

type Stopwatch struct {
	elapsed time.Duration
	running bool
	laps    []time.Duration
}

func (s *Stopwatch) Elapsed() time.Duration { return s.elapsed }
func (s *Stopwatch) Running() bool          { return s.running }

// Laps returns a copy of the recorded laps, most recent first.
func (s *Stopwatch) Laps() []time.Duration {
	return slices.Clone(s.laps)
}

// Toggle starts or pauses without touching elapsed time.
func (s *Stopwatch) Toggle() {
	s.running = !s.running
}

// Tick adds d to the elapsed time while running. Non-positive d is ignored.
func (s *Stopwatch) Tick(d time.Duration) {
	if !s.running || d <= 0 {
		return
	}
	s.elapsed += d
}

// Reset stops the stopwatch, zeroes the elapsed time and clears laps.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
	s.laps = nil
}

// Lap records the current elapsed time at the front of the lap list.
func (s *Stopwatch) Lap() error {
	if !s.running {
		return ErrNotRunning
	}
	s.laps = slices.Insert(s.laps, 0, s.elapsed)
	return nil
}

// Split is one lap with its duration since the previous lap.
type Split struct {
	Number int
	At     time.Duration
	Delta  time.Duration
}

// Splits returns laps most recent first, numbered from the first lap taken.
func (s *Stopwatch) Splits() []Split {
	out := make([]Split, len(s.laps))
	for i, at := range s.laps {
		prev := time.Duration(0)
		if i+1 < len(s.laps) {
			prev = s.laps[i+1]
		}
		out[i] = Split{Number: len(s.laps) - i, At: at, Delta: at - prev}
	}
	return out
}

// Format renders d as MM:SS.cc. Minutes keep growing past 99.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
