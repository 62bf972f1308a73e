// Package alarm implements the alarm clock state machine:
// Idle -> Armed -> Fired -> Idle.
package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoTarget    = errors.New("no alarm time set")
	ErrArmed       = errors.New("alarm is armed; cancel it first")
	ErrInvalidTime = errors.New("invalid alarm time")
)

// Phase is the alarm state.
type Phase int

const (
	Idle Phase = iota
	Armed
	Fired
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	}
	return "unknown"
}

// Target is a wall-clock time of day with minute resolution.
type Target struct {
	Hour   int
	Minute int
}

// ParseTarget parses "HH:MM" (24h). A single-digit hour is accepted.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Target{}, fmt.Errorf("%w %q: want HH:MM", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Target{}, fmt.Errorf("%w %q: hour out of range", ErrInvalidTime, s)
	}
	if len(mm) != 2 {
		return Target{}, fmt.Errorf("%w %q: want two-digit minutes", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return Target{}, fmt.Errorf("%w %q: minute out of range", ErrInvalidTime, s)
	}
	return Target{Hour: h, Minute: m}, nil
}

func (t Target) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Matches reports whether now is exactly this target minute at second 0.
func (t Target) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute && now.Second() == 0
}

// Next returns the first occurrence of the target at or after now.
func (t Target) Next(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Alarm holds one alarm setting. The zero value is Idle with no target.
type Alarm struct {
	target    Target
	hasTarget bool
	phase     Phase
	firedAt   time.Time
}

func (a *Alarm) Phase() Phase           { return a.phase }
func (a *Alarm) Armed() bool            { return a.phase == Armed }
func (a *Alarm) HasFired() bool         { return a.phase == Fired }
func (a *Alarm) FiredAt() time.Time     { return a.firedAt }
func (a *Alarm) Target() (Target, bool) { return a.target, a.hasTarget }

// SetTarget replaces the target time. Editing clears a previous firing.
func (a *Alarm) SetTarget(t Target) error {
	if a.phase == Armed {
		return ErrArmed
	}
	a.target = t
	a.hasTarget = true
	a.phase = Idle
	return nil
}

// Arm starts waiting for the target.
func (a *Alarm) Arm() error {
	if !a.hasTarget {
		return ErrNoTarget
	}
	if a.phase == Armed {
		return nil
	}
	a.phase = Armed
	return nil
}

// Cancel disarms and clears any firing.
func (a *Alarm) Cancel() {
	a.phase = Idle
}

// Check is called once per tick. It returns true exactly once, on the tick
// that matches the target while armed.
func (a *Alarm) Check(now time.Time) bool {
	if a.phase != Armed || !a.target.Matches(now) {
		return false
	}
	a.phase = Fired
	a.firedAt = now
	return true
}

// Snooze re-arms a fired alarm for the minute d after now.
func (a *Alarm) Snooze(now time.Time, d time.Duration) error {
	if a.phase != Fired {
		return fmt.Errorf("snooze: alarm is %s", a.phase)
	}
	at := now.Add(d)
	if at.Second() != 0 || at.Nanosecond() != 0 {
		at = at.Truncate(time.Minute).Add(time.Minute)
	}
	a.target = Target{Hour: at.Hour(), Minute: at.Minute()}
	a.phase = Armed
	return nil
}

// FormatClock renders the wall clock the way the alarm view shows it.
func FormatClock(now time.Time) string {
	return now.Format("15:04:05")
}

// FormatDate renders e.g. "Saturday, October 17, 2026".
func FormatDate(now time.Time) string {
	return now.Format("Monday, January 2, 2006")
}
