package orientation

import (
	"math"
	"sync"
	"time"
)

// Tilt holds raw tilt angles in degrees. Beta is the front-back tilt and
// Gamma the left-right tilt.
type Tilt struct {
	Beta  float64
	Gamma float64
}

// Reading is one orientation signal. Any field may be absent: Type is empty
// when the platform exposes no orientation type, Tilt is nil when no tilt
// sensor is available or permitted.
type Reading struct {
	Type   Type
	Width  int
	Height int
	Tilt   *Tilt
}

// Landscape reports whether the viewport is wider than tall.
func (r Reading) Landscape() bool {
	return r.Width > r.Height
}

// Thresholds tune tilt refinement.
type Thresholds struct {
	// Gamma above which a landscape device counts as left-side-up.
	Gamma float64
	// |Beta| above which a portrait device counts as upside down.
	Beta float64
}

// DefaultThresholds match the usual handheld behaviour.
var DefaultThresholds = Thresholds{Gamma: 45, Beta: 135}

// DefaultTransition is how long the fade flag stays set after a change.
const DefaultTransition = 300 * time.Millisecond

// Classify returns the orientation type for a reading. Tilt takes priority,
// then the platform type, then the width/height comparison.
func Classify(r Reading, th Thresholds) Type {
	if r.Tilt != nil {
		if r.Landscape() {
			if r.Tilt.Gamma > th.Gamma {
				return LandscapeSecondary
			}
			return LandscapePrimary
		}
		if math.Abs(r.Tilt.Beta) > th.Beta || r.Tilt.Beta < -90 {
			return PortraitSecondary
		}
		return PortraitPrimary
	}
	if _, ok := r.Type.View(); ok {
		return r.Type
	}
	if r.Landscape() {
		return LandscapePrimary
	}
	return PortraitPrimary
}

// Detect maps a reading straight to a view.
func Detect(r Reading, th Thresholds) ViewState {
	v, _ := Classify(r, th).View()
	return v
}

// Detector tracks the current orientation and the transition window around
// each change. It is safe for concurrent use.
type Detector struct {
	mu         sync.Mutex
	thresholds Thresholds
	transition time.Duration
	current    Type
	view       ViewState
	changedAt  time.Time
	seen       bool
}

func NewDetector(th Thresholds, transition time.Duration) *Detector {
	if th.Gamma == 0 && th.Beta == 0 {
		th = DefaultThresholds
	}
	if transition <= 0 {
		transition = DefaultTransition
	}
	return &Detector{thresholds: th, transition: transition, current: PortraitPrimary, view: ViewAlarm}
}

// Observe classifies r and reports the resulting view and whether it differs
// from the previous one. The first reading always counts as a change so the
// initial mount gets a transition too.
func (d *Detector) Observe(r Reading, now time.Time) (ViewState, bool) {
	t := Classify(r, d.thresholds)
	v, _ := t.View()

	d.mu.Lock()
	defer d.mu.Unlock()
	changed := !d.seen || t != d.current
	d.seen = true
	d.current = t
	d.view = v
	if changed {
		d.changedAt = now
	}
	return v, changed
}

// Current returns the last classified orientation and view.
func (d *Detector) Current() (Type, ViewState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.view
}

// Transitioning reports whether now falls within the fade window of the
// last change.
func (d *Detector) Transitioning(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.seen {
		return false
	}
	return now.Sub(d.changedAt) < d.transition
}

// TransitionDuration is the configured fade window.
func (d *Detector) TransitionDuration() time.Duration {
	return d.transition
}
