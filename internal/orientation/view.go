// Package orientation maps device and window orientation signals to the
// widget view that should be mounted.
package orientation

import (
	"fmt"
	"strings"
)

// ViewState is the currently selected widget.
type ViewState int

const (
	ViewAlarm ViewState = iota
	ViewStopwatch
	ViewTimer
	ViewWeather
)

// AllViews lists every view in navigation order.
var AllViews = []ViewState{ViewAlarm, ViewStopwatch, ViewTimer, ViewWeather}

func (v ViewState) String() string {
	switch v {
	case ViewAlarm:
		return "alarm"
	case ViewStopwatch:
		return "stopwatch"
	case ViewTimer:
		return "timer"
	case ViewWeather:
		return "weather"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Title is the label shown in the header.
func (v ViewState) Title() string {
	switch v {
	case ViewAlarm:
		return "Alarm"
	case ViewStopwatch:
		return "Stopwatch"
	case ViewTimer:
		return "Timer"
	case ViewWeather:
		return "Weather"
	}
	return "Unknown"
}

// Route is the navigation path for the view.
func (v ViewState) Route() string {
	return "/" + v.String()
}

// OrientationType is the orientation that selects this view.
func (v ViewState) OrientationType() Type {
	switch v {
	case ViewAlarm:
		return PortraitPrimary
	case ViewStopwatch:
		return LandscapePrimary
	case ViewTimer:
		return PortraitSecondary
	case ViewWeather:
		return LandscapeSecondary
	}
	return TypeUnknown
}

// Valid reports whether v is one of the four views.
func (v ViewState) Valid() bool {
	return v >= ViewAlarm && v <= ViewWeather
}

// ParseViewState accepts a view name or a route ("timer", "/timer").
func ParseViewState(s string) (ViewState, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "/")
	for _, v := range AllViews {
		if v.String() == name {
			return v, true
		}
	}
	return ViewAlarm, false
}

// Type mirrors the platform orientation-type strings.
type Type string

const (
	TypeUnknown        Type = ""
	PortraitPrimary    Type = "portrait-primary"
	LandscapePrimary   Type = "landscape-primary"
	PortraitSecondary  Type = "portrait-secondary"
	LandscapeSecondary Type = "landscape-secondary"
)

// View maps an orientation type to its view. Unknown types yield the alarm
// view and false.
func (t Type) View() (ViewState, bool) {
	switch t {
	case PortraitPrimary:
		return ViewAlarm, true
	case LandscapePrimary:
		return ViewStopwatch, true
	case PortraitSecondary:
		return ViewTimer, true
	case LandscapeSecondary:
		return ViewWeather, true
	}
	return ViewAlarm, false
}

// Label renders the type the way the orientation indicator shows it.
func (t Type) Label() string {
	if t == TypeUnknown {
		return "unknown"
	}
	return strings.Replace(string(t), "-", " ", 1)
}
