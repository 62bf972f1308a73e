package core

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/internal/orientation"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

type PushScreenMsg struct {
	Screen Screen
}

type PopScreenMsg struct{}

type CommandExecuteMsg struct {
	CommandID string
}

// NavigateMsg switches route. Pin holds the view against orientation until
// the next orientation change.
type NavigateMsg struct {
	Path string
	Pin  bool
}

// QuitMsg asks the Model to unmount the current view and exit.
type QuitMsg struct{}

// ToggleModeMsg flips between auto and manual orientation mode.
type ToggleModeMsg struct{}

type PermissionMsg struct {
	Permission orientation.Permission
}

type SensorMsg struct {
	Tilt orientation.Tilt
	Err  error
}

type sensorPollMsg struct{}

type transitionDoneMsg struct{}

// Generational messages belong to one mount of a view. The Model drops
// them once that view is unmounted.
type Generational interface {
	Generation() uint64
}

// TickMsg drives a view's clock. Views tell their ticks apart by Kind.
type TickMsg struct {
	Gen  uint64
	Kind string
	At   time.Time
}

func (t TickMsg) Generation() uint64 { return t.Gen }

// TickCmd schedules a TickMsg for the view mounted at gen.
func TickCmd(gen uint64, kind string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Kind: kind, At: t}
	})
}

// EveryCmd is TickCmd aligned to wall-clock multiples of d, so a 1s tick
// lands just after each second boundary.
func EveryCmd(gen uint64, kind string, d time.Duration) tea.Cmd {
	return tea.Every(d, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Kind: kind, At: t}
	})
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{Text: "", IsErr: false}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

func NavigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path, Pin: true} }
}
