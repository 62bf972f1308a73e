package core

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/internal/clock"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/internal/theme"
	"github.com/jask/flipclock/widgets"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// View is the mounted widget. Exactly one is alive at a time; the Model
// drops it on every switch and builds a fresh one through the factory.
type View interface {
	State() orientation.ViewState
	Scope() string
	Init(m *Model) tea.Cmd
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// Unmounter is implemented by views holding resources (in-flight requests).
type Unmounter interface {
	Unmount()
}

// InputCapturer is implemented by views with a focused text field. While it
// reports true, keys bypass the global bindings.
type InputCapturer interface {
	CapturingInput() bool
}

// ViewFactory builds the view for state. gen is the mount generation the
// view must stamp on its tick messages.
type ViewFactory func(state orientation.ViewState, gen uint64) View

// Mode selects whether orientation readings switch views.
type Mode int

const (
	ModeAuto Mode = iota
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "auto"
}

// ParseMode accepts "auto" and "manual".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "auto", "":
		return ModeAuto, true
	case "manual":
		return ModeManual, true
	}
	return ModeAuto, false
}

type Options struct {
	Factory    ViewFactory
	Keys       *KeyRegistry
	Commands   *CommandRegistry
	Themes     theme.Set
	Detector   *orientation.Detector
	Sensor     orientation.Sensor
	Mode       Mode
	Poll       time.Duration
	StartRoute string
	// Pin keeps StartRoute until the first orientation change.
	Pin    bool
	Clock  clock.Clock
	Logger *slog.Logger
}

type Model struct {
	width  int
	height int

	factory  ViewFactory
	view     View
	state    orientation.ViewState
	missing  string
	gen      uint64
	themes   theme.Set
	styles   Styles
	detector *orientation.Detector
	sensor   orientation.Sensor
	granted  bool
	tilt     *orientation.Tilt
	poll     time.Duration
	mode     Mode
	pinned   bool
	observed bool
	start    string

	screens   ScreenStack
	keys      *KeyRegistry
	commands  *CommandRegistry
	status    string
	statusErr bool
	quitting  bool

	clock  clock.Clock
	logger *slog.Logger

	OpenRoutePicker  func(m *Model) Screen
	OpenCommandModal func(m *Model, scope string) Screen
	OpenHistory      func(m *Model) Screen
}

func NewModel(opts Options) Model {
	if opts.Keys == nil {
		opts.Keys = NewKeyRegistry(DefaultKeyBindings())
	}
	if opts.Commands == nil {
		opts.Commands = NewCommandRegistry(nil)
	}
	if opts.Themes == nil {
		opts.Themes = theme.Defaults()
	}
	if opts.Detector == nil {
		opts.Detector = orientation.NewDetector(orientation.DefaultThresholds, orientation.DefaultTransition)
	}
	if opts.Sensor == nil {
		opts.Sensor = orientation.NoSensor{}
	}
	if opts.Poll <= 0 {
		opts.Poll = 250 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		factory:  opts.Factory,
		themes:   opts.Themes,
		detector: opts.Detector,
		sensor:   opts.Sensor,
		poll:     opts.Poll,
		mode:     opts.Mode,
		pinned:   opts.Pin,
		start:    opts.StartRoute,
		keys:     opts.Keys,
		commands: opts.Commands,
		clock:    opts.Clock,
		logger:   opts.Logger,
		status:   "Ready",
		width:    100,
		height:   32,
	}
	m.styles = NewStyles(m.themes.For(orientation.ViewAlarm))
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return NavigateMsg{Path: m.start, Pin: m.pinned} },
		requestPermission(m.sensor),
	)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if m.view == nil {
		return "view:none"
	}
	return m.view.Scope()
}

// State is the view currently mounted. ok is false on the NotFound screen.
func (m Model) State() (orientation.ViewState, bool) {
	return m.state, m.view != nil
}

func (m Model) Generation() uint64   { return m.gen }
func (m Model) Mode() Mode           { return m.mode }
func (m Model) Pinned() bool         { return m.pinned }
func (m Model) SensorGranted() bool  { return m.granted }
func (m Model) Missing() string      { return m.missing }
func (m Model) Now() time.Time       { return m.clock.Now() }
func (m Model) Logger() *slog.Logger { return m.logger }
func (m Model) Styles() Styles       { return m.styles }
func (m Model) Size() (int, int)     { return m.width, m.height }
func (m Model) Keys() *KeyRegistry   { return m.keys }

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

// mount replaces the current view with a fresh instance for state. The old
// view's generation is retired so its pending ticks are dropped.
func (m *Model) mount(state orientation.ViewState) tea.Cmd {
	m.unmount()
	m.missing = ""
	m.state = state
	m.styles = NewStyles(m.themes.For(state))
	if m.factory == nil {
		return nil
	}
	m.view = m.factory(state, m.gen)
	m.logger.Debug("view mounted", "view", state.String(), "gen", m.gen)
	return m.view.Init(m)
}

func (m *Model) unmount() {
	if m.view != nil {
		if u, ok := m.view.(Unmounter); ok {
			u.Unmount()
		}
		m.logger.Debug("view unmounted", "view", m.view.State().String(), "gen", m.gen)
	}
	m.view = nil
	m.gen++
}

// Navigate switches to path. Unknown paths unmount the current view and
// show NotFound. The empty path and "/" follow orientation.
func (m *Model) Navigate(path string) tea.Cmd {
	if path == "" || path == "/" {
		_, state := m.detector.Current()
		return m.mount(state)
	}
	state, ok := orientation.ParseViewState(path)
	if !ok {
		m.unmount()
		m.missing = path
		m.logger.Info("unknown route", "path", path)
		return nil
	}
	if m.view != nil && m.state == state {
		return nil
	}
	return m.mount(state)
}

// observe feeds a reading to the detector and switches view on a change.
func (m *Model) observe() tea.Cmd {
	r := orientation.Reading{Width: m.width, Height: m.height, Tilt: m.tilt}
	now := m.clock.Now()
	state, changed := m.detector.Observe(r, now)
	first := !m.observed
	m.observed = true
	if !changed {
		return nil
	}
	m.logger.Debug("orientation changed", "view", state.String(), "width", m.width, "height", m.height, "tilt", m.tilt != nil)
	if m.pinned && first {
		return nil
	}
	m.pinned = false
	fade := tea.Tick(m.detector.TransitionDuration(), func(time.Time) tea.Msg { return transitionDoneMsg{} })
	if m.mode != ModeAuto || m.missing != "" {
		return fade
	}
	if m.view != nil && m.state == state {
		return fade
	}
	return tea.Batch(m.mount(state), fade)
}

func requestPermission(s orientation.Sensor) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return PermissionMsg{Permission: s.RequestPermission(ctx)}
	}
}

func (m Model) readSensor() tea.Cmd {
	s := m.sensor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		tilt, err := s.Read(ctx)
		return SensorMsg{Tilt: tilt, Err: err}
	}
}

func (m Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.poll, func(time.Time) tea.Msg { return sensorPollMsg{} })
}
