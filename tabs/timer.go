package tabs

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/countdown"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/widgets"
)

const timerTick = "timer"

// TimerView counts down from a configurable duration. Each run of the
// countdown tags its ticks with an epoch; pausing, resetting, adjusting or
// finishing bumps it so ticks already in flight are ignored.
type TimerView struct {
	deps  Deps
	gen   uint64
	timer *countdown.Timer
	bar   progress.Model
	epoch uint64
}

func NewTimerView(d Deps, gen uint64) *TimerView {
	bar := progress.New(progress.WithoutPercentage())
	return &TimerView{deps: d, gen: gen, timer: countdown.New(d.TimerDuration), bar: bar}
}

func (v *TimerView) State() orientation.ViewState { return orientation.ViewTimer }
func (v *TimerView) Scope() string                { return core.ScopeTimer }
func (v *TimerView) Init(*core.Model) tea.Cmd     { return nil }

// Timer exposes the state machine for inspection.
func (v *TimerView) Timer() *countdown.Timer { return v.timer }

func (v *TimerView) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.TickMsg:
		if msg.Kind != v.tickKind() || !v.timer.Running() {
			return nil
		}
		if v.timer.Tick(countdown.TickInterval) {
			v.epoch++
			return v.finished()
		}
		return v.schedule()
	case tea.KeyMsg:
		action, _ := m.Keys().ActionFor(msg, v.Scope())
		switch action {
		case "timer-toggle":
			v.timer.Toggle()
			v.epoch++
			if v.timer.Running() {
				return v.schedule()
			}
		case "timer-reset":
			v.timer.Reset()
			v.epoch++
		case "timer-inc":
			return v.adjust(countdown.AdjustStep)
		case "timer-dec":
			return v.adjust(-countdown.AdjustStep)
		}
	}
	return nil
}

func (v *TimerView) adjust(delta time.Duration) tea.Cmd {
	if err := v.timer.Adjust(delta); err != nil {
		if errors.Is(err, countdown.ErrRunning) {
			return core.StatusCmd("Pause the timer to change its duration")
		}
		return core.ErrorCmd(err)
	}
	v.epoch++
	return nil
}

func (v *TimerView) finished() tea.Cmd {
	configured := countdown.Format(v.timer.Configured())
	v.deps.Logger.Info("timer finished", "duration", configured)
	cmds := []tea.Cmd{v.deps.record(journal.KindTimerFinished, orientation.ViewTimer, configured)}
	if v.deps.TimerNotify {
		cmds = append(cmds, v.deps.alert(orientation.ViewTimer, "Timer", "Time's up! ("+configured+")"))
	}
	return tea.Batch(cmds...)
}

func (v *TimerView) tickKind() string {
	return timerTick + ":" + strconv.FormatUint(v.epoch, 10)
}

func (v *TimerView) schedule() tea.Cmd {
	return v.deps.Tick(v.gen, v.tickKind(), countdown.TickInterval)
}

func (v *TimerView) Build(m *core.Model) widgets.Widget {
	s := m.Styles()
	return widgets.Func(func(width, height int) string {
		inner := max(10, width-4)
		ring := widgets.Ring{
			Progress: v.timer.Progress(),
			Label:    countdown.Format(v.timer.Remaining()),
			Filled:   s.Accent,
			Empty:    s.Muted,
		}.Render(inner, max(3, height-7))

		v.bar.Width = min(inner, 48)
		v.bar.FullColor = s.Theme.Accent
		v.bar.EmptyColor = s.Theme.Border

		state := "paused"
		switch {
		case v.timer.Finished():
			state = s.Error.Render("Time's up!")
		case v.timer.Running():
			state = "running"
		case v.timer.Remaining() == v.timer.Configured():
			state = "set for " + countdown.Format(v.timer.Configured())
		}
		lines := []string{
			lipgloss.PlaceHorizontal(inner, lipgloss.Center, ring),
			"",
			v.bar.ViewAs(v.timer.Progress()),
			"",
			s.Muted.Render(state),
		}
		return pane(m, "Timer", strings.Join(lines, "\n"), v.timer.Finished()).Render(width, height)
	})
}
