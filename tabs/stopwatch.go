package tabs

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/internal/stopwatch"
	"github.com/jask/flipclock/widgets"
)

const stopwatchTick = "stopwatch"

// StopwatchView counts up in centiseconds and records laps.
type StopwatchView struct {
	deps    Deps
	gen     uint64
	sw      stopwatch.Stopwatch
	ticking bool
	last    time.Time
}

func NewStopwatchView(d Deps, gen uint64) *StopwatchView {
	return &StopwatchView{deps: d, gen: gen}
}

func (v *StopwatchView) State() orientation.ViewState { return orientation.ViewStopwatch }
func (v *StopwatchView) Scope() string                { return core.ScopeStopwatch }
func (v *StopwatchView) Init(*core.Model) tea.Cmd     { return nil }

// Stopwatch exposes the state machine for inspection.
func (v *StopwatchView) Stopwatch() *stopwatch.Stopwatch { return &v.sw }

func (v *StopwatchView) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.TickMsg:
		if msg.Kind != stopwatchTick {
			return nil
		}
		v.ticking = false
		if !v.sw.Running() {
			return nil
		}
		now := m.Now()
		v.sw.Tick(now.Sub(v.last))
		v.last = now
		return v.schedule()
	case tea.KeyMsg:
		action, _ := m.Keys().ActionFor(msg, v.Scope())
		switch action {
		case "stopwatch-toggle":
			now := m.Now()
			if v.sw.Running() {
				v.sw.Tick(now.Sub(v.last))
				v.sw.Toggle()
				return nil
			}
			v.sw.Toggle()
			v.last = now
			return v.schedule()
		case "stopwatch-lap":
			if v.sw.Running() {
				now := m.Now()
				v.sw.Tick(now.Sub(v.last))
				v.last = now
			}
			if err := v.sw.Lap(); err != nil {
				return core.StatusCmd(err.Error())
			}
			return nil
		case "stopwatch-reset":
			laps, elapsed := len(v.sw.Laps()), v.sw.Elapsed()
			v.sw.Reset()
			if laps == 0 {
				return nil
			}
			return v.deps.record(journal.KindStopwatchReset, orientation.ViewStopwatch,
				fmt.Sprintf("%s, %d laps", stopwatch.Format(elapsed), laps))
		}
	}
	return nil
}

func (v *StopwatchView) schedule() tea.Cmd {
	if v.ticking {
		return nil
	}
	v.ticking = true
	return v.deps.Tick(v.gen, stopwatchTick, stopwatch.TickInterval)
}

func (v *StopwatchView) Build(m *core.Model) widgets.Widget {
	s := m.Styles()
	face := widgets.Func(func(width, height int) string {
		state := "paused"
		if v.sw.Running() {
			state = "running"
		} else if v.sw.Elapsed() == 0 {
			state = "ready"
		}
		digits := widgets.Digits{Value: stopwatch.Format(v.sw.Elapsed()), Style: s.Accent}.Render(width-4, max(1, height-4))
		return pane(m, "Stopwatch", digits+"\n\n"+s.Muted.Render(state), false).Render(width, height)
	})
	laps := widgets.Func(func(width, height int) string {
		splits := v.sw.Splits()
		if len(splits) == 0 {
			return pane(m, "Laps", s.Muted.Render("no laps"), false).Render(width, height)
		}
		rows := make([]string, 0, len(splits))
		for _, sp := range splits {
			rows = append(rows, fmt.Sprintf("Lap %-3d %s  %s", sp.Number, stopwatch.Format(sp.At), s.Muted.Render("+"+stopwatch.Format(sp.Delta))))
		}
		return pane(m, fmt.Sprintf("Laps (%d)", len(splits)), strings.Join(rows, "\n"), false).Render(width, height)
	})
	return widgets.Func(func(width, height int) string {
		if width > 2*height {
			return widgets.HStack{Widgets: []widgets.Widget{face, laps}, Ratios: []float64{0.62, 0.38}, Gap: 1}.Render(width, height)
		}
		return widgets.VStack{Widgets: []widgets.Widget{face, laps}, Ratios: []float64{0.6, 0.4}}.Render(width, height)
	})
}
