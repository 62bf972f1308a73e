package tabs

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/alarm"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/widgets"
)

const alarmTick = "alarm"

// AlarmView shows the wall clock and one alarm.
type AlarmView struct {
	deps    Deps
	gen     uint64
	alarm   alarm.Alarm
	now     time.Time
	input   textinput.Model
	editing bool
	err     string
}

func NewAlarmView(d Deps, gen uint64) *AlarmView {
	in := textinput.New()
	in.Placeholder = "HH:MM"
	in.Prompt = "alarm> "
	in.CharLimit = 5
	in.Width = 8
	return &AlarmView{deps: d, gen: gen, input: in}
}

func (v *AlarmView) State() orientation.ViewState { return orientation.ViewAlarm }

func (v *AlarmView) Scope() string {
	if v.editing {
		return "input:alarm"
	}
	return core.ScopeAlarm
}

func (v *AlarmView) CapturingInput() bool { return v.editing }

// Alarm exposes the state machine for inspection.
func (v *AlarmView) Alarm() *alarm.Alarm { return &v.alarm }

func (v *AlarmView) Init(m *core.Model) tea.Cmd {
	v.now = v.deps.clockNow(m)
	return v.deps.Every(v.gen, alarmTick, time.Second)
}

func (v *AlarmView) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.TickMsg:
		if msg.Kind != alarmTick {
			return nil
		}
		v.now = v.deps.clockNow(m)
		next := v.deps.Every(v.gen, alarmTick, time.Second)
		if !v.alarm.Check(v.now) {
			return next
		}
		return tea.Batch(next, v.fired())
	case tea.KeyMsg:
		action, _ := m.Keys().ActionFor(msg, v.Scope())
		if v.editing {
			return v.updateInput(action, msg)
		}
		return v.handleAction(m, action)
	}
	return nil
}

func (v *AlarmView) fired() tea.Cmd {
	target, _ := v.alarm.Target()
	v.deps.Logger.Info("alarm fired", "target", target.String())
	cmds := []tea.Cmd{v.deps.record(journal.KindAlarmFired, orientation.ViewAlarm, target.String())}
	if v.deps.AlarmNotify {
		cmds = append(cmds, v.deps.alert(orientation.ViewAlarm, "Alarm!", "It's "+target.String()))
	}
	return tea.Batch(cmds...)
}

func (v *AlarmView) handleAction(m *core.Model, action string) tea.Cmd {
	switch action {
	case "alarm-edit":
		if v.alarm.Armed() {
			v.err = alarm.ErrArmed.Error()
			return nil
		}
		v.err = ""
		v.editing = true
		if t, ok := v.alarm.Target(); ok {
			v.input.SetValue(t.String())
		}
		v.input.CursorEnd()
		return v.input.Focus()
	case "alarm-arm":
		switch v.alarm.Phase() {
		case alarm.Armed, alarm.Fired:
			v.alarm.Cancel()
			v.err = ""
			return core.StatusCmd("Alarm cancelled")
		default:
			if err := v.alarm.Arm(); err != nil {
				v.err = err.Error()
				return nil
			}
			v.err = ""
			t, _ := v.alarm.Target()
			return core.StatusCmd(fmt.Sprintf("Alarm set for %s (in %s)", t, until(v.now, t.Next(v.now))))
		}
	case "alarm-snooze":
		if err := v.alarm.Snooze(v.now, v.deps.Snooze); err != nil {
			v.err = err.Error()
			return nil
		}
		v.err = ""
		t, _ := v.alarm.Target()
		return tea.Batch(
			core.StatusCmd("Snoozed until "+t.String()),
			v.deps.record(journal.KindAlarmSnoozed, orientation.ViewAlarm, t.String()),
		)
	}
	return nil
}

func (v *AlarmView) updateInput(action string, msg tea.KeyMsg) tea.Cmd {
	switch action {
	case "input-cancel":
		v.stopEditing()
		return nil
	case "alarm-save":
		t, err := alarm.ParseTarget(v.input.Value())
		if err != nil {
			v.err = err.Error()
			return nil
		}
		if err := v.alarm.SetTarget(t); err != nil {
			v.err = err.Error()
			return nil
		}
		v.stopEditing()
		return core.StatusCmd("Alarm time " + t.String() + " (press a to arm)")
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *AlarmView) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.input.SetValue("")
}

func (v *AlarmView) Build(m *core.Model) widgets.Widget {
	s := m.Styles()
	return widgets.Func(func(width, height int) string {
		clock := widgets.Digits{Value: alarm.FormatClock(v.now), Style: s.Accent}.Render(width-4, max(1, height-8))
		lines := []string{clock, "", s.Muted.Render(alarm.FormatDate(v.now)), ""}

		target, hasTarget := v.alarm.Target()
		switch v.alarm.Phase() {
		case alarm.Fired:
			lines = append(lines, s.Error.Render("⏰ Alarm! "+target.String()), s.Muted.Render("z snooze · a dismiss"))
		case alarm.Armed:
			lines = append(lines, s.Success.Render("Alarm set for "+target.String()), s.Muted.Render("rings in "+until(v.now, target.Next(v.now))))
		default:
			if hasTarget {
				lines = append(lines, "Alarm "+target.String()+" (off)")
			} else {
				lines = append(lines, s.Muted.Render("No alarm set"))
			}
		}
		if v.editing {
			lines = append(lines, "", v.input.View())
		}
		if v.err != "" {
			lines = append(lines, "", s.Error.Render(v.err))
		}
		return pane(m, "Alarm", strings.Join(lines, "\n"), v.alarm.HasFired()).Render(width, height)
	})
}

// until renders the gap between now and t as "1h 05m" or "12m".
func until(now, t time.Time) string {
	d := t.Sub(now).Round(time.Minute)
	if d < time.Minute {
		return "under a minute"
	}
	h := int(d / time.Hour)
	mins := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", h, mins)
}
