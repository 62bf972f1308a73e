package tabs

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/countdown"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/notify"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/internal/weather"
	"github.com/jask/flipclock/widgets"
)

// Scheduler returns a command delivering a core.TickMsg for gen after d.
type Scheduler func(gen uint64, kind string, d time.Duration) tea.Cmd

// Deps is everything the widgets need from the outside world.
type Deps struct {
	Location *time.Location

	Notifier    notify.Notifier
	Player      notify.Player
	AlarmNotify bool
	TimerNotify bool
	Snooze      time.Duration

	TimerDuration time.Duration

	Weather        weather.Provider
	Locator        weather.Locator
	FallbackCity   string
	WeatherTimeout time.Duration

	Journal journal.Recorder
	Logger  *slog.Logger

	Tick  Scheduler
	Every Scheduler
}

func (d Deps) withDefaults() Deps {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Notifier == nil {
		d.Notifier = notify.Silent{}
	}
	if d.Player == nil {
		d.Player = notify.Silent{}
	}
	if d.Snooze <= 0 {
		d.Snooze = 5 * time.Minute
	}
	if d.TimerDuration <= 0 {
		d.TimerDuration = countdown.DefaultDuration
	}
	if d.Locator == nil {
		d.Locator = weather.NoLocator{}
	}
	if d.WeatherTimeout <= 0 {
		d.WeatherTimeout = 10 * time.Second
	}
	if d.Journal == nil {
		d.Journal = journal.Discard{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Tick == nil {
		d.Tick = core.TickCmd
	}
	if d.Every == nil {
		d.Every = core.EveryCmd
	}
	return d
}

// Factory builds a fresh widget for each mount.
func Factory(d Deps) core.ViewFactory {
	d = d.withDefaults()
	return func(state orientation.ViewState, gen uint64) core.View {
		switch state {
		case orientation.ViewAlarm:
			return NewAlarmView(d, gen)
		case orientation.ViewStopwatch:
			return NewStopwatchView(d, gen)
		case orientation.ViewTimer:
			return NewTimerView(d, gen)
		case orientation.ViewWeather:
			return NewWeatherView(d, gen)
		}
		panic("tabs: no widget for " + state.String())
	}
}

// alert plays the alarm sound and shows a notification. Failures are logged
// and never retried.
func (d Deps) alert(view orientation.ViewState, title, body string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := notify.Alert(ctx, d.Notifier, d.Player, title, body); err != nil {
			d.Logger.Debug("alert failed", "view", view.String(), "err", err)
		}
		return nil
	}
}

func (d Deps) record(kind string, view orientation.ViewState, detail string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.Journal.Record(ctx, journal.Event{Kind: kind, View: view.String(), Detail: detail}); err != nil {
			d.Logger.Warn("journal write failed", "kind", kind, "err", err)
		}
		return nil
	}
}

func pane(m *core.Model, title, content string, alert bool) widgets.Pane {
	s := m.Styles()
	return widgets.Pane{
		Title:   title,
		Content: content,
		Center:  true,
		Border:  s.BorderLine,
		Accent:  lipgloss.Color(s.Theme.Accent),
		Text:    lipgloss.Color(s.Theme.Foreground),
		Alert:   alert,
	}
}

// clockNow is the model clock in the configured zone.
func (d Deps) clockNow(m *core.Model) time.Time {
	return m.Now().In(d.Location)
}
