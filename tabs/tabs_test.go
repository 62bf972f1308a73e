package tabs

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/alarm"
	"github.com/jask/flipclock/internal/clock"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/internal/weather"
)

type scheduled struct {
	gen  uint64
	kind string
	d    time.Duration
}

type fakeJournal struct {
	mu      sync.Mutex
	events  []journal.Event
	touched []string
	known   []string
}

func (j *fakeJournal) Record(_ context.Context, e journal.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
	return nil
}

func (j *fakeJournal) TouchCity(_ context.Context, name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.touched = append(j.touched, name)
	return nil
}

func (j *fakeJournal) CityNames(context.Context, int) ([]string, error) {
	return j.known, nil
}

func (j *fakeJournal) kinds() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.Kind)
	}
	return out
}

type fakeAlert struct {
	mu     sync.Mutex
	titles []string
	plays  int
}

func (f *fakeAlert) Notify(_ context.Context, title, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeAlert) Play(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

type fakeProvider struct {
	mu    sync.Mutex
	calls []weather.Source
	fn    func(weather.Source) (weather.Snapshot, error)
}

func (p *fakeProvider) Current(_ context.Context, src weather.Source) (weather.Snapshot, error) {
	p.mu.Lock()
	p.calls = append(p.calls, src)
	p.mu.Unlock()
	return p.fn(src)
}

type fixture struct {
	deps    Deps
	model   core.Model
	clock   *clock.Fake
	journal *fakeJournal
	alert   *fakeAlert
}

func newFixture(t *testing.T, start time.Time) *fixture {
	t.Helper()
	f := &fixture{
		clock:   clock.NewFake(start),
		journal: &fakeJournal{},
		alert:   &fakeAlert{},
	}
	marker := func(gen uint64, kind string, d time.Duration) tea.Cmd {
		return func() tea.Msg { return scheduled{gen: gen, kind: kind, d: d} }
	}
	f.deps = Deps{
		Location:    time.UTC,
		Notifier:    f.alert,
		Player:      f.alert,
		AlarmNotify: true,
		TimerNotify: true,
		Journal:     f.journal,
		Tick:        marker,
		Every:       marker,
	}.withDefaults()
	f.model = core.NewModel(core.Options{Clock: f.clock, Mode: core.ModeManual})
	return f
}

// drain runs cmd and every batched command under it. Only call it on
// commands known not to sleep.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFactoryBuildsEachView(t *testing.T) {
	factory := Factory(Deps{})
	for _, v := range orientation.AllViews {
		got := factory(v, 7)
		require.Equal(t, v, got.State())
	}
}

func TestAlarmFiresExactlyOnce(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 6, 59, 58, 0, time.UTC))
	v := NewAlarmView(f.deps, 1)
	m := &f.model

	msgs := drain(v.Init(m))
	require.Equal(t, []tea.Msg{scheduled{gen: 1, kind: alarmTick, d: time.Second}}, msgs)

	v.Update(m, key("e"))
	require.True(t, v.CapturingInput())
	require.Equal(t, "input:alarm", v.Scope())
	v.Update(m, key("07:00"))
	v.Update(m, key("enter"))
	require.False(t, v.CapturingInput())
	target, ok := v.Alarm().Target()
	require.True(t, ok)
	require.Equal(t, alarm.Target{Hour: 7}, target)

	v.Update(m, key("a"))
	require.True(t, v.Alarm().Armed())

	f.clock.Advance(time.Second)
	msgs = drain(v.Update(m, core.TickMsg{Gen: 1, Kind: alarmTick}))
	require.Len(t, msgs, 1)
	require.Empty(t, f.journal.kinds())

	f.clock.Advance(time.Second)
	drain(v.Update(m, core.TickMsg{Gen: 1, Kind: alarmTick}))
	require.True(t, v.Alarm().HasFired())
	require.Equal(t, []string{journal.KindAlarmFired}, f.journal.kinds())
	require.Equal(t, []string{"Alarm!"}, f.alert.titles)
	require.Equal(t, 1, f.alert.plays)

	for range 3 {
		f.clock.Advance(time.Second)
		drain(v.Update(m, core.TickMsg{Gen: 1, Kind: alarmTick}))
	}
	require.Len(t, f.journal.kinds(), 1)
	require.Contains(t, v.Build(m).Render(60, 20), "Alarm! 07:00")
}

func TestAlarmEditRejectedWhileArmed(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	v := NewAlarmView(f.deps, 1)
	m := &f.model
	v.Init(m)
	require.NoError(t, v.Alarm().SetTarget(alarm.Target{Hour: 10}))
	v.Update(m, key("a"))

	v.Update(m, key("e"))
	require.False(t, v.CapturingInput())
	require.Contains(t, v.Build(m).Render(60, 20), alarm.ErrArmed.Error())
}

func TestAlarmInvalidInputKeepsEditing(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	v := NewAlarmView(f.deps, 1)
	m := &f.model
	v.Init(m)

	v.Update(m, key("e"))
	v.Update(m, key("25:00"))
	v.Update(m, key("enter"))
	require.True(t, v.CapturingInput())
	_, ok := v.Alarm().Target()
	require.False(t, ok)

	v.Update(m, key("esc"))
	require.False(t, v.CapturingInput())
}

func TestAlarmSnoozeRearms(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC))
	v := NewAlarmView(f.deps, 1)
	m := &f.model
	v.Init(m)
	require.NoError(t, v.Alarm().SetTarget(alarm.Target{Hour: 7}))
	require.NoError(t, v.Alarm().Arm())
	drain(v.Update(m, core.TickMsg{Gen: 1, Kind: alarmTick}))
	require.True(t, v.Alarm().HasFired())

	f.clock.Advance(20 * time.Second)
	drain(v.Update(m, core.TickMsg{Gen: 1, Kind: alarmTick}))
	msgs := drain(v.Update(m, key("z")))
	require.Contains(t, msgs, tea.Msg(core.StatusMsg{Text: "Snoozed until 07:06"}))
	require.True(t, v.Alarm().Armed())
	require.Equal(t, []string{journal.KindAlarmFired, journal.KindAlarmSnoozed}, f.journal.kinds())
}

func TestAlarmWithoutNotifyOnlyRecords(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC))
	f.deps.AlarmNotify = false
	v := NewAlarmView(f.deps, 1)
	m := &f.model
	v.Init(m)
	require.NoError(t, v.Alarm().SetTarget(alarm.Target{Hour: 7}))
	require.NoError(t, v.Alarm().Arm())

	drain(v.Update(m, core.TickMsg{Gen: 1, Kind: alarmTick}))
	require.Equal(t, []string{journal.KindAlarmFired}, f.journal.kinds())
	require.Empty(t, f.alert.titles)
}

func TestStopwatchMeasuresElapsedAndLaps(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	v := NewStopwatchView(f.deps, 3)
	m := &f.model

	msgs := drain(v.Update(m, key(" ")))
	require.Equal(t, []tea.Msg{scheduled{gen: 3, kind: stopwatchTick, d: 10 * time.Millisecond}}, msgs)
	require.True(t, v.Stopwatch().Running())

	f.clock.Advance(1500 * time.Millisecond)
	msgs = drain(v.Update(m, core.TickMsg{Gen: 3, Kind: stopwatchTick}))
	require.Len(t, msgs, 1)
	require.Equal(t, 1500*time.Millisecond, v.Stopwatch().Elapsed())

	f.clock.Advance(500 * time.Millisecond)
	v.Update(m, key("l"))
	require.Equal(t, []time.Duration{2 * time.Second}, v.Stopwatch().Laps())

	f.clock.Advance(250 * time.Millisecond)
	require.Nil(t, v.Update(m, key(" ")))
	require.False(t, v.Stopwatch().Running())
	require.Equal(t, 2250*time.Millisecond, v.Stopwatch().Elapsed())

	// A tick that was already in flight when paused is ignored.
	f.clock.Advance(time.Second)
	require.Nil(t, v.Update(m, core.TickMsg{Gen: 3, Kind: stopwatchTick}))
	require.Equal(t, 2250*time.Millisecond, v.Stopwatch().Elapsed())

	out := v.Build(m).Render(80, 20)
	require.Contains(t, out, "Laps (1)")

	drain(v.Update(m, key("r")))
	require.Zero(t, v.Stopwatch().Elapsed())
	require.Empty(t, v.Stopwatch().Laps())
	require.Equal(t, []string{journal.KindStopwatchReset}, f.journal.kinds())
	require.Equal(t, "00:02.25, 1 laps", f.journal.events[0].Detail)
}

func TestStopwatchLapWhilePausedReportsError(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	v := NewStopwatchView(f.deps, 1)
	m := &f.model

	msgs := drain(v.Update(m, key("l")))
	require.Len(t, msgs, 1)
	status, ok := msgs[0].(core.StatusMsg)
	require.True(t, ok)
	require.Contains(t, status.Text, "not running")

	require.Nil(t, v.Update(m, key("r")))
	require.Empty(t, f.journal.kinds())
}

func TestTimerCountsDownAndFinishes(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	f.deps.TimerDuration = 2 * time.Minute
	v := NewTimerView(f.deps, 2)
	m := &f.model

	drain(v.Update(m, key("+")))
	require.Equal(t, 3*time.Minute, v.Timer().Configured())
	drain(v.Update(m, key("-")))
	drain(v.Update(m, key("-")))
	require.Equal(t, time.Minute, v.Timer().Configured())

	msgs := drain(v.Update(m, key(" ")))
	kind := v.tickKind()
	require.Equal(t, []tea.Msg{scheduled{gen: 2, kind: kind, d: time.Second}}, msgs)

	msgs = drain(v.Update(m, key("+")))
	require.Equal(t, []tea.Msg{core.StatusMsg{Text: "Pause the timer to change its duration"}}, msgs)
	require.Equal(t, time.Minute, v.Timer().Configured())
	require.Equal(t, kind, v.tickKind())

	for range 59 {
		msgs = drain(v.Update(m, core.TickMsg{Gen: 2, Kind: kind}))
		require.Len(t, msgs, 1)
	}
	require.Equal(t, time.Second, v.Timer().Remaining())

	msgs = drain(v.Update(m, core.TickMsg{Gen: 2, Kind: kind}))
	require.Empty(t, msgs)
	require.Nil(t, v.Update(m, core.TickMsg{Gen: 2, Kind: kind}))
	require.True(t, v.Timer().Finished())
	require.Equal(t, []string{journal.KindTimerFinished}, f.journal.kinds())
	require.Equal(t, []string{"Timer"}, f.alert.titles)
	require.Contains(t, v.Build(m).Render(60, 24), "Time's up!")

	v.Update(m, key("r"))
	require.False(t, v.Timer().Finished())
	require.Equal(t, time.Minute, v.Timer().Remaining())
}

func TestTimerPauseDropsTickInFlight(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	f.deps.TimerDuration = 5 * time.Minute
	v := NewTimerView(f.deps, 2)
	m := &f.model

	msgs := drain(v.Update(m, key(" ")))
	require.Len(t, msgs, 1)
	first := msgs[0].(scheduled)

	require.Nil(t, v.Update(m, key(" ")))
	require.False(t, v.Timer().Running())

	msgs = drain(v.Update(m, key(" ")))
	require.Len(t, msgs, 1, "resuming must schedule a fresh tick")
	resumed := msgs[0].(scheduled)
	require.NotEqual(t, first.kind, resumed.kind)

	require.Nil(t, v.Update(m, core.TickMsg{Gen: 2, Kind: first.kind}))
	require.Equal(t, 5*time.Minute, v.Timer().Remaining())

	msgs = drain(v.Update(m, core.TickMsg{Gen: 2, Kind: resumed.kind}))
	require.Equal(t, []tea.Msg{scheduled{gen: 2, kind: resumed.kind, d: time.Second}}, msgs)
	require.Equal(t, 5*time.Minute-time.Second, v.Timer().Remaining())
}

func TestTimerResetAndAdjustDropTicks(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	f.deps.TimerDuration = 2 * time.Minute
	v := NewTimerView(f.deps, 2)
	m := &f.model

	msgs := drain(v.Update(m, key(" ")))
	running := msgs[0].(scheduled)
	v.Update(m, key("r"))
	require.False(t, v.Timer().Running())
	require.Nil(t, v.Update(m, core.TickMsg{Gen: 2, Kind: running.kind}))
	require.Equal(t, 2*time.Minute, v.Timer().Remaining())

	msgs = drain(v.Update(m, key(" ")))
	running = msgs[0].(scheduled)
	v.Update(m, key(" "))
	drain(v.Update(m, key("+")))
	require.Nil(t, v.Update(m, core.TickMsg{Gen: 2, Kind: running.kind}))
	require.Equal(t, 3*time.Minute, v.Timer().Configured())
	require.Equal(t, 3*time.Minute, v.Timer().Remaining())
}

func TestWeatherLoadsFallbackCity(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	p := &fakeProvider{fn: func(src weather.Source) (weather.Snapshot, error) {
		return weather.Snapshot{
			Location:     src.City + ", IN",
			TemperatureC: 31,
			Condition:    "Haze",
			HumidityPct:  48,
			WindSpeed:    3,
			IconID:       "50d",
			FetchedAt:    f.clock.Now(),
		}, nil
	}}
	f.deps.Weather = p
	f.deps.FallbackCity = "Delhi"
	v := NewWeatherView(f.deps, 4)
	m := &f.model

	cmd := v.Init(m)
	require.True(t, v.Loading())
	var result tea.Msg
	for _, msg := range drain(cmd) {
		if r, ok := msg.(weatherResultMsg); ok {
			result = r
		}
	}
	require.NotNil(t, result)
	require.Equal(t, uint64(4), result.(core.Generational).Generation())

	drain(v.Update(m, result))
	require.False(t, v.Loading())
	require.NotNil(t, v.Snapshot())
	require.Equal(t, "Delhi, IN", v.Snapshot().Location)
	require.Equal(t, []weather.Source{weather.City("Delhi")}, p.calls)
	require.Equal(t, []string{"Delhi"}, f.journal.touched)

	out := v.Build(m).Render(70, 24)
	require.Contains(t, out, "Delhi, IN")
	require.Contains(t, out, "Haze")
	require.Contains(t, out, "48%")
	require.Contains(t, out, "3 m/s")
}

func TestWeatherNotFoundSuggestsKnownCity(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	f.journal.known = []string{"London", "Delhi"}
	p := &fakeProvider{fn: func(src weather.Source) (weather.Snapshot, error) {
		if src.City == "Londn" {
			return weather.Snapshot{}, &weather.APIError{StatusCode: 404, Status: "404 Not Found", Body: "city not found"}
		}
		return weather.Snapshot{Location: src.City + ", GB", Condition: "Rain"}, nil
	}}
	f.deps.Weather = p
	v := NewWeatherView(f.deps, 1)
	m := &f.model

	v.Update(m, key("/"))
	require.True(t, v.CapturingInput())
	v.Update(m, key("Londn"))
	cmd := v.Update(m, key("enter"))
	require.False(t, v.CapturingInput())

	for _, msg := range drain(cmd) {
		if _, ok := msg.(weatherResultMsg); ok {
			drain(v.Update(m, msg))
		}
	}
	require.Nil(t, v.Snapshot())
	require.Equal(t, "failed to fetch weather: 404 Not Found - city not found", v.Err())
	require.Equal(t, []string{journal.KindWeatherFailed}, f.journal.kinds())
	out := v.Build(m).Render(80, 20)
	require.Contains(t, out, "Did you mean")
	require.Contains(t, out, "London")

	for _, msg := range drain(v.Update(m, key("y"))) {
		if _, ok := msg.(weatherResultMsg); ok {
			drain(v.Update(m, msg))
		}
	}
	require.Empty(t, v.Err())
	require.Equal(t, "London, GB", v.Snapshot().Location)
}

func TestWeatherDropsStaleResponse(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	f.deps.Weather = &fakeProvider{fn: func(src weather.Source) (weather.Snapshot, error) {
		return weather.Snapshot{Location: src.City}, nil
	}}
	v := NewWeatherView(f.deps, 1)
	m := &f.model

	first := v.fetch("Paris")
	second := v.fetch("Tokyo")

	var msgs []tea.Msg
	msgs = append(msgs, drain(second)...)
	msgs = append(msgs, drain(first)...)
	for _, msg := range msgs {
		if _, ok := msg.(weatherResultMsg); ok {
			drain(v.Update(m, msg))
		}
	}
	require.Equal(t, "Tokyo", v.Snapshot().Location)
}

func TestWeatherProviderErrorClearsSnapshot(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	fail := false
	f.deps.Weather = &fakeProvider{fn: func(src weather.Source) (weather.Snapshot, error) {
		if fail {
			return weather.Snapshot{}, errors.New("dial tcp: connection refused")
		}
		return weather.Snapshot{Location: src.City}, nil
	}}
	v := NewWeatherView(f.deps, 1)
	m := &f.model

	run := func(cmd tea.Cmd) {
		for _, msg := range drain(cmd) {
			if _, ok := msg.(weatherResultMsg); ok {
				drain(v.Update(m, msg))
			}
		}
	}
	run(v.fetch("Oslo"))
	require.NotNil(t, v.Snapshot())

	fail = true
	run(v.Update(m, key("r")))
	require.Nil(t, v.Snapshot())
	require.True(t, strings.Contains(v.Err(), "connection refused"))
}

func TestWeatherWithoutLocation(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	f.deps.Weather = &fakeProvider{fn: func(weather.Source) (weather.Snapshot, error) {
		t.Fatal("provider must not be called without a location")
		return weather.Snapshot{}, nil
	}}
	v := NewWeatherView(f.deps, 1)
	m := &f.model

	for _, msg := range drain(v.Init(m)) {
		if _, ok := msg.(weatherResultMsg); ok {
			drain(v.Update(m, msg))
		}
	}
	require.Equal(t, "No location provided", v.Err())
}
