package tabs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/internal/weather"
	"github.com/jask/flipclock/widgets"
)

// weatherResultMsg carries one lookup back to the view that issued it.
type weatherResultMsg struct {
	gen        uint64
	seq        uint64
	snapshot   weather.Snapshot
	err        error
	suggestion string
}

func (m weatherResultMsg) Generation() uint64 { return m.gen }

// WeatherView looks up current conditions for a city, the detected
// location or the fallback city.
type WeatherView struct {
	deps      Deps
	gen       uint64
	input     textinput.Model
	searching bool
	spin      spinner.Model
	loading   bool
	seq       uint64
	cancel    context.CancelFunc
	query     string
	snapshot  *weather.Snapshot
	err       string
	suggest   string
}

func NewWeatherView(d Deps, gen uint64) *WeatherView {
	in := textinput.New()
	in.Placeholder = "Enter city"
	in.Prompt = "city> "
	in.CharLimit = 64
	in.Width = 24
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return &WeatherView{deps: d, gen: gen, input: in, spin: sp}
}

func (v *WeatherView) State() orientation.ViewState { return orientation.ViewWeather }

func (v *WeatherView) Scope() string {
	if v.searching {
		return "input:weather"
	}
	return core.ScopeWeather
}

func (v *WeatherView) CapturingInput() bool { return v.searching }

// Snapshot is the last successful lookup, nil after an error.
func (v *WeatherView) Snapshot() *weather.Snapshot { return v.snapshot }

// Err is the message shown in the error panel.
func (v *WeatherView) Err() string { return v.err }

func (v *WeatherView) Loading() bool { return v.loading }

func (v *WeatherView) Init(*core.Model) tea.Cmd {
	return v.fetch("")
}

// Unmount cancels an in-flight request.
func (v *WeatherView) Unmount() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *WeatherView) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case weatherResultMsg:
		return v.result(msg)
	case spinner.TickMsg:
		if !v.loading {
			return nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		action, _ := m.Keys().ActionFor(msg, v.Scope())
		if v.searching {
			switch action {
			case "input-cancel":
				v.searching = false
				v.input.Blur()
				return nil
			case "weather-submit":
				q := strings.TrimSpace(v.input.Value())
				v.searching = false
				v.input.Blur()
				v.input.SetValue("")
				if q == "" {
					return nil
				}
				return v.fetch(q)
			}
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return cmd
		}
		switch action {
		case "weather-search":
			v.searching = true
			return v.input.Focus()
		case "weather-refresh":
			return v.fetch(v.query)
		case "weather-accept":
			if v.suggest == "" {
				return nil
			}
			return v.fetch(v.suggest)
		}
	}
	return nil
}

// fetch starts a lookup and supersedes any request still in flight.
func (v *WeatherView) fetch(query string) tea.Cmd {
	v.Unmount()
	v.seq++
	v.query = query
	v.loading = true
	v.suggest = ""

	ctx, cancel := context.WithTimeout(context.Background(), v.deps.WeatherTimeout)
	v.cancel = cancel
	gen, seq, d := v.gen, v.seq, v.deps

	lookup := func() tea.Msg {
		res := weatherResultMsg{gen: gen, seq: seq}
		if d.Weather == nil {
			res.err = errors.New("weather provider not configured")
			return res
		}
		src := weather.Resolve(ctx, query, d.Locator, d.FallbackCity, d.Logger)
		if src.Kind == weather.SourceNone {
			res.err = weather.ErrNoLocation
			return res
		}
		d.Logger.Debug("weather lookup", "source", src.String(), "seq", seq)
		res.snapshot, res.err = d.Weather.Current(ctx, src)
		var apiErr *weather.APIError
		if errors.As(res.err, &apiErr) && apiErr.NotFound() && src.Kind == weather.SourceCity {
			known, err := d.Journal.CityNames(ctx, 200)
			if err != nil {
				d.Logger.Warn("load known cities", "err", err)
			}
			if s, ok := weather.Suggest(src.City, known); ok {
				res.suggestion = s
			}
		}
		return res
	}
	return tea.Batch(lookup, v.spin.Tick)
}

func (v *WeatherView) result(msg weatherResultMsg) tea.Cmd {
	if msg.seq != v.seq {
		v.deps.Logger.Debug("dropping stale weather response", "seq", msg.seq, "latest", v.seq)
		return nil
	}
	v.loading = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if msg.err != nil {
		v.snapshot = nil
		v.err = weather.Message(msg.err)
		v.suggest = msg.suggestion
		v.deps.Logger.Info("weather lookup failed", "query", v.query, "err", msg.err)
		return v.deps.record(journal.KindWeatherFailed, orientation.ViewWeather, v.err)
	}
	snap := msg.snapshot
	v.snapshot = &snap
	v.err = ""
	name, _, _ := strings.Cut(snap.Location, ",")
	d := v.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.Journal.TouchCity(ctx, name); err != nil {
			d.Logger.Warn("journal city update failed", "city", name, "err", err)
		}
		return nil
	}
}

func (v *WeatherView) Build(m *core.Model) widgets.Widget {
	s := m.Styles()
	return widgets.Func(func(width, height int) string {
		var lines []string
		if v.searching {
			lines = append(lines, v.input.View(), "")
		}
		switch {
		case v.loading:
			lines = append(lines, v.spin.View()+" Loading weather…")
		case v.err != "":
			lines = append(lines, s.Error.Render(v.err))
			if v.suggest != "" {
				lines = append(lines, "", fmt.Sprintf("Did you mean %s? press y", s.Accent.Render(v.suggest)))
			}
		case v.snapshot != nil:
			lines = append(lines, v.renderSnapshot(m, *v.snapshot)...)
		default:
			lines = append(lines, s.Muted.Render("No weather yet"))
		}
		if !v.searching {
			lines = append(lines, "", s.Muted.Render("/ search · r refresh"))
		}
		return pane(m, "Weather", strings.Join(lines, "\n"), v.err != "").Render(width, height)
	})
}

func (v *WeatherView) renderSnapshot(m *core.Model, snap weather.Snapshot) []string {
	s := m.Styles()
	temp := widgets.BigText(fmt.Sprintf("%d", snap.TemperatureC))
	head := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Accent.Render(weather.Glyph(snap.IconID, snap.Condition))+"  ",
		s.Accent.Render(temp),
		"  °C",
	)

	tbl := table.New(
		table.WithColumns([]table.Column{{Title: "", Width: 10}, {Title: "", Width: 16}}),
		table.WithRows([]table.Row{
			{"Condition", snap.Condition},
			{"Humidity", fmt.Sprintf("%d%%", snap.HumidityPct)},
			{"Wind", fmt.Sprintf("%d m/s", snap.WindSpeed)},
			{"Updated", snap.FetchedAt.In(v.deps.Location).Format("15:04")},
		}),
		table.WithHeight(5),
	)
	st := table.DefaultStyles()
	st.Header = lipgloss.NewStyle()
	st.Selected = lipgloss.NewStyle()
	st.Cell = lipgloss.NewStyle().Padding(0, 1)
	tbl.SetStyles(st)

	return []string{
		s.Accent.Render(snap.Location),
		"",
		head,
		"",
		tbl.View(),
	}
}
