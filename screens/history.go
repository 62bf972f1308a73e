package screens

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/journal"
)

// HistorySource is the read side of the journal.
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]journal.Event, error)
}

var eventLabels = map[string]string{
	journal.KindAlarmFired:     "alarm fired",
	journal.KindAlarmSnoozed:   "alarm snoozed",
	journal.KindTimerFinished:  "timer finished",
	journal.KindStopwatchReset: "stopwatch reset",
	journal.KindWeatherFailed:  "weather failed",
}

// HistoryScreen lists recent journal events, newest first.
type HistoryScreen struct {
	keys  *core.KeyRegistry
	loc   *time.Location
	table table.Model
	count int
	err   error
}

func NewHistoryScreen(keys *core.KeyRegistry, src HistorySource, loc *time.Location, limit int) *HistoryScreen {
	if loc == nil {
		loc = time.Local
	}
	s := &HistoryScreen{keys: keys, loc: loc}
	s.table = table.New(
		table.WithColumns(historyColumns(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	events, err := src.Recent(ctx, limit)
	if err != nil {
		s.err = err
		return s
	}
	s.count = len(events)
	rows := make([]table.Row, 0, len(events))
	for _, e := range events {
		label, ok := eventLabels[e.Kind]
		if !ok {
			label = e.Kind
		}
		rows = append(rows, table.Row{e.OccurredAt.In(loc).Format("Jan 02 15:04"), label, e.Detail})
	}
	s.table.SetRows(rows)
	return s
}

func historyColumns(width int) []table.Column {
	when, event := 13, 16
	detail := max(10, width-when-event-6)
	return []table.Column{
		{Title: "When", Width: when},
		{Title: "Event", Width: event},
		{Title: "Detail", Width: detail},
	}
}

func (s *HistoryScreen) Title() string { return "History" }
func (s *HistoryScreen) Scope() string { return "screen:history" }

// Len is the number of events loaded.
func (s *HistoryScreen) Len() int { return s.count }

func (s *HistoryScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if s.keys.IsAction(km, "close", s.Scope()) {
			return s, nil, true
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd, false
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return "Could not read the journal: " + s.err.Error()
	case s.count == 0:
		return "Nothing recorded yet."
	}
	s.table.SetColumns(historyColumns(width))
	s.table.SetWidth(width)
	s.table.SetHeight(max(4, height-1))
	return s.table.View()
}
