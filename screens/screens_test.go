package screens

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/journal"
)

func typeText(t *testing.T, s core.Screen, text string) core.Screen {
	t.Helper()
	next, _, pop := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	if pop {
		t.Fatalf("typing %q closed the screen", text)
	}
	return next
}

func press(s core.Screen, k tea.KeyType) (core.Screen, tea.Msg, bool) {
	next, cmd, pop := s.Update(tea.KeyMsg{Type: k})
	if cmd == nil {
		return next, nil, pop
	}
	return next, cmd(), pop
}

func TestRoutePickerNavigatesAndPins(t *testing.T) {
	m := core.NewModel(core.Options{})
	var s core.Screen = NewRoutePicker(&m)
	s = typeText(t, s, "weath")
	if it, ok := s.(*PickerScreen).Selected(); !ok || it.ID != "/weather" {
		t.Fatalf("selected = %+v, %v", it, ok)
	}
	_, msg, pop := press(s, tea.KeyEnter)
	if !pop {
		t.Fatal("enter should close the picker")
	}
	nav, ok := msg.(core.NavigateMsg)
	if !ok || nav.Path != "/weather" || !nav.Pin {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestRoutePickerEscCloses(t *testing.T) {
	m := core.NewModel(core.Options{})
	_, msg, pop := press(NewRoutePicker(&m), tea.KeyEscape)
	if !pop || msg != nil {
		t.Fatalf("esc: pop=%v msg=%#v", pop, msg)
	}
}

func TestRoutePickerNoMatch(t *testing.T) {
	m := core.NewModel(core.Options{})
	var s core.Screen = NewRoutePicker(&m)
	s = typeText(t, s, "zzz")
	if _, ok := s.(*PickerScreen).Selected(); ok {
		t.Fatal("nothing should be selected")
	}
	_, msg, pop := press(s, tea.KeyEnter)
	if !pop || msg != nil {
		t.Fatalf("enter with no match: pop=%v msg=%#v", pop, msg)
	}
}

func TestCommandPaletteExecutes(t *testing.T) {
	m := core.NewModel(core.Options{Commands: core.NewCommandRegistry(core.DefaultCommands())})
	var s core.Screen = NewCommandPalette(&m, core.ScopeAlarm)
	if n := len(s.(*CommandScreen).Options()); n != 7 {
		t.Fatalf("expected 7 commands, got %d", n)
	}
	opts := s.(*CommandScreen).Options()
	if last := opts[len(opts)-1]; last.ID != "history:open" || !last.Disabled {
		t.Fatalf("disabled commands sort last, got %+v", last)
	}

	s = typeText(t, s, "quit")
	_, msg, pop := press(s, tea.KeyEnter)
	if !pop {
		t.Fatal("enter should close the palette")
	}
	if exec, ok := msg.(core.CommandExecuteMsg); !ok || exec.CommandID != "app:quit" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestCommandPaletteDisabledReportsReason(t *testing.T) {
	m := core.NewModel(core.Options{Commands: core.NewCommandRegistry(core.DefaultCommands())})
	var s core.Screen = NewCommandPalette(&m, core.ScopeTimer)
	s = typeText(t, s, "history")
	_, msg, pop := press(s, tea.KeyEnter)
	if !pop {
		t.Fatal("enter should close the palette")
	}
	if st, ok := msg.(core.StatusMsg); !ok || st.Text != "journal disabled" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

type fakeHistory struct {
	events []journal.Event
	err    error
	limit  int
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]journal.Event, error) {
	f.limit = limit
	return f.events, f.err
}

func TestHistoryListsEvents(t *testing.T) {
	at := time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC)
	src := &fakeHistory{events: []journal.Event{
		{Kind: journal.KindTimerFinished, View: "timer", Detail: "05:00", OccurredAt: at.Add(time.Hour)},
		{Kind: journal.KindAlarmFired, View: "alarm", Detail: "07:00", OccurredAt: at},
	}}
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	s := NewHistoryScreen(keys, src, time.UTC, 25)
	if src.limit != 25 || s.Len() != 2 {
		t.Fatalf("limit=%d len=%d", src.limit, s.Len())
	}
	out := s.View(70, 12)
	for _, want := range []string{"timer finished", "alarm fired", "Oct 17 07:00", "05:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history view missing %q:\n%s", want, out)
		}
	}
	if _, _, pop := s.Update(tea.KeyMsg{Type: tea.KeyEscape}); !pop {
		t.Fatal("esc should close history")
	}
}

func TestHistoryShowsReadError(t *testing.T) {
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	s := NewHistoryScreen(keys, &fakeHistory{err: errors.New("database is locked")}, nil, 10)
	if out := s.View(60, 10); !strings.Contains(out, "database is locked") {
		t.Fatalf("expected error in view, got:\n%s", out)
	}
	if out := NewHistoryScreen(keys, &fakeHistory{}, nil, 10).View(60, 10); !strings.Contains(out, "Nothing recorded yet") {
		t.Fatalf("expected empty message, got:\n%s", out)
	}
}
