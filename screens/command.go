package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/core"
)

type CommandOption struct {
	ID       string
	Name     string
	Desc     string
	Disabled bool
	Reason   string
}

func (i CommandOption) Title() string {
	if i.Disabled && i.Reason != "" {
		return fmt.Sprintf("%s (%s)", i.Name, i.Reason)
	}
	return i.Name
}
func (i CommandOption) Description() string { return i.Desc }
func (i CommandOption) FilterValue() string { return i.Name + " " + i.Desc + " " + i.ID }

// CommandScreen is the palette. The listed commands are those registered
// for the scope that was active when it opened.
type CommandScreen struct {
	scope    string
	keys     *core.KeyRegistry
	search   func(query string) []CommandOption
	onSelect func(id string) tea.Msg
	input    textinput.Model
	list     list.Model
}

func NewCommandScreen(scope string, keys *core.KeyRegistry, search func(query string) []CommandOption, onSelect func(id string) tea.Msg) *CommandScreen {
	inp := textinput.New()
	inp.Placeholder = "Search commands"
	inp.Prompt = "cmd> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.KeyMap.Quit.SetEnabled(false)
	s := &CommandScreen{scope: scope, keys: keys, search: search, onSelect: onSelect, input: inp, list: lst}
	s.refresh()
	return s
}

// NewCommandPalette searches m's command registry. The search runs against
// a snapshot of m taken when the palette opens.
func NewCommandPalette(m *core.Model, scope string) *CommandScreen {
	snapshot := *m
	reg := m.CommandRegistry()
	search := func(query string) []CommandOption {
		results := reg.Search(query, scope, &snapshot)
		out := make([]CommandOption, 0, len(results))
		for _, r := range results {
			out = append(out, CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Disabled: r.Disabled, Reason: r.Reason})
		}
		return out
	}
	return NewCommandScreen(scope, m.Keys(), search, func(id string) tea.Msg {
		return core.CommandExecuteMsg{CommandID: id}
	})
}

func (s *CommandScreen) Title() string { return "Commands (" + s.scope + ")" }
func (s *CommandScreen) Scope() string { return "screen:command" }

// Options are the commands currently listed.
func (s *CommandScreen) Options() []CommandOption {
	items := s.list.Items()
	out := make([]CommandOption, 0, len(items))
	for _, it := range items {
		if opt, ok := it.(CommandOption); ok {
			out = append(out, opt)
		}
	}
	return out
}

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		action, _ := s.keys.ActionFor(km, s.Scope())
		switch action {
		case "close":
			return s, nil, true
		case "select":
			if it, ok := s.list.SelectedItem().(CommandOption); ok {
				if it.Disabled {
					return s, core.StatusCmd(it.Reason), true
				}
				if s.onSelect != nil {
					return s, func() tea.Msg { return s.onSelect(it.ID) }, true
				}
			}
			return s, nil, true
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refresh()
	var cmd2 tea.Cmd
	s.list, cmd2 = s.list.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

func (s *CommandScreen) refresh() {
	query := strings.TrimSpace(s.input.Value())
	items := s.search(query)
	ls := make([]list.Item, 0, len(items))
	for _, it := range items {
		ls = append(ls, it)
	}
	_ = s.list.SetItems(ls)
}

func (s *CommandScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-2))
	return s.input.View() + "\n" + s.list.View()
}
