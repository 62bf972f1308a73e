package core

import (
	"cmp"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/internal/orientation"
)

// Command is a palette entry.
type Command struct {
	ID          string
	Name        string
	Description string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Disabled  bool
	Reason    string
}

type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	r.commands[c.ID] = c
}

func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]CommandResult, 0, len(r.commands))
	for _, c := range r.commands {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		h := strings.ToLower(c.Name + " " + c.Description + " " + c.ID)
		if q != "" && !strings.Contains(h, q) {
			continue
		}
		disabled := false
		reason := ""
		if c.Disabled != nil {
			disabled, reason = c.Disabled(m)
		}
		results = append(results, CommandResult{
			CommandID: c.ID,
			Name:      c.Name,
			Desc:      c.Description,
			Disabled:  disabled,
			Reason:    reason,
		})
	}
	slices.SortFunc(results, func(a, b CommandResult) int {
		if a.Disabled != b.Disabled {
			if !a.Disabled {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return results
}

// DefaultCommands are the palette entries available from every view.
func DefaultCommands() []Command {
	cmds := make([]Command, 0, len(orientation.AllViews)+3)
	for _, v := range orientation.AllViews {
		route := v.Route()
		cmds = append(cmds, Command{
			ID:          "go:" + v.String(),
			Name:        "Go to " + v.Title(),
			Description: route,
			Scopes:      []string{"view:*"},
			Execute:     func(*Model) tea.Cmd { return NavigateCmd(route) },
			Disabled: func(m *Model) (bool, string) {
				if state, ok := m.State(); ok && state == v {
					return true, "already open"
				}
				return false, ""
			},
		})
	}
	cmds = append(cmds,
		Command{
			ID:          "orientation:toggle",
			Name:        "Toggle orientation mode",
			Description: "switch between auto and manual",
			Scopes:      []string{"view:*"},
			Execute:     func(*Model) tea.Cmd { return func() tea.Msg { return ToggleModeMsg{} } },
		},
		Command{
			ID:          "history:open",
			Name:        "Show history",
			Description: "recent alarms, timers and sessions",
			Scopes:      []string{"view:*"},
			Execute: func(m *Model) tea.Cmd {
				if m.OpenHistory == nil {
					return nil
				}
				screen := m.OpenHistory(m)
				return func() tea.Msg { return PushScreenMsg{Screen: screen} }
			},
			Disabled: func(m *Model) (bool, string) {
				if m.OpenHistory == nil {
					return true, "journal disabled"
				}
				return false, ""
			},
		},
		Command{
			ID:          "app:quit",
			Name:        "Quit",
			Description: "exit flipclock",
			Scopes:      []string{"*"},
			Execute: func(*Model) tea.Cmd {
				return func() tea.Msg { return QuitMsg{} }
			},
		},
	)
	return cmds
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.commands[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Disabled != nil {
		disabled, reason := c.Disabled(m)
		if disabled {
			if reason == "" {
				reason = "command is disabled"
			}
			return StatusCmd(reason)
		}
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
