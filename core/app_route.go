package core

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/flipclock/internal/orientation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.observe()
	case PermissionMsg:
		m.granted = msg.Permission == orientation.PermissionGranted
		if !m.granted {
			m.logger.Debug("tilt sensor unavailable, using terminal geometry")
			return m, nil
		}
		m.logger.Info("tilt sensor granted")
		return m, m.readSensor()
	case sensorPollMsg:
		return m, m.readSensor()
	case SensorMsg:
		if msg.Err != nil {
			if m.tilt != nil {
				m.logger.Debug("tilt read failed", "err", msg.Err)
			}
			m.tilt = nil
		} else {
			tilt := msg.Tilt
			m.tilt = &tilt
		}
		return m, tea.Batch(m.observe(), m.schedulePoll())
	case transitionDoneMsg:
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.screens.Pop()
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case NavigateMsg:
		if msg.Pin && m.mode == ModeAuto {
			m.pinned = true
		}
		return m, m.Navigate(msg.Path)
	case ToggleModeMsg:
		return m, m.toggleMode()
	case QuitMsg:
		return m, m.quit()
	case spinner.TickMsg:
		// Spinners animate behind overlays too.
		if m.view == nil {
			return m, nil
		}
		return m, m.view.Update(&m, msg)
	case Generational:
		if msg.Generation() != m.gen || m.view == nil {
			return m, nil
		}
		return m, m.view.Update(&m, msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		if top := m.screens.Top(); top != nil {
			return m, m.updateScreen(top, msg)
		}

		if c, ok := m.view.(InputCapturer); ok && c.CapturingInput() {
			return m, m.view.Update(&m, msg)
		}

		scope := m.ActiveScope()
		if m.keys.IsAction(msg, "quit", scope) {
			return m, m.quit()
		}
		for _, v := range orientation.AllViews {
			if m.keys.IsAction(msg, fmt.Sprintf("switch-view-%d", int(v)+1), scope) {
				if m.mode == ModeAuto {
					m.pinned = true
				}
				return m, m.Navigate(v.Route())
			}
		}
		if m.keys.IsAction(msg, "toggle-orientation", scope) {
			return m, m.toggleMode()
		}
		if m.keys.IsAction(msg, "open-route-picker", scope) && m.OpenRoutePicker != nil {
			m.screens.Push(m.OpenRoutePicker(&m))
			return m, nil
		}
		if m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil {
			m.screens.Push(m.OpenCommandModal(&m, scope))
			return m, nil
		}
		if m.keys.IsAction(msg, "open-history", scope) && m.OpenHistory != nil {
			m.screens.Push(m.OpenHistory(&m))
			return m, nil
		}
		if m.view != nil {
			return m, m.view.Update(&m, msg)
		}
		return m, nil
	}

	if top := m.screens.Top(); top != nil {
		return m, m.updateScreen(top, msg)
	}
	if m.view != nil {
		return m, m.view.Update(&m, msg)
	}
	return m, nil
}

func (m *Model) updateScreen(top Screen, msg tea.Msg) tea.Cmd {
	next, cmd, pop := top.Update(msg)
	if pop {
		m.screens.Pop()
		return cmd
	}
	if next != nil {
		m.screens.Replace(next)
	}
	return cmd
}

// quit tears down the mounted view before the program exits.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.unmount()
	return tea.Quit
}

func (m *Model) toggleMode() tea.Cmd {
	if m.mode == ModeAuto {
		m.mode = ModeManual
		m.SetStatus("Orientation: manual")
		return nil
	}
	m.mode = ModeAuto
	m.pinned = false
	m.SetStatus("Orientation: auto")
	if m.missing != "" {
		return nil
	}
	_, state := m.detector.Current()
	if m.view != nil && m.state == state {
		return nil
	}
	return m.mount(state)
}

// ErrNotFound is reported for unknown routes.
var ErrNotFound = errors.New("no such view")
