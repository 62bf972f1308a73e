package core

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func RenderFooter(m Model) string {
	s := m.styles
	bindings := m.keys.BindingsForScope(m.ActiveScope())
	space := lipgloss.NewStyle().Background(s.BarBg).Render(" ")
	sep := lipgloss.NewStyle().Background(s.BarBg).Render("  ")

	parts := make([]string, 0, len(bindings))
	seen := map[string]bool{}
	for _, b := range bindings {
		if len(b.Keys) == 0 || seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, s.Key.Render(h.Key)+space+s.HelpDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = s.HelpDesc.Render("No shortcuts")
	}
	return renderBar(s.Footer, max(1, m.width), line, s.BarBg)
}

func RenderStatusBar(m Model) string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	var flags []string
	flags = append(flags, "orientation:"+m.mode.String())
	if m.pinned {
		flags = append(flags, "pinned")
	}
	if m.granted {
		flags = append(flags, "tilt")
	}
	msg = "[" + strings.Join(flags, " ") + "] " + msg
	if m.statusErr {
		return renderBar(m.styles.StatusErr, max(1, m.width), msg, m.styles.BarBg)
	}
	return renderBar(m.styles.StatusBar, max(1, m.width), msg, m.styles.BarBg)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}
