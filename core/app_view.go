package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/widgets"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header := renderHeader(m)
	status := RenderStatusBar(m)
	footer := RenderFooter(m)
	bodyHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))
	bodyWidth := max(1, m.width)

	var body string
	if bodyHeight > 0 {
		body = m.body().Render(bodyWidth, bodyHeight)
		if m.detector.Transitioning(m.clock.Now()) {
			body = m.styles.Faded.Render(ansi.Strip(body))
		}
	}
	if top := m.screens.Top(); top != nil && bodyHeight > 0 {
		accent := lipgloss.Color(m.styles.Theme.Accent)
		popup := widgets.Popup{
			Pane:   widgets.Pane{Title: top.Title(), Border: accent, Accent: accent, Text: lipgloss.Color(m.styles.Theme.Foreground)},
			Width:  max(24, bodyWidth-8),
			Height: max(10, bodyHeight-2),
		}
		cw, ch := popup.Size(bodyWidth, bodyHeight)
		popup.Content = top.View(max(1, cw-4), max(1, ch-2))
		body = popup.Over(body, bodyWidth, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	view := strings.Join([]string{header, body, status, footer}, "\n")
	view = fitHeight(view, max(1, m.height))
	return m.styles.App.Width(max(1, m.width)).MaxWidth(max(1, m.width)).Render(view)
}

func (m Model) body() widgets.Widget {
	if m.missing != "" {
		return notFound(m)
	}
	if m.view == nil {
		return widgets.Text("")
	}
	return m.view.Build(&m)
}

func notFound(m Model) widgets.Widget {
	routes := make([]string, 0, len(orientation.AllViews))
	for _, v := range orientation.AllViews {
		routes = append(routes, v.Route())
	}
	content := strings.Join([]string{
		m.styles.Error.Render("404"),
		"",
		fmt.Sprintf("%s: %s", m.missing, ErrNotFound),
		"",
		m.styles.Muted.Render("Try " + strings.Join(routes, "  ")),
		m.styles.Muted.Render("or press g to pick a view"),
	}, "\n")
	return widgets.Pane{
		Title:   "Not found",
		Content: content,
		Center:  true,
		Border:  m.styles.BorderLine,
		Accent:  lipgloss.Color(m.styles.Theme.Error),
		Text:    lipgloss.Color(m.styles.Theme.Foreground),
	}
}

func renderHeader(m Model) string {
	s := m.styles
	tabs := make([]string, 0, len(orientation.AllViews))
	for _, v := range orientation.AllViews {
		label := fmt.Sprintf("%d:%s", int(v)+1, v.Title())
		if m.view != nil && v == m.state {
			tabs = append(tabs, s.TabOn.Render(label))
		} else {
			tabs = append(tabs, s.TabOff.Render(label))
		}
	}
	left := s.HeaderApp.Render(" flipclock")
	typ, _ := m.detector.Current()
	if typ != orientation.TypeUnknown {
		left += s.HeaderBar.Render("  " + typ.Label())
	}
	right := s.TabSep.Render(" ") + strings.Join(tabs, s.TabSep.Render("│"))
	right = ansi.Truncate(right, max(1, m.width), "")
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < m.width {
		gap = m.width - leftW - rightW
	}
	return renderHeaderBar(s.HeaderBar, max(1, m.width), left+s.HeaderBar.Render(strings.Repeat(" ", gap))+right)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func renderHeaderBar(style lipgloss.Style, width int, line string) string {
	line = ansi.Truncate(strings.ReplaceAll(line, "\n", " "), width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}
