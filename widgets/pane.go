package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane draws rounded chrome with the title set into the top border.
// Content is centred horizontally when Center is set.
type Pane struct {
	Title   string
	Content string
	Center  bool
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Alert   bool
}

func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	width = max(width, 4)
	height = max(height, 3)

	border := p.Border
	if border == "" {
		border = lipgloss.Color("#585b70")
	}
	if p.Alert && p.Accent != "" {
		border = p.Accent
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	contentStyle := lipgloss.NewStyle().Foreground(p.Text)

	innerWidth := width - 2
	contentWidth := max(1, innerWidth-2)

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		titleText = " " + t + " "
		if ansi.StringWidth(titleText) > innerWidth {
			titleText = " " + ansi.Truncate(t, max(1, innerWidth-2), "") + " "
		}
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText))
	leftDash := min(1, dashes)
	if titleText == "" {
		leftDash = 0
	}

	top := borderStyle.Render("╭"+strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", dashes-leftDash)+"╮")

	innerHeight := height - 2
	lines := splitLines(p.Content)
	pad := max(0, (innerHeight-len(lines))/2)
	if !p.Center {
		pad = 0
	}
	side := borderStyle.Render("│")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < innerHeight; i++ {
		line := ""
		if j := i - pad; j >= 0 && j < len(lines) {
			line = ansi.Truncate(lines[j], contentWidth, "")
		}
		if p.Center {
			line = centerLine(line, contentWidth)
		}
		rows = append(rows, side+" "+padRight(contentStyle.Render(line), contentWidth)+" "+side)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

func centerLine(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
