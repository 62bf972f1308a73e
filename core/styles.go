package core

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/flipclock/internal/theme"
)

// Styles is the lipgloss rendering of a theme. It is rebuilt whenever a
// different view is mounted.
type Styles struct {
	Theme theme.Theme

	App        lipgloss.Style
	HeaderBar  lipgloss.Style
	HeaderApp  lipgloss.Style
	TabOn      lipgloss.Style
	TabOff     lipgloss.Style
	TabSep     lipgloss.Style
	StatusBar  lipgloss.Style
	StatusErr  lipgloss.Style
	Footer     lipgloss.Style
	Key        lipgloss.Style
	HelpDesc   lipgloss.Style
	Accent     lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Faded      lipgloss.Style
	BarBg      lipgloss.Color
	BorderLine lipgloss.Color
}

func NewStyles(th theme.Theme) Styles {
	bg := lipgloss.Color(th.Background)
	fg := lipgloss.Color(th.Foreground)
	accent := lipgloss.Color(th.Accent)
	muted := lipgloss.Color(th.Muted)
	border := lipgloss.Color(th.Border)
	return Styles{
		Theme:      th,
		App:        lipgloss.NewStyle().Foreground(fg),
		HeaderBar:  lipgloss.NewStyle().Background(bg).Foreground(fg),
		HeaderApp:  lipgloss.NewStyle().Background(bg).Foreground(accent).Bold(true),
		TabOn:      lipgloss.NewStyle().Background(border).Foreground(accent).Bold(true).Padding(0, 1),
		TabOff:     lipgloss.NewStyle().Background(bg).Foreground(muted).Padding(0, 1),
		TabSep:     lipgloss.NewStyle().Background(bg).Foreground(border),
		StatusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color(th.Success)),
		StatusErr:  lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)),
		Footer:     lipgloss.NewStyle().Background(bg),
		Key:        lipgloss.NewStyle().Foreground(accent).Bold(true).Background(bg),
		HelpDesc:   lipgloss.NewStyle().Foreground(muted).Background(bg),
		Accent:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color(th.Success)),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(th.Error)).Bold(true),
		Faded:      lipgloss.NewStyle().Foreground(muted).Faint(true),
		BarBg:      bg,
		BorderLine: border,
	}
}
