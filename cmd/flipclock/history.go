package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/flipclock/internal/journal"
)

type historySource interface {
	Recent(ctx context.Context, limit int) ([]journal.Event, error)
}

// printHistory writes the latest events as a bordered table, newest first.
func printHistory(ctx context.Context, w io.Writer, src historySource, limit int, loc *time.Location) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	events, err := src.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events recorded.")
		return err
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.OccurredAt.In(loc).Format("2006-01-02 15:04:05"), e.Kind, e.View, e.Detail})
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WHEN", "EVENT", "VIEW", "DETAIL").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
