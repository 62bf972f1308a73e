package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event kinds.
const (
	KindAlarmFired     = "alarm.fired"
	KindAlarmSnoozed   = "alarm.snoozed"
	KindTimerFinished  = "timer.finished"
	KindStopwatchReset = "stopwatch.reset"
	KindWeatherFailed  = "weather.failed"
)

// Event is one journal row.
type Event struct {
	ID         string
	Kind       string
	View       string
	Detail     string
	OccurredAt time.Time
}

// City is a location that returned weather at least once.
type City struct {
	Name     string
	Hits     int
	LastUsed time.Time
}

// Recorder is what widgets write to. Store implements it; Discard is used
// when the journal is disabled.
type Recorder interface {
	Record(ctx context.Context, e Event) error
	TouchCity(ctx context.Context, name string) error
	CityNames(ctx context.Context, limit int) ([]string, error)
}

// Discard drops everything.
type Discard struct{}

func (Discard) Record(context.Context, Event) error              { return nil }
func (Discard) TouchCity(context.Context, string) error          { return nil }
func (Discard) CityNames(context.Context, int) ([]string, error) { return nil, nil }

// Store is the sqlite-backed journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store { return &Store{db: db, now: Now} }

var _ Recorder = (*Store)(nil)

func (s *Store) Close() error { return s.db.Close() }

// Record appends e, filling in ID and OccurredAt when missing.
func (s *Store) Record(ctx context.Context, e Event) error {
	if strings.TrimSpace(e.Kind) == "" {
		return fmt.Errorf("record event: empty kind")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO events(id, kind, view, detail, occurred_at)
	VALUES(?, ?, ?, ?, ?)
	`, e.ID, e.Kind, e.View, e.Detail, e.OccurredAt.UTC())
	if err != nil {
		return fmt.Errorf("record event %s: %w", e.Kind, err)
	}
	return nil
}

// Recent lists the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, kind, view, detail, occurred_at
	FROM events ORDER BY occurred_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.View, &e.Detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// TouchCity bumps the hit count of a city that returned weather.
func (s *Store) TouchCity(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO cities(name, hits, last_used) VALUES(?, 1, ?)
	ON CONFLICT(name) DO UPDATE SET hits = hits + 1, last_used = excluded.last_used
	`, name, s.now().UTC())
	if err != nil {
		return fmt.Errorf("touch city %q: %w", name, err)
	}
	return nil
}

// Cities lists known cities, most used first.
func (s *Store) Cities(ctx context.Context, limit int) ([]City, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT name, hits, last_used FROM cities
	ORDER BY hits DESC, last_used DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()
	var out []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.Name, &c.Hits, &c.LastUsed); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CityNames is Cities reduced to names.
func (s *Store) CityNames(ctx context.Context, limit int) ([]string, error) {
	cities, err := s.Cities(ctx, limit)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	return names, nil
}
