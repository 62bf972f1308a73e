// Package notify delivers best-effort system notifications and alarm
// sounds. Every call is fire-and-forget: failures are reported to the
// caller for logging and never retried.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
)

var ErrUnsupported = errors.New("no notification backend available")

// Notifier shows a system notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Player plays the alarm sound.
type Player interface {
	Play(ctx context.Context) error
}

// Runner starts an external command. It exists so tests can observe
// invocations without spawning processes.
type Runner func(ctx context.Context, name string, args ...string) error

// LookPath reports whether a binary is available.
type LookPath func(name string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Desktop uses notify-send on Linux and osascript on macOS.
type Desktop struct {
	GOOS     string
	Run      Runner
	LookPath LookPath
}

func NewDesktop() *Desktop {
	return &Desktop{GOOS: runtime.GOOS, Run: execRunner, LookPath: exec.LookPath}
}

func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	switch d.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		return d.Run(ctx, "osascript", "-e", script)
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := d.LookPath("notify-send"); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return d.Run(ctx, "notify-send", "--app-name=flipclock", title, body)
	}
	return ErrUnsupported
}

// Sound plays a sound file with the first available player, falling back
// to the terminal bell.
type Sound struct {
	File     string
	GOOS     string
	Run      Runner
	LookPath LookPath
	Bell     io.Writer

	mu sync.Mutex
}

func NewSound(file string, bell io.Writer) *Sound {
	return &Sound{File: file, GOOS: runtime.GOOS, Run: execRunner, LookPath: exec.LookPath, Bell: bell}
}

func (s *Sound) Play(ctx context.Context) error {
	if s.File != "" {
		for _, player := range s.players() {
			if _, err := s.LookPath(player); err != nil {
				continue
			}
			return s.Run(ctx, player, s.File)
		}
	}
	return s.ring()
}

func (s *Sound) players() []string {
	if s.GOOS == "darwin" {
		return []string{"afplay"}
	}
	return []string{"paplay", "pw-play", "aplay"}
}

func (s *Sound) ring() error {
	if s.Bell == nil {
		return ErrUnsupported
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.Bell, "\a")
	return err
}

// Silent discards notifications, used when notifications are disabled.
type Silent struct{}

func (Silent) Notify(context.Context, string, string) error { return nil }
func (Silent) Play(context.Context) error                  { return nil }

// Alert runs the sound and the notification, returning both errors joined.
// Neither failure prevents the other attempt.
func Alert(ctx context.Context, n Notifier, p Player, title, body string) error {
	var errs []error
	if p != nil {
		if err := p.Play(ctx); err != nil {
			errs = append(errs, fmt.Errorf("play sound: %w", err))
		}
	}
	if n != nil {
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}
	}
	return errors.Join(errs...)
}
