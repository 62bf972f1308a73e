// Package theme holds the per-view colour themes and loads user overrides
// from a TOML file.
package theme

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/jask/flipclock/internal/orientation"
)

// Theme is the palette for one view. Colours are "#rrggbb".
type Theme struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Accent     string `toml:"accent"`
	Muted      string `toml:"muted"`
	Border     string `toml:"border"`
	Success    string `toml:"success"`
	Error      string `toml:"error"`
}

// Set maps every view to its theme.
type Set map[orientation.ViewState]Theme

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Builtin returns the default theme for v.
func Builtin(v orientation.ViewState) Theme {
	base := Theme{
		Foreground: "#cdd6f4",
		Muted:      "#a6adc8",
		Border:     "#585b70",
		Success:    "#a6e3a1",
		Error:      "#f38ba8",
	}
	switch v {
	case orientation.ViewAlarm:
		base.Name = "dawn"
		base.Background = "#1e1e2e"
		base.Accent = "#f9e2af"
	case orientation.ViewStopwatch:
		base.Name = "track"
		base.Background = "#11111b"
		base.Accent = "#a6e3a1"
		base.Success = "#94e2d5"
	case orientation.ViewTimer:
		base.Name = "ember"
		base.Background = "#181825"
		base.Accent = "#fab387"
	case orientation.ViewWeather:
		base.Name = "sky"
		base.Background = "#1e2030"
		base.Accent = "#89dceb"
	default:
		base.Name = "plain"
		base.Background = "#1e1e2e"
		base.Accent = "#89b4fa"
	}
	return base
}

// Defaults returns the built-in theme for every view.
func Defaults() Set {
	s := make(Set, len(orientation.AllViews))
	for _, v := range orientation.AllViews {
		s[v] = Builtin(v)
	}
	return s
}

// For returns the theme for v, falling back to the built-in.
func (s Set) For(v orientation.ViewState) Theme {
	if t, ok := s[v]; ok {
		return t
	}
	return Builtin(v)
}

// Parse decodes a themes document keyed by view name
// ([alarm], [stopwatch], [timer], [weather]). Fields left out keep their
// built-in values.
func Parse(data []byte) (Set, error) {
	var raw map[string]Theme
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("theme: parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("theme: unknown key %q", undecoded[0].String())
	}

	set := Defaults()
	for name, override := range raw {
		v, ok := orientation.ParseViewState(name)
		if !ok {
			return nil, fmt.Errorf("theme: unknown view %q", name)
		}
		merged := merge(set[v], override)
		if err := validate(merged); err != nil {
			return nil, fmt.Errorf("theme %s: %w", name, err)
		}
		set[v] = merged
	}
	return set, nil
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Set, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return Parse(data)
}

func merge(base, o Theme) Theme {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Name, o.Name)
	pick(&base.Background, o.Background)
	pick(&base.Foreground, o.Foreground)
	pick(&base.Accent, o.Accent)
	pick(&base.Muted, o.Muted)
	pick(&base.Border, o.Border)
	pick(&base.Success, o.Success)
	pick(&base.Error, o.Error)
	return base
}

func validate(t Theme) error {
	colors := map[string]string{
		"background": t.Background,
		"foreground": t.Foreground,
		"accent":     t.Accent,
		"muted":      t.Muted,
		"border":     t.Border,
		"success":    t.Success,
		"error":      t.Error,
	}
	for field, c := range colors {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%s: invalid colour %q", field, c)
		}
	}
	return nil
}
