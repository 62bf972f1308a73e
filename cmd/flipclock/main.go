package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/flipclock/core"
	"github.com/jask/flipclock/internal/config"
	"github.com/jask/flipclock/internal/journal"
	"github.com/jask/flipclock/internal/notify"
	"github.com/jask/flipclock/internal/orientation"
	"github.com/jask/flipclock/internal/theme"
	"github.com/jask/flipclock/internal/weather"
	"github.com/jask/flipclock/internal/weather/openweather"
	"github.com/jask/flipclock/screens"
	"github.com/jask/flipclock/tabs"
)

type flags struct {
	config      string
	route       string
	verbose     bool
	history     bool
	historyN    int
	tilt        string
	writeConfig bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet("flipclock", pflag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file (default $FLIPCLOCK_CONFIG or ~/.config/flipclock/config.toml)")
	fs.StringVarP(&f.route, "route", "r", "", "open this route and hold it until the device is turned, e.g. /timer")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&f.history, "history", false, "print recent journal events and exit")
	fs.IntVarP(&f.historyN, "limit", "n", 20, "number of events --history prints")
	fs.StringVar(&f.tilt, "tilt", "", "fixed device tilt as beta,gamma instead of the sensor")
	fs.BoolVar(&f.writeConfig, "write-config", false, "write the effective config file and exit")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("flags: %v", err)
	}

	cfg, err := config.Load(f.config)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if f.writeConfig {
		if err := config.Save(f.config, cfg); err != nil {
			log.Fatalf("write config: %v", err)
		}
		return
	}

	logger, closeLog, err := newLogger(cfg.Log, f.verbose)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.OpenStore(cfg.Journal.Path)
		if err != nil {
			logger.Warn("journal disabled", "path", cfg.Journal.Path, "err", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	if f.history {
		if store == nil {
			log.Fatalf("history: journal is not available")
		}
		if err := printHistory(context.Background(), os.Stdout, store, f.historyN, cfg.Location()); err != nil {
			log.Fatalf("history: %v", err)
		}
		return
	}

	themes, err := theme.Load(cfg.UI.ThemesFile)
	if err != nil {
		logger.Warn("using built-in themes", "file", cfg.UI.ThemesFile, "err", err)
		themes = theme.Defaults()
	}

	sensor, err := newSensor(cfg.Orientation, f.tilt)
	if err != nil {
		log.Fatalf("tilt: %v", err)
	}

	mode, ok := core.ParseMode(cfg.Orientation.Mode)
	if !ok {
		log.Fatalf("config: unknown orientation mode %q", cfg.Orientation.Mode)
	}
	start := cfg.UI.StartRoute
	if f.route != "" {
		start = f.route
	}

	deps := tabs.Deps{
		Location:       cfg.Location(),
		Notifier:       notify.NewDesktop(),
		Player:         notify.NewSound(cfg.Alarm.SoundFile, os.Stdout),
		AlarmNotify:    cfg.Alarm.Notify,
		TimerNotify:    cfg.Timer.Notify,
		Snooze:         cfg.Alarm.Snooze,
		TimerDuration:  cfg.Timer.Duration,
		Weather:        newWeatherProvider(cfg.Weather, logger),
		Locator:        newLocator(cfg.Weather),
		FallbackCity:   cfg.Weather.FallbackCity,
		WeatherTimeout: cfg.Weather.Timeout,
		Logger:         logger,
	}
	if store != nil {
		deps.Journal = store
	}

	m := core.NewModel(core.Options{
		Factory:  tabs.Factory(deps),
		Commands: core.NewCommandRegistry(core.DefaultCommands()),
		Themes:   themes,
		Detector: orientation.NewDetector(orientation.Thresholds{
			Gamma: cfg.Orientation.GammaThreshold,
			Beta:  cfg.Orientation.BetaThreshold,
		}, cfg.Orientation.Transition),
		Sensor:     sensor,
		Mode:       mode,
		Poll:       cfg.Orientation.Poll,
		StartRoute: start,
		Pin:        f.route != "",
		Logger:     logger,
	})
	m.OpenRoutePicker = func(m *core.Model) core.Screen { return screens.NewRoutePicker(m) }
	m.OpenCommandModal = func(m *core.Model, scope string) core.Screen { return screens.NewCommandPalette(m, scope) }
	if store != nil {
		m.OpenHistory = func(m *core.Model) core.Screen {
			return screens.NewHistoryScreen(m.Keys(), store, cfg.Location(), 100)
		}
	}

	logger.Info("starting", "route", start, "mode", mode.String(), "journal", store != nil)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes text logs to the configured file. The terminal belongs to
// the TUI, so an empty path discards logs.
func newLogger(c config.LogConfig, verbose bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	if strings.TrimSpace(c.File) == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	fh, err := os.OpenFile(c.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(fh, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = fh.Close() }, nil
}

func newSensor(c config.OrientationConfig, tilt string) (orientation.Sensor, error) {
	if tilt != "" {
		t, err := orientation.ParseTilt(tilt)
		if err != nil {
			return nil, err
		}
		return orientation.StaticSensor{Tilt: t}, nil
	}
	if !c.Sensor {
		return orientation.NoSensor{}, nil
	}
	return orientation.NewIIOSensor(c.SensorRoot), nil
}

func newWeatherProvider(c config.WeatherConfig, logger *slog.Logger) weather.Provider {
	return openweather.New(c.APIKey,
		openweather.WithBaseURL(c.BaseURL),
		openweather.WithUnits(c.Units),
		openweather.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		openweather.WithLogger(logger.With("component", "openweather")),
	)
}

func newLocator(c config.WeatherConfig) weather.Locator {
	if !c.Geolocate {
		return weather.NoLocator{}
	}
	return weather.IPLocator{URL: c.LocateURL, Client: &http.Client{Timeout: c.Timeout}}
}
