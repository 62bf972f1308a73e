package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Weather     WeatherConfig
	Alarm       AlarmConfig
	Timer       TimerConfig
	Orientation OrientationConfig
	Journal     JournalConfig
	Log         LogConfig
	UI          UIConfig
}

// WeatherConfig holds OpenWeather and geolocation settings.
type WeatherConfig struct {
	APIKey       string `mapstructure:"api_key"`
	APIKeyEnv    string `mapstructure:"api_key_env"`
	BaseURL      string `mapstructure:"base_url"`
	Units        string
	FallbackCity string `mapstructure:"fallback_city"`
	Geolocate    bool
	LocateURL    string `mapstructure:"locate_url"`
	Timeout      time.Duration
}

// AlarmConfig holds alarm side-effect settings.
type AlarmConfig struct {
	SoundFile string `mapstructure:"sound_file"`
	Notify    bool
	Snooze    time.Duration
}

// TimerConfig holds countdown settings.
type TimerConfig struct {
	Duration time.Duration
	Notify   bool
}

// OrientationConfig holds detector and sensor settings.
type OrientationConfig struct {
	Mode           string
	GammaThreshold float64 `mapstructure:"gamma_threshold"`
	BetaThreshold  float64 `mapstructure:"beta_threshold"`
	Transition     time.Duration
	Sensor         bool
	SensorRoot     string `mapstructure:"sensor_root"`
	Poll           time.Duration
}

// JournalConfig holds sqlite history settings.
type JournalConfig struct {
	Enabled bool
	Path    string
}

// LogConfig holds log file settings.
type LogConfig struct {
	File  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone   string
	StartRoute string `mapstructure:"start_route"`
	ThemesFile string `mapstructure:"themes_file"`
}

// Orientation modes.
const (
	ModeAuto   = "auto"
	ModeManual = "manual"
)

// APIKeyFromEnv is the fallback environment variable for the OpenWeather key.
const APIKeyFromEnv = "OPENWEATHER_API_KEY"

// Path returns the config file location: $FLIPCLOCK_CONFIG or
// ~/.config/flipclock/config.toml.
func Path() string {
	if p := os.Getenv("FLIPCLOCK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "flipclock", "config.toml")
}

func configHome() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func stateHome() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return d
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}

func dataHome() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.api_key_env", APIKeyFromEnv)
	v.SetDefault("weather.base_url", "https://api.openweathermap.org")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.fallback_city", "Delhi")
	v.SetDefault("weather.geolocate", true)
	v.SetDefault("weather.locate_url", "http://ip-api.com/json/?fields=status,lat,lon")
	v.SetDefault("weather.timeout", "10s")

	v.SetDefault("alarm.sound_file", "")
	v.SetDefault("alarm.notify", true)
	v.SetDefault("alarm.snooze", "5m")

	v.SetDefault("timer.duration", "5m")
	v.SetDefault("timer.notify", true)

	v.SetDefault("orientation.mode", ModeAuto)
	v.SetDefault("orientation.gamma_threshold", 45.0)
	v.SetDefault("orientation.beta_threshold", 135.0)
	v.SetDefault("orientation.transition", "300ms")
	v.SetDefault("orientation.sensor", true)
	v.SetDefault("orientation.sensor_root", "/sys/bus/iio/devices")
	v.SetDefault("orientation.poll", "250ms")

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join(dataHome(), "flipclock", "journal.db"))

	v.SetDefault("log.file", filepath.Join(stateHome(), "flipclock", "flipclock.log"))
	v.SetDefault("log.level", "info")

	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.start_route", "/alarm")
	v.SetDefault("ui.themes_file", filepath.Join(configHome(), "flipclock", "themes.toml"))
}

// Load reads configuration from path (or Path() when empty) and env.
// Env var overrides use prefix FLIPCLOCK_. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = Path()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("FLIPCLOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Weather.APIKey == "" && c.Weather.APIKeyEnv != "" {
		c.Weather.APIKey = os.Getenv(c.Weather.APIKeyEnv)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch c.Orientation.Mode {
	case ModeAuto, ModeManual:
	default:
		errs = append(errs, fmt.Errorf("orientation.mode must be %q or %q, got %q", ModeAuto, ModeManual, c.Orientation.Mode))
	}
	if c.Orientation.GammaThreshold <= 0 || c.Orientation.GammaThreshold >= 90 {
		errs = append(errs, fmt.Errorf("orientation.gamma_threshold must be in (0, 90), got %v", c.Orientation.GammaThreshold))
	}
	if c.Orientation.BetaThreshold <= 0 || c.Orientation.BetaThreshold > 180 {
		errs = append(errs, fmt.Errorf("orientation.beta_threshold must be in (0, 180], got %v", c.Orientation.BetaThreshold))
	}
	if c.Orientation.Transition < 0 {
		errs = append(errs, errors.New("orientation.transition must not be negative"))
	}
	if c.Orientation.Poll < 10*time.Millisecond {
		errs = append(errs, fmt.Errorf("orientation.poll must be at least 10ms, got %s", c.Orientation.Poll))
	}
	if c.Timer.Duration < time.Minute {
		errs = append(errs, fmt.Errorf("timer.duration must be at least 1m, got %s", c.Timer.Duration))
	}
	if c.Alarm.Snooze < time.Minute {
		errs = append(errs, fmt.Errorf("alarm.snooze must be at least 1m, got %s", c.Alarm.Snooze))
	}
	if c.Weather.Timeout <= 0 {
		errs = append(errs, errors.New("weather.timeout must be positive"))
	}
	switch c.Weather.Units {
	case "metric", "imperial", "standard":
	default:
		errs = append(errs, fmt.Errorf("weather.units must be metric, imperial or standard, got %q", c.Weather.Units))
	}
	if c.UI.Timezone != "" {
		if _, err := time.LoadLocation(c.UI.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("ui.timezone: %w", err))
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Location resolves UI.Timezone, defaulting to local time.
func (c Config) Location() *time.Location {
	if c.UI.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Save writes the provided config to path (or Path() when empty), creating
// the config directory if needed. An API key read from the environment is
// not written back.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	apiKey := cfg.Weather.APIKey
	if cfg.Weather.APIKeyEnv != "" && apiKey == os.Getenv(cfg.Weather.APIKeyEnv) {
		apiKey = ""
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("weather.api_key", apiKey)
	v.Set("weather.api_key_env", cfg.Weather.APIKeyEnv)
	v.Set("weather.base_url", cfg.Weather.BaseURL)
	v.Set("weather.units", cfg.Weather.Units)
	v.Set("weather.fallback_city", cfg.Weather.FallbackCity)
	v.Set("weather.geolocate", cfg.Weather.Geolocate)
	v.Set("weather.locate_url", cfg.Weather.LocateURL)
	v.Set("weather.timeout", cfg.Weather.Timeout.String())
	v.Set("alarm.sound_file", cfg.Alarm.SoundFile)
	v.Set("alarm.notify", cfg.Alarm.Notify)
	v.Set("alarm.snooze", cfg.Alarm.Snooze.String())
	v.Set("timer.duration", cfg.Timer.Duration.String())
	v.Set("timer.notify", cfg.Timer.Notify)
	v.Set("orientation.mode", cfg.Orientation.Mode)
	v.Set("orientation.gamma_threshold", cfg.Orientation.GammaThreshold)
	v.Set("orientation.beta_threshold", cfg.Orientation.BetaThreshold)
	v.Set("orientation.transition", cfg.Orientation.Transition.String())
	v.Set("orientation.sensor", cfg.Orientation.Sensor)
	v.Set("orientation.sensor_root", cfg.Orientation.SensorRoot)
	v.Set("orientation.poll", cfg.Orientation.Poll.String())
	v.Set("journal.enabled", cfg.Journal.Enabled)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.start_route", cfg.UI.StartRoute)
	v.Set("ui.themes_file", cfg.UI.ThemesFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
