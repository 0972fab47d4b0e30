// Package config loads angler-terminal settings from a YAML file, ANGLER_
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ngmaloney/angler-terminal/internal/tides"
)

// EnvPrefix is prepended to every environment override, e.g. ANGLER_SERVER_ADDRESS
const EnvPrefix = "ANGLER"

// Settings is the full runtime configuration
type Settings struct {
	Debug bool `mapstructure:"debug"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Log LogSettings `mapstructure:"log"`

	Server struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`

	Time struct {
		ZoneName       string `mapstructure:"zone_name"`
		UTCOffsetHours int    `mapstructure:"utc_offset_hours"`
	} `mapstructure:"time"`

	OpenMeteo struct {
		MarineURL   string        `mapstructure:"marine_url"`
		ForecastURL string        `mapstructure:"forecast_url"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"open_meteo"`

	MeteoMauritius struct {
		SunURL   string        `mapstructure:"sun_url"`
		MoonURL  string        `mapstructure:"moon_url"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"meteo_mauritius"`

	Nominatim struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"nominatim"`

	Regions struct {
		Shapefile string `mapstructure:"shapefile"`
	} `mapstructure:"regions"`

	Tide TideSettings `mapstructure:"tide"`
}

// LogSettings controls where and how verbosely the application logs
type LogSettings struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"` // empty logs to stderr
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// TideSettings holds the harmonic model constants and level thresholds
type TideSettings struct {
	Harmonic       tides.HarmonicModel `mapstructure:"harmonic"`
	LiveThresholds tides.Thresholds    `mapstructure:"live_thresholds"`
}

// ValidationError collects every problem found in a Settings value
type ValidationError struct {
	Errors []string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(ve.Errors, "; "))
}

// Load reads configuration. An explicit path must exist; otherwise config.yaml
// is searched in the working directory and $HOME/.config/angler-terminal and a
// missing file leaves the defaults in place.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func searchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "angler-terminal"))
	}
	return paths
}

// Validate checks the settings for values the services cannot run with
func (s *Settings) Validate() error {
	ve := ValidationError{}

	if s.Database.Path == "" {
		ve.Errors = append(ve.Errors, "database.path must not be empty")
	}
	if s.Time.UTCOffsetHours < -12 || s.Time.UTCOffsetHours > 14 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("time.utc_offset_hours %d out of range", s.Time.UTCOffsetHours))
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		ve.Errors = append(ve.Errors, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", s.Log.Level))
	}
	if s.OpenMeteo.Timeout <= 0 || s.MeteoMauritius.Timeout <= 0 {
		ve.Errors = append(ve.Errors, "upstream timeouts must be positive")
	}

	h := s.Tide.Harmonic
	if len(h.Constituents) == 0 {
		ve.Errors = append(ve.Errors, "tide.harmonic.constituents must not be empty")
	}
	for _, c := range h.Constituents {
		if c.PeriodHours <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("tide constituent %s needs a positive period", c.Name))
		}
	}
	if h.MinHeight >= h.MaxHeight {
		ve.Errors = append(ve.Errors, "tide.harmonic.min_height must be below max_height")
	}
	if h.LunarPeriod <= 0 {
		ve.Errors = append(ve.Errors, "tide.harmonic.lunar_period_days must be positive")
	}
	for name, th := range map[string]tides.Thresholds{
		"tide.harmonic.thresholds": h.Thresholds,
		"tide.live_thresholds":     s.Tide.LiveThresholds,
	} {
		if !(th.High > th.MediumHigh && th.MediumHigh > th.Medium) {
			ve.Errors = append(ve.Errors, name+" must be strictly decreasing from high to medium")
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// Location returns the fixed zone all local times are expressed in
func (s *Settings) Location() *time.Location {
	return time.FixedZone(s.Time.ZoneName, s.Time.UTCOffsetHours*60*60)
}
