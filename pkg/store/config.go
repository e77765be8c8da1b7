package store

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/unsched/pkg/colors"
	"tableflip.dev/unsched/pkg/timeutil"
)

const (
	// DefaultAnchor is the Monday that starts Week A when none is configured.
	DefaultAnchor = "2024-01-01"
	anchorLayout  = "2006-01-02"
	// ConfigPathEnv names an extra directory searched for .unsched.yaml.
	ConfigPathEnv = "UNSCHED_CONFIG_PATH"
)

// Config is the resolved configuration for one invocation.
type Config interface {
	// BasePath is the settings directory.
	BasePath() string
	// File is the config file that was read, or "".
	File() string
	Palette() []string
	Hours() timeutil.HourRange
	TimeFormat() timeutil.Format
	LogLevel() string
	// Anchor is the Monday that starts Week A, at midnight in Location.
	Anchor() time.Time
	Location() *time.Location
}

// LoadConfig reads .unsched.yaml from $UNSCHED_CONFIG_PATH, the working
// directory or $HOME, then applies UNSCHED_* environment overrides. A missing
// config file is not an error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("settings", "~/.unsched")
	v.SetDefault("palette", colors.DefaultPalette())
	v.SetDefault("start_hour", timeutil.DefaultStartHour)
	v.SetDefault("end_hour", timeutil.DefaultEndHour)
	v.SetDefault("time_format", string(timeutil.Format24h))
	v.SetDefault("log_level", "info")
	v.SetDefault("anchor", DefaultAnchor)
	v.SetDefault("timezone", "")

	v.SetConfigName(".unsched") // .yaml is implicit
	v.SetEnvPrefix("UNSCHED")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	base, err := homedir.Expand(v.GetString("settings"))
	if err != nil {
		return nil, fmt.Errorf("settings path: %w", err)
	}

	hours := timeutil.HourRange{Start: v.GetInt("start_hour"), End: v.GetInt("end_hour")}
	if err := hours.Validate(); err != nil {
		return nil, fmt.Errorf("config start_hour/end_hour: %w", err)
	}

	format, err := timeutil.ParseFormat(v.GetString("time_format"))
	if err != nil {
		return nil, fmt.Errorf("config time_format: %w", err)
	}

	loc := time.Local
	if tz := v.GetString("timezone"); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("config timezone: %w", err)
		}
	}

	anchor, err := time.ParseInLocation(anchorLayout, v.GetString("anchor"), loc)
	if err != nil {
		return nil, fmt.Errorf("config anchor: %w", err)
	}
	if anchor.Weekday() != time.Monday {
		return nil, fmt.Errorf("config anchor: %s is a %s, want a Monday", anchor.Format(anchorLayout), anchor.Weekday())
	}

	return &fileConfig{
		Path:       base,
		Source:     v.ConfigFileUsed(),
		Colors:     v.GetStringSlice("palette"),
		Range:      hours,
		Format:     format,
		Level:      v.GetString("log_level"),
		AnchorDate: anchor,
		Loc:        loc,
	}, nil
}

type fileConfig struct {
	Path       string             `json:"settings"`
	Source     string             `json:"config_file,omitempty"`
	Colors     []string           `json:"palette"`
	Range      timeutil.HourRange `json:"hours"`
	Format     timeutil.Format    `json:"time_format"`
	Level      string             `json:"log_level"`
	AnchorDate time.Time          `json:"anchor"`
	Loc        *time.Location     `json:"-"`
}

func (f *fileConfig) BasePath() string            { return f.Path }
func (f *fileConfig) File() string                { return f.Source }
func (f *fileConfig) Palette() []string           { return f.Colors }
func (f *fileConfig) Hours() timeutil.HourRange   { return f.Range }
func (f *fileConfig) TimeFormat() timeutil.Format { return f.Format }
func (f *fileConfig) LogLevel() string            { return f.Level }
func (f *fileConfig) Anchor() time.Time           { return f.AnchorDate }
func (f *fileConfig) Location() *time.Location    { return f.Loc }

// StaticConfig is a Config with fixed values, for tests and embedding.
type StaticConfig struct {
	Base       string
	Colors     []string
	Range      timeutil.HourRange
	Format     timeutil.Format
	AnchorDate time.Time
}

func (s StaticConfig) BasePath() string  { return s.Base }
func (s StaticConfig) File() string      { return "" }
func (s StaticConfig) Palette() []string { return s.Colors }
func (s StaticConfig) Hours() timeutil.HourRange {
	if s.Range == (timeutil.HourRange{}) {
		return timeutil.DefaultHourRange()
	}
	return s.Range
}
func (s StaticConfig) TimeFormat() timeutil.Format {
	if s.Format == "" {
		return timeutil.Format24h
	}
	return s.Format
}
func (s StaticConfig) LogLevel() string { return "info" }
func (s StaticConfig) Anchor() time.Time {
	if s.AnchorDate.IsZero() {
		t, _ := time.ParseInLocation(anchorLayout, DefaultAnchor, time.Local)
		return t
	}
	return s.AnchorDate
}
func (s StaticConfig) Location() *time.Location { return s.Anchor().Location() }
