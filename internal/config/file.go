package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the configuration loaded from .progressdash/config.toml.
// Unset keys keep their defaults.
type FileConfig struct {
	// Theme is the dashboard colour theme: "auto", "dark", or "light".
	Theme *string `toml:"theme"`

	// LogFile is the path logs are written to.
	LogFile *string `toml:"log_file"`

	// Debug enables debug logging.
	Debug *bool `toml:"debug"`

	Line      *LineFileConfig      `toml:"line"`
	Dashboard *DashboardFileConfig `toml:"dashboard"`
	Demo      *DemoFileConfig      `toml:"demo"`
}

// LineFileConfig is the [line] section.
type LineFileConfig struct {
	MinLevel           *uint8         `toml:"min_level"`
	MaxLevel           *uint8         `toml:"max_level"`
	KeepRunningIfEmpty *bool          `toml:"keep_running_if_empty"`
	Colored            *bool          `toml:"colored"`
	Timestamp          *bool          `toml:"timestamp"`
	FramesPerSecond    *float64       `toml:"fps"`
	InitialDelay       *time.Duration `toml:"initial_delay"`
	HideCursor         *bool          `toml:"hide_cursor"`
}

// DashboardFileConfig is the [dashboard] section.
type DashboardFileConfig struct {
	Title                   *string  `toml:"title"`
	FramesPerSecond         *float64 `toml:"fps"`
	RecomputeColumnWidth    *int     `toml:"recompute_column_width_every_nth_frame"`
	Width                   *int     `toml:"width"`
	Height                  *int     `toml:"height"`
	RedrawOnlyOnStateChange *bool    `toml:"redraw_only_on_state_change"`
	InfoFile                *string  `toml:"info_file"`
}

// DemoFileConfig is the [demo] section.
type DemoFileConfig struct {
	Workers   *int           `toml:"workers"`
	Steps     *int           `toml:"steps"`
	StepDelay *time.Duration `toml:"step_delay"`
	Depth     *int           `toml:"depth"`
}

// LoadFileConfig reads configuration from .progressdash/config.toml in the working directory.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfig(workingDir string) (*FileConfig, error) {
	configPath := filepath.Join(workingDir, ".progressdash", "config.toml")
	return LoadFileConfigFrom(configPath)
}

// LoadFileConfigFrom reads configuration from a specific file path.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfigFrom(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply copies every value set in the file onto c.
func (fc *FileConfig) Apply(c *Config) {
	if fc == nil {
		return
	}
	set(&c.Theme, fc.Theme)
	set(&c.LogFile, fc.LogFile)
	set(&c.Debug, fc.Debug)

	if l := fc.Line; l != nil {
		set(&c.Line.MinLevel, l.MinLevel)
		set(&c.Line.MaxLevel, l.MaxLevel)
		set(&c.Line.KeepRunningIfEmpty, l.KeepRunningIfEmpty)
		set(&c.Line.Colored, l.Colored)
		set(&c.Line.Timestamp, l.Timestamp)
		set(&c.Line.FramesPerSecond, l.FramesPerSecond)
		set(&c.Line.InitialDelay, l.InitialDelay)
		set(&c.Line.HideCursor, l.HideCursor)
	}
	if d := fc.Dashboard; d != nil {
		set(&c.Dashboard.Title, d.Title)
		set(&c.Dashboard.FramesPerSecond, d.FramesPerSecond)
		set(&c.Dashboard.RecomputeColumnWidthEveryNthFrame, d.RecomputeColumnWidth)
		set(&c.Dashboard.Width, d.Width)
		set(&c.Dashboard.Height, d.Height)
		set(&c.Dashboard.RedrawOnlyOnStateChange, d.RedrawOnlyOnStateChange)
		set(&c.Dashboard.InfoFile, d.InfoFile)
	}
	if d := fc.Demo; d != nil {
		set(&c.Demo.Workers, d.Workers)
		set(&c.Demo.Steps, d.Steps)
		set(&c.Demo.StepDelay, d.StepDelay)
		set(&c.Demo.Depth, d.Depth)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
