// Package config provides configuration management for progressdash.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/flashingpumpkin/progressdash/internal/line"
	"github.com/flashingpumpkin/progressdash/internal/tree"
	"github.com/flashingpumpkin/progressdash/internal/tui"
)

// Config holds the configuration of one progressdash invocation.
type Config struct {
	// Theme is the colour theme for the dashboard: "auto", "dark", or "light".
	// "auto" detects the terminal background colour automatically.
	// Default: "auto".
	Theme string

	// LogFile is where logs are written. Empty disables logging, since the
	// terminal itself is owned by the renderer.
	LogFile string

	// Debug enables debug level logging.
	Debug bool

	Line      LineConfig
	Dashboard DashboardConfig
	Demo      DemoConfig
}

// LineConfig configures the line renderer.
type LineConfig struct {
	// MinLevel and MaxLevel bound the task levels that are drawn (default: 1..6).
	MinLevel tree.Level
	MaxLevel tree.Level

	// KeepRunningIfEmpty keeps rendering when the tree has no tasks.
	KeepRunningIfEmpty bool

	// Colored enables ANSI colours (default: true).
	Colored bool

	// Timestamp prefixes messages with their time.
	Timestamp bool

	// FramesPerSecond is the redraw rate (default: 6).
	FramesPerSecond float64

	// InitialDelay postpones the first frame so short runs print nothing but messages.
	InitialDelay time.Duration

	// HideCursor hides the terminal cursor while drawing (default: true).
	HideCursor bool
}

// DashboardConfig configures the full-screen dashboard.
type DashboardConfig struct {
	// Title is shown in the title bar (default: "Progress Dashboard").
	Title string

	// FramesPerSecond is the tick rate (default: 10).
	FramesPerSecond float64

	// RecomputeColumnWidthEveryNthFrame controls how often the task name column
	// is resized (default: 1, every frame).
	RecomputeColumnWidthEveryNthFrame int

	// Width and Height override the terminal size when both are positive.
	Width  int
	Height int

	// RedrawOnlyOnStateChange skips frames while the tree is unchanged.
	RedrawOnlyOnStateChange bool

	// InfoFile is a YAML file whose changes drive the title, information pane
	// and interrupt mode. Empty disables it.
	InfoFile string
}

// DemoConfig configures the simulated workload driven by the CLI.
type DemoConfig struct {
	// Workers is the number of concurrent top-level tasks (default: 4).
	Workers int

	// Steps is the number of steps each task runs (default: 30).
	Steps int

	// StepDelay is the time between two steps (default: 80ms).
	StepDelay time.Duration

	// Depth is how many levels of sub-tasks each worker creates (default: 2).
	Depth int
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Theme: string(tui.ThemeAuto),
		Line: LineConfig{
			MinLevel:        1,
			MaxLevel:        tree.MaxLevel,
			Colored:         true,
			FramesPerSecond: 6,
			HideCursor:      true,
		},
		Dashboard: DashboardConfig{
			Title:                             tui.DefaultTitle,
			FramesPerSecond:                   tui.DefaultFramesPerSecond,
			RecomputeColumnWidthEveryNthFrame: 1,
		},
		Demo: DemoConfig{
			Workers:   4,
			Steps:     30,
			StepDelay: 80 * time.Millisecond,
			Depth:     2,
		},
	}
}

// MaxFramesPerSecond is the highest redraw rate accepted for either renderer.
const MaxFramesPerSecond = 1000

// validFramesPerSecond rejects zero, negative, NaN and infinite rates.
func validFramesPerSecond(fps float64) bool {
	return fps > 0 && fps <= MaxFramesPerSecond
}

// Validate checks that the configuration is valid.
// Returns an error if validation fails.
func (c *Config) Validate() error {
	if !tui.ValidTheme(c.Theme) {
		return errors.New("theme must be one of auto, dark or light")
	}
	if c.Line.MinLevel > c.Line.MaxLevel {
		return errors.New("line min level cannot exceed max level")
	}
	if !validFramesPerSecond(c.Line.FramesPerSecond) {
		return fmt.Errorf("line frames per second must be between 0 and %d", MaxFramesPerSecond)
	}
	if c.Line.InitialDelay < 0 {
		return errors.New("line initial delay cannot be negative")
	}
	if !validFramesPerSecond(c.Dashboard.FramesPerSecond) {
		return fmt.Errorf("dashboard frames per second must be between 0 and %d", MaxFramesPerSecond)
	}
	if c.Dashboard.RecomputeColumnWidthEveryNthFrame < 0 {
		return errors.New("column width recompute interval cannot be negative")
	}
	if c.Dashboard.Width < 0 || c.Dashboard.Height < 0 {
		return errors.New("window size cannot be negative")
	}
	if c.Demo.Workers <= 0 {
		return errors.New("demo workers must be positive")
	}
	if c.Demo.Steps <= 0 {
		return errors.New("demo steps must be positive")
	}
	if c.Demo.Depth < 0 || c.Demo.Depth >= int(tree.MaxLevel) {
		return errors.New("demo depth must be between 0 and 5")
	}
	return nil
}

// LineOptions converts the line section to renderer options.
func (c *Config) LineOptions(outputIsTerminal bool) line.Options {
	return line.Options{
		LevelFilter:                  &line.LevelRange{Min: c.Line.MinLevel, Max: c.Line.MaxLevel},
		KeepRunningIfProgressIsEmpty: c.Line.KeepRunningIfEmpty,
		OutputIsTerminal:             outputIsTerminal,
		Colored:                      c.Line.Colored && outputIsTerminal,
		Timestamp:                    c.Line.Timestamp,
		FramesPerSecond:              c.Line.FramesPerSecond,
		InitialDelay:                 c.Line.InitialDelay,
		HideCursor:                   c.Line.HideCursor,
	}
}

// DashboardOptions converts the dashboard section to dashboard options.
func (c *Config) DashboardOptions() tui.Options {
	opts := tui.Options{
		Title:                             c.Dashboard.Title,
		FramesPerSecond:                   c.Dashboard.FramesPerSecond,
		RecomputeColumnWidthEveryNthFrame: c.Dashboard.RecomputeColumnWidthEveryNthFrame,
		RedrawOnlyOnStateChange:           c.Dashboard.RedrawOnlyOnStateChange,
		Theme:                             tui.Theme(c.Theme),
	}
	if c.Dashboard.Width > 0 && c.Dashboard.Height > 0 {
		opts.WindowSize = &tui.Rect{Width: c.Dashboard.Width, Height: c.Dashboard.Height}
	}
	return opts
}
