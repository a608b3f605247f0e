package tui

import "time"

const (
	// DefaultTitle is shown when Options.Title is empty.
	DefaultTitle = "Progress Dashboard"
	// DefaultFramesPerSecond is used when Options.FramesPerSecond is not positive.
	DefaultFramesPerSecond = 10.0
)

// Options configure the dashboard.
type Options struct {
	// Title is shown in the title bar.
	Title string

	// FramesPerSecond is the tick rate. Each tick redraws the screen.
	FramesPerSecond float64

	// RecomputeColumnWidthEveryNthFrame keeps the width of the task name
	// column stable for that many frames. Zero or one recompute it every frame.
	RecomputeColumnWidthEveryNthFrame int

	// WindowSize is used instead of the terminal size when set.
	WindowSize *Rect

	// RedrawOnlyOnStateChange skips frames while the progress tree is unchanged.
	// It keeps a deep copy of the tree around to compare with.
	RedrawOnlyOnStateChange bool

	// Theme selects the colours. ThemeAuto is treated as ThemeDark unless
	// resolved by the caller.
	Theme Theme
}

// DefaultOptions returns the options used by the CLI when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Title:                             DefaultTitle,
		FramesPerSecond:                   DefaultFramesPerSecond,
		RecomputeColumnWidthEveryNthFrame: 1,
		Theme:                             ThemeAuto,
	}
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) period() time.Duration {
	fps := o.FramesPerSecond
	if !(fps > 0) {
		fps = DefaultFramesPerSecond
	}
	// NewTicker panics on a zero period, which very large rates round down to.
	return max(time.Duration(float64(time.Second)/fps), time.Millisecond)
}

func (o Options) storeColumnWidthEvery() int {
	return max(o.RecomputeColumnWidthEveryNthFrame, 1)
}
