// Package line draws a progress tree as a block of lines that is redrawn in
// place on every frame, with new messages scrolling above it.
package line

import (
	"time"

	"github.com/flashingpumpkin/progressdash/internal/tree"
)

// LevelRange is an inclusive range of task levels.
type LevelRange struct {
	Min tree.Level
	Max tree.Level
}

// Contains reports whether l is within the range.
func (r LevelRange) Contains(l tree.Level) bool {
	return l >= r.Min && l <= r.Max
}

// Options configure Render and Run.
type Options struct {
	// LevelFilter restricts the drawn tasks to a range of levels. Nil draws every level.
	LevelFilter *LevelRange

	// KeepRunningIfProgressIsEmpty makes Render succeed on an empty tree
	// instead of returning errors.ErrProgressEmpty.
	KeepRunningIfProgressIsEmpty bool

	// OutputIsTerminal enables drawing the tree. Without it only messages are
	// written, which keeps redirected output append-only.
	OutputIsTerminal bool

	// Colored enables ANSI colours.
	Colored bool

	// Timestamp prefixes each message with its time.
	Timestamp bool

	// FramesPerSecond is the redraw rate of Run.
	FramesPerSecond float64

	// InitialDelay postpones the first frame of Run.
	InitialDelay time.Duration

	// HideCursor hides the cursor while Run draws to a terminal.
	HideCursor bool
}

// DefaultFramesPerSecond is used by Run when Options.FramesPerSecond is not positive.
const DefaultFramesPerSecond = 6.0

func (o Options) levelRange() LevelRange {
	if o.LevelFilter == nil {
		return LevelRange{Min: 0, Max: ^tree.Level(0)}
	}
	return *o.LevelFilter
}

func (o Options) period() time.Duration {
	fps := o.FramesPerSecond
	if !(fps > 0) {
		fps = DefaultFramesPerSecond
	}
	// NewTicker panics on a zero period, which very large rates round down to.
	return max(time.Duration(float64(time.Second)/fps), time.Millisecond)
}
