// Package tui is the full-screen progress dashboard.
//
// An Engine merges ticks, key presses and externally supplied events into a
// single stream, keeps the view state and interrupt state, and redraws the
// screen when something worth drawing happened.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Rect is an area of the terminal, in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Interrupt is the way the dashboard reacts to a quit key.
type Interrupt int

const (
	// InterruptInstantly quits as soon as a quit key is pressed.
	InterruptInstantly Interrupt = iota
	// InterruptDeferred remembers the quit request until the mode goes back to InterruptInstantly.
	InterruptDeferred
)

func (i Interrupt) String() string {
	if i == InterruptDeferred {
		return "deferred"
	}
	return "instantly"
}

// LineKind tells how an information line is drawn.
type LineKind int

const (
	LineText LineKind = iota
	LineTitle
)

// Line is one entry of the information pane.
type Line struct {
	Kind LineKind
	Text string
}

// Title returns an information line drawn as a heading.
func Title(s string) Line { return Line{Kind: LineTitle, Text: s} }

// Text returns an information line drawn as plain text.
func Text(s string) Line { return Line{Kind: LineText, Text: s} }

// Event is anything the dashboard loop reacts to.
type Event interface {
	isEvent()
}

// Tick asks for a frame.
type Tick struct{}

// Input is a key press.
type Input struct {
	Key tea.Key
}

// SetWindowSize overrides the terminal size.
type SetWindowSize struct {
	Rect Rect
}

// SetTitle replaces the title.
type SetTitle struct {
	Title string
}

// SetInformation replaces the content of the information pane.
type SetInformation struct {
	Lines []Line
}

// SetInterruptMode changes how quit keys are handled.
type SetInterruptMode struct {
	Mode Interrupt
}

func (Tick) isEvent()             {}
func (Input) isEvent()            {}
func (SetWindowSize) isEvent()    {}
func (SetTitle) isEvent()         {}
func (SetInformation) isEvent()   {}
func (SetInterruptMode) isEvent() {}
