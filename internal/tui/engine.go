package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flashingpumpkin/progressdash/internal/log"
	"github.com/flashingpumpkin/progressdash/internal/screen"
	"github.com/flashingpumpkin/progressdash/internal/tree"
)

// Source is the progress tree as seen by the dashboard.
type Source interface {
	SortedSnapshot(out []tree.Entry) []tree.Entry
	CopyMessages(out []tree.Message) []tree.Message
	DeepClone() *tree.Root
	DeepEqual(other *tree.Root) bool
}

// viewState is everything the dashboard draws besides the tree itself.
// It is only touched by the goroutine running the engine.
type viewState struct {
	title       string
	information []Line

	hideMessages       bool
	messagesFullscreen bool
	hideInfo           bool
	maximizeInfo       bool

	taskOffset    int
	messageOffset int

	// widest task name of the last frame, and the width the name column is drawn with
	lastTreeColumnWidth int
	nextTreeColumnWidth int

	userWindowSize *Rect
	interrupt      InterruptState
}

// Engine runs the dashboard loop.
type Engine struct {
	root     Source
	term     screen.Terminal
	renderer *screen.Renderer
	keys     <-chan tea.Key
	opts     Options
	styles   Styles
	logger   log.Logger

	state    viewState
	entries  []tree.Entry
	messages []tree.Message
	previous *tree.Root

	frames  int
	skipped int
	size    Rect
	help    help.Model
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithKeys makes the engine react to key presses from keys.
func WithKeys(keys <-chan tea.Key) EngineOption {
	return func(e *Engine) {
		e.keys = keys
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an engine drawing root on term.
func NewEngine(root Source, term screen.Terminal, opts Options, options ...EngineOption) *Engine {
	e := &Engine{
		root:     root,
		term:     term,
		renderer: screen.NewRenderer(term),
		opts:     opts,
		styles:   GetStyles(opts.Theme),
		logger:   log.Noop,
		help:     help.New(),
		state: viewState{
			title: opts.title(),
		},
	}
	for _, o := range options {
		o(e)
	}
	e.logger = e.logger.WithValues(log.Kv{"renderer": "dashboard"})
	return e
}

// Frames returns the number of frames drawn.
func (e *Engine) Frames() int {
	return e.frames
}

// Skipped returns the number of frames skipped because the tree did not change.
func (e *Engine) Skipped() int {
	return e.skipped
}

// Run processes events until a quit is accepted, the keyboard or events
// channel is closed, or ctx is done. Write errors end the loop and are returned.
func (e *Engine) Run(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(e.opts.period())
	defer ticker.Stop()

	merger := NewMerger(ticker.C, e.keys, events)
	for {
		ev, ok := merger.Next(ctx)
		if !ok {
			e.logger.Debugf("Event sources closed after %d frames", e.frames)
			return nil
		}

		redraw, exit := e.handle(ev)
		if exit {
			e.logger.Debugf("Quit accepted after %d frames", e.frames)
			return nil
		}
		if !redraw {
			continue
		}

		if e.opts.RedrawOnlyOnStateChange {
			_, tick := ev.(Tick)
			if tick && e.previous != nil && e.root.DeepEqual(e.previous) {
				e.skipped++
				e.logger.Debugf("Frame skipped, tree unchanged")
				continue
			}
			e.previous = e.root.DeepClone()
		}

		if err := e.draw(); err != nil {
			return fmt.Errorf("draw frame %d: %w", e.frames, err)
		}
	}
}

// handle applies one event to the view state. It reports whether a frame
// should be drawn and whether the loop has to exit.
func (e *Engine) handle(ev Event) (redraw, exit bool) {
	switch ev := ev.(type) {
	case Tick:
	case Input:
		known, quit := e.state.handleKey(ev.Key)
		if quit || !known {
			return false, quit
		}
		if e.state.interrupt.Pending() {
			e.logger.Debugf("Quit requested, deferred")
		}
	case SetWindowSize:
		r := ev.Rect
		e.state.userWindowSize = &r
		e.logger.Debugf("Window size set to %dx%d", r.Width, r.Height)
	case SetTitle:
		e.state.title = ev.Title
	case SetInformation:
		e.state.information = ev.Lines
	case SetInterruptMode:
		e.state.interrupt, exit = e.state.interrupt.OnMode(ev.Mode)
		e.logger.Debugf("Interrupt mode set to %s", ev.Mode)
		if exit {
			return false, true
		}
	default:
		return false, false
	}
	return true, false
}

func (e *Engine) windowSize() (Rect, error) {
	if e.state.userWindowSize != nil {
		return *e.state.userWindowSize, nil
	}
	if e.opts.WindowSize != nil {
		return *e.opts.WindowSize, nil
	}
	w, h, err := e.term.Size()
	if err != nil {
		return Rect{}, fmt.Errorf("get terminal size: %w", err)
	}
	return Rect{Width: w, Height: h}, nil
}

func (e *Engine) draw() error {
	size, err := e.windowSize()
	if err != nil {
		return err
	}
	e.size = size
	e.frames++

	e.entries = e.root.SortedSnapshot(e.entries)
	if !e.state.hideMessages {
		e.messages = e.root.CopyMessages(e.messages)
	}

	lines := e.compose(size)

	if e.frames == 1 || e.frames%e.opts.storeColumnWidthEvery() == 0 || e.state.lastTreeColumnWidth == 0 {
		e.state.nextTreeColumnWidth = e.state.lastTreeColumnWidth
	}

	return e.renderer.Render(lines, size.Width, size.Height)
}
