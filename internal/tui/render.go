package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/cancelreader"

	apperrors "github.com/flashingpumpkin/progressdash/internal/errors"
	"github.com/flashingpumpkin/progressdash/internal/log"
	"github.com/flashingpumpkin/progressdash/internal/screen"
)

// RenderWithInput takes over the process terminal and runs the dashboard
// until a quit is accepted, events is closed or ctx is done. The terminal is
// restored before returning. Setup failures are returned before anything is drawn.
func RenderWithInput(ctx context.Context, root Source, opts Options, events <-chan Event, logger log.Logger) error {
	return renderOn(ctx, os.Stdin, os.Stdout, root, opts, events, logger)
}

// Render is RenderWithInput without external events.
func Render(ctx context.Context, root Source, opts Options, logger log.Logger) error {
	return RenderWithInput(ctx, root, opts, nil, logger)
}

func renderOn(ctx context.Context, in, out *os.File, root Source, opts Options, events <-chan Event, logger log.Logger) (err error) {
	if logger == nil {
		logger = log.Noop
	}
	if !screen.IsTerminal(out) {
		return apperrors.ErrNotATerminal
	}

	applyColorEnv()
	opts.Theme = ResolveTheme(opts.Theme)

	term, err := screen.OpenProcessTerminal(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := term.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("restore terminal: %w", cerr)
		}
	}()

	input, err := cancelreader.NewReader(term.Input())
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer input.Close()

	bridge := StartKeyboardBridge(input)
	defer func() {
		bridge.Stop()
		input.Cancel()
	}()

	engine := NewEngine(root, term, opts, WithKeys(bridge.Keys()), WithLogger(logger))
	if err := engine.Run(ctx, events); err != nil {
		return err
	}

	select {
	case _, ok := <-bridge.Keys():
		if ok {
			break
		}
		if berr := bridge.Err(); berr != nil && !errors.Is(berr, io.EOF) && !errors.Is(berr, cancelreader.ErrCanceled) {
			logger.Warningf("Keyboard closed: %v", berr)
		}
	default:
	}
	logger.Debugf("Dashboard stopped after %d frames, %d skipped", engine.Frames(), engine.Skipped())
	return nil
}
