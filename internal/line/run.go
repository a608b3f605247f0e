package line

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"

	apperrors "github.com/flashingpumpkin/progressdash/internal/errors"
	"github.com/flashingpumpkin/progressdash/internal/log"
)

// Run renders root to out at opts.FramesPerSecond until ctx is done or the
// tree becomes empty. An empty tree is a normal end and returns nil.
// A last frame is drawn on cancellation and the cursor is left below it.
func Run(ctx context.Context, out io.Writer, root Source, opts Options, logger log.Logger) error {
	if logger == nil {
		logger = log.Noop
	}
	logger = logger.WithValues(log.Kv{"renderer": "line"})

	if opts.InitialDelay > 0 {
		timer := time.NewTimer(opts.InitialDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}

	if opts.HideCursor && opts.OutputIsTerminal {
		if _, err := io.WriteString(out, ansi.HideCursor); err != nil {
			return err
		}
		defer io.WriteString(out, ansi.ShowCursor) //nolint:errcheck
	}

	state := NewState()
	ticker := time.NewTicker(opts.period())
	defer ticker.Stop()

	for {
		if err := Render(out, root, state, opts); err != nil {
			if errors.Is(err, apperrors.ErrProgressEmpty) {
				logger.Debugf("Progress is empty after %d frames, stopping", state.Ticks())
				return state.Finish(out)
			}
			return err
		}

		select {
		case <-ctx.Done():
			err := Render(out, root, state, opts)
			if err != nil && !errors.Is(err, apperrors.ErrProgressEmpty) {
				return err
			}
			logger.Debugf("Stopped after %d frames", state.Ticks())
			return state.Finish(out)
		case <-ticker.C:
		}
	}
}
