// Package demo drives a progress tree with a simulated workload.
package demo

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flashingpumpkin/progressdash/internal/log"
	"github.com/flashingpumpkin/progressdash/internal/tree"
)

// Options configures the workload.
type Options struct {
	// Workers is the number of concurrent top-level tasks.
	Workers int
	// Steps is the number of steps each top-level task runs.
	Steps int
	// StepDelay is the time between two steps.
	StepDelay time.Duration
	// Depth is how many levels of sub-tasks a worker nests.
	Depth int
}

// Workload is a set of simulated workers on a progress tree.
type Workload struct {
	opts    Options
	logger  log.Logger
	workers []*tree.Item
}

// New adds one top-level task per worker to root. The tasks exist as soon as
// New returns, so renderers started afterwards never see an empty tree.
func New(root *tree.Root, opts Options, logger log.Logger) *Workload {
	if logger == nil {
		logger = log.Noop
	}
	w := &Workload{
		opts:   opts,
		logger: logger.WithValues(log.Kv{"workload": "demo"}),
	}
	for i := 0; i < opts.Workers; i++ {
		w.workers = append(w.workers, root.AddChild(fmt.Sprintf("worker %d", i+1)))
	}
	return w
}

// Run is New followed by Workload.Run.
func Run(ctx context.Context, root *tree.Root, opts Options, logger log.Logger) error {
	return New(root, opts, logger).Run(ctx)
}

// Run drives all workers concurrently and returns once they are all done or
// ctx is cancelled. Every task of the workload is closed again.
func (w *Workload) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, item := range w.workers {
		i, item := i, item
		g.Go(func() error {
			defer item.Close()

			unit := tree.Items("steps")
			if i%2 == 1 {
				unit = tree.Bytes
			}
			ok := work(ctx, item, w.opts.Steps, unit, w.opts.StepDelay, w.opts.Depth)
			switch {
			case !ok:
				w.logger.Debugf("Worker %d cancelled", i+1)
			case i%3 == 2:
				item.Fail("gave up after retries")
			default:
				item.Done("finished")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("demo workload: %w", err)
	}
	w.logger.Debugf("Workload of %d workers finished", len(w.workers))
	return nil
}

// work advances item through steps and spawns a nested task every few steps
// while depth allows it. It reports false if ctx was cancelled.
func work(ctx context.Context, item *tree.Item, steps int, unit tree.Unit, delay time.Duration, depth int) bool {
	scale := 1
	if unit == tree.Bytes {
		scale = 64 << 10
	}
	item.Init(steps*scale, unit)

	for step := 0; step < steps; step++ {
		if !sleep(ctx, delay) {
			return false
		}

		switch {
		case step == steps/2 && steps > 2:
			item.Blocked("waiting for lock")
		case step == steps/2+1 && steps > 2:
			item.Running()
		}

		if depth > 0 && step%5 == 0 {
			child := item.AddChild(fmt.Sprintf("stage %d", step/5+1))
			ok := work(ctx, child, max(steps/3, 1), tree.Unit{}, delay, depth-1)
			child.Close()
			if !ok {
				return false
			}
			item.Info(fmt.Sprintf("stage %d complete", step/5+1))
		}

		item.IncBy(scale)
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
