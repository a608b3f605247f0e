package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"github.com/flashingpumpkin/progressdash/internal/demo"
	apperrors "github.com/flashingpumpkin/progressdash/internal/errors"
	"github.com/flashingpumpkin/progressdash/internal/infofeed"
	"github.com/flashingpumpkin/progressdash/internal/tree"
	"github.com/flashingpumpkin/progressdash/internal/tui"
)

func newDashboardCmd(f *rootFlags) *cobra.Command {
	var infoFile string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render the workload on a full-screen dashboard",
		Long: `Render the workload on a full-screen dashboard.

Keys:
  q, esc, ctrl+c   quit (postponed while interrupts are deferred)
  j/k, d/u         scroll tasks by 1/10
  J/K, D/U         scroll messages by 1/10
  ` + "`" + `, ~             hide messages, messages fullscreen
  [, {             hide information, maximize information

The information file is YAML with the keys title, information (a list of
{title: ...} or {text: ...}) and interrupt (instantly or deferred). It is
reloaded whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("info-file") {
				cfg.Dashboard.InfoFile = infoFile
			}
			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			root := tree.New()
			workload := demo.New(root, demoOptions(cfg), logger)
			events := make(chan tui.Event, 1)
			ctx := commandContext(cmd)

			var g run.Group
			addSignalActor(&g, ctx, logger)

			// The dashboard stays up after the workload is done, until the user quits.
			addContextActor(&g, ctx, func(ctx context.Context) error {
				if err := workload.Run(ctx); err != nil {
					return err
				}
				<-ctx.Done()
				return nil
			})

			if cfg.Dashboard.InfoFile != "" {
				feed := infofeed.New(cfg.Dashboard.InfoFile, infofeed.WithLogger(logger))
				addContextActor(&g, ctx, func(ctx context.Context) error {
					return feed.Run(ctx, events)
				})
			}

			opts := cfg.DashboardOptions()
			addContextActor(&g, ctx, func(ctx context.Context) error {
				err := tui.RenderWithInput(ctx, root, opts, events, logger)
				if errors.Is(err, apperrors.ErrNotATerminal) {
					return fmt.Errorf("dashboard needs a terminal, try the line command: %w", err)
				}
				return err
			})
			return g.Run()
		},
	}
	cmd.Flags().StringVar(&infoFile, "info-file", "", "YAML file driving the title, information pane and interrupt mode")
	return cmd
}
