package main

import (
	"context"
	"os"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"github.com/flashingpumpkin/progressdash/internal/demo"
	"github.com/flashingpumpkin/progressdash/internal/line"
	"github.com/flashingpumpkin/progressdash/internal/screen"
	"github.com/flashingpumpkin/progressdash/internal/tree"
)

func newLineCmd(f *rootFlags) *cobra.Command {
	var timestamp bool
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Render the workload as a block of lines redrawn in place",
		Long: `Render the workload as a block of lines redrawn in place.

Messages are printed above the block and scroll with the terminal output.
When the output is not a terminal only messages are written, so the
command can be piped into a file.

The command ends when the workload is done or on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timestamp") {
				cfg.Line.Timestamp = timestamp
			}
			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			out := cmd.OutOrStdout()
			isTerminal := false
			if file, ok := out.(*os.File); ok {
				isTerminal = screen.IsTerminal(file)
			}
			opts := cfg.LineOptions(isTerminal)

			root := tree.New()
			workload := demo.New(root, demoOptions(cfg), logger)
			ctx := commandContext(cmd)

			var g run.Group
			addSignalActor(&g, ctx, logger)
			addContextActor(&g, ctx, workload.Run)
			addContextActor(&g, ctx, func(ctx context.Context) error {
				return line.Run(ctx, out, root, opts, logger)
			})
			return g.Run()
		},
	}
	cmd.Flags().BoolVar(&timestamp, "timestamp", false, "Prefix messages with their time")
	return cmd
}
