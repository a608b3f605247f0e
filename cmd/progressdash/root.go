package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oklog/run"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flashingpumpkin/progressdash/internal/config"
	"github.com/flashingpumpkin/progressdash/internal/demo"
	"github.com/flashingpumpkin/progressdash/internal/log"
	loglogrus "github.com/flashingpumpkin/progressdash/internal/log/logrus"
)

// Version is the application version.
const Version = "0.1.0"

// rootFlags holds the flags shared by every subcommand.
type rootFlags struct {
	configFile string
	workingDir string
	logFile    string
	debug      bool
	theme      string
	workers    int
	steps      int
	stepDelay  time.Duration
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "progressdash",
		Short: "Render a live progress tree in the terminal",
		Long: `progressdash renders a tree of concurrently updated tasks.

The line renderer redraws a block of lines in place and scrolls messages
above it. The dashboard takes over the whole terminal and can be driven
with the keyboard and an information file.

A simulated workload feeds the tree so both renderers can be tried out.

CONFIGURATION FILE

progressdash can be configured via a TOML file. By default, it looks for
.progressdash/config.toml in the working directory. Use --config to specify
a different path.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "Path to config file (default: .progressdash/config.toml)")
	pf.StringVarP(&f.workingDir, "working-dir", "d", ".", "Directory holding .progressdash/config.toml")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&f.theme, "theme", "", "Colour theme: auto, dark or light")
	pf.IntVarP(&f.workers, "workers", "w", 0, "Number of simulated workers")
	pf.IntVar(&f.steps, "steps", 0, "Number of steps per simulated worker")
	pf.DurationVar(&f.stepDelay, "step-delay", 0, "Time between two simulated steps")

	cmd.AddCommand(newLineCmd(f))
	cmd.AddCommand(newDashboardCmd(f))
	cmd.AddCommand(newInitCmd(f))
	return cmd
}

// loadConfig merges defaults, the config file and the flags set on cmd, in that order.
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg := config.NewConfig()

	var (
		fc  *config.FileConfig
		err error
	)
	if f.configFile != "" {
		fc, err = config.LoadFileConfigFrom(f.configFile)
	} else {
		fc, err = config.LoadFileConfig(f.workingDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	fc.Apply(cfg)

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}
	if flags.Changed("theme") {
		cfg.Theme = f.theme
	}
	if flags.Changed("workers") {
		cfg.Demo.Workers = f.workers
	}
	if flags.Changed("steps") {
		cfg.Demo.Steps = f.steps
	}
	if flags.Changed("step-delay") {
		cfg.Demo.StepDelay = f.stepDelay
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns a logrus logger writing to cfg.LogFile, or a no-op logger
// when no file is configured. The terminal belongs to the renderers.
func newLogger(cfg *config.Config) (log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.Noop, func() {}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logrusLog := logrus.New()
	logrusLog.Out = file
	logrusLog.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	if cfg.Debug {
		logrusLog.SetLevel(logrus.DebugLevel)
	}

	logger := loglogrus.NewLogrus(logrus.NewEntry(logrusLog)).WithValues(log.Kv{
		"version": Version,
	})
	logger.Debugf("Debug level is enabled")

	return logger, func() { _ = file.Close() }, nil
}

func demoOptions(cfg *config.Config) demo.Options {
	return demo.Options{
		Workers:   cfg.Demo.Workers,
		Steps:     cfg.Demo.Steps,
		StepDelay: cfg.Demo.StepDelay,
		Depth:     cfg.Demo.Depth,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// addSignalActor stops the group on SIGINT or SIGTERM.
func addSignalActor(g *run.Group, parent context.Context, logger log.Logger) {
	ctx, cancel := setupSignalHandler(parent)
	g.Add(
		func() error {
			<-ctx.Done()
			logger.Debugf("Termination signal received")
			return nil
		},
		func(_ error) {
			cancel()
		},
	)
}

// addContextActor runs fn with a context that is cancelled when the group stops.
func addContextActor(g *run.Group, parent context.Context, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(parent)
	g.Add(
		func() error {
			return fn(ctx)
		},
		func(_ error) {
			cancel()
		},
	)
}
