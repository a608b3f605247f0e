package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// DefaultConfigTemplate is the commented template written by progressdash init.
const DefaultConfigTemplate = `# progressdash configuration
# Every key is optional; commented values are the defaults.

# theme = "auto"          # auto, dark or light
# log_file = ""           # logs are discarded unless a file is set
# debug = false

[line]
# min_level = 1
# max_level = 6
# keep_running_if_empty = false
# colored = true
# timestamp = false
# fps = 6.0
# initial_delay = "0s"
# hide_cursor = true

[dashboard]
# title = "Progress Dashboard"
# fps = 10.0
# recompute_column_width_every_nth_frame = 1
# width = 0               # width and height override the terminal size
# height = 0
# redraw_only_on_state_change = false
# info_file = ""

[demo]
# workers = 4
# steps = 30
# step_delay = "80ms"
# depth = 2
`

func newInitCmd(f *rootFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Create a default .progressdash/config.toml configuration file in the
working directory.

If the configuration file already exists, the command will fail unless --force is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, f.workingDir, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration file")
	return cmd
}

func runInit(cmd *cobra.Command, workingDir string, force bool) error {
	configDir := filepath.Join(workingDir, ".progressdash")
	configPath := filepath.Join(configDir, "config.toml")

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
