package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subtrack/internal/config"
	"github.com/mgpai22/subtrack/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subtrack",
	Short: "Timeline editing engine for subtitle segments",
	Long: `Subtrack edits the timing of subtitle segments the way a timeline editor
does: drag, resize, snap, overlap prevention, copy/paste and undo/redo.

It replays scripted edits against subtitle files, checks files for overlaps,
and serves a websocket timeline for browser front ends.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cfg.Path != "" {
			logger.Debugw("Loaded config", "path", cfg.Path)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(
			&configPath,
			"config",
			"c",
			"",
			"Config file (default $HOME/.config/subtrack/config.yaml)",
		)
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
