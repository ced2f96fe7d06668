package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

var errViolations = errors.New("subtitle file has timing violations")

var checkCmd = &cobra.Command{
	Use:   "check [subtitle_file]",
	Short: "Report overlapping or too short segments",
	Long: `Check a subtitle file for overlapping segments and segments shorter than
the configured minimum duration. Exits non-zero when any are found.

Examples:
  subtrack check talk.srt
  subtrack check talk.vtt --config strict.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	segments, err := subtitle.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read subtitles: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := subtitle.Validate(segments, cfg.Timeline.MinDuration); err != nil {
		fmt.Fprintf(out, "%s: %d segments\n%v\n", args[0], len(segments), err)
		return errViolations
	}
	fmt.Fprintf(out, "%s: %d segments, no violations\n", args[0], len(segments))
	return nil
}
