package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subtrack/internal/input"
	"github.com/mgpai22/subtrack/internal/media"
	"github.com/mgpai22/subtrack/internal/subtitle"
	"github.com/mgpai22/subtrack/internal/timeline"
)

var applyCmd = &cobra.Command{
	Use:   "apply [subtitle_file]",
	Short: "Replay a script of timeline edits against a subtitle file",
	Long: `Replay recorded pointer, keyboard and edit events from a YAML script
against the segments of a subtitle file and write the committed result.

Every drag ends in exactly one commit, exactly as in the interactive
timeline, so the output never contains overlapping segments.

Examples:
  subtrack apply talk.srt --script edits.yaml
  subtrack apply talk.vtt --script edits.yaml -o talk.fixed.ass
  subtrack apply talk.srt --script edits.yaml --media talk.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringP("script", "s", "", "YAML edit script to replay")
	_ = applyCmd.MarkFlagRequired("script")
	addMediaFlags(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	subsPath := args[0]
	ctx := context.Background()

	scriptPath, _ := cmd.Flags().GetString("script")
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = editedPath(subsPath)
	}

	segments, err := subtitle.ReadFile(subsPath)
	if err != nil {
		return fmt.Errorf("failed to read subtitles: %w", err)
	}
	script, err := input.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	duration, err := mediaDuration(ctx, cmd, media.NewFFprobe(cfg.Media.ProbeTimeout))
	if err != nil {
		return err
	}

	logger.Infow("Replaying edits",
		"input", subsPath,
		"script", scriptPath,
		"segments", len(segments),
		"events", len(script.Events),
	)

	result, err := replay(segments, script, engineOptions(), duration)
	if err != nil {
		return err
	}

	if err := subtitle.WriteFile(outputPath, result.Segments); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Edits applied: %s\n", absOutput)
	fmt.Fprintf(
		cmd.OutOrStdout(),
		"  Events: %d (%d applied)\n",
		result.Summary.Events,
		result.Summary.Applied,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "  Segments: %d\n", len(result.Segments))
	fmt.Fprintf(cmd.OutOrStdout(), "  History: %d\n", result.History)
	return nil
}

type replayResult struct {
	Segments []subtitle.Segment
	Summary  input.Summary
	History  int
}

func replay(
	segments []subtitle.Segment,
	script *input.Script,
	opts timeline.Options,
	duration float64,
) (replayResult, error) {
	frames := timeline.NewFrameQueue()
	opts.Frames = frames
	engine := timeline.New(segments, opts)
	defer engine.Close()

	if duration > 0 {
		engine.SyncPlayback(0, duration)
	}
	summary, err := script.Run(engine, frames)
	if err != nil {
		return replayResult{}, fmt.Errorf("failed to replay script: %w", err)
	}
	return replayResult{
		Segments: engine.Segments(),
		Summary:  summary,
		History:  engine.HistoryLen(),
	}, nil
}
