package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subtrack/internal/clipboard"
	"github.com/mgpai22/subtrack/internal/media"
	"github.com/mgpai22/subtrack/internal/timeline"
)

func addMediaFlags(cmd *cobra.Command) {
	cmd.Flags().
		String("media", "", "Media file to probe for the timeline duration")
	cmd.Flags().
		Float64("duration", 0, "Timeline duration in seconds (overrides --media)")
}

// mediaDuration resolves the timeline duration from the flags; 0 means
// unknown.
func mediaDuration(
	ctx context.Context,
	cmd *cobra.Command,
	prober media.Prober,
) (float64, error) {
	duration, _ := cmd.Flags().GetFloat64("duration")
	if duration < 0 {
		return 0, fmt.Errorf("duration must not be negative: %v", duration)
	}
	if duration > 0 {
		return duration, nil
	}

	mediaPath, _ := cmd.Flags().GetString("media")
	if mediaPath == "" {
		return 0, nil
	}
	if !media.IsMediaFile(mediaPath) {
		return 0, fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	seconds, err := prober.Duration(ctx, mediaPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get media duration: %w", err)
	}
	logger.Infow("Probed media",
		"media", mediaPath,
		"kind", media.KindOf(mediaPath),
		"duration", seconds,
	)
	return seconds, nil
}

// engineOptions maps the loaded config onto engine options.
func engineOptions() timeline.Options {
	opts := cfg.TimelineOptions()
	opts.Logger = logger
	if cfg.Clipboard.MirrorSystem {
		opts.Clipboard = clipboard.System{}
	}
	return opts
}

// editedPath is where edits land by default: beside the input with an
// .edited suffix, in the input's format.
func editedPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".edited" + ext
}
