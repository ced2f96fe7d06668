// Package media reads what the timeline needs to know about a media file.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const DefaultProbeTimeout = 10 * time.Second

// Prober reports the duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFprobe probes files with the ffprobe binary found on PATH.
type FFprobe struct {
	Timeout time.Duration
}

func NewFFprobe(timeout time.Duration) *FFprobe {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &FFprobe{Timeout: timeout}
}

// JSON output from ffprobe
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

func (p *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file not found: %s", path)
		}
		return 0, fmt.Errorf("failed to stat media: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	timeout := p.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{"v": "quiet"})
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseDuration([]byte(out))
}

func parseDuration(data []byte) (float64, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	// containers without a format duration still carry one per stream
	candidates := []string{probe.Format.Duration}
	for _, s := range probe.Streams {
		candidates = append(candidates, s.Duration)
	}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" || c == "N/A" {
			continue
		}
		seconds, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse duration %q: %w", c, err)
		}
		if seconds > 0 {
			return seconds, nil
		}
	}
	return 0, errors.New("ffprobe reported no duration")
}
