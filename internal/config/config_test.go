package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mgpai22/subtrack/internal/timeline"
)

// isolate points HOME and the working directory at an empty temp dir so no
// real config or .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	opts := cfg.TimelineOptions()
	if diff := cmp.Diff(timeline.DefaultOptions(), opts); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHomeConfig(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".config", "subtrack", "config.yaml")
	writeFile(t, path, `
timeline:
  snap_threshold: 0.2
  snap_mode: nearest
server:
  frame_interval: 33ms
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %q, got %q", path, cfg.Path)
	}
	if cfg.Timeline.SnapThreshold != 0.2 || cfg.Timeline.SnapMode != "nearest" {
		t.Fatalf("unexpected timeline config: %+v", cfg.Timeline)
	}
	if cfg.Server.FrameInterval != 33*time.Millisecond || cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Timeline.MinDuration != timeline.DefaultMinDuration {
		t.Fatalf("absent keys must keep defaults, got %v", cfg.Timeline.MinDuration)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing explicit config")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "subtrack.yaml")
	writeFile(t, path, "timeline:\n  zoom_step: 5\nserver:\n  addr: \":9000\"\n")

	t.Setenv("SUBTRACK_ZOOM_STEP", "25")
	t.Setenv("SUBTRACK_HISTORY_CAPACITY", "10")
	t.Setenv("SUBTRACK_CLIPBOARD_MIRROR", "yes")
	t.Setenv("SUBTRACK_FRAME_INTERVAL", "40")
	t.Setenv("SUBTRACK_PROBE_TIMEOUT", "2s")
	t.Setenv("SUBTRACK_SNAP_THRESHOLD", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Timeline.ZoomStep != 25 || cfg.Timeline.HistoryCapacity != 10 {
		t.Fatalf("env must win over the file: %+v", cfg.Timeline)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("file value lost: %q", cfg.Server.Addr)
	}
	if !cfg.Clipboard.MirrorSystem {
		t.Fatalf("expected clipboard mirror enabled")
	}
	if cfg.Server.FrameInterval != 40*time.Millisecond || cfg.Media.ProbeTimeout != 2*time.Second {
		t.Fatalf("unexpected durations: %v %v", cfg.Server.FrameInterval, cfg.Media.ProbeTimeout)
	}
	if cfg.Timeline.SnapThreshold != timeline.DefaultSnapThreshold {
		t.Fatalf("unparsable env must fall back, got %v", cfg.Timeline.SnapThreshold)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "SUBTRACK_EDGE_HIT_ZONE=12\n")
	t.Cleanup(func() { os.Unsetenv("SUBTRACK_EDGE_HIT_ZONE") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Timeline.EdgeHitZone != 12 {
		t.Fatalf("expected .env value 12, got %v", cfg.Timeline.EdgeHitZone)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad snap mode", func(c *Config) { c.Timeline.SnapMode = "closest" }, "snap_mode"},
		{"zero min duration", func(c *Config) { c.Timeline.MinDuration = 0 }, "min_duration"},
		{"zero paste gap", func(c *Config) { c.Timeline.PasteGap = 0 }, "paste_gap"},
		{"inverted zoom range", func(c *Config) { c.Timeline.ZoomMax = 10 }, "zoom range"},
		{"initial zoom outside range", func(c *Config) { c.Timeline.ZoomInitial = 500 }, "zoom_initial"},
		{"zero frame interval", func(c *Config) { c.Server.FrameInterval = 0 }, "frame_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Fatalf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}
