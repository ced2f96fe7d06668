// Package config resolves subtrack settings from defaults, a YAML file, a
// .env file and SUBTRACK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mgpai22/subtrack/internal/history"
	"github.com/mgpai22/subtrack/internal/media"
	"github.com/mgpai22/subtrack/internal/timeline"
)

type Config struct {
	Timeline  TimelineConfig  `yaml:"timeline"`
	Server    ServerConfig    `yaml:"server"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Media     MediaConfig     `yaml:"media"`

	// Path is the YAML file that was read, empty when none was.
	Path string `yaml:"-"`
}

type TimelineConfig struct {
	SnapThreshold   float64 `yaml:"snap_threshold"`
	SnapMode        string  `yaml:"snap_mode"`
	MinDuration     float64 `yaml:"min_duration"`
	PasteGap        float64 `yaml:"paste_gap"`
	HistoryCapacity int     `yaml:"history_capacity"`
	ZoomMin         float64 `yaml:"zoom_min"`
	ZoomMax         float64 `yaml:"zoom_max"`
	ZoomInitial     float64 `yaml:"zoom_initial"`
	ZoomStep        float64 `yaml:"zoom_step"`
	EdgeHitZone     float64 `yaml:"edge_hit_zone"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

type ClipboardConfig struct {
	MirrorSystem bool `yaml:"mirror_system"`
}

type MediaConfig struct {
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			SnapThreshold:   timeline.DefaultSnapThreshold,
			SnapMode:        string(timeline.SnapFirst),
			MinDuration:     timeline.DefaultMinDuration,
			PasteGap:        timeline.DefaultPasteGap,
			HistoryCapacity: history.DefaultCapacity,
			ZoomMin:         timeline.DefaultZoomMin,
			ZoomMax:         timeline.DefaultZoomMax,
			ZoomInitial:     timeline.DefaultZoomInitial,
			ZoomStep:        timeline.DefaultZoomStep,
			EdgeHitZone:     timeline.DefaultEdgeHitZone,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			FrameInterval: 16 * time.Millisecond,
		},
		Media: MediaConfig{
			ProbeTimeout: media.DefaultProbeTimeout,
		},
	}
}

// Load builds the configuration. An explicit path must exist; without one
// $HOME/.config/subtrack/config.yaml is read when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		} else {
			cfg.Path = path
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "subtrack", "config.yaml")
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	// fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	t := &c.Timeline
	t.SnapThreshold = envOrDefaultFloat("SUBTRACK_SNAP_THRESHOLD", t.SnapThreshold)
	t.SnapMode = envOrDefault("SUBTRACK_SNAP_MODE", t.SnapMode)
	t.MinDuration = envOrDefaultFloat("SUBTRACK_MIN_DURATION", t.MinDuration)
	t.PasteGap = envOrDefaultFloat("SUBTRACK_PASTE_GAP", t.PasteGap)
	t.HistoryCapacity = envOrDefaultInt("SUBTRACK_HISTORY_CAPACITY", t.HistoryCapacity)
	t.ZoomMin = envOrDefaultFloat("SUBTRACK_ZOOM_MIN", t.ZoomMin)
	t.ZoomMax = envOrDefaultFloat("SUBTRACK_ZOOM_MAX", t.ZoomMax)
	t.ZoomInitial = envOrDefaultFloat("SUBTRACK_ZOOM_INITIAL", t.ZoomInitial)
	t.ZoomStep = envOrDefaultFloat("SUBTRACK_ZOOM_STEP", t.ZoomStep)
	t.EdgeHitZone = envOrDefaultFloat("SUBTRACK_EDGE_HIT_ZONE", t.EdgeHitZone)

	c.Server.Addr = envOrDefault("SUBTRACK_ADDR", c.Server.Addr)
	c.Server.FrameInterval = envOrDefaultDuration(
		"SUBTRACK_FRAME_INTERVAL",
		c.Server.FrameInterval,
	)
	c.Clipboard.MirrorSystem = envOrDefaultBool(
		"SUBTRACK_CLIPBOARD_MIRROR",
		c.Clipboard.MirrorSystem,
	)
	c.Media.ProbeTimeout = envOrDefaultDuration(
		"SUBTRACK_PROBE_TIMEOUT",
		c.Media.ProbeTimeout,
	)
}

// Validate reports every setting the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	t := c.Timeline
	positive := func(ok bool, key string, got any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", key, got))
		}
	}

	positive(t.SnapThreshold > 0, "timeline.snap_threshold", t.SnapThreshold)
	switch timeline.SnapMode(t.SnapMode) {
	case timeline.SnapFirst, timeline.SnapNearest:
	default:
		errs = append(errs, fmt.Errorf(
			"timeline.snap_mode must be %q or %q, got %q",
			timeline.SnapFirst,
			timeline.SnapNearest,
			t.SnapMode,
		))
	}
	positive(t.MinDuration > 0, "timeline.min_duration", t.MinDuration)
	positive(t.PasteGap > 0, "timeline.paste_gap", t.PasteGap)
	positive(t.HistoryCapacity > 0, "timeline.history_capacity", t.HistoryCapacity)
	if t.ZoomMin <= 0 || t.ZoomMax < t.ZoomMin {
		errs = append(errs, fmt.Errorf(
			"timeline zoom range [%v, %v] is invalid",
			t.ZoomMin,
			t.ZoomMax,
		))
	} else if t.ZoomInitial < t.ZoomMin || t.ZoomInitial > t.ZoomMax {
		errs = append(errs, fmt.Errorf(
			"timeline.zoom_initial %v is outside [%v, %v]",
			t.ZoomInitial,
			t.ZoomMin,
			t.ZoomMax,
		))
	}
	positive(t.ZoomStep > 0, "timeline.zoom_step", t.ZoomStep)
	positive(t.EdgeHitZone > 0, "timeline.edge_hit_zone", t.EdgeHitZone)
	positive(
		c.Server.FrameInterval > 0,
		"server.frame_interval",
		c.Server.FrameInterval,
	)
	positive(
		c.Media.ProbeTimeout > 0,
		"media.probe_timeout",
		c.Media.ProbeTimeout,
	)
	return errors.Join(errs...)
}

// TimelineOptions maps the timeline section onto engine options. Ports are
// left for the caller to fill in.
func (c *Config) TimelineOptions() timeline.Options {
	t := c.Timeline
	return timeline.Options{
		SnapThreshold:   t.SnapThreshold,
		SnapMode:        timeline.SnapMode(t.SnapMode),
		MinDuration:     t.MinDuration,
		PasteGap:        t.PasteGap,
		HistoryCapacity: t.HistoryCapacity,
		ZoomMin:         t.ZoomMin,
		ZoomMax:         t.ZoomMax,
		ZoomInitial:     t.ZoomInitial,
		ZoomStep:        t.ZoomStep,
		EdgeHitZone:     t.EdgeHitZone,
	}
}
