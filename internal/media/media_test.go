package media

import (
	"context"
	"path/filepath"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected float64
		wantErr  bool
	}{
		{"format duration", `{"format":{"duration":"12.345000"}}`, 12.345, false},
		{"stream fallback", `{"format":{"duration":"N/A"},"streams":[{"codec_type":"audio","duration":"3.5"}]}`, 3.5, false},
		{"missing everywhere", `{"format":{}}`, 0, true},
		{"garbage number", `{"format":{"duration":"abc"}}`, 0, true},
		{"not json", `ffprobe exploded`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDurationMissingFile(t *testing.T) {
	p := NewFFprobe(0)
	if p.Timeout != DefaultProbeTimeout {
		t.Fatalf("expected default timeout, got %v", p.Timeout)
	}
	if _, err := p.Duration(context.Background(), filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		kind Kind
	}{
		{"clip.MP4", KindVideo},
		{"talk.webm", KindVideo},
		{"voice.flac", KindAudio},
		{"song.Mp3", KindAudio},
		{"subs.srt", KindUnknown},
		{"noext", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := KindOf(tt.path); got != tt.kind {
				t.Errorf("KindOf = %q, expected %q", got, tt.kind)
			}
			if got := IsMediaFile(tt.path); got != (tt.kind != KindUnknown) {
				t.Errorf("IsMediaFile = %v", got)
			}
		})
	}
}
