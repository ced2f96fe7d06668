package subtitle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Decode reads segments in the given format.
func Decode(r io.Reader, format Format) ([]Segment, error) {
	var (
		segments []Segment
		err      error
	)
	switch format {
	case FormatSRT:
		segments, err = decodeSRT(r)
	case FormatVTT:
		segments, err = decodeVTT(r)
	case FormatASS:
		segments, err = decodeASS(r)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&segments)
		if err != nil {
			err = fmt.Errorf("failed to decode segments JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w for reading: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if segments == nil {
		segments = []Segment{}
	}
	return segments, nil
}

// Encode writes segments in the given format.
func Encode(w io.Writer, format Format, segments []Segment) error {
	switch format {
	case FormatSRT:
		return encodeSRT(w, segments)
	case FormatVTT:
		return encodeVTT(w, segments)
	case FormatASS:
		return encodeASS(w, segments, DefaultASSStyle())
	case FormatJSON:
		if segments == nil {
			segments = []Segment{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(segments)
	default:
		return fmt.Errorf("%w for writing: %s", ErrUnsupportedFormat, format)
	}
}

// ReadFile decodes a subtitle file, choosing the format by extension.
func ReadFile(path string) ([]Segment, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Decode(file, format)
}

// WriteFile encodes segments to path, creating parent directories.
func WriteFile(path string, segments []Segment) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, format, segments); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// subtitle format based on file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".ass", ".ssa":
		return FormatASS, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// file extension for a format
func ExtensionFor(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	case FormatJSON:
		return ".json"
	default:
		return ".srt"
	}
}
