package subtitle

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeSRT(t *testing.T) {
	content := "\ufeff1\n" +
		"00:00:01,000 --> 00:00:04,000\n" +
		"Hello, world!\n" +
		"\n" +
		"2\n" +
		"00:00:05,500 --> 00:00:08,200\n" +
		"This is a test.\n" +
		"With multiple lines.\n" +
		"\n" +
		"3\n" +
		"00:00:10,000 --> 00:00:12,500\n" +
		"Final subtitle.\n"

	got, err := Decode(strings.NewReader(content), FormatSRT)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []Segment{
		{Start: 1, End: 4, Text: "Hello, world!"},
		{Start: 5.5, End: 8.2, Text: "This is a test.\nWith multiple lines."},
		{Start: 10, End: 12.5, Text: "Final subtitle."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeVTT(t *testing.T) {
	content := `WEBVTT

NOTE this block is skipped
and so is this line

1
00:00:01.000 --> 00:00:04.000
Hello, world!

intro
00:05.500 --> 00:08.200 align:start
This is a test.
With multiple lines.

00:00:10.000 --> 00:00:12.500
No cue identifier.
`
	got, err := Decode(strings.NewReader(content), FormatVTT)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []Segment{
		{Start: 1, End: 4, Text: "Hello, world!"},
		{Start: 5.5, End: 8.2, Text: "This is a test.\nWith multiple lines."},
		{Start: 10, End: 12.5, Text: "No cue identifier."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeASS(t *testing.T) {
	content := "\ufeff[Script Info]\n" +
		"Title: test\n" +
		"\n" +
		"[V4+ Styles]\n" +
		"Format: Name, Fontname\n" +
		"Style: Default,Arial\n" +
		"\n" +
		"[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Comment: 0,0:00:00.00,0:00:01.00,Default,,0,0,0,,ignored\n" +
		"Dialogue: 0,0:00:01.00,0:00:04.25,Default,,0,0,0,,Hello, world!\n" +
		"Dialogue: 0,1:01:01.50,1:01:02.00,Default,,0,0,0,,{\\an8\\i1}two\\Nlines\n"

	got, err := Decode(strings.NewReader(content), FormatASS)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []Segment{
		{Start: 1, End: 4.25, Text: "Hello, world!"},
		{Start: 3661.5, End: 3662, Text: "two\nlines"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeASSErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no format line", "[Events]\nDialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,a\n"},
		{"no events section", "[Script Info]\nTitle: x\n"},
		{"missing text column", "[Events]\nFormat: Layer, Start, End\n"},
		{"bad timestamp", "[Events]\nFormat: Start, End, Text\nDialogue: 0:00:xx.00,0:00:02.00,a\n"},
		{"too few fields", "[Events]\nFormat: Start, End, Text\nDialogue: 0:00:01.00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.content), FormatASS); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader(""), Format("sbv"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestWriteReadRoundTripASS(t *testing.T) {
	segments := []Segment{
		{Start: 0.5, End: 2, Text: "first, with comma"},
		{Start: 2.25, End: 3.1, Text: "second\nline"},
	}
	path := filepath.Join(t.TempDir(), "talk.ass")

	if err := WriteFile(path, segments); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(segments, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeFormats(t *testing.T) {
	segments := []Segment{
		{Start: 1, End: 4.25, Text: "Hello"},
		{Start: 3661.5, End: 3662, Text: "two\nlines"},
	}

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatSRT, []string{"1\n00:00:01,000 --> 00:00:04,250\nHello\n", "01:01:01,500 --> 01:01:02,000"}},
		{FormatVTT, []string{"WEBVTT\n", "00:00:01.000 --> 00:00:04.250", "two\nlines"}},
		{FormatASS, []string{"[Events]", "Dialogue: 0,0:00:01.00,0:00:04.25,Default,,0,0,0,,Hello", `two\Nlines`}},
		{FormatJSON, []string{`"start": 3661.5`, `"text": "Hello"`}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, tt.format, segments); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestWriteReadRoundTripKeepsWords(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Text: "a b", Words: []Word{{Word: "a", Start: 0, End: 1}, {Word: "b", Start: 1, End: 2}}},
		{Start: 2.5, End: 3, Text: "c"},
	}
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	if err := WriteFile(path, segments); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff(segments, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFileSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.srt")
	content := "1\n00:00:00,000 --> 00:00:02,000\na\n\n2\n00:00:02,000 --> 00:00:04,000\nb\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != 2 || got[1].Text != "b" || got[1].End != 4 {
		t.Errorf("unexpected segments: %+v", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.srt", FormatSRT, false},
		{"a.VTT", FormatVTT, false},
		{"a.ssa", FormatASS, false},
		{"dir/a.json", FormatJSON, false},
		{"a.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
