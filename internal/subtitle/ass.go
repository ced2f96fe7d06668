package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var assLeadingTagsRegex = regexp.MustCompile(`^(\{[^}]*\})+`)

// ASS output settings for the default style block.
type ASSStyle struct {
	Title    string
	FontName string
	FontSize int
}

func DefaultASSStyle() ASSStyle {
	return ASSStyle{
		Title:    "subtrack",
		FontName: "Arial",
		FontSize: 20,
	}
}

func encodeASS(w io.Writer, segments []Segment, style ASSStyle) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("[Script Info]\n")
	fmt.Fprintf(bw, "Title: %s\n", style.Title)
	bw.WriteString("ScriptType: v4.00+\n")
	bw.WriteString("Collisions: Normal\n")
	bw.WriteString("PlayDepth: 0\n\n")

	bw.WriteString("[V4+ Styles]\n")
	bw.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, " +
		"SecondaryColour, OutlineColour, BackColour, Bold, Italic, " +
		"Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, " +
		"BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, " +
		"MarginV, Encoding\n")
	fmt.Fprintf(bw, "Style: Default,%s,%d,"+
		"&H00FFFFFF,&H000000FF,&H00000000,&H00000000,"+
		"0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		style.FontName, style.FontSize)

	bw.WriteString("[Events]\n")
	bw.WriteString("Format: Layer, Start, End, Style, Name, " +
		"MarginL, MarginR, MarginV, Effect, Text\n")
	for _, seg := range segments {
		fmt.Fprintf(bw, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSClock(seg.Start),
			formatASSClock(seg.End),
			strings.ReplaceAll(seg.Text, "\n", "\\N"))
	}
	return bw.Flush()
}

// H:MM:SS.cc
func formatASSClock(seconds float64) string {
	total := int(math.Round(seconds * 1000))
	if total < 0 {
		total = 0
	}
	centis := (total % 1000) / 10
	total /= 1000
	return fmt.Sprintf("%d:%02d:%02d.%02d", total/3600, (total/60)%60, total%60, centis)
}

// decodeASS reads the Dialogue lines of the [Events] section. Timing comes
// from the Start and End columns named by the Format line, leading override
// tags are dropped and \N becomes a newline.
func decodeASS(r io.Reader) ([]Segment, error) {
	var (
		segments  []Segment
		columns   []string
		textIdx   = -1
		startIdx  = -1
		endIdx    = -1
		inEvents  bool
		sawFormat bool
	)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
			inEvents = strings.EqualFold(section, "events")
			continue
		}
		if !inEvents {
			continue
		}

		if strings.HasPrefix(trimmed, "Format:") {
			columns = strings.Split(strings.TrimPrefix(trimmed, "Format:"), ",")
			textIdx, startIdx, endIdx = -1, -1, -1
			for i, col := range columns {
				col = strings.TrimSpace(col)
				columns[i] = col
				switch strings.ToLower(col) {
				case "text":
					textIdx = i
				case "start":
					startIdx = i
				case "end":
					endIdx = i
				}
			}
			if textIdx == -1 || startIdx == -1 || endIdx == -1 {
				return nil, fmt.Errorf(
					"ASS Format line needs Start, End and Text columns",
				)
			}
			sawFormat = true
			continue
		}

		if !strings.HasPrefix(trimmed, "Dialogue:") {
			continue
		}
		if !sawFormat {
			return nil, fmt.Errorf(
				"line %d: Dialogue before Format line", lineNum,
			)
		}

		content := strings.TrimSpace(strings.TrimPrefix(trimmed, "Dialogue:"))
		fields := splitASSFields(content, len(columns))
		if len(fields) < len(columns) {
			return nil, fmt.Errorf(
				"line %d: expected %d fields, got %d",
				lineNum,
				len(columns),
				len(fields),
			)
		}

		start, err := parseASSClock(fields[startIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid start: %w", lineNum, err)
		}
		end, err := parseASSClock(fields[endIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid end: %w", lineNum, err)
		}

		text := fields[textIdx]
		text = text[len(assLeadingTagsRegex.FindString(text)):]
		text = strings.ReplaceAll(text, "\\N", "\n")
		text = strings.ReplaceAll(text, "\\n", "\n")

		segments = append(segments, Segment{Start: start, End: end, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASS: %w", err)
	}
	if !sawFormat {
		return nil, fmt.Errorf("ASS input missing Format line in [Events] section")
	}
	return segments, nil
}

// splitASSFields splits on commas, leaving any commas inside the last
// field (Text) untouched.
func splitASSFields(content string, numFields int) []string {
	if numFields <= 0 {
		return nil
	}
	parts := make([]string, 0, numFields)
	remaining := content
	for i := 0; i < numFields-1; i++ {
		idx := strings.Index(remaining, ",")
		if idx == -1 {
			break
		}
		parts = append(parts, remaining[:idx])
		remaining = remaining[idx+1:]
	}
	return append(parts, remaining)
}

// parseASSClock reads H:MM:SS.cc
func parseASSClock(ts string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	secParts := strings.Split(parts[2], ".")
	if len(secParts) != 2 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	values := make([]int, 4)
	for i, part := range []string{parts[0], parts[1], secParts[0], secParts[1]} {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
		}
		values[i] = v
	}
	totalMillis := ((values[0]*60+values[1])*60+values[2])*1000 + values[3]*10
	return float64(totalMillis) / 1000, nil
}
