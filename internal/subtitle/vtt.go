package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2,}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
)

func decodeVTT(r io.Reader) ([]Segment, error) {
	var segments []Segment
	scanner := bufio.NewScanner(r)

	var current *Segment
	var textLines []string
	lineNum := 0
	headerParsed := false

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			segments = append(segments, *current)
		}
		current = nil
		textLines = nil
	}

	skipBlock := func() {
		for scanner.Scan() {
			lineNum++
			if strings.TrimSpace(scanner.Text()) == "" {
				break
			}
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if !headerParsed && strings.HasPrefix(trimmed, "WEBVTT") {
			headerParsed = true
			continue
		}

		if current == nil && (strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE")) {
			skipBlock()
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		start, end, ok, err := parseVTTTiming(line)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp at line %d: %w", lineNum, err)
		}
		if ok {
			flush()
			current = &Segment{Start: start, End: end}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
		// lines before a timing line are cue identifiers
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT: %w", err)
	}
	return segments, nil
}

func parseVTTTiming(line string) (start, end float64, ok bool, err error) {
	if m := vttTimestampRegex.FindStringSubmatch(line); len(m) == 9 {
		if start, err = parseClock(m[1], m[2], m[3], m[4]); err != nil {
			return 0, 0, false, err
		}
		if end, err = parseClock(m[5], m[6], m[7], m[8]); err != nil {
			return 0, 0, false, err
		}
		return start, end, true, nil
	}
	if m := vttShortTimestampRegex.FindStringSubmatch(line); len(m) == 7 {
		if start, err = parseClock("00", m[1], m[2], m[3]); err != nil {
			return 0, 0, false, err
		}
		if end, err = parseClock("00", m[4], m[5], m[6]); err != nil {
			return 0, 0, false, err
		}
		return start, end, true, nil
	}
	return 0, 0, false, nil
}

func encodeVTT(w io.Writer, segments []Segment) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("WEBVTT\n\n")
	for i, seg := range segments {
		fmt.Fprintf(bw, "%d\n", i+1)
		fmt.Fprintf(bw, "%s --> %s\n",
			formatClock(seg.Start, '.'),
			formatClock(seg.End, '.'))
		bw.WriteString(seg.Text)
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}
