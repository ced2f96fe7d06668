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

var srtTimestampRegex = regexp.MustCompile(
	`(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})`,
)

func decodeSRT(r io.Reader) ([]Segment, error) {
	var segments []Segment
	scanner := bufio.NewScanner(r)

	var current *Segment
	var textLines []string
	lineNum := 0

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			segments = append(segments, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			matches := srtTimestampRegex.FindStringSubmatch(line)
			if len(matches) != 9 {
				// cue index line
				continue
			}
			start, err := parseClock(matches[1], matches[2], matches[3], matches[4])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid start timestamp at line %d: %w",
					lineNum,
					err,
				)
			}
			end, err := parseClock(matches[5], matches[6], matches[7], matches[8])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid end timestamp at line %d: %w",
					lineNum,
					err,
				)
			}
			current = &Segment{Start: start, End: end}
			continue
		}

		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT: %w", err)
	}
	return segments, nil
}

func encodeSRT(w io.Writer, segments []Segment) error {
	bw := bufio.NewWriter(w)
	for i, seg := range segments {
		fmt.Fprintf(bw, "%d\n", i+1)
		fmt.Fprintf(bw, "%s --> %s\n",
			formatClock(seg.Start, ','),
			formatClock(seg.End, ','))
		bw.WriteString(seg.Text)
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

func parseClock(hours, minutes, seconds, millis string) (float64, error) {
	parts := []string{hours, minutes, seconds, millis}
	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	totalMillis := ((values[0]*60+values[1])*60+values[2])*1000 + values[3]
	return float64(totalMillis) / 1000, nil
}

// formatClock renders HH:MM:SS<sep>mmm.
func formatClock(seconds float64, sep byte) string {
	total := int(math.Round(seconds * 1000))
	if total < 0 {
		total = 0
	}
	millis := total % 1000
	total /= 1000
	return fmt.Sprintf(
		"%02d:%02d:%02d%c%03d",
		total/3600,
		(total/60)%60,
		total%60,
		sep,
		millis,
	)
}
