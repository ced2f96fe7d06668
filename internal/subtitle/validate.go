package subtitle

import (
	"errors"
	"fmt"
)

// Validate reports every overlapping pair and every segment shorter than
// minDuration. The result is nil for a valid list.
func Validate(segments []Segment, minDuration float64) error {
	var errs []error
	for i, seg := range segments {
		if seg.End <= seg.Start {
			errs = append(errs, fmt.Errorf(
				"segment %d: end %.3f is not after start %.3f",
				i, seg.End, seg.Start,
			))
		} else if seg.Duration() < minDuration-Tolerance {
			errs = append(errs, fmt.Errorf(
				"segment %d: duration %.3f is below minimum %.3f",
				i, seg.Duration(), minDuration,
			))
		}
		for j := i + 1; j < len(segments); j++ {
			if seg.Overlaps(segments[j]) {
				errs = append(errs, fmt.Errorf(
					"segments %d and %d overlap: [%.3f, %.3f) and [%.3f, %.3f)",
					i, j, seg.Start, seg.End, segments[j].Start, segments[j].End,
				))
			}
		}
	}
	return errors.Join(errs...)
}
