package timeline

import (
	"math"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

// SnapResolver pulls a time value onto a nearby candidate point.
type SnapResolver struct {
	Threshold float64
	Mode      SnapMode
}

// Resolve returns the matching candidate, or value when none lies within
// the threshold.
func (r SnapResolver) Resolve(value float64, points []float64) float64 {
	best := value
	bestDist := math.Inf(1)
	for _, point := range points {
		dist := math.Abs(value - point)
		if dist >= r.Threshold {
			continue
		}
		if r.Mode != SnapNearest {
			return point
		}
		if dist < bestDist {
			best, bestDist = point, dist
		}
	}
	return best
}

// SnapPoints lists candidates in scan order: start and end of every segment
// except exclude, in store order, then 0, then duration when known.
func SnapPoints(segments []subtitle.Segment, exclude int, duration float64) []float64 {
	points := make([]float64, 0, len(segments)*2+2)
	for i, seg := range segments {
		if i == exclude {
			continue
		}
		points = append(points, seg.Start, seg.End)
	}
	points = append(points, 0)
	if duration > 0 {
		points = append(points, duration)
	}
	return points
}
