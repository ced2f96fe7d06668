package timeline

import (
	"math"
	"sort"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

const tolerance = subtitle.Tolerance

// Range is a half-open [Start, End) interval in seconds.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (r Range) Duration() float64 { return r.End - r.Start }

func (r Range) shift(delta float64) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

func (r Range) intersects(seg subtitle.Segment) bool {
	return r.Start < seg.End-tolerance && r.End > seg.Start+tolerance
}

func rangeOf(seg subtitle.Segment) Range {
	return Range{Start: seg.Start, End: seg.End}
}

// Collides returns the first segment other than exclude that intersects r,
// or -1.
func Collides(r Range, segments []subtitle.Segment, exclude int) int {
	for i, seg := range segments {
		if i != exclude && r.intersects(seg) {
			return i
		}
	}
	return -1
}

// OverlapGuard keeps a proposed range clear of every other segment.
type OverlapGuard struct {
	MinDuration float64
}

// Valid reports whether r is long enough, not negative and collision free.
func (g OverlapGuard) Valid(r Range, segments []subtitle.Segment, exclude int) bool {
	return r.Start >= -tolerance &&
		r.Duration() >= g.MinDuration-tolerance &&
		Collides(r, segments, exclude) < 0
}

// Soft nudges r off each intersecting neighbour in a single pass. It is
// cheap and may leave an overlap behind when neighbours are packed tightly.
// The second result is the first neighbour that forced a nudge, or -1.
func (g OverlapGuard) Soft(
	mode Mode,
	r Range,
	segments []subtitle.Segment,
	exclude int,
) (Range, int) {
	hit := -1
	for i, seg := range segments {
		if i == exclude || !r.intersects(seg) {
			continue
		}
		if hit < 0 {
			hit = i
		}

		switch mode {
		case ModeMove:
			left := r.End - seg.Start
			right := seg.End - r.Start
			if left <= right && r.Start-left >= -tolerance {
				r = r.shift(-left)
			} else {
				r = r.shift(right)
			}
		case ModeResizeStart:
			r.Start = math.Max(r.Start, seg.End)
			if r.Start > r.End-g.MinDuration {
				r.Start = r.End - g.MinDuration
			}
		case ModeResizeEnd:
			r.End = math.Min(r.End, seg.Start)
			if r.End < r.Start+g.MinDuration {
				r.End = r.Start + g.MinDuration
			}
		}
	}
	return r, hit
}

// Hard resolves r against the authoritative store for a commit. Nudging is
// repeated until stable; a move that still collides is placed into the
// nearest free gap, shortened to the whole gap when nothing fits its
// duration. When no valid range exists it returns origin and false.
// limit bounds where a move may end; pass +Inf when unbounded.
func (g OverlapGuard) Hard(
	mode Mode,
	r, origin Range,
	segments []subtitle.Segment,
	exclude int,
	limit float64,
) (Range, bool) {
	candidate := r
	for pass := 0; pass <= len(segments); pass++ {
		if Collides(r, segments, exclude) < 0 {
			break
		}
		r, _ = g.Soft(mode, r, segments, exclude)
	}
	if g.Valid(r, segments, exclude) && (mode != ModeMove || r.End <= limit+tolerance) {
		return r, true
	}

	if mode == ModeMove {
		if placed, ok := g.fitGap(candidate, segments, exclude, limit); ok {
			return placed, true
		}
	}
	return origin, false
}

type gap struct {
	start, end float64
}

func freeGaps(segments []subtitle.Segment, exclude int, limit float64) []gap {
	others := make([]Range, 0, len(segments))
	for i, seg := range segments {
		if i != exclude {
			others = append(others, rangeOf(seg))
		}
	}
	sort.Slice(others, func(a, b int) bool { return others[a].Start < others[b].Start })

	var gaps []gap
	cursor := 0.0
	for _, o := range others {
		if o.Start > cursor {
			gaps = append(gaps, gap{start: cursor, end: math.Min(o.Start, limit)})
		}
		cursor = math.Max(cursor, o.End)
		if cursor >= limit {
			break
		}
	}
	if cursor < limit {
		gaps = append(gaps, gap{start: cursor, end: limit})
	}
	return gaps
}

func (g OverlapGuard) fitGap(
	r Range,
	segments []subtitle.Segment,
	exclude int,
	limit float64,
) (Range, bool) {
	dur := r.Duration()
	gaps := freeGaps(segments, exclude, limit)

	best, found := Range{}, false
	bestShift := math.Inf(1)
	for _, gp := range gaps {
		if gp.end-gp.start < dur-tolerance {
			continue
		}
		start := math.Min(math.Max(r.Start, gp.start), gp.end-dur)
		if shift := math.Abs(start - r.Start); shift < bestShift {
			best, bestShift, found = Range{Start: start, End: start + dur}, shift, true
		}
	}
	if found {
		return best, true
	}

	// nothing fits the duration: take the closest gap that can still hold
	// the minimum duration, whole
	bestDist := math.Inf(1)
	for _, gp := range gaps {
		if gp.end-gp.start < g.MinDuration-tolerance {
			continue
		}
		dist := math.Max(0, math.Max(gp.start-r.End, r.Start-gp.end))
		if dist < bestDist {
			best, bestDist, found = Range{Start: gp.start, End: gp.end}, dist, true
		}
	}
	return best, found
}
