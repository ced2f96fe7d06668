package timeline

import "math"

// Zoom owns the time to pixel scale and the horizontal scroll offset.
type Zoom struct {
	pixelsPerSecond float64
	min, max        float64
	scroll          float64
}

func NewZoom(initial, min, max float64) *Zoom {
	return &Zoom{pixelsPerSecond: clamp(initial, min, max), min: min, max: max}
}

func (z *Zoom) PixelsPerSecond() float64 { return z.pixelsPerSecond }

// ScrollOffset is the number of pixels scrolled off the left of the viewport.
func (z *Zoom) ScrollOffset() float64 { return z.scroll }

// Zoom changes the scale by delta, keeping anchorTime at
// anchorViewportOffset pixels into the viewport. It reports whether the
// scale changed.
func (z *Zoom) Zoom(delta, anchorTime, anchorViewportOffset float64) bool {
	next := clamp(z.pixelsPerSecond+delta, z.min, z.max)
	if next == z.pixelsPerSecond {
		return false
	}
	z.scroll = math.Max(0, anchorTime*next-anchorViewportOffset)
	z.pixelsPerSecond = next
	return true
}

// Scroll pans the view by dx pixels; the offset never goes negative.
func (z *Zoom) Scroll(dx float64) {
	z.scroll = math.Max(0, z.scroll+dx)
}

func (z *Zoom) TimeToViewport(t float64) float64 {
	return t*z.pixelsPerSecond - z.scroll
}

func (z *Zoom) ViewportToTime(x float64) float64 {
	return (x + z.scroll) / z.pixelsPerSecond
}

func (z *Zoom) PixelsToSeconds(dx float64) float64 {
	return dx / z.pixelsPerSecond
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
