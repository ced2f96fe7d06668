package timeline

import (
	"github.com/mgpai22/subtrack/internal/history"
	"github.com/mgpai22/subtrack/internal/logging"
)

// SnapMode selects how competing snap candidates are resolved.
type SnapMode string

const (
	// SnapFirst takes the first candidate within the threshold in scan order.
	SnapFirst SnapMode = "first"
	// SnapNearest takes the closest candidate within the threshold.
	SnapNearest SnapMode = "nearest"
)

const (
	DefaultSnapThreshold = 0.15
	DefaultMinDuration   = 0.1
	DefaultPasteGap      = 0.1
	DefaultZoomMin       = 20.0
	DefaultZoomMax       = 200.0
	DefaultZoomInitial   = 50.0
	DefaultZoomStep      = 10.0
	DefaultEdgeHitZone   = 8.0
)

// Options configures an Engine. Zero values fall back to the defaults.
type Options struct {
	SnapThreshold   float64
	SnapMode        SnapMode
	MinDuration     float64
	PasteGap        float64
	HistoryCapacity int

	ZoomMin     float64
	ZoomMax     float64
	ZoomInitial float64
	ZoomStep    float64

	// EdgeHitZone is the width in pixels of the resize handles.
	EdgeHitZone float64

	Sink      EventSink
	Frames    FrameScheduler // nil emits every seek immediately
	Capture   PointerCapture
	Clipboard ClipboardSink // optional system clipboard mirror
	Logger    *logging.Logger
}

func DefaultOptions() Options {
	return Options{
		SnapThreshold:   DefaultSnapThreshold,
		SnapMode:        SnapFirst,
		MinDuration:     DefaultMinDuration,
		PasteGap:        DefaultPasteGap,
		HistoryCapacity: history.DefaultCapacity,
		ZoomMin:         DefaultZoomMin,
		ZoomMax:         DefaultZoomMax,
		ZoomInitial:     DefaultZoomInitial,
		ZoomStep:        DefaultZoomStep,
		EdgeHitZone:     DefaultEdgeHitZone,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SnapThreshold <= 0 {
		o.SnapThreshold = d.SnapThreshold
	}
	if o.SnapMode != SnapNearest {
		o.SnapMode = SnapFirst
	}
	if o.MinDuration <= 0 {
		o.MinDuration = d.MinDuration
	}
	if o.PasteGap <= 0 {
		o.PasteGap = d.PasteGap
	}
	if o.HistoryCapacity <= 0 {
		o.HistoryCapacity = d.HistoryCapacity
	}
	if o.ZoomMin <= 0 {
		o.ZoomMin = d.ZoomMin
	}
	if o.ZoomMax < o.ZoomMin {
		o.ZoomMax = max(d.ZoomMax, o.ZoomMin)
	}
	if o.ZoomInitial <= 0 {
		o.ZoomInitial = d.ZoomInitial
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = d.ZoomStep
	}
	if o.EdgeHitZone <= 0 {
		o.EdgeHitZone = d.EdgeHitZone
	}
	if o.Sink == nil {
		o.Sink = NopSink{}
	}
	if o.Frames == nil {
		o.Frames = immediateFrames{}
	}
	if o.Capture == nil {
		o.Capture = noCapture{}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}
