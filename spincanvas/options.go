package spincanvas

import (
	"image"
	"math"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spinpath"
	"github.com/benoitkugler/spinart/spinraster"
	"github.com/benoitkugler/spinart/spinsmooth"
)

// Defaults used by New.
const (
	DefaultBrush     = 6.0  // brush diameter
	DefaultThreshold = 2.25 // minimum distance between two accepted samples
)

// Backend builds the drawer painting on the canvas raster.
type Backend func(dst *image.RGBA) spinpath.Drawer

// Option configures a Surface during creation.
//
// Example:
//
//	s, err := spincanvas.New(512, 512, spincanvas.WithBrush(4), spincanvas.WithBackend(spingg.NewDrawer))
type Option func(*options)

type options struct {
	brush     float64
	threshold float64
	smoothing float64
	generator spincolor.Generator
	backend   Backend
}

func defaultOptions() options {
	return options{
		brush:     DefaultBrush,
		threshold: DefaultThreshold,
		smoothing: spinsmooth.DefaultSmoothing,
		generator: spincolor.Default(),
		backend:   spinraster.NewDrawer,
	}
}

// WithBrush sets the brush diameter, in canvas pixels.
// Non positive values are ignored.
func WithBrush(diameter float64) Option {
	return func(o *options) { o.brush = diameter }
}

// WithThreshold sets the minimum distance a sample must move
// away from the last accepted one to be drawn.
// Negative values are ignored.
func WithThreshold(d float64) Option {
	return func(o *options) { o.threshold = d }
}

// WithSmoothing sets the smoothing factor of the segments, in [0,1].
func WithSmoothing(s float64) Option {
	return func(o *options) { o.smoothing = s }
}

// WithGenerator sets the initial stroke colors.
func WithGenerator(g spincolor.Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithBackend replaces the default rasterx backend.
// A nil backend keeps the default.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// sanitize restores the defaults replaced by invalid values.
func (o *options) sanitize() {
	def := defaultOptions()
	if !(o.brush > 0) || math.IsInf(o.brush, 0) {
		o.brush = def.brush
	}
	if !(o.threshold >= 0) || math.IsInf(o.threshold, 0) {
		o.threshold = def.threshold
	}
	if math.IsNaN(o.smoothing) || math.IsInf(o.smoothing, 0) {
		o.smoothing = def.smoothing
	}
	if o.backend == nil {
		o.backend = def.backend
	}
}
