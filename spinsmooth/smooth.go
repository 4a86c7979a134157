// Converts a rolling window of raw samples into smooth
// cubic bezier segments, using a Catmull-Rom like construction:
// each segment spans the two middle points of the window, and
// its control points are derived from the outer ones.
package spinsmooth

import (
	"errors"
	"fmt"

	"honnef.co/go/curve"
)

// WindowSize is the number of samples used for one segment.
const WindowSize = 4

// DefaultSmoothing is the smoothing used for live drawing.
const DefaultSmoothing = 1.0

// LegacySmoothing was used by older versions of the drawing tool.
//
// Deprecated: the two values never agreed and 1.0 is the current
// behavior; use DefaultSmoothing.
const LegacySmoothing = 0.5

// ErrInvalidWindow is returned when Smooth is not given exactly WindowSize points.
var ErrInvalidWindow = errors.New("spinsmooth: invalid argument: window must hold 4 points")

// Window holds the most recent samples, oldest first.
type Window [WindowSize]curve.Point

// NewWindow returns a window with all its slots at `p`.
func NewWindow(p curve.Point) Window {
	return Window{p, p, p, p}
}

// Reset sets all the slots to `p`, which is the state
// expected when a stroke restarts at a new location.
func (w *Window) Reset(p curve.Point) {
	*w = NewWindow(p)
}

// Push drops the oldest sample and appends `p`.
func (w *Window) Push(p curve.Point) {
	copy(w[:], w[1:])
	w[WindowSize-1] = p
}

// Last returns the most recent sample.
func (w Window) Last() curve.Point { return w[WindowSize-1] }

// Smooth returns the segment going from w[1] to w[2].
func (w Window) Smooth(smoothing float64) curve.CubicBez {
	p0, p1, p2, p3 := w[0], w[1], w[2], w[3]

	c1 := p0.Midpoint(p1)
	c2 := p1.Midpoint(p2)
	c3 := p2.Midpoint(p3)

	len1 := p1.Distance(p0)
	len2 := p2.Distance(p1)
	len3 := p3.Distance(p2)

	// duplicated samples: avoid dividing by zero
	m1 := c1
	if s := len1 + len2; s != 0 {
		m1 = c1.Lerp(c2, len1/s)
	}
	m2 := c3
	if s := len2 + len3; s != 0 {
		m2 = c2.Lerp(c3, len2/s)
	}

	ctrl1 := m1.Translate(c2.Sub(m1).Mul(smoothing)).Translate(p1.Sub(m1))
	ctrl2 := m2.Translate(c2.Sub(m2).Mul(smoothing)).Translate(p2.Sub(m2))

	return curve.CubicBez{P0: p1, P1: ctrl1, P2: ctrl2, P3: p2}
}

// Smooth is the checked version of Window.Smooth, for
// callers holding the samples in a slice.
func Smooth(points []curve.Point, smoothing float64) (curve.CubicBez, error) {
	if len(points) != WindowSize {
		return curve.CubicBez{}, fmt.Errorf("%w (got %d)", ErrInvalidWindow, len(points))
	}
	var w Window
	copy(w[:], points)
	return w.Smooth(smoothing), nil
}
