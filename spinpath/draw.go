package spinpath

import (
	"image/color"

	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any spiral or color kwowledge.
// Points are expressed in the drawer pixel space.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(c color.Color)

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)

	// Fill paints the interior of the accumulated path.
	Fill()

	// Stroke paints the outline of the accumulated path.
	Stroke()
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// SVG returns the value of the `stroke-linecap` attribute.
func (c CapMode) SVG() string {
	switch c {
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "butt"
	}
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Cap       CapMode       // used at both ends of the line
}

// NewStrokeOptions converts the float `width`.
func NewStrokeOptions(width float64, cap CapMode) StrokeOptions {
	return StrokeOptions{LineWidth: fixed.Int26_6(width * 64), Cap: cap}
}

// Width returns the line width as a float.
func (s StrokeOptions) Width() float64 { return float64(s.LineWidth) / 64 }

// StrokePath paints `p` on `d` using the given color and style.
func StrokePath(d Drawer, p Path, c color.Color, options StrokeOptions) {
	d.Clear()
	d.SetStrokeOptions(options)
	p.AddTo(d)
	d.SetColor(c)
	d.Stroke()
}

// FillPath paints the interior of `p` on `d` using the given color.
func FillPath(d Drawer, p Path, c color.Color) {
	d.Clear()
	p.AddTo(d)
	d.SetColor(c)
	d.Fill()
}
