// Implements an abstract representation of
// the strokes drawn by the spin art tools, which can then
// be consumed by painting drivers.
// See for example spinart/spinraster or spinart/spinsvg .
package spinpath

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
	// add itself on the drawer `d`
	drawTo(d Drawer)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

func (op MoveTo) drawTo(d Drawer) {
	d.Stop(false) // implicit close if currently in path.
	d.Start(fixed.Point26_6(op))
}

func (op LineTo) drawTo(d Drawer)  { d.Line(fixed.Point26_6(op)) }
func (op QuadTo) drawTo(d Drawer)  { d.QuadBezier(op[0], op[1]) }
func (op CubicTo) drawTo(d Drawer) { d.CubeBezier(op[0], op[1], op[2]) }
func (Close) drawTo(d Drawer)      { d.Stop(true) }

// Path describes a sequence of basic operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path,
// suitable for the `d` attribute of an SVG path element.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo replays the path on the drawer `d`.
// The drawer is not cleared, and the path is not painted:
// callers are expected to call Fill or Stroke afterwards.
func (p Path) AddTo(d Drawer) {
	for _, op := range p {
		op.drawTo(d)
	}
	d.Stop(false)
}

// ToFixed converts a float point to its fixed representation.
func ToFixed(p curve.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
}

// FromFixed is the inverse of ToFixed, up to the 1/64 rounding.
func FromFixed(p fixed.Point26_6) curve.Point {
	return curve.Pt(float64(p.X)/64, float64(p.Y)/64)
}

// QuadPath returns the path made of the single quadratic curve `q`.
func QuadPath(q curve.QuadBez) Path {
	var p Path
	p.Start(ToFixed(q.P0))
	p.QuadBezier(ToFixed(q.P1), ToFixed(q.P2))
	return p
}

// CubicPath returns the path made of the single cubic curve `c`.
func CubicPath(c curve.CubicBez) Path {
	var p Path
	p.Start(ToFixed(c.P0))
	p.CubeBezier(ToFixed(c.P1), ToFixed(c.P2), ToFixed(c.P3))
	return p
}

// kappa is the control distance for a quarter circle approximated
// by a cubic bezier curve, relative to the radius.
const kappa = 0.5522847498307936

// Dot returns a closed path approximating the disk of the given
// diameter centered on `c`, with four cubic curves.
// It is used to materialize the zero length strokes (starting points).
func Dot(c curve.Point, diameter float64) Path {
	r := diameter / 2
	k := r * kappa
	pt := func(x, y float64) fixed.Point26_6 { return ToFixed(curve.Pt(c.X+x, c.Y+y)) }
	var p Path
	p.Start(pt(r, 0))
	p.CubeBezier(pt(r, k), pt(k, r), pt(0, r))
	p.CubeBezier(pt(-k, r), pt(-r, k), pt(-r, 0))
	p.CubeBezier(pt(-r, -k), pt(-k, -r), pt(0, -r))
	p.CubeBezier(pt(k, -r), pt(r, -k), pt(r, 0))
	p.Stop(true)
	return p
}
