// Implements a raster backend to paint spin art strokes,
// by wrapping github.com/fogleman/gg.
package spingg

import (
	"image"
	"image/color"

	"github.com/benoitkugler/spinart/spinpath"
	"github.com/fogleman/gg"
	"golang.org/x/image/math/fixed"
)

var _ spinpath.Drawer = (*Renderer)(nil)

type Renderer struct {
	dc *gg.Context
}

// NewRenderer returns a renderer painting directly on `dst`.
func NewRenderer(dst *image.RGBA) *Renderer {
	dc := gg.NewContextForRGBA(dst)
	dc.SetLineJoin(gg.LineJoinRound)
	return &Renderer{dc: dc}
}

// NewDrawer has the signature expected by the backend options.
func NewDrawer(dst *image.RGBA) spinpath.Drawer { return NewRenderer(dst) }

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

var capToCap = [...]gg.LineCap{
	spinpath.ButtCap:   gg.LineCapButt,
	spinpath.SquareCap: gg.LineCapSquare,
	spinpath.RoundCap:  gg.LineCapRound,
}

func (r *Renderer) Clear() { r.dc.ClearPath() }

func (r *Renderer) SetColor(c color.Color) { r.dc.SetColor(c) }

func (r *Renderer) SetStrokeOptions(options spinpath.StrokeOptions) {
	r.dc.SetLineWidth(options.Width())
	r.dc.SetLineCap(capToCap[options.Cap])
}

func (r *Renderer) Start(a fixed.Point26_6) { r.dc.MoveTo(fixedTof(a)) }

func (r *Renderer) Line(b fixed.Point26_6) { r.dc.LineTo(fixedTof(b)) }

func (r *Renderer) QuadBezier(b, c fixed.Point26_6) {
	x1, y1 := fixedTof(b)
	x2, y2 := fixedTof(c)
	r.dc.QuadraticTo(x1, y1, x2, y2)
}

func (r *Renderer) CubeBezier(b, c, d fixed.Point26_6) {
	x1, y1 := fixedTof(b)
	x2, y2 := fixedTof(c)
	x3, y3 := fixedTof(d)
	r.dc.CubicTo(x1, y1, x2, y2, x3, y3)
}

func (r *Renderer) Stop(closeLoop bool) {
	if closeLoop {
		r.dc.ClosePath()
	}
}

// Fill and Stroke keep the path, which is only
// discarded by Clear, as with the other backends.

func (r *Renderer) Fill() { r.dc.FillPreserve() }

func (r *Renderer) Stroke() { r.dc.StrokePreserve() }
