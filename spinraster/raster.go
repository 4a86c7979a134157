// Implements a raster backend to paint spin art strokes,
// by wrapping rasterx.
package spinraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/spinart/spinpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ spinpath.Drawer = (*Renderer)(nil) // assert interface conformance

// Renderer composites (source over) the painted paths
// onto its destination image.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer painting on `dst`.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(dst *image.RGBA) *Renderer {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	// the filler and the dasher receive the same path commands:
	// each needs its own scanner
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, dst, b)),
		filler: rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, dst, b)),
	}
}

// NewDrawer has the signature expected by the backend options.
func NewDrawer(dst *image.RGBA) spinpath.Drawer { return NewRenderer(dst) }

func (rd *Renderer) Clear() {
	rd.dasher.Clear()
	rd.filler.Clear()
}

func (rd *Renderer) SetColor(c color.Color) {
	rd.filler.SetColor(c)
	rd.dasher.SetColor(c)
}

var capToFunc = [...]rasterx.CapFunc{
	spinpath.ButtCap:   rasterx.ButtCap,
	spinpath.SquareCap: rasterx.SquareCap,
	spinpath.RoundCap:  rasterx.RoundCap,
}

func (rd *Renderer) SetStrokeOptions(options spinpath.StrokeOptions) {
	capF := capToFunc[options.Cap]
	rd.dasher.SetStroke(
		options.LineWidth, fixed.Int26_6(4*64), capF, capF,
		rasterx.RoundGap, rasterx.Round, nil, 0,
	)
}

func (rd *Renderer) Start(a fixed.Point26_6) {
	rd.filler.Start(a)
	rd.dasher.Start(a)
}

func (rd *Renderer) Line(b fixed.Point26_6) {
	rd.filler.Line(b)
	rd.dasher.Line(b)
}

func (rd *Renderer) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	rd.filler.QuadBezier(b, c)
	rd.dasher.QuadBezier(b, c)
}

func (rd *Renderer) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	rd.filler.CubeBezier(b, c, d)
	rd.dasher.CubeBezier(b, c, d)
}

func (rd *Renderer) Stop(closeLoop bool) {
	rd.filler.Stop(closeLoop)
	rd.dasher.Stop(closeLoop)
}

func (rd *Renderer) Fill() {
	rd.filler.Draw()
}

func (rd *Renderer) Stroke() {
	rd.dasher.Draw()
}
