// Implements a vector backend, writing the spin art
// strokes as an SVG document, by wrapping github.com/ajstarks/svgo.
package spinsvg

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/benoitkugler/spinart/spinpath"
	"golang.org/x/image/math/fixed"
)

var _ spinpath.Drawer = (*Renderer)(nil)

// errWriter keeps the first error returned by the wrapped writer,
// which svgo discards, and skips the following writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// Renderer accumulates the path commands and emits
// one <path> element for each Fill or Stroke.
type Renderer struct {
	out     *errWriter
	canvas  *svg.SVG
	path    spinpath.Path
	color   color.NRGBA
	options spinpath.StrokeOptions
}

// NewRenderer starts a document of the given pixel size.
// Close must be called to terminate it.
func NewRenderer(w io.Writer, width, height int, title string) *Renderer {
	out := &errWriter{w: w}
	canvas := svg.New(out)
	canvas.Start(width, height)
	if title != "" {
		canvas.Title(title)
	}
	return &Renderer{out: out, canvas: canvas, color: color.NRGBA{A: 0xff}}
}

// Close terminates the document and returns the first
// error encountered while writing it.
func (r *Renderer) Close() error {
	r.canvas.End()
	return r.out.err
}

func (r *Renderer) Clear() { r.path.Clear() }

func (r *Renderer) SetColor(c color.Color) {
	r.color = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *Renderer) SetStrokeOptions(options spinpath.StrokeOptions) { r.options = options }

func (r *Renderer) Start(a fixed.Point26_6) { r.path.Start(a) }

func (r *Renderer) Line(b fixed.Point26_6) { r.path.Line(b) }

func (r *Renderer) QuadBezier(b, c fixed.Point26_6) { r.path.QuadBezier(b, c) }

func (r *Renderer) CubeBezier(b, c, d fixed.Point26_6) { r.path.CubeBezier(b, c, d) }

func (r *Renderer) Stop(closeLoop bool) { r.path.Stop(closeLoop) }

func (r *Renderer) rgb() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", r.color.R, r.color.G, r.color.B)
}

func (r *Renderer) opacity() string {
	if r.color.A == 0xff {
		return ""
	}
	return fmt.Sprintf(";opacity:%.3f", float64(r.color.A)/0xff)
}

func (r *Renderer) Fill() {
	if len(r.path) == 0 {
		return
	}
	r.canvas.Path(r.path.ToSVGPath(), fmt.Sprintf("fill:%s;stroke:none%s", r.rgb(), r.opacity()))
}

func (r *Renderer) Stroke() {
	if len(r.path) == 0 {
		return
	}
	r.canvas.Path(r.path.ToSVGPath(), fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:%s%s",
		r.rgb(), r.options.Width(), r.options.Cap.SVG(), r.opacity()))
}
