package spinpath

import (
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"
)

// recorder logs the calls it receives
type recorder struct {
	calls []string
	opts  StrokeOptions
	color color.Color
}

func (r *recorder) Clear()                             { r.calls = append(r.calls, "clear") }
func (r *recorder) Start(a fixed.Point26_6)            { r.calls = append(r.calls, "start") }
func (r *recorder) Line(b fixed.Point26_6)             { r.calls = append(r.calls, "line") }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)    { r.calls = append(r.calls, "quad") }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.calls = append(r.calls, "cubic") }

func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.calls = append(r.calls, "close")
	}
}

func (r *recorder) SetColor(c color.Color)                 { r.color = c }
func (r *recorder) SetStrokeOptions(options StrokeOptions) { r.opts = options }
func (r *recorder) Fill()                                  { r.calls = append(r.calls, "fill") }
func (r *recorder) Stroke()                                { r.calls = append(r.calls, "stroke") }

func TestFixedConversion(t *testing.T) {
	p := curve.Pt(12.5, -3.25)
	f := ToFixed(p)
	if f.X != 800 || f.Y != -208 {
		t.Fatalf("unexpected fixed point %v", f)
	}
	if got := FromFixed(f); got != p {
		t.Errorf("expected %v, got %v", p, got)
	}
}

func TestStrokeQuad(t *testing.T) {
	var r recorder
	q := curve.QuadBez{P0: curve.Pt(0, 0), P1: curve.Pt(5, 5), P2: curve.Pt(10, 0)}
	StrokePath(&r, QuadPath(q), color.Black, NewStrokeOptions(3, RoundCap))

	if d := cmp.Diff([]string{"clear", "start", "quad", "stroke"}, r.calls); d != "" {
		t.Error(d)
	}
	if r.opts.Width() != 3 || r.opts.Cap != RoundCap {
		t.Errorf("unexpected options %v", r.opts)
	}
	if r.color != color.Black {
		t.Errorf("unexpected color %v", r.color)
	}
}

func TestDot(t *testing.T) {
	var r recorder
	FillPath(&r, Dot(curve.Pt(10, 10), 4), color.White)
	want := []string{"clear", "start", "cubic", "cubic", "cubic", "cubic", "close", "fill"}
	if d := cmp.Diff(want, r.calls); d != "" {
		t.Error(d)
	}

	p := Dot(curve.Pt(10, 10), 4)
	start := p[0].(MoveTo)
	end := p[len(p)-2].(CubicTo)[2]
	if fixed.Point26_6(start) != end {
		t.Errorf("dot is not closed: %v %v", start, end)
	}
}

func TestToSVGPath(t *testing.T) {
	c := curve.CubicBez{P0: curve.Pt(0, 0), P1: curve.Pt(1, 2), P2: curve.Pt(3, 4), P3: curve.Pt(5, 6)}
	s := CubicPath(c).String()
	if !strings.HasPrefix(s, "M0.000,0.000 C1.000,2.000") {
		t.Errorf("unexpected path %s", s)
	}
	if got := RoundCap.SVG(); got != "round" {
		t.Errorf("unexpected cap %s", got)
	}
}
