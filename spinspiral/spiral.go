// Renders the decorative spirals used as palette previews:
// an Archimedean spiral r = a + bθ is approximated by quadratic
// bezier segments, each one painted with the color sampled from
// a generator at its end point.
package spinspiral

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spinlog"
	"github.com/benoitkugler/spinart/spinpath"
	"github.com/benoitkugler/spinart/spinraster"
	"github.com/benoitkugler/spinart/spinsvg"
	"github.com/lucasb-eyer/go-colorful"
	"honnef.co/go/curve"
)

var (
	// ErrParallelTangents is returned in StrictErrorMode when the tangents
	// at two consecutive samples do not cross.
	ErrParallelTangents = errors.New("spinspiral: parallel tangents")

	// ErrInvalidModel is returned for models which can't be rendered.
	ErrInvalidModel = errors.New("spinspiral: invalid model")
)

// ErrorMode determines how degenerate segments are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently draws a straight segment instead.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode draws a straight segment and logs a warning.
	WarnErrorMode
	// StrictErrorMode aborts the rendering.
	StrictErrorMode
)

// Model fully determines one spiral rendering.
type Model struct {
	Generator    spincolor.Generator
	CanvasSize   curve.Size
	StartRadius  float64    // a, in r = a + bθ
	SpacePerLoop float64    // b, in r = a + bθ
	AngleRange   [2]float64 // radians
	AngleStep    float64    // radians
	LineWidth    float64
}

// DefaultModel returns the geometry used for the palette thumbnails.
func DefaultModel(g spincolor.Generator) Model {
	return Model{
		Generator:    g,
		CanvasSize:   curve.Sz(100, 100),
		StartRadius:  2,
		SpacePerLoop: 1.5,
		AngleRange:   [2]float64{0, 30},
		AngleStep:    0.25,
		LineWidth:    3,
	}
}

// MaxSegments bounds the number of segments of one rendering.
const MaxSegments = 1 << 20

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// segmentCount returns the number of steps in the angle range.
func (m Model) segmentCount() float64 {
	return math.Floor((m.AngleRange[1]-m.AngleRange[0])/m.AngleStep + 1e-9)
}

// Validate checks that `m` may be rendered at the given scale.
func (m Model) Validate(scale float64) error {
	switch {
	case !isFinite(m.StartRadius, m.SpacePerLoop, m.AngleRange[0], m.AngleRange[1], m.AngleStep, m.LineWidth, scale):
		return fmt.Errorf("%w: non finite parameter", ErrInvalidModel)
	case !(m.CanvasSize.Width > 0 && m.CanvasSize.Height > 0) || m.CanvasSize.IsInf():
		return fmt.Errorf("%w: canvas size %s", ErrInvalidModel, m.CanvasSize)
	case !(m.AngleStep > 0):
		return fmt.Errorf("%w: angle step %g", ErrInvalidModel, m.AngleStep)
	case m.LineWidth < 0:
		return fmt.Errorf("%w: line width %g", ErrInvalidModel, m.LineWidth)
	case m.AngleRange[1] < m.AngleRange[0]:
		return fmt.Errorf("%w: angle range %v", ErrInvalidModel, m.AngleRange)
	case !(scale > 0):
		return fmt.Errorf("%w: scale %g", ErrInvalidModel, scale)
	case !(m.segmentCount() <= MaxSegments):
		return fmt.Errorf("%w: more than %d segments", ErrInvalidModel, MaxSegments)
	}
	return nil
}

// ImageSize returns the pixel size of the rendering at `scale`.
func (m Model) ImageSize(scale float64) image.Point {
	return image.Pt(int(math.Ceil(m.CanvasSize.Width*scale)), int(math.Ceil(m.CanvasSize.Height*scale)))
}

func (m Model) radius(angle float64) float64 { return m.StartRadius + m.SpacePerLoop*angle }

// color returns the color at the given angle. The radius is
// normalized by half the canvas width, before scaling.
func (m Model) color(angle float64) colorful.Color {
	return m.Generator.Color(spincolor.NewPolar(m.radius(angle), angle, m.CanvasSize.Width/2))
}

// TangentSlope returns dy/dx for the spiral r = a + bθ, at θ.
// It is infinite for vertical tangents.
func TangentSlope(a, b, theta float64) float64 {
	sin, cos := math.Sincos(theta)
	r := a + b*theta
	return (b*sin + r*cos) / (b*cos - r*sin)
}

// Segment is one colored piece of the spiral.
type Segment struct {
	Curve curve.QuadBez
	Color colorful.Color
	Cap   spinpath.CapMode
	// Straight is true when the tangents were parallel and
	// the control point has been replaced by the midpoint.
	Straight bool
}

// Plan is the result of the path computation, in pixel space.
type Plan struct {
	Size       image.Point
	LineWidth  float64
	Start      curve.Point
	StartColor colorful.Color
	Segments   []Segment
}

// sample is a point of the spiral, with its tangent direction
type sample struct {
	angle float64
	point curve.Point
	dir   curve.Vec2
}

// Segments walks the spiral of `m` at the given device scale.
func Segments(m Model, scale float64, mode ErrorMode) (Plan, error) {
	if err := m.Validate(scale); err != nil {
		return Plan{}, err
	}
	center := curve.Pt(m.CanvasSize.Width*scale/2, m.CanvasSize.Height*scale/2)
	at := func(angle float64) sample {
		sin, cos := math.Sincos(angle)
		r := m.radius(angle) * scale
		b := m.SpacePerLoop * scale
		return sample{
			angle: angle,
			point: center.Translate(curve.Vec(r*cos, r*sin)),
			dir:   curve.Vec(b*cos-r*sin, b*sin+r*cos), // slope is dir.Y / dir.X
		}
	}

	lo := m.AngleRange[0]
	old := at(lo)
	plan := Plan{
		Size:       m.ImageSize(scale),
		LineWidth:  m.LineWidth * scale,
		Start:      old.point,
		StartColor: m.color(lo),
	}
	n := int(m.segmentCount())
	plan.Segments = make([]Segment, 0, n)
	for i := 1; i <= n; i++ {
		next := at(lo + float64(i)*m.AngleStep)
		seg := Segment{Color: m.color(next.angle), Cap: spinpath.SquareCap}

		tOld := curve.Line{P0: old.point, P1: old.point.Translate(old.dir)}
		tNew := curve.Line{P0: next.point, P1: next.point.Translate(next.dir)}
		ctrl, ok := tOld.CrossingPoint(tNew)
		if !ok {
			switch mode {
			case StrictErrorMode:
				return Plan{}, fmt.Errorf("%w: between angles %g and %g", ErrParallelTangents, old.angle, next.angle)
			case WarnErrorMode:
				spinlog.Logger().Warn("spinspiral: parallel tangents, using a straight segment",
					"from", old.angle, "to", next.angle)
			}
			ctrl, seg.Straight = old.point.Midpoint(next.point), true
		}
		seg.Curve = curve.QuadBez{P0: old.point, P1: ctrl, P2: next.point}
		plan.Segments = append(plan.Segments, seg)
		old = next
	}
	if last := len(plan.Segments) - 1; last >= 0 {
		plan.Segments[last].Cap = spinpath.RoundCap
	}
	return plan, nil
}

// Draw paints the plan on `d`: first the start dot, then each segment.
func (p Plan) Draw(d spinpath.Drawer) {
	spinpath.FillPath(d, spinpath.Dot(p.Start, p.LineWidth), spincolor.NRGBA(p.StartColor))
	for _, seg := range p.Segments {
		spinpath.StrokePath(d, spinpath.QuadPath(seg.Curve), spincolor.NRGBA(seg.Color),
			spinpath.NewStrokeOptions(p.LineWidth, seg.Cap))
	}
}

// Render computes and paints the spiral on `d`, which
// must cover Model.ImageSize(scale) pixels.
func Render(d spinpath.Drawer, m Model, scale float64, mode ErrorMode) error {
	plan, err := Segments(m, scale, mode)
	if err != nil {
		return err
	}
	plan.Draw(d)
	return nil
}

// RenderImage renders the spiral on a transparent image, using
// the rasterx backend. The output only depends on its arguments.
func RenderImage(m Model, scale float64, mode ErrorMode) (*image.RGBA, error) {
	plan, err := Segments(m, scale, mode)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rectangle{Max: plan.Size})
	plan.Draw(spinraster.NewRenderer(img))
	return img, nil
}

// RenderSVG writes the spiral as an SVG document.
func RenderSVG(w io.Writer, m Model, scale float64, mode ErrorMode) error {
	plan, err := Segments(m, scale, mode)
	if err != nil {
		return err
	}
	r := spinsvg.NewRenderer(w, plan.Size.X, plan.Size.Y, m.Generator.Title)
	plan.Draw(r)
	return r.Close()
}
