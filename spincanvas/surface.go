// Implements the drawing surface of the spin art tool:
// a persistent raster on which the motion samples are drawn
// as smoothed, colored strokes.
package spincanvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spinlog"
	"github.com/benoitkugler/spinart/spinpath"
	"github.com/benoitkugler/spinart/spinsmooth"
	"honnef.co/go/curve"
)

// ErrInvalidCanvasSize is returned by New for non positive dimensions.
var ErrInvalidCanvasSize = errors.New("spincanvas: invalid canvas size")

// State is the state of the current drawing session.
type State uint8

const (
	// AwaitingRestart ignores the samples until Restart is called.
	AwaitingRestart State = iota
	// Drawing strokes the samples moving far enough.
	Drawing
)

func (s State) String() string {
	switch s {
	case AwaitingRestart:
		return "AwaitingRestart"
	case Drawing:
		return "Drawing"
	default:
		return "<unknown State>"
	}
}

// Surface owns a raster and draws the samples it receives.
// It is not safe for concurrent use: samples must be delivered serially.
type Surface struct {
	img    *image.RGBA
	drawer spinpath.Drawer
	opts   options

	state   State
	window  spinsmooth.Window
	dirty   curve.Rect
	isDirty bool
}

// New returns a transparent surface of the given pixel size.
func New(width, height int, opts ...Option) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvasSize, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.sanitize()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Surface{img: img, drawer: o.backend(img), opts: o}, nil
}

// Bounds returns the canvas rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// State returns the current state of the session.
func (s *Surface) State() State { return s.state }

// Window returns the current samples used for smoothing.
func (s *Surface) Window() spinsmooth.Window { return s.window }

// Generator returns the generator used for the next strokes.
func (s *Surface) Generator() spincolor.Generator { return s.opts.generator }

// SetGenerator changes the colors of the next strokes.
func (s *Surface) SetGenerator(g spincolor.Generator) { s.opts.generator = g }

// Restart moves the nib to `p` without drawing a line:
// all the window slots are set to `p` and a dot is drawn,
// colored for the coordinate `at`.
func (s *Surface) Restart(p curve.Point, at spincolor.Polar) {
	if !isFinite(p) {
		spinlog.Logger().Warn("spincanvas: ignoring restart at a non finite point", "x", p.X, "y", p.Y)
		return
	}
	s.window.Reset(p)
	s.state = Drawing
	spinlog.Logger().Debug("spincanvas: restart", "x", p.X, "y", p.Y)

	spinpath.FillPath(s.drawer, spinpath.Dot(p, s.opts.brush), s.color(at))
	s.markDirty(curve.Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y})
}

// Pause ends the current stroke; the next samples are ignored
// until Restart is called.
func (s *Surface) Pause() { s.state = AwaitingRestart }

// AddPoint draws the segment ending with `p`, colored for the
// coordinate `at`, and reports whether the sample has been used.
// Samples are ignored while awaiting a restart, or when they are
// not farther than the threshold from the last accepted one,
// or have non finite coordinates.
func (s *Surface) AddPoint(p curve.Point, at spincolor.Polar) bool {
	if s.state != Drawing {
		return false
	}
	if !isFinite(p) || p.Distance(s.window.Last()) <= s.opts.threshold {
		return false
	}
	s.window.Push(p)
	seg := s.window.Smooth(s.opts.smoothing)
	spinpath.StrokePath(s.drawer, spinpath.CubicPath(seg), s.color(at),
		spinpath.NewStrokeOptions(s.opts.brush, spinpath.RoundCap))
	s.markDirty(seg.BoundingBox())
	return true
}

func isFinite(p curve.Point) bool { return !p.IsNaN() && !p.IsInf() }

func (s *Surface) color(at spincolor.Polar) color.NRGBA {
	return spincolor.NRGBA(s.opts.generator.Color(at))
}

// markDirty extends the dirty rect with `box`, inflated by the brush.
func (s *Surface) markDirty(box curve.Rect) {
	box = box.Inflate(s.opts.brush, s.opts.brush)
	if s.isDirty {
		s.dirty = s.dirty.Union(box)
	} else {
		s.dirty, s.isDirty = box, true
	}
}

// DirtyRect returns the region modified since the last call
// to TakeDirtyRect, clipped to the canvas.
func (s *Surface) DirtyRect() image.Rectangle {
	if !s.isDirty {
		return image.Rectangle{}
	}
	r := s.dirty.Expand()
	return image.Rect(int(r.X0), int(r.Y0), int(r.X1), int(r.Y1)).Intersect(s.img.Bounds())
}

// TakeDirtyRect returns the dirty rect and resets it.
func (s *Surface) TakeDirtyRect() image.Rectangle {
	r := s.DirtyRect()
	s.isDirty = false
	return r
}

// Clear erases the canvas. The session state is not modified.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	b := s.img.Bounds()
	s.dirty = curve.Rect{X0: float64(b.Min.X), Y0: float64(b.Min.Y), X1: float64(b.Max.X), Y1: float64(b.Max.Y)}
	s.isDirty = true
}

// Snapshot returns a copy of the canvas.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// WritePNG encodes the canvas.
func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// FileName returns the name used by SavePNG, based on the pixel size.
func (s *Surface) FileName() string {
	b := s.img.Bounds()
	return fmt.Sprintf("%dx%d.png", b.Dx(), b.Dy())
}

// SavePNG writes the canvas in `dir` and returns the file path.
func (s *Surface) SavePNG(dir string) (string, error) {
	path := filepath.Join(dir, s.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// LoadPNG replaces the canvas content by the decoded image,
// which is drawn at the origin and clipped to the canvas.
func (s *Surface) LoadPNG(r io.Reader) error {
	src, err := png.Decode(r)
	if err != nil {
		return fmt.Errorf("spincanvas: loading canvas: %w", err)
	}
	s.Clear()
	draw.Draw(s.img, s.img.Bounds(), src, src.Bounds().Min, draw.Src)
	return nil
}
