package spincanvas

import (
	"bytes"
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spingg"
	"github.com/benoitkugler/spinart/spinsmooth"
	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"
)

var at = spincolor.NewPolar(2, 1, 10)

func newSurface(t *testing.T, opts ...Option) *Surface {
	t.Helper()
	s, err := New(100, 80, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func alpha(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := New(size[0], size[1]); !errors.Is(err, ErrInvalidCanvasSize) {
			t.Errorf("size %v: expected ErrInvalidCanvasSize, got %v", size, err)
		}
	}
}

func TestAwaitingRestart(t *testing.T) {
	s := newSurface(t)
	if s.State() != AwaitingRestart {
		t.Fatalf("unexpected initial state %s", s.State())
	}
	if s.AddPoint(curve.Pt(50, 50), at) {
		t.Error("samples should be ignored before a restart")
	}
	if alpha(s.Snapshot()) != 0 {
		t.Error("nothing should be drawn")
	}
	if !s.DirtyRect().Empty() {
		t.Error("nothing should be dirty")
	}
}

func TestRestart(t *testing.T) {
	s := newSurface(t)
	s.AddPoint(curve.Pt(3, 4), at)
	p := curve.Pt(20, 30)
	s.Restart(p, at)

	if d := cmp.Diff(spinsmooth.NewWindow(p), s.Window()); d != "" {
		t.Error(d)
	}
	if s.State() != Drawing {
		t.Errorf("unexpected state %s", s.State())
	}
	// the starting dot
	if c := s.Snapshot().RGBAAt(20, 30); c.A == 0 {
		t.Error("expected a dot at the restart location")
	}
	if got, want := s.DirtyRect(), image.Rect(14, 24, 26, 36); got != want {
		t.Errorf("expected dirty rect %v, got %v", want, got)
	}
}

func TestThreshold(t *testing.T) {
	s := newSurface(t)
	start := curve.Pt(10, 10)
	s.Restart(start, at)
	s.TakeDirtyRect()
	before := s.Snapshot()

	if s.AddPoint(curve.Pt(12.25, 10), at) {
		t.Error("a distance of exactly 2.25 should be ignored")
	}
	if s.AddPoint(curve.Pt(10, 11), at) {
		t.Error("a short distance should be ignored")
	}
	if d := cmp.Diff(spinsmooth.NewWindow(start), s.Window()); d != "" {
		t.Error(d)
	}
	if !bytes.Equal(before.Pix, s.Snapshot().Pix) || !s.DirtyRect().Empty() {
		t.Error("ignored samples should not draw")
	}

	next := curve.Pt(12.26, 10)
	if !s.AddPoint(next, at) {
		t.Fatal("a distance of 2.26 should be accepted")
	}
	want := spinsmooth.Window{start, start, start, next}
	if d := cmp.Diff(want, s.Window()); d != "" {
		t.Error(d)
	}
	// the threshold is measured from the last accepted sample
	if s.AddPoint(curve.Pt(14, 10), at) {
		t.Error("expected the sample to be too close to the last one")
	}
}

func TestNonFiniteSamples(t *testing.T) {
	s := newSurface(t)
	s.Restart(curve.Pt(math.NaN(), 10), at)
	if s.State() != AwaitingRestart || !s.DirtyRect().Empty() {
		t.Fatal("a non finite restart should be ignored")
	}

	s.Restart(curve.Pt(20, 30), at)
	s.TakeDirtyRect()
	if !s.AddPoint(curve.Pt(40, 30), at) {
		t.Fatal("expected the sample to be accepted")
	}
	window, dirty := s.Window(), s.DirtyRect()
	for _, p := range []curve.Point{
		curve.Pt(math.NaN(), 10),
		curve.Pt(10, math.Inf(1)),
		curve.Pt(math.Inf(-1), math.NaN()),
	} {
		if s.AddPoint(p, at) {
			t.Errorf("%v: non finite sample accepted", p)
		}
	}
	if d := cmp.Diff(window, s.Window()); d != "" {
		t.Error(d)
	}
	if got := s.DirtyRect(); got != dirty || got.Empty() {
		t.Errorf("expected dirty rect %v, got %v", dirty, got)
	}
}

func TestInvalidOptions(t *testing.T) {
	s := newSurface(t, WithBrush(-1), WithThreshold(-3), WithSmoothing(math.NaN()), WithBackend(nil))
	if s.opts.brush != DefaultBrush || s.opts.threshold != DefaultThreshold ||
		s.opts.smoothing != spinsmooth.DefaultSmoothing || s.opts.backend == nil {
		t.Fatalf("invalid options should be ignored, got %+v", s.opts)
	}
	s = newSurface(t, WithBrush(0), WithThreshold(math.Inf(1)))
	if s.opts.brush != DefaultBrush || s.opts.threshold != DefaultThreshold {
		t.Fatalf("invalid options should be ignored, got %+v", s.opts)
	}
	s = newSurface(t, WithBrush(3), WithThreshold(0))
	if s.opts.brush != 3 || s.opts.threshold != 0 {
		t.Fatalf("valid options should be kept, got %+v", s.opts)
	}
	// the default backend draws
	s = newSurface(t, WithBackend(nil))
	s.Restart(curve.Pt(50, 40), at)
	if alpha(s.Snapshot()) == 0 {
		t.Error("expected the default backend to draw")
	}
}

func TestDrawing(t *testing.T) {
	s := newSurface(t)
	s.Restart(curve.Pt(10, 40), at)
	s.TakeDirtyRect()
	for x := 20.; x <= 90; x += 10 {
		if !s.AddPoint(curve.Pt(x, 40), at) {
			t.Fatalf("sample %v should be accepted", x)
		}
	}
	img := s.Snapshot()
	want := spincolor.NRGBA(spincolor.Default().Color(at))
	if c := img.RGBAAt(50, 40); c.R != want.R || c.G != want.G || c.B != want.B || c.A != 255 {
		t.Errorf("expected %v on the stroke, got %v", want, c)
	}
	if c := img.RGBAAt(50, 60); c.A != 0 {
		t.Errorf("expected transparent pixel, got %v", c)
	}
	// the segments lag one sample behind: the last one ends at 80
	dirty := s.TakeDirtyRect()
	if dirty != image.Rect(4, 34, 86, 46) {
		t.Errorf("unexpected dirty rect %v", dirty)
	}
	if !s.DirtyRect().Empty() {
		t.Error("TakeDirtyRect should reset the dirty rect")
	}

	s.Pause()
	if s.AddPoint(curve.Pt(50, 10), at) {
		t.Error("samples should be ignored after a pause")
	}
}

func TestGeneratorSwitch(t *testing.T) {
	noir, _ := spincolor.Lookup(nil, spincolor.FilmNoir)
	s := newSurface(t, WithGenerator(noir), WithBrush(4))
	if s.Generator().Title != spincolor.FilmNoir {
		t.Fatal("option not applied")
	}
	black, _ := spincolor.Lookup(nil, spincolor.BlackWidow)
	s.SetGenerator(black)
	s.Restart(curve.Pt(50, 40), spincolor.NewPolar(0, 0, 10))
	if c := s.Snapshot().RGBAAt(50, 40); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("expected a red dot, got %v", c)
	}
}

func TestClear(t *testing.T) {
	s := newSurface(t)
	s.Restart(curve.Pt(50, 40), at)
	s.AddPoint(curve.Pt(60, 40), at)
	s.TakeDirtyRect()
	s.Clear()
	if alpha(s.Snapshot()) != 0 {
		t.Error("expected an empty canvas")
	}
	if s.TakeDirtyRect() != s.Bounds() {
		t.Error("expected the whole canvas to be dirty")
	}
	if s.State() != Drawing {
		t.Error("Clear should not change the session state")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newSurface(t)
	snap := s.Snapshot()
	s.Restart(curve.Pt(50, 40), at)
	if alpha(snap) != 0 {
		t.Error("snapshot should not follow the canvas")
	}
}

func TestPNGRoundTrip(t *testing.T) {
	s := newSurface(t, WithBackend(spingg.NewDrawer))
	s.Restart(curve.Pt(10, 10), at)
	for x := 20.; x <= 80; x += 5 {
		s.AddPoint(curve.Pt(x, 10+x/2), at)
	}
	dir := t.TempDir()
	path, err := s.SavePNG(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "100x80.png" {
		t.Errorf("unexpected file name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	restored := newSurface(t)
	if err := restored.LoadPNG(f); err != nil {
		t.Fatal(err)
	}
	// premultiplied colors may not survive the PNG encoding:
	// compare the coverage, and the opaque pixels
	orig, got := s.Snapshot().Pix, restored.Snapshot().Pix
	for i := 0; i < len(orig); i += 4 {
		if orig[i+3] != got[i+3] {
			t.Fatalf("alpha differs at offset %d", i)
		}
		if orig[i+3] == 0xff && !bytes.Equal(orig[i:i+4], got[i:i+4]) {
			t.Fatalf("opaque pixel differs at offset %d", i)
		}
	}
	if alpha(restored.Snapshot()) == 0 {
		t.Error("expected a non empty canvas")
	}

	if err := restored.LoadPNG(bytes.NewReader([]byte("not a png"))); err == nil {
		t.Error("expected an error for invalid data")
	}
}
