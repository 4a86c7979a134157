package spinsvg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/spinart/spinpath"
	"honnef.co/go/curve"
)

func TestStrokeAndFill(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 100, 80, "test")
	q := curve.QuadBez{P0: curve.Pt(0, 0), P1: curve.Pt(50, 50), P2: curve.Pt(100, 0)}
	spinpath.StrokePath(r, spinpath.QuadPath(q), color.NRGBA{R: 255, A: 255}, spinpath.NewStrokeOptions(2.5, spinpath.RoundCap))
	spinpath.FillPath(r, spinpath.Dot(curve.Pt(10, 10), 4), color.NRGBA{B: 255, A: 255})
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		`stroke:rgb(255,0,0);stroke-width:2.5;stroke-linecap:round`,
		`fill:rgb(0,0,255);stroke:none`,
		`M0.000,0.000 Q50.000,50.000,100.000,0.000`,
		`<title>test</title>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}

	// the document is well formed
	dec := xml.NewDecoder(&buf)
	paths := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "path" {
			paths++
		}
	}
	if paths != 2 {
		t.Errorf("expected 2 paths, got %d", paths)
	}
}

func TestEmptyPath(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 10, 10, "")
	r.Clear()
	r.Stroke()
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<path") {
		t.Error("empty paths should not be written")
	}
}

// failingWriter accepts `n` bytes, then fails.
type failingWriter struct{ n int }

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		n := w.n
		w.n = 0
		return n, errDiskFull
	}
	w.n -= len(p)
	return len(p), nil
}

func TestWriteError(t *testing.T) {
	w := &failingWriter{n: 20}
	r := NewRenderer(w, 10, 10, "")
	spinpath.FillPath(r, spinpath.Dot(curve.Pt(5, 5), 4), color.NRGBA{A: 255})
	if err := r.Close(); !errors.Is(err, errDiskFull) {
		t.Errorf("expected the write error, got %v", err)
	}
}
