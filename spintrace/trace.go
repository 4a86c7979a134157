// Reads and replays recorded motion samples, standing in for the
// motion sensor which feeds a drawing surface at a fixed tick rate.
package spintrace

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/spinart/spincanvas"
	"github.com/benoitkugler/spinart/spincolor"
	"golang.org/x/time/rate"
	"honnef.co/go/curve"
)

// ErrSyntax is wrapped by the errors returned by Read.
var ErrSyntax = errors.New("spintrace: syntax error")

// Kind is the type of a sample.
type Kind uint8

const (
	Point   Kind = iota // a new nib location
	Restart             // move the nib without drawing
	Pause               // recording paused
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "p"
	case Restart:
		return "r"
	case Pause:
		return "pause"
	default:
		return "<unknown Kind>"
	}
}

// Sample is one tick of the motion sensor, already converted
// to canvas space. Only Kind is meaningful for pauses.
type Sample struct {
	Kind     Kind
	Location curve.Point
	Polar    spincolor.Polar
}

// Read parses samples written one per line as
//
//	kind,x,y,radius,angle,maxRadius
//
// where kind is p, r or pause (pauses have no other field).
// Lines starting with # are ignored.
func Read(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	var out []Sample
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
		}
		line, _ := cr.FieldPos(0)
		s, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrSyntax, line, err)
		}
		out = append(out, s)
	}
}

func parseRecord(record []string) (Sample, error) {
	switch kind := strings.TrimSpace(record[0]); kind {
	case "pause":
		if len(record) != 1 {
			return Sample{}, errors.New("pause takes no arguments")
		}
		return Sample{Kind: Pause}, nil
	case "p", "r":
		if len(record) != 6 {
			return Sample{}, fmt.Errorf("expected 6 fields, got %d", len(record))
		}
		var v [5]float64
		for i := range v {
			f, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return Sample{}, err
			}
			v[i] = f
		}
		s := Sample{Kind: Point, Location: curve.Pt(v[0], v[1]), Polar: spincolor.NewPolar(v[2], v[3], v[4])}
		if kind == "r" {
			s.Kind = Restart
		}
		return s, nil
	default:
		return Sample{}, fmt.Errorf("unknown sample kind %q", kind)
	}
}

// Write encodes the samples in the format expected by Read.
func Write(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	for _, s := range samples {
		record := []string{s.Kind.String()}
		if s.Kind != Pause {
			for _, f := range [...]float64{s.Location.X, s.Location.Y, s.Polar.Radius, s.Polar.Angle(), s.Polar.MaxRadius} {
				record = append(record, strconv.FormatFloat(f, 'g', -1, 64))
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Stats summarizes a replay.
type Stats struct {
	Samples  int // total number of samples delivered
	Accepted int // points actually drawn
	Ignored  int // points filtered out by the surface
	Restarts int
	Pauses   int
}

// Replay feeds the samples to `s`, one per limiter tick (as fast
// as possible if `limiter` is nil). It stops early when ctx is done.
func Replay(ctx context.Context, s *spincanvas.Surface, samples []Sample, limiter *rate.Limiter) (Stats, error) {
	var st Stats
	for _, smp := range samples {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return st, err
			}
		} else if err := ctx.Err(); err != nil {
			return st, err
		}
		st.Samples++
		switch smp.Kind {
		case Restart:
			s.Restart(smp.Location, smp.Polar)
			st.Restarts++
		case Pause:
			s.Pause()
			st.Pauses++
		default:
			if s.AddPoint(smp.Location, smp.Polar) {
				st.Accepted++
			} else {
				st.Ignored++
			}
		}
	}
	return st, nil
}

// Spin synthesizes the trace of a device spun for `turns` turns:
// the nib follows a rose curve around `center` while the polar
// coordinate sweeps the color disk outward.
func Spin(center curve.Point, maxRadius, turns float64, samplesPerTurn int) []Sample {
	n := int(turns * float64(samplesPerTurn))
	out := make([]Sample, 0, n+1)
	out = append(out, Sample{Kind: Restart, Location: center, Polar: spincolor.NewPolar(0, 0, maxRadius)})
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(samplesPerTurn) // in turns
		angle := 2 * math.Pi * t
		radius := maxRadius * t / turns
		petal := radius * math.Cos(3*angle)
		loc := center.Translate(curve.Vec(petal*math.Cos(angle), petal*math.Sin(angle)))
		out = append(out, Sample{Kind: Point, Location: loc, Polar: spincolor.NewPolar(radius, angle, maxRadius)})
	}
	return out
}
