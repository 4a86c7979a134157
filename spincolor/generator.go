package spincolor

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
)

// Space selects how the three channel values are interpreted.
type Space uint8

const (
	HSV Space = iota
	RGB
)

func (s Space) String() string {
	switch s {
	case HSV:
		return "hsv"
	case RGB:
		return "rgb"
	default:
		return "<unknown Space>"
	}
}

func parseSpace(s string) (Space, bool) {
	switch s {
	case "hsv":
		return HSV, true
	case "rgb":
		return RGB, true
	default:
		return 0, false
	}
}

// ColorModel maps positionally its channels to (H,S,V) or (R,G,B),
// depending on Space.
type ColorModel struct {
	Space    Space
	Channels [3]ChannelBehavior
}

// Color evaluates the model at `p`.
// Channel values are not clamped: values outside [0,1] give
// extrapolated components. For HSV, the hue wraps around since
// it is an angle.
func (m ColorModel) Color(p Polar) colorful.Color {
	a, b, c := m.Channels[0].Eval(p), m.Channels[1].Eval(p), m.Channels[2].Eval(p)
	if m.Space == RGB {
		return colorful.Color{R: a, G: b, B: c}
	}
	hue := a - math.Floor(a) // 1 is the same hue as 0
	return colorful.Hsv(hue*360, b, c)
}

// Generator is a named, immutable color model.
// Its identity is its Title.
type Generator struct {
	Title string
	Model ColorModel
}

// NewGenerator returns the generator for the given channels.
func NewGenerator(title string, space Space, c1, c2, c3 ChannelBehavior) Generator {
	return Generator{Title: title, Model: ColorModel{Space: space, Channels: [3]ChannelBehavior{c1, c2, c3}}}
}

// Color returns the color at `p`. It never fails for finite inputs.
func (g Generator) Color(p Polar) colorful.Color { return g.Model.Color(p) }

func (g Generator) String() string {
	ch := g.Model.Channels
	return fmt.Sprintf("%s (%s: %s, %s, %s)", g.Title, g.Model.Space, ch[0], ch[1], ch[2])
}

// NRGBA converts `c` to an opaque color suitable for compositing,
// clamping the out of gamut components.
func NRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Titles of the built-in generators.
const (
	Classic    = "Classic"
	Sepia      = "Sepia"
	BlackWidow = "Black Widow"
	Autumn     = "Autumn"
	Tangerine  = "Tangerine"
	ThreeD     = "3-D"
	Watercolor = "Watercolor"
	Monsters   = "Monsters"
	Pastels    = "Pastels"
	Merlin     = "Merlin"
	Regolith   = "Regolith"
	FilmNoir   = "Film Noir"
)

var presets = [...]Generator{
	NewGenerator(Classic, HSV, Increasing, Fixed(1), Fixed(1)),
	NewGenerator(Sepia, HSV, Fixed(0.08), Fixed(0.6), Outward),
	NewGenerator(BlackWidow, HSV, Fixed(0), Fixed(1), Inward),
	NewGenerator(Autumn, RGB, Fixed(1), UpDown, Fixed(0)),
	NewGenerator(Tangerine, HSV, Fixed(0.08), Fixed(1), Outward),
	NewGenerator(ThreeD, HSV, Fixed(0.6), Fixed(1), UpDown),
	NewGenerator(Watercolor, HSV, Increasing, Fixed(0.5), Fixed(0.9)),
	NewGenerator(Monsters, RGB, Outward, UpDown, Inward),
	NewGenerator(Pastels, HSV, Outward, Fixed(0.35), Fixed(1)),
	NewGenerator(Merlin, HSV, Fixed(0.75), UpDown, Fixed(1)),
	NewGenerator(Regolith, HSV, Fixed(0.1), Fixed(0.2), UpDown),
	NewGenerator(FilmNoir, HSV, Fixed(0), Fixed(0), UpDown),
}

// Presets returns a copy of the built-in generators, in display order.
func Presets() []Generator {
	return append([]Generator(nil), presets[:]...)
}

// Default returns the Classic generator.
func Default() Generator { return presets[0] }

// Lookup returns the generator in `gens` whose title matches `title`,
// ignoring case. If `gens` is empty, the presets are searched.
func Lookup(gens []Generator, title string) (Generator, bool) {
	if len(gens) == 0 {
		gens = presets[:]
	}
	fold := cases.Fold()
	key := fold.String(title)
	for _, g := range gens {
		if fold.String(g.Title) == key {
			return g, true
		}
	}
	return Generator{}, false
}
