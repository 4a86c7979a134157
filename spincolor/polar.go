// Provides the procedural colors of the spin art tools:
// a polar coordinate (radius, angle) is mapped through one behavior
// per color channel to an RGB color.
package spincolor

import (
	"errors"
	"math"
)

// ErrZeroMaxRadius is returned by Polar.Validate when a radius based
// behavior would have to divide by a zero max radius.
var ErrZeroMaxRadius = errors.New("spincolor: max radius must be positive")

const twoPi = 2 * math.Pi

// Polar locates a sample relative to the spin center.
// The angle is always stored in [0, 2π).
type Polar struct {
	Radius    float64 // distance to the center, >= 0
	MaxRadius float64 // normalization bound for the radius behaviors
	angle     float64
}

// NewPolar returns the coordinate, with `angle` normalized.
func NewPolar(radius, angle, maxRadius float64) Polar {
	return Polar{Radius: radius, MaxRadius: maxRadius, angle: normalizeAngle(angle)}
}

// Angle returns the normalized angle, in [0, 2π).
func (p Polar) Angle() float64 { return p.angle }

// WithAngle returns a copy of `p` with the given angle, normalized.
func (p Polar) WithAngle(angle float64) Polar {
	p.angle = normalizeAngle(angle)
	return p
}

// Validate checks that the radius behaviors are defined for `p`.
func (p Polar) Validate() error {
	if !(p.MaxRadius > 0) {
		return ErrZeroMaxRadius
	}
	return nil
}

func normalizeAngle(angle float64) float64 {
	a := math.Mod(angle, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi { // -tiny + 2π may round up
		a = 0
	}
	return a
}
