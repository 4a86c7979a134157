package spincolor

import (
	"fmt"
	"math"

	"github.com/benoitkugler/spinart/spinlog"
)

// BehaviorKind tags the rule used by a ChannelBehavior.
type BehaviorKind uint8

const (
	AngleIncreasing BehaviorKind = iota // angle / 2π
	AngleUpDown                         // 0 -> 1 -> 0 over one turn
	RadiusOutward                       // radius / maxRadius
	RadiusInward                        // 1 - radius / maxRadius
	FixedValue                          // constant
)

func (k BehaviorKind) String() string {
	switch k {
	case AngleIncreasing:
		return "angle-increasing"
	case AngleUpDown:
		return "angle-up-down"
	case RadiusOutward:
		return "radius-outward"
	case RadiusInward:
		return "radius-inward"
	case FixedValue:
		return "fixed"
	default:
		return "<unknown BehaviorKind>"
	}
}

// parseBehaviorKind is the inverse of BehaviorKind.String
func parseBehaviorKind(s string) (BehaviorKind, bool) {
	for k := AngleIncreasing; k <= FixedValue; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// ChannelBehavior maps a polar coordinate to the value of one channel.
// Value is only used by FixedValue.
type ChannelBehavior struct {
	Kind  BehaviorKind
	Value float64
}

// Behaviors without parameters.
var (
	Increasing = ChannelBehavior{Kind: AngleIncreasing}
	UpDown     = ChannelBehavior{Kind: AngleUpDown}
	Outward    = ChannelBehavior{Kind: RadiusOutward}
	Inward     = ChannelBehavior{Kind: RadiusInward}
)

// Fixed returns a constant behavior. `v` is expected in [0,1]
// but is not clamped.
func Fixed(v float64) ChannelBehavior { return ChannelBehavior{Kind: FixedValue, Value: v} }

func (b ChannelBehavior) String() string {
	if b.Kind == FixedValue {
		return fmt.Sprintf("fixed(%g)", b.Value)
	}
	return b.Kind.String()
}

// Eval returns the channel value at `p`. Results are not clamped.
func (b ChannelBehavior) Eval(p Polar) float64 {
	switch b.Kind {
	case AngleIncreasing:
		return p.angle / twoPi
	case AngleUpDown:
		a := p.angle
		if a > math.Pi {
			a = twoPi - a
		}
		return a / math.Pi
	case RadiusOutward:
		return radiusRatio(p)
	case RadiusInward:
		return 1 - radiusRatio(p)
	default:
		return b.Value
	}
}

// radiusRatio returns radius / maxRadius, or 0 when maxRadius is not positive.
func radiusRatio(p Polar) float64 {
	if !(p.MaxRadius > 0) {
		assert(false, "radius behavior evaluated with a zero max radius")
		spinlog.Logger().Warn("spincolor: radius behavior with zero max radius", "radius", p.Radius)
		return 0
	}
	return p.Radius / p.MaxRadius
}
