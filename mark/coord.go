package mark

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// CoordSystem is the small closed coordinate-system interface (spec.md
// §3.6 "currently cartesian or polar; extensible"): a third coordinate
// system is a new implementation of this interface, not a new switch
// branch threaded through the compiler.
type CoordSystem interface {
	Name() string

	// RequiredChannels names the position channels this coordinate
	// system needs present in a mark's encodings.
	RequiredChannels() []string

	// ToScreen transforms one row's resolved position channel values
	// (keyed by RequiredChannels' names) into screen-space {x, y}.
	ToScreen(pos map[string]float32) (x, y float32)

	// ComplementOf names the natural "complement" channel of primary
	// for Group's coordinate-aware aggregation routing (spec.md §4.9
	// "Group::x(\"cat\").aggregate(...) routes aggregate output to y").
	ComplementOf(primary string) (string, error)
}

// Cartesian is the identity coordinate system: {x, y} pass through
// unchanged (spec.md §4.8 "cartesian is identity").
type Cartesian struct{}

func (Cartesian) Name() string               { return "cartesian" }
func (Cartesian) RequiredChannels() []string  { return []string{"x", "y"} }
func (Cartesian) ToScreen(pos map[string]float32) (float32, float32) {
	return pos["x"], pos["y"]
}
func (Cartesian) ComplementOf(primary string) (string, error) {
	switch primary {
	case "x":
		return "y", nil
	case "y":
		return "x", nil
	default:
		return "", &errs.MissingChannelError{Coord: "cartesian", Channel: primary}
	}
}

// Polar transforms {r, theta} into screen {x, y} via x = r*cos(theta),
// y = r*sin(theta) (spec.md §4.8 step 3).
type Polar struct{}

func (Polar) Name() string              { return "polar" }
func (Polar) RequiredChannels() []string { return []string{"r", "theta"} }
func (Polar) ToScreen(pos map[string]float32) (float32, float32) {
	r, theta := float64(pos["r"]), float64(pos["theta"])
	return float32(r * math.Cos(theta)), float32(r * math.Sin(theta))
}
func (Polar) ComplementOf(primary string) (string, error) {
	switch primary {
	case "r":
		return "theta", nil
	case "theta":
		return "r", nil
	default:
		return "", &errs.MissingChannelError{Coord: "polar", Channel: primary}
	}
}
