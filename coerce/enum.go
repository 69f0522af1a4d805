package coerce

import (
	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/scale"
	"github.com/plotkit/engine/scene"
)

// Enum resolves a string value to its ordinal position in target's
// closed variant set, via the same Ordinal scale the rest of the engine
// uses (spec.md §4.6 "Enum targets ... from strings via an internal
// ordinal scale over the variant set"). Returns 0 (the variant set's
// documented default) if v does not name a known variant.
func Enum(target string, v interface{}) (int, error) {
	variants, ok := scene.EnumVariants(target)
	if !ok {
		return 0, &errs.InvalidDataTypeError{Type: target, Expected: "a registered enum target"}
	}
	domain := make([]interface{}, len(variants))
	rng := make([]interface{}, len(variants))
	for i, name := range variants {
		domain[i] = name
		rng[i] = float64(i)
	}
	out, err := scale.Ordinal{}.Scale(scale.Config{"default": 0.0}, domain, rng, []interface{}{v})
	if err != nil {
		return 0, err
	}
	return int(out[0].(float64)), nil
}
