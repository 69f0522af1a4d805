// Package scale implements the scale engine (spec.md §3.5, §4.5): pure
// functions mapping a domain of data values to a range of visual values,
// plus tick generation, domain nicing, and (for continuous numeric scales)
// the affine pan/zoom adjustment between two configs of the same type.
//
// Internally scales operate on plain Go slices rather than raw Arrow
// arrays, taking and returning []interface{} rather than typed Arrow
// arrays; callers at the mark-compiler boundary bridge to and from
// Arrow via the coerce package.
package scale

import "github.com/plotkit/engine/errs"

// OptionKind names the shape of a scale option's value, for validation.
type OptionKind int

const (
	KindFloat OptionKind = iota
	KindBool
	KindString
	KindUnitInterval // float in [0,1]; values outside are rejected
)

// OptionDefinition describes one configurable option of a scale
// implementation (spec.md §4.5 "every call ... validates its config's
// options against the implementation's OptionDefinitions").
type OptionDefinition struct {
	Name    string
	Kind    OptionKind
	Min     float64 // inclusive, only meaningful when Kind constrains a range
	Max     float64
	HasMin  bool
	HasMax  bool
	Default interface{}
}

// Config is a scale's option bag, keyed by OptionDefinition.Name.
type Config map[string]interface{}

// Float reads a float64 option, falling back to def when unset.
func (c Config) Float(name string, def float64) float64 {
	if v, ok := c[name]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

// Bool reads a bool option, falling back to def when unset.
func (c Config) Bool(name string, def bool) bool {
	if v, ok := c[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// String reads a string option, falling back to def when unset.
func (c Config) String(name string, def string) string {
	if v, ok := c[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Validate checks every option present in c against defs, and every
// OptionDefinition with HasMin/HasMax against c's bound, if set.
func Validate(scaleType string, defs []OptionDefinition, c Config) error {
	byName := make(map[string]OptionDefinition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	for name, v := range c {
		d, ok := byName[name]
		if !ok {
			continue // unknown options are ignored, not rejected
		}
		switch d.Kind {
		case KindFloat, KindUnitInterval:
			f, ok := v.(float64)
			if !ok {
				return &errs.InvalidScalePropertyValue{ScaleType: scaleType, Option: name, Value: v, Reason: "expected a float"}
			}
			if d.Kind == KindUnitInterval && (f < 0 || f > 1) {
				return &errs.InvalidScalePropertyValue{ScaleType: scaleType, Option: name, Value: v, Reason: "must be in [0,1]"}
			}
			if d.HasMin && f < d.Min {
				return &errs.InvalidScalePropertyValue{ScaleType: scaleType, Option: name, Value: v, Reason: "below minimum"}
			}
			if d.HasMax && f > d.Max {
				return &errs.InvalidScalePropertyValue{ScaleType: scaleType, Option: name, Value: v, Reason: "above maximum"}
			}
		case KindBool:
			if _, ok := v.(bool); !ok {
				return &errs.InvalidScalePropertyValue{ScaleType: scaleType, Option: name, Value: v, Reason: "expected a bool"}
			}
		case KindString:
			if _, ok := v.(string); !ok {
				return &errs.InvalidScalePropertyValue{ScaleType: scaleType, Option: name, Value: v, Reason: "expected a string"}
			}
		}
	}
	return nil
}

// InferDomainMethod names how a scale's domain is inferred from data
// (spec.md §4.5 infer_domain_from_data_method).
type InferDomainMethod int

const (
	InferInterval InferDomainMethod = iota
	InferUnique
)

// LinearScaleAdjustment is the affine pan/zoom correction spec.md §4.5
// `adjust` produces for continuous numeric scales: applying
// x*Scale+Offset to a value already mapped by the "from" config yields
// the value the "to" config would have produced directly.
type LinearScaleAdjustment struct {
	Scale  float64
	Offset float64
}
