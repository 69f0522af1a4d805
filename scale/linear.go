package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// Linear is the continuous affine scale y = m*(x-d0)+r0 (spec.md §4.5),
// implemented as the stateless config-in/values-out contract spec.md
// §4.5 requires rather than a mutable in-process scale object.
type Linear struct{}

func (Linear) ScaleType() string { return "linear" }

func (Linear) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "clamp", Kind: KindBool, Default: false},
		{Name: "nice", Kind: KindBool, Default: false},
		{Name: "range_offset", Kind: KindFloat, Default: 0.0},
	}
}

func (Linear) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func linearDomainRange(domain, rng []interface{}) (d0, d1, r0, r1 float64, err error) {
	if len(domain) < 2 {
		return 0, 0, 0, 0, &errs.EmptyDomain{ScaleType: "linear"}
	}
	return domain[0].(float64), domain[len(domain)-1].(float64), rng[0].(float64), rng[len(rng)-1].(float64), nil
}

func linearMap(x, d0, d1, r0, r1 float64, clamp bool) float64 {
	if d1 == d0 {
		return r0
	}
	t := (x - d0) / (d1 - d0)
	if clamp {
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return r0 + t*(r1-r0)
}

func (s Linear) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := linearDomainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	clamp := config.Bool("clamp", false)
	offset := config.Float("range_offset", 0.0)
	out := make([]interface{}, len(values))
	for i, v := range values {
		x, ok := v.(float64)
		if !ok || math.IsNaN(x) {
			out[i] = math.NaN()
			continue
		}
		out[i] = linearMap(x, d0, d1, r0, r1, clamp) + offset
	}
	return out, nil
}

func (s Linear) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := linearDomainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	offset := config.Float("range_offset", 0.0)
	out := make([]interface{}, len(values))
	for i, v := range values {
		y := v.(float64) - offset
		out[i] = linearMap(y, r0, r1, d0, d1, false)
	}
	return out, nil
}

func (s Linear) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1, _, _, err := linearDomainRange(domain, domain)
	if err != nil {
		return nil, err
	}
	return toInterfaces(niceLinearTicks(d0, d1, count)), nil
}

func (s Linear) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	if !config.Bool("nice", false) {
		return domain, nil
	}
	d0, d1, _, _, err := linearDomainRange(domain, domain)
	if err != nil {
		return nil, err
	}
	lo, hi := niceDomain(d0, d1, 10)
	return []interface{}{lo, hi}, nil
}

// Adjust produces the affine correction from one Linear config/domain/
// range triple to another over the same underlying data (spec.md §4.5
// "allowing incremental pan/zoom without resampling data"): applying
// x*Scale+Offset to a value mapped by from reproduces the value to would
// have produced directly, whether the domain, the range, or both differ.
// A degenerate domain or range yields the identity adjustment.
func (s Linear) Adjust(from, to Config) (LinearScaleAdjustment, error) {
	fd0, fd1, fr0, fr1, err := linearDomainRangeFromConfig(from)
	if err != nil {
		return LinearScaleAdjustment{}, err
	}
	td0, td1, tr0, tr1, err := linearDomainRangeFromConfig(to)
	if err != nil {
		return LinearScaleAdjustment{}, err
	}
	if fr1 == fr0 || fd1 == fd0 || td1 == td0 {
		return LinearScaleAdjustment{Scale: 1, Offset: 0}, nil
	}
	fromSlope := (fr1 - fr0) / (fd1 - fd0)
	toSlope := (tr1 - tr0) / (td1 - td0)
	scaleRatio := toSlope / fromSlope
	offset := tr0 + toSlope*(fd0-td0) - scaleRatio*fr0
	return LinearScaleAdjustment{Scale: scaleRatio, Offset: offset}, nil
}

// linearDomainRangeFromConfig reads an embedded "domain"/"range" pair
// carried directly in Config, used only by Adjust, which operates on
// two bare configs rather than the (config, domain, range) triple the
// rest of ScaleImpl takes.
func linearDomainRangeFromConfig(c Config) (d0, d1, r0, r1 float64, err error) {
	d, ok := c["domain"].([]float64)
	if !ok || len(d) < 2 {
		return 0, 0, 0, 0, &errs.EmptyDomain{ScaleType: "linear"}
	}
	r, ok := c["range"].([]float64)
	if !ok || len(r) < 2 {
		return 0, 0, 0, 0, &errs.EmptyDomain{ScaleType: "linear"}
	}
	return d[0], d[len(d)-1], r[0], r[len(r)-1], nil
}
