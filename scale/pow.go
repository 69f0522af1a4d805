package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// Pow is the continuous power scale (spec.md §4.5): maps through
// sign(x)*|x|^exponent, so negative domains are handled symmetrically.
type Pow struct{}

func (Pow) ScaleType() string { return "pow" }

func (Pow) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "exponent", Kind: KindFloat, Default: 1.0},
		{Name: "clamp", Kind: KindBool, Default: false},
	}
}

func (Pow) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func powTransform(x, e float64) float64 {
	if x < 0 {
		return -math.Pow(-x, e)
	}
	return math.Pow(x, e)
}

func powInverse(y, e float64) float64 {
	if y < 0 {
		return -math.Pow(-y, 1/e)
	}
	return math.Pow(y, 1/e)
}

func (s Pow) domainRange(domain, rng []interface{}) (d0, d1, r0, r1 float64, err error) {
	if len(domain) < 2 {
		return 0, 0, 0, 0, &errs.EmptyDomain{ScaleType: "pow"}
	}
	return domain[0].(float64), domain[len(domain)-1].(float64), rng[0].(float64), rng[len(rng)-1].(float64), nil
}

func (s Pow) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := s.domainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	e := config.Float("exponent", 1.0)
	clamp := config.Bool("clamp", false)
	t0, t1 := powTransform(d0, e), powTransform(d1, e)
	out := make([]interface{}, len(values))
	for i, v := range values {
		x, ok := v.(float64)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = linearMap(powTransform(x, e), t0, t1, r0, r1, clamp)
	}
	return out, nil
}

func (s Pow) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := s.domainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	e := config.Float("exponent", 1.0)
	t0, t1 := powTransform(d0, e), powTransform(d1, e)
	out := make([]interface{}, len(values))
	for i, v := range values {
		y := v.(float64)
		t := linearMap(y, r0, r1, t0, t1, false)
		out[i] = powInverse(t, e)
	}
	return out, nil
}

func (s Pow) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1, _, _, err := s.domainRange(domain, domain)
	if err != nil {
		return nil, err
	}
	return toInterfaces(niceLinearTicks(d0, d1, count)), nil
}

func (s Pow) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	if !config.Bool("nice", false) {
		return domain, nil
	}
	d0, d1, _, _, err := s.domainRange(domain, domain)
	if err != nil {
		return nil, err
	}
	lo, hi := niceDomain(d0, d1, 10)
	return []interface{}{lo, hi}, nil
}
