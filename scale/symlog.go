package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// Symlog is the symmetric log scale (spec.md §4.5): behaves linearly in
// a region around zero of width `constant`, and logarithmically beyond
// it, on both sides of the origin. Invertible everywhere (including at
// and through zero, unlike Log).
type Symlog struct{}

func (Symlog) ScaleType() string { return "symlog" }

func (Symlog) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "constant", Kind: KindFloat, Default: 1.0, HasMin: true, Min: 1e-12},
		{Name: "clamp", Kind: KindBool, Default: false},
	}
}

func (Symlog) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func symlogTransform(x, c float64) float64 {
	if x >= 0 {
		return math.Log1p(x / c)
	}
	return -math.Log1p(-x / c)
}

func symlogInverse(y, c float64) float64 {
	if y >= 0 {
		return c * (math.Exp(y) - 1)
	}
	return -c * (math.Exp(-y) - 1)
}

func (s Symlog) domainRange(domain, rng []interface{}) (d0, d1, r0, r1 float64, err error) {
	if len(domain) < 2 {
		return 0, 0, 0, 0, &errs.EmptyDomain{ScaleType: "symlog"}
	}
	return domain[0].(float64), domain[len(domain)-1].(float64), rng[0].(float64), rng[len(rng)-1].(float64), nil
}

func (s Symlog) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := s.domainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	c := config.Float("constant", 1.0)
	clamp := config.Bool("clamp", false)
	t0, t1 := symlogTransform(d0, c), symlogTransform(d1, c)
	out := make([]interface{}, len(values))
	for i, v := range values {
		x, ok := v.(float64)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		if math.IsInf(x, 1) {
			out[i] = r1
			continue
		}
		if math.IsInf(x, -1) {
			out[i] = r0
			continue
		}
		out[i] = linearMap(symlogTransform(x, c), t0, t1, r0, r1, clamp)
	}
	return out, nil
}

func (s Symlog) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, r0, r1, err := s.domainRange(domain, rng)
	if err != nil {
		return nil, err
	}
	c := config.Float("constant", 1.0)
	t0, t1 := symlogTransform(d0, c), symlogTransform(d1, c)
	out := make([]interface{}, len(values))
	for i, v := range values {
		y := v.(float64)
		t := linearMap(y, r0, r1, t0, t1, false)
		out[i] = symlogInverse(t, c)
	}
	return out, nil
}

// Ticks delegates to linear tick selection in the log-transformed space,
// mapped back to domain units (spec.md §4.5 "ticks delegated to linear
// in transformed space").
func (s Symlog) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1, _, _, err := s.domainRange(domain, domain)
	if err != nil {
		return nil, err
	}
	c := config.Float("constant", 1.0)
	t0, t1 := symlogTransform(d0, c), symlogTransform(d1, c)
	transformed := niceLinearTicks(t0, t1, count)
	out := make([]float64, len(transformed))
	for i, t := range transformed {
		out[i] = symlogInverse(t, c)
	}
	return toInterfaces(out), nil
}

func (s Symlog) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	return domain, nil
}
