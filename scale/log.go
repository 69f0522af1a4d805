package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// Log is the continuous logarithmic scale (spec.md §4.5): maps through
// log_base. The domain must not cross or touch zero.
type Log struct{}

func (Log) ScaleType() string { return "log" }

func (Log) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "base", Kind: KindFloat, Default: 10.0, HasMin: true, Min: 1e-9},
		{Name: "clamp", Kind: KindBool, Default: false},
	}
}

func (Log) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func logBase(x, base float64) float64 { return math.Log(x) / math.Log(base) }

func (s Log) checkDomain(domain []interface{}) (d0, d1 float64, err error) {
	if len(domain) < 2 {
		return 0, 0, &errs.EmptyDomain{ScaleType: "log"}
	}
	d0, d1 = domain[0].(float64), domain[len(domain)-1].(float64)
	if (d0 <= 0 && d1 >= 0) || (d0 >= 0 && d1 <= 0) {
		return 0, 0, &errs.InvalidScalePropertyValue{ScaleType: "log", Option: "domain", Value: []float64{d0, d1}, Reason: "must not cross or touch zero"}
	}
	return d0, d1, nil
}

func (s Log) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, err := s.checkDomain(domain)
	if err != nil {
		return nil, err
	}
	r0, r1 := rng[0].(float64), rng[len(rng)-1].(float64)
	base := config.Float("base", 10.0)
	clamp := config.Bool("clamp", false)
	l0, l1 := logBase(math.Abs(d0), base), logBase(math.Abs(d1), base)
	out := make([]interface{}, len(values))
	for i, v := range values {
		x, ok := v.(float64)
		if !ok || x == 0 || (x < 0) != (d0 < 0) {
			out[i] = math.NaN()
			continue
		}
		out[i] = linearMap(logBase(math.Abs(x), base), l0, l1, r0, r1, clamp)
	}
	return out, nil
}

func (s Log) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	d0, d1, err := s.checkDomain(domain)
	if err != nil {
		return nil, err
	}
	r0, r1 := rng[0].(float64), rng[len(rng)-1].(float64)
	base := config.Float("base", 10.0)
	l0, l1 := logBase(math.Abs(d0), base), logBase(math.Abs(d1), base)
	out := make([]interface{}, len(values))
	for i, v := range values {
		y := v.(float64)
		l := linearMap(y, r0, r1, l0, l1, false)
		out[i] = math.Pow(base, l)
		if d0 < 0 {
			out[i] = -out[i].(float64)
		}
	}
	return out, nil
}

// Ticks are emitted at powers of base, per spec.md §4.5.
func (s Log) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1, err := s.checkDomain(domain)
	if err != nil {
		return nil, err
	}
	base := config.Float("base", 10.0)
	lo, hi := logBase(math.Abs(d0), base), logBase(math.Abs(d1), base)
	if hi < lo {
		lo, hi = hi, lo
	}
	var out []float64
	for p := math.Floor(lo); p <= math.Ceil(hi); p++ {
		out = append(out, math.Pow(base, p))
	}
	if d0 < 0 {
		for i, v := range out {
			out[i] = -v
		}
	}
	return toInterfaces(out), nil
}

func (s Log) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	d0, d1, err := s.checkDomain(domain)
	if err != nil {
		return nil, err
	}
	base := config.Float("base", 10.0)
	neg := d0 < 0
	a0, a1 := math.Abs(d0), math.Abs(d1)
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	lo := math.Pow(base, math.Floor(logBase(a0, base)))
	hi := math.Pow(base, math.Ceil(logBase(a1, base)))
	if neg {
		lo, hi = -hi, -lo
	}
	return []interface{}{lo, hi}, nil
}
