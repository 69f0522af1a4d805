package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// Quantize partitions a continuous domain into len(range) uniform
// segments (spec.md §4.5), optionally preceded by nicing the domain.
type Quantize struct{}

func (Quantize) ScaleType() string { return "quantize" }

func (Quantize) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "nice", Kind: KindBool, Default: false},
	}
}

func (Quantize) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func (s Quantize) segment(x, d0, d1 float64, n int) int {
	if d1 == d0 {
		return 0
	}
	t := (x - d0) / (d1 - d0)
	idx := int(math.Floor(t * float64(n)))
	if idx < 0 {
		idx = 0
	} else if idx >= n {
		idx = n - 1
	}
	return idx
}

func (s Quantize) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if len(domain) < 2 || len(rng) == 0 {
		return nil, &errs.EmptyDomain{ScaleType: "quantize"}
	}
	d0, d1 := domain[0].(float64), domain[len(domain)-1].(float64)
	out := make([]interface{}, len(values))
	for i, v := range values {
		x, ok := v.(float64)
		if !ok || math.IsNaN(x) {
			out[i] = nil
			continue
		}
		out[i] = rng[s.segment(x, d0, d1, len(rng))]
	}
	return out, nil
}

func (s Quantize) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	return nil, &errs.ScaleOperationNotSupported{ScaleType: "quantize", Operation: "invert"}
}

// InvertRangeInterval returns the range entries whose domain segments
// intersect [lo, hi], where lo and hi are domain values.
func (s Quantize) InvertRangeInterval(config Config, domain, rng []interface{}, lo, hi float64) ([]interface{}, error) {
	d0, d1 := domain[0].(float64), domain[len(domain)-1].(float64)
	n := len(rng)
	step := (d1 - d0) / float64(n)
	var out []interface{}
	for i := 0; i < n; i++ {
		segStart := d0 + step*float64(i)
		segEnd := d0 + step*float64(i+1)
		if segEnd < lo || segStart > hi {
			continue
		}
		out = append(out, rng[i])
	}
	return out, nil
}

func (s Quantize) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	d0, d1 := domain[0].(float64), domain[len(domain)-1].(float64)
	return toInterfaces(niceLinearTicks(d0, d1, count)), nil
}

func (s Quantize) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	if !config.Bool("nice", false) {
		return domain, nil
	}
	d0, d1 := domain[0].(float64), domain[len(domain)-1].(float64)
	lo, hi := niceDomain(d0, d1, 10)
	return []interface{}{lo, hi}, nil
}
