package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

var negInf = math.Inf(-1)
var posInf = math.Inf(1)

// Threshold partitions a numeric domain using explicit ascending
// threshold values, producing len(thresholds)+1 cells (spec.md §4.5,
// §8 "Threshold boundary"). The thresholds are the scale's "domain".
type Threshold struct{}

func (Threshold) ScaleType() string { return "threshold" }

func (Threshold) OptionDefinitions() []OptionDefinition { return nil }

func (Threshold) InferDomainFromDataMethod() InferDomainMethod { return InferInterval }

func checkThresholds(thresholds []interface{}, rng []interface{}) error {
	if len(rng) != len(thresholds)+1 {
		return &errs.ThresholdDomainMismatch{DomainLen: len(thresholds), RangeLen: len(rng)}
	}
	prev := make([]float64, 0, len(thresholds))
	for i, t := range thresholds {
		f := t.(float64)
		if i > 0 && f <= prev[i-1] {
			fs := make([]float64, len(thresholds))
			for j, tt := range thresholds {
				fs[j] = tt.(float64)
			}
			return &errs.ThresholdsNotAscending{Thresholds: fs}
		}
		prev = append(prev, f)
	}
	return nil
}

func (s Threshold) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := checkThresholds(domain, rng); err != nil {
		return nil, err
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		x := v.(float64)
		cell := 0
		for _, t := range domain {
			if x >= t.(float64) {
				cell++
			} else {
				break
			}
		}
		out[i] = rng[cell]
	}
	return out, nil
}

func (s Threshold) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	return nil, &errs.ScaleOperationNotSupported{ScaleType: "threshold", Operation: "invert"}
}

// InvertRangeInterval returns the range-cell labels whose numeric span
// (bounded by the surrounding thresholds) intersects [lo, hi].
func (s Threshold) InvertRangeInterval(config Config, domain, rng []interface{}, lo, hi float64) ([]interface{}, error) {
	if err := checkThresholds(domain, rng); err != nil {
		return nil, err
	}
	bounds := make([]float64, len(domain)+2)
	bounds[0] = negInf
	for i, t := range domain {
		bounds[i+1] = t.(float64)
	}
	bounds[len(bounds)-1] = posInf
	var out []interface{}
	for i := range rng {
		if bounds[i+1] < lo || bounds[i] > hi {
			continue
		}
		out = append(out, rng[i])
	}
	return out, nil
}

func (s Threshold) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	return domain, nil
}

func (s Threshold) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	return domain, nil
}
