package scale

import (
	"math"

	"github.com/plotkit/engine/errs"
)

// Band is the discrete-domain, continuous-numeric-band scale (spec.md
// §4.5): each distinct domain value gets an equal-width band of the
// range, subject to the step/align/padding/clip algebra spec.md §4.5
// and §8's worked examples specify.
type Band struct{}

func (Band) ScaleType() string { return "band" }

func (Band) OptionDefinitions() []OptionDefinition {
	return []OptionDefinition{
		{Name: "align", Kind: KindUnitInterval, Default: 0.5},
		{Name: "band", Kind: KindUnitInterval, Default: 0.0},
		{Name: "padding_inner", Kind: KindUnitInterval, Default: 0.0},
		{Name: "padding_outer", Kind: KindFloat, Default: 0.0, HasMin: true, Min: 0},
		{Name: "round", Kind: KindBool, Default: false},
		{Name: "range_offset", Kind: KindFloat, Default: 0.0},
		{Name: "clip_padding_lower", Kind: KindFloat, Default: 0.0, HasMin: true, Min: 0},
		{Name: "clip_padding_upper", Kind: KindFloat, Default: 0.0, HasMin: true, Min: 0},
	}
}

func (Band) InferDomainFromDataMethod() InferDomainMethod { return InferUnique }

// bandLayout is the computed step/start/bandwidth triple spec.md §4.5
// defines for a band scale of n domain entries over [start, stop].
type bandLayout struct {
	start     float64
	step      float64
	bandwidth float64
}

func computeBandLayout(n int, start, stop float64, config Config) bandLayout {
	paddingInner := config.Float("padding_inner", 0.0)
	paddingOuter := config.Float("padding_outer", 0.0)
	align := config.Float("align", 0.5)
	round := config.Bool("round", false)

	// Base step/padding computed without clip padding, used to convert
	// clip_padding_{lower,upper} from pixels into padding_outer units
	// (spec.md §4.5 "Clip padding is converted from pixels to
	// step-units via the base step").
	baseStep := (stop - start) / math.Max(1, float64(n)-paddingInner+2*paddingOuter)
	clipLower := config.Float("clip_padding_lower", 0.0)
	clipUpper := config.Float("clip_padding_upper", 0.0)
	if clipLower > 0 || clipUpper > 0 {
		clipOuter := (clipLower + clipUpper) / 2 / baseStep
		if clipOuter > paddingOuter {
			paddingOuter = clipOuter
		}
	}

	step := (stop - start) / math.Max(1, float64(n)-paddingInner+2*paddingOuter)
	if round {
		step = math.Floor(step)
	}
	start2 := start + (stop-start-step*(float64(n)-paddingInner))*align
	if round {
		start2 = math.Round(start2)
	}
	bandwidth := step * (1 - paddingInner)
	if round {
		bandwidth = math.Round(bandwidth)
	}
	return bandLayout{start: start2, step: step, bandwidth: bandwidth}
}

func (l bandLayout) position(i int, bandParam, rangeOffset float64) float64 {
	return l.start + l.step*float64(i) + l.bandwidth*bandParam + rangeOffset
}

func bandDomainIndex(domain []interface{}, v interface{}) (int, bool) {
	for i, d := range domain {
		if d == v {
			return i, true
		}
	}
	return 0, false
}

func (s Band) Scale(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	if err := Validate(s.ScaleType(), s.OptionDefinitions(), config); err != nil {
		return nil, err
	}
	if len(domain) == 0 {
		return nil, &errs.EmptyDomain{ScaleType: "band"}
	}
	start, stop := rng[0].(float64), rng[len(rng)-1].(float64)
	layout := computeBandLayout(len(domain), start, stop, config)
	band := config.Float("band", 0.0)
	offset := config.Float("range_offset", 0.0)
	out := make([]interface{}, len(values))
	for i, v := range values {
		idx, ok := bandDomainIndex(domain, v)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = layout.position(idx, band, offset)
	}
	return out, nil
}

func (s Band) Invert(config Config, domain, rng, values []interface{}) ([]interface{}, error) {
	return nil, &errs.ScaleOperationNotSupported{ScaleType: "band", Operation: "invert (use InvertRangeInterval)"}
}

// InvertRangeInterval returns the domain values whose bands overlap
// [lo, hi], rejecting positions that fall in an inter-band gap more
// than bandwidth+eps past a band's start (spec.md §4.5, §8 "Band scale
// exact positions").
func (s Band) InvertRangeInterval(config Config, domain, rng []interface{}, lo, hi float64) ([]interface{}, error) {
	if len(domain) == 0 {
		return nil, &errs.EmptyDomain{ScaleType: "band"}
	}
	start, stop := rng[0].(float64), rng[len(rng)-1].(float64)
	layout := computeBandLayout(len(domain), start, stop, config)
	const eps = 1e-10

	var out []interface{}
	for i, d := range domain {
		pos := layout.position(i, 0, config.Float("range_offset", 0.0))
		end := pos + layout.bandwidth
		// A band is selected only if its occupied [pos, pos+bandwidth]
		// interval overlaps [lo, hi]; values that fall in the
		// inter-band padding gap overlap no band's occupied interval
		// and are naturally excluded.
		if end < lo-eps || pos > hi+eps {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s Band) Ticks(config Config, domain []interface{}, count int) ([]interface{}, error) {
	return domain, nil
}

func (s Band) ComputeNiceDomain(config Config, domain []interface{}) ([]interface{}, error) {
	return domain, nil
}
