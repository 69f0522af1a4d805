package scale

import (
	"math"

	moremath "github.com/aclements/go-moremath/scale"
)

// niceStepMultipliers are the per-decade multipliers of the base-10 step
// sequence d3/gg-style linear tick selection cycles through: 1, 2, 5,
// 10, 20, 50, 100, ...
var niceStepMultipliers = []float64{1, 2, 5}

// stepAtLevel returns the tick step at level l: level 0 is the coarsest
// step, span itself, and increasing the level makes steps finer.
// Negative levels are treated as level 0.
func stepAtLevel(span float64, l int) float64 {
	// Level 0 starts at a step of span (one bucket), and each higher
	// level divides by the next 1/2/5 multiplier, decade by decade.
	idx := l
	if idx < 0 {
		idx = 0
	}
	decade := idx / len(niceStepMultipliers)
	mult := niceStepMultipliers[idx%len(niceStepMultipliers)]
	return span / (mult * math.Pow10(decade))
}

// niceLinearTicks chooses a human-friendly step covering [lo, hi] and
// returns the tick values at that step, using moremath/scale.TickOptions
// to search for the lowest (finest) level producing at most count ticks.
func niceLinearTicks(lo, hi float64, count int) []float64 {
	if count < 1 {
		count = 1
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 || math.IsNaN(span) {
		return []float64{lo}
	}

	rawStep := niceStep(span / float64(count))
	ticker := linearTicker{lo: lo, hi: hi, rawStep: rawStep}

	opts := moremath.TickOptions{Max: count}
	level, ok := opts.FindLevel(ticker, 0)
	if !ok {
		level = 0
	}
	return ticker.ticksAt(level)
}

// linearTicker implements go-moremath/scale.Ticker over the base-10
// step sequence niceStepForLevel walks: level 0 is rawStep, higher
// levels coarsen it, lower levels refine it.
type linearTicker struct {
	lo, hi  float64
	rawStep float64
}

func (t linearTicker) CountTicks(level int) int {
	step := niceStepForLevel(t.rawStep, level)
	if step <= 0 {
		return math.MaxInt32
	}
	return int(math.Floor(t.hi/step) - math.Ceil(t.lo/step) + 1)
}

func (t linearTicker) TicksAtLevel(level int) interface{} {
	return t.ticksAt(level)
}

func (t linearTicker) ticksAt(level int) []float64 {
	step := niceStepForLevel(t.rawStep, level)
	start := math.Ceil(t.lo/step) * step
	var out []float64
	for v := start; v <= t.hi+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// niceStep rounds raw up to the nearest value in {1, 2, 5, 10} x 10^n.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	frac := raw / math.Pow10(int(exp))
	var nice float64
	switch {
	case frac <= 1:
		nice = 1
	case frac <= 2:
		nice = 2
	case frac <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * math.Pow10(int(exp))
}

// niceStepForLevel coarsens or refines base by 10^level: positive level
// widens the step (fewer ticks), negative narrows it.
func niceStepForLevel(base float64, level int) float64 {
	return base * math.Pow10(level)
}

// niceDomain rounds [lo, hi] outward to the nearest multiple of the step
// niceLinearTicks would choose for count ticks (spec.md §4.5 Linear
// "nice" option, spec.md §4.5 compute_nice_domain).
func niceDomain(lo, hi float64, count int) (float64, float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo, hi
	}
	step := niceStep((hi - lo) / float64(count))
	return math.Floor(lo/step) * step, math.Ceil(hi/step) * step
}
