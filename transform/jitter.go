package transform

import (
	"context"

	"github.com/plotkit/engine/mark"
)

// splitmix64 is the deterministic PRNG spec.md §8's redesign flags
// call for in place of the original's fixed offset ("the source's
// Jitter uses a deterministic offset rather than randomness; a faithful
// Go port should use a seeded PRNG, e.g. splitmix64 seeded by the seed
// option").
type splitmix64 struct {
	state uint64
}

func newSplitmix64(seed uint64) *splitmix64 {
	return &splitmix64{state: seed}
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// float64 returns the next value uniformly distributed in [0, 1).
func (s *splitmix64) float64() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// Jitter implements spec.md §4.9's Jitter adjust: it shifts the named
// position channels by a pseudo-random amount in
// [-Amplitude, +Amplitude], deterministic for a given Seed.
type Jitter struct {
	Channels  []string
	Amplitude float32
	Seed      uint64
}

func (j Jitter) Name() string { return "jitter" }

func (j Jitter) Apply(ctx context.Context, f *mark.Frame, bbox mark.BBox, actx mark.AdjustContext) (*mark.Frame, error) {
	rng := newSplitmix64(j.Seed)
	out := f
	for _, ch := range j.Channels {
		col := f.Float32Column(ch)
		shifted := make([]interface{}, len(col))
		for i, v := range col {
			offset := float32((rng.float64()*2 - 1)) * j.Amplitude
			shifted[i] = v + offset
		}
		out = out.With(ch, shifted)
	}
	return out, nil
}
