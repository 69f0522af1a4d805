package scale

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestBandExactPositions(t *testing.T) {
	domain := []interface{}{"a", "b", "c"}
	rng := []interface{}{0.0, 120.0}
	config := Config{"padding_inner": 0.2, "padding_outer": 0.2}

	out, err := Band{}.Scale(config, domain, rng, domain)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []float64{7.5, 45.0, 82.5}
	for i, v := range out {
		if !almostEqual(v.(float64), want[i]) {
			t.Fatalf("position %d: got %v want %v", i, v, want[i])
		}
	}

	layout := computeBandLayout(3, 0, 120, config)
	if !almostEqual(layout.bandwidth, 30.0) {
		t.Fatalf("bandwidth: got %v want 30.0", layout.bandwidth)
	}

	cases := []struct {
		lo, hi float64
		want   []interface{}
	}{
		{7.5, 82.5, []interface{}{"a", "b", "c"}},
		{45.0, 82.5, []interface{}{"b", "c"}},
		{40.0, 40.0, nil},
	}
	for _, c := range cases {
		got, err := Band{}.InvertRangeInterval(config, domain, rng, c.lo, c.hi)
		if err != nil {
			t.Fatalf("invert_range_interval: %v", err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("invert_range_interval(%v,%v): got %v want %v", c.lo, c.hi, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("invert_range_interval(%v,%v): got %v want %v", c.lo, c.hi, got, c.want)
			}
		}
	}
}

func TestBandRoundAndAlign(t *testing.T) {
	domain := make([]interface{}, 8)
	for i := range domain {
		domain[i] = i
	}
	rng := []interface{}{0.0, 300.0}
	config := Config{"round": true, "align": 0.5}

	out, err := Band{}.Scale(config, domain, rng, domain)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []float64{2, 39, 76, 113, 150, 187, 224, 261}
	for i, v := range out {
		if v.(float64) != want[i] {
			t.Fatalf("position %d: got %v want %v", i, v, want[i])
		}
	}
	layout := computeBandLayout(8, 0, 300, config)
	if layout.bandwidth != 37 || layout.step != 37 {
		t.Fatalf("want bandwidth=step=37, got bandwidth=%v step=%v", layout.bandwidth, layout.step)
	}
}

func TestPointScale(t *testing.T) {
	domain := []interface{}{"a", "b", "c"}
	rng := []interface{}{0.0, 100.0}

	out, err := Point{}.Scale(Config{}, domain, rng, domain)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []float64{0, 50, 100}
	for i, v := range out {
		if v.(float64) != want[i] {
			t.Fatalf("position %d: got %v want %v", i, v, want[i])
		}
	}

	domain4 := make([]interface{}, 4)
	for i := range domain4 {
		domain4[i] = i
	}
	out2, err := Point{}.Scale(Config{"round": true}, domain4, rng, domain4)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want2 := []float64{1, 34, 67, 100}
	for i, v := range out2 {
		if v.(float64) != want2[i] {
			t.Fatalf("rounded position %d: got %v want %v", i, v, want2[i])
		}
	}
}
