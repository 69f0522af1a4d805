package scale

import (
	"math"
	"testing"
	"time"
)

func TestSymlogRoundTrip(t *testing.T) {
	domain := []interface{}{-100.0, 100.0}
	rng := []interface{}{0.0, 1.0}
	xs := []float64{-100, -10, -1, 0, 1, 10, 100}
	for _, x := range xs {
		scaled, err := Symlog{}.Scale(Config{}, domain, rng, []interface{}{x})
		if err != nil {
			t.Fatalf("scale: %v", err)
		}
		back, err := Symlog{}.Invert(Config{}, domain, rng, scaled)
		if err != nil {
			t.Fatalf("invert: %v", err)
		}
		if !almostEqual(back[0].(float64), x) {
			t.Fatalf("round trip for %v: got %v", x, back[0])
		}
	}

	scaled, err := Symlog{}.Scale(Config{}, domain, rng, []interface{}{math.Inf(1), math.Inf(-1)})
	if err != nil {
		t.Fatalf("scale inf: %v", err)
	}
	if scaled[0].(float64) != 1.0 || scaled[1].(float64) != 0.0 {
		t.Fatalf("want infinities clamped to range endpoints, got %v", scaled)
	}
}

func TestThresholdBoundary(t *testing.T) {
	domain := []interface{}{30.0, 70.0}
	rng := []interface{}{"low", "med", "high"}
	out, err := Threshold{}.Scale(Config{}, domain, rng, []interface{}{20.0, 50.0, 80.0})
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []string{"low", "med", "high"}
	for i, v := range out {
		if v.(string) != want[i] {
			t.Fatalf("cell %d: got %v want %v", i, v, want[i])
		}
	}

	badDomain := []interface{}{70.0, 30.0}
	if _, err := Threshold{}.Scale(Config{}, badDomain, rng, []interface{}{50.0}); err == nil {
		t.Fatal("want ThresholdsNotAscending for non-ascending thresholds")
	}
}

func TestTimeScale(t *testing.T) {
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d1 := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	domain := []interface{}{d0, d1}
	rng := []interface{}{0.0, 100.0}

	july1 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	out, err := Time{}.Scale(Config{}, domain, rng, []interface{}{july1})
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if math.Abs(out[0].(float64)-50.0) > 1 {
		t.Fatalf("want ~50.0, got %v", out[0])
	}

	nice, err := Time{}.ComputeNiceDomain(Config{}, domain)
	if err != nil {
		t.Fatalf("nice domain: %v", err)
	}
	lo := nice[0].(time.Time)
	hi := nice[1].(time.Time)
	if lo.Day() != 1 || hi.Day() != 1 {
		t.Fatalf("want month boundaries, got lo=%v hi=%v", lo, hi)
	}
}

func TestOrdinalDefault(t *testing.T) {
	domain := []interface{}{"a", "b", "c"}
	rng := []interface{}{1.4, 2.5, 3.6}
	config := Config{"default": math.NaN()}

	out, err := Ordinal{}.Scale(config, domain, rng, []interface{}{"d", "b"})
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if !math.IsNaN(out[0].(float64)) {
		t.Fatalf("want NaN for unmatched domain value, got %v", out[0])
	}
	if out[1].(float64) != 2.5 {
		t.Fatalf("want 2.5, got %v", out[1])
	}
}
