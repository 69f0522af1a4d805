package mark

import "testing"

func TestCartesianIdentity(t *testing.T) {
	x, y := Cartesian{}.ToScreen(map[string]float32{"x": 3, "y": 4})
	if x != 3 || y != 4 {
		t.Fatalf("expected identity passthrough, got (%v, %v)", x, y)
	}
}

func TestCartesianComplement(t *testing.T) {
	c, err := Cartesian{}.ComplementOf("x")
	if err != nil || c != "y" {
		t.Fatalf("expected complement of x to be y, got %q, err=%v", c, err)
	}
	if _, err := Cartesian{}.ComplementOf("z"); err == nil {
		t.Fatal("expected error for unknown channel")
	}
}

func TestPolarToScreen(t *testing.T) {
	x, y := Polar{}.ToScreen(map[string]float32{"r": 2, "theta": 0})
	if x < 1.999 || x > 2.001 || y < -0.001 || y > 0.001 {
		t.Fatalf("expected (2, 0) at theta=0, got (%v, %v)", x, y)
	}
}

func TestPolarComplement(t *testing.T) {
	c, err := Polar{}.ComplementOf("r")
	if err != nil || c != "theta" {
		t.Fatalf("expected complement of r to be theta, got %q, err=%v", c, err)
	}
}
