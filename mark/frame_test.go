package mark

import "testing"

func TestNewFrameRejectsMismatchedLength(t *testing.T) {
	_, err := NewFrame(map[string][]interface{}{
		"a": {1.0, 2.0},
		"b": {1.0},
	}, 2)
	if err == nil {
		t.Fatal("expected a length-mismatch error")
	}
}

func TestFrameWithReplacesColumn(t *testing.T) {
	f, err := NewFrame(map[string][]interface{}{"a": {1.0, 2.0}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	g := f.With("a", []interface{}{9.0, 9.0})
	if f.Columns["a"][0] != 1.0 {
		t.Fatal("expected original frame unmodified")
	}
	if g.Columns["a"][0] != 9.0 {
		t.Fatal("expected new frame to carry replaced column")
	}
}

func TestFloat32Column(t *testing.T) {
	f, err := NewFrame(map[string][]interface{}{"a": {float32(1.5), float64(2.5)}}, 2)
	if err != nil {
		t.Fatal(err)
	}
	out := f.Float32Column("a")
	if out[0] != 1.5 || out[1] != 2.5 {
		t.Fatalf("unexpected conversion: %v", out)
	}
}
