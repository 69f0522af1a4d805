package variable

import "testing"

func TestEquality(t *testing.T) {
	a := New(ValOrExpr, "scope", "x")
	b := New(ValOrExpr, "scope", "x")
	c := New(Dataset, "scope", "x")
	if a != b {
		t.Fatalf("want a == b, same name and kind")
	}
	if a == c {
		t.Fatalf("want a != c, same name but different kind")
	}
}

func TestChild(t *testing.T) {
	root := Global(Dataset, "root")
	child := root.Child("left").Child("right")
	if child.Name() != "root/left/right" {
		t.Fatalf("got %q", child.Name())
	}
	if got := child.Segments(); len(got) != 3 || got[2] != "right" {
		t.Fatalf("got segments %v", got)
	}
}

func TestMapKey(t *testing.T) {
	m := map[Variable]int{}
	m[New(ValOrExpr, "a")] = 1
	m[New(Dataset, "a")] = 2
	if len(m) != 2 {
		t.Fatalf("want two distinct keys, got %d", len(m))
	}
	if m[New(ValOrExpr, "a")] != 1 {
		t.Fatalf("lookup mismatch")
	}
}
