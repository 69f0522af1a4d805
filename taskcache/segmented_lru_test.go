package taskcache

import "testing"

func TestInsertAndGet(t *testing.T) {
	c := NewSegmentedLRU[int, string](10, ProbationaryFraction)
	c.Insert(1, "one")
	v, ok := c.Get(1)
	if !ok || v != "one" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestPeekDoesNotPromote(t *testing.T) {
	c := NewSegmentedLRU[int, string](5, 0.4) // probationary cap 2, protected cap 3
	c.Insert(1, "a")
	c.Insert(2, "b")
	// Fill probationary (cap 2); inserting more triggers eviction policy.
	if _, ok := c.Peek(1); !ok {
		t.Fatal("want peek hit")
	}
	// Peek must not have promoted 1: a subsequent Get should still count
	// as a probationary hit and promote.
	before := c.Stats().Promotions
	c.Get(1)
	after := c.Stats().Promotions
	if after != before+1 {
		t.Fatalf("want Get after Peek to still promote once, got %d -> %d", before, after)
	}
}

func TestProbationaryEvictionMovesToProtected(t *testing.T) {
	c := NewSegmentedLRU[int, int](4, 0.5) // probationary cap 2, protected cap 2
	c.Insert(1, 1)
	c.Insert(2, 2)
	c.Insert(3, 3) // evicts 1 from probationary into protected (protected has room)
	if _, ok := c.Peek(1); !ok {
		t.Fatal("want evicted probationary item moved into protected, not dropped")
	}
	if c.Len() != 3 {
		t.Fatalf("want 3 entries total, got %d", c.Len())
	}
}

func TestInsertUpdatesInPlace(t *testing.T) {
	c := NewSegmentedLRU[int, int](4, 0.5)
	c.Insert(1, 1)
	c.Insert(1, 2)
	if c.Len() != 1 {
		t.Fatalf("want 1 entry after update, got %d", c.Len())
	}
	v, _ := c.Peek(1)
	if v != 2 {
		t.Fatalf("want updated value 2, got %d", v)
	}
}

func TestDemotionWhenProtectedFull(t *testing.T) {
	c := NewSegmentedLRU[int, int](4, 0.5) // probationary cap 2, protected cap 2
	c.Insert(1, 1)
	c.Get(1) // promote 1 to protected
	c.Insert(2, 2)
	c.Get(2) // promote 2 to protected; protected now full {1,2} (1 is LRU in protected)
	c.Insert(3, 3)
	c.Get(3) // promote 3: protected full, demotes 1 back to probationary
	if _, ok := c.Peek(1); !ok {
		t.Fatal("want demoted item still present in probationary, not dropped")
	}
	if c.Stats().Demotions == 0 {
		t.Fatal("want at least one demotion recorded")
	}
}
