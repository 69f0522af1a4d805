// Package taskcache implements the task cache described in spec.md §4.1:
// two independent segmented-LRU sections (evaluated values keyed by
// fingerprint, and per-Variable runtime stats), each a two-segment LRU
// with promotion from a probationary segment into a protected one.
//
// The segmented-LRU algorithm is implemented directly over
// container/list, the same lower-level primitive hashicorp/golang-lru's
// own simplelru uses, since golang-lru's exported cache types (LRU, 2Q,
// ARC) don't expose the bespoke two-segment probationary/protected
// promote-or-demote protocol spec.md §4.1 specifies.
package taskcache

import "container/list"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// segment is a single ordered LRU list with a fixed capacity.
type segment[K comparable, V any] struct {
	capacity int
	ll       *list.List
	items    map[K]*list.Element
}

func newSegment[K comparable, V any](capacity int) *segment[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &segment[K, V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[K]*list.Element),
	}
}

func (s *segment[K, V]) len() int { return s.ll.Len() }

func (s *segment[K, V]) full() bool { return s.ll.Len() >= s.capacity }

// peek returns the value for key without changing its position.
func (s *segment[K, V]) peek(key K) (V, bool) {
	if el, ok := s.items[key]; ok {
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// touch moves key's element to the front (most-recently-used end).
func (s *segment[K, V]) touch(key K) {
	if el, ok := s.items[key]; ok {
		s.ll.MoveToFront(el)
	}
}

// update overwrites the value for an existing key in place and touches it.
func (s *segment[K, V]) update(key K, value V) {
	if el, ok := s.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		s.ll.MoveToFront(el)
	}
}

// pushFront inserts a brand new key at the front. Caller must ensure key
// is not already present.
func (s *segment[K, V]) pushFront(key K, value V) {
	el := s.ll.PushFront(&entry[K, V]{key: key, value: value})
	s.items[key] = el
}

// popLRU removes and returns the least-recently-used entry, if any.
func (s *segment[K, V]) popLRU() (K, V, bool) {
	el := s.ll.Back()
	if el == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	e := el.Value.(*entry[K, V])
	s.ll.Remove(el)
	delete(s.items, e.key)
	return e.key, e.value, true
}

// remove deletes key from the segment if present.
func (s *segment[K, V]) remove(key K) bool {
	if el, ok := s.items[key]; ok {
		s.ll.Remove(el)
		delete(s.items, key)
		return true
	}
	return false
}

// SegmentedLRU is a two-segment LRU: new inserts land in the probationary
// segment; a hit in probationary promotes the item into protected; a hit
// in protected only updates recency. Evicting probationary's LRU item, if
// protected has room, moves it there instead of discarding it; otherwise
// protected's own LRU item is demoted back to probationary first to make
// room.
type SegmentedLRU[K comparable, V any] struct {
	probationary *segment[K, V]
	protected    *segment[K, V]

	hits, misses, promotions, demotions uint64
}

// ProbationaryFraction is the default fraction of total capacity assigned
// to the probationary segment (spec.md §4.1).
const ProbationaryFraction = 0.2

// NewSegmentedLRU builds a SegmentedLRU with the given total capacity, split between
// probationary and protected segments per fraction (clamped to [0,1]),
// with both segments clamped to capacity >= 1.
func NewSegmentedLRU[K comparable, V any](totalCapacity int, probationaryFraction float64) *SegmentedLRU[K, V] {
	if probationaryFraction < 0 {
		probationaryFraction = 0
	}
	if probationaryFraction > 1 {
		probationaryFraction = 1
	}
	probCap := int(float64(totalCapacity) * probationaryFraction)
	protCap := totalCapacity - probCap
	return &SegmentedLRU[K, V]{
		probationary: newSegment[K, V](probCap),
		protected:    newSegment[K, V](protCap),
	}
}

// Get returns the value for key, promoting it from probationary to
// protected on a probationary hit (demoting protected's LRU item back to
// probationary first if protected is full). A protected hit only updates
// recency. Peek never promotes.
func (c *SegmentedLRU[K, V]) Get(key K) (V, bool) {
	if v, ok := c.protected.peek(key); ok {
		c.protected.touch(key)
		c.hits++
		return v, true
	}
	if v, ok := c.probationary.peek(key); ok {
		c.probationary.remove(key)
		c.promote(key, v)
		c.hits++
		return v, true
	}
	c.misses++
	var zero V
	return zero, false
}

// Peek returns the value for key without promoting it or updating
// recency in either segment.
func (c *SegmentedLRU[K, V]) Peek(key K) (V, bool) {
	if v, ok := c.protected.peek(key); ok {
		return v, true
	}
	if v, ok := c.probationary.peek(key); ok {
		return v, true
	}
	return *new(V), false
}

// promote inserts key/value into protected, having already been removed
// from probationary by the caller (which frees the slot the demoted
// protected item, if any, needs).
func (c *SegmentedLRU[K, V]) promote(key K, value V) {
	if c.protected.full() {
		if dk, dv, ok := c.protected.popLRU(); ok {
			c.probationary.pushFront(dk, dv)
			c.demotions++
		}
	}
	c.protected.pushFront(key, value)
	c.promotions++
}

// Insert adds or updates key/value. An existing key (in either segment)
// is updated in place. A new key is inserted into probationary: if
// probationary is full, its LRU item is evicted — moved into protected if
// protected has room, otherwise protected's own LRU item is first demoted
// back into probationary to make room, then the evicted probationary item
// takes its place in protected.
func (c *SegmentedLRU[K, V]) Insert(key K, value V) {
	if _, ok := c.protected.peek(key); ok {
		c.protected.update(key, value)
		return
	}
	if _, ok := c.probationary.peek(key); ok {
		c.probationary.update(key, value)
		return
	}

	if c.probationary.full() {
		if ek, ev, ok := c.probationary.popLRU(); ok {
			if c.protected.full() {
				if dk, dv, ok := c.protected.popLRU(); ok {
					c.protected.pushFront(ek, ev)
					c.probationary.pushFront(dk, dv)
					c.demotions++
				} else {
					c.protected.pushFront(ek, ev)
				}
			} else {
				c.protected.pushFront(ek, ev)
			}
		}
	}
	c.probationary.pushFront(key, value)
}

// Len returns the total number of entries across both segments.
func (c *SegmentedLRU[K, V]) Len() int {
	return c.probationary.len() + c.protected.len()
}

// Stats returns cumulative hit/miss/promotion/demotion counters.
type Stats struct {
	Hits, Misses, Promotions, Demotions uint64
}

func (c *SegmentedLRU[K, V]) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Promotions: c.promotions, Demotions: c.demotions}
}
