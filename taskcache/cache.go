package taskcache

import (
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/plotkit/engine/variable"
)

// ValueEntry is a cached evaluation result plus the wall-clock duration it
// took to compute.
type ValueEntry struct {
	Value    interface{} // taskvalue.Value; kept as interface{} to avoid an import cycle with the runtime package, which needs this cache.
	Duration time.Duration
}

// RuntimeStats is the second segmented-LRU section's value kind: how long
// a Variable took to evaluate and whether its evaluation was spawned onto
// the scheduler (vs. served from the cache without spawning).
type RuntimeStats struct {
	Duration   time.Duration
	WasSpawned bool
}

// Cache is the thread-safe task cache: two independent segmented-LRU
// sections, each guarded by its own RWMutex — Get acquires the write
// lock (it may promote), Peek only the read lock.
type Cache struct {
	valuesMu sync.RWMutex
	values   *SegmentedLRU[uint64, ValueEntry]

	statsMu sync.RWMutex
	stats   *SegmentedLRU[variable.Variable, RuntimeStats]

	flight singleflight.Group
	log    *zap.Logger
}

// DefaultCapacity is used when a caller doesn't have a more specific
// sizing in mind.
const DefaultCapacity = 4096

// New builds a Cache with the given total capacities for the values and
// var-runtime sections respectively, both split per ProbationaryFraction.
// A nil logger is replaced with zap's no-op logger.
func New(valuesCapacity, statsCapacity int, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		values: NewSegmentedLRU[uint64, ValueEntry](valuesCapacity, ProbationaryFraction),
		stats:  NewSegmentedLRU[variable.Variable, RuntimeStats](statsCapacity, ProbationaryFraction),
		log:    log,
	}
}

// GetValue looks up a cached evaluation result by fingerprint, promoting
// it from probationary to protected on a probationary hit.
func (c *Cache) GetValue(fp uint64) (ValueEntry, bool) {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()
	v, ok := c.values.Get(fp)
	if ok {
		c.log.Debug("task cache hit", zap.Uint64("fingerprint", fp), zap.Duration("original_duration", v.Duration))
	}
	return v, ok
}

// PeekValue looks up a cached evaluation result without promoting it.
func (c *Cache) PeekValue(fp uint64) (ValueEntry, bool) {
	c.valuesMu.RLock()
	defer c.valuesMu.RUnlock()
	return c.values.Peek(fp)
}

// InsertValue records a freshly computed evaluation result. Cache
// insertion must be the last action a runtime takes after an evaluator
// returns successfully, so a cancelled evaluation never pollutes the
// cache (spec.md §4.3, §5).
func (c *Cache) InsertValue(fp uint64, entry ValueEntry) {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()
	c.values.Insert(fp, entry)
}

// GetOrCompute returns the cached entry for fp if present; otherwise it
// calls compute exactly once even under concurrent callers racing on the
// same fingerprint (the cache is shared across runtimes, so this is the
// single choke point that makes "evaluated exactly once" true across
// runtime instances, not just within one — spec.md §5, §8). A successful
// compute is inserted into the cache as the last step, so a cancelled
// compute (returning a context error) never pollutes the cache.
func (c *Cache) GetOrCompute(fp uint64, compute func() (ValueEntry, error)) (ValueEntry, error) {
	if v, ok := c.GetValue(fp); ok {
		return v, nil
	}
	key := strconv.FormatUint(fp, 16)
	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		if v, ok := c.GetValue(fp); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return ValueEntry{}, err
		}
		c.InsertValue(fp, v)
		return v, nil
	})
	if err != nil {
		return ValueEntry{}, err
	}
	return v.(ValueEntry), nil
}

// ValueStats returns the values section's cumulative hit/miss/promotion/
// demotion counters.
func (c *Cache) ValueStats() Stats {
	c.valuesMu.RLock()
	defer c.valuesMu.RUnlock()
	return c.values.Stats()
}

// GetRuntimeStats and InsertRuntimeStats are the var_runtimes section's
// accessors, keyed by Variable rather than fingerprint.
func (c *Cache) GetRuntimeStats(v variable.Variable) (RuntimeStats, bool) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats.Get(v)
}

func (c *Cache) InsertRuntimeStats(v variable.Variable, rs RuntimeStats) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	c.stats.Insert(v, rs)
}
