package egtb

import (
	"sync"

	"github.com/chesstools/egtb/internal/board"
)

// CachedDriver wraps a Driver with an in-memory score cache keyed by
// Board.Hash. Reduces redundant file probes for positions revisited
// during search (e.g. transposition-heavy endgame lines).
type CachedDriver struct {
	inner   *Driver
	cache   map[uint64]int
	mu      sync.RWMutex
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCachedDriver creates a cached driver wrapping inner with room for
// cacheSize entries before eviction kicks in.
func NewCachedDriver(inner *Driver, cacheSize int) *CachedDriver {
	return &CachedDriver{
		inner:   inner,
		cache:   make(map[uint64]int, cacheSize),
		maxSize: cacheSize,
	}
}

// GetScore returns the cached score for b if present, otherwise probes
// the wrapped driver and stores the result.
func (cd *CachedDriver) GetScore(b *board.Board) int {
	cd.mu.RLock()
	if score, ok := cd.cache[b.Hash]; ok {
		cd.mu.RUnlock()
		cd.mu.Lock()
		cd.hits++
		cd.mu.Unlock()
		return score
	}
	cd.mu.RUnlock()

	score := cd.inner.GetScore(b)

	cd.mu.Lock()
	cd.misses++
	if len(cd.cache) >= cd.maxSize {
		// Simple eviction: clear half the cache.
		i := 0
		for k := range cd.cache {
			if i >= cd.maxSize/2 {
				break
			}
			delete(cd.cache, k)
			i++
		}
	}
	cd.cache[b.Hash] = score
	cd.mu.Unlock()

	return score
}

// Probe walks the optimal continuation via the wrapped driver uncached
// (the line depends on a sequence of positions, not a single key).
func (cd *CachedDriver) Probe(b *board.Board) (int, []board.Move) {
	return cd.inner.Probe(b)
}

// HitRate returns the cache hit rate as a percentage.
func (cd *CachedDriver) HitRate() float64 {
	cd.mu.RLock()
	defer cd.mu.RUnlock()
	total := cd.hits + cd.misses
	if total == 0 {
		return 0
	}
	return float64(cd.hits) / float64(total) * 100
}

// CacheSize returns the current number of cached entries.
func (cd *CachedDriver) CacheSize() int {
	cd.mu.RLock()
	defer cd.mu.RUnlock()
	return len(cd.cache)
}

// Clear empties the cache and resets hit/miss counters.
func (cd *CachedDriver) Clear() {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.cache = make(map[uint64]int, cd.maxSize)
	cd.hits = 0
	cd.misses = 0
}
