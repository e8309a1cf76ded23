package market

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	at    time.Time
	items []PriceItem
}

// PriceCache is a TTL micro-cache over aggregated price responses. Entries
// are checked for staleness on read; there is no background sweep and no
// eviction beyond overwriting.
type PriceCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// cacheKey normalizes the requested key set by sorting, so permutations of
// the same symbols share one entry.
func cacheKey(keys []string) string {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// Get returns the cached items for the key set if they are still fresh.
func (c *PriceCache) Get(keys []string) ([]PriceItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(keys)]
	if !ok || c.now().Sub(entry.at) >= c.ttl {
		return nil, false
	}
	return entry.items, true
}

// Put stores the items for the key set, replacing any previous entry.
// Concurrent writers race benignly; last write wins.
func (c *PriceCache) Put(keys []string, items []PriceItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(keys)] = cacheEntry{at: c.now(), items: items}
}
