// Package mahjongcache wraps a ristretto cache for memoizing the hand
// decomposer's shanten/agari/wait lookups across a self-play batch.
//
// Ground: lamyinia-GoMahjong's common/cache/ristretto.go.
package mahjongcache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache is a concurrency-safe memoization cache keyed by string.
type GeneralCache struct {
	cache *ristretto.Cache
}

// NewGeneralCache creates a cache sized for short-lived per-process memo
// tables (shanten/agari/wait results keyed by 35-byte histograms).
func NewGeneralCache(maxCost int64) (*GeneralCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &GeneralCache{cache: c}, nil
}

// Set stores value under key with cost 1, returning false if it was dropped.
func (c *GeneralCache) Set(key string, value any) bool {
	return c.cache.Set(key, value, 1)
}

// Get retrieves a previously stored value.
func (c *GeneralCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Close releases the cache's background goroutines.
func (c *GeneralCache) Close() {
	c.cache.Close()
}
