package hand

import "mahjongengine/internal/tile"

// Searcher memoizes shanten/agari/wait lookups. Ground: teacher's
// Searcher (searcher.go), backed by mahjongcache/ristretto instead of a
// bare map+mutex since multiple Kyoku instances in a self-play batch can
// share one process-wide memo table (see SPEC_FULL.md Concurrency).
type Searcher struct {
	cache memoCache
}

// memoCache is satisfied by *mahjongcache.GeneralCache; kept as an
// interface so tests can run without pulling in ristretto's goroutines.
type memoCache interface {
	Get(key string) (any, bool)
	Set(key string, value any) bool
}

// mapCache is a trivial in-process map cache, used as the default when no
// external cache is supplied (e.g. from tests or one-off CLI scoring runs).
type mapCache struct{ m map[string]any }

func newMapCache() *mapCache { return &mapCache{m: make(map[string]any, 4096)} }

func (c *mapCache) Get(key string) (any, bool) { v, ok := c.m[key]; return v, ok }
func (c *mapCache) Set(key string, value any) bool {
	c.m[key] = value
	return true
}

// NewSearcher builds a Searcher over the given cache; pass nil to use a
// simple unshared map (adequate for a single Kyoku or for tests).
func NewSearcher(cache memoCache) *Searcher {
	if cache == nil {
		cache = newMapCache()
	}
	return &Searcher{cache: cache}
}

// Candidate describes one legal discard and the resulting wait.
type Candidate struct {
	Discard tile.Face
	Waits   []tile.Face
	Ukeire  int
}

// SeekCandidates enumerates, for each distinct face held in a 14-tile
// hand, the wait set obtained by discarding that face.
func (s *Searcher) SeekCandidates(h14 Hand34, fixedMelds int, visible *[tile.NumFaces]uint8) []Candidate {
	var out []Candidate
	for i := 0; i < tile.NumFaces; i++ {
		if h14[i] == 0 {
			continue
		}
		h13 := h14
		h13[i]--

		waits, ukeire := s.WaitsAndUkeire(h13, fixedMelds, visible)
		if len(waits) == 0 {
			continue
		}
		out = append(out, Candidate{Discard: tile.Face(i), Waits: waits, Ukeire: ukeire})
	}
	return out
}

// WaitsAndUkeire returns the exact set of faces that complete h13, plus
// the count of live tiles among them (4 minus held minus visible-to-the-
// caller copies, clamped at 0).
func (s *Searcher) WaitsAndUkeire(h13 Hand34, fixedMelds int, visible *[tile.NumFaces]uint8) ([]tile.Face, int) {
	key := "waits:" + h13.Key(fixedMelds)
	if v, ok := s.cache.Get(key); ok {
		waits := append([]tile.Face(nil), v.([]tile.Face)...)
		return waits, s.ukeireByWaits(h13, waits, visible)
	}

	var waits []tile.Face
	for f := 0; f < tile.NumFaces; f++ {
		if h13[f] >= 4 {
			continue
		}
		work := h13
		work[f]++
		if s.IsAgariAll(work, fixedMelds) {
			waits = append(waits, tile.Face(f))
		}
	}

	s.cache.Set(key, append([]tile.Face(nil), waits...))
	return waits, s.ukeireByWaits(h13, waits, visible)
}

func (s *Searcher) ukeireByWaits(h13 Hand34, waits []tile.Face, visible *[tile.NumFaces]uint8) int {
	total := 0
	for _, f := range waits {
		add := 4 - int(h13[f])
		if visible != nil {
			add -= int(visible[f])
		}
		if add > 0 {
			total += add
		}
	}
	return total
}

// IsAgariAll is the memoized form of IsAgari.
func (s *Searcher) IsAgariAll(h Hand34, fixedMelds int) bool {
	key := "agari:" + h.Key(fixedMelds)
	if v, ok := s.cache.Get(key); ok {
		return v.(bool)
	}
	ok := IsAgari(h, fixedMelds)
	s.cache.Set(key, ok)
	return ok
}

// ShantenAll is the memoized form of Shanten.
func (s *Searcher) ShantenAll(h Hand34, fixedMelds int) int {
	key := "shanten:" + h.Key(fixedMelds)
	if v, ok := s.cache.Get(key); ok {
		return v.(int)
	}
	sh := Shanten(h, fixedMelds)
	s.cache.Set(key, sh)
	return sh
}
