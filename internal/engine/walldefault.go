package engine

import (
	"math/rand"

	"mahjongengine/internal/tile"
)

// DefaultWallGenerator returns a WallGenerator that Fisher-Yates shuffles
// the full 0..135 TID universe with a seeded PRNG. Ground: teacher's
// DeckManager.InitRound (rand.New(rand.NewSource(...)).Shuffle over
// NewTileDeck's generated tiles); the teacher builds its shuffle universe
// tile-type by tile-type (generateSuitTiles/generateHonorTiles) where this
// implementation's flat TID space (internal/tile) already enumerates it,
// so the deck-construction step collapses to an identity range.
func DefaultWallGenerator() WallGenerator {
	return func(seed int64) [136]tile.TID {
		var perm [136]tile.TID
		for i := range perm {
			perm[i] = tile.TID(i)
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		return perm
	}
}
