package tile

import "math/rand"

// Deck returns a freshly shuffled 136-tid wall drawn from rng.
// Ground: teacher's TileDeck.initializeTiles + DeckManager.InitRound
// (runtime/game/engines/mahjong/material.go), generalized from a
// Type+ID struct slice to a flat TID permutation. The engine itself never
// calls this — wall generation is injected per spec.md §1 Non-goals — and
// neither the CLI nor the tests call it either.
func Deck(rng *rand.Rand) []TID {
	tids := make([]TID, 136)
	for i := range tids {
		tids[i] = TID(i)
	}
	rng.Shuffle(len(tids), func(i, j int) {
		tids[i], tids[j] = tids[j], tids[i]
	})
	return tids
}
