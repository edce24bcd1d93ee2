package legality

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

// Response enumerates the legal actions offered to one non-discarder seat
// reacting to a discard, per spec.md §4.3's WaitResponse rules.
// discarderSeat/responderSeat are absolute seat indices 0..3, used to
// determine chi eligibility (immediately counterclockwise only).
func Response(responder Seat, discarderSeat, responderSeat int, discardedTile tile.TID, table Table, cond yaku.Conditions, searcher *hand.Searcher) []Action {
	out := []Action{{Kind: Pass}}

	if responder.RiichiDeclared {
		if ronLegal(responder, discardedTile, table, cond, searcher) {
			out = append(out, Action{Kind: Ron, Tile: discardedTile})
		}
		return dedupe(out)
	}

	if ronLegal(responder, discardedTile, table, cond, searcher) {
		out = append(out, Action{Kind: Ron, Tile: discardedTile})
	}

	face := discardedTile.Face()
	matches := tidsForFace(responder.Tiles, face)

	if len(matches) >= 3 {
		out = append(out, daiminkanCombos(matches, discardedTile)...)
	}
	if len(matches) >= 2 {
		out = append(out, ponCombos(matches, discardedTile)...)
	}

	if (discarderSeat+1)%4 == responderSeat {
		out = append(out, chiCombos(responder.Tiles, discardedTile)...)
	}

	return dedupe(out)
}

// ronLegal gates RON on the discarded tile completing the hand with ≥1
// yaku and the responder not being in furiten: any winning face ever
// discarded by the responder's own river voids ron for the rest of the
// kyoku (spec.md §4.3).
func ronLegal(responder Seat, discardedTile tile.TID, table Table, cond yaku.Conditions, searcher *hand.Searcher) bool {
	if furiten(responder, searcher) {
		return false
	}
	ronCond := cond
	ronCond.Tsumo = false
	return agariWithYaku(responder.Tiles, discardedTile, responder.Melds.All(), table.Mode, table.Dora, ronCond)
}

// furiten reports whether any of the responder's own waits has ever been
// discarded by the responder.
func furiten(responder Seat, searcher *hand.Searcher) bool {
	fixedMelds := responder.Melds.Len()
	h := hand.FromTIDs(responder.Tiles)
	waits, _ := searcher.WaitsAndUkeire(h, fixedMelds, nil)
	for _, w := range waits {
		if responder.River.ContainsFace(w) {
			return true
		}
	}
	return false
}

// daiminkanCombos has exactly one combination: all three matching tiles.
func daiminkanCombos(matches []tile.TID, claimed tile.TID) []Action {
	if len(matches) < 3 {
		return nil
	}
	return []Action{{Kind: DaiMinKan, Tile: claimed, Consume: append([]tile.TID(nil), matches[:3]...)}}
}

// ponCombos enumerates every distinct pair drawn from the held matching
// tiles, mirroring the teacher's getPengOptions double loop.
func ponCombos(matches []tile.TID, claimed tile.TID) []Action {
	var out []Action
	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			out = append(out, Action{Kind: Pon, Tile: claimed, Consume: []tile.TID{matches[i], matches[j]}})
		}
	}
	return out
}

// chiCombos enumerates every run-completing pair of held tiles in the same
// suit as claimed, mirroring the teacher's getChiOptions/
// findChiCombinations (a permanent stub in the teacher; implemented here).
func chiCombos(tiles []tile.TID, claimed tile.TID) []Action {
	face := claimed.Face()
	if face.IsHonor() {
		return nil
	}
	rank := face.Rank()
	suit := face.Suit()

	byFace := func(f tile.Face) []tile.TID {
		var out []tile.TID
		if f.Suit() != suit || !f.IsNumbered() {
			return out
		}
		for _, t := range tiles {
			if t.Face() == f {
				out = append(out, t)
			}
		}
		return out
	}

	type pairSpec struct{ lo, hi tile.Face }
	var specs []pairSpec
	if rank >= 3 {
		specs = append(specs, pairSpec{face - 2, face - 1}) // claimed is the high tile
	}
	if rank >= 2 && rank <= 8 {
		specs = append(specs, pairSpec{face - 1, face + 1}) // claimed is the middle tile
	}
	if rank <= 7 {
		specs = append(specs, pairSpec{face + 1, face + 2}) // claimed is the low tile
	}

	var out []Action
	for _, sp := range specs {
		los := byFace(sp.lo)
		his := byFace(sp.hi)
		for _, lo := range los {
			for _, hi := range his {
				out = append(out, Action{Kind: Chi, Tile: claimed, Consume: []tile.TID{lo, hi}})
			}
		}
	}
	return out
}
