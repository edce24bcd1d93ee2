package legality

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

// Act enumerates the legal actions offered to the current player during
// WaitAct (a 14-tile hand: 13 standing tiles plus drawnTile), per spec.md
// §4.3. forbiddenDiscards is the kuikae set the caller (the state machine)
// computes from the most recent chi, if any; pass nil outside that window.
func Act(seat Seat, drawnTile tile.TID, table Table, cond yaku.Conditions, score int, searcher *hand.Searcher, forbiddenDiscards []tile.Face) []Action {
	var out []Action

	h14 := seat.hand34()
	fixedMelds := seat.Melds.Len()

	out = append(out, discardActions(seat, drawnTile, forbiddenDiscards)...)
	out = append(out, ankanActions(seat, h14, fixedMelds, drawnTile, searcher)...)
	out = append(out, kakanActions(seat)...)

	if riichiLegal(seat, score, table) {
		out = append(out, riichiActions(seat, h14, fixedMelds, searcher)...)
	}

	tsumoCond := cond
	tsumoCond.Tsumo = true
	concealedWithoutDraw := removeOne(seat.Tiles, drawnTile)
	if agariWithYaku(concealedWithoutDraw, drawnTile, seat.Melds.All(), table.Mode, table.Dora, tsumoCond) {
		out = append(out, Action{Kind: Tsumo})
	}

	if table.FirstGoAround && distinctTerminalHonorCount(seat.Tiles) >= 9 {
		out = append(out, Action{Kind: KyushuKyuhai})
	}

	return dedupe(out)
}

// discardActions offers one Discard per physical tile held, unless the
// seat is riichi-locked (only the drawn tile may leave the hand) or the
// tile's face is kuikae-forbidden.
func discardActions(seat Seat, drawnTile tile.TID, forbidden []tile.Face) []Action {
	if seat.RiichiDeclared {
		return []Action{{Kind: Discard, Tile: drawnTile}}
	}
	var out []Action
	for _, t := range seat.Tiles {
		if containsFace(forbidden, t.Face()) {
			continue
		}
		out = append(out, Action{Kind: Discard, Tile: t})
	}
	return out
}

func containsFace(faces []tile.Face, f tile.Face) bool {
	for _, x := range faces {
		if x == f {
			return true
		}
	}
	return false
}

// ankanActions offers AnKan for every face held in all four concealed
// copies. During riichi, a face is only offered if calling the kan leaves
// the standing wait bit-exactly unchanged (spec.md §4.3).
func ankanActions(seat Seat, h14 hand.Hand34, fixedMelds int, drawnTile tile.TID, searcher *hand.Searcher) []Action {
	var out []Action
	for f := 0; f < tile.NumFaces; f++ {
		if h14[f] != 4 {
			continue
		}
		face := tile.Face(f)
		if seat.RiichiDeclared && !ankanPreservesWait(h14, fixedMelds, face, drawnTile, searcher) {
			continue
		}
		tids := tidsForFace(seat.Tiles, face)
		if len(tids) != 4 {
			continue
		}
		out = append(out, Action{Kind: AnKan, Tile: tids[0], Consume: tids})
	}
	return out
}

// ankanPreservesWait compares the wait set of the standing (pre-draw)
// riichi hand against the wait set after removing the four ankan tiles
// and folding them into a fixed meld; per spec.md §4.3 this must match
// bit-exactly for the ankan to be legal under a latched riichi.
func ankanPreservesWait(h14 hand.Hand34, fixedMelds int, face tile.Face, drawnTile tile.TID, searcher *hand.Searcher) bool {
	before := h14
	before[drawnTile.Face()]--
	beforeWaits, _ := searcher.WaitsAndUkeire(before, fixedMelds, nil)

	after := h14
	after[face] -= 4
	afterWaits, _ := searcher.WaitsAndUkeire(after, fixedMelds+1, nil)

	return sameFaceSet(beforeWaits, afterWaits)
}

func sameFaceSet(a, b []tile.Face) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[tile.Face]bool, len(a))
	for _, f := range a {
		seen[f] = true
	}
	for _, f := range b {
		if !seen[f] {
			return false
		}
	}
	return true
}

// kakanActions offers KaKan for any concealed tile whose face matches an
// already-called Pon.
func kakanActions(seat Seat) []Action {
	var out []Action
	for _, t := range seat.Tiles {
		idx := seat.Melds.FindPon(t.Face())
		if idx == -1 {
			continue
		}
		pon := seat.Melds.All()[idx]
		out = append(out, Action{Kind: KaKan, Tile: t, Consume: append([]tile.TID(nil), pon.Tiles...)})
	}
	return out
}

func riichiLegal(seat Seat, score int, table Table) bool {
	return !seat.RiichiDeclared && seat.Melds.IsMenzen() && score >= 1000 && table.WallLive >= 4
}

// riichiActions offers one Riichi{tile} per discard choice that leaves the
// seat tenpai, via the same candidate search used for AI/UI discard
// suggestion.
func riichiActions(seat Seat, h14 hand.Hand34, fixedMelds int, searcher *hand.Searcher) []Action {
	var out []Action
	for _, c := range searcher.SeekCandidates(h14, fixedMelds, nil) {
		tids := tidsForFace(seat.Tiles, c.Discard)
		if len(tids) == 0 {
			continue
		}
		out = append(out, Action{Kind: Riichi, Tile: tids[0]})
	}
	return out
}

func tidsForFace(tiles []tile.TID, face tile.Face) []tile.TID {
	var out []tile.TID
	for _, t := range tiles {
		if t.Face() == face {
			out = append(out, t)
		}
	}
	return out
}

func removeOne(tiles []tile.TID, t tile.TID) []tile.TID {
	out := make([]tile.TID, 0, len(tiles))
	removed := false
	for _, x := range tiles {
		if !removed && x == t {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out
}

// distinctTerminalHonorCount counts distinct terminal/honor faces held,
// for the kyushu-kyuhai gate (spec.md §4.3: "≥9 distinct terminals/honors").
func distinctTerminalHonorCount(tiles []tile.TID) int {
	var seen [tile.NumFaces]bool
	n := 0
	for _, t := range tiles {
		f := t.Face()
		if f.IsTerminalOrHonor() && !seen[f] {
			seen[f] = true
			n++
		}
	}
	return n
}
