package legality

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

// Seat is the per-seat view the legality engine needs: the seat's held
// tiles (13, or 14 during its own WaitAct), its melds and river. Ground:
// teacher's PlayerImage (Tiles/DiscardPile/Melds).
type Seat struct {
	Tiles          []tile.TID
	Melds          *meld.Melds
	River          *meld.River
	RiichiDeclared bool
	Index          int
}

// hand34 reduces the seat's concrete tiles to a face histogram.
func (s Seat) hand34() hand.Hand34 { return hand.FromTIDs(s.Tiles) }

// Table carries the table-wide context a legality check needs beyond one
// seat's own state: wind/wall/dora facts plus the first-go-around flag the
// caller (the state machine) tracks, since the legality engine itself holds
// no history. The per-win context flags (ippatsu/haitei/...) are passed
// separately as yaku.Conditions.
type Table struct {
	Mode          tile.GameMode
	RoundWind     tile.Face
	WallLive      int // live tiles remaining in the wall (not the dead wall)
	FirstGoAround bool
	Dora          []tile.Face // resolved dora faces, one entry per hit
}

// countRedFives counts red-five tids among a seat's concealed tiles plus
// its called melds, for the agari calculator's extra red-five han.
func countRedFives(mode tile.GameMode, concealed []tile.TID, melds []meld.Meld) int {
	n := 0
	for _, t := range concealed {
		if tile.IsRed(mode, t) {
			n++
		}
	}
	for _, m := range melds {
		for _, t := range m.Tiles {
			if tile.IsRed(mode, t) {
				n++
			}
		}
	}
	return n
}

// evaluateWin scores adding winTile to concealedTiles (a 13-tile concealed
// hand) against melds/cond, for both the TSUMO/RON legality gate and
// chankan's kokushi-only AnKan restriction (spec.md §4.3).
func evaluateWin(concealedTiles []tile.TID, winTile tile.TID, melds []meld.Meld, mode tile.GameMode, dora []tile.Face, cond yaku.Conditions) yaku.Result {
	h := hand.FromTIDs(concealedTiles)
	h[winTile.Face()]++
	red := countRedFives(mode, append(append([]tile.TID(nil), concealedTiles...), winTile), melds)
	return yaku.Evaluate(h, melds, winTile.Face(), cond, dora, red)
}

// agariWithYaku reports whether adding winTile to concealedTiles yields a
// legal win: an agari shape carrying at least one yaku, per spec.md §4.3's
// TSUMO/RON gate and §8's "legality completeness" invariant (the agari
// calculator and the legality engine must agree).
func agariWithYaku(concealedTiles []tile.TID, winTile tile.TID, melds []meld.Meld, mode tile.GameMode, dora []tile.Face, cond yaku.Conditions) bool {
	return evaluateWin(concealedTiles, winTile, melds, mode, dora, cond).Agari
}
