package legality

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

// ResponseKan enumerates the legal actions offered to one non-kan-actor
// seat after an AnKan or KaKan, per spec.md §4.3's WaitResponseKan rules.
// kanTile is the tile the responder would claim for chankan. kanKind must
// be meld.AnKan or meld.KaKan; an AnKan is chankan-eligible only when the
// responder's winning shape is kokushi.
func ResponseKan(responder Seat, kanKind meld.Kind, kanTile tile.TID, table Table, cond yaku.Conditions, searcher *hand.Searcher) []Action {
	if furiten(responder, searcher) {
		return []Action{{Kind: Pass}}
	}

	ronCond := cond
	ronCond.Tsumo = false
	ronCond.Chankan = true

	res := evaluateWin(responder.Tiles, kanTile, responder.Melds.All(), table.Mode, table.Dora, ronCond)

	if !res.Agari {
		return []Action{{Kind: Pass}}
	}
	if kanKind == meld.AnKan && !(res.HasYaku(yaku.Kokushi) || res.HasYaku(yaku.KokushiWide)) {
		return []Action{{Kind: Pass}}
	}
	return []Action{{Kind: Pass}, {Kind: Ron, Tile: kanTile}}
}
