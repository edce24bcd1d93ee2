// Package legality implements the legal-action enumerator described in
// spec.md §4.3: given a seat's hand/melds/river and the table context, it
// produces the exact set of actions offered to that seat for the current
// phase.
//
// Ground: lamyinia-GoMahjong's opt_selector.go (calculateAvailableOperations/
// getPengOptions/getChiOptions/findChiCombinations) for the per-seat
// operation-gathering shape, and checker.go (canHu/canGang/canPeng/canChi)
// for the per-action gate functions. The teacher's canHu/canChi/
// findChiCombinations are permanent stubs (canHu always false, canChi
// always false, findChiCombinations always empty); this package replaces
// them with the full rules of spec.md §4.3, built on internal/hand for
// shanten/wait enumeration and internal/yaku for the agari-with-yaku gate
// TSUMO/RON require.
package legality

import "mahjongengine/internal/tile"

// ActionKind is the tagged variant spec.md §9 names: "Action = Discard{tile}
// | Chi{tile, consume} | Pon{tile, consume} | DaiMinKan{tile, consume} |
// AnKan{tile} | KaKan{tile, consume} | Riichi{tile} | Ron | Tsumo | Pass |
// KyushuKyuhai".
type ActionKind int8

const (
	Discard ActionKind = iota
	Chi
	Pon
	DaiMinKan
	AnKan
	KaKan
	Riichi
	Ron
	Tsumo
	Pass
	KyushuKyuhai
)

func (k ActionKind) String() string {
	switch k {
	case Discard:
		return "discard"
	case Chi:
		return "chi"
	case Pon:
		return "pon"
	case DaiMinKan:
		return "daiminkan"
	case AnKan:
		return "ankan"
	case KaKan:
		return "kakan"
	case Riichi:
		return "riichi"
	case Ron:
		return "ron"
	case Tsumo:
		return "tsumo"
	case Pass:
		return "pass"
	case KyushuKyuhai:
		return "kyushu_kyuhai"
	default:
		return "unknown"
	}
}

// Action is one immutable legal-action record. Tile is the discarded tile
// (Discard/Riichi), the claimed tile (Chi/Pon/DaiMinKan/KaKan/Ron), the
// kan'd face's tile (AnKan); Tsumo/Pass/KyushuKyuhai carry no tile and
// leave Tile at its zero value, not tile.NONE. Consume
// lists the concealed tids spent to form the meld (2 for Chi/Pon, 3 for a
// kan); nil otherwise.
type Action struct {
	Kind    ActionKind
	Tile    tile.TID
	Consume []tile.TID
}

// sameConsume reports whether two consume sets name the same tids,
// irrespective of order (findChiCombinations-style enumeration can produce
// the same pair from either scan direction).
func sameConsume(a, b []tile.TID) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for i, y := range b {
			if !used[i] && x == y {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// dedupe drops any action that is a duplicate (kind, tile, consume) tuple
// of one already collected, per spec.md §4.3's "never offers a duplicate
// action" guarantee.
func dedupe(actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		dup := false
		for _, existing := range out {
			if existing.Kind == a.Kind && existing.Tile == a.Tile && sameConsume(existing.Consume, a.Consume) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}
