package legality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

func tid(f tile.Face, copy int) tile.TID { return tile.TID(int(f)*4 + copy) }

func containsKind(actions []Action, k ActionKind) bool {
	for _, a := range actions {
		if a.Kind == k {
			return true
		}
	}
	return false
}

// Scenario (spec.md §8.1): P2 in riichi, hand [76,80,4,8,12,16,20,24,28,32,
// 36,40,44]. P1 discards TID 72 (1s). P2 must not be offered CHI or PON.
func TestResponse_NoChiDuringRiichi(t *testing.T) {
	p2 := Seat{
		Tiles:          []tile.TID{76, 80, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40, 44},
		Melds:          &meld.Melds{},
		River:          &meld.River{},
		RiichiDeclared: true,
		Index:          2,
	}
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50}
	cond := yaku.Conditions{RoundWind: tile.East, PlayerWind: tile.South}

	actions := Response(p2, 1, 2, 72, table, cond, hand.NewSearcher(nil))
	assert.False(t, containsKind(actions, Chi))
	assert.False(t, containsKind(actions, Pon))
	assert.False(t, containsKind(actions, DaiMinKan))
}

// Scenario (spec.md §8.2): same P2 riichi hand, P1 discards TID 78 (2s).
// P2 must not be offered PON either.
func TestResponse_NoPonDuringRiichi(t *testing.T) {
	p2 := Seat{
		Tiles:          []tile.TID{76, 77, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40, 44},
		Melds:          &meld.Melds{},
		River:          &meld.River{},
		RiichiDeclared: true,
		Index:          2,
	}
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50}
	cond := yaku.Conditions{RoundWind: tile.East, PlayerWind: tile.South}

	actions := Response(p2, 1, 2, 78, table, cond, hand.NewSearcher(nil))
	assert.False(t, containsKind(actions, Chi))
	assert.False(t, containsKind(actions, Pon))
}

// Scenario (spec.md §8.3): same P2 hand, riichi_declared false. P1 discards
// TID 72. P2 (seat immediately counterclockwise of P1) must have at least
// one CHI action.
func TestResponse_ChiAvailableWhenNotRiichi(t *testing.T) {
	p2 := Seat{
		Tiles: []tile.TID{76, 80, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40, 44},
		Melds: &meld.Melds{},
		River: &meld.River{},
		Index: 2,
	}
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50}
	cond := yaku.Conditions{RoundWind: tile.East, PlayerWind: tile.South}

	actions := Response(p2, 1, 2, 72, table, cond, hand.NewSearcher(nil))
	assert.True(t, containsKind(actions, Chi))
}

// Scenario (spec.md §8.4), first half: P2 discards TID 63 (7p); P0 holds
// two 7p (61,62) and must be offered PON.
func TestResponse_PonOffered_BeforeKakan(t *testing.T) {
	river := &meld.River{}
	river.Append(60, 0)
	p0 := Seat{
		Tiles: []tile.TID{4, 5, 6, 8, 9, 10, 12, 13, 14, 61, 62, 49, 53},
		Melds: &meld.Melds{},
		River: river,
		Index: 0,
	}
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 20}
	cond := yaku.Conditions{RoundWind: tile.East, PlayerWind: tile.East}

	actions := Response(p0, 2, 0, 63, table, cond, hand.NewSearcher(nil))
	assert.True(t, containsKind(actions, Pon))
}

// Scenario (spec.md §8.4), second half: P3 upgrades its Pon of 6p into a
// KaKan by drawing TID 59. P0 (holding 444m 333m... completing a 4p5p6p
// run plus 77p pair, waiting 3p/6p) must be offered RON via chankan; the
// 7p in P0's own river is off its actual wait and must not trigger
// furiten, and PON must not reappear in this phase.
func TestResponseKan_ChankanRonOnKakan(t *testing.T) {
	river := &meld.River{}
	river.Append(60, 0)
	p0 := Seat{
		Tiles: []tile.TID{4, 5, 6, 8, 9, 10, 12, 13, 14, 61, 62, 49, 53},
		Melds: &meld.Melds{},
		River: river,
		Index: 0,
	}
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 20}
	cond := yaku.Conditions{RoundWind: tile.East, PlayerWind: tile.East}

	actions := ResponseKan(p0, meld.KaKan, 59, table, cond, hand.NewSearcher(nil))
	assert.True(t, containsKind(actions, Ron))
	assert.False(t, containsKind(actions, Pon))
}

// An ankan-origin chankan only exists for a kokushi wait; a non-kokushi
// hand waiting to complete via someone else's ankan gets no RON offer.
func TestResponseKan_AnKanOnlyChankanableForKokushi(t *testing.T) {
	river := &meld.River{}
	p0 := Seat{
		Tiles: []tile.TID{4, 5, 6, 8, 9, 10, 12, 13, 14, 61, 62, 49, 53},
		Melds: &meld.Melds{},
		River: river,
		Index: 0,
	}
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 20}
	cond := yaku.Conditions{RoundWind: tile.East, PlayerWind: tile.East}

	actions := ResponseKan(p0, meld.AnKan, 59, table, cond, hand.NewSearcher(nil))
	assert.False(t, containsKind(actions, Ron))
}

func TestAct_TsumoOfferedOnWinningDraw(t *testing.T) {
	seat := Seat{
		Tiles: []tile.TID{
			tid(tile.Man1, 0), tid(tile.Man2, 0), tid(tile.Man3, 0),
			tid(tile.Pin1, 0), tid(tile.Pin2, 0), tid(tile.Pin3, 0),
			tid(tile.So1, 0), tid(tile.So2, 0), tid(tile.So3, 0),
			tid(tile.Man7, 0), tid(tile.Man8, 0), tid(tile.Man9, 0),
			tid(tile.East, 0), tid(tile.East, 1),
		},
		Melds: &meld.Melds{},
		River: &meld.River{},
		Index: 0,
	}
	drawn := tid(tile.Man9, 0)
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50}
	cond := yaku.Conditions{RoundWind: tile.South, PlayerWind: tile.South}

	actions := Act(seat, drawn, table, cond, 25000, hand.NewSearcher(nil), nil)
	assert.True(t, containsKind(actions, Tsumo))
}

func TestAct_KyushuKyuhaiOffered(t *testing.T) {
	seat := Seat{
		Tiles: []tile.TID{
			tid(tile.Man1, 0), tid(tile.Man9, 0),
			tid(tile.Pin1, 0), tid(tile.Pin9, 0),
			tid(tile.So1, 0), tid(tile.So9, 0),
			tid(tile.East, 0), tid(tile.South, 0), tid(tile.West, 0),
			tid(tile.North, 0), tid(tile.White, 0), tid(tile.Green, 0),
			tid(tile.Man3, 0), tid(tile.Man4, 0), tid(tile.Man4, 1),
		},
		Melds: &meld.Melds{},
		River: &meld.River{},
		Index: 0,
	}
	drawn := tid(tile.Man4, 1)
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50, FirstGoAround: true}
	cond := yaku.Conditions{}

	actions := Act(seat, drawn, table, cond, 25000, hand.NewSearcher(nil), nil)
	assert.True(t, containsKind(actions, KyushuKyuhai))
}

func TestAct_AnkanOfferedOnFourConcealedCopies(t *testing.T) {
	seat := Seat{
		Tiles: []tile.TID{
			tid(tile.Man1, 0), tid(tile.Man1, 1), tid(tile.Man1, 2), tid(tile.Man1, 3),
			tid(tile.Man2, 0), tid(tile.Man3, 0), tid(tile.Man4, 0),
			tid(tile.Pin1, 0), tid(tile.Pin2, 0), tid(tile.Pin3, 0),
			tid(tile.So1, 0), tid(tile.So2, 0), tid(tile.So3, 0), tid(tile.So3, 1),
		},
		Melds: &meld.Melds{},
		River: &meld.River{},
		Index: 0,
	}
	drawn := tid(tile.So3, 1)
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50}
	cond := yaku.Conditions{}

	actions := Act(seat, drawn, table, cond, 25000, hand.NewSearcher(nil), nil)
	assert.True(t, containsKind(actions, AnKan))
}

func TestAct_RiichiLocksDiscardToDrawnTile(t *testing.T) {
	seat := Seat{
		Tiles: []tile.TID{
			tid(tile.Man1, 0), tid(tile.Man2, 0), tid(tile.Man3, 0),
			tid(tile.Pin1, 0), tid(tile.Pin2, 0), tid(tile.Pin3, 0),
			tid(tile.So1, 0), tid(tile.So2, 0), tid(tile.So3, 0),
			tid(tile.Man7, 0), tid(tile.Man8, 0),
			tid(tile.East, 0), tid(tile.East, 1),
			tid(tile.Man5, 0),
		},
		Melds:          &meld.Melds{},
		River:          &meld.River{},
		RiichiDeclared: true,
		Index:          0,
	}
	drawn := tid(tile.Man5, 0)
	table := Table{Mode: tile.Mode4pRedHalf, WallLive: 50}
	cond := yaku.Conditions{}

	actions := Act(seat, drawn, table, cond, 25000, hand.NewSearcher(nil), nil)
	for _, a := range actions {
		if a.Kind == Discard {
			assert.Equal(t, drawn, a.Tile)
		}
	}
}
