package yaku

import "mahjongengine/internal/tile"

// Conditions carries the table context needed to evaluate context-bound
// yaku (riichi family, round/seat wind, haitei/houtei/rinshan/chankan).
// Ground: spec.md §4.5 "Conditions {riichi, double_riichi, ippatsu,
// haitei, houtei, rinshan, chankan, tsumo_first_turn, player_wind,
// round_wind}".
type Conditions struct {
	Tsumo          bool
	Riichi         bool
	DoubleRiichi   bool
	Ippatsu        bool
	Haitei         bool
	Houtei         bool
	Rinshan        bool
	Chankan        bool
	TsumoFirstTurn bool // tenhou/chiihou: win on the very first uninterrupted draw
	IsDealer       bool
	PlayerWind     tile.Face
	RoundWind      tile.Face
}

func isYakuhaiFace(f tile.Face, cond Conditions) (dragon, round, seat bool) {
	return f.IsDragon(), f == cond.RoundWind, f == cond.PlayerWind
}
