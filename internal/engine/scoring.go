package engine

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/replay"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

// countRedFives counts red-five tids among a seat's concealed tiles plus
// its called melds, mirroring legality's unexported helper of the same
// purpose (internal/legality/state.go), which this package cannot call
// directly.
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

// doraFacesFor returns the resolved dora list for seat's win: visible dora
// always, plus ura-dora when (and only when) seat is riichi, per spec.md
// §4.4's "ura-dora only surfaces for a riichi win".
func (eng *Engine) doraFacesFor(seat int) []tile.Face {
	faces := append([]tile.Face(nil), eng.Wall.DoraFaces()...)
	if eng.Players[seat].Seat.RiichiDeclared {
		faces = append(faces, eng.Wall.RevealUraDora()...)
	}
	return faces
}

// resolveTsumo scores and closes out a self-draw win declared during
// WaitAct.
func (eng *Engine) resolveTsumo(seat int) error {
	p := eng.Players[seat]
	haitei := !eng.lastDrawWasRinshan && eng.Wall.LiveRemaining() == 0
	cond := eng.conditionsFor(seat, haitei, false, eng.lastDrawWasRinshan, false)
	cond.Tsumo = true

	h := hand.FromTIDs(p.Seat.Tiles)
	red := countRedFives(eng.Mode, p.Seat.Tiles, p.Seat.Melds.All())
	res := yaku.Evaluate(h, p.Seat.Melds.All(), eng.lastDrawnTile.Face(), cond, eng.doraFacesFor(seat), red)
	if !res.Agari {
		return newErr(InvalidAction, PhaseWaitAct.String(), seat, "tsumo", "declared tsumo hand does not evaluate as a win")
	}

	eng.applyTsumoPayments(seat, res)
	points := res.TsumoPayments[0] + res.TsumoPayments[1] + res.TsumoPayments[2]
	eng.Log.Append(replay.Event{Kind: replay.Tsumo, Seat: seat, Tile: eng.notate(eng.lastDrawnTile)})
	eng.Log.Append(replay.Event{Kind: replay.Hora, Seat: seat, Han: res.Han, Fu: res.Fu, Points: points})
	eng.endKyoku(EndTsumo, seat == eng.Situation.DealerSeat)
	return nil
}

func (eng *Engine) applyTsumoPayments(winnerSeat int, res yaku.Result) {
	dealer := eng.Situation.DealerSeat
	for s := 0; s < 4; s++ {
		if s == winnerSeat {
			continue
		}
		pay := res.TsumoPayments[1]
		if winnerSeat == dealer || s == dealer {
			pay = res.TsumoPayments[0]
		}
		eng.Players[s].Score -= pay
		eng.Players[winnerSeat].Score += pay
	}
	eng.Players[winnerSeat].Score += eng.Situation.RiichiSticks * 1000
	eng.Situation.RiichiSticks = 0
	if eng.Situation.Honba > 0 {
		bonus := eng.Situation.Honba * 100
		for s := 0; s < 4; s++ {
			if s == winnerSeat {
				continue
			}
			eng.Players[s].Score -= bonus
			eng.Players[winnerSeat].Score += bonus
		}
	}
}

// resolveRonClaims arbitrates one or more simultaneous RON claims against
// discardedTile, per spec.md §4.4's multi-ron policy: by default only the
// claimant closest counterclockwise to discarder is honored (head-bump);
// Rules.DoubleRonAllowed honors every claimant with independent payouts.
// discarder is whoever exposed the tile: the actual discarder for a normal
// ron, or the kan actor for a chankan.
func (eng *Engine) resolveRonClaims(discarder int, discardedTile tile.TID, ronSeats []int) error {
	if !eng.Cfg.DoubleRonAllowed {
		winner := headBumpWinner(discarder, ronSeats)
		return eng.resolveSingleRon(discarder, discardedTile, winner, true)
	}

	winners := make([]int, 0, len(ronSeats))
	headStick := true
	// Iterate in head-bump order so the riichi-stick pot always goes to
	// the closest counterclockwise winner among them.
	for _, seat := range sortByProximity(discarder, ronSeats) {
		if err := eng.scoreOneRon(discarder, discardedTile, seat, headStick); err != nil {
			return err
		}
		headStick = false
		winners = append(winners, seat)
	}
	eng.closeOutRon(winners, discarder)
	return nil
}

func (eng *Engine) resolveSingleRon(discarder int, discardedTile tile.TID, winner int, takeStick bool) error {
	if err := eng.scoreOneRon(discarder, discardedTile, winner, takeStick); err != nil {
		return err
	}
	eng.closeOutRon([]int{winner}, discarder)
	return nil
}

// scoreOneRon evaluates and pays out a single ron winner; it does not
// transition the phase, so multi-ron can call it once per winner before a
// single shared endKyoku.
func (eng *Engine) scoreOneRon(discarder int, discardedTile tile.TID, winner int, takeStick bool) error {
	p := eng.Players[winner]
	houtei := eng.Wall.LiveRemaining() == 0
	chankan := eng.PendingKan.Valid && eng.PendingKan.Actor == discarder
	cond := eng.conditionsFor(winner, false, houtei, false, chankan)
	cond.Tsumo = false

	red := countRedFives(eng.Mode, append(append([]tile.TID(nil), p.Seat.Tiles...), discardedTile), p.Seat.Melds.All())
	h := hand.FromTIDs(p.Seat.Tiles)
	h[discardedTile.Face()]++
	res := yaku.Evaluate(h, p.Seat.Melds.All(), discardedTile.Face(), cond, eng.doraFacesFor(winner), red)
	if !res.Agari {
		return newErr(InvalidAction, eng.Phase.String(), winner, "ron", "declared ron hand does not evaluate as a win")
	}

	eng.Players[discarder].Score -= res.RonPayment
	p.Score += res.RonPayment
	if takeStick {
		p.Score += eng.Situation.RiichiSticks * 1000
		eng.Situation.RiichiSticks = 0
	}
	bonus := eng.Situation.Honba * 300
	eng.Players[discarder].Score -= bonus
	p.Score += bonus

	eng.Log.Append(replay.Event{Kind: replay.Hora, Seat: winner, Tile: eng.notate(discardedTile), Han: res.Han, Fu: res.Fu, Points: res.RonPayment})
	return nil
}

func (eng *Engine) closeOutRon(winners []int, discarder int) {
	dealerWon := false
	for _, w := range winners {
		if w == eng.Situation.DealerSeat {
			dealerWon = true
		}
	}
	eng.endKyoku(EndRon, dealerWon)
	_ = discarder
}

// headBumpWinner returns the ron claimant closest counterclockwise to
// discarder, per spec.md §4.4's default single-winner rule. Ground:
// teacher's selectStickWinnerRonA.
func headBumpWinner(discarder int, ronSeats []int) int {
	best := ronSeats[0]
	bestDist := (best - discarder + 4) % 4
	for _, s := range ronSeats[1:] {
		dist := (s - discarder + 4) % 4
		if dist < bestDist {
			bestDist = dist
			best = s
		}
	}
	return best
}

func sortByProximity(discarder int, seats []int) []int {
	out := append([]int(nil), seats...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			di := (out[j] - discarder + 4) % 4
			dj := (out[j-1] - discarder + 4) % 4
			if di < dj {
				out[j], out[j-1] = out[j-1], out[j]
			} else {
				break
			}
		}
	}
	return out
}
