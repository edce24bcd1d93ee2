package engine

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/replay"
)

// isTenpai reports whether seat's current concealed hand is one tile from
// completion, honoring its called melds as fixed groups.
func (eng *Engine) isTenpai(seat int) bool {
	p := eng.Players[seat]
	h := hand.FromTIDs(p.Seat.Tiles)
	return eng.searcher.ShantenAll(h, p.Seat.Melds.Len()) == 0
}

// resolveExhaustiveDraw closes the kyoku as a wall-exhaustion ryukyoku: the
// noten/tenpai split (spec.md §4.4) of 1000/1500/3000 depending on how many
// seats are tenpai, and oya continuation keyed on the dealer's own tenpai
// status.
func (eng *Engine) resolveExhaustiveDraw() {
	var tenpaiSeats []int
	for s := 0; s < 4; s++ {
		if eng.isTenpai(s) {
			tenpaiSeats = append(tenpaiSeats, s)
		}
	}
	eng.applyNotenPayments(tenpaiSeats)

	dealerTenpai := false
	for _, s := range tenpaiSeats {
		if s == eng.Situation.DealerSeat {
			dealerTenpai = true
		}
	}
	eng.Log.Append(replay.Event{Kind: replay.Ryukyoku, Reason: "exhaustive"})
	eng.endKyoku(EndExhaustiveDraw, dealerTenpai)
}

// applyNotenPayments splits 3000 total from noten seats to tenpai seats
// (1000/1500/3000 per seat depending on the split size); an all-tenpai or
// all-noten kyoku exchanges nothing.
func (eng *Engine) applyNotenPayments(tenpaiSeats []int) {
	tenpai := len(tenpaiSeats)
	if tenpai == 0 || tenpai == 4 {
		return
	}
	isTenpai := make([]bool, 4)
	for _, s := range tenpaiSeats {
		isTenpai[s] = true
	}
	noten := 4 - tenpai
	perNoten := 3000 / noten
	perTenpai := 3000 / tenpai
	for s := 0; s < 4; s++ {
		if isTenpai[s] {
			eng.Players[s].Score += perTenpai
		} else {
			eng.Players[s].Score -= perNoten
		}
	}
}

// resolveAbortiveDraw closes the kyoku as a no-payment abortive ryukyoku
// (kyushu-kyuhai, four-kan by distinct seats, four-riichi, four-wind-same-
// round): honba advances, the dealer never rotates, per spec.md §4.4.
func (eng *Engine) resolveAbortiveDraw(reason string) error {
	eng.Log.Append(replay.Event{Kind: replay.Ryukyoku, Reason: reason})
	eng.endKyoku(EndAbortiveDraw, true)
	return nil
}
