package engine

import (
	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/replay"
	"mahjongengine/internal/tile"
)

// notateAll renders consumed/claimed tiles for an event log entry.
func (eng *Engine) notateAll(consume []tile.TID, claimed tile.TID) []string {
	out := make([]string, 0, len(consume)+1)
	for _, t := range consume {
		out = append(out, eng.notate(t))
	}
	out = append(out, eng.notate(claimed))
	return out
}

// applyResponses arbitrates the batch of reactions offered against the
// current LastDiscard, per spec.md §4.4: RON dominates everything; absent
// any RON, DaiMinKan/Pon dominate Chi; ties within one action kind cannot
// occur physically (at most one seat can hold the tiles a given claim
// needs) but are broken by proximity to the discarder as a defensive
// default.
func (eng *Engine) applyResponses(actions map[int]legality.Action) error {
	discarder := eng.LastDiscard.Seat
	discardedTile := eng.LastDiscard.Tile

	var ronSeats []int
	for _, s := range eng.respondingSeats {
		if actions[s].Kind == legality.Ron {
			ronSeats = append(ronSeats, s)
		}
	}
	if len(ronSeats) > 0 {
		eng.pendingRiichiSeat = -1 // the declaring discard was ronned: voided, no stick posts
		return eng.resolveRonClaims(discarder, discardedTile, ronSeats)
	}

	justLatched := false
	if eng.pendingRiichiSeat == discarder {
		eng.latchRiichi(discarder)
		justLatched = true
	}

	if seat, act, ok := eng.pickClaim(actions, legality.DaiMinKan, discarder); ok {
		return eng.executeDaiminkan(seat, act, discarder, discardedTile)
	}
	if seat, act, ok := eng.pickClaim(actions, legality.Pon, discarder); ok {
		return eng.executePon(seat, act, discarder, discardedTile)
	}
	if seat, act, ok := eng.pickClaim(actions, legality.Chi, discarder); ok {
		return eng.executeChi(seat, act, discarder, discardedTile)
	}

	if justLatched && eng.allRiichiDeclared() {
		return eng.resolveAbortiveDraw("four_riichi")
	}
	if eng.fourWindSameRound() {
		return eng.resolveAbortiveDraw("four_wind_same_round")
	}
	eng.advanceTurnAfterDiscard(discarder)
	return nil
}

// pickClaim returns the offered action of kind closest counterclockwise to
// discarder, if any seat offered one.
func (eng *Engine) pickClaim(actions map[int]legality.Action, kind legality.ActionKind, discarder int) (int, legality.Action, bool) {
	best := -1
	var bestAct legality.Action
	bestDist := 5
	for seat, act := range actions {
		if act.Kind != kind {
			continue
		}
		dist := (seat - discarder + 4) % 4
		if dist < bestDist {
			bestDist = dist
			best = seat
			bestAct = act
		}
	}
	return best, bestAct, best != -1
}

// executePon removes the discarded tile from play, folds it with the
// claimant's two consumed tiles into an opened Pon meld, breaks ippatsu
// table-wide, and opens that seat's WaitAct (no draw: a call skips the
// draw step).
func (eng *Engine) executePon(seat int, act legality.Action, discarder int, discardedTile tile.TID) error {
	p := eng.Players[seat]
	if !p.removeTiles(act.Consume) {
		return newErr(InvalidAction, PhaseWaitResponse.String(), seat, "consume", "pon consume tiles not held")
	}
	p.Seat.Melds.Add(meld.Meld{
		Kind: meld.Pon, Tiles: append(append([]tile.TID(nil), act.Consume...), discardedTile),
		Opened: true, ClaimedFromSeat: discarder,
	})
	eng.callsMadeThisKyoku++
	eng.clearIppatsuExcept(-1)
	eng.Log.Append(replay.Event{Kind: replay.Pon, Seat: seat, Tile: eng.notate(discardedTile), Melds: eng.notateAll(act.Consume, discardedTile)})
	eng.enterWaitActForClaim(seat)
	return nil
}

// executeChi mirrors executePon for a called run; only the discarder's
// immediate counterclockwise neighbor may ever offer Chi (legality.Response
// already enforces that), and a chi caller's subsequent discard cannot be
// the same-suit tile that would "swap back" the called run (kuikae).
func (eng *Engine) executeChi(seat int, act legality.Action, discarder int, discardedTile tile.TID) error {
	p := eng.Players[seat]
	if !p.removeTiles(act.Consume) {
		return newErr(InvalidAction, PhaseWaitResponse.String(), seat, "consume", "chi consume tiles not held")
	}
	p.Seat.Melds.Add(meld.Meld{
		Kind: meld.Chi, Tiles: append(append([]tile.TID(nil), act.Consume...), discardedTile),
		Opened: true, ClaimedFromSeat: discarder,
	})
	eng.callsMadeThisKyoku++
	eng.clearIppatsuExcept(-1)
	eng.kuikaeForbidden = []tile.Face{discardedTile.Face()}
	eng.Log.Append(replay.Event{Kind: replay.Chi, Seat: seat, Tile: eng.notate(discardedTile), Melds: eng.notateAll(act.Consume, discardedTile)})
	eng.enterWaitActForClaim(seat)
	return nil
}

// executeDaiminkan folds the claimed tile and the three held copies into
// an opened kan meld, then runs the shared kan follow-through (dora timing,
// four-kan check, rinshan draw).
func (eng *Engine) executeDaiminkan(seat int, act legality.Action, discarder int, discardedTile tile.TID) error {
	p := eng.Players[seat]
	if !p.removeTiles(act.Consume) {
		return newErr(InvalidAction, PhaseWaitResponse.String(), seat, "consume", "daiminkan consume tiles not held")
	}
	p.Seat.Melds.Add(meld.Meld{
		Kind: meld.DaiMinKan, Tiles: append(append([]tile.TID(nil), act.Consume...), discardedTile),
		Opened: true, ClaimedFromSeat: discarder,
	})
	eng.callsMadeThisKyoku++
	eng.clearIppatsuExcept(-1)
	eng.Log.Append(replay.Event{Kind: replay.Daiminkan, Seat: seat, Tile: eng.notate(discardedTile), Melds: eng.notateAll(act.Consume, discardedTile)})
	return eng.followThroughKan(seat, meld.DaiMinKan)
}

// enterWaitActForClaim opens seat's WaitAct window after a Pon/Chi without
// drawing and clears the pending discard and kan; the kuikae-forbidden set
// is set by executeChi and cleared by the next applyDiscard.
func (eng *Engine) enterWaitActForClaim(seat int) {
	eng.Phase = PhaseWaitAct
	eng.CurrentSeat = seat
	eng.LastDiscard = lastDiscard{}
	eng.PendingKan = pendingKan{}
}
