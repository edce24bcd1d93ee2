package engine

import (
	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/replay"
	"mahjongengine/internal/tile"
)

// applyKanDeclare handles an AnKan/KaKan chosen during WaitAct: folds the
// meld, then opens the chankan window before any dora reveal or rinshan
// draw happens, per spec.md §4.4.
func (eng *Engine) applyKanDeclare(seat int, kind meld.Kind, t tile.TID, consume []tile.TID) error {
	p := eng.Players[seat]
	switch kind {
	case meld.AnKan:
		if !p.removeTiles(consume) {
			return newErr(InvalidAction, PhaseWaitAct.String(), seat, "consume", "ankan tiles not held")
		}
		p.Seat.Melds.Add(meld.Meld{Kind: meld.AnKan, Tiles: append([]tile.TID(nil), consume...), Opened: false, ClaimedFromSeat: -1})
		eng.Log.Append(replay.Event{Kind: replay.Ankan, Seat: seat, Tile: eng.notate(t), Melds: eng.notateTiles(consume)})
	case meld.KaKan:
		idx := p.Seat.Melds.FindPon(t.Face())
		if idx == -1 {
			return newErr(InvalidAction, PhaseWaitAct.String(), seat, "meld", "no matching pon to upgrade")
		}
		if !p.removeTile(t) {
			return newErr(InvalidAction, PhaseWaitAct.String(), seat, "tile", "kakan tile not held")
		}
		pon := p.Seat.Melds.All()[idx]
		p.Seat.Melds.Replace(idx, meld.UpgradeKaKan(pon, t))
		eng.Log.Append(replay.Event{Kind: replay.Kakan, Seat: seat, Tile: eng.notate(t)})
	default:
		return newErr(InvalidAction, PhaseWaitAct.String(), seat, "kind", "applyKanDeclare called with a non-self kan kind")
	}

	eng.callsMadeThisKyoku++
	eng.clearIppatsuExcept(-1)

	offers := eng.collectChankanResponses(seat, kind, t)
	if len(offers) == 0 {
		return eng.followThroughKan(seat, kind)
	}
	eng.Phase = PhaseWaitResponseKan
	eng.PendingKan = pendingKan{Kind: kind, Tile: t, Actor: seat, Valid: true}
	eng.respondingSeats = offers
	return nil
}

func (eng *Engine) notateTiles(ts []tile.TID) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = eng.notate(t)
	}
	return out
}

// collectChankanResponses returns the seats with at least one non-Pass
// reaction to actor's AnKan/KaKan.
func (eng *Engine) collectChankanResponses(actor int, kind meld.Kind, kanTile tile.TID) []int {
	var out []int
	tbl := eng.table()
	for s := 0; s < 4; s++ {
		if s == actor {
			continue
		}
		cond := eng.conditionsFor(s, false, false, false, true)
		opts := legality.ResponseKan(eng.Players[s].Seat, kind, kanTile, tbl, cond, eng.searcher)
		if hasNonPass(opts) {
			out = append(out, s)
		}
	}
	return out
}

// applyResponseKan resolves the chankan window: any RON ends the kyoku
// immediately (head-bump/double-ron arbitration, same as a normal RON);
// otherwise the kan's follow-through proceeds.
func (eng *Engine) applyResponseKan(actions map[int]legality.Action) error {
	var ronSeats []int
	for _, s := range eng.respondingSeats {
		if actions[s].Kind == legality.Ron {
			ronSeats = append(ronSeats, s)
		}
	}
	if len(ronSeats) > 0 {
		return eng.resolveRonClaims(eng.PendingKan.Actor, eng.PendingKan.Tile, ronSeats)
	}
	kind, actor := eng.PendingKan.Kind, eng.PendingKan.Actor
	eng.PendingKan = pendingKan{}
	return eng.followThroughKan(actor, kind)
}

// followThroughKan runs the shared kan aftermath: the four-kan-by-
// distinct-seats abortive check, the dora reveal (before the rinshan draw
// for AnKan/KaKan, after it for DaiMinKan), and the rinshan draw itself.
func (eng *Engine) followThroughKan(seat int, kind meld.Kind) error {
	eng.kansDeclaredBy[seat] = true
	eng.totalKansThisKyoku++
	if eng.totalKansThisKyoku >= 4 && len(eng.kansDeclaredBy) > 1 {
		return eng.resolveAbortiveDraw("four_kan")
	}
	if eng.Wall.RinshanRemaining() == 0 {
		return eng.resolveAbortiveDraw("four_kan")
	}

	switch kind {
	case meld.AnKan, meld.KaKan:
		eng.Wall.RevealDora()
		return eng.enterWaitActRinshan(seat)
	default: // meld.DaiMinKan
		if err := eng.enterWaitActRinshan(seat); err != nil {
			return err
		}
		eng.Wall.RevealDora()
		return nil
	}
}
