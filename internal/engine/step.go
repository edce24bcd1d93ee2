package engine

import (
	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/replay"
	"mahjongengine/internal/tile"
)

// Step advances the engine by one batch of seat decisions, per spec.md §6.
// During WaitAct exactly the current seat must act; during WaitResponse and
// WaitResponseKan every eligible responder must act (Pass included) in the
// same call. On success it returns the fresh per-active-seat observation
// map; on a structural violation it returns a *EngineError and the engine
// is poisoned (no further Step call will succeed).
func (eng *Engine) Step(actions map[int]legality.Action) (map[int]Observation, error) {
	if eng.poisoned {
		err := newErr(CorruptState, eng.Phase.String(), -1, "engine", "step called on a poisoned engine")
		return nil, err
	}
	if eng.GameOver {
		err := newErr(InvalidAction, eng.Phase.String(), -1, "engine", "step called after game end")
		return nil, err
	}

	expected := eng.expectedActors()
	if err := validateActorSet(expected, actions); err != nil {
		eng.poison(err)
		return nil, err
	}

	var err error
	switch eng.Phase {
	case PhaseWaitAct:
		err = eng.applyWaitAct(eng.CurrentSeat, actions[eng.CurrentSeat])
	case PhaseWaitResponse:
		err = eng.applyResponses(actions)
	case PhaseWaitResponseKan:
		err = eng.applyResponseKan(actions)
	default:
		err = newErr(InvalidAction, eng.Phase.String(), -1, "phase", "step called during EndKyoku")
	}
	if err != nil {
		if ee, ok := err.(*EngineError); ok {
			eng.poison(ee)
		}
		return nil, err
	}

	if eng.NeedsInitializeNextRound || eng.GameOver {
		return map[int]Observation{}, nil
	}
	if ivErr := eng.checkInvariants("step"); ivErr != nil {
		return nil, ivErr
	}
	return eng.observeActive(), nil
}

// expectedActors names the seats whose action this Step call requires.
func (eng *Engine) expectedActors() []int {
	switch eng.Phase {
	case PhaseWaitAct:
		return []int{eng.CurrentSeat}
	case PhaseWaitResponse:
		return eng.respondingSeats
	case PhaseWaitResponseKan:
		return eng.respondingSeats
	default:
		return nil
	}
}

func validateActorSet(expected []int, actions map[int]legality.Action) *EngineError {
	want := make(map[int]bool, len(expected))
	for _, s := range expected {
		want[s] = true
	}
	if len(actions) != len(want) {
		return newErr(MissingOrExtraActor, "", -1, "actions", "action map size does not match expected actor set")
	}
	for seat := range actions {
		if !want[seat] {
			return newErr(MissingOrExtraActor, "", seat, "actions", "unexpected actor in action map")
		}
	}
	for seat := range want {
		if _, ok := actions[seat]; !ok {
			return newErr(MissingOrExtraActor, "", seat, "actions", "missing actor in action map")
		}
	}
	return nil
}

// applyWaitAct dispatches the current seat's single chosen action.
func (eng *Engine) applyWaitAct(seat int, act legality.Action) error {
	switch act.Kind {
	case legality.Discard:
		return eng.applyDiscard(seat, act.Tile, false)
	case legality.Riichi:
		return eng.applyRiichiDiscard(seat, act.Tile)
	case legality.Tsumo:
		return eng.resolveTsumo(seat)
	case legality.AnKan:
		return eng.applyKanDeclare(seat, meld.AnKan, act.Tile, act.Consume)
	case legality.KaKan:
		return eng.applyKanDeclare(seat, meld.KaKan, act.Tile, act.Consume)
	case legality.KyushuKyuhai:
		return eng.resolveAbortiveDraw("kyushu_kyuhai")
	default:
		return newErr(InvalidAction, PhaseWaitAct.String(), seat, "kind", "action kind not offered during WaitAct")
	}
}

// applyDiscard removes t from seat's hand, appends it to the river and
// opens the WaitResponse window for every other seat with a non-trivial
// reaction, or advances turn immediately if nobody can react.
func (eng *Engine) applyDiscard(seat int, t tile.TID, fromRiichi bool) error {
	p := eng.Players[seat]
	if !p.removeTile(t) {
		return newErr(InvalidAction, PhaseWaitAct.String(), seat, "tile", "discarded tile not held")
	}
	flags := meld.RiverFlag(0)
	if t == eng.lastDrawnTile {
		flags |= meld.Tsumogiri
	}
	if fromRiichi {
		flags |= meld.RiichiTile
	}
	p.Seat.River.Append(t, flags)
	wasAlreadyRiichi := p.Seat.RiichiDeclared
	if wasAlreadyRiichi {
		// this seat already latched riichi on an earlier discard: reaching
		// a further discard means its last draw did not win, so ippatsu
		// (valid only through that first draw) is gone for good.
		p.Ippatsu = false
	}
	eng.discardsThisKyoku++

	eng.Log.Append(replay.Event{Kind: replay.Dahai, Seat: seat, Tile: eng.notate(t)})

	eng.LastDiscard = lastDiscard{Seat: seat, Tile: t, Valid: true}
	eng.kuikaeForbidden = nil

	offers := eng.collectResponses(seat, t)
	if len(offers) == 0 {
		justLatched := false
		if fromRiichi {
			eng.latchRiichi(seat)
			justLatched = true
		}
		if justLatched && eng.allRiichiDeclared() {
			return eng.resolveAbortiveDraw("four_riichi")
		}
		if eng.fourWindSameRound() {
			return eng.resolveAbortiveDraw("four_wind_same_round")
		}
		eng.advanceTurnAfterDiscard(seat)
		return nil
	}
	eng.Phase = PhaseWaitResponse
	eng.respondingSeats = offers
	return nil
}

// allRiichiDeclared reports whether every seat currently has riichi
// declared, gating the four-riichi abortive draw.
func (eng *Engine) allRiichiDeclared() bool {
	for _, p := range eng.Players {
		if !p.Seat.RiichiDeclared {
			return false
		}
	}
	return true
}

// fourWindSameRound reports whether all four seats' very first discard of
// the kyoku was the same wind tile, uninterrupted by any call, per spec.md
// §4.4's abortive-draw list.
func (eng *Engine) fourWindSameRound() bool {
	if eng.callsMadeThisKyoku != 0 || eng.discardsThisKyoku != 4 {
		return false
	}
	firstEntries := eng.Players[0].Seat.River.Entries()
	if len(firstEntries) == 0 {
		return false
	}
	face := firstEntries[0].TID.Face()
	if !face.IsWind() {
		return false
	}
	for s := 1; s < 4; s++ {
		entries := eng.Players[s].Seat.River.Entries()
		if len(entries) == 0 || entries[0].TID.Face() != face {
			return false
		}
	}
	return true
}

// applyRiichiDiscard is applyDiscard for a riichi-declaring discard: the
// 1000-point stick and the riichi flag only latch once the ensuing
// WaitResponse window closes with no RON against the discarder, per
// spec.md §4.4's two-step commit.
func (eng *Engine) applyRiichiDiscard(seat int, t tile.TID) error {
	eng.pendingRiichiSeat = seat
	return eng.applyDiscard(seat, t, true)
}

// latchRiichi commits the riichi declaration: deducts the stick, flags
// double riichi when uninterrupted since the deal, and opens ippatsu.
func (eng *Engine) latchRiichi(seat int) {
	p := eng.Players[seat]
	p.Seat.RiichiDeclared = true
	p.Score -= 1000
	eng.Situation.RiichiSticks++
	p.Ippatsu = true
	p.RiichiDiscardIndex = p.Seat.River.Len() - 1
	if p.Seat.River.Len() == 1 && eng.callsMadeThisKyoku == 0 {
		p.DoubleRiichi = true
	}
	eng.pendingRiichiSeat = -1
	eng.Log.Append(replay.Event{Kind: replay.Reach, Seat: seat})
}

// collectResponses returns the seats that have at least one non-Pass
// response to discarderSeat's discardedTile.
func (eng *Engine) collectResponses(discarderSeat int, discardedTile tile.TID) []int {
	var out []int
	tbl := eng.table()
	for s := 0; s < 4; s++ {
		if s == discarderSeat {
			continue
		}
		cond := eng.conditionsFor(s, false, eng.Wall.LiveRemaining() == 0, false, false)
		opts := legality.Response(eng.Players[s].Seat, discarderSeat, s, discardedTile, tbl, cond, eng.searcher)
		if hasNonPass(opts) {
			out = append(out, s)
		}
	}
	return out
}

func hasNonPass(opts []legality.Action) bool {
	for _, a := range opts {
		if a.Kind != legality.Pass {
			return true
		}
	}
	return false
}

// advanceTurnAfterDiscard moves play to the next seat counterclockwise and
// draws for it, or resolves an exhaustive draw if the wall is spent.
func (eng *Engine) advanceTurnAfterDiscard(discarderSeat int) {
	next := (discarderSeat + 1) % 4
	eng.enterWaitAct(next, true)
}

