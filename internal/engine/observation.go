package engine

import (
	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/replay"
	"mahjongengine/internal/tile"
)

// Observation is one seat's owned snapshot of table state plus its current
// legal actions, per spec.md §9: "must not alias engine internals" so a
// caller mutating it can never corrupt the engine's own state.
type Observation struct {
	Seat  int
	Phase Phase
	Mode  tile.GameMode
	Hand  []tile.TID
	// Melds holds every seat's called/ankan melds, indexed by absolute
	// seat: calls are public knowledge, unlike Hand.
	Melds     [4][]meld.Meld
	Rivers    [4][]meld.Discard
	Scores    [4]int
	Situation Situation
	Dora      []tile.Face
	WallLive  int
	// Drawn is the seat's own just-drawn tile while it is the active actor
	// in PhaseWaitAct, tile.NONE otherwise.
	Drawn tile.TID

	LegalActions []legality.Action
}

// observeActive builds the observation map for every seat Step currently
// expects an action from.
func (eng *Engine) observeActive() map[int]Observation {
	out := make(map[int]Observation, 4)
	for _, seat := range eng.expectedActors() {
		out[seat] = eng.observe(seat)
	}
	return out
}

// observe builds seat's owned snapshot, including the legal actions the
// current phase offers it.
func (eng *Engine) observe(seat int) Observation {
	obs := Observation{
		Seat:      seat,
		Phase:     eng.Phase,
		Mode:      eng.Mode,
		Hand:      append([]tile.TID(nil), eng.Players[seat].Seat.Tiles...),
		Scores:    [4]int{eng.Players[0].Score, eng.Players[1].Score, eng.Players[2].Score, eng.Players[3].Score},
		Situation: eng.Situation,
		Dora:      eng.doraFacesForObservation(),
		WallLive:  eng.Wall.LiveRemaining(),
		Drawn:     tile.NONE,
	}
	if seat == eng.CurrentSeat && eng.Phase == PhaseWaitAct {
		obs.Drawn = eng.lastDrawnTile
	}
	for s := 0; s < 4; s++ {
		obs.Melds[s] = append([]meld.Meld(nil), eng.Players[s].Seat.Melds.All()...)
		entries := eng.Players[s].Seat.River.Entries()
		obs.Rivers[s] = append([]meld.Discard(nil), entries...)
	}

	tbl := eng.table()
	switch eng.Phase {
	case PhaseWaitAct:
		cond := eng.conditionsFor(seat, !eng.lastDrawWasRinshan && eng.Wall.LiveRemaining() == 0, false, eng.lastDrawWasRinshan, false)
		obs.LegalActions = legality.Act(eng.Players[seat].Seat, eng.lastDrawnTile, tbl, cond, eng.Players[seat].Score, eng.searcher, eng.kuikaeForbidden)
	case PhaseWaitResponse:
		cond := eng.conditionsFor(seat, false, eng.Wall.LiveRemaining() == 0, false, false)
		obs.LegalActions = legality.Response(eng.Players[seat].Seat, eng.LastDiscard.Seat, seat, eng.LastDiscard.Tile, tbl, cond, eng.searcher)
	case PhaseWaitResponseKan:
		cond := eng.conditionsFor(seat, false, false, false, true)
		obs.LegalActions = legality.ResponseKan(eng.Players[seat].Seat, eng.PendingKan.Kind, eng.PendingKan.Tile, tbl, cond, eng.searcher)
	}
	return obs
}

// doraFacesForObservation exposes only the always-visible dora indicators;
// ura-dora stays hidden from observations until a riichi win reveals it via
// doraFacesFor.
func (eng *Engine) doraFacesForObservation() []tile.Face {
	return append([]tile.Face(nil), eng.Wall.DoraFaces()...)
}

// endKyoku transitions into PhaseEndKyoku, advances Situation (oya
// continuation per spec.md §4.4), and resolves the GameMode-aware round-
// wind wrap or game end: a kyoku's caller doesn't know whether the active
// GameMode plays a single East round or a full East+South hanchan, so that
// decision lives here rather than in Situation itself.
func (eng *Engine) endKyoku(kind EndKind, dealerContinues bool) {
	eng.Phase = PhaseEndKyoku
	eng.lastEndKind = kind
	eng.Situation.advanceContinuation(dealerContinues)

	if eng.Situation.RoundNumber > 4 {
		if eng.Situation.RoundWind == tile.East && !eng.Mode.IsEastOnly() {
			eng.Situation.RoundWind = tile.South
			eng.Situation.RoundNumber = 1
		} else {
			eng.GameOver = true
		}
	}

	eng.Log.Append(replay.Event{Kind: replay.EndKyoku, Seat: -1})
	if eng.GameOver {
		eng.Log.Append(replay.Event{Kind: replay.EndGame, Seat: -1})
	} else {
		eng.NeedsInitializeNextRound = true
	}
}

// AdvanceToNextKyoku deals the next kyoku after a Step call reported
// NeedsInitializeNextRound, per spec.md §6's "empty map, needs_initialize_
// next_round=true" handshake.
func (eng *Engine) AdvanceToNextKyoku() (map[int]Observation, error) {
	if !eng.NeedsInitializeNextRound {
		return nil, newErr(InvalidAction, eng.Phase.String(), -1, "engine", "AdvanceToNextKyoku called with no pending round to start")
	}
	eng.NeedsInitializeNextRound = false
	eng.startKyoku()
	return eng.observeActive(), eng.checkInvariants("advance")
}
