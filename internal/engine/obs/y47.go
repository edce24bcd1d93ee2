package obs

import (
	"fmt"

	"mahjongengine/internal/engine"
	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

// Y47Engine is the RL fast path spec.md §6 names: reset_y47/step_y47 return
// pre-encoded Tensors instead of Observation objects, and step_y47 accepts
// an action_index into the legal-action table handed back by the prior
// turn instead of a full Action value.
//
// Ground: no teacher analogue (this is the spec's own addition); it wraps
// an *engine.Engine the same way the rest of this package wraps
// engine.Observation, adding only the index<->Action bookkeeping and the
// river lock-step check spec.md §4.6 asks for.
type Y47Engine struct {
	eng          *engine.Engine
	legalActions map[int][]legality.Action
	drawn        map[int]tile.TID
	mirror       RiverMirror
}

// NewY47Engine wraps a freshly constructed engine under the fast path.
func NewY47Engine(cfg engine.Config) *Y47Engine {
	return &Y47Engine{eng: engine.New(cfg)}
}

// Engine exposes the wrapped engine for callers that also need the plain
// Observation-based API (event log inspection, invariant checks, ...).
func (y *Y47Engine) Engine() *engine.Engine { return y.eng }

// ResetY47 deals the first kyoku and returns the initial pre-encoded
// tensors, exactly one active seat (oya).
func (y *Y47Engine) ResetY47(seed int64) (map[int]Tensors, error) {
	obsMap, err := y.eng.Reset(seed)
	if err != nil {
		return nil, err
	}
	y.mirror.ResetKyoku()
	y.sync(obsMap)
	return encodeAll(obsMap), nil
}

// StepY47 resolves action_index against the legal-action table handed back
// by the prior ResetY47/StepY47 call, applies it, and returns the next
// pre-encoded tensors.
func (y *Y47Engine) StepY47(actionIdx map[int]int) (map[int]Tensors, error) {
	actions := make(map[int]legality.Action, len(actionIdx))
	for seat, idx := range actionIdx {
		table, ok := y.legalActions[seat]
		if !ok {
			return nil, fmt.Errorf("obs: seat %d is not an active actor this turn", seat)
		}
		if idx < 0 || idx >= len(table) {
			return nil, fmt.Errorf("obs: action_index %d out of range for seat %d (%d legal actions)", idx, seat, len(table))
		}
		a := table[idx]
		actions[seat] = a

		if a.Kind == legality.Discard || a.Kind == legality.Riichi {
			flags := meld.RiverFlag(0)
			if a.Tile == y.drawn[seat] {
				flags |= meld.Tsumogiri
			}
			if a.Kind == legality.Riichi {
				flags |= meld.RiichiTile
			}
			y.mirror.AppendDiscard(seat, a.Tile, flags)
		}
	}

	obsMap, err := y.eng.Step(actions)
	if err != nil {
		return nil, err
	}
	if y.eng.NeedsInitializeNextRound || y.eng.GameOver {
		y.mirror.ResetKyoku()
		y.legalActions = nil
		y.drawn = nil
		return encodeAll(obsMap), nil
	}
	for _, ob := range obsMap {
		if verr := y.mirror.Verify(ob); verr != nil {
			return nil, verr
		}
		break
	}
	y.sync(obsMap)
	return encodeAll(obsMap), nil
}

// AdvanceToNextKyokuY47 deals the next kyoku after a StepY47 call reported
// NeedsInitializeNextRound, mirroring engine.Engine.AdvanceToNextKyoku.
func (y *Y47Engine) AdvanceToNextKyokuY47() (map[int]Tensors, error) {
	obsMap, err := y.eng.AdvanceToNextKyoku()
	if err != nil {
		return nil, err
	}
	y.mirror.ResetKyoku()
	y.sync(obsMap)
	return encodeAll(obsMap), nil
}

func (y *Y47Engine) sync(obsMap map[int]engine.Observation) {
	y.legalActions = make(map[int][]legality.Action, len(obsMap))
	y.drawn = make(map[int]tile.TID, len(obsMap))
	for seat, ob := range obsMap {
		y.legalActions[seat] = ob.LegalActions
		y.drawn[seat] = ob.Drawn
	}
}

func encodeAll(obsMap map[int]engine.Observation) map[int]Tensors {
	out := make(map[int]Tensors, len(obsMap))
	for seat, ob := range obsMap {
		out[seat] = Encode(ob)
	}
	return out
}
