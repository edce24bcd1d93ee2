package obs

import (
	"sort"

	"mahjongengine/internal/engine"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

// Encode turns one seat's engine.Observation into its fixed-shape Tensors,
// per spec.md §4.6's strict emission order: CLS, ROUND, SCORE×4, DORA×k,
// DRAWN, HAND (sorted ascending by TID), MELD_TILE (per seat, per meld, per
// slot), RIVER (per seat, per position). Seats are encoded relative to the
// observer: rel(seat) = (seat - ob.Seat) mod 4, so the observer is always
// seat_rel 0.
func Encode(ob engine.Observation) Tensors {
	b := &builder{}
	rel := func(abs int) int { return (abs - ob.Seat + 4) % 4 }

	b.token(TokenCLS, none, int(tile.NONE), int(tile.NoneFace), none, none, 0, [3]int{0, 0, 0})

	b.token(TokenRound, none, int(tile.NONE), int(ob.Situation.RoundWind), none, none, 0,
		[3]int{ob.Situation.RoundNumber, ob.Situation.Honba, ob.Situation.RiichiSticks})

	for abs := 0; abs < 4; abs++ {
		b.token(TokenScore, rel(abs), int(tile.NONE), int(tile.NoneFace), none, none, 0, [3]int{ob.Scores[abs], 0, 0})
	}

	for i, face := range ob.Dora {
		b.token(TokenDora, none, int(tile.NONE), int(face), none, i, 0, [3]int{i, 0, 0})
	}

	if ob.Drawn != tile.NONE {
		b.token(TokenDrawn, rel(ob.Seat), int(ob.Drawn), int(ob.Drawn.Face()), none, none, 1, [3]int{0, 0, 0})
	}

	hand := append([]tile.TID(nil), ob.Hand...)
	sort.Slice(hand, func(i, j int) bool { return hand[i] < hand[j] })
	for i, t := range hand {
		b.token(TokenHand, rel(ob.Seat), int(t), int(t.Face()), none, i, 0, [3]int{0, 0, 0})
	}

	for abs := 0; abs < 4; abs++ {
		for mi, m := range ob.Melds[abs] {
			opened := 0
			if m.Opened {
				opened = 1
			}
			for si, t := range m.Tiles {
				b.token(TokenMeldTile, rel(abs), int(t), int(t.Face()), int(m.Kind), si, opened, [3]int{mi, 0, 0})
			}
		}
	}

	for abs := 0; abs < 4; abs++ {
		for pos, d := range ob.Rivers[abs] {
			b.token(TokenRiver, rel(abs), int(d.TID), int(d.TID.Face()), none, pos, int(d.Flags), [3]int{pos, 0, 0})
		}
	}

	for _, a := range ob.LegalActions {
		b.action(a.Kind, a, ob.Mode, true)
	}

	return b.t
}

// RiverMirror maintains an encoder-side copy of every seat's discard river,
// built up one confirmed discard at a time, so it can be checked against
// the engine's own rivers per spec.md §4.6's lock-step consistency
// requirement instead of trusting Encode's snapshot blindly.
type RiverMirror struct {
	rivers [4][]meld.Discard
}

// AppendDiscard records seat's newest confirmed discard.
func (m *RiverMirror) AppendDiscard(seat int, tid tile.TID, flags meld.RiverFlag) {
	m.rivers[seat] = append(m.rivers[seat], meld.Discard{TID: tid, Flags: flags})
}

// ResetKyoku clears every seat's mirrored river at a kyoku transition.
func (m *RiverMirror) ResetKyoku() {
	for s := range m.rivers {
		m.rivers[s] = nil
	}
}

// Verify reports whether the mirror's rivers match ob's rivers TID-for-TID,
// seat by seat. A mismatch means the caller fed discards to the mirror out
// of step with the engine's actual Step calls.
func (m *RiverMirror) Verify(ob engine.Observation) error {
	for s := 0; s < 4; s++ {
		got, want := m.rivers[s], ob.Rivers[s]
		if len(got) != len(want) {
			return newDivergenceErr(s, len(want), len(got))
		}
		for i := range want {
			if got[i].TID != want[i].TID || got[i].Flags != want[i].Flags {
				return newDivergenceErr(s, int(want[i].TID), int(got[i].TID))
			}
		}
	}
	return nil
}
