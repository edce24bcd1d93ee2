package engine

import "mahjongengine/internal/tile"

// Situation carries the table-wide facts that survive across kyoku
// boundaries within one game: dealer seat, round wind/number, honba and
// the riichi-stick pot. Ground: teacher's Situation struct in material.go
// (DealerIndex/Honba/RoundWind/RoundNumber/RiichiSticks), re-expressed
// over tile.Face instead of the teacher's own Wind enum.
type Situation struct {
	DealerSeat   int
	Honba        int
	RoundWind    tile.Face
	RoundNumber  int // 1-based within the round wind (East 1, East 2, ...)
	RiichiSticks int
}

// PlayerWind returns the seat wind of seat relative to the current dealer:
// the dealer is always East.
func (s Situation) PlayerWind(seat int) tile.Face {
	offset := (seat - s.DealerSeat + 4) % 4
	return tile.East + tile.Face(offset)
}

// advanceContinuation rotates the dealer unless dealerContinues is true,
// per spec.md §4.4's "Oya continuation" rule: dealer continues on dealer
// win or dealer tenpai at exhaustive draw, honba increments; otherwise the
// dealer seat rotates, honba resets, and RoundNumber advances (wrapping
// into the next RoundWind is the caller's job, since only the engine
// knows whether GameMode plays a full hanchan or East-only).
func (s *Situation) advanceContinuation(dealerContinues bool) {
	if dealerContinues {
		s.Honba++
		return
	}
	s.Honba = 0
	s.DealerSeat = (s.DealerSeat + 1) % 4
	s.RoundNumber++
}
