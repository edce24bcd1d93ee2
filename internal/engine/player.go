package engine

import (
	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

// PlayerState is one seat's full engine-owned state: the legality.Seat
// view (tiles/melds/river/riichi flag) plus score and the context flags
// only the state machine can track (ippatsu, double-riichi). Ground:
// teacher's PlayerImage (Tiles/DiscardPile/Melds/IsRiichi/Points).
type PlayerState struct {
	Seat legality.Seat

	Score int

	DoubleRiichi bool
	Ippatsu      bool

	// RiichiDiscardIndex is the river position of the seat's riichi
	// declaration tile, -1 if not (yet) in riichi.
	RiichiDiscardIndex int
}

func newPlayerState(index, startingScore int) *PlayerState {
	return &PlayerState{
		Seat: legality.Seat{
			Tiles: make([]tile.TID, 0, 14),
			Melds: &meld.Melds{},
			River: &meld.River{},
			Index: index,
		},
		Score:              startingScore,
		RiichiDiscardIndex: -1,
	}
}

func (p *PlayerState) resetForKyoku() {
	p.Seat.Tiles = p.Seat.Tiles[:0]
	p.Seat.Melds = &meld.Melds{}
	p.Seat.River = &meld.River{}
	p.Seat.RiichiDeclared = false
	p.DoubleRiichi = false
	p.Ippatsu = false
	p.RiichiDiscardIndex = -1
}

func (p *PlayerState) addTile(t tile.TID) {
	p.Seat.Tiles = append(p.Seat.Tiles, t)
}

func (p *PlayerState) removeTile(t tile.TID) bool {
	for i, held := range p.Seat.Tiles {
		if held == t {
			p.Seat.Tiles = append(p.Seat.Tiles[:i], p.Seat.Tiles[i+1:]...)
			return true
		}
	}
	return false
}

func (p *PlayerState) removeTiles(ts []tile.TID) bool {
	for _, t := range ts {
		if !p.removeTile(t) {
			return false
		}
	}
	return true
}

func (p *PlayerState) handSize() int {
	return len(p.Seat.Tiles) + p.Seat.Melds.ConcealedTileCount()
}
