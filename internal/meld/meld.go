// Package meld implements the append-only per-seat meld and river
// bookkeeping described in spec.md §3 and §4.3's data half.
//
// Ground: lamyinia-GoMahjong's runtime/game/engines/mahjong/material.go
// (Meld{Type string, Tiles []Tile, From int}) generalized from a
// three-string-variant record into the five-kind tagged record spec.md
// requires, and re-expressed over internal/tile.TID instead of Tile.
package meld

import "mahjongengine/internal/tile"

// Kind identifies which of the five meld shapes a Meld represents.
type Kind int8

const (
	Chi Kind = iota
	Pon
	DaiMinKan
	AnKan
	KaKan
)

func (k Kind) String() string {
	switch k {
	case Chi:
		return "chi"
	case Pon:
		return "pon"
	case DaiMinKan:
		return "daiminkan"
	case AnKan:
		return "ankan"
	case KaKan:
		return "kakan"
	default:
		return "unknown"
	}
}

// Meld is an immutable record of one called or concealed set. Tiles has
// length 3 for Chi/Pon, 4 for the three kan kinds.
type Meld struct {
	Kind            Kind
	Tiles           []tile.TID
	Opened          bool
	ClaimedFromSeat int // -1 if not claimed from anyone (AnKan)
}

// Face returns the canonical face of the meld (the triplet/run's lowest
// face for Chi, the repeated face otherwise).
func (m Meld) Face() tile.Face {
	if len(m.Tiles) == 0 {
		return tile.NoneFace
	}
	if m.Kind == Chi {
		lo := m.Tiles[0].Face()
		for _, t := range m.Tiles[1:] {
			if t.Face() < lo {
				lo = t.Face()
			}
		}
		return lo
	}
	return m.Tiles[0].Face()
}

// IsKan reports whether the meld is any of the three kan kinds.
func (m Meld) IsKan() bool {
	return m.Kind == DaiMinKan || m.Kind == AnKan || m.Kind == KaKan
}

// UpgradeKaKan returns a new meld record obtained by adding tid to an
// existing Pon, per spec.md §3: "A KaKan derives from an existing Pon by
// adding the fourth tile."
func UpgradeKaKan(pon Meld, tid tile.TID) Meld {
	tiles := make([]tile.TID, 0, 4)
	tiles = append(tiles, pon.Tiles...)
	tiles = append(tiles, tid)
	return Meld{Kind: KaKan, Tiles: tiles, Opened: true, ClaimedFromSeat: pon.ClaimedFromSeat}
}

// River flag bits, per spec.md §3.
type RiverFlag uint8

const (
	Tsumogiri RiverFlag = 1 << iota
	RiichiTile
)

// Discard is one entry of a seat's discard river.
type Discard struct {
	TID   tile.TID
	Flags RiverFlag
}

// River is the per-seat ordered discard sequence, capped at 30 entries
// (the hand-size invariant bounds how many discards a seat can make).
type River struct {
	entries []Discard
}

const maxRiverLen = 30

// Append records a new discard; it is the caller's responsibility (the
// engine) to compute flags before calling.
func (r *River) Append(tid tile.TID, flags RiverFlag) {
	if len(r.entries) >= maxRiverLen {
		return
	}
	r.entries = append(r.entries, Discard{TID: tid, Flags: flags})
}

// Entries returns the discard sequence in order; callers must not mutate
// the returned slice.
func (r *River) Entries() []Discard { return r.entries }

// Len reports the number of discards so far.
func (r *River) Len() int { return len(r.entries) }

// ContainsFace reports whether face was ever discarded by this seat,
// used by the legality engine to compute furiten (spec.md §4.3).
func (r *River) ContainsFace(f tile.Face) bool {
	for _, d := range r.entries {
		if d.TID.Face() == f {
			return true
		}
	}
	return false
}

// Reset clears the river, used at kyoku transitions.
func (r *River) Reset() { r.entries = r.entries[:0] }

// Melds is the append-only per-seat meld list, capped at 4.
type Melds struct {
	list []Meld
}

const maxMelds = 4

// Add appends a new meld; returns false if the seat already holds 4.
func (m *Melds) Add(meld Meld) bool {
	if len(m.list) >= maxMelds {
		return false
	}
	m.list = append(m.list, meld)
	return true
}

// Replace swaps the meld at idx for an upgraded one (KaKan over Pon);
// it is the caller's job to locate the matching Pon index first via
// FindPon.
func (m *Melds) Replace(idx int, meld Meld) {
	if idx < 0 || idx >= len(m.list) {
		return
	}
	m.list[idx] = meld
}

// FindPon returns the index of an open Pon on face f, or -1.
func (m *Melds) FindPon(f tile.Face) int {
	for i, meld := range m.list {
		if meld.Kind == Pon && meld.Face() == f {
			return i
		}
	}
	return -1
}

// All returns the meld list; callers must not mutate it.
func (m *Melds) All() []Meld { return m.list }

// Len reports the number of melds called so far.
func (m *Melds) Len() int { return len(m.list) }

// IsMenzen reports whether the meld list preserves concealed status: no
// meld breaks it except AnKan, which is drawn from one's own hand rather
// than called.
func (m *Melds) IsMenzen() bool {
	for _, meld := range m.list {
		if meld.Kind != AnKan {
			return false
		}
	}
	return true
}

// ConcealedTileCount returns how many of the seat's 13/14-tile slots are
// consumed by melds: 3 per Chi/Pon/DaiMinKan/KaKan-visible-three... in
// practice always 3 per meld regardless of kind, since a kan's fourth
// tile is a "bonus" draw that does not change hand-size accounting.
func (m *Melds) ConcealedTileCount() int {
	return 3 * len(m.list)
}
