// Package hand implements the hand decomposer described in spec.md §4.2:
// shanten/agari detection and exact wait-tile enumeration over the
// standard, seven-pairs and thirteen-orphans hand shapes, plus full
// decomposition into sets for fu/yaku scoring.
//
// Ground: lamyinia-GoMahjong's runtime/game/engines/mahjong/searcher.go
// (Hand34 histogram, IsAgariNormal/Chiitoi/Kokushi, dfsNormalShanten,
// canFormMelds, keyWithFixedMelds) — the recursive set-removal algorithm
// is carried over essentially unchanged, re-expressed against
// internal/tile.Face instead of the teacher's TileType, and extended with
// DecomposeAll (the teacher only needed a boolean agari check; fu/yaku
// scoring needs every decomposition, see spec.md §4.2).
package hand

import "mahjongengine/internal/tile"

// Hand34 is a per-face tile-count histogram (size tile.NumFaces).
type Hand34 [tile.NumFaces]uint8

// FromTIDs builds a histogram from a slice of concrete tids.
func FromTIDs(tids []tile.TID) Hand34 {
	var h Hand34
	for _, t := range tids {
		h[t.Face()]++
	}
	return h
}

// FromFaces builds a histogram from a slice of faces.
func FromFaces(faces []tile.Face) Hand34 {
	var h Hand34
	for _, f := range faces {
		h[f]++
	}
	return h
}

// Total returns the number of tiles represented.
func (h Hand34) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

// Key returns a stable memoization key over the histogram plus the number
// of already-fixed (open) melds, mirroring the teacher's keyWithFixedMelds.
func (h Hand34) Key(fixedMelds int) string {
	var b [tile.NumFaces + 1]byte
	for i := 0; i < tile.NumFaces; i++ {
		b[i] = byte(h[i])
	}
	b[tile.NumFaces] = byte(fixedMelds)
	return string(b[:])
}

func suitOf(i int) tile.Suit { return tile.Face(i).Suit() }

func isNumberFace(i int) bool { return tile.Face(i).IsNumbered() }

var kokushiFaces = [13]tile.Face{
	tile.Man1, tile.Man9, tile.Pin1, tile.Pin9, tile.So1, tile.So9,
	tile.East, tile.South, tile.West, tile.North,
	tile.White, tile.Green, tile.Red,
}

func isKokushiFace(f tile.Face) bool {
	for _, k := range kokushiFaces {
		if k == f {
			return true
		}
	}
	return false
}

func firstNonZero(h Hand34) int {
	for i := 0; i < tile.NumFaces; i++ {
		if h[i] > 0 {
			return i
		}
	}
	return -1
}
