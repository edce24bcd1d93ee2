package engine

import "mahjongengine/internal/tile"

// WallGenerator supplies one shuffled permutation of the 136-tile universe
// given a seed; spec.md §1 scopes "random wall generation" as an external
// collaborator the engine consumes rather than implements.
type WallGenerator func(seed int64) [136]tile.TID

// Wall partitions one generated permutation into the live wall and the
// 14-tile dead wall (4 rinshan tiles, 5 dora indicators, 5 ura-dora
// indicators), mirroring teacher's DeckManager/Wang split in material.go
// (wall = deck.tiles[:deadStart], wangTiles[0:4]/[4:9]/[9:14]).
type Wall struct {
	live      []tile.TID
	liveIndex int

	rinshan      [4]tile.TID
	rinshanIndex int

	doraIndicators [5]tile.TID
	doraIndex      int

	uraDoraIndicators [5]tile.TID
	uraDoraIndex      int
}

const deadWallSize = 14

// NewWall partitions perm (a full 136-tile permutation) into live wall and
// dead wall, per the teacher's fixed dead-wall layout.
func NewWall(perm [136]tile.TID) *Wall {
	deadStart := 136 - deadWallSize
	w := &Wall{live: append([]tile.TID(nil), perm[:deadStart]...)}
	wang := perm[deadStart:]
	copy(w.rinshan[:], wang[0:4])
	copy(w.doraIndicators[:], wang[4:9])
	copy(w.uraDoraIndicators[:], wang[9:14])
	return w
}

// LiveRemaining reports how many tiles remain undrawn in the live wall.
func (w *Wall) LiveRemaining() int { return len(w.live) - w.liveIndex }

// Draw pops the next live tile; ok is false if the wall is exhausted.
func (w *Wall) Draw() (tile.TID, bool) {
	if w.liveIndex >= len(w.live) {
		return tile.NONE, false
	}
	t := w.live[w.liveIndex]
	w.liveIndex++
	return t, true
}

// DrawRinshan pops the next dead-wall replacement tile for a kan; ok is
// false once all 4 have been drawn (the four-kan-draw abortive case).
func (w *Wall) DrawRinshan() (tile.TID, bool) {
	if w.rinshanIndex >= len(w.rinshan) {
		return tile.NONE, false
	}
	t := w.rinshan[w.rinshanIndex]
	w.rinshanIndex++
	return t, true
}

// RinshanRemaining reports how many replacement tiles are left to draw.
func (w *Wall) RinshanRemaining() int { return len(w.rinshan) - w.rinshanIndex }

// RevealDora flips the next dora indicator and returns the resulting dora
// face; ok is false if all 5 have already been revealed.
func (w *Wall) RevealDora() (tile.Face, bool) {
	if w.doraIndex >= len(w.doraIndicators) {
		return tile.NoneFace, false
	}
	indicator := w.doraIndicators[w.doraIndex]
	w.doraIndex++
	return tile.DoraFromIndicator(indicator), true
}

// DoraFaces returns every dora face revealed so far.
func (w *Wall) DoraFaces() []tile.Face {
	faces := make([]tile.Face, w.doraIndex)
	for i := 0; i < w.doraIndex; i++ {
		faces[i] = tile.DoraFromIndicator(w.doraIndicators[i])
	}
	return faces
}

// RevealUraDora flips ura-dora indicators up to the number of dora
// indicators already revealed (spec.md §4.4: ura-dora only surfaces for a
// riichi win, and always matches the visible dora count).
func (w *Wall) RevealUraDora() []tile.Face {
	for w.uraDoraIndex < w.doraIndex && w.uraDoraIndex < len(w.uraDoraIndicators) {
		w.uraDoraIndex++
	}
	faces := make([]tile.Face, w.uraDoraIndex)
	for i := 0; i < w.uraDoraIndex; i++ {
		faces[i] = tile.DoraFromIndicator(w.uraDoraIndicators[i])
	}
	return faces
}

// Visible34 fills dst with the count of each face the engine has revealed
// to every seat via the wall alone (dora indicators), in the shape
// internal/hand's ukeire calculation takes as its visible-tile counts;
// nothing in the engine calls it. Ground: teacher's DeckManager.Visible34.
func (w *Wall) Visible34(dst *[tile.NumFaces]uint8) {
	for i := 0; i < w.doraIndex; i++ {
		dst[w.doraIndicators[i].Face()]++
	}
}
