package obs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjongengine/internal/engine"
	"mahjongengine/internal/legality"
	"mahjongengine/internal/tile"
)

func tid(f tile.Face, copy int) tile.TID { return tile.TID(int(f)*4 + copy) }

// buildWall deals a fixed, collision-free 136-tile permutation: deal[seat]
// supplies each seat's 13 starting tiles, draws supplies the sequential
// live-wall draws, and every remaining slot (including the dora indicator)
// is backfilled with whatever TIDs are left over.
func buildWall(t *testing.T, deal [4][13]tile.TID, draws []tile.TID) engine.WallGenerator {
	t.Helper()
	var perm [136]tile.TID
	var filled, used [136]bool
	place := func(idx int, v tile.TID) {
		if filled[idx] || used[v] {
			t.Fatalf("buildWall: slot %d or tid %d already used", idx, v)
		}
		perm[idx] = v
		filled[idx] = true
		used[v] = true
	}
	for round := 0; round < 13; round++ {
		for seat := 0; seat < 4; seat++ {
			place(4*round+seat, deal[seat][round])
		}
	}
	for i, v := range draws {
		place(52+i, v)
	}
	var leftover []tile.TID
	for i := 0; i < 136; i++ {
		if !used[tile.TID(i)] {
			leftover = append(leftover, tile.TID(i))
		}
	}
	li := 0
	for i := 0; i < 136; i++ {
		if !filled[i] {
			perm[i] = leftover[li]
			li++
		}
	}
	return func(seed int64) [136]tile.TID { return perm }
}

func fillerHand(face1, face2, face3 tile.Face, copy int, honors [4]tile.Face, honorCopy int, extra tile.Face, extraCopy int) [13]tile.TID {
	return [13]tile.TID{
		tid(face1, copy), tid(face1+1, copy), tid(face1+2, copy),
		tid(face2, copy), tid(face2+1, copy), tid(face2+2, copy),
		tid(face3, copy), tid(face3+1, copy), tid(face3+2, copy),
		tid(honors[0], honorCopy), tid(honors[1], honorCopy), tid(honors[2], honorCopy),
		tid(extra, extraCopy),
	}
}

func freshEngine(t *testing.T) (*engine.Engine, map[int]engine.Observation) {
	t.Helper()
	deal := [4][13]tile.TID{
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 0, [4]tile.Face{tile.East, tile.South, tile.West}, 0, tile.North, 0),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 1, [4]tile.Face{tile.East, tile.South, tile.West}, 1, tile.North, 1),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 2, [4]tile.Face{tile.East, tile.South, tile.West}, 2, tile.North, 2),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 3, [4]tile.Face{tile.East, tile.South, tile.West}, 3, tile.North, 3),
	}
	gen := buildWall(t, deal, []tile.TID{tid(tile.White, 0)})
	eng := engine.New(engine.Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, WallGen: gen})
	obsMap, err := eng.Reset(1)
	assert.NoError(t, err)
	return eng, obsMap
}

func TestEncode_TokenOrderAndRelativeSeats(t *testing.T) {
	_, obsMap := freshEngine(t)
	ob := obsMap[0]

	tn := Encode(ob)

	assert.Equal(t, int16(TokenCLS), tn.TokenMain[0][0])
	assert.Equal(t, uint8(1), tn.TokenMask[0])
	assert.Equal(t, int16(TokenRound), tn.TokenMain[1][0])
	assert.Equal(t, int16(1), tn.TokenScalar[1][0]) // round number 1

	for i := 0; i < 4; i++ {
		row := tn.TokenMain[2+i]
		assert.Equal(t, int16(TokenScore), row[0])
		assert.Equal(t, int16(i), row[1]) // dealer is the observer, so rel==abs here
		assert.Equal(t, int16(25000), tn.TokenScalar[2+i][0])
	}

	// one dora indicator was revealed at kyoku start.
	doraTok := tn.TokenMain[6]
	assert.Equal(t, int16(TokenDora), doraTok[0])

	drawnTok := tn.TokenMain[7]
	assert.Equal(t, int16(TokenDrawn), drawnTok[0])
	assert.Equal(t, int16(ob.Drawn), drawnTok[2])

	// 14 hand tokens follow, sorted ascending by TID.
	for i := 0; i < 14; i++ {
		row := tn.TokenMain[8+i]
		assert.Equal(t, int16(TokenHand), row[0])
		if i > 0 {
			assert.Greater(t, row[2], tn.TokenMain[8+i-1][2])
		}
	}

	// no melds or river discards yet: the token stream ends right after HAND.
	assert.Equal(t, uint8(0), tn.TokenMask[8+14])
}

func TestEncode_LegalActionsBecomeActionMain(t *testing.T) {
	_, obsMap := freshEngine(t)
	ob := obsMap[0]
	tn := Encode(ob)

	assert.Equal(t, len(ob.LegalActions), countSetMask(tn.LegalMask[:]))
	for i, a := range ob.LegalActions {
		assert.Equal(t, int16(a.Kind), tn.ActionMain[i][0])
		assert.Equal(t, uint8(1), tn.LegalMask[i])
	}
}

func countSetMask(mask []uint8) int {
	n := 0
	for _, m := range mask {
		if m == 1 {
			n++
		}
	}
	return n
}

func TestY47Engine_ResetAndStepRoundTrip(t *testing.T) {
	deal := [4][13]tile.TID{
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 0, [4]tile.Face{tile.East, tile.South, tile.West}, 0, tile.North, 0),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 1, [4]tile.Face{tile.East, tile.South, tile.West}, 1, tile.North, 1),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 2, [4]tile.Face{tile.East, tile.South, tile.West}, 2, tile.North, 2),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 3, [4]tile.Face{tile.East, tile.South, tile.West}, 3, tile.North, 3),
	}
	drawn := tid(tile.White, 0)
	gen := buildWall(t, deal, []tile.TID{drawn})

	y := NewY47Engine(engine.Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, WallGen: gen})
	tensors, err := y.ResetY47(1)
	assert.NoError(t, err)
	assert.Contains(t, tensors, 0)

	discardIdx := -1
	for i, a := range y.legalActions[0] {
		if a.Kind == legality.Discard && a.Tile == drawn {
			discardIdx = i
			break
		}
	}
	if discardIdx < 0 {
		t.Fatalf("expected a discard action for the drawn tile in seat 0's legal actions")
	}

	tensors, err = y.StepY47(map[int]int{0: discardIdx})
	assert.NoError(t, err)
	assert.Equal(t, 1, y.eng.CurrentSeat)
	assert.Contains(t, tensors, 1)

	riverTok := false
	for i := 0; i < MaxTokens; i++ {
		if tensors[1].TokenMask[i] == 1 && tensors[1].TokenMain[i][0] == int16(TokenRiver) {
			riverTok = true
			break
		}
	}
	assert.True(t, riverTok, "expected seat 0's discard to surface as a RIVER token in seat 1's observation")
}

func TestRiverMirror_DetectsDivergence(t *testing.T) {
	var m RiverMirror
	m.AppendDiscard(0, tid(tile.Man1, 0), 0)

	ob := engine.Observation{}
	ob.Rivers[0] = nil // engine thinks nothing was discarded yet
	err := m.Verify(ob)
	assert.Error(t, err)
	var de *MirrorDivergenceError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, 0, de.Seat)
}
