package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjongengine/internal/legality"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

func tid(f tile.Face, copy int) tile.TID { return tile.TID(int(f)*4 + copy) }

// buildWall turns a fixed deal/draw plan into a WallGenerator whose
// permutation always passes the engine's tile-conservation invariant: the
// initial-deal slots and the given live draws get the requested tiles,
// dora indicator gets indicator, and every remaining slot is backfilled
// with whatever TIDs are left over, in face order.
func buildWall(t *testing.T, deal [4][13]tile.TID, draws []tile.TID, indicator tile.TID) WallGenerator {
	t.Helper()
	var perm [136]tile.TID
	var filled [136]bool
	place := func(idx int, v tile.TID) {
		if filled[idx] {
			t.Fatalf("buildWall: slot %d already filled", idx)
		}
		perm[idx] = v
		filled[idx] = true
	}
	var used [136]bool
	mark := func(v tile.TID) {
		if used[v] {
			t.Fatalf("buildWall: tid %d used twice", v)
		}
		used[v] = true
	}

	for round := 0; round < 13; round++ {
		for seat := 0; seat < 4; seat++ {
			v := deal[seat][round]
			place(4*round+seat, v)
			mark(v)
		}
	}
	for i, v := range draws {
		place(52+i, v)
		mark(v)
	}
	place(126, indicator)
	mark(indicator)

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

// TestEngine_Reset_DealsThirteenAndFourteen exercises startKyoku end to
// end: every seat gets 13 tiles, the dealer draws a 14th, and the initial
// observation map names exactly the dealer as active.
func TestEngine_Reset_DealsThirteenAndFourteen(t *testing.T) {
	deal := [4][13]tile.TID{
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 0, [4]tile.Face{tile.East, tile.South, tile.West}, 0, tile.North, 0),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 1, [4]tile.Face{tile.East, tile.South, tile.West}, 1, tile.North, 1),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 2, [4]tile.Face{tile.East, tile.South, tile.West}, 2, tile.North, 2),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 3, [4]tile.Face{tile.East, tile.South, tile.West}, 3, tile.North, 3),
	}
	draws := []tile.TID{tid(tile.White, 0)}
	gen := buildWall(t, deal, draws, tid(tile.Red, 0))

	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, WallGen: gen})
	obs, err := eng.Reset(1)
	assert.NoError(t, err)

	assert.Equal(t, PhaseWaitAct, eng.Phase)
	assert.Equal(t, 0, eng.CurrentSeat)
	assert.Len(t, eng.Players[0].Seat.Tiles, 14)
	for s := 1; s < 4; s++ {
		assert.Len(t, eng.Players[s].Seat.Tiles, 13)
	}
	assert.Len(t, obs, 1)
	if _, ok := obs[0]; !ok {
		t.Fatalf("expected dealer seat 0 in initial observation map")
	}
}

// TestEngine_Discard_NoReaction_AdvancesTurn drives a single discard with
// no possible reaction from any other seat and checks the turn rotates.
func TestEngine_Discard_NoReaction_AdvancesTurn(t *testing.T) {
	deal := [4][13]tile.TID{
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 0, [4]tile.Face{tile.East, tile.South, tile.West}, 0, tile.North, 0),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 1, [4]tile.Face{tile.East, tile.South, tile.West}, 1, tile.North, 1),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 2, [4]tile.Face{tile.East, tile.South, tile.West}, 2, tile.North, 2),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 3, [4]tile.Face{tile.East, tile.South, tile.West}, 3, tile.North, 3),
	}
	drawn := tid(tile.Red, 0)
	draws := []tile.TID{drawn}
	gen := buildWall(t, deal, draws, tid(tile.White, 1))

	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, WallGen: gen})
	_, err := eng.Reset(1)
	assert.NoError(t, err)

	obs, err := eng.Step(map[int]legality.Action{0: {Kind: legality.Discard, Tile: drawn}})
	assert.NoError(t, err)
	assert.Equal(t, 1, eng.CurrentSeat)
	assert.Equal(t, PhaseWaitAct, eng.Phase)
	assert.Equal(t, 1, eng.Players[0].Seat.River.Len())
	assert.Len(t, obs, 1)
}

// TestEngine_DealerTsumo_PinfuMenzenTsumo drives a dealer self-draw win to
// completion and checks the payout against a hand-derived score: pinfu (1)
// + menzen tsumo (1) = 2 han, fixed pinfu-tsumo fu of 20, base points
// 20*2^4=320, each opponent pays roundUpTo100(320*2)=700. The win lands on
// the dealer's second draw (everybody tsumogiri-discards a harmless tile
// first) so it doesn't also qualify as tenhou.
func TestEngine_DealerTsumo_PinfuMenzenTsumo(t *testing.T) {
	dealerHand := [13]tile.TID{
		tid(tile.Man1, 0), tid(tile.Man2, 0), tid(tile.Man3, 0),
		tid(tile.Pin1, 0), tid(tile.Pin2, 0), tid(tile.Pin3, 0),
		tid(tile.So2, 0), tid(tile.So3, 0), tid(tile.So4, 0),
		tid(tile.Man7, 0), tid(tile.Man8, 0),
		tid(tile.Pin9, 0), tid(tile.Pin9, 1),
	}
	deal := [4][13]tile.TID{
		dealerHand,
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 1, [4]tile.Face{tile.East, tile.South, tile.West}, 1, tile.North, 1),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 2, [4]tile.Face{tile.East, tile.South, tile.West}, 2, tile.North, 2),
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 3, [4]tile.Face{tile.East, tile.South, tile.West}, 3, tile.North, 3),
	}
	draws := []tile.TID{
		tid(tile.Green, 0), tid(tile.Green, 1), tid(tile.Green, 2), tid(tile.Green, 3),
		tid(tile.Man9, 0), // dealer's second draw, completes 7m8m9m ryanmen
	}
	gen := buildWall(t, deal, draws, tid(tile.Red, 0))

	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, WallGen: gen})
	_, err := eng.Reset(1)
	assert.NoError(t, err)

	for seat := 0; seat < 4; seat++ {
		_, err = eng.Step(map[int]legality.Action{seat: {Kind: legality.Discard, Tile: tid(tile.Green, seat)}})
		assert.NoError(t, err)
	}
	assert.Equal(t, 0, eng.CurrentSeat)
	assert.Equal(t, tid(tile.Man9, 0), eng.lastDrawnTile)

	_, err = eng.Step(map[int]legality.Action{0: {Kind: legality.Tsumo}})
	assert.NoError(t, err)

	assert.Equal(t, PhaseEndKyoku, eng.Phase)
	assert.Equal(t, startingScore+2100, eng.Players[0].Score)
	for s := 1; s < 4; s++ {
		assert.Equal(t, startingScore-700, eng.Players[s].Score)
	}
}

// TestApplyResponses_RonDominatesPon sets up a discard both ronnable by one
// seat (completing a closed sanshoku+junchan hand) and ponnable by another,
// and checks the ron wins outright: the pon never executes.
func TestApplyResponses_RonDominatesPon(t *testing.T) {
	deal := [4][13]tile.TID{
		fillerHand(tile.Man4, tile.So4, tile.Pin4, 0, [4]tile.Face{tile.East, tile.South, tile.West}, 0, tile.North, 0),
		{ // seat1 discarder: filler + the Pin9 it will discard
			tid(tile.Man4, 1), tid(tile.Man5, 1), tid(tile.Man6, 1),
			tid(tile.So4, 1), tid(tile.So5, 1), tid(tile.So6, 1),
			tid(tile.East, 1), tid(tile.South, 1), tid(tile.West, 1), tid(tile.North, 1),
			tid(tile.White, 1), tid(tile.Green, 1),
			tid(tile.Pin9, 3),
		},
		{ // seat2: sanshoku + junchan tanki wait on Pin9
			tid(tile.Man1, 0), tid(tile.Man2, 0), tid(tile.Man3, 0),
			tid(tile.Pin1, 0), tid(tile.Pin2, 0), tid(tile.Pin3, 0),
			tid(tile.So1, 0), tid(tile.So2, 0), tid(tile.So3, 0),
			tid(tile.Man7, 0), tid(tile.Man8, 0), tid(tile.Man9, 0),
			tid(tile.Pin9, 0),
		},
		{ // seat3: holds the pon pair
			tid(tile.Man4, 2), tid(tile.Man5, 2), tid(tile.Man6, 2),
			tid(tile.So4, 2), tid(tile.So5, 2), tid(tile.So6, 2),
			tid(tile.East, 2), tid(tile.South, 2), tid(tile.West, 2), tid(tile.North, 2),
			tid(tile.White, 2),
			tid(tile.Pin9, 1), tid(tile.Pin9, 2),
		},
	}
	draws := []tile.TID{tid(tile.Green, 0), tid(tile.Green, 2)}
	gen := buildWall(t, deal, draws, tid(tile.Red, 1))

	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, WallGen: gen})
	_, err := eng.Reset(1)
	assert.NoError(t, err)

	_, err = eng.Step(map[int]legality.Action{0: {Kind: legality.Discard, Tile: tid(tile.Green, 0)}})
	assert.NoError(t, err)
	assert.Equal(t, 1, eng.CurrentSeat)

	discarded := tid(tile.Pin9, 3)
	_, err = eng.Step(map[int]legality.Action{1: {Kind: legality.Discard, Tile: discarded}})
	assert.NoError(t, err)
	assert.Equal(t, PhaseWaitResponse, eng.Phase)
	assert.ElementsMatch(t, []int{2, 3}, eng.respondingSeats)

	ponConsume := []tile.TID{tid(tile.Pin9, 1), tid(tile.Pin9, 2)}
	_, err = eng.Step(map[int]legality.Action{
		2: {Kind: legality.Ron},
		3: {Kind: legality.Pon, Consume: ponConsume},
	})
	assert.NoError(t, err)

	assert.Equal(t, PhaseEndKyoku, eng.Phase)
	assert.Equal(t, 0, eng.Players[3].Seat.Melds.Len())
	assert.Contains(t, eng.Players[3].Seat.Tiles, tid(tile.Pin9, 1))
	assert.Greater(t, eng.Players[2].Score, startingScore)
	assert.Less(t, eng.Players[1].Score, startingScore)
}

func identityWall() *Wall {
	var perm [136]tile.TID
	for i := range perm {
		perm[i] = tile.TID(i)
	}
	return NewWall(perm)
}

// TestResolveRonClaims_DoubleRonSplitsStickToHeadBumpOnly builds two
// independent winners (identical sanshoku+junchan hand shapes, so the
// payout math is the same for each) and checks double-ron payout: both
// collect the ron payment and the honba bonus, but only the seat closest
// to the discarder collects the riichi-stick pot.
func TestResolveRonClaims_DoubleRonSplitsStickToHeadBumpOnly(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true, DoubleRonAllowed: true})
	eng.Wall = identityWall()
	eng.Situation.RiichiSticks = 1
	eng.Situation.Honba = 1

	hand := func(copy int) []tile.TID {
		return []tile.TID{
			tid(tile.Man1, copy), tid(tile.Man2, copy), tid(tile.Man3, copy),
			tid(tile.Pin1, copy), tid(tile.Pin2, copy), tid(tile.Pin3, copy),
			tid(tile.So1, copy), tid(tile.So2, copy), tid(tile.So3, copy),
			tid(tile.Man7, copy), tid(tile.Man8, copy), tid(tile.Man9, copy),
			tid(tile.Pin9, copy),
		}
	}
	eng.Players[2].Seat.Tiles = hand(0)
	eng.Players[3].Seat.Tiles = hand(1)
	discardedTile := tid(tile.Pin9, 2)

	err := eng.resolveRonClaims(1, discardedTile, []int{3, 2})
	assert.NoError(t, err)

	assert.Equal(t, startingScore+8000+1000+300, eng.Players[2].Score)
	assert.Equal(t, startingScore+8000+300, eng.Players[3].Score)
	assert.Equal(t, startingScore-16600, eng.Players[1].Score)
	assert.Equal(t, 0, eng.Situation.RiichiSticks)
	assert.Equal(t, PhaseEndKyoku, eng.Phase)
	assert.False(t, eng.GameOver)
}

func TestApplyNotenPayments_SplitsByTenpaiCount(t *testing.T) {
	cases := []struct {
		name    string
		tenpai  []int
		delta   [4]int
	}{
		{"one tenpai", []int{0}, [4]int{3000, -1000, -1000, -1000}},
		{"two tenpai", []int{0, 1}, [4]int{1500, 1500, -1500, -1500}},
		{"three tenpai", []int{0, 1, 2}, [4]int{1000, 1000, 1000, -3000}},
		{"all tenpai", []int{0, 1, 2, 3}, [4]int{0, 0, 0, 0}},
		{"all noten", nil, [4]int{0, 0, 0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
			eng.applyNotenPayments(c.tenpai)
			for s := 0; s < 4; s++ {
				assert.Equal(t, startingScore+c.delta[s], eng.Players[s].Score, "seat %d", s)
			}
		})
	}
}

func TestPickClaim_ProximityTiebreak(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})

	actions := map[int]legality.Action{
		2: {Kind: legality.Pon},
		3: {Kind: legality.Pon},
	}
	seat, _, ok := eng.pickClaim(actions, legality.Pon, 1)
	assert.True(t, ok)
	assert.Equal(t, 2, seat)

	actions = map[int]legality.Action{
		0: {Kind: legality.Pon},
		1: {Kind: legality.Pon},
	}
	seat, _, ok = eng.pickClaim(actions, legality.Pon, 3)
	assert.True(t, ok)
	assert.Equal(t, 0, seat)

	_, _, ok = eng.pickClaim(actions, legality.Chi, 3)
	assert.False(t, ok)
}

func TestLatchRiichi_DoubleRiichiOnlyOnUninterruptedFirstDiscard(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	p := eng.Players[0]
	p.Seat.River.Append(tid(tile.Man1, 0), 0)
	eng.callsMadeThisKyoku = 0

	eng.latchRiichi(0)
	assert.True(t, p.Seat.RiichiDeclared)
	assert.True(t, p.DoubleRiichi)
	assert.True(t, p.Ippatsu)
	assert.Equal(t, startingScore-1000, p.Score)
	assert.Equal(t, 1, eng.Situation.RiichiSticks)
	assert.Equal(t, -1, eng.pendingRiichiSeat)

	eng2 := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	p2 := eng2.Players[1]
	p2.Seat.River.Append(tid(tile.Man1, 0), 0)
	p2.Seat.River.Append(tid(tile.Man2, 0), 0)
	eng2.latchRiichi(1)
	assert.False(t, p2.DoubleRiichi)
}

func TestClearIppatsuExcept(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	for _, p := range eng.Players {
		p.Ippatsu = true
	}
	eng.clearIppatsuExcept(2)
	for s, p := range eng.Players {
		assert.Equal(t, s == 2, p.Ippatsu)
	}
}

func TestFollowThroughKan_SelfKanAndCalledKan_RevealDoraAndDrawRinshan(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	eng.Wall = identityWall()
	eng.kansDeclaredBy = make(map[int]bool)

	err := eng.followThroughKan(0, meld.AnKan)
	assert.NoError(t, err)
	assert.Equal(t, 1, eng.Wall.doraIndex)
	assert.Equal(t, 1, eng.Wall.rinshanIndex)
	assert.Equal(t, PhaseWaitAct, eng.Phase)
	assert.True(t, eng.lastDrawWasRinshan)

	err = eng.followThroughKan(1, meld.DaiMinKan)
	assert.NoError(t, err)
	assert.Equal(t, 2, eng.Wall.doraIndex)
	assert.Equal(t, 2, eng.Wall.rinshanIndex)
	assert.Equal(t, 1, eng.CurrentSeat)
}

func TestFollowThroughKan_FourKanByDistinctSeatsAborts(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	eng.Wall = identityWall()
	eng.kansDeclaredBy = make(map[int]bool)

	assert.NoError(t, eng.followThroughKan(0, meld.AnKan))
	assert.NoError(t, eng.followThroughKan(1, meld.AnKan))
	assert.NoError(t, eng.followThroughKan(2, meld.AnKan))
	err := eng.followThroughKan(3, meld.AnKan)
	assert.NoError(t, err)
	assert.Equal(t, PhaseEndKyoku, eng.Phase)
}

func TestAllRiichiDeclared(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	assert.False(t, eng.allRiichiDeclared())
	for _, p := range eng.Players {
		p.Seat.RiichiDeclared = true
	}
	assert.True(t, eng.allRiichiDeclared())
}

func TestFourWindSameRound(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	for s := 0; s < 4; s++ {
		eng.Players[s].Seat.River.Append(tid(tile.East, s), 0)
	}
	eng.discardsThisKyoku = 4
	eng.callsMadeThisKyoku = 0
	assert.True(t, eng.fourWindSameRound())

	eng.Players[2].Seat.River.Reset()
	eng.Players[2].Seat.River.Append(tid(tile.South, 2), 0)
	assert.False(t, eng.fourWindSameRound())

	for s := 0; s < 4; s++ {
		eng.Players[s].Seat.River.Reset()
		eng.Players[s].Seat.River.Append(tid(tile.East, s), 0)
	}
	eng.callsMadeThisKyoku = 1
	assert.False(t, eng.fourWindSameRound())
}

func TestResolveAbortiveDraw_HonbaAdvancesDealerUnchanged(t *testing.T) {
	eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
	eng.Wall = identityWall()
	eng.Situation = Situation{DealerSeat: 1, Honba: 2, RoundWind: tile.East, RoundNumber: 3}

	err := eng.resolveAbortiveDraw("kyushu_kyuhai")
	assert.NoError(t, err)
	assert.Equal(t, 1, eng.Situation.DealerSeat)
	assert.Equal(t, 3, eng.Situation.Honba)
	assert.Equal(t, 3, eng.Situation.RoundNumber)
	assert.Equal(t, PhaseEndKyoku, eng.Phase)
	assert.True(t, eng.NeedsInitializeNextRound)
	assert.False(t, eng.GameOver)
}

func TestEndKyoku_WrapsRoundWindOrEndsGame(t *testing.T) {
	t.Run("hanchan wraps into south round", func(t *testing.T) {
		eng := New(Config{Mode: tile.Mode4pRedHalf, SkipEventLog: true})
		eng.Wall = identityWall()
		eng.Situation = Situation{DealerSeat: 3, Honba: 0, RoundWind: tile.East, RoundNumber: 4}

		eng.endKyoku(EndTsumo, false)
		assert.Equal(t, tile.South, eng.Situation.RoundWind)
		assert.Equal(t, 1, eng.Situation.RoundNumber)
		assert.False(t, eng.GameOver)
	})

	t.Run("east-only mode ends the game", func(t *testing.T) {
		eng := New(Config{Mode: tile.Mode4pRedEast, SkipEventLog: true})
		eng.Wall = identityWall()
		eng.Situation = Situation{DealerSeat: 3, Honba: 0, RoundWind: tile.East, RoundNumber: 4}

		eng.endKyoku(EndTsumo, false)
		assert.True(t, eng.GameOver)
	})
}
