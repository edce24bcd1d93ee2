package meld

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjongengine/internal/tile"
)

func TestUpgradeKaKan(t *testing.T) {
	// Pin5 face index 13 => TIDs 52..55.
	pon := Meld{Kind: Pon, Tiles: []tile.TID{52, 53, 54}, Opened: true, ClaimedFromSeat: 2}
	kan := UpgradeKaKan(pon, 55)
	assert.Equal(t, KaKan, kan.Kind)
	assert.Equal(t, []tile.TID{52, 53, 54, 55}, kan.Tiles)
	assert.Equal(t, 2, kan.ClaimedFromSeat)
	assert.Equal(t, tile.Pin5, kan.Face())
}

func TestMeldFace_Chi(t *testing.T) {
	// 3m4m5m stored out of order; Face() should report the lowest.
	m := Meld{Kind: Chi, Tiles: []tile.TID{16, 8, 12}}
	assert.Equal(t, tile.Man3, m.Face())
}

func TestRiver_ContainsFaceAndTsumogiri(t *testing.T) {
	var r River
	r.Append(4, Tsumogiri)
	r.Append(8, RiichiTile)
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.ContainsFace(tile.Face(1)))
	assert.False(t, r.ContainsFace(tile.East))
	assert.Equal(t, Tsumogiri, r.Entries()[0].Flags)
}

func TestMelds_AddAndCap(t *testing.T) {
	var m Melds
	for i := 0; i < 4; i++ {
		assert.True(t, m.Add(Meld{Kind: Pon}))
	}
	assert.False(t, m.Add(Meld{Kind: Pon}))
	assert.Equal(t, 12, m.ConcealedTileCount())
}

func TestMelds_FindPon(t *testing.T) {
	var m Melds
	m.Add(Meld{Kind: Pon, Tiles: []tile.TID{52, 53, 54}})
	assert.Equal(t, 0, m.FindPon(tile.Pin5))
	assert.Equal(t, -1, m.FindPon(tile.Man1))
}
