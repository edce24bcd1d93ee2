// Package obs implements the fixed-shape tensor encoder described in
// spec.md §4.6, split out from internal/engine for size. It turns an
// engine.Observation into the tuple an RL policy consumes directly:
// (token_main, token_scalar, token_mask) describing table state, and
// (action_main, action_consume, action_consume_mask, legal_mask) describing
// the seat's current legal-action menu.
//
// Ground: no direct teacher analogue (the teacher's push.go marshals a
// PlayerReaction-shaped JSON payload over a connector); this package keeps
// that "one struct per active seat" texture but replaces JSON with the
// fixed-shape arrays spec.md §4.6 requires.
package obs

import (
	"mahjongengine/internal/legality"
	"mahjongengine/internal/tile"
)

// Fixed caps, per spec.md §4.6.
const (
	MaxTokens  = 256
	MaxActions = 128
	MaxConsume = 4
)

// TokenKind tags each row of token_main with its semantic kind, in the
// strict emission order spec.md §4.6 names.
type TokenKind int16

const (
	TokenCLS TokenKind = iota
	TokenRound
	TokenScore
	TokenDora
	TokenDrawn
	TokenHand
	TokenMeldTile
	TokenRiver
)

// none is the sentinel written to an int16 column that doesn't apply to a
// given token's kind.
const none = -1

// Tensors is one seat's fully encoded observation.
//
// token_main columns: [0]=kind (TokenKind), [1]=seat_rel (observer-relative
// seat this token describes, or none), [2]=tid, [3]=face, [4]=meld kind (or
// none), [5]=slot (position within a hand/meld/river/dora sequence, or
// none), [6]=bit flags (river flags for TokenRiver, Opened for TokenMeldTile,
// 1 for TokenDrawn, otherwise 0).
//
// token_scalar columns: [0]=primary scalar (round number / score value /
// dora ordinal / river position, kind-dependent), [1]=honba (TokenRound
// only), [2]=riichi sticks (TokenRound only).
//
// action_main columns: [0]=legality.ActionKind, [1]=tid, [2]=face,
// [3]=consume count, [4]=is red five (0/1), [5]=reserved (always 0).
type Tensors struct {
	TokenMain   [MaxTokens][7]int16
	TokenScalar [MaxTokens][3]int16
	TokenMask   [MaxTokens]uint8

	ActionMain        [MaxActions][6]int16
	ActionConsume     [MaxActions][MaxConsume]int16
	ActionConsumeMask [MaxActions][MaxConsume]uint8
	LegalMask         [MaxActions]uint8
}

// builder accumulates rows into a Tensors value, capping writes at the
// fixed token/action budgets instead of panicking on overflow.
type builder struct {
	t   Tensors
	tok int
	act int
}

func (b *builder) token(kind TokenKind, seatRel, tid, face, meldKind, slot, flags int, scalars [3]int) bool {
	if b.tok >= MaxTokens {
		return false
	}
	i := b.tok
	b.t.TokenMain[i] = [7]int16{int16(kind), int16(seatRel), int16(tid), int16(face), int16(meldKind), int16(slot), int16(flags)}
	b.t.TokenScalar[i] = [3]int16{int16(scalars[0]), int16(scalars[1]), int16(scalars[2])}
	b.t.TokenMask[i] = 1
	b.tok++
	return true
}

func (b *builder) action(kind legality.ActionKind, a legality.Action, mode tile.GameMode, legal bool) {
	if b.act >= MaxActions {
		return
	}
	i := b.act
	red := 0
	if a.Tile != tile.NONE && tile.IsRed(mode, a.Tile) {
		red = 1
	}
	face := int(tile.NoneFace)
	if a.Tile != tile.NONE {
		face = int(a.Tile.Face())
	}
	b.t.ActionMain[i] = [6]int16{int16(kind), int16(tid16(a.Tile)), int16(face), int16(len(a.Consume)), int16(red), 0}
	for c := 0; c < MaxConsume; c++ {
		if c < len(a.Consume) {
			b.t.ActionConsume[i][c] = int16(a.Consume[c])
			b.t.ActionConsumeMask[i][c] = 1
		} else {
			b.t.ActionConsume[i][c] = none
		}
	}
	if legal {
		b.t.LegalMask[i] = 1
	}
	b.act++
}

func tid16(t tile.TID) int16 {
	if t == tile.NONE {
		return int16(tile.NONE)
	}
	return int16(t)
}
