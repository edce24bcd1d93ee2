package yaku

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

// group is a uniform view over one completed set, whether it came from
// the concealed decomposition or from a called meld, used by the yaku
// and fu calculators alike.
type group struct {
	kind       hand.SetKind
	face       tile.Face
	concealed  bool // ankou/ankan vs minko/open-kan, for fu & sanankou
	isKan      bool
	isOpenCall bool // true if this group is a called meld, not a concealed set
}

// buildGroups merges a concealed Decomposition's sets with the seat's
// called melds into one list. A concealed triplet that was completed by
// a ron (the shanpon case) is reclassified as minko: the player did not
// hold the triplet before the winning tile arrived.
func buildGroups(d hand.Decomposition, melds []meld.Meld, winFace tile.Face, tsumo bool) []group {
	groups := make([]group, 0, 4+len(melds))
	for _, s := range d.Sets {
		concealed := true
		if s.Kind == hand.SetTriplet && s.Face == winFace && !tsumo {
			concealed = false
		}
		groups = append(groups, group{kind: s.Kind, face: s.Face, concealed: concealed})
	}
	for _, m := range melds {
		k := hand.SetTriplet
		if m.Kind == meld.Chi {
			k = hand.SetRun
		}
		groups = append(groups, group{
			kind:       k,
			face:       m.Face(),
			concealed:  m.Kind == meld.AnKan,
			isKan:      m.IsKan(),
			isOpenCall: true,
		})
	}
	return groups
}

// isMenzen reports whether the hand is fully concealed: no meld breaks
// concealment except AnKan (drawn from one's own hand, not called).
func isMenzen(melds []meld.Meld) bool {
	for _, m := range melds {
		if m.Kind != meld.AnKan {
			return false
		}
	}
	return true
}

func allTerminalOrHonor(groups []group, pair tile.Face) bool {
	if !pair.IsTerminalOrHonor() {
		return false
	}
	for _, g := range groups {
		if g.kind == hand.SetTriplet {
			if !g.face.IsTerminalOrHonor() {
				return false
			}
			continue
		}
		// a run can only be all-terminal-or-honor if both its ends are
		// terminals, which is impossible for a 3-tile consecutive run.
		return false
	}
	return true
}

func allSimples(groups []group, pair tile.Face) bool {
	if pair.IsTerminalOrHonor() {
		return false
	}
	for _, g := range groups {
		switch g.kind {
		case hand.SetTriplet:
			if g.face.IsTerminalOrHonor() {
				return false
			}
		case hand.SetRun:
			if g.face.IsTerminal() || (g.face + 2).IsTerminal() {
				return false
			}
		}
	}
	return true
}

func everyGroupHasTerminalOrHonor(groups []group, pair tile.Face) bool {
	if !pair.IsTerminalOrHonor() {
		return false
	}
	for _, g := range groups {
		switch g.kind {
		case hand.SetTriplet:
			if !g.face.IsTerminalOrHonor() {
				return false
			}
		case hand.SetRun:
			if !(g.face.Rank() == 1 || (g.face + 2).Rank() == 9) {
				return false
			}
		}
	}
	return true
}

func everyGroupPureTerminal(groups []group, pair tile.Face) bool {
	if pair.IsHonor() || !pair.IsTerminal() {
		return false
	}
	for _, g := range groups {
		switch g.kind {
		case hand.SetTriplet:
			if g.face.IsHonor() || !g.face.IsTerminal() {
				return false
			}
		case hand.SetRun:
			if g.face.IsHonor() {
				return false
			}
			if !(g.face.Rank() == 1 || (g.face + 2).Rank() == 9) {
				return false
			}
		}
	}
	return true
}

func singleSuitFaces(groups []group, pair tile.Face) (suit tile.Suit, hasHonor bool, ok bool) {
	suit = tile.SuitNone
	seenSuit := false
	check := func(f tile.Face) bool {
		if f.IsHonor() {
			hasHonor = true
			return true
		}
		s := f.Suit()
		if !seenSuit {
			suit, seenSuit = s, true
			return true
		}
		return s == suit
	}
	if !check(pair) {
		return suit, hasHonor, false
	}
	for _, g := range groups {
		if !check(g.face) {
			return suit, hasHonor, false
		}
	}
	return suit, hasHonor, seenSuit || hasHonor
}

func countTriplets(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.kind == hand.SetTriplet {
			n++
		}
	}
	return n
}

func countConcealedTriplets(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.kind == hand.SetTriplet && g.concealed && !g.isOpenCall {
			n++
		}
	}
	return n
}

func countRuns(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.kind == hand.SetRun {
			n++
		}
	}
	return n
}

func countKans(melds []meld.Meld) int {
	n := 0
	for _, m := range melds {
		if m.IsKan() {
			n++
		}
	}
	return n
}

func dragonTripletCount(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.kind == hand.SetTriplet && g.face.IsDragon() {
			n++
		}
	}
	return n
}

func windTripletCount(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.kind == hand.SetTriplet && g.face.IsWind() {
			n++
		}
	}
	return n
}

func runFaces(groups []group) []tile.Face {
	var out []tile.Face
	for _, g := range groups {
		if g.kind == hand.SetRun {
			out = append(out, g.face)
		}
	}
	return out
}

func countIipeikouPairs(faces []tile.Face) int {
	used := make(map[int]bool)
	pairs := 0
	for i := 0; i < len(faces); i++ {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(faces); j++ {
			if !used[j] && faces[i] == faces[j] {
				used[i], used[j] = true, true
				pairs++
				break
			}
		}
	}
	return pairs
}

func hasSanshokuDoujun(faces []tile.Face) bool {
	seen := map[int]uint8{} // rank(1-indexed within run-start 1..7) -> suit bitmask
	for _, f := range faces {
		if f.IsHonor() {
			continue
		}
		rank := f.Rank() // lowest tile's rank, 1..7
		bit := uint8(1) << uint8(f.Suit())
		seen[rank] |= bit
	}
	for _, mask := range seen {
		if mask == (1<<tile.SuitMan)|(1<<tile.SuitPin)|(1<<tile.SuitSo) {
			return true
		}
	}
	return false
}

func hasIttsu(faces []tile.Face) bool {
	var bySuit [3]uint16 // bit per run-start rank 1,4,7
	for _, f := range faces {
		if f.IsHonor() {
			continue
		}
		r := f.Rank()
		if r != 1 && r != 4 && r != 7 {
			continue
		}
		bySuit[f.Suit()] |= 1 << uint(r)
	}
	for _, mask := range bySuit {
		need := uint16(1<<1) | uint16(1<<4) | uint16(1<<7)
		if mask&need == need {
			return true
		}
	}
	return false
}
