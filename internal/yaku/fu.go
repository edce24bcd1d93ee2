package yaku

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
)

// computeFu implements spec.md §4.5 step 3. The two fixed-fu special cases
// are taken before the general formula: chiitoi (25) is detected from d,
// and hasPinfu selects the pinfu values (20 tsumo / 30 ron).
func computeFu(d hand.Decomposition, groups []group, melds []meld.Meld, cond Conditions, hasPinfu bool) int {
	if d.Special == "chiitoi" {
		return 25
	}

	if hasPinfu {
		if cond.Tsumo {
			return 20
		}
		return 30
	}

	fu := 20

	if cond.Tsumo {
		fu += 2
	} else if isMenzen(melds) {
		fu += 10 // menzen ron bonus
	}

	if isYakuhaiPair(d.Pair, cond) {
		dragon, round, seat := isYakuhaiFace(d.Pair, cond)
		if dragon {
			fu += 2
		}
		if round {
			fu += 2
		}
		if seat {
			fu += 2
		}
	}

	for _, g := range groups {
		if g.kind != hand.SetTriplet {
			continue
		}
		fu += tripletFu(g)
	}

	switch d.WinShape {
	case hand.WaitKanchan, hand.WaitPenchan, hand.WaitTanki:
		fu += 2
	}

	return roundUpTo10(fu)
}

func tripletFu(g group) int {
	yaochu := g.face.IsTerminalOrHonor()
	switch {
	case g.isKan && g.concealed:
		if yaochu {
			return 32
		}
		return 16
	case g.isKan && !g.concealed:
		if yaochu {
			return 16
		}
		return 8
	case g.concealed:
		if yaochu {
			return 8
		}
		return 4
	default: // minko: open pon, or a concealed-origin triplet completed by ron
		if yaochu {
			return 4
		}
		return 2
	}
}

func roundUpTo10(x int) int {
	return ((x + 9) / 10) * 10
}

func roundUpTo100(x int) int {
	return ((x + 99) / 100) * 100
}
