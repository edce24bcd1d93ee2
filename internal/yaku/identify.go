package yaku

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

// identifyYakuman checks the yakuman family against one decomposition.
// Multiple yakuman can coexist (e.g. suuankou + honroutou-adjacent
// shapes); their multiples sum. Chiitoi never carries a yakuman; kokushi
// is itself special-cased at the decomposition level.
func identifyYakuman(d hand.Decomposition, groups []group, melds []meld.Meld, winFace tile.Face) []Yaku {
	var out []Yaku

	if d.Special == "kokushi" {
		if d.KokushiWide {
			return []Yaku{KokushiWide}
		}
		return []Yaku{Kokushi}
	}
	if d.Special == "chiitoi" {
		return nil
	}

	if n := countConcealedTriplets(groups) + countAnkanOpenCall(groups); n == 4 {
		if d.WinShape == hand.WaitTanki {
			out = append(out, SuuankouTanki)
		} else {
			out = append(out, Suuankou)
		}
	}

	if dragonTripletCount(groups) == 3 {
		out = append(out, Daisangen)
	}

	if winds := windTripletCount(groups); winds == 4 {
		out = append(out, Daisuushii)
	} else if winds == 3 && d.Pair.IsWind() {
		out = append(out, Shousuushii)
	}

	if allTerminalOrHonor(groups, d.Pair) && allHonors(groups, d.Pair) {
		out = append(out, Tsuuiisou)
	}

	if everyGroupPureTerminal(groups, d.Pair) && countRuns(groups) == 0 {
		out = append(out, Chinroutou)
	}

	if allGreenTiles(groups, d.Pair) {
		out = append(out, Ryuuiisou)
	}

	if countKans(melds) == 4 {
		out = append(out, Suukantsu)
	}

	if chu, junsei := checkChuuren(groups, d.Pair, winFace, melds); chu {
		if junsei {
			out = append(out, JunseiChuuren)
		} else {
			out = append(out, Chuuren)
		}
	}

	return out
}

// countAnkanOpenCall counts AnKan groups: a concealed kan still occupies
// only one of the four set slots for the suuankou/sanankou counts.
func countAnkanOpenCall(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.kind == hand.SetTriplet && g.concealed && g.isOpenCall {
			n++
		}
	}
	return n
}

func allHonors(groups []group, pair tile.Face) bool {
	if !pair.IsHonor() {
		return false
	}
	for _, g := range groups {
		if g.kind != hand.SetTriplet || !g.face.IsHonor() {
			return false
		}
	}
	return true
}

// identifyNormal checks the ordinary (non-yakuman) yaku family against
// one standard decomposition and returns the matched yaku plus their
// summed han. Context flags (riichi/ippatsu/haitei/houtei/rinshan/
// chankan) are scored by the caller, which owns that bookkeeping.
func identifyNormal(d hand.Decomposition, groups []group, melds []meld.Meld, cond Conditions) ([]Yaku, int) {
	if d.Special == "chiitoi" {
		list := []Yaku{Chiitoi}
		han := 2
		if cond.Tsumo {
			list = append(list, MenzenTsumo)
			han++
		}
		return list, han
	}
	if d.Special == "kokushi" {
		return nil, 0
	}

	menzen := isMenzen(melds)
	open := len(melds) > 0
	var list []Yaku
	han := 0

	if menzen && !open && countRuns(groups) == 4 && !isYakuhaiPair(d.Pair, cond) && d.WinShape == hand.WaitRyanmen {
		list = append(list, Pinfu)
		han++
	}

	if menzen && cond.Tsumo {
		list = append(list, MenzenTsumo)
		han++
	}

	yh := 0
	for _, g := range groups {
		if g.kind != hand.SetTriplet {
			continue
		}
		dragon, round, seat := isYakuhaiFace(g.face, cond)
		if dragon {
			yh++
		}
		if round {
			yh++
		}
		if seat {
			yh++
		}
	}
	if yh > 0 {
		list = append(list, Yakuhai)
		han += yh
	}

	if allSimples(groups, d.Pair) {
		list = append(list, Tanyao)
		han++
	}

	faces := runFaces(groups)

	if hasSanshokuDoujun(faces) {
		list = append(list, Sanshoku)
		han += hanClosedOpen(open, 2, 1)
	}

	if hasIttsu(faces) {
		list = append(list, Ittsu)
		han += hanClosedOpen(open, 2, 1)
	}

	junchan := everyGroupPureTerminal(groups, d.Pair)
	chanta := !junchan && everyGroupHasTerminalOrHonor(groups, d.Pair)
	if junchan {
		list = append(list, Junchan)
		han += hanClosedOpen(open, 3, 2)
	} else if chanta {
		list = append(list, Chanta)
		han += hanClosedOpen(open, 2, 1)
	}

	if allTerminalOrHonor(groups, d.Pair) && !everyGroupPureTerminal(groups, d.Pair) {
		list = append(list, Honroutou)
		han += 2
	}

	if suit, hasHonor, ok := singleSuitFaces(groups, d.Pair); ok && suit != tile.SuitNone {
		if hasHonor {
			list = append(list, Honitsu)
			han += hanClosedOpen(open, 3, 2)
		} else {
			list = append(list, Chinitsu)
			han += hanClosedOpen(open, 6, 5)
		}
	}

	if countTriplets(groups) == 4 {
		list = append(list, Toitoi)
		han += 2
	}

	if n := countConcealedTriplets(groups) + countAnkanOpenCall(groups); n >= 3 {
		list = append(list, Sanankou)
		han += 2
	}

	if countKans(melds) == 3 {
		list = append(list, Sankantsu)
		han += 2
	}

	if menzen && !open {
		if pairs := countIipeikouPairs(faces); pairs == 2 {
			list = append(list, Ryanpeikou)
			han += 3
		} else if pairs == 1 {
			list = append(list, Iipeikou)
			han++
		}
	}

	return list, han
}

func isYakuhaiPair(pair tile.Face, cond Conditions) bool {
	dragon, round, seat := isYakuhaiFace(pair, cond)
	return dragon || round || seat
}

func hanClosedOpen(open bool, closedHan, openHan int) int {
	if open {
		return openHan
	}
	return closedHan
}

func allGreenTiles(groups []group, pair tile.Face) bool {
	isGreen := func(f tile.Face) bool {
		switch f {
		case tile.So2, tile.So3, tile.So4, tile.So6, tile.So8, tile.Green:
			return true
		default:
			return false
		}
	}
	if !isGreen(pair) {
		return false
	}
	for _, g := range groups {
		if !isGreen(g.face) {
			return false
		}
		if g.kind == hand.SetRun {
			if !isGreen(g.face+1) || !isGreen(g.face+2) {
				return false
			}
		}
	}
	return true
}

// checkChuuren detects nine-gates: a concealed, single-suit hand of
// 1112345678999 plus one extra tile of that suit. junsei (pure) chuuren
// holds iff the winning tile is exactly the rank that carries the extra
// copy, meaning the pre-win 13 tiles were already the bare
// 1112345678999 pattern (a true nine-sided wait).
func checkChuuren(groups []group, pair tile.Face, winFace tile.Face, melds []meld.Meld) (chuuren, junsei bool) {
	if len(melds) > 0 {
		return false, false
	}
	suit, hasHonor, ok := singleSuitFaces(groups, pair)
	if !ok || hasHonor || suit == tile.SuitNone {
		return false, false
	}
	if winFace.IsHonor() || winFace.Suit() != suit {
		return false, false
	}

	var counts [9]int
	add := func(f tile.Face) { counts[f.Rank()-1]++ }
	add(pair)
	add(pair)
	for _, g := range groups {
		switch g.kind {
		case hand.SetTriplet:
			counts[g.face.Rank()-1] += 3
		case hand.SetRun:
			add(g.face)
			add(g.face + 1)
			add(g.face + 2)
		}
	}

	want := [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}
	extra := -1
	for i := 0; i < 9; i++ {
		switch counts[i] - want[i] {
		case 0:
		case 1:
			if extra != -1 {
				return false, false
			}
			extra = i
		default:
			return false, false
		}
	}
	if extra == -1 {
		return false, false
	}
	return true, extra == winFace.Rank()-1
}
