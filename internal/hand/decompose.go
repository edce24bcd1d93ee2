package hand

import "mahjongengine/internal/tile"

// SetKind distinguishes the two standard-shape set types.
type SetKind int

const (
	SetRun SetKind = iota
	SetTriplet
)

// Set is one completed meld extracted from the concealed portion of a
// winning hand (open melds are tracked separately by internal/meld).
type Set struct {
	Kind SetKind
	Face tile.Face // run: lowest face; triplet: the face
}

// WaitShape classifies how the winning tile completed its group, used by
// the fu calculator (spec.md §4.5 step 3) and by pinfu (spec.md §4.5
// step 2, which requires a two-sided wait).
type WaitShape int

const (
	WaitNone WaitShape = iota
	WaitRyanmen
	WaitKanchan
	WaitPenchan
	WaitShanpon
	WaitTanki
)

// Decomposition is one way of reading a winning 14-tile concealed hand
// (for chiitoi/kokushi, Sets/Pair are unused and Special is set).
type Decomposition struct {
	Special     string // "", "chiitoi", "kokushi"
	KokushiWide bool   // true: 13-sided wait (double kokushi)
	Sets        []Set  // length 4-fixedMelds, for standard hands
	Pair        tile.Face
	WinShape    WaitShape
}

// DecomposeAll enumerates every valid reading of h14 (concealed tiles
// only) that uses winFace as the completing tile, across all hand
// families applicable at fixedMelds. Ground: teacher's canFormMelds
// (searcher.go), extended from a boolean check into full enumeration
// because fu/yaku depend on which decomposition is chosen (spec.md §4.2).
func DecomposeAll(h14 Hand34, winFace tile.Face, fixedMelds int) []Decomposition {
	var out []Decomposition

	if fixedMelds == 0 {
		if IsAgariChiitoi(h14) {
			out = append(out, Decomposition{Special: "chiitoi", WinShape: WaitTanki})
		}
		if IsAgariKokushi(h14) {
			pre := h14
			pre[winFace]--
			wide := true
			for _, f := range kokushiFaces {
				if pre[f] == 0 {
					wide = false
					break
				}
			}
			out = append(out, Decomposition{Special: "kokushi", KokushiWide: wide, WinShape: WaitTanki})
		}
	}

	need := 4 - fixedMelds
	if need < 0 {
		return out
	}

	for pairFace := 0; pairFace < tile.NumFaces; pairFace++ {
		if h14[pairFace] < 2 {
			continue
		}
		work := h14
		work[pairFace] -= 2

		for _, sets := range decomposeMelds(work, need) {
			d := Decomposition{Sets: sets, Pair: tile.Face(pairFace)}
			d.WinShape = classifyWinShape(d, winFace)
			if d.WinShape != WaitNone {
				out = append(out, d)
			}
		}
	}
	return out
}

// decomposeMelds enumerates every way to extract `need` triplets/runs
// from h, mirroring canFormMelds but collecting results instead of
// returning at the first success.
func decomposeMelds(h Hand34, need int) [][]Set {
	if need == 0 {
		for i := 0; i < tile.NumFaces; i++ {
			if h[i] != 0 {
				return nil
			}
		}
		return [][]Set{{}}
	}

	i := firstNonZero(h)
	if i == -1 {
		return nil
	}

	var results [][]Set

	if h[i] >= 3 {
		work := h
		work[i] -= 3
		for _, rest := range decomposeMelds(work, need-1) {
			combo := make([]Set, 0, len(rest)+1)
			combo = append(combo, Set{Kind: SetTriplet, Face: tile.Face(i)})
			combo = append(combo, rest...)
			results = append(results, combo)
		}
	}

	if isNumberFace(i) && i+2 < tile.NumFaces && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			work := h
			work[i]--
			work[i+1]--
			work[i+2]--
			for _, rest := range decomposeMelds(work, need-1) {
				combo := make([]Set, 0, len(rest)+1)
				combo = append(combo, Set{Kind: SetRun, Face: tile.Face(i)})
				combo = append(combo, rest...)
				results = append(results, combo)
			}
		}
	}

	return results
}

// classifyWinShape finds which group of d contains winFace and returns
// its wait shape; WaitNone if winFace does not appear at all (meaning
// this parse does not actually use the winning tile, so it should be
// discarded by the caller).
func classifyWinShape(d Decomposition, winFace tile.Face) WaitShape {
	if d.Pair == winFace {
		// Could be tanki (pair IS the wait) or shanpon (pair plus a
		// matching triplet); shanpon is reported from the triplet side
		// below, so a bare pair-only match is tanki.
		for _, s := range d.Sets {
			if s.Kind == SetTriplet && s.Face == winFace {
				return WaitShanpon
			}
		}
		return WaitTanki
	}

	for _, s := range d.Sets {
		switch s.Kind {
		case SetTriplet:
			if s.Face == winFace {
				return WaitShanpon
			}
		case SetRun:
			lo := s.Face
			if winFace < lo || winFace > lo+2 {
				continue
			}
			switch winFace - lo {
			case 1: // middle of the run
				return WaitKanchan
			case 0: // winning tile was the low end
				if (lo + 2).Rank() == 9 {
					return WaitPenchan // 89 waiting 7
				}
				return WaitRyanmen
			case 2: // winning tile was the high end
				if lo.Rank() == 1 {
					return WaitPenchan // 12 waiting 3
				}
				return WaitRyanmen
			}
		}
	}
	return WaitNone
}
