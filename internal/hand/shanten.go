package hand

import "mahjongengine/internal/tile"

// Shanten returns the minimum shanten across all applicable hand families.
func Shanten(h Hand34, fixedMelds int) int {
	best := ShantenNormal(h, fixedMelds)
	if fixedMelds == 0 {
		if v := ShantenChiitoi(h); v < best {
			best = v
		}
		if v := ShantenKokushi(h); v < best {
			best = v
		}
	}
	return best
}

// ShantenKokushi computes thirteen-orphans shanten.
func ShantenKokushi(h Hand34) int {
	unique := 0
	pair := false
	for _, f := range kokushiFaces {
		if h[f] > 0 {
			unique++
			if h[f] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi computes seven-pairs shanten.
func ShantenChiitoi(h Hand34) int {
	pairs, distinct := 0, 0
	for _, c := range h {
		if c > 0 {
			distinct++
		}
		pairs += int(c / 2)
	}
	sh := 6 - pairs
	if distinct < 7 {
		sh += 7 - distinct
	}
	return sh
}

// ShantenNormal computes standard-shape shanten via exhaustive DFS,
// mirroring the teacher's dfsNormalShanten.
func ShantenNormal(h Hand34, fixedMelds int) int {
	best := 8
	work := h
	dfsNormalShanten(&work, fixedMelds, 0, 0, &best)
	return best
}

// dfsNormalShanten explores set/pair/partial-set extraction; m is melds
// formed so far (including fixedMelds), p is 0/1 pair-formed flag, t is
// partial-set (taatsu) count, best tracks the global minimum.
func dfsNormalShanten(h *Hand34, m, p, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := firstNonZero(*h)
	if i == -1 {
		return
	}

	if !isNumberFace(i) {
		if h[i] >= 3 {
			h[i] -= 3
			dfsNormalShanten(h, m+1, p, t, best)
			h[i] += 3
		}
		if p == 0 && h[i] >= 2 {
			h[i] -= 2
			dfsNormalShanten(h, m, 1, t, best)
			h[i] += 2
		}
		h[i]--
		dfsNormalShanten(h, m, p, t, best)
		h[i]++
		return
	}

	if h[i] >= 3 {
		h[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		h[i] += 3
	}

	if i+2 < tile.NumFaces && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			dfsNormalShanten(h, m+1, p, t, best)
			h[i]++
			h[i+1]++
			h[i+2]++
		}
	}

	if p == 0 && h[i] >= 2 {
		h[i] -= 2
		dfsNormalShanten(h, m, 1, t, best)
		h[i] += 2
	}

	if i+1 < tile.NumFaces && suitOf(i) == suitOf(i+1) {
		if h[i] > 0 && h[i+1] > 0 {
			h[i]--
			h[i+1]--
			dfsNormalShanten(h, m, p, t+1, best)
			h[i]++
			h[i+1]++
		}
	}

	if i+2 < tile.NumFaces && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+2]--
			dfsNormalShanten(h, m, p, t+1, best)
			h[i]++
			h[i+2]++
		}
	}

	h[i]--
	dfsNormalShanten(h, m, p, t, best)
	h[i]++
}
