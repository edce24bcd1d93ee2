package yaku

import (
	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
)

// Result is the outcome of evaluating one winning hand, per spec.md §4.5:
// "{agari, yaku, han, fu, base_points, ron_payment, tsumo_payments[3],
// is_yakuman}".
type Result struct {
	Agari         bool
	Yaku          []Yaku
	Han           int
	Fu            int
	BasePoints    int
	IsYakuman     bool
	YakumanMult   int
	RonPayment    int
	TsumoPayments [3]int // non-dealer winner: [dealer's share, non-dealer's share, non-dealer's share]; dealer winner: all three equal
}

// HasYaku reports whether the result's yaku list includes y, used by the
// legality engine's chankan gate (spec.md §4.3: "AnKan is chankan-eligible
// only for kokushi").
func (r Result) HasYaku(y Yaku) bool {
	return containsYaku(r.Yaku, y)
}

type candidate struct {
	yakumanMult int
	han         int
	fu          int
	yaku        []Yaku
}

func better(a, b candidate) bool {
	if a.yakumanMult != b.yakumanMult {
		return a.yakumanMult > b.yakumanMult
	}
	if a.han != b.han {
		return a.han > b.han
	}
	return a.fu > b.fu
}

// Evaluate scores a winning hand. concealed is the concealed-tile
// histogram (14 minus 3 per meld), melds is the seat's called/ankan
// melds, winFace is the completing tile's face, dora is the resolved
// list of dora faces (one entry per hit, duplicated per indicator),
// redFives is the count of red-five tiles physically held.
//
// Ground: lamyinia-GoMahjong's callHuPoints/calculateFu/calculateBasePoints
// (score_calculator.go), completed here: the teacher's checkPinfu/
// calculatePairFu/calculateWaitFu were TODO stubs returning always-false/
// zero; this package implements the full decomposition-aware versions
// spec.md §4.5 requires.
func Evaluate(concealed hand.Hand34, melds []meld.Meld, winFace tile.Face, cond Conditions, dora []tile.Face, redFives int) Result {
	fixedMelds := len(melds)
	decomps := hand.DecomposeAll(concealed, winFace, fixedMelds)
	if len(decomps) == 0 {
		return Result{Agari: false}
	}

	ctxYaku, ctxHan := contextYaku(cond)
	blessing := blessingYaku(cond)

	var best candidate
	have := false

	for _, d := range decomps {
		groups := buildGroups(d, melds, winFace, cond.Tsumo)

		yakumanList := identifyYakuman(d, groups, melds, winFace)
		yakumanList = append(yakumanList, blessing...)

		var cand candidate
		if len(yakumanList) > 0 {
			mult := 0
			for _, y := range yakumanList {
				mult += y.yakumanMultiple()
			}
			cand = candidate{yakumanMult: mult, yaku: yakumanList}
		} else {
			normalList, normalHan := identifyNormal(d, groups, melds, cond)
			if len(normalList) == 0 && len(ctxYaku) == 0 {
				continue // no yaku at all: this decomposition cannot legally win
			}
			normalList = append(normalList, ctxYaku...)
			normalHan += ctxHan
			doraHan := countDora(concealed, melds, dora) + redFives
			hasPinfu := containsYaku(normalList, Pinfu)
			fu := computeFu(d, groups, melds, cond, hasPinfu)
			cand = candidate{han: normalHan + doraHan, fu: fu, yaku: normalList}
		}

		if !have || better(cand, best) {
			best = cand
			have = true
		}
	}

	if !have {
		return Result{Agari: false}
	}

	// Kazoe yakuman: 13+ ordinary han is scored as a single yakuman.
	if best.yakumanMult == 0 && best.han >= 13 {
		best.yakumanMult = 1
		best.yaku = append(best.yaku, KazoeYakuman)
	}

	res := Result{Agari: true, Yaku: best.yaku, Han: best.han, Fu: best.fu}

	if best.yakumanMult > 0 {
		res.IsYakuman = true
		res.YakumanMult = best.yakumanMult
		applyYakumanPoints(&res, cond)
		return res
	}

	res.BasePoints = basePoints(res.Han, res.Fu)
	applyPoints(&res, cond)
	return res
}

func containsYaku(list []Yaku, y Yaku) bool {
	for _, v := range list {
		if v == y {
			return true
		}
	}
	return false
}

func contextYaku(cond Conditions) ([]Yaku, int) {
	var list []Yaku
	han := 0
	switch {
	case cond.DoubleRiichi:
		list = append(list, DoubleRiichi)
		han += 2
	case cond.Riichi:
		list = append(list, Riichi)
		han++
	}
	if cond.Ippatsu {
		list = append(list, Ippatsu)
		han++
	}
	if cond.Haitei {
		list = append(list, Haitei)
		han++
	}
	if cond.Houtei {
		list = append(list, Houtei)
		han++
	}
	if cond.Rinshan {
		list = append(list, Rinshan)
		han++
	}
	if cond.Chankan {
		list = append(list, Chankan)
		han++
	}
	return list, han
}

func blessingYaku(cond Conditions) []Yaku {
	if !cond.TsumoFirstTurn || !cond.Tsumo {
		return nil
	}
	if cond.IsDealer {
		return []Yaku{Tenhou}
	}
	return []Yaku{Chiihou}
}

func countDora(concealed hand.Hand34, melds []meld.Meld, dora []tile.Face) int {
	hist := concealed
	for _, m := range melds {
		for _, t := range m.Tiles {
			hist[t.Face()]++
		}
	}
	n := 0
	for _, f := range dora {
		n += int(hist[f])
	}
	return n
}

// basePoints implements spec.md §4.5 step 5: base = min(2000, fu*2^(han+2)),
// with the 5/6/8/11 han thresholds capping to mangan/haneman/baiman/sanbaiman.
func basePoints(han, fu int) int {
	switch {
	case han >= 11:
		return 6000 // sanbaiman
	case han >= 8:
		return 4000 // baiman
	case han >= 6:
		return 3000 // haneman
	case han >= 5:
		return 2000 // mangan floor before rounding below
	}
	base := fu * (1 << uint(2+han))
	if base > 2000 {
		base = 2000
	}
	return base
}

func applyPoints(res *Result, cond Conditions) {
	base := res.BasePoints
	if cond.Tsumo {
		if cond.IsDealer {
			pay := roundUpTo100(base * 2)
			res.TsumoPayments = [3]int{pay, pay, pay}
		} else {
			dealerPay := roundUpTo100(base * 2)
			otherPay := roundUpTo100(base)
			res.TsumoPayments = [3]int{dealerPay, otherPay, otherPay}
		}
		return
	}
	if cond.IsDealer {
		res.RonPayment = roundUpTo100(base * 6)
	} else {
		res.RonPayment = roundUpTo100(base * 4)
	}
}

func applyYakumanPoints(res *Result, cond Conditions) {
	base := 8000 * res.YakumanMult
	if cond.Tsumo {
		if cond.IsDealer {
			pay := base * 2
			res.TsumoPayments = [3]int{pay, pay, pay}
		} else {
			res.TsumoPayments = [3]int{base * 2, base, base}
		}
		return
	}
	if cond.IsDealer {
		res.RonPayment = base * 6
	} else {
		res.RonPayment = base * 4
	}
}
