// Package yaku implements the win evaluator described in spec.md §4.5:
// given a winning decomposition and table conditions, produce the yaku
// list, han, fu, base points and per-seat payments.
//
// Ground: lamyinia-GoMahjong's runtime/game/engines/mahjong/yaku.go (the
// Yaku enum, YakuChecker/yakuCheckerFunc registry pattern, and the
// kokushi13/daisuushii/suuankou-tanki/junsei-chuuren "double yakuman"
// special cases) and score_calculator.go (fu/base-point tables, which the
// teacher left as TODO stubs and this package completes). Re-expressed
// over internal/hand.Decomposition and internal/meld.Meld instead of the
// teacher's flat Tile/Meld.Type-string pair.
package yaku

// Yaku identifies one named hand pattern contributing han, per spec.md §4.5.
type Yaku int

const (
	Riichi Yaku = iota
	DoubleRiichi
	Ippatsu
	MenzenTsumo
	Pinfu
	Iipeikou
	Ryanpeikou
	Yakuhai
	Tanyao
	Sanshoku
	Ittsu
	Chanta
	Junchan
	Honroutou
	Honitsu
	Chinitsu
	Toitoi
	Sanankou
	Sankantsu
	Chiitoi
	Haitei
	Houtei
	Rinshan
	Chankan

	// Yakuman (and double-yakuman) entries.
	Kokushi
	KokushiWide
	Suuankou
	SuuankouTanki
	Daisangen
	Shousuushii
	Daisuushii
	Tsuuiisou
	Chinroutou
	Ryuuiisou
	Chuuren
	JunseiChuuren
	Suukantsu
	KazoeYakuman
	Tenhou
	Chiihou
)

var names = map[Yaku]string{
	Riichi:        "riichi",
	DoubleRiichi:  "double_riichi",
	Ippatsu:       "ippatsu",
	MenzenTsumo:   "menzen_tsumo",
	Pinfu:         "pinfu",
	Iipeikou:      "iipeikou",
	Ryanpeikou:    "ryanpeikou",
	Yakuhai:       "yakuhai",
	Tanyao:        "tanyao",
	Sanshoku:      "sanshoku_doujun",
	Ittsu:         "ittsu",
	Chanta:        "chanta",
	Junchan:       "junchan",
	Honroutou:     "honroutou",
	Honitsu:       "honitsu",
	Chinitsu:      "chinitsu",
	Toitoi:        "toitoi",
	Sanankou:      "sanankou",
	Sankantsu:     "sankantsu",
	Chiitoi:       "chiitoitsu",
	Haitei:        "haitei",
	Houtei:        "houtei",
	Rinshan:       "rinshan_kaihou",
	Chankan:       "chankan",
	Kokushi:       "kokushi_musou",
	KokushiWide:   "kokushi_musou_13",
	Suuankou:      "suuankou",
	SuuankouTanki: "suuankou_tanki",
	Daisangen:     "daisangen",
	Shousuushii:   "shousuushii",
	Daisuushii:    "daisuushii",
	Tsuuiisou:     "tsuuiisou",
	Chinroutou:    "chinroutou",
	Ryuuiisou:     "ryuuiisou",
	Chuuren:       "chuuren_poutou",
	JunseiChuuren: "junsei_chuuren_poutou",
	Suukantsu:     "suukantsu",
	KazoeYakuman:  "kazoe_yakuman",
	Tenhou:        "tenhou",
	Chiihou:       "chiihou",
}

func (y Yaku) String() string {
	if s, ok := names[y]; ok {
		return s
	}
	return "unknown"
}

// isYakumanKind reports whether y belongs in the yakuman family (scored
// by fixed multiples of the yakuman base rather than by han/fu).
func (y Yaku) isYakumanKind() bool {
	switch y {
	case Kokushi, KokushiWide, Suuankou, SuuankouTanki, Daisangen, Shousuushii,
		Daisuushii, Tsuuiisou, Chinroutou, Ryuuiisou, Chuuren, JunseiChuuren,
		Suukantsu, KazoeYakuman, Tenhou, Chiihou:
		return true
	default:
		return false
	}
}

// yakumanMultiple reports the yakuman multiple (1 = single, 2 = double).
func (y Yaku) yakumanMultiple() int {
	switch y {
	case KokushiWide, SuuankouTanki, Daisuushii, JunseiChuuren:
		return 2
	default:
		return 1
	}
}
