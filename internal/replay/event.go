// Package replay implements the engine's ordered event log (spec.md §6)
// and the replay-divergence check (spec.md §7's ReplayDivergence).
//
// Ground: lamyinia-GoMahjong's push.go (one DTO-shaped payload per game
// occurrence: match success, round start, draw, chi/pon/gang, riichi,
// ron/tsumo, round end) and persist.go's GamePersister (an accumulating,
// ordered per-round event recorder) — re-expressed as an in-memory
// []Event list instead of a push-to-connector/persist-to-Mongo pipeline,
// since spec.md §1 scopes network transport and persistence out of the
// engine.
package replay

import (
	"fmt"
	"strings"

	"mahjongengine/internal/tile"
)

// Kind names one of spec.md §6's event types.
type Kind string

const (
	StartGame  Kind = "start_game"
	StartKyoku Kind = "start_kyoku"
	Tsumo      Kind = "tsumo"
	Dahai      Kind = "dahai"
	Pon        Kind = "pon"
	Chi        Kind = "chi"
	Kakan      Kind = "kakan"
	Ankan      Kind = "ankan"
	Daiminkan  Kind = "daiminkan"
	Reach      Kind = "reach"
	Hora       Kind = "hora"
	Ryukyoku   Kind = "ryukyoku"
	EndKyoku   Kind = "end_kyoku"
	EndGame    Kind = "end_game"
)

// Event is one ASCII log entry. Fields not meaningful to Kind are left
// zero; spec.md §9 describes the source model as a tagged variant with
// "each carries exactly its required fields" — Go has no sum type with
// payload-per-case at this granularity without a type switch per Kind, so
// this struct carries the union of optional fields instead, following the
// teacher's single-DTO-per-broadcast convention in push.go.
type Event struct {
	Kind Kind

	Seat  int // -1 if not seat-specific
	Tile  string
	Melds []string // consumed/called tile notations, in call order

	Reason string // ryukyoku sub-reason (exhaustive/kyushu_kyuhai/...)

	Han    int
	Fu     int
	Points int

	RoundWind   string
	RoundNumber int
	Honba       int
	DealerSeat  int
}

// String renders one ASCII log line: "type=... key=val key=val ...".
func (e Event) String() string {
	var b strings.Builder
	b.WriteString("type=")
	b.WriteString(string(e.Kind))
	if e.Seat >= 0 {
		fmt.Fprintf(&b, " seat=%d", e.Seat)
	}
	if e.Tile != "" {
		fmt.Fprintf(&b, " tile=%s", e.Tile)
	}
	if len(e.Melds) > 0 {
		fmt.Fprintf(&b, " melds=%s", strings.Join(e.Melds, ","))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, " reason=%s", e.Reason)
	}
	if e.Han > 0 {
		fmt.Fprintf(&b, " han=%d fu=%d points=%d", e.Han, e.Fu, e.Points)
	}
	if e.Kind == StartKyoku {
		fmt.Fprintf(&b, " round_wind=%s round_number=%d honba=%d dealer_seat=%d",
			e.RoundWind, e.RoundNumber, e.Honba, e.DealerSeat)
	}
	return b.String()
}

// TileNotation renders t in the face+rank+red-suffix notation spec.md §6
// requires (e.g. "5pr"), delegating to internal/tile.Notation.
func TileNotation(mode tile.GameMode, t tile.TID) string {
	return tile.Notation(mode, t)
}
