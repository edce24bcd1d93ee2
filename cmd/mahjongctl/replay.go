package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mahjongengine/internal/engine"
	"mahjongengine/internal/legality"
	"mahjongengine/internal/tile"
)

// replayLine is one declared seat action from an externally-supplied
// event file: a small JSON Lines schema private to this CLI (SPEC_FULL.md
// §6's "replay file parsing" supplier), since parsing an arbitrary
// external recording format is a driver concern, not an engine one.
type replayLine struct {
	Seat    int        `json:"seat"`
	Kind    string     `json:"kind"`
	Tile    tile.TID   `json:"tile"`
	Consume []tile.TID `json:"consume"`
}

// newReplayCmd feeds a declared event file through a fresh engine one
// batch at a time (buffering declared lines until every seat Step
// currently expects has one), reporting ReplayDivergence the moment a
// declared action isn't in its seat's legal set, per spec.md §7.
func newReplayCmd() *cobra.Command {
	var modeFlag string
	var seed int64

	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "feed a declared event file through the engine and report any divergence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := parseMode(modeFlag)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			eng := engine.New(engine.Config{Mode: mode, SkipEventLog: true})
			defer eng.Close()

			obsMap, err := eng.Reset(seed)
			if err != nil {
				return err
			}

			pending := make(map[int]legality.Action)
			sc := bufio.NewScanner(f)
			for sc.Scan() {
				line := sc.Bytes()
				if len(line) == 0 {
					continue
				}
				var decl replayLine
				if err := json.Unmarshal(line, &decl); err != nil {
					return fmt.Errorf("replay: malformed line: %w", err)
				}

				ob, ok := obsMap[decl.Seat]
				if !ok {
					return &exitCodeErr{code: exitReplayDivergence,
						err: fmt.Errorf("replay: seat %d is not active but declared an action", decl.Seat)}
				}
				kind, err := parseActionKind(decl.Kind)
				if err != nil {
					return err
				}
				act := legality.Action{Kind: kind, Tile: decl.Tile, Consume: decl.Consume}
				if !actionIsLegal(ob.LegalActions, act) {
					return &exitCodeErr{code: exitReplayDivergence,
						err: fmt.Errorf("replay: seat %d declared %s but it is not a legal action", decl.Seat, decl.Kind)}
				}
				pending[decl.Seat] = act

				if len(pending) < len(obsMap) {
					continue
				}

				obsMap, err = eng.Step(pending)
				pending = make(map[int]legality.Action)
				if err != nil {
					return &exitCodeErr{code: exitReplayDivergence, err: err}
				}
				for len(obsMap) == 0 && !eng.GameOver {
					if obsMap, err = eng.AdvanceToNextKyoku(); err != nil {
						return err
					}
				}
				if eng.GameOver {
					break
				}
			}
			if err := sc.Err(); err != nil {
				return err
			}
			if len(pending) > 0 {
				return &exitCodeErr{code: exitReplayDivergence,
					err: fmt.Errorf("replay: file ended with %d declared actions still pending a full batch", len(pending))}
			}

			fmt.Println("replay: no divergence detected")
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "4p-red-half", "game mode the recorded file was played under")
	cmd.Flags().Int64Var(&seed, "seed", 1, "wall shuffle seed the recorded file was dealt under")
	return cmd
}

// parseActionKind is the inverse of legality.ActionKind.String, for
// decoding a replay file's human-readable action names.
func parseActionKind(s string) (legality.ActionKind, error) {
	switch s {
	case "discard":
		return legality.Discard, nil
	case "chi":
		return legality.Chi, nil
	case "pon":
		return legality.Pon, nil
	case "daiminkan":
		return legality.DaiMinKan, nil
	case "ankan":
		return legality.AnKan, nil
	case "kakan":
		return legality.KaKan, nil
	case "riichi":
		return legality.Riichi, nil
	case "ron":
		return legality.Ron, nil
	case "tsumo":
		return legality.Tsumo, nil
	case "pass":
		return legality.Pass, nil
	case "kyushu_kyuhai":
		return legality.KyushuKyuhai, nil
	default:
		return 0, fmt.Errorf("replay: unknown action kind %q", s)
	}
}

// actionIsLegal reports whether want names the same (kind, tile, consume
// set) as one of legal's entries, irrespective of consume order.
func actionIsLegal(legal []legality.Action, want legality.Action) bool {
	for _, a := range legal {
		if a.Kind == want.Kind && a.Tile == want.Tile && sameConsumeSet(a.Consume, want.Consume) {
			return true
		}
	}
	return false
}

func sameConsumeSet(a, b []tile.TID) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for i, y := range b {
			if !used[i] && x == y {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
