package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mahjongengine/internal/hand"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

// scoreRequest is the standalone scoring input blob: a concealed hand (by
// TID), the seat's called/ankan melds, the winning tile's face, the table
// conditions, the resolved dora faces, and the count of red fives held.
type scoreRequest struct {
	Concealed  []tile.TID      `json:"concealed"`
	Melds      []meldRequest   `json:"melds"`
	WinFace    tile.Face       `json:"win_face"`
	Conditions yaku.Conditions `json:"conditions"`
	Dora       []tile.Face     `json:"dora"`
	RedFives   int             `json:"red_fives"`
}

type meldRequest struct {
	Kind            meld.Kind  `json:"kind"`
	Tiles           []tile.TID `json:"tiles"`
	Opened          bool       `json:"opened"`
	ClaimedFromSeat int        `json:"claimed_from_seat"`
}

// newScoreCmd evaluates a hand/conditions JSON blob against the agari
// calculator directly, independent of the state machine, per SPEC_FULL.md
// §6.
func newScoreCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "evaluate a hand/conditions JSON blob against the agari calculator",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var req scoreRequest
			if err := json.NewDecoder(r).Decode(&req); err != nil {
				return fmt.Errorf("score: malformed input: %w", err)
			}

			melds := make([]meld.Meld, len(req.Melds))
			for i, m := range req.Melds {
				melds[i] = meld.Meld{Kind: m.Kind, Tiles: m.Tiles, Opened: m.Opened, ClaimedFromSeat: m.ClaimedFromSeat}
			}
			h := hand.FromTIDs(req.Concealed)
			res := yaku.Evaluate(h, melds, req.WinFace, req.Conditions, req.Dora, req.RedFives)

			names := make([]string, len(res.Yaku))
			for i, y := range res.Yaku {
				names[i] = y.String()
			}
			fmt.Printf("agari=%v han=%d fu=%d base_points=%d is_yakuman=%v yakuman_mult=%d ron_payment=%d tsumo_payments=%v\n",
				res.Agari, res.Han, res.Fu, res.BasePoints, res.IsYakuman, res.YakumanMult, res.RonPayment, res.TsumoPayments)
			fmt.Printf("yaku=%s\n", strings.Join(names, ","))

			if !res.Agari {
				return &exitCodeErr{code: exitBadArguments, err: fmt.Errorf("score: hand is not a winning hand")}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a hand/conditions JSON blob (defaults to stdin)")
	return cmd
}
