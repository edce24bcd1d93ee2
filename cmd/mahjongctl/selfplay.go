package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"mahjongengine/internal/engine"
	"mahjongengine/internal/legality"
	"mahjongengine/internal/mahjongconfig"
)

// newSelfplayCmd drives reset/step with uniformly-random legal actions
// until the game ends, printing the engine's event log, per SPEC_FULL.md
// §6. cfg is a pointer to the root command's loaded config (populated by
// PersistentPreRunE, read here after flag parsing has already happened).
func newSelfplayCmd(cfg **mahjongconfig.Config) *cobra.Command {
	var seed int64
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "drive the engine with uniformly-random legal actions until the game ends",
		RunE: func(cmd *cobra.Command, args []string) error {
			modeStr := modeFlag
			if modeStr == "" {
				modeStr = (*cfg).Rules.DefaultMode
			}
			mode, err := parseMode(modeStr)
			if err != nil {
				return err
			}

			eng := engine.New(engine.Config{Mode: mode, DoubleRonAllowed: (*cfg).Rules.DoubleRonAllowed})
			defer eng.Close()

			obsMap, err := eng.Reset(seed)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			for {
				if len(obsMap) == 0 {
					if eng.GameOver {
						break
					}
					if obsMap, err = eng.AdvanceToNextKyoku(); err != nil {
						return err
					}
					continue
				}
				actions := make(map[int]legality.Action, len(obsMap))
				for seat, ob := range obsMap {
					actions[seat] = ob.LegalActions[rng.Intn(len(ob.LegalActions))]
				}
				if obsMap, err = eng.Step(actions); err != nil {
					return err
				}
			}

			fmt.Println(eng.Log.String())
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "wall shuffle seed")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "game mode (defaults to the config's rules.defaultMode)")
	return cmd
}
