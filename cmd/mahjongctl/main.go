// Command mahjongctl is the engine's external driver: self-play rollouts,
// replay-file divergence checking, and standalone hand scoring, per
// spec.md §6's external interfaces.
//
// Ground: every teacher service's main.go + app/app.go (cobra root
// command, config.Load then log.InitLog before doing any work), collapsed
// from a long-running networked server into a one-shot CLI since
// SPEC_FULL.md §6 scopes this as an external collaborator around the
// engine rather than a service of its own.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mahjongengine/internal/mahjongconfig"
	"mahjongengine/internal/mahjonglog"
)

// Exit codes, per spec.md §6.
const (
	exitOK               = 0
	exitBadArguments     = 2
	exitReplayDivergence = 3
)

// exitCodeErr lets a subcommand request a specific exit code instead of
// main's default "any RunE error is a bad argument" mapping.
type exitCodeErr struct {
	code int
	err  error
}

func (e *exitCodeErr) Error() string { return e.err.Error() }
func (e *exitCodeErr) Unwrap() error { return e.err }

var configPath string

func main() {
	var cfg *mahjongconfig.Config

	root := &cobra.Command{
		Use:           "mahjongctl",
		Short:         "Drive the riichi mahjong engine: self-play, replay, and hand scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := mahjongconfig.Load(configPath, nil)
			if err != nil {
				return err
			}
			cfg = c
			mahjonglog.Init("mahjongctl", parseLogLevel(cfg.Log.Level))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a mahjongctl config file (yaml)")

	root.AddCommand(
		newSelfplayCmd(&cfg),
		newReplayCmd(),
		newScoreCmd(),
	)

	if err := root.Execute(); err != nil {
		var ce *exitCodeErr
		code := exitBadArguments
		if errors.As(err, &ce) {
			code = ce.code
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
	os.Exit(exitOK)
}

// parseLogLevel maps a mahjongconfig log-level string onto charmbracelet/
// log's Level, falling back to Info on anything unrecognized rather than
// failing the whole CLI over a log-level typo.
func parseLogLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}
