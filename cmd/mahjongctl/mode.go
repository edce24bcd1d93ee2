package main

import (
	"fmt"

	"mahjongengine/internal/tile"
)

// parseMode maps spec.md §6's game_mode strings onto tile.GameMode,
// returning a bad-argument error for anything else rather than silently
// defaulting, since a typo'd --mode flag should fail loudly.
func parseMode(s string) (tile.GameMode, error) {
	switch s {
	case "4p-red-half":
		return tile.Mode4pRedHalf, nil
	case "4p-red-east":
		return tile.Mode4pRedEast, nil
	case "4p-no-red":
		return tile.Mode4pNoRedHalf, nil
	case "4p-no-red-east":
		return tile.Mode4pNoRedEast, nil
	default:
		return 0, fmt.Errorf("mahjongctl: unknown game mode %q", s)
	}
}
