package obs

import "fmt"

// MirrorDivergenceError reports that RiverMirror's tracked river no longer
// matches the engine's own river for a seat.
type MirrorDivergenceError struct {
	Seat int
	Want int
	Got  int
}

func (e *MirrorDivergenceError) Error() string {
	return fmt.Sprintf("obs: river mirror diverged for seat %d: want %d, got %d", e.Seat, e.Want, e.Got)
}

func newDivergenceErr(seat, want, got int) error {
	return &MirrorDivergenceError{Seat: seat, Want: want, Got: got}
}
