package engine

import "fmt"

// Kind identifies the behavioral category of an engine failure, per
// spec.md §7. Ground: teacher's fmt.Errorf diagnostic-string convention
// throughout turn_manager.go/riichi_mahjong_4p_engine.go, generalized into
// a structured, typed error the caller can switch on.
type Kind int

const (
	InvalidAction Kind = iota
	MissingOrExtraActor
	CorruptState
	OutOfRangeTile
	ReplayDivergence
)

func (k Kind) String() string {
	switch k {
	case InvalidAction:
		return "invalid_action"
	case MissingOrExtraActor:
		return "missing_or_extra_actor"
	case CorruptState:
		return "corrupt_state"
	case OutOfRangeTile:
		return "out_of_range_tile"
	case ReplayDivergence:
		return "replay_divergence"
	default:
		return "unknown"
	}
}

// EngineError is the engine's single error type. Phase/Actor/Field are
// diagnostic-only; callers should switch on Kind via errors.As.
type EngineError struct {
	Kind   Kind
	Phase  string
	Actor  int // -1 if not actor-specific
	Field  string
	Detail string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: phase=%s actor=%d field=%s: %s", e.Kind, e.Phase, e.Actor, e.Field, e.Detail)
}

// Is supports errors.Is(err, someKind) by comparing Kind against a target
// *EngineError carrying only a Kind (the pattern errors.Is expects when
// the target is produced by a sentinel constructor below).
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOnly builds a sentinel *EngineError usable with errors.Is(err,
// engine.KindOnly(engine.InvalidAction)).
func KindOnly(k Kind) *EngineError { return &EngineError{Kind: k} }

func newErr(k Kind, phase string, actor int, field, detail string) *EngineError {
	return &EngineError{Kind: k, Phase: phase, Actor: actor, Field: field, Detail: detail}
}
