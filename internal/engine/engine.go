// Package engine implements the turn-based state machine described in
// spec.md §4.4: phase transitions between WaitAct/WaitResponse/
// WaitResponseKan/EndKyoku, claim-priority arbitration, riichi's two-step
// commit, ippatsu tracking, kan follow-through, and ryuukyoku/oya
// continuation accounting. It consumes internal/legality directly for
// every legal-action enumeration, so the engine never re-derives a rule
// the legality package already computes.
//
// Ground: lamyinia-GoMahjong's RiichiMahjong4p struct (Situation/Players/
// DeckManager/TurnManager composition) and TurnManager (phase-name/turn-
// rotation shape); the teacher's network-facing fields (Worker, UserMap,
// gameEvents channel, roundStartTimer, PlayerTicker) are not carried, see
// DESIGN.md.
package engine

import (
	"github.com/google/uuid"

	"mahjongengine/internal/hand"
	"mahjongengine/internal/legality"
	"mahjongengine/internal/mahjongcache"
	"mahjongengine/internal/mahjonglog"
	"mahjongengine/internal/meld"
	"mahjongengine/internal/replay"
	"mahjongengine/internal/tile"
	"mahjongengine/internal/yaku"
)

const startingScore = 25000

// defaultSearcherCacheCost bounds the private ristretto cache an Engine
// builds for itself when Config.Cache is nil; sized for one Kyoku's worth
// of shanten/agari/wait memoization, not a whole self-play batch.
const defaultSearcherCacheCost = 1 << 20

// Config selects the rule set and ambient behavior for one Engine.
type Config struct {
	Mode             tile.GameMode
	DoubleRonAllowed bool // spec.md §4.4's multi-ron policy toggle
	SkipEventLog     bool
	WallGen          WallGenerator // nil defaults to DefaultWallGenerator()

	// Cache backs the hand decomposer's shanten/agari/wait memo table. Pass
	// a cache shared across a self-play batch's Engines to amortize
	// decomposition lookups across Kyoku instances; nil builds a private
	// one sized for a single Engine.
	Cache *mahjongcache.GeneralCache
}

// pendingKan records the actor/tile/kind of an in-flight AnKan or KaKan
// awaiting chankan responses, per spec.md §4.4's WaitResponseKan phase.
type pendingKan struct {
	Kind  meld.Kind
	Tile  tile.TID
	Actor int
	Valid bool
}

type lastDiscard struct {
	Seat  int
	Tile  tile.TID
	Valid bool
}

// Engine is one game's full mutable state: the owned aggregate with a
// single mutation port, Step (spec.md §9).
type Engine struct {
	ID   string
	Mode tile.GameMode
	Cfg  Config

	Situation Situation
	Players   [4]*PlayerState
	Wall      *Wall

	Phase       Phase
	CurrentSeat int
	LastDiscard lastDiscard
	PendingKan  pendingKan

	// discardsThisKyoku and callsMadeThisKyoku derive the "first
	// go-around, no calls yet" window that gates kyushu-kyuhai, tenhou/
	// chiihou and double riichi (spec.md §4.3/§4.4).
	discardsThisKyoku int

	// respondingSeats names the seats a WaitResponse/WaitResponseKan Step
	// call expects an action from.
	respondingSeats []int

	// kuikaeForbidden is the discard-face block a just-called chi imposes
	// on its caller's very next discard, per spec.md §4.3; cleared once
	// consumed.
	kuikaeForbidden []tile.Face

	// pendingRiichiSeat is the seat whose riichi-declaring discard is
	// currently sitting in the WaitResponse window, -1 if none. The 1000
	// point stick and the riichi flag only latch once that window closes
	// with no ron, per spec.md §4.4's two-step commit.
	pendingRiichiSeat int

	// callsMadeThisKyoku counts chi/pon/kan calls so far, used to gate
	// double riichi (first discard, no calls yet by anyone).
	callsMadeThisKyoku int

	// kansDeclaredBy and totalKansThisKyoku track the four-kan-by-
	// distinct-seats abortive check.
	kansDeclaredBy     map[int]bool
	totalKansThisKyoku int

	// lastDrawWasRinshan and lastDrawnTile describe the most recent draw,
	// used to gate the haitei/rinshan yaku and to supply the win tile's
	// face to the scorer.
	lastDrawWasRinshan bool
	lastDrawnTile      tile.TID

	searcher  *hand.Searcher
	ownsCache bool // true if New built cache itself and must Close it
	cache     *mahjongcache.GeneralCache
	wallGen   WallGenerator
	seed      int64

	Log *replay.Log

	poisoned                 bool
	GameOver                 bool
	NeedsInitializeNextRound bool

	lastEndKind EndKind
}

// New constructs an Engine in its pre-reset state. Call Reset to deal the
// first kyoku and obtain the initial observation map.
func New(cfg Config) *Engine {
	wallGen := cfg.WallGen
	if wallGen == nil {
		wallGen = DefaultWallGenerator()
	}

	cache := cfg.Cache
	ownsCache := false
	if cache == nil {
		if c, err := mahjongcache.NewGeneralCache(defaultSearcherCacheCost); err != nil {
			mahjonglog.Warn("engine: falling back to unshared hand memo cache: %s", err.Error())
		} else {
			cache = c
			ownsCache = true
		}
	}

	eng := &Engine{
		ID:                uuid.New().String(),
		Mode:              cfg.Mode,
		Cfg:               cfg,
		cache:             cache,
		ownsCache:         ownsCache,
		wallGen:           wallGen,
		pendingRiichiSeat: -1,
	}
	if cache != nil {
		eng.searcher = hand.NewSearcher(cache)
	} else {
		eng.searcher = hand.NewSearcher(nil)
	}
	if !cfg.SkipEventLog {
		eng.Log = &replay.Log{}
	}
	for i := 0; i < 4; i++ {
		eng.Players[i] = newPlayerState(i, startingScore)
	}
	eng.Situation = Situation{DealerSeat: 0, RoundWind: tile.East, RoundNumber: 1}
	return eng
}

// Close releases resources New allocated for this Engine: the private
// ristretto memo cache, if Config.Cache was nil. A caller-supplied shared
// cache (Config.Cache set) is left open, since other Engines may still be
// using it.
func (eng *Engine) Close() {
	if eng.ownsCache && eng.cache != nil {
		eng.cache.Close()
		eng.cache = nil
	}
}

// Reset reshuffles the wall with seed and deals the first kyoku, returning
// the initial observation map (exactly one active seat: oya), per
// spec.md §6.
func (eng *Engine) Reset(seed int64) (map[int]Observation, error) {
	eng.seed = seed
	eng.poisoned = false
	eng.GameOver = false
	eng.NeedsInitializeNextRound = false
	eng.Log = logOrNil(eng.Cfg.SkipEventLog)
	eng.Log.Append(replay.Event{Kind: replay.StartGame, Seat: -1})
	eng.startKyoku()
	return eng.observeActive(), eng.checkInvariants("reset")
}

func logOrNil(skip bool) *replay.Log {
	if skip {
		return nil
	}
	return &replay.Log{}
}

// startKyoku reshuffles, deals 13 tiles to every seat, deals the dealer's
// first tile, reveals the first dora indicator and enters WaitAct(oya).
// Ground: teacher's handleStartRoundEvent/distributeCard.
func (eng *Engine) startKyoku() {
	perm := eng.wallGen(eng.seed + int64(eng.Situation.RoundNumber)*4 + int64(eng.Situation.Honba))
	eng.Wall = NewWall(perm)

	for i := 0; i < 4; i++ {
		eng.Players[i].resetForKyoku()
	}

	for round := 0; round < 13; round++ {
		for seat := 0; seat < 4; seat++ {
			t, ok := eng.Wall.Draw()
			if !ok {
				eng.poison(newErr(CorruptState, PhaseWaitAct.String(), -1, "wall", "wall exhausted during initial deal"))
				return
			}
			eng.Players[seat].addTile(t)
		}
	}

	eng.Wall.RevealDora()
	eng.discardsThisKyoku = 0
	eng.LastDiscard = lastDiscard{}
	eng.PendingKan = pendingKan{}
	eng.kuikaeForbidden = nil
	eng.respondingSeats = nil
	eng.pendingRiichiSeat = -1
	eng.callsMadeThisKyoku = 0
	eng.kansDeclaredBy = make(map[int]bool, 4)
	eng.totalKansThisKyoku = 0

	eng.Log.Append(replay.Event{
		Kind: replay.StartKyoku, Seat: -1,
		RoundWind: eng.Situation.RoundWind.String(), RoundNumber: eng.Situation.RoundNumber,
		Honba: eng.Situation.Honba, DealerSeat: eng.Situation.DealerSeat,
	})

	eng.enterWaitAct(eng.Situation.DealerSeat, true)
}

// enterWaitAct draws (if needed) for seat and transitions into WaitAct. A
// failed draw (wall exhausted) resolves the kyoku as an exhaustive draw.
func (eng *Engine) enterWaitAct(seat int, draw bool) {
	if draw {
		t, ok := eng.Wall.Draw()
		if !ok {
			eng.resolveExhaustiveDraw()
			return
		}
		eng.Players[seat].addTile(t)
		eng.lastDrawWasRinshan = false
		eng.lastDrawnTile = t
		eng.Log.Append(replay.Event{Kind: replay.Tsumo, Seat: seat, Tile: eng.notate(t)})
	}
	eng.Phase = PhaseWaitAct
	eng.CurrentSeat = seat
	eng.LastDiscard = lastDiscard{}
	eng.PendingKan = pendingKan{}
}

// enterWaitActRinshan draws seat's kan replacement tile from the dead wall
// and transitions into WaitAct, per spec.md §4.4's kan follow-through. The
// four-kan-by-distinct-seats abortive check runs before this is called, so
// the dead wall is guaranteed to still hold a rinshan tile here.
func (eng *Engine) enterWaitActRinshan(seat int) error {
	t, ok := eng.Wall.DrawRinshan()
	if !ok {
		return newErr(CorruptState, PhaseWaitAct.String(), seat, "rinshan", "rinshan wall exhausted unexpectedly")
	}
	eng.Players[seat].addTile(t)
	eng.lastDrawWasRinshan = true
	eng.lastDrawnTile = t
	eng.Log.Append(replay.Event{Kind: replay.Tsumo, Seat: seat, Tile: eng.notate(t)})
	eng.Phase = PhaseWaitAct
	eng.CurrentSeat = seat
	eng.LastDiscard = lastDiscard{}
	eng.PendingKan = pendingKan{}
	return nil
}

func (eng *Engine) notate(t tile.TID) string {
	return tile.Notation(eng.Mode, t)
}

// firstGoAround reports whether the kyoku is still within its first
// uninterrupted circuit: nobody has called chi/pon/kan yet and fewer than
// four discards have happened, per spec.md §4.3's kyushu-kyuhai gate.
func (eng *Engine) firstGoAround() bool {
	return eng.callsMadeThisKyoku == 0 && eng.discardsThisKyoku < 4
}

// table builds the legality.Table snapshot for the current kyoku.
func (eng *Engine) table() legality.Table {
	return legality.Table{
		Mode:          eng.Mode,
		RoundWind:     eng.Situation.RoundWind,
		WallLive:      eng.Wall.LiveRemaining(),
		FirstGoAround: eng.firstGoAround(),
		Dora:          eng.Wall.DoraFaces(),
	}
}

// conditionsFor builds yaku.Conditions for seat given the current kyoku
// context flags. TsumoFirstTurn is true only when seat has not yet
// discarded or called this kyoku and no call has happened by anyone
// (tenhou for the dealer, chiihou for a non-dealer); callers that don't
// need the haitei/houtei/rinshan/chankan flags set pass them false.
func (eng *Engine) conditionsFor(seat int, haitei, houtei, rinshan, chankan bool) yaku.Conditions {
	p := eng.Players[seat]
	tsumoFirstTurn := eng.firstGoAround() && p.Seat.River.Len() == 0 && p.Seat.Melds.Len() == 0
	return yaku.Conditions{
		Riichi:         p.Seat.RiichiDeclared,
		DoubleRiichi:   p.DoubleRiichi,
		Ippatsu:        p.Ippatsu,
		Haitei:         haitei,
		Houtei:         houtei,
		Rinshan:        rinshan,
		Chankan:        chankan,
		TsumoFirstTurn: tsumoFirstTurn,
		IsDealer:       seat == eng.Situation.DealerSeat,
		PlayerWind:     eng.Situation.PlayerWind(seat),
		RoundWind:      eng.Situation.RoundWind,
	}
}

// clearIppatsuExcept drops ippatsu for every seat other than except (or
// all seats if except < 0), per spec.md §4.4: "cleared on any claim by
// anyone, including the riichi seat's own kan".
func (eng *Engine) clearIppatsuExcept(except int) {
	for i, p := range eng.Players {
		if i != except {
			p.Ippatsu = false
		}
	}
}

func (eng *Engine) poison(err *EngineError) {
	eng.poisoned = true
	mahjonglog.Warn("engine poisoned: %s", err.Error())
}

// checkInvariants runs the cheap subset of spec.md §8's structural
// invariants after a state transition, returning a *EngineError wrapping
// CorruptState (and poisoning the engine) on violation.
func (eng *Engine) checkInvariants(phase string) error {
	if eng.poisoned {
		return newErr(CorruptState, phase, -1, "poisoned", "engine previously poisoned")
	}
	total := eng.Wall.LiveRemaining() + eng.Wall.RinshanRemaining() + len(eng.Wall.doraIndicators) + len(eng.Wall.uraDoraIndicators)
	for _, p := range eng.Players {
		total += len(p.Seat.Tiles)
		for _, m := range p.Seat.Melds.All() {
			total += len(m.Tiles)
			if m.ClaimedFromSeat >= 0 {
				total-- // the claimed tile is still counted in the discarder's river
			}
		}
		total += p.Seat.River.Len()
	}
	if total != 136 {
		err := newErr(CorruptState, phase, -1, "tile_total", "tile conservation invariant violated")
		eng.poison(err)
		return err
	}
	fourteen := 0
	for _, p := range eng.Players {
		if p.handSize() == 14 {
			fourteen++
		}
	}
	if eng.Phase == PhaseWaitAct && fourteen != 1 {
		err := newErr(CorruptState, phase, eng.CurrentSeat, "hand_size", "exactly one seat must hold 14 tiles during WaitAct")
		eng.poison(err)
		return err
	}
	return nil
}
