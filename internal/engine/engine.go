// Package engine runs the Steps & Leaps turn state machine.
//
// A turn is ROLL_DICE -> MOVING_STEPS -> SPIN_WHEEL -> MOVING_LEAPS ->
// TURN_END -> ROLL_DICE for the other player, with GAME_OVER reachable from
// either movement phase. The pure reducers in this package compute every
// transition; Engine serializes intents, paces the movement for presenters,
// fetches the end-of-turn fact and publishes events.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tatianab/steps-and-leaps/internal/board"
	"github.com/tatianab/steps-and-leaps/internal/config"
	"github.com/tatianab/steps-and-leaps/internal/dice"
	"github.com/tatianab/steps-and-leaps/internal/facts"
	"github.com/tatianab/steps-and-leaps/internal/models"
)

// Options configures an Engine.
type Options struct {
	Roller      *dice.Roller
	Facts       facts.Service
	FactTimeout time.Duration
	Pacing      config.PacingConfig
	Logger      *zap.Logger
}

// Engine owns the authoritative GameState. It is safe for concurrent use;
// at most one roll or spin resolves at a time and any other intent arriving
// meanwhile is rejected.
type Engine struct {
	roller      *dice.Roller
	facts       facts.Service
	factTimeout time.Duration
	pacing      config.PacingConfig
	logger      *zap.Logger
	events      hub

	mu    sync.Mutex
	state models.GameState
	busy  bool
	// token changes whenever a game starts, resets or is abandoned. A
	// resolution carrying an older token may no longer touch the state.
	token  uint64
	cancel context.CancelFunc
}

// New returns an Engine waiting in SETUP. A nil Roller draws from crypto
// randomness, nil Facts disables facts and a nil Logger discards logs.
func New(opts Options) *Engine {
	if opts.Facts == nil {
		opts.Facts = facts.Disabled{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Roller == nil {
		opts.Roller = dice.NewRoller(dice.NewCryptoSource(), opts.Logger)
	}
	if opts.FactTimeout <= 0 {
		opts.FactTimeout = 5 * time.Second
	}
	return &Engine{
		roller:      opts.Roller,
		facts:       opts.Facts,
		factTimeout: opts.FactTimeout,
		pacing:      opts.Pacing,
		logger:      opts.Logger,
		state:       models.NewGameState(),
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() models.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Board returns the layout for the current difficulty.
func (e *Engine) Board() board.Config {
	return board.MustForDifficulty(e.Snapshot().Difficulty)
}

// Subscribe registers for events. The returned func unsubscribes and closes
// the channel.
func (e *Engine) Subscribe(buffer int) (<-chan Event, func()) {
	return e.events.subscribe(buffer)
}

// StartGame validates setup and opens the first turn. It fails with
// ErrInvalidSetup for a bad form and ErrGameInProgress outside SETUP.
func (e *Engine) StartGame(setup Setup) error {
	setup = setup.Normalize()
	if err := setup.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	next, ok := StartGame(e.state, setup, uuid.NewString())
	if !ok {
		e.mu.Unlock()
		return ErrGameInProgress
	}
	e.state = next
	e.token++
	snap := next.Clone()
	e.mu.Unlock()

	e.logger.Info("game started",
		zap.String("game_id", snap.GameID),
		zap.String("difficulty", string(snap.Difficulty)),
		zap.String("player1", setup.P1Name),
		zap.String("player2", setup.P2Name),
	)
	e.publish(Event{Kind: EventGameStarted, State: snap})
	return nil
}

// RollDice resolves the current player's steps phase and returns once the
// move has settled in SPIN_WHEEL or GAME_OVER. It returns false without
// doing anything when the phase is not ROLL_DICE or a resolution is in flight.
//
// Cancelling ctx skips the remaining pacing delays; the move still completes.
func (e *Engine) RollDice(ctx context.Context) bool {
	tok, ok := e.begin(models.PhaseRollDice)
	if !ok {
		return false
	}
	defer e.finish(tok)
	ctx = e.bind(ctx, tok)

	e.pause(ctx, e.pacing.Roll)
	d := e.roller.RollDice()
	snap, ok := e.commit(tok, func(s models.GameState) (models.GameState, bool) { return BeginSteps(s, d) })
	if !ok {
		return true
	}
	e.publish(Event{Kind: EventDiceRolled, State: snap, Dice: d})

	e.pause(ctx, e.pacing.StepsStart)
	e.move(ctx, tok, d[0]+d[1], true)
	return true
}

// Spin resolves the current player's leaps phase. When the player does not
// win, it also waits out the end-of-turn fact and hands the turn over before
// returning. It returns false when the phase is not SPIN_WHEEL or a
// resolution is in flight.
func (e *Engine) Spin(ctx context.Context) bool {
	tok, ok := e.begin(models.PhaseSpinWheel)
	if !ok {
		return false
	}
	defer e.finish(tok)
	ctx = e.bind(ctx, tok)

	e.pause(ctx, e.pacing.Spin)
	v := e.roller.Spin()
	snap, ok := e.commit(tok, func(s models.GameState) (models.GameState, bool) { return BeginLeaps(s, v) })
	if !ok {
		return true
	}
	e.publish(Event{Kind: EventSpun, State: snap, Spin: v})

	e.pause(ctx, e.pacing.LeapStart)
	final, ended := e.move(ctx, tok, v, false)
	if ended {
		e.endTurn(ctx, tok, final)
	}
	return true
}

// Reset starts a rematch from GAME_OVER. It returns false in any other phase.
func (e *Engine) Reset() bool {
	e.mu.Lock()
	next, ok := Reset(e.state, uuid.NewString())
	if !ok || e.busy {
		e.mu.Unlock()
		return false
	}
	e.state = next
	e.token++
	snap := next.Clone()
	e.mu.Unlock()

	e.logger.Info("game reset", zap.String("game_id", snap.GameID))
	e.publish(Event{Kind: EventReset, State: snap})
	return true
}

// Abandon returns to SETUP from any other phase, cutting short whatever
// resolution is in flight.
func (e *Engine) Abandon() bool {
	e.mu.Lock()
	next, ok := Abandon(e.state)
	if !ok {
		e.mu.Unlock()
		return false
	}
	gameID := e.state.GameID
	e.state = next
	e.token++
	e.busy = false
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	snap := next.Clone()
	e.mu.Unlock()

	e.logger.Info("game abandoned", zap.String("game_id", gameID))
	e.publish(Event{Kind: EventAbandoned, State: snap})
	return true
}

// move walks the current player amount cells, applies any hazard and settles
// the phase. It returns the final position and whether the turn reached
// TURN_END.
func (e *Engine) move(ctx context.Context, tok uint64, amount int, steps bool) (int, bool) {
	start := e.Snapshot()
	cfg := board.MustForDifficulty(start.Difficulty)
	m := ResolveMovement(cfg, start.Current().Position, amount)

	delay := e.pacing.Step
	if !steps {
		delay = e.pacing.LeapStep
	}
	for _, pos := range m.Path() {
		snap, ok := e.commit(tok, func(s models.GameState) (models.GameState, bool) { return Step(s, pos) })
		if !ok {
			return 0, false
		}
		e.publish(Event{Kind: EventStep, State: snap, Position: pos})
		e.pause(ctx, delay)
	}
	if !steps {
		e.publish(Event{Kind: EventLeap, State: e.Snapshot(), Position: m.Target})
	}

	if m.Triggered {
		kind := EventLadder
		if m.Hazard.Kind == board.Monster {
			kind = EventMonster
		}
		e.publish(Event{Kind: kind, State: e.Snapshot(), Hazard: m.Hazard, Position: m.Target})
		e.pause(ctx, e.pacing.Hazard)
	}

	snap, ok := e.commit(tok, func(s models.GameState) (models.GameState, bool) { return FinishMove(s, m) })
	if !ok {
		return 0, false
	}
	e.publish(Event{Kind: EventMoved, State: snap, Position: m.Final})

	if m.Won {
		e.logger.Info("game won",
			zap.String("game_id", snap.GameID),
			zap.Int("winner", int(snap.Winner)),
			zap.Int("position", m.Final),
		)
		e.publish(Event{Kind: EventVictory, State: snap, Position: m.Final})
		return m.Final, false
	}
	return m.Final, snap.Phase == models.PhaseTurnEnd
}

// endTurn requests the fact for the landing cell, holds it on screen for the
// display window and switches players. A failed or slow fact never blocks
// the switch beyond the fact timeout.
func (e *Engine) endTurn(ctx context.Context, tok uint64, final int) {
	snap := e.Snapshot()
	e.publish(Event{Kind: EventFactRequested, State: snap, Position: final})

	if fact := e.fetchFact(ctx, final, snap.Difficulty); fact != "" {
		e.publish(Event{Kind: EventFact, State: snap, Position: final, Fact: fact})
	}
	e.pause(ctx, e.pacing.FactDisplay)

	next, ok := e.commit(tok, SwitchTurn)
	if !ok {
		return
	}
	e.logger.Info("turn switched",
		zap.String("game_id", next.GameID),
		zap.Int("player", int(next.CurrentPlayer)),
	)
	e.publish(Event{Kind: EventTurnSwitched, State: next})
}

func (e *Engine) fetchFact(ctx context.Context, position int, d board.Difficulty) string {
	ctx, cancel := context.WithTimeout(ctx, e.factTimeout)
	defer cancel()

	type result struct {
		fact string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		fact, err := e.facts.Fact(ctx, position, d)
		done <- result{fact, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			e.logger.Warn("fact unavailable", zap.Int("position", position), zap.Error(r.err))
			return ""
		}
		return r.fact
	case <-ctx.Done():
		e.logger.Warn("fact unavailable", zap.Int("position", position), zap.Error(ctx.Err()))
		return ""
	}
}

// begin claims the single resolution slot if the state is in phase.
func (e *Engine) begin(phase models.Phase) (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy || e.state.Phase != phase {
		return 0, false
	}
	e.busy = true
	return e.token, true
}

// bind derives the resolution context; Abandon cancels it.
func (e *Engine) bind(ctx context.Context, tok uint64) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.token != tok {
		cancel()
		return ctx
	}
	e.cancel = cancel
	return ctx
}

func (e *Engine) finish(tok uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.token != tok {
		return
	}
	e.busy = false
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// commit applies fn to the state if tok is still current and the phase
// change it makes is one the state machine allows.
func (e *Engine) commit(tok uint64, fn func(models.GameState) (models.GameState, bool)) (models.GameState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.token != tok {
		return models.GameState{}, false
	}
	next, ok := fn(e.state)
	if !ok {
		e.logger.Error("rejected transition", zap.String("phase", string(e.state.Phase)))
		return models.GameState{}, false
	}
	if next.Phase != e.state.Phase && !e.state.Phase.CanTransitionTo(next.Phase) {
		e.logger.Error("illegal transition",
			zap.String("from", string(e.state.Phase)),
			zap.String("to", string(next.Phase)),
		)
		return models.GameState{}, false
	}
	e.state = next
	return next.Clone(), true
}

// pause waits d unless ctx ends first.
func (e *Engine) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (e *Engine) publish(ev Event) {
	if dropped := e.events.publish(ev); dropped > 0 {
		e.logger.Debug("event dropped", zap.String("kind", string(ev.Kind)), zap.Int("subscribers", dropped))
	}
}

// String is used in logs and the simulator.
func (e *Engine) String() string {
	s := e.Snapshot()
	return fmt.Sprintf("game %s %s: %s@%d %s@%d phase=%s",
		s.GameID, s.Difficulty,
		s.Players[0].Name, s.Players[0].Position,
		s.Players[1].Name, s.Players[1].Position,
		s.Phase)
}
