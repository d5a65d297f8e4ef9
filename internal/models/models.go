package models

import (
	"slices"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

// Seat identifies one of the two players.
type Seat int

const (
	NoSeat  Seat = 0
	SeatOne Seat = 1
	SeatTwo Seat = 2
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SeatOne {
		return SeatTwo
	}
	return SeatOne
}

// Phase is a named state of the per-turn state machine.
type Phase string

const (
	PhaseSetup       Phase = "SETUP"
	PhaseRollDice    Phase = "ROLL_DICE"
	PhaseMovingSteps Phase = "MOVING_STEPS"
	PhaseSpinWheel   Phase = "SPIN_WHEEL"
	PhaseMovingLeaps Phase = "MOVING_LEAPS"
	PhaseTurnEnd     Phase = "TURN_END"
	PhaseGameOver    Phase = "GAME_OVER"
)

var transitions = map[Phase][]Phase{
	PhaseSetup:       {PhaseRollDice},
	PhaseRollDice:    {PhaseMovingSteps},
	PhaseMovingSteps: {PhaseSpinWheel, PhaseGameOver},
	PhaseSpinWheel:   {PhaseMovingLeaps},
	PhaseMovingLeaps: {PhaseTurnEnd, PhaseGameOver},
	PhaseTurnEnd:     {PhaseRollDice},
	PhaseGameOver:    {PhaseRollDice},
}

// CanTransitionTo reports whether the state machine allows p -> target.
func (p Phase) CanTransitionTo(target Phase) bool {
	return slices.Contains(transitions[p], target)
}

// Avatars are the avatar tokens a player may pick. They are opaque to the engine.
var Avatars = []string{"axolotl", "cat", "dog", "bunny", "frog", "panda"}

// Player is one seat at the table.
type Player struct {
	Seat     Seat   `yaml:"seat"`
	Name     string `yaml:"name"`
	Position int    `yaml:"position"`
	Color    string `yaml:"color"`
	Avatar   string `yaml:"avatar"`
}

// GameState is the authoritative game snapshot. Only the engine mutates it;
// everyone else receives copies.
type GameState struct {
	GameID        string           `yaml:"game_id"`
	Players       [2]Player        `yaml:"players"`
	CurrentPlayer Seat             `yaml:"current_player"`
	Phase         Phase            `yaml:"phase"`
	LastDice      [2]int           `yaml:"last_dice"`
	LastSpin      int              `yaml:"last_spin"` // 0, 10, 20 or 30
	Winner        Seat             `yaml:"winner"`
	Log           []string         `yaml:"log"`
	Difficulty    board.Difficulty `yaml:"difficulty"`
}

// NewGameState returns the pre-game state with the default seats.
func NewGameState() GameState {
	return GameState{
		Players: [2]Player{
			{Seat: SeatOne, Name: "Player 1", Position: 1, Color: "#3b82f6", Avatar: "axolotl"},
			{Seat: SeatTwo, Name: "Player 2", Position: 1, Color: "#ef4444", Avatar: "cat"},
		},
		CurrentPlayer: SeatOne,
		Phase:         PhaseSetup,
		LastDice:      [2]int{1, 1},
		Difficulty:    board.Easy,
	}
}

// Player returns the player in seat.
func (s *GameState) Player(seat Seat) *Player {
	return &s.Players[seat-1]
}

// Current returns the player whose turn it is.
func (s *GameState) Current() *Player {
	return s.Player(s.CurrentPlayer)
}

// HasWinner reports whether the game has been decided.
func (s GameState) HasWinner() bool {
	return s.Winner != NoSeat
}

// Clone returns a copy that shares no mutable memory with s.
func (s GameState) Clone() GameState {
	s.Log = slices.Clone(s.Log)
	return s
}
