package engine

import (
	"fmt"

	"github.com/tatianab/steps-and-leaps/internal/board"
	"github.com/tatianab/steps-and-leaps/internal/models"
)

// The reducers below are pure: each takes a state, returns the next one and
// reports whether the phase guard allowed the transition. A rejected
// transition returns the input unchanged.

// StartGame seats the players and opens the first turn.
//
// Precondition: setup has passed Validate.
func StartGame(s models.GameState, setup Setup, gameID string) (models.GameState, bool) {
	if s.Phase != models.PhaseSetup {
		return s, false
	}
	s = s.Clone()
	for i, p := range []struct{ name, avatar string }{
		{setup.P1Name, setup.P1Avatar},
		{setup.P2Name, setup.P2Avatar},
	} {
		player := &s.Players[i]
		player.Name = p.name
		if p.avatar != "" {
			player.Avatar = p.avatar
		}
		player.Position = 1
	}
	s.GameID = gameID
	s.Difficulty = setup.Difficulty
	s.CurrentPlayer = models.SeatOne
	s.Winner = models.NoSeat
	s.LastDice = [2]int{1, 1}
	s.LastSpin = 0
	s.Phase = models.PhaseRollDice
	s.Log = []string{fmt.Sprintf("Welcome to Steps & Leaps! %s starts.", setup.P1Name)}
	return s, true
}

// BeginSteps records a dice roll and enters the steps movement.
func BeginSteps(s models.GameState, d [2]int) (models.GameState, bool) {
	if s.Phase != models.PhaseRollDice {
		return s, false
	}
	s = s.Clone()
	s.LastDice = d
	s.Phase = models.PhaseMovingSteps
	s.Log = append(s.Log, fmt.Sprintf("%s rolled a %d and %d (%d steps).", s.Current().Name, d[0], d[1], d[0]+d[1]))
	return s, true
}

// BeginLeaps records a spin and enters the leaps movement.
func BeginLeaps(s models.GameState, spin int) (models.GameState, bool) {
	if s.Phase != models.PhaseSpinWheel {
		return s, false
	}
	s = s.Clone()
	s.LastSpin = spin
	s.Phase = models.PhaseMovingLeaps
	s.Log = append(s.Log, fmt.Sprintf("%s spun a leap of %d!", s.Current().Name, spin))
	return s, true
}

// Step moves the current player one cell during a movement phase.
// Positions never go backwards here; hazards are applied by FinishMove.
func Step(s models.GameState, pos int) (models.GameState, bool) {
	if s.Phase != models.PhaseMovingSteps && s.Phase != models.PhaseMovingLeaps {
		return s, false
	}
	if pos < s.Current().Position {
		return s, false
	}
	s = s.Clone()
	s.Current().Position = pos
	return s, true
}

// FinishMove applies the resolved movement m: final position, hazard log,
// win check and the next phase.
func FinishMove(s models.GameState, m Movement) (models.GameState, bool) {
	steps := s.Phase == models.PhaseMovingSteps
	if !steps && s.Phase != models.PhaseMovingLeaps {
		return s, false
	}
	s = s.Clone()
	player := s.Current()
	if m.Triggered {
		switch m.Hazard.Kind {
		case board.Ladder:
			s.Log = append(s.Log, fmt.Sprintf("WOW! %s found a ladder to %d!", player.Name, m.Hazard.End))
		case board.Monster:
			s.Log = append(s.Log, fmt.Sprintf("OOPS! A monster scared %s back to %d!", player.Name, m.Hazard.End))
		}
	}
	player.Position = m.Final

	switch {
	case m.Won:
		s.Winner = s.CurrentPlayer
		s.Phase = models.PhaseGameOver
		s.Log = append(s.Log, fmt.Sprintf("!!! %s WINS !!!", player.Name))
	case steps:
		s.Phase = models.PhaseSpinWheel
	default:
		s.Phase = models.PhaseTurnEnd
	}
	return s, true
}

// SwitchTurn hands the dice to the other player.
func SwitchTurn(s models.GameState) (models.GameState, bool) {
	if s.Phase != models.PhaseTurnEnd {
		return s, false
	}
	s = s.Clone()
	s.CurrentPlayer = s.CurrentPlayer.Other()
	s.Phase = models.PhaseRollDice
	s.LastDice = [2]int{1, 1}
	s.LastSpin = 0
	s.Log = append(s.Log, fmt.Sprintf("--- %s's turn ---", s.Current().Name))
	return s, true
}

// Reset starts a rematch after a win, keeping names, avatars and difficulty.
// The rematch is a new game and gets gameID.
func Reset(s models.GameState, gameID string) (models.GameState, bool) {
	if s.Phase != models.PhaseGameOver {
		return s, false
	}
	s = s.Clone()
	s.GameID = gameID
	for i := range s.Players {
		s.Players[i].Position = 1
	}
	s.CurrentPlayer = models.SeatOne
	s.Winner = models.NoSeat
	s.LastDice = [2]int{1, 1}
	s.LastSpin = 0
	s.Phase = models.PhaseRollDice
	s.Log = []string{"Game Reset! Good luck!"}
	return s, true
}

// Abandon drops the game in progress and returns to the setup screen. The
// players' names and avatars are kept as the form's defaults.
func Abandon(s models.GameState) (models.GameState, bool) {
	if s.Phase == models.PhaseSetup {
		return s, false
	}
	s = s.Clone()
	for i := range s.Players {
		s.Players[i].Position = 1
	}
	s.GameID = ""
	s.CurrentPlayer = models.SeatOne
	s.Winner = models.NoSeat
	s.LastDice = [2]int{1, 1}
	s.LastSpin = 0
	s.Phase = models.PhaseSetup
	s.Log = nil
	return s, true
}
