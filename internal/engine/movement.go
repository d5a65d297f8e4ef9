package engine

import (
	"github.com/tatianab/steps-and-leaps/internal/board"
)

// Movement is the resolved outcome of moving one player by Amount cells.
type Movement struct {
	From   int
	Amount int
	// Target is where the walk stops: From+Amount clamped to the goal.
	Target int
	// Final is Target after at most one hazard redirection.
	Final int
	// Hazard is set when Target starts a ladder or monster.
	Hazard    board.Hazard
	Triggered bool
	Won       bool
}

// ResolveMovement moves from by amount on cfg. Overshoot is discarded: the walk
// stops on the goal cell. Exactly one hazard lookup happens, on Target.
func ResolveMovement(cfg board.Config, from, amount int) Movement {
	amount = max(amount, 0)
	target := min(from+amount, cfg.MaxScore)
	m := Movement{
		From:   from,
		Amount: amount,
		Target: target,
		Final:  target,
	}
	if h, ok := cfg.Lookup(target); ok {
		m.Hazard = h
		m.Triggered = true
		m.Final = h.End
	}
	m.Won = m.Final >= cfg.MaxScore
	return m
}

// Path lists each cell visited on the walk from From to Target, excluding From.
func (m Movement) Path() []int {
	if m.Target <= m.From {
		return nil
	}
	path := make([]int, 0, m.Target-m.From)
	for p := m.From + 1; p <= m.Target; p++ {
		path = append(path, p)
	}
	return path
}
