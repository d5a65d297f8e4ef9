package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

func TestResolveMovement_LadderFromZero(t *testing.T) {
	m := ResolveMovement(board.MustForDifficulty(board.Easy), 0, 3)
	assert.Equal(t, 3, m.Target)
	assert.True(t, m.Triggered)
	assert.Equal(t, board.Ladder, m.Hazard.Kind)
	assert.Equal(t, 12, m.Final)
	assert.False(t, m.Won)
}

func TestResolveMovement_OvershootClamps(t *testing.T) {
	m := ResolveMovement(board.MustForDifficulty(board.Easy), 40, 30)
	assert.Equal(t, 50, m.Target)
	assert.Equal(t, 50, m.Final)
	assert.False(t, m.Triggered)
	assert.True(t, m.Won)
}

func TestResolveMovement_WinBoundary(t *testing.T) {
	hard := board.MustForDifficulty(board.Hard)

	exact := ResolveMovement(hard, 97, 3)
	assert.Equal(t, 100, exact.Final)
	assert.True(t, exact.Won)

	below := ResolveMovement(hard, 97, 2)
	assert.Equal(t, 99, below.Final)
	assert.False(t, below.Won)

	easy := board.MustForDifficulty(board.Easy)
	monster := ResolveMovement(easy, 45, 4)
	assert.Equal(t, 49, monster.Target)
	assert.Equal(t, 30, monster.Final)
	assert.False(t, monster.Won)
}

func TestResolveMovement_HardMonsters(t *testing.T) {
	hard := board.MustForDifficulty(board.Hard)

	m := ResolveMovement(hard, 35, 10)
	assert.Equal(t, board.Monster, m.Hazard.Kind)
	assert.Equal(t, 25, m.Final)

	m = ResolveMovement(hard, 54, 10)
	assert.Equal(t, 64, m.Target)
	assert.Equal(t, 60, m.Final)
}

func TestResolveMovement_LadderToGoalWins(t *testing.T) {
	m := ResolveMovement(board.MustForDifficulty(board.Hard), 70, 10)
	assert.Equal(t, 80, m.Target)
	assert.Equal(t, 100, m.Final)
	assert.True(t, m.Won)
}

func TestMovementPath(t *testing.T) {
	m := ResolveMovement(board.MustForDifficulty(board.Easy), 5, 4)
	assert.Equal(t, []int{6, 7, 8, 9}, m.Path())

	m = ResolveMovement(board.MustForDifficulty(board.Easy), 50, 6)
	assert.Empty(t, m.Path())
}

// TestResolveMovement_Property checks the clamp, the single redirection and
// the win rule for every board, start cell and distance.
func TestResolveMovement_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := board.MustForDifficulty(rapid.SampledFrom([]board.Difficulty{board.Easy, board.Hard}).Draw(rt, "difficulty"))
		from := rapid.IntRange(0, cfg.MaxScore).Draw(rt, "from")
		amount := rapid.IntRange(0, 60).Draw(rt, "amount")

		m := ResolveMovement(cfg, from, amount)

		require.Equal(rt, min(from+amount, cfg.MaxScore), m.Target)
		assert.LessOrEqual(rt, m.Final, cfg.MaxScore)
		assert.Equal(rt, m.Final >= cfg.MaxScore, m.Won)
		if m.Triggered {
			assert.Equal(rt, m.Target, m.Hazard.Start)
			assert.Equal(rt, m.Hazard.End, m.Final)
		} else {
			assert.Equal(rt, m.Target, m.Final)
		}

		prev := from
		for _, p := range m.Path() {
			assert.Equal(rt, prev+1, p)
			prev = p
		}
		assert.Equal(rt, m.Target, prev)
	})
}
