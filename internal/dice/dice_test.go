package dice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/tatianab/steps-and-leaps/internal/dice"
)

const trials = 20000

func newRoller(seed uint64) *dice.Roller {
	return dice.NewRoller(dice.NewSeededSource(seed), zap.NewNop())
}

// TestRollDice_Uniform checks each face appears about 1/6 of the time on
// both dice.
func TestRollDice_Uniform(t *testing.T) {
	r := newRoller(42)
	var counts [2][7]int
	for range trials {
		d := r.RollDice()
		for i, v := range d {
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 6)
			counts[i][v]++
		}
	}
	for i := range counts {
		for face := 1; face <= 6; face++ {
			freq := float64(counts[i][face]) / trials
			assert.InDelta(t, 1.0/6, freq, 0.015, "die %d face %d", i, face)
		}
	}
}

// TestRollDice_SumDistribution compares the sum histogram with the
// convolution of two fair d6.
func TestRollDice_SumDistribution(t *testing.T) {
	r := newRoller(7)
	var sums [13]int
	for range trials {
		d := r.RollDice()
		sums[d[0]+d[1]]++
	}
	assert.Zero(t, sums[0]+sums[1])
	for s := 2; s <= 12; s++ {
		ways := 6 - math.Abs(float64(s-7))
		want := ways / 36
		got := float64(sums[s]) / trials
		assert.InDelta(t, want, got, 0.012, "sum %d", s)
	}
}

// TestSpin_Weighted checks the 37.5/37.5/25 split.
func TestSpin_Weighted(t *testing.T) {
	r := newRoller(1234)
	counts := map[int]int{}
	for range trials {
		counts[r.Spin()]++
	}
	require.Len(t, counts, 3)
	assert.InDelta(t, 0.375, float64(counts[10])/trials, 0.015)
	assert.InDelta(t, 0.375, float64(counts[20])/trials, 0.015)
	assert.InDelta(t, 0.25, float64(counts[30])/trials, 0.015)
	// A fair three-way spinner would give 30 a third of the time.
	assert.Less(t, float64(counts[30])/trials, 0.30)
}

func TestSpin_CryptoSourceWeighted(t *testing.T) {
	r := dice.NewRoller(dice.NewCryptoSource(), zap.NewNop())
	counts := map[int]int{}
	for range trials {
		counts[r.Spin()]++
	}
	assert.InDelta(t, 0.25, float64(counts[30])/trials, 0.02)
}

func TestSpinFromUnit_Boundaries(t *testing.T) {
	assert.Equal(t, 10, dice.SpinFromUnit(0))
	assert.Equal(t, 10, dice.SpinFromUnit(0.3749))
	assert.Equal(t, 20, dice.SpinFromUnit(0.375))
	assert.Equal(t, 20, dice.SpinFromUnit(0.7499))
	assert.Equal(t, 30, dice.SpinFromUnit(0.75))
	assert.Equal(t, 30, dice.SpinFromUnit(0.9999))
}

func TestSpinFromUnit_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		u := rapid.Float64Range(0, 1).Filter(func(f float64) bool { return f < 1 }).Draw(rt, "u")
		assert.Contains(rt, dice.SpinOutcomes, dice.SpinFromUnit(u))
	})
}

func TestSeededSource_Deterministic(t *testing.T) {
	a, b := newRoller(99), newRoller(99)
	for range 100 {
		assert.Equal(t, a.RollDice(), b.RollDice())
		assert.Equal(t, a.Spin(), b.Spin())
	}
}

func TestCryptoSource_Range(t *testing.T) {
	src := dice.NewCryptoSource()
	for range 1000 {
		v := src.IntN(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestCryptoSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().IntN(0) })
}

func TestNewSeed(t *testing.T) {
	a, err := dice.NewSeed()
	require.NoError(t, err)
	b, err := dice.NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
