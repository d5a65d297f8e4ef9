package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPresets(t *testing.T) {
	easy, err := ForDifficulty(Easy)
	require.NoError(t, err)
	assert.Equal(t, 50, easy.MaxScore)
	assert.Equal(t, map[int]int{3: 12, 15: 25, 22: 38, 34: 46}, easy.Ladders)
	assert.Equal(t, map[int]int{18: 8, 29: 13, 42: 21, 49: 30}, easy.Monsters)

	hard, err := ForDifficulty(Hard)
	require.NoError(t, err)
	assert.Equal(t, 100, hard.MaxScore)
	assert.Len(t, hard.Ladders, 7)
	assert.Len(t, hard.Monsters, 10)
	assert.Equal(t, 100, hard.Ladders[80])
	assert.Equal(t, 79, hard.Monsters[98])
}

func TestPresets_Valid(t *testing.T) {
	all := Presets()
	require.Len(t, all, 2)
	assert.Equal(t, Easy, all[0].Difficulty)
	assert.Equal(t, Hard, all[1].Difficulty)
	for _, c := range all {
		assert.NoError(t, c.Validate())
		for start := range c.Ladders {
			_, both := c.Monsters[start]
			assert.False(t, both, "%s cell %d is both ladder and monster", c.Difficulty, start)
		}
	}
}

func TestForDifficulty_ReturnsCopy(t *testing.T) {
	c := MustForDifficulty(Easy)
	c.Ladders[3] = 49
	again := MustForDifficulty(Easy)
	assert.Equal(t, 12, again.Ladders[3])
}

func TestForDifficulty_Unknown(t *testing.T) {
	_, err := ForDifficulty("MEDIUM")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
	assert.Panics(t, func() { MustForDifficulty("MEDIUM") })
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" hard ")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	d, err = ParseDifficulty("EASY")
	require.NoError(t, err)
	assert.Equal(t, Easy, d)

	_, err = ParseDifficulty("")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestLookup(t *testing.T) {
	hard := MustForDifficulty(Hard)

	h, ok := hard.Lookup(45)
	require.True(t, ok)
	assert.Equal(t, Hazard{Kind: Monster, Start: 45, End: 25}, h)

	h, ok = hard.Lookup(64)
	require.True(t, ok)
	assert.Equal(t, Hazard{Kind: Monster, Start: 64, End: 60}, h)

	h, ok = hard.Lookup(28)
	require.True(t, ok)
	assert.Equal(t, Hazard{Kind: Ladder, Start: 28, End: 84}, h)

	_, ok = hard.Lookup(50)
	assert.False(t, ok)
}

func TestHazards_Sorted(t *testing.T) {
	hs := MustForDifficulty(Easy).Hazards()
	require.Len(t, hs, 8)
	for i := 1; i < len(hs); i++ {
		assert.Less(t, hs[i-1].Start, hs[i].Start)
	}
	assert.Equal(t, Hazard{Kind: Ladder, Start: 3, End: 12}, hs[0])
	assert.Equal(t, Hazard{Kind: Monster, Start: 49, End: 30}, hs[7])
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "shared start",
			cfg:  Config{Difficulty: "X", MaxScore: 20, Ladders: map[int]int{5: 10}, Monsters: map[int]int{5: 2}},
			want: "both a ladder and a monster",
		},
		{
			name: "ladder goes down",
			cfg:  Config{Difficulty: "X", MaxScore: 20, Ladders: map[int]int{10: 5}},
			want: "must go up",
		},
		{
			name: "monster goes up",
			cfg:  Config{Difficulty: "X", MaxScore: 20, Monsters: map[int]int{5: 10}},
			want: "must go down",
		},
		{
			name: "off board",
			cfg:  Config{Difficulty: "X", MaxScore: 20, Ladders: map[int]int{5: 25}},
			want: "off the board",
		},
		{
			name: "chained",
			cfg:  Config{Difficulty: "X", MaxScore: 20, Ladders: map[int]int{3: 8}, Monsters: map[int]int{8: 2}},
			want: "ends on a monster start",
		},
		{
			name: "start on goal",
			cfg:  Config{Difficulty: "X", MaxScore: 20, Monsters: map[int]int{20: 2}},
			want: "start 20 must be in",
		},
		{
			name: "tiny board",
			cfg:  Config{Difficulty: "X", MaxScore: 1},
			want: "max_score",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestLookup_Property checks that every cell resolves to at most one hazard
// and that the hazard moves in its kind's direction.
func TestLookup_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.SampledFrom([]Difficulty{Easy, Hard}).Draw(rt, "difficulty")
		c := MustForDifficulty(d)
		cell := rapid.IntRange(1, c.MaxScore).Draw(rt, "cell")

		h, ok := c.Lookup(cell)
		if !ok {
			return
		}
		assert.Equal(rt, cell, h.Start)
		switch h.Kind {
		case Ladder:
			assert.Greater(rt, h.End, cell)
		case Monster:
			assert.Less(rt, h.End, cell)
		default:
			rt.Fatalf("unexpected kind %q", h.Kind)
		}
		_, chained := c.Lookup(h.End)
		assert.False(rt, chained, "hazard %d->%d lands on another hazard", h.Start, h.End)
	})
}
