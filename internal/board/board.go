// Package board holds the static per-difficulty board layouts: the winning
// cell and the ladder and monster tables.
package board

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed boards.yaml
var presetsYAML []byte

// Difficulty selects the board length and hazard tables.
type Difficulty string

const (
	Easy Difficulty = "EASY"
	Hard Difficulty = "HARD"
)

// ErrUnknownDifficulty is returned for a difficulty with no preset.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty accepts "easy"/"hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case Easy, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Label is the short human description shown next to the mode.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy (50 squares)"
	case Hard:
		return "Hard (100 squares)"
	}
	return string(d)
}

// HazardKind names the two kinds of special cells.
type HazardKind string

const (
	Ladder  HazardKind = "ladder"
	Monster HazardKind = "monster"
)

// Hazard is a single special cell: landing on Start moves the player to End.
type Hazard struct {
	Kind  HazardKind
	Start int
	End   int
}

// Config is one board layout. It is treated as read-only once loaded.
type Config struct {
	Difficulty Difficulty  `yaml:"difficulty"`
	MaxScore   int         `yaml:"max_score"`
	Ladders    map[int]int `yaml:"ladders"`
	Monsters   map[int]int `yaml:"monsters"`
}

// Lookup reports the hazard starting at cell, if any. Ladders are checked
// before monsters; Validate guarantees the two never share a start cell.
func (c Config) Lookup(cell int) (Hazard, bool) {
	if end, ok := c.Ladders[cell]; ok {
		return Hazard{Kind: Ladder, Start: cell, End: end}, true
	}
	if end, ok := c.Monsters[cell]; ok {
		return Hazard{Kind: Monster, Start: cell, End: end}, true
	}
	return Hazard{}, false
}

// Hazards lists every special cell ordered by start cell.
func (c Config) Hazards() []Hazard {
	out := make([]Hazard, 0, len(c.Ladders)+len(c.Monsters))
	for start, end := range c.Ladders {
		out = append(out, Hazard{Kind: Ladder, Start: start, End: end})
	}
	for start, end := range c.Monsters {
		out = append(out, Hazard{Kind: Monster, Start: start, End: end})
	}
	slices.SortFunc(out, func(a, b Hazard) int { return a.Start - b.Start })
	return out
}

// Validate checks the layout invariants:
//   - ladders go up and monsters go down;
//   - every start and end lies on the board, starts strictly inside it;
//   - no cell starts both a ladder and a monster;
//   - no hazard ends on another hazard's start, so a landing resolves once.
func (c Config) Validate() error {
	var errs []string
	if c.MaxScore < 2 {
		errs = append(errs, fmt.Sprintf("max_score must be >= 2, got %d", c.MaxScore))
	}
	check := func(kind HazardKind, table map[int]int) {
		for _, start := range slices.Sorted(maps.Keys(table)) {
			end := table[start]
			if start <= 1 || start >= c.MaxScore {
				errs = append(errs, fmt.Sprintf("%s start %d must be in (1, %d)", kind, start, c.MaxScore))
			}
			if end < 1 || end > c.MaxScore {
				errs = append(errs, fmt.Sprintf("%s %d->%d ends off the board", kind, start, end))
			}
			if kind == Ladder && end <= start {
				errs = append(errs, fmt.Sprintf("ladder %d->%d must go up", start, end))
			}
			if kind == Monster && end >= start {
				errs = append(errs, fmt.Sprintf("monster %d->%d must go down", start, end))
			}
			if _, ok := c.Ladders[end]; ok {
				errs = append(errs, fmt.Sprintf("%s %d->%d ends on a ladder start", kind, start, end))
			}
			if _, ok := c.Monsters[end]; ok {
				errs = append(errs, fmt.Sprintf("%s %d->%d ends on a monster start", kind, start, end))
			}
		}
	}
	check(Ladder, c.Ladders)
	check(Monster, c.Monsters)
	for start := range c.Ladders {
		if _, ok := c.Monsters[start]; ok {
			errs = append(errs, fmt.Sprintf("cell %d is both a ladder and a monster start", start))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("board %s: %s", c.Difficulty, strings.Join(errs, "; "))
	}
	return nil
}

func (c Config) clone() Config {
	c.Ladders = maps.Clone(c.Ladders)
	c.Monsters = maps.Clone(c.Monsters)
	return c
}

var presets map[Difficulty]Config

func init() {
	var list []Config
	if err := yaml.Unmarshal(presetsYAML, &list); err != nil {
		panic("board: parsing embedded presets: " + err.Error())
	}
	presets = make(map[Difficulty]Config, len(list))
	for _, c := range list {
		if err := c.Validate(); err != nil {
			panic("board: " + err.Error())
		}
		presets[c.Difficulty] = c
	}
}

// ForDifficulty returns the preset layout for d.
func ForDifficulty(d Difficulty) (Config, error) {
	c, ok := presets[d]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return c.clone(), nil
}

// MustForDifficulty is ForDifficulty for callers that already validated d.
func MustForDifficulty(d Difficulty) Config {
	c, err := ForDifficulty(d)
	if err != nil {
		panic("board: " + err.Error())
	}
	return c
}

// Presets returns every preset ordered by board length.
func Presets() []Config {
	out := make([]Config, 0, len(presets))
	for _, c := range presets {
		out = append(out, c.clone())
	}
	slices.SortFunc(out, func(a, b Config) int { return a.MaxScore - b.MaxScore })
	return out
}
