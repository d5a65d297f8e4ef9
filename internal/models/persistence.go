package models

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

// Transcript is the saved record of a finished (or abandoned) game.
type Transcript struct {
	GameID     string           `yaml:"game_id"`
	Difficulty board.Difficulty `yaml:"difficulty"`
	Players    [2]Player        `yaml:"players"`
	Winner     Seat             `yaml:"winner,omitempty"`
	Log        []string         `yaml:"log"`
	SavedAt    time.Time        `yaml:"saved_at"`
}

// NewTranscript captures the parts of state worth keeping.
func NewTranscript(state GameState, now time.Time) Transcript {
	return Transcript{
		GameID:     state.GameID,
		Difficulty: state.Difficulty,
		Players:    state.Players,
		Winner:     state.Winner,
		Log:        slices.Clone(state.Log),
		SavedAt:    now.UTC(),
	}
}

// SaveTranscript writes state to dir/<game id>.yaml and returns the path.
func SaveTranscript(dir string, state GameState) (string, error) {
	if state.GameID == "" {
		return "", fmt.Errorf("saving transcript: game has no id")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(NewTranscript(state, time.Now()))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, state.GameID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Transcript
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing transcript %s: %w", path, err)
	}
	return &t, nil
}

// ListTranscripts returns the game ids saved under dir.
func ListTranscripts(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return ids, nil
}
