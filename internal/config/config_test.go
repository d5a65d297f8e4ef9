package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json", Output: []string{"stderr"}},
		Gemini:  GeminiConfig{Model: "gemini-2.5-flash", Timeout: 5 * time.Second},
		Pacing: PacingConfig{
			Roll: time.Second, StepsStart: 500 * time.Millisecond, Step: 400 * time.Millisecond,
			Spin: 2 * time.Second, LeapStart: time.Second, LeapStep: 200 * time.Millisecond,
			Hazard: 800 * time.Millisecond, FactDisplay: 4 * time.Second,
		},
		Game: GameConfig{Difficulty: "EASY", SaveDir: ".saves"},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestDefault(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"steps-and-leaps.log"}, cfg.Logging.Output)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.False(t, cfg.Gemini.Enabled())
	assert.Equal(t, 400*time.Millisecond, cfg.Pacing.Step)
	assert.Equal(t, 4*time.Second, cfg.Pacing.FactDisplay)
	assert.Equal(t, board.Easy, cfg.Difficulty())
	assert.Equal(t, ".saves", cfg.Game.SaveDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
gemini:
  model: gemini-2.0-flash
  timeout: 2s
pacing:
  step: 0s
  fact_display: 1s
game:
  difficulty: hard
  computer_opponent: true
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 2*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Pacing.Step)
	assert.Equal(t, time.Second, cfg.Pacing.FactDisplay)
	assert.Equal(t, 2*time.Second, cfg.Pacing.Spin, "unset keys keep defaults")
	assert.Equal(t, board.Hard, cfg.Difficulty())
	assert.True(t, cfg.Game.ComputerOpponent)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("STEPS_GAME_DIFFICULTY", "HARD")
	t.Setenv("STEPS_LOGGING_LEVEL", "warn")

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
	assert.True(t, cfg.Gemini.Enabled())
	assert.Equal(t, board.Hard, cfg.Difficulty())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"output", func(c *Config) { c.Logging.Output = nil }, "logging.output"},
		{"model", func(c *Config) { c.Gemini.Model = "" }, "gemini.model"},
		{"timeout", func(c *Config) { c.Gemini.Timeout = 0 }, "gemini.timeout"},
		{"pacing", func(c *Config) { c.Pacing.Hazard = -time.Second }, "pacing.hazard"},
		{"difficulty", func(c *Config) { c.Game.Difficulty = "nightmare" }, "game.difficulty"},
		{"save dir", func(c *Config) { c.Game.SaveDir = "" }, "game.save_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Game.SaveDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "game.save_dir")
}

func TestValidate_PacingProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		d := time.Duration(rapid.Int64Range(-int64(time.Minute), int64(time.Minute)).Draw(rt, "step"))
		cfg.Pacing.Step = d
		err := cfg.Validate()
		if d < 0 {
			assert.Error(rt, err)
		} else {
			assert.NoError(rt, err)
		}
	})
}
