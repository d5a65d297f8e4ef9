// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output lists zap sink paths. The TUI owns stdout, so the default is a file.
	Output []string `mapstructure:"output"`
}

// GeminiConfig configures the fact service. An empty APIKey disables facts.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a fact service should be built.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// PacingConfig holds the presentation delays between turn steps. Zero
// disables a delay; the game rules do not depend on any of them.
type PacingConfig struct {
	Roll        time.Duration `mapstructure:"roll"`
	StepsStart  time.Duration `mapstructure:"steps_start"`
	Step        time.Duration `mapstructure:"step"`
	Spin        time.Duration `mapstructure:"spin"`
	LeapStart   time.Duration `mapstructure:"leap_start"`
	LeapStep    time.Duration `mapstructure:"leap_step"`
	Hazard      time.Duration `mapstructure:"hazard"`
	FactDisplay time.Duration `mapstructure:"fact_display"`
}

// GameConfig holds table defaults.
type GameConfig struct {
	Difficulty string `mapstructure:"difficulty"`
	SaveDir    string `mapstructure:"save_dir"`
	// ComputerOpponent lets the TUI play seat two by issuing its intents.
	ComputerOpponent bool `mapstructure:"computer_opponent"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Pacing  PacingConfig  `mapstructure:"pacing"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", c.Logging.Format))
	}
	if len(c.Logging.Output) == 0 {
		errs = append(errs, "logging.output must not be empty")
	}

	if c.Gemini.Model == "" {
		errs = append(errs, "gemini.model must not be empty")
	}
	if c.Gemini.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("gemini.timeout must be > 0, got %s", c.Gemini.Timeout))
	}

	pacing := map[string]time.Duration{
		"roll": c.Pacing.Roll, "steps_start": c.Pacing.StepsStart, "step": c.Pacing.Step,
		"spin": c.Pacing.Spin, "leap_start": c.Pacing.LeapStart, "leap_step": c.Pacing.LeapStep,
		"hazard": c.Pacing.Hazard, "fact_display": c.Pacing.FactDisplay,
	}
	for _, name := range []string{"roll", "steps_start", "step", "spin", "leap_start", "leap_step", "hazard", "fact_display"} {
		if pacing[name] < 0 {
			errs = append(errs, fmt.Sprintf("pacing.%s must not be negative", name))
		}
	}

	if _, err := board.ParseDifficulty(c.Game.Difficulty); err != nil {
		errs = append(errs, fmt.Sprintf("game.difficulty: %v", err))
	}
	if c.Game.SaveDir == "" {
		errs = append(errs, "game.save_dir must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Difficulty returns the parsed default difficulty.
//
// Precondition: c passed Validate.
func (c Config) Difficulty() board.Difficulty {
	d, _ := board.ParseDifficulty(c.Game.Difficulty)
	return d
}

// Load reads configuration from path (skipped when empty), applies environment
// variable overrides, and validates the result.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// Default returns the configuration with no file, honoring environment overrides.
func Default() (Config, error) {
	return Load("")
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with STEPS_ prefix
	v.SetEnvPrefix("STEPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("gemini.api_key", "STEPS_GEMINI_API_KEY", "GEMINI_API_KEY")

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", []string{"steps-and-leaps.log"})

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", "5s")

	v.SetDefault("pacing.roll", "1s")
	v.SetDefault("pacing.steps_start", "500ms")
	v.SetDefault("pacing.step", "400ms")
	v.SetDefault("pacing.spin", "2s")
	v.SetDefault("pacing.leap_start", "1s")
	v.SetDefault("pacing.leap_step", "200ms")
	v.SetDefault("pacing.hazard", "800ms")
	v.SetDefault("pacing.fact_display", "4s")

	v.SetDefault("game.difficulty", "EASY")
	v.SetDefault("game.save_dir", ".saves")
	v.SetDefault("game.computer_opponent", false)
}
