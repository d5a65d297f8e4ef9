package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tatianab/steps-and-leaps/internal/config"
	"github.com/tatianab/steps-and-leaps/internal/dice"
	"github.com/tatianab/steps-and-leaps/internal/engine"
	"github.com/tatianab/steps-and-leaps/internal/facts"
	"github.com/tatianab/steps-and-leaps/internal/observability"
	"github.com/tatianab/steps-and-leaps/internal/tui"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var service facts.Service = facts.Disabled{}
	if cfg.Gemini.Enabled() {
		gemini, err := facts.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("fact service unavailable", zap.Error(err))
		} else {
			defer gemini.Close()
			service = gemini
		}
	} else {
		logger.Info("no Gemini API key configured, fun facts disabled")
	}

	eng := engine.New(engine.Options{
		Roller:      dice.NewRoller(dice.NewCryptoSource(), logger),
		Facts:       service,
		FactTimeout: cfg.Gemini.Timeout,
		Pacing:      cfg.Pacing,
		Logger:      logger,
	})

	err = tui.Run(eng, tui.Options{
		Difficulty: cfg.Difficulty(),
		SaveDir:    cfg.Game.SaveDir,
		Computer:   cfg.Game.ComputerOpponent,
		Logger:     logger,
	})
	if err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
