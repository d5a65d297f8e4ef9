// Command simulate plays Steps & Leaps against itself without a terminal UI.
// Both seats are driven through the same intents the TUI uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/tatianab/steps-and-leaps/internal/board"
	"github.com/tatianab/steps-and-leaps/internal/config"
	"github.com/tatianab/steps-and-leaps/internal/dice"
	"github.com/tatianab/steps-and-leaps/internal/engine"
	"github.com/tatianab/steps-and-leaps/internal/models"
	"github.com/tatianab/steps-and-leaps/internal/observability"
)

// maxTurns stops a game that somehow never ends.
const maxTurns = 1000

func main() {
	games := flag.Int("games", 100, "number of games to play")
	seed := flag.Uint64("seed", 0, "random seed (0 = pick one)")
	difficulty := flag.String("difficulty", string(board.Easy), "board difficulty: EASY or HARD")
	saveDir := flag.String("save", "", "directory to save game transcripts into (optional)")
	verbose := flag.Bool("v", false, "print every game log")
	list := flag.String("list", "", "print the transcripts saved in a directory and exit")
	flag.Parse()

	if *list != "" {
		if err := listTranscripts(*list); err != nil {
			log.Fatalf("Failed to list transcripts: %v", err)
		}
		return
	}

	d, err := board.ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatalf("Invalid difficulty: %v", err)
	}

	if *seed == 0 {
		if *seed, err = dice.NewSeed(); err != nil {
			log.Fatalf("Failed to pick a seed: %v", err)
		}
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(config.LoggingConfig{Level: level, Format: "console", Output: []string{"stderr"}})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	eng := engine.New(engine.Options{
		Roller: dice.NewRoller(dice.NewSeededSource(*seed), logger),
		Logger: logger,
	})

	setup := engine.Setup{P1Name: "Player 1", P2Name: "Player 2", Difficulty: d}
	if err := eng.StartGame(setup); err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	fmt.Printf("--- Simulating %d %s games (seed %d) ---\n", *games, d.Label(), *seed)

	ctx := context.Background()
	var wins [2]int
	totalTurns := 0
	for g := 1; g <= *games; g++ {
		if g > 1 && !eng.Reset() {
			log.Fatalf("Game %d: reset rejected in %s", g, eng.Snapshot().Phase)
		}
		turns, err := play(ctx, eng)
		if err != nil {
			log.Fatalf("Game %d: %v", g, err)
		}
		state := eng.Snapshot()
		wins[state.Winner-1]++
		totalTurns += turns

		if *verbose {
			fmt.Printf("--- Game %d: %s ---\n", g, eng)
			for _, line := range state.Log {
				fmt.Println(line)
			}
			fmt.Println()
		}
		if *saveDir != "" {
			path, err := models.SaveTranscript(*saveDir, state)
			if err != nil {
				logger.Warn("saving transcript", zap.Error(err))
			} else if *verbose {
				fmt.Printf("Saved %s\n", path)
			}
		}
	}

	state := eng.Snapshot()
	for i, p := range state.Players {
		fmt.Printf("%s: %d wins (%.1f%%)\n", p.Name, wins[i], 100*float64(wins[i])/float64(*games))
	}
	fmt.Printf("Mean turns per game: %.1f\n", float64(totalTurns)/float64(*games))
}

// listTranscripts prints one line per saved game in dir.
func listTranscripts(dir string) error {
	ids, err := models.ListTranscripts(dir)
	if err != nil {
		return err
	}
	for _, id := range ids {
		t, err := models.LoadTranscript(filepath.Join(dir, id+".yaml"))
		if err != nil {
			return err
		}
		winner := "nobody"
		if t.Winner != models.NoSeat {
			winner = t.Players[t.Winner-1].Name
		}
		fmt.Printf("%s  %s  %s  winner=%s  %d log lines\n",
			t.SavedAt.Format(time.DateTime), t.GameID, t.Difficulty, winner, len(t.Log))
	}
	fmt.Printf("%d saved games in %s\n", len(ids), dir)
	return nil
}

// play drives the current game to GAME_OVER and returns the number of turns taken.
func play(ctx context.Context, eng *engine.Engine) (int, error) {
	turns := 0
	for turns < maxTurns {
		switch phase := eng.Snapshot().Phase; phase {
		case models.PhaseGameOver:
			return turns, nil
		case models.PhaseRollDice:
			turns++
			if !eng.RollDice(ctx) {
				return turns, fmt.Errorf("roll rejected in %s", phase)
			}
		case models.PhaseSpinWheel:
			if !eng.Spin(ctx) {
				return turns, fmt.Errorf("spin rejected in %s", phase)
			}
		default:
			return turns, fmt.Errorf("unexpected phase %s", phase)
		}
	}
	return turns, fmt.Errorf("no winner after %d turns", maxTurns)
}
