// Command landlord-sim plays bot-only landlord games offline and keeps a
// SQLite scoreboard of the results.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"landlord/internal/bot"
	"landlord/internal/config"
	"landlord/internal/history"
	"landlord/internal/sim"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("landlord-sim", pflag.ContinueOnError)
	games := flags.IntP("games", "n", 100, "number of games to play")
	seed := flags.Int64("seed", 1, "random seed for shuffles and seating")
	dbPath := flags.String("db", getEnv("LANDLORD_SIM_DB", "data/sim.db"), "SQLite results database (\":memory:\" to discard)")
	configPath := flags.String("config", getEnv("LANDLORD_CONFIG", "data/game_config.json"), "game config file")
	identitiesPath := flags.String("bots", "data/bot_identities.json", "bot identity pool")
	debug := flags.Bool("debug", os.Getenv("LOG_LEVEL") == "debug", "log every public event")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	var (
		logger *zap.Logger
		err    error
	)
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	cfg := config.Default()
	if err := config.LoadGameConfig(*configPath); err != nil {
		logger.Warn("using default game config", zap.String("path", *configPath), zap.Error(err))
	} else {
		cfg = config.GetGameConfig()
	}
	if err := bot.LoadIdentities(*identitiesPath); err != nil {
		logger.Warn("using generated bot identities", zap.Error(err))
	}

	store, err := history.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open results database %s: %w", *dbPath, err)
	}
	defer store.Close()

	runner, err := sim.NewRunner(cfg, *seed, store, logger)
	if err != nil {
		return fmt.Errorf("failed to seat bots: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulation started",
		zap.Int("games", *games),
		zap.Int64("seed", *seed),
		zap.Strings("players", runner.Players()))

	played := 0
	for ; played < *games; played++ {
		if _, err := runner.PlayGame(ctx); err != nil {
			logger.Error("game failed", zap.Int("game", played+1), zap.Error(err))
			break
		}
	}

	totals, err := store.Totals(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read totals: %w", err)
	}
	logger.Info("simulation finished", zap.Int("played", played))
	for _, t := range totals {
		fmt.Printf("%-24s games=%-5d wins=%-5d score=%d\n", bot.GetBotDisplayName(t.UserID)+" ("+t.UserID+")", t.Games, t.Wins, t.Score)
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
