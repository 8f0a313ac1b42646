package main

import (
	"context"
	"dialectgame/internal/config"
	"dialectgame/internal/game"
	"dialectgame/internal/logger"
	"dialectgame/internal/repository"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seed loads the built-in vocabulary into MongoDB so it can be extended in place
func main() {
	config.LoadDotEnv()

	cfg := &config.Config{}
	cmd := config.NewCommand("seed", "Load the built-in vocabulary into MongoDB.", cfg, run)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	if err := logger.Setup(cfg.LogLevel, true); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer client.Disconnect(context.Background())

	vocab := repository.NewVocabRepo(client.Database(cfg.MongoDB))
	if err := vocab.EnsureIndexes(ctx); err != nil {
		return err
	}

	bank := game.DefaultBank()
	inserted, err := vocab.Upsert(ctx, bank)
	if err != nil {
		return err
	}
	total, err := vocab.Count(ctx)
	if err != nil {
		return err
	}

	log.Info().Int("entries", len(bank)).Int64("inserted", inserted).Int64("total", total).Str("db", cfg.MongoDB).Msg("vocabulary seeded")
	return nil
}
