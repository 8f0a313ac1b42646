package main

import (
	"context"
	"dialectgame/internal/cache"
	"dialectgame/internal/config"
	"dialectgame/internal/game"
	"dialectgame/internal/logger"
	"dialectgame/internal/persist"
	"dialectgame/internal/repository"
	"dialectgame/internal/service"
	"dialectgame/internal/transport/rest"
	"dialectgame/internal/transport/rest/middleware"
	"dialectgame/internal/transport/ws"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &config.Config{}
	cmd := config.NewCommand("dialectgame", "Local multiplayer language game server.", cfg, serve)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// backend is the storage chosen by --store
type backend struct {
	store       persist.Store
	questions   service.QuestionSource
	leaderboard cache.LeaderboardCache
	archive     service.Archive
	close       func()
}

func serve(cmd *cobra.Command, cfg *config.Config) error {
	if err := logger.Setup(cfg.LogLevel, cfg.Verbose); err != nil {
		return err
	}
	ctx := cmd.Context()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	// Initialize WebSocket hub
	wsHub := ws.NewHub()

	// Initialize services
	gameSvc := service.NewGameService(persist.NewAdapter(b.store, cfg.HistoryCap), b.questions, service.Options{
		ChatRate:    rate.Limit(cfg.ChatRate),
		ChatBurst:   cfg.ChatBurst,
		AutoAdvance: cfg.AutoAdvance,
	})
	gameSvc.SetBroadcaster(wsHub)
	if b.leaderboard != nil {
		gameSvc.SetLeaderboard(b.leaderboard)
	}
	if b.archive != nil {
		gameSvc.SetArchive(b.archive)
	}

	go gameSvc.Run(ctx, cfg.TickInterval)

	router := rest.NewRouter(&rest.Container{
		GameService: gameSvc,
		WSHub:       wsHub,
		CORS:        middleware.CORSConfig{AllowedOrigins: cfg.CORSOrigins},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store {
	case config.StoreRedis:
		rdb, err := connectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:       cache.NewRedisStore(rdb, cfg.RedisTTL),
			questions:   game.NewGenerator(game.DefaultBank(), nil),
			leaderboard: cache.NewLeaderboardCache(rdb, cfg.RedisTTL),
			close:       func() { rdb.Close() },
		}, nil

	case config.StoreMongo:
		client, err := connectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDB)

		results := repository.NewResultsRepo(db)
		vocab := repository.NewVocabRepo(db)
		if err := results.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to create results indexes")
		}
		if err := vocab.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to create vocabulary indexes")
		}

		return &backend{
			store:     repository.NewMongoStore(db),
			questions: service.NewVocabQuestions(vocab),
			archive:   results,
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				client.Disconnect(disconnectCtx)
			},
		}, nil
	}

	return &backend{
		store:     persist.NewMemoryStore(),
		questions: game.NewGenerator(game.DefaultBank(), nil),
		close:     func() {},
	}, nil
}

func connectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	// Remove redis:// prefix if present
	addr = strings.TrimPrefix(addr, "redis://")

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	log.Info().Str("addr", addr).Msg("connected to redis")
	return rdb, nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	log.Info().Msg("connected to mongodb")
	return client, nil
}
