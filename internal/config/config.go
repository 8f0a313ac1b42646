package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "DIALECT"

// Storage backends for room snapshots and history
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config holds everything the server needs at startup
type Config struct {
	Bind         string
	Port         int
	Store        string
	RedisAddr    string
	RedisTTL     time.Duration
	MongoURI     string
	MongoDB      string
	TickInterval time.Duration
	HistoryCap   int
	ChatRate     float64 // messages per second per player
	ChatBurst    int
	AutoAdvance  bool
	CORSOrigins  string
	LogLevel     string
	Verbose      bool
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("--redis-addr is required with --store=redis")
		}
	case StoreMongo:
		if c.MongoURI == "" || c.MongoDB == "" {
			return errors.New("--mongo-uri and --mongo-db are required with --store=mongo")
		}
	default:
		return fmt.Errorf("unknown store %q (want memory, redis or mongo)", c.Store)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive: %s", c.TickInterval)
	}
	if c.HistoryCap < 1 {
		return fmt.Errorf("history cap must be at least 1: %d", c.HistoryCap)
	}
	if c.ChatRate <= 0 || c.ChatBurst < 1 {
		return errors.New("chat rate and burst must be positive")
	}
	return nil
}

// LoadDotEnv reads a .env file into the process environment if one exists
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			log.Warn().Err(err).Str("file", p).Msg("failed to load env file")
		}
	}
}

// NewCommand builds the root command. Every flag can also be set from the
// environment as DIALECT_<FLAG>, dashes replaced by underscores.
func NewCommand(use, short string, cfg *Config, run func(cmd *cobra.Command, cfg *Config) error) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: DIALECT_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: DIALECT_PORT)")
	fs.StringVar(&cfg.Store, "store", StoreMemory, "room store: memory, redis or mongo (env: DIALECT_STORE)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "localhost:6379", "redis address (env: DIALECT_REDIS_ADDR)")
	fs.DurationVar(&cfg.RedisTTL, "redis-ttl", 24*time.Hour, "expiry of room snapshots in redis (env: DIALECT_REDIS_TTL)")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "mongodb://localhost:27017", "mongodb connection string (env: DIALECT_MONGO_URI)")
	fs.StringVar(&cfg.MongoDB, "mongo-db", "dialectgame", "mongodb database name (env: DIALECT_MONGO_DB)")
	fs.DurationVar(&cfg.TickInterval, "tick-interval", 250*time.Millisecond, "how often timers are checked (env: DIALECT_TICK_INTERVAL)")
	fs.IntVar(&cfg.HistoryCap, "history-cap", 50, "finished games kept in history (env: DIALECT_HISTORY_CAP)")
	fs.Float64Var(&cfg.ChatRate, "chat-rate", 1, "chat messages per second per player (env: DIALECT_CHAT_RATE)")
	fs.IntVar(&cfg.ChatBurst, "chat-burst", 5, "chat messages a player may send at once (env: DIALECT_CHAT_BURST)")
	fs.BoolVar(&cfg.AutoAdvance, "auto-advance", false, "advance once every player has answered (env: DIALECT_AUTO_ADVANCE)")
	fs.StringVar(&cfg.CORSOrigins, "cors-origins", "*", "allowed CORS origins (env: DIALECT_CORS_ORIGINS)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level (env: DIALECT_LOG_LEVEL)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "human readable console logs (env: DIALECT_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
