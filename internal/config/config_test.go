package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := &Config{}
	cmd := NewCommand("test", "test", cfg, func(*cobra.Command, *Config) error { return nil })
	cmd.SetArgs(append([]string{}, args...))
	return cfg, cmd.Execute()
}

func TestDefaults(t *testing.T) {
	cfg, err := execute(t)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.RedisTTL)
	assert.Equal(t, 50, cfg.HistoryCap)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.False(t, cfg.AutoAdvance)
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("DIALECT_STORE", "redis")
	t.Setenv("DIALECT_REDIS_ADDR", "cache:6379")
	t.Setenv("DIALECT_CHAT_BURST", "9")

	cfg, err := execute(t, "--port", "9000", "--auto-advance", "--history_cap", "10")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 9, cfg.ChatBurst)
	assert.Equal(t, 10, cfg.HistoryCap)
	assert.True(t, cfg.AutoAdvance)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: 8080, Store: StoreMemory, TickInterval: time.Second, HistoryCap: 50, ChatRate: 1, ChatBurst: 5}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"port zero", func(c *Config) { c.Port = 0 }, false},
		{"port too high", func(c *Config) { c.Port = 70000 }, false},
		{"unknown store", func(c *Config) { c.Store = "etcd" }, false},
		{"redis without addr", func(c *Config) { c.Store = StoreRedis }, false},
		{"redis with addr", func(c *Config) { c.Store, c.RedisAddr = StoreRedis, "localhost:6379" }, true},
		{"mongo without db", func(c *Config) { c.Store, c.MongoURI = StoreMongo, "mongodb://x" }, false},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, false},
		{"zero history", func(c *Config) { c.HistoryCap = 0 }, false},
		{"zero burst", func(c *Config) { c.ChatBurst = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}

func TestInvalidConfigFailsCommand(t *testing.T) {
	_, err := execute(t, "--store", "etcd")
	assert.ErrorContains(t, err, "unknown store")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DIALECT_TEST_ONLY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DIALECT_TEST_ONLY") })

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "from-file", os.Getenv("DIALECT_TEST_ONLY"))
}
