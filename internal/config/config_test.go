package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.Solana.RPCURL)
	assert.Equal(t, 15*time.Second, cfg.Solana.Timeout)
	assert.Equal(t, 2, cfg.Solana.MaxRetries)
	assert.Equal(t, 25, cfg.Fetch.DefaultLimit)
	assert.Equal(t, 6, cfg.Fetch.FanOut)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.False(t, cfg.NATS.Enabled)
	assert.False(t, cfg.Neo4j.Enabled)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 10, cfg.API.RateBurst)
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  log_level: debug
solana:
  rpc_url: http://localhost:8899
  max_retries: 0
fetch:
  fan_out: 3
cache:
  backend: redis
  ttl: 5m
redis:
  addrs: ["redis-a:6379", "redis-b:6379"]
nats:
  enabled: true
api:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "http://localhost:8899", cfg.Solana.RPCURL)
	assert.Equal(t, 0, cfg.Solana.MaxRetries)
	assert.Equal(t, 3, cfg.Fetch.FanOut)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"redis-a:6379", "redis-b:6379"}, cfg.Redis.Addrs)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, 9000, cfg.API.Port)

	// Untouched keys keep defaults
	assert.Equal(t, 25, cfg.Fetch.DefaultLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "7070")
	t.Setenv("FETCH_FAN_OUT", "2")
	t.Setenv("SOLANA_RPC_URL", "http://rpc.internal")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/forensics")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.API.Port)
	assert.Equal(t, 2, cfg.Fetch.FanOut)
	assert.Equal(t, "http://rpc.internal", cfg.Solana.RPCURL)
	assert.Equal(t, "postgres://u:p@db/forensics", cfg.Postgres.DSN)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Solana: SolanaConfig{RPCURL: "http://rpc"},
			Cache:  CacheConfig{Backend: "memory"},
			API:    APIConfig{Port: 8080},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing rpc", func(c *Config) { c.Solana.RPCURL = "" }, true},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"redis without addrs", func(c *Config) { c.Cache.Backend = "redis" }, true},
		{"redis with addrs", func(c *Config) { c.Cache.Backend = "redis"; c.Redis.Addrs = []string{"r:6379"} }, false},
		{"cache disabled", func(c *Config) { c.Cache.Backend = "none" }, false},
		{"bad port", func(c *Config) { c.API.Port = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
