package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/cache"
	"solana-wallet-forensics/internal/config"
	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/forensics"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/solana/stub"
)

func TestEngineConfig(t *testing.T) {
	assert.Equal(t, forensics.DefaultConfig(), EngineConfig(config.FetchConfig{}))

	ec := EngineConfig(config.FetchConfig{DefaultLimit: 10, FanOut: 3, MaxScanAddresses: 7, DefaultHops: 1})
	assert.Equal(t, 10, ec.DefaultLimit)
	assert.Equal(t, 3, ec.FanOut)
	assert.Equal(t, 7, ec.MaxScanAddresses)
	assert.Equal(t, 1, ec.DefaultHops)
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	c, closeFn, err := NewCache(ctx, &config.Config{Cache: config.CacheConfig{Backend: "memory"}})
	require.NoError(t, err)
	assert.IsType(t, &cache.Memory{}, c)
	closeFn()

	c, closeFn, err = NewCache(ctx, &config.Config{Cache: config.CacheConfig{Backend: "none"}})
	require.NoError(t, err)
	assert.Nil(t, c)
	closeFn()

	_, _, err = NewCache(ctx, &config.Config{Cache: config.CacheConfig{Backend: "disk"}})
	assert.Error(t, err)
}

func TestNewFetcher(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{TTL: time.Minute}, Fetch: config.FetchConfig{FanOut: 2}}
	rpc := stub.NewRPCClient()
	reg := registry.Default()

	f := NewFetcher(rpc, reg, nil, cfg, zap.NewNop())
	assert.IsType(t, &fetcher.RPCFetcher{}, f)

	f = NewFetcher(rpc, reg, cache.NewMemory(), cfg, zap.NewNop())
	assert.IsType(t, &fetcher.CachedFetcher{}, f)
}

func TestNewRPCClient(t *testing.T) {
	client := NewRPCClient(config.SolanaConfig{RPCURL: "http://localhost:8899", MaxRetries: 1, Timeout: time.Second}, zap.NewNop())
	assert.NotNil(t, client)
}
