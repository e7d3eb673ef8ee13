// Package bootstrap builds engine collaborators from configuration. It is
// shared by the server and the command-line tools.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"solana-wallet-forensics/internal/cache"
	"solana-wallet-forensics/internal/config"
	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/forensics"
	"solana-wallet-forensics/internal/observability"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/solana"
)

// NewRPCClient creates the JSON-RPC client. Retries are counted per method.
func NewRPCClient(cfg config.SolanaConfig, logger *zap.Logger) *solana.HTTPClient {
	opts := []solana.ClientOption{
		solana.WithMaxRetries(cfg.MaxRetries),
		solana.WithRetryHook(func(method string, attempt int, err error) {
			observability.RecordRPCRetry(method)
			logger.Debug("retrying rpc call",
				zap.String("method", method),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, solana.WithTimeout(cfg.Timeout))
	}
	if cfg.RetryDelay > 0 {
		opts = append(opts, solana.WithRetryDelay(cfg.RetryDelay))
	}
	if cfg.MaxDelay > 0 {
		opts = append(opts, solana.WithMaxDelay(cfg.MaxDelay))
	}
	return solana.NewHTTPClient(cfg.RPCURL, opts...)
}

// NewCache creates the fetch cache selected by cfg.Cache.Backend. The
// returned cache is nil for backend "none". close releases connections.
func NewCache(ctx context.Context, cfg *config.Config) (c cache.Cache, close func(), err error) {
	switch cfg.Cache.Backend {
	case "none":
		return nil, func() {}, nil
	case "memory":
		return cache.NewMemory(), func() {}, nil
	case "redis":
		client, err := cache.Dial(ctx, cfg.Redis.Addrs, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedis(client, cfg.Redis.KeyPrefix), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// NewFetcher creates the RPC-backed fetcher, wrapped in a cache when c is
// not nil.
func NewFetcher(rpc solana.RPCClient, reg *registry.Registry, c cache.Cache, cfg *config.Config, logger *zap.Logger) fetcher.Fetcher {
	var f fetcher.Fetcher = fetcher.NewRPCFetcher(rpc, reg,
		fetcher.WithFanOut(cfg.Fetch.FanOut),
		fetcher.WithLogger(logger.With(zap.String("component", "fetcher"))),
	)
	if c != nil {
		f = fetcher.NewCachedFetcher(f, c, cfg.Cache.TTL, logger.With(zap.String("component", "cache")))
	}
	return f
}

// EngineConfig maps fetch settings onto engine settings. Zero values keep
// engine defaults.
func EngineConfig(cfg config.FetchConfig) forensics.Config {
	ec := forensics.DefaultConfig()
	if cfg.DefaultLimit > 0 {
		ec.DefaultLimit = cfg.DefaultLimit
	}
	if cfg.FanOut > 0 {
		ec.FanOut = cfg.FanOut
	}
	if cfg.MaxScanAddresses > 0 {
		ec.MaxScanAddresses = cfg.MaxScanAddresses
	}
	if cfg.DefaultHops > 0 {
		ec.DefaultHops = cfg.DefaultHops
	}
	return ec
}
