package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/cache"
	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/observability"
)

// DefaultCacheTTL bounds the staleness of cached fetch results.
const DefaultCacheTTL = 60 * time.Second

// CachedFetcher decorates a Fetcher with a short-lived cache keyed by
// (address, limit). Errors are never cached and cache failures only bypass
// the cache.
type CachedFetcher struct {
	next   Fetcher
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFetcher wraps next. A non-positive ttl disables caching.
func NewCachedFetcher(next Fetcher, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{next: next, cache: c, ttl: ttl, logger: logger}
}

func (f *CachedFetcher) lookup(ctx context.Context, kind, key string, dst interface{}) bool {
	if f.ttl <= 0 {
		return false
	}
	hit, err := f.cache.Get(ctx, key, dst)
	if err != nil {
		f.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	observability.RecordCacheLookup(kind, hit)
	return hit
}

func (f *CachedFetcher) store(ctx context.Context, key string, v interface{}) {
	if f.ttl <= 0 {
		return
	}
	if err := f.cache.Set(ctx, key, v, f.ttl); err != nil {
		f.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// FetchTransactions implements Fetcher.
func (f *CachedFetcher) FetchTransactions(ctx context.Context, address string, limit int) ([]domain.Transaction, error) {
	limit = ClampLimit(limit)
	key := fmt.Sprintf("txs:%s:%d", address, limit)

	var txs []domain.Transaction
	if f.lookup(ctx, "transactions", key, &txs) {
		return txs, nil
	}

	txs, err := f.next.FetchTransactions(ctx, address, limit)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, txs)
	return txs, nil
}

// FetchTokenBalances implements Fetcher.
func (f *CachedFetcher) FetchTokenBalances(ctx context.Context, address string) ([]domain.TokenHolding, error) {
	key := "tokens:" + address

	var holdings []domain.TokenHolding
	if f.lookup(ctx, "tokens", key, &holdings) {
		return holdings, nil
	}

	holdings, err := f.next.FetchTokenBalances(ctx, address)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, holdings)
	return holdings, nil
}

// FetchBalance implements Fetcher.
func (f *CachedFetcher) FetchBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	key := "balance:" + address

	var balance decimal.Decimal
	if f.lookup(ctx, "balance", key, &balance) {
		return balance, nil
	}

	balance, err := f.next.FetchBalance(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	f.store(ctx, key, balance)
	return balance, nil
}

var _ Fetcher = (*CachedFetcher)(nil)
