// Package fetcher retrieves bounded, recency-ordered transaction samples and
// token balances for a wallet and normalises upstream payloads into domain
// types. Nothing outside this package sees raw RPC responses.
package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/solana"
)

// Sampling bounds.
const (
	MaxLimit      = 50
	DefaultLimit  = 25
	DefaultFanOut = 6
)

// Fetcher is the narrow interface to the chain data provider.
type Fetcher interface {
	// FetchTransactions returns up to limit transactions, most recent first.
	// limit is clamped into [1, MaxLimit].
	FetchTransactions(ctx context.Context, address string, limit int) ([]domain.Transaction, error)

	// FetchTokenBalances returns non-zero SPL token holdings, largest first.
	FetchTokenBalances(ctx context.Context, address string) ([]domain.TokenHolding, error)

	// FetchBalance returns the SOL balance of address.
	FetchBalance(ctx context.Context, address string) (decimal.Decimal, error)
}

// ClampLimit bounds a requested sample size into [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// classify maps RPC client failures onto the engine error taxonomy.
// Context cancellation is returned unchanged.
func classify(op, address string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, solana.ErrRateLimited):
		return fmt.Errorf("%s %s: %w: %w", op, address, domain.ErrRateLimited, err)
	default:
		return fmt.Errorf("%s %s: %w: %w", op, address, domain.ErrUpstreamUnavailable, err)
	}
}

// ErrorClass names the taxonomy bucket of err for metrics and logs.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline"
	default:
		return "other"
	}
}
