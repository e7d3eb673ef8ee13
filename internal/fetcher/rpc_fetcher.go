package fetcher

import (
	"context"
	"math/big"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/observability"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/solana"
)

// RPCFetcher implements Fetcher on top of a Solana JSON-RPC client.
type RPCFetcher struct {
	rpc      solana.RPCClient
	registry *registry.Registry
	fanOut   int
	logger   *zap.Logger
}

// Option configures RPCFetcher.
type Option func(*RPCFetcher)

// WithFanOut bounds concurrent getTransaction calls per wallet.
func WithFanOut(n int) Option {
	return func(f *RPCFetcher) {
		if n > 0 {
			f.fanOut = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *RPCFetcher) {
		f.logger = l
	}
}

// NewRPCFetcher creates a fetcher backed by rpc.
func NewRPCFetcher(rpc solana.RPCClient, reg *registry.Registry, opts ...Option) *RPCFetcher {
	f := &RPCFetcher{
		rpc:      rpc,
		registry: reg,
		fanOut:   DefaultFanOut,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchTransactions implements Fetcher.
// Signatures are listed first, then transaction details are fetched with a
// bounded fan-out. A detail fetch that fails keeps the signature-level data
// and marks the transaction Partial.
func (f *RPCFetcher) FetchTransactions(ctx context.Context, address string, limit int) ([]domain.Transaction, error) {
	limit = ClampLimit(limit)

	start := time.Now()
	sigs, err := f.rpc.GetSignaturesForAddress(ctx, address, &solana.SignaturesOpts{Limit: limit})
	observability.RecordRPCCall("getSignaturesForAddress", time.Since(start).Seconds(), err)
	if err != nil {
		err = classify("list signatures", address, err)
		observability.RecordFetchError("transactions", ErrorClass(err))
		return nil, err
	}
	if len(sigs) > limit {
		sigs = sigs[:limit]
	}

	txs := make([]domain.Transaction, len(sigs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.fanOut)

	for i, sig := range sigs {
		g.Go(func() error {
			start := time.Now()
			tx, err := f.rpc.GetTransaction(gctx, sig.Signature)
			observability.RecordRPCCall("getTransaction", time.Since(start).Seconds(), err)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				f.logger.Debug("transaction detail unavailable, keeping signature only",
					zap.String("wallet", address),
					zap.String("signature", sig.Signature),
					zap.Error(err))
				observability.RecordPartialTransaction()
				txs[i] = partialTransaction(sig)
				return nil
			}
			if tx == nil {
				txs[i] = partialTransaction(sig)
				return nil
			}
			txs[i] = normalizeTransaction(address, sig, tx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return txs, nil
}

// partialTransaction keeps what the signature listing already told us.
func partialTransaction(sig solana.SignatureInfo) domain.Transaction {
	return domain.Transaction{
		Signature: sig.Signature,
		Slot:      sig.Slot,
		BlockTime: sig.BlockTime,
		Failed:    sig.Err != nil,
		Partial:   true,
	}
}

// normalizeTransaction converts a raw transaction into the subject's view:
// counterparts are every account key except the subject and invoked programs,
// deduplicated in key order. Token accounts are replaced by their owning
// wallet, and token accounts the subject owns are dropped.
func normalizeTransaction(subject string, sig solana.SignatureInfo, tx *solana.Transaction) domain.Transaction {
	out := domain.Transaction{
		Signature: sig.Signature,
		Slot:      tx.Slot,
		BlockTime: tx.BlockTime,
		Programs:  tx.ProgramIDs(),
		Failed:    sig.Err != nil || (tx.Meta != nil && tx.Meta.Err != nil),
	}
	if out.BlockTime == nil {
		out.BlockTime = sig.BlockTime
	}
	if out.Slot == 0 {
		out.Slot = sig.Slot
	}

	programs := make(map[string]bool, len(out.Programs))
	for _, p := range out.Programs {
		programs[p] = true
	}

	var owners map[string]string
	if tx.Meta != nil {
		owners = tx.Meta.TokenOwners
	}

	seen := make(map[string]bool)
	for _, key := range tx.AllAccountKeys() {
		if owner, ok := owners[key]; ok {
			key = owner
		}
		if key == subject || programs[key] || seen[key] {
			continue
		}
		seen[key] = true
		out.Counterparts = append(out.Counterparts, key)
	}

	return out
}

// FetchTokenBalances implements Fetcher.
func (f *RPCFetcher) FetchTokenBalances(ctx context.Context, address string) ([]domain.TokenHolding, error) {
	start := time.Now()
	accounts, err := f.rpc.GetTokenAccountsByOwner(ctx, address, registry.TokenProgram)
	observability.RecordRPCCall("getTokenAccountsByOwner", time.Since(start).Seconds(), err)
	if err != nil {
		err = classify("list token accounts", address, err)
		observability.RecordFetchError("tokens", ErrorClass(err))
		return nil, err
	}

	holdings := make([]domain.TokenHolding, 0, len(accounts))
	for _, acc := range accounts {
		amount, ok := tokenAmount(acc)
		if !ok || !amount.IsPositive() {
			continue
		}

		h := domain.TokenHolding{
			Mint:     acc.Mint,
			Amount:   amount,
			Decimals: acc.Decimals,
		}
		if e, ok := f.registry.Classify(acc.Mint); ok {
			h.Label = e.Label
			h.Category = e.Category
		}
		holdings = append(holdings, h)
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].Amount.GreaterThan(holdings[j].Amount)
	})

	return holdings, nil
}

// tokenAmount prefers the node's decimal string and falls back to shifting
// the raw integer amount by the mint decimals.
func tokenAmount(acc solana.TokenAccount) (decimal.Decimal, bool) {
	if acc.UIAmountString != "" {
		d, err := decimal.NewFromString(acc.UIAmountString)
		return d, err == nil
	}
	if acc.Amount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(acc.Amount)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Shift(-int32(acc.Decimals)), true
}

// FetchBalance implements Fetcher.
func (f *RPCFetcher) FetchBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	start := time.Now()
	lamports, err := f.rpc.GetBalance(ctx, address)
	observability.RecordRPCCall("getBalance", time.Since(start).Seconds(), err)
	if err != nil {
		err = classify("get balance", address, err)
		observability.RecordFetchError("balance", ErrorClass(err))
		return decimal.Zero, err
	}
	return LamportsToSOL(lamports), nil
}

// LamportsToSOL converts a lamport amount into SOL.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -9)
}

var _ Fetcher = (*RPCFetcher)(nil)
