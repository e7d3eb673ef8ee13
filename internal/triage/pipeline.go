// Package triage extracts addresses from evidence text and ranks them by risk.
package triage

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/extract"
	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/profile"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/risk"
)

// DefaultMaxAddresses caps how many extracted addresses are analysed.
const DefaultMaxAddresses = 50

// Config holds pipeline settings.
type Config struct {
	Limit        int // transactions sampled per address
	FanOut       int
	MaxAddresses int
}

// DefaultConfig returns the default pipeline settings.
func DefaultConfig() Config {
	return Config{
		Limit:        fetcher.DefaultLimit,
		FanOut:       fetcher.DefaultFanOut,
		MaxAddresses: DefaultMaxAddresses,
	}
}

// Pipeline runs fetch, profile and score for every address in a document.
type Pipeline struct {
	fetcher  fetcher.Fetcher
	registry *registry.Registry
	scorer   *risk.Scorer
	config   Config
	logger   *zap.Logger
}

// NewPipeline creates a triage pipeline.
func NewPipeline(f fetcher.Fetcher, reg *registry.Registry, scorer *risk.Scorer, cfg Config, logger *zap.Logger) *Pipeline {
	def := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.FanOut <= 0 {
		cfg.FanOut = def.FanOut
	}
	if cfg.MaxAddresses <= 0 {
		cfg.MaxAddresses = def.MaxAddresses
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fetcher:  f,
		registry: reg,
		scorer:   scorer,
		config:   cfg,
		logger:   logger,
	}
}

// Scan triages every address found in text. A failing address yields an
// error entry and never aborts the batch. Results are ordered by score
// descending with error entries last, stable on extraction order.
func (p *Pipeline) Scan(ctx context.Context, text string) (domain.ScanResult, error) {
	addresses := extract.Addresses(text)
	found := len(addresses)
	if len(addresses) > p.config.MaxAddresses {
		p.logger.Info("truncating scan",
			zap.Int("found", found),
			zap.Int("max", p.config.MaxAddresses))
		addresses = addresses[:p.config.MaxAddresses]
	}

	entries := make([]domain.ScanEntry, len(addresses))

	var g errgroup.Group
	g.SetLimit(p.config.FanOut)
	for i, addr := range addresses {
		g.Go(func() error {
			entries[i] = p.analyze(ctx, addr)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.ScanResult{}, err
	}

	analyzed := 0
	for i := range entries {
		if !entries[i].Failed() {
			analyzed++
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if a.Failed() {
			return false
		}
		return a.Risk.Score > b.Risk.Score
	})

	return domain.ScanResult{
		Found:    found,
		Analyzed: analyzed,
		Results:  entries,
	}, nil
}

func (p *Pipeline) analyze(ctx context.Context, addr string) domain.ScanEntry {
	txs, err := p.fetcher.FetchTransactions(ctx, addr, p.config.Limit)
	if err != nil {
		p.logger.Warn("scan fetch failed",
			zap.String("wallet", addr),
			zap.String("class", fetcher.ErrorClass(err)),
			zap.Error(err))
		return domain.ScanEntry{Wallet: addr, Error: err.Error()}
	}

	prof := profile.Build(addr, txs, p.registry)
	score := p.scorer.Score(prof)

	return domain.ScanEntry{
		Wallet:               addr,
		Risk:                 &score,
		TxCount:              prof.TxCount,
		UniqueCounterparties: prof.UniqueCounterparties,
	}
}
