package forensics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/extract"
	"solana-wallet-forensics/internal/graph"
	"solana-wallet-forensics/internal/observability"
	"solana-wallet-forensics/internal/profile"
)

// TraceEdge is a 1-hop edge in a trace response.
type TraceEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// TraceResult is the 1-hop interaction graph of a wallet.
type TraceResult struct {
	Wallet               string      `json:"wallet"`
	Nodes                []string    `json:"nodes"`
	Edges                []TraceEdge `json:"edges"`
	TxCount              int         `json:"tx_count"`
	UniqueCounterparties int         `json:"unique_counterparties"`
}

// ReportResult is the full risk report of a wallet.
type ReportResult struct {
	Wallet          string               `json:"wallet"`
	Summary         string               `json:"summary"`
	Risk            domain.RiskScore     `json:"risk"`
	Profile         domain.WalletProfile `json:"profile"`
	Balance         *decimal.Decimal     `json:"balance,omitempty"`
	PumpFunActivity bool                 `json:"pumpfun_activity"`
	OnCurve         *bool                `json:"on_curve,omitempty"`
}

// TokensResult lists a wallet's non-zero token holdings.
type TokensResult struct {
	Wallet string                `json:"wallet"`
	Count  int                   `json:"count"`
	Tokens []domain.TokenHolding `json:"tokens"`
}

// ExtractResult lists the addresses found in a document.
type ExtractResult struct {
	Wallets []string `json:"wallets"`
	Count   int      `json:"count"`
}

// Trace builds the 1-hop graph of wallet.
func (e *Engine) Trace(ctx context.Context, wallet string, limit int) (res *TraceResult, err error) {
	start := time.Now()
	defer func() { finish(domain.AnalysisTrace, start, err) }()

	if err := domain.ValidateAddress(wallet); err != nil {
		return nil, err
	}

	txs, err := e.fetcher.FetchTransactions(ctx, wallet, e.limit(limit))
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", wallet, err)
	}

	prof := profile.Build(wallet, txs, e.registry)
	g := graph.Build(wallet, txs, e.registry)

	edges := make([]TraceEdge, 0, len(g.Edges))
	for _, edge := range g.Edges {
		edges = append(edges, TraceEdge{From: edge.From, To: edge.To, Count: edge.Count})
	}

	score := e.scorer.Score(prof)
	e.record(ctx, domain.AnalysisTrace, wallet, &score, "")

	return &TraceResult{
		Wallet:               wallet,
		Nodes:                g.Nodes,
		Edges:                edges,
		TxCount:              prof.TxCount,
		UniqueCounterparties: prof.UniqueCounterparties,
	}, nil
}

// Report profiles and scores wallet. The SOL balance is best effort.
func (e *Engine) Report(ctx context.Context, wallet string, limit int) (res *ReportResult, err error) {
	start := time.Now()
	defer func() { finish(domain.AnalysisReport, start, err) }()

	if err := domain.ValidateAddress(wallet); err != nil {
		return nil, err
	}

	var (
		txs     []domain.Transaction
		balance *decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = e.fetcher.FetchTransactions(gctx, wallet, e.limit(limit))
		return err
	})
	g.Go(func() error {
		bal, err := e.fetcher.FetchBalance(gctx, wallet)
		if err != nil {
			e.logger.Debug("balance unavailable", zap.String("wallet", wallet), zap.Error(err))
			return nil
		}
		balance = &bal
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report %s: %w", wallet, err)
	}

	prof := profile.Build(wallet, txs, e.registry)
	score := e.scorer.Score(prof)

	res = &ReportResult{
		Wallet:          wallet,
		Risk:            score,
		Profile:         prof,
		Balance:         balance,
		PumpFunActivity: e.pumpFunActivity(txs),
	}
	if decoded, err := domain.DecodeAddress(wallet); err == nil {
		res.OnCurve = &decoded.OnCurve
	}
	res.Summary = Summarize(res)

	e.record(ctx, domain.AnalysisReport, wallet, &score, res.Summary)

	return res, nil
}

func (e *Engine) pumpFunActivity(txs []domain.Transaction) bool {
	for i := range txs {
		for _, p := range txs[i].Programs {
			if e.registry.IsPumpFun(p) {
				return true
			}
		}
	}
	return false
}

// ScanFile extracts and triages every address in document.
func (e *Engine) ScanFile(ctx context.Context, document string) (res *domain.ScanResult, err error) {
	start := time.Now()
	defer func() { finish(domain.AnalysisScan, start, err) }()

	result, err := e.pipeline.Scan(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	observability.RecordScan(result.Found)

	e.record(ctx, domain.AnalysisScan, "", nil,
		fmt.Sprintf("found %d addresses, analyzed %d", result.Found, result.Analyzed))
	for i := range result.Results {
		entry := &result.Results[i]
		if entry.Failed() {
			continue
		}
		e.record(ctx, domain.AnalysisScan, entry.Wallet, entry.Risk, "")
	}

	return &result, nil
}

// MultiHop expands the interaction graph of wallet breadth first.
// hops <= 0 uses the configured default.
func (e *Engine) MultiHop(ctx context.Context, wallet string, hops, limit int) (res *domain.MultiHopGraph, err error) {
	start := time.Now()
	defer func() { finish(domain.AnalysisMultiHop, start, err) }()

	if err := domain.ValidateAddress(wallet); err != nil {
		return nil, err
	}
	if hops <= 0 {
		hops = e.config.DefaultHops
	}
	if limit <= 0 {
		limit = graph.MaxPerNodeLimit
	}

	g, err := e.expander.Expand(ctx, wallet, hops, limit)
	if err != nil {
		return nil, err
	}
	observability.RecordMultiHop(len(g.Nodes))

	if e.exporter != nil {
		if err := e.exporter.ExportMultiHop(ctx, g); err != nil {
			e.logger.Warn("graph export failed", zap.String("wallet", wallet), zap.Error(err))
		}
	}

	e.record(ctx, domain.AnalysisMultiHop, wallet, nil,
		fmt.Sprintf("%d nodes, %d edges over %d hops", len(g.Nodes), len(g.Edges), g.MaxHops))

	return &g, nil
}

// Tokens lists the non-zero SPL token holdings of wallet.
func (e *Engine) Tokens(ctx context.Context, wallet string) (res *TokensResult, err error) {
	start := time.Now()
	defer func() { finish(domain.AnalysisTokens, start, err) }()

	if err := domain.ValidateAddress(wallet); err != nil {
		return nil, err
	}

	holdings, err := e.fetcher.FetchTokenBalances(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("tokens %s: %w", wallet, err)
	}

	e.record(ctx, domain.AnalysisTokens, wallet, nil, fmt.Sprintf("%d token holdings", len(holdings)))

	return &TokensResult{
		Wallet: wallet,
		Count:  len(holdings),
		Tokens: holdings,
	}, nil
}

// Extract returns the addresses found in text without analysing them.
func (e *Engine) Extract(text string) *ExtractResult {
	wallets := extract.Addresses(text)
	return &ExtractResult{Wallets: wallets, Count: len(wallets)}
}
