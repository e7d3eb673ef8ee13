// Package forensics composes fetching, profiling, scoring and graph
// expansion into the wallet forensics operations exposed to callers.
package forensics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/alert"
	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/graph"
	"solana-wallet-forensics/internal/graphstore"
	"solana-wallet-forensics/internal/observability"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/risk"
	"solana-wallet-forensics/internal/storage"
	"solana-wallet-forensics/internal/storage/memory"
	"solana-wallet-forensics/internal/triage"
)

// Config holds engine settings.
type Config struct {
	DefaultLimit     int
	FanOut           int
	MaxScanAddresses int
	DefaultHops      int
}

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:     fetcher.DefaultLimit,
		FanOut:           fetcher.DefaultFanOut,
		MaxScanAddresses: triage.DefaultMaxAddresses,
		DefaultHops:      graph.DefaultHops,
	}
}

// Deps are the engine collaborators. Fetcher and Registry are required;
// the rest default to in-memory or no-op implementations.
type Deps struct {
	Fetcher   fetcher.Fetcher
	Registry  *registry.Registry
	Scorer    *risk.Scorer
	Audit     storage.AnalysisStore
	Publisher alert.Publisher
	Exporter  graphstore.Exporter
	Logger    *zap.Logger
}

// Engine implements the wallet forensics operations.
type Engine struct {
	fetcher   fetcher.Fetcher
	registry  *registry.Registry
	scorer    *risk.Scorer
	expander  *graph.Expander
	pipeline  *triage.Pipeline
	audit     storage.AnalysisStore
	publisher alert.Publisher
	exporter  graphstore.Exporter
	logger    *zap.Logger
	config    Config
	now       func() time.Time
}

// New creates an engine.
func New(deps Deps, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.FanOut <= 0 {
		cfg.FanOut = def.FanOut
	}
	if cfg.MaxScanAddresses <= 0 {
		cfg.MaxScanAddresses = def.MaxScanAddresses
	}
	if cfg.DefaultHops <= 0 {
		cfg.DefaultHops = def.DefaultHops
	}
	if deps.Scorer == nil {
		deps.Scorer = risk.NewScorer()
	}
	if deps.Audit == nil {
		deps.Audit = memory.NewAnalysisStore()
	}
	if deps.Publisher == nil {
		deps.Publisher = alert.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Engine{
		fetcher:  deps.Fetcher,
		registry: deps.Registry,
		scorer:   deps.Scorer,
		expander: graph.NewExpander(deps.Fetcher, deps.Registry, cfg.FanOut, deps.Logger),
		pipeline: triage.NewPipeline(deps.Fetcher, deps.Registry, deps.Scorer, triage.Config{
			Limit:        cfg.DefaultLimit,
			FanOut:       cfg.FanOut,
			MaxAddresses: cfg.MaxScanAddresses,
		}, deps.Logger),
		audit:     deps.Audit,
		publisher: deps.Publisher,
		exporter:  deps.Exporter,
		logger:    deps.Logger,
		config:    cfg,
		now:       time.Now,
	}
}

// limit resolves a requested sample size.
func (e *Engine) limit(requested int) int {
	if requested <= 0 {
		requested = e.config.DefaultLimit
	}
	return fetcher.ClampLimit(requested)
}

// finish records metrics for a completed operation.
func finish(kind domain.AnalysisKind, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.RecordAnalysis(string(kind), status, time.Since(start).Seconds())
}

// record appends an audit record and publishes the matching event.
// Failures are logged and never surface to the caller.
func (e *Engine) record(ctx context.Context, kind domain.AnalysisKind, wallet string, score *domain.RiskScore, summary string) {
	rec := &domain.AnalysisRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Wallet:    wallet,
		Summary:   summary,
		CreatedAt: e.now().UTC(),
	}
	if score != nil {
		s := score.Score
		rec.Score = &s
		rec.Label = score.Label
		rec.WalletType = score.WalletType
		observability.RecordRiskScore(score.Score)
	}

	if err := e.audit.Insert(ctx, rec); err != nil {
		observability.RecordAuditError()
		e.logger.Warn("audit insert failed",
			zap.String("kind", string(kind)),
			zap.String("wallet", wallet),
			zap.Error(err))
	}

	if score == nil {
		return
	}
	e.publish(ctx, rec.ID, kind, wallet, *score, rec.CreatedAt)
}

func (e *Engine) publish(ctx context.Context, id string, kind domain.AnalysisKind, wallet string, score domain.RiskScore, at time.Time) {
	ev := alert.Event{
		ID:         id,
		Kind:       kind,
		Wallet:     wallet,
		Score:      score.Score,
		Label:      score.Label,
		WalletType: score.WalletType,
		Flags:      score.Flags,
		CreatedAt:  at,
	}
	if err := e.publisher.Publish(ctx, ev); err != nil {
		e.logger.Warn("event publish failed",
			zap.String("wallet", wallet),
			zap.Error(err))
	}
}

// Analyses lists audit records, newest first. An empty wallet lists all.
func (e *Engine) Analyses(ctx context.Context, wallet string, limit int) ([]*domain.AnalysisRecord, error) {
	if wallet == "" {
		return e.audit.ListRecent(ctx, limit)
	}
	if err := domain.ValidateAddress(wallet); err != nil {
		return nil, err
	}
	return e.audit.ListByWallet(ctx, wallet, limit)
}

// Label returns registry display info for address, or nil when unknown.
func (e *Engine) Label(address string) *registry.LabelInfo {
	return e.registry.Lookup(address)
}
