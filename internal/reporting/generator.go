package reporting

import (
	"context"
	"time"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/forensics"
)

// Source is the subset of the forensics engine a report is built from.
type Source interface {
	Report(ctx context.Context, wallet string, limit int) (*forensics.ReportResult, error)
	MultiHop(ctx context.Context, wallet string, hops, limit int) (*domain.MultiHopGraph, error)
	Tokens(ctx context.Context, wallet string) (*forensics.TokensResult, error)
	Analyses(ctx context.Context, wallet string, limit int) ([]*domain.AnalysisRecord, error)
}

// Options selects report sections.
type Options struct {
	Limit        int // transactions sampled for the risk profile
	Hops         int // multi-hop depth, 0 skips the graph section
	PerNodeLimit int
	Tokens       bool
	HistoryLimit int // prior analyses listed, 0 skips the section
}

// Generator produces case reports.
type Generator struct {
	source Source
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(source Source) *Generator {
	return &Generator{
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a case report. The risk section is required; optional
// sections that fail are listed in SectionErrors instead.
func (g *Generator) Generate(ctx context.Context, wallet string, opts Options) (*CaseReport, error) {
	// History is read before the report so it excludes this run.
	var history []*domain.AnalysisRecord
	var sectionErrs []SectionError
	if opts.HistoryLimit > 0 {
		recs, err := g.source.Analyses(ctx, wallet, opts.HistoryLimit)
		if err != nil {
			sectionErrs = append(sectionErrs, SectionError{Section: "history", Error: err.Error()})
		}
		history = recs
	}

	rep, err := g.source.Report(ctx, wallet, opts.Limit)
	if err != nil {
		return nil, err
	}

	report := &CaseReport{
		GeneratedAt:     g.now(),
		Wallet:          rep.Wallet,
		SampleLimit:     opts.Limit,
		Summary:         rep.Summary,
		Risk:            rep.Risk,
		Profile:         rep.Profile,
		Balance:         rep.Balance,
		PumpFunActivity: rep.PumpFunActivity,
		OnCurve:         rep.OnCurve,
		History:         history,
		SectionErrors:   sectionErrs,
	}

	if opts.Hops > 0 {
		graph, err := g.source.MultiHop(ctx, wallet, opts.Hops, opts.PerNodeLimit)
		if err != nil {
			report.SectionErrors = append(report.SectionErrors, SectionError{Section: "graph", Error: err.Error()})
		} else {
			report.Graph = graph
		}
	}

	if opts.Tokens {
		tokens, err := g.source.Tokens(ctx, wallet)
		if err != nil {
			report.SectionErrors = append(report.SectionErrors, SectionError{Section: "tokens", Error: err.Error()})
		} else {
			report.Tokens = tokens.Tokens
		}
	}

	return report, nil
}
