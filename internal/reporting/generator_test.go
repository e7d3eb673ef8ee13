package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/forensics"
	"solana-wallet-forensics/internal/testutil"
)

type stubSource struct {
	report     *forensics.ReportResult
	reportErr  error
	graph      *domain.MultiHopGraph
	graphErr   error
	tokens     *forensics.TokensResult
	tokensErr  error
	history    []*domain.AnalysisRecord
	historyErr error

	calls []string
}

func (s *stubSource) Report(_ context.Context, wallet string, _ int) (*forensics.ReportResult, error) {
	s.calls = append(s.calls, "report")
	return s.report, s.reportErr
}

func (s *stubSource) MultiHop(_ context.Context, wallet string, _, _ int) (*domain.MultiHopGraph, error) {
	s.calls = append(s.calls, "multihop")
	return s.graph, s.graphErr
}

func (s *stubSource) Tokens(_ context.Context, wallet string) (*forensics.TokensResult, error) {
	s.calls = append(s.calls, "tokens")
	return s.tokens, s.tokensErr
}

func (s *stubSource) Analyses(_ context.Context, wallet string, _ int) ([]*domain.AnalysisRecord, error) {
	s.calls = append(s.calls, "analyses")
	return s.history, s.historyErr
}

var fixedNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func sampleReport(wallet string) *forensics.ReportResult {
	peer := testutil.Addr("peer")
	balance := decimal.RequireFromString("1.5")
	first := time.Unix(1_700_000_000, 0).UTC()
	last := time.Unix(1_700_000_600, 0).UTC()
	return &forensics.ReportResult{
		Wallet:  wallet,
		Summary: "Wallet shows moderate activity.",
		Risk: domain.RiskScore{
			Score:      40,
			Label:      domain.RiskMedium,
			Flags:      []string{"HIGH_CHURN: 90% unique counterparties"},
			WalletType: domain.WalletTypeMixer,
		},
		Profile: domain.WalletProfile{
			Subject:              wallet,
			TxCount:              2,
			UniqueCounterparties: 1,
			TopCounterparties:    []domain.CounterpartyCount{{Address: peer, Count: 2}},
			RecentTransactions: []domain.Transaction{
				testutil.Tx("sigA", 1_700_000_600, peer),
				{Signature: "sigB", Partial: true},
			},
			FirstSeen: &first,
			LastSeen:  &last,
		},
		Balance: &balance,
		OnCurve: testutil.Ptr(true),
	}
}

func TestGenerator_Generate_AllSections(t *testing.T) {
	wallet := testutil.Addr("subject")
	src := &stubSource{
		report: sampleReport(wallet),
		graph: &domain.MultiHopGraph{
			Subject: wallet,
			MaxHops: 2,
			Nodes:   []domain.GraphNode{{Address: wallet, Hop: 0}, {Address: testutil.Addr("peer"), Hop: 1}},
			Edges:   []domain.GraphEdge{{From: wallet, To: testutil.Addr("peer"), Count: 2, Hop: 1}},
		},
		tokens: &forensics.TokensResult{
			Wallet: wallet,
			Count:  1,
			Tokens: []domain.TokenHolding{{Mint: testutil.Addr("mint"), Amount: decimal.NewFromInt(42), Label: "USDC"}},
		},
		history: []*domain.AnalysisRecord{
			{ID: "r1", Kind: domain.AnalysisTrace, Wallet: wallet, CreatedAt: fixedNow.Add(-time.Hour)},
		},
	}

	gen := NewGenerator(src).WithClock(func() time.Time { return fixedNow })
	report, err := gen.Generate(context.Background(), wallet, Options{Limit: 25, Hops: 2, PerNodeLimit: 5, Tokens: true, HistoryLimit: 10})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !report.GeneratedAt.Equal(fixedNow) {
		t.Errorf("expected GeneratedAt %v, got %v", fixedNow, report.GeneratedAt)
	}
	if report.Risk.Score != 40 {
		t.Errorf("expected score 40, got %d", report.Risk.Score)
	}
	if report.Graph == nil || len(report.Graph.Edges) != 1 {
		t.Errorf("expected graph with 1 edge, got %+v", report.Graph)
	}
	if len(report.Tokens) != 1 {
		t.Errorf("expected 1 token, got %d", len(report.Tokens))
	}
	if len(report.History) != 1 {
		t.Errorf("expected 1 history record, got %d", len(report.History))
	}
	if len(report.SectionErrors) != 0 {
		t.Errorf("expected no section errors, got %v", report.SectionErrors)
	}

	// History is read before the new analysis is recorded.
	if src.calls[0] != "analyses" {
		t.Errorf("expected history lookup first, got %v", src.calls)
	}
}

func TestGenerator_Generate_SkipsOptionalSections(t *testing.T) {
	wallet := testutil.Addr("subject")
	src := &stubSource{report: sampleReport(wallet)}

	report, err := NewGenerator(src).Generate(context.Background(), wallet, Options{Limit: 25})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if report.Graph != nil || report.Tokens != nil || report.History != nil {
		t.Errorf("expected optional sections to be skipped")
	}
	if len(src.calls) != 1 {
		t.Errorf("expected only the report call, got %v", src.calls)
	}
}

func TestGenerator_Generate_OptionalFailures(t *testing.T) {
	wallet := testutil.Addr("subject")
	src := &stubSource{
		report:     sampleReport(wallet),
		graphErr:   domain.ErrUpstreamUnavailable,
		tokensErr:  domain.ErrRateLimited,
		historyErr: errors.New("store offline"),
	}

	report, err := NewGenerator(src).Generate(context.Background(), wallet, Options{Hops: 2, Tokens: true, HistoryLimit: 5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(report.SectionErrors) != 3 {
		t.Fatalf("expected 3 section errors, got %v", report.SectionErrors)
	}
	sections := []string{report.SectionErrors[0].Section, report.SectionErrors[1].Section, report.SectionErrors[2].Section}
	if strings.Join(sections, ",") != "history,graph,tokens" {
		t.Errorf("unexpected sections: %v", sections)
	}
}

func TestGenerator_Generate_ReportFailure(t *testing.T) {
	src := &stubSource{reportErr: domain.ErrInvalidAddress}

	_, err := NewGenerator(src).Generate(context.Background(), "bad", Options{})
	if !errors.Is(err, domain.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	wallet := testutil.Addr("subject")
	src := &stubSource{
		report: sampleReport(wallet),
		graph: &domain.MultiHopGraph{
			Subject: wallet,
			MaxHops: 2,
			Nodes:   []domain.GraphNode{{Address: wallet, Hop: 0}, {Address: testutil.Addr("peer"), Hop: 1}},
			Edges:   []domain.GraphEdge{{From: wallet, To: testutil.Addr("peer"), Count: 2, Hop: 1}},
			Errors:  []domain.NodeError{{Address: testutil.Addr("peer"), Hop: 1, Error: "upstream unavailable"}},
		},
		tokens: &forensics.TokensResult{Tokens: []domain.TokenHolding{}},
	}

	report, err := NewGenerator(src).WithClock(func() time.Time { return fixedNow }).
		Generate(context.Background(), wallet, Options{Hops: 2, Tokens: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	md := RenderMarkdown(report)

	expected := []string{
		"# Wallet Case Report",
		"Wallet: `" + wallet + "`",
		"Generated: 2026-01-15T12:00:00Z",
		"| Score | 40 / 100 |",
		"| Label | MEDIUM |",
		"| SOL Balance | 1.5 |",
		"| Account Type | keypair (on curve) |",
		"- HIGH_CHURN: 90% unique counterparties",
		"| `" + testutil.Addr("peer") + "` | 2 |",
		"| `sigB` | unknown | details unavailable |",
		"## Interaction Graph (2 hops)",
		"| 1 | 1 |",
		"### Unexpanded Nodes",
		"## Token Holdings",
		"No token balances.",
	}
	for _, s := range expected {
		if !strings.Contains(md, s) {
			t.Errorf("markdown missing %q", s)
		}
	}

	if strings.Contains(md, "## Prior Analyses") {
		t.Error("history section should be omitted when empty")
	}
}

func TestRenderMarkdown_Dormant(t *testing.T) {
	wallet := testutil.Addr("dormant")
	report := &CaseReport{
		GeneratedAt: fixedNow,
		Wallet:      wallet,
		Risk:        domain.RiskScore{Label: domain.RiskLow, Flags: []string{}, WalletType: domain.WalletTypeDormant},
		Profile:     domain.WalletProfile{Subject: wallet, RecentTransactions: []domain.Transaction{}},
	}

	md := RenderMarkdown(report)

	for _, s := range []string{"No risk signals triggered.", "No counterparties outside known infrastructure.", "No transactions sampled.", "| First Seen | unknown |"} {
		if !strings.Contains(md, s) {
			t.Errorf("markdown missing %q", s)
		}
	}
	if strings.Contains(md, "## Interaction Graph") || strings.Contains(md, "## Token Holdings") {
		t.Error("optional sections should be omitted")
	}
}

func TestRenderScanCSV(t *testing.T) {
	a, b := testutil.Addr("a"), testutil.Addr("b")
	res := &domain.ScanResult{
		Found:    2,
		Analyzed: 1,
		Results: []domain.ScanEntry{
			{Wallet: a, Risk: &domain.RiskScore{Score: 70, Label: domain.RiskHigh, WalletType: domain.WalletTypeMixer}, TxCount: 45, UniqueCounterparties: 44},
			{Wallet: b, Error: "upstream rate limited, retry later"},
		},
	}

	csv := RenderScanCSV(res)
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "wallet,score,label,wallet_type,tx_count,unique_counterparties,error" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != a+",70,HIGH,LIKELY MIXER / AUTOMATED,45,44," {
		t.Errorf("unexpected row: %s", lines[1])
	}
	if lines[2] != b+",,,,,,\"upstream rate limited, retry later\"" {
		t.Errorf("unexpected failed row: %s", lines[2])
	}
}
