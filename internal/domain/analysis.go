package domain

import "time"

// AnalysisKind names the engine operation that produced an analysis record.
type AnalysisKind string

const (
	AnalysisTrace    AnalysisKind = "trace"
	AnalysisReport   AnalysisKind = "report"
	AnalysisScan     AnalysisKind = "scan"
	AnalysisMultiHop AnalysisKind = "multihop"
	AnalysisTokens   AnalysisKind = "tokens"
)

// AnalysisRecord is an audit trail entry for a completed analysis.
// Records are append-only and are never used to answer later requests.
type AnalysisRecord struct {
	ID         string       `json:"id"`
	Kind       AnalysisKind `json:"kind"`
	Wallet     string       `json:"wallet"` // empty for document scans
	Score      *int         `json:"score,omitempty"`
	Label      RiskLabel    `json:"label,omitempty"`
	WalletType string       `json:"wallet_type,omitempty"`
	Summary    string       `json:"summary,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
