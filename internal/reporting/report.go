package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"solana-wallet-forensics/internal/domain"
)

// CaseReport is the investigator-facing report for one wallet.
type CaseReport struct {
	// Metadata
	GeneratedAt time.Time
	Wallet      string
	SampleLimit int

	// Risk assessment
	Summary         string
	Risk            domain.RiskScore
	Profile         domain.WalletProfile
	Balance         *decimal.Decimal
	PumpFunActivity bool
	OnCurve         *bool

	// Optional sections; nil when skipped or unavailable
	Graph  *domain.MultiHopGraph
	Tokens []domain.TokenHolding

	// Prior analyses of the same wallet, newest first
	History []*domain.AnalysisRecord

	// Section failures that did not prevent the report
	SectionErrors []SectionError
}

// SectionError records an optional section that could not be produced.
type SectionError struct {
	Section string
	Error   string
}
