package storage

import (
	"context"

	"solana-wallet-forensics/internal/domain"
)

// AnalysisStore is the append-only audit trail of completed analyses.
// Records are written after an analysis finishes and are only read back for
// audit listings, never to answer an analysis request.
type AnalysisStore interface {
	// Insert appends a record. Returns ErrDuplicateKey if the ID exists and
	// ErrInvalidInput if the ID or kind is missing.
	Insert(ctx context.Context, r *domain.AnalysisRecord) error

	// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error)

	// ListByWallet returns up to limit records for wallet, newest first.
	ListByWallet(ctx context.Context, wallet string, limit int) ([]*domain.AnalysisRecord, error)

	// ListRecent returns up to limit records across all wallets, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error)
}

// DefaultListLimit bounds listings when the caller passes a non-positive limit.
const DefaultListLimit = 100

// ListLimit normalises a listing limit.
func ListLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}

// ValidateRecord checks the fields every stored record must carry.
func ValidateRecord(r *domain.AnalysisRecord) error {
	if r == nil || r.ID == "" || r.Kind == "" {
		return ErrInvalidInput
	}
	return nil
}
