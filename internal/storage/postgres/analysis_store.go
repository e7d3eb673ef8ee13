package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/observability"
	"solana-wallet-forensics/internal/storage"
)

// AnalysisStore implements storage.AnalysisStore using PostgreSQL.
type AnalysisStore struct {
	pool *Pool
}

// NewAnalysisStore creates a new AnalysisStore.
func NewAnalysisStore(pool *Pool) *AnalysisStore {
	return &AnalysisStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AnalysisStore = (*AnalysisStore)(nil)

const (
	analysisColumns = `id, kind, wallet, score, label, wallet_type, summary, created_at`
	selectColumns   = `id::text, kind, wallet, score, label, wallet_type, summary, created_at`
)

// Insert appends a record. Returns ErrDuplicateKey if the ID exists.
func (s *AnalysisStore) Insert(ctx context.Context, r *domain.AnalysisRecord) (err error) {
	if err := storage.ValidateRecord(r); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		observability.RecordDBQuery("postgres", "insert_analysis", time.Since(start).Seconds(), err)
	}()

	query := `
		INSERT INTO analyses (` + analysisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx, query,
		r.ID,
		string(r.Kind),
		r.Wallet,
		r.Score,
		string(r.Label),
		r.WalletType,
		r.Summary,
		createdAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		if isInvalidTextError(err) {
			return fmt.Errorf("%w: %v", storage.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *AnalysisStore) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM analyses WHERE id::text = $1`

	r, err := scanAnalysis(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get analysis by id: %w", err)
	}
	return r, nil
}

// ListByWallet returns up to limit records for wallet, newest first.
func (s *AnalysisStore) ListByWallet(ctx context.Context, wallet string, limit int) ([]*domain.AnalysisRecord, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM analyses
		WHERE wallet = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, wallet, storage.ListLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list analyses by wallet: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// ListRecent returns up to limit records, newest first.
func (s *AnalysisStore) ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM analyses
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, storage.ListLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

func scanAnalysis(row pgx.Row) (*domain.AnalysisRecord, error) {
	var (
		r     domain.AnalysisRecord
		id    string
		kind  string
		label string
	)
	if err := row.Scan(&id, &kind, &r.Wallet, &r.Score, &label, &r.WalletType, &r.Summary, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.ID = id
	r.Kind = domain.AnalysisKind(kind)
	r.Label = domain.RiskLabel(label)
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func scanAnalyses(rows pgx.Rows) ([]*domain.AnalysisRecord, error) {
	result := make([]*domain.AnalysisRecord, 0)
	for rows.Next() {
		r, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return result, nil
}
