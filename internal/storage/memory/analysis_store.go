package memory

import (
	"context"
	"sort"
	"sync"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/storage"
)

// DefaultCapacity is the number of records kept before the oldest are evicted.
const DefaultCapacity = 10 * storage.DefaultListLimit

// AnalysisStore is an in-memory implementation of storage.AnalysisStore.
// It holds at most capacity records and evicts in insertion order.
type AnalysisStore struct {
	mu       sync.RWMutex
	data     map[string]*domain.AnalysisRecord // keyed by id
	order    []string                          // insertion order
	capacity int
}

// Option configures AnalysisStore.
type Option func(*AnalysisStore)

// WithCapacity bounds the number of retained records. Non-positive values
// keep DefaultCapacity.
func WithCapacity(n int) Option {
	return func(s *AnalysisStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// NewAnalysisStore creates a new in-memory analysis store.
func NewAnalysisStore(opts ...Option) *AnalysisStore {
	s := &AnalysisStore{
		data:     make(map[string]*domain.AnalysisRecord),
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of retained records.
func (s *AnalysisStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

var _ storage.AnalysisStore = (*AnalysisStore)(nil)

// Insert appends a record. Returns ErrDuplicateKey if the ID exists.
func (s *AnalysisStore) Insert(_ context.Context, r *domain.AnalysisRecord) error {
	if err := storage.ValidateRecord(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.ID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[r.ID] = copyRecord(r)
	s.order = append(s.order, r.ID)

	if over := len(s.order) - s.capacity; over > 0 {
		for _, id := range s.order[:over] {
			delete(s.data, id)
		}
		s.order = append(s.order[:0], s.order[over:]...)
	}
	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *AnalysisStore) GetByID(_ context.Context, id string) (*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyRecord(r), nil
}

// ListByWallet returns up to limit records for wallet, newest first.
func (s *AnalysisStore) ListByWallet(_ context.Context, wallet string, limit int) ([]*domain.AnalysisRecord, error) {
	return s.list(limit, func(r *domain.AnalysisRecord) bool { return r.Wallet == wallet }), nil
}

// ListRecent returns up to limit records, newest first.
func (s *AnalysisStore) ListRecent(_ context.Context, limit int) ([]*domain.AnalysisRecord, error) {
	return s.list(limit, func(*domain.AnalysisRecord) bool { return true }), nil
}

func (s *AnalysisStore) list(limit int, keep func(*domain.AnalysisRecord) bool) []*domain.AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.AnalysisRecord, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		if r := s.data[s.order[i]]; keep(r) {
			result = append(result, copyRecord(r))
		}
	}

	// Newest first; equal timestamps keep latest insertion first.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if n := storage.ListLimit(limit); len(result) > n {
		result = result[:n]
	}
	return result
}

func copyRecord(r *domain.AnalysisRecord) *domain.AnalysisRecord {
	c := *r
	if r.Score != nil {
		score := *r.Score
		c.Score = &score
	}
	return &c
}
