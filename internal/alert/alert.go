// Package alert publishes completed-analysis events to downstream sinks.
package alert

import (
	"context"
	"errors"
	"time"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/observability"
)

// Event describes one completed analysis.
type Event struct {
	ID         string              `json:"id"`
	Kind       domain.AnalysisKind `json:"kind"`
	Wallet     string              `json:"wallet"`
	Score      int                 `json:"score"`
	Label      domain.RiskLabel    `json:"label"`
	WalletType string              `json:"wallet_type"`
	Flags      []string            `json:"flags,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Publisher delivers events to one sink.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, e Event) error
}

// Noop discards events.
type Noop struct{}

// Name implements Publisher.
func (Noop) Name() string { return "noop" }

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher. All publishers are attempted;
// their errors are joined.
type Multi []Publisher

// Name implements Publisher.
func (m Multi) Name() string { return "multi" }

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		err := p.Publish(ctx, e)
		observability.RecordAlert(p.Name(), err)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// minLabel forwards only events at or above a risk label.
type minLabel struct {
	next Publisher
	min  domain.RiskLabel
}

// HighRiskOnly wraps next so it only receives HIGH-label events.
func HighRiskOnly(next Publisher) Publisher {
	return &minLabel{next: next, min: domain.RiskHigh}
}

func (f *minLabel) Name() string { return f.next.Name() }

func (f *minLabel) Publish(ctx context.Context, e Event) error {
	if rank(e.Label) < rank(f.min) {
		return nil
	}
	return f.next.Publish(ctx, e)
}

func rank(l domain.RiskLabel) int {
	switch l {
	case domain.RiskHigh:
		return 3
	case domain.RiskMedium:
		return 2
	case domain.RiskLow:
		return 1
	default:
		return 0
	}
}
