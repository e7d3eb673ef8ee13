// Package profile aggregates a transaction sample into a wallet profile.
package profile

import (
	"sort"
	"time"

	"solana-wallet-forensics/internal/domain"
	"solana-wallet-forensics/internal/registry"
)

// PrimaryCounterparty returns the first counterpart of tx that is neither the
// subject nor a known entity. Each transaction contributes at most one
// counterparty, so distinct counterparties never outnumber transactions.
func PrimaryCounterparty(subject string, tx *domain.Transaction, reg *registry.Registry) (string, bool) {
	for _, c := range tx.Counterparts {
		if c == subject || reg.IsKnown(c) {
			continue
		}
		return c, true
	}
	return "", false
}

// Build aggregates txs, most recent first, into a profile of subject.
func Build(subject string, txs []domain.Transaction, reg *registry.Registry) domain.WalletProfile {
	counts := make(map[string]int)
	var order []string

	var first, last *int64
	for i := range txs {
		tx := &txs[i]

		if c, ok := PrimaryCounterparty(subject, tx, reg); ok {
			if _, seen := counts[c]; !seen {
				order = append(order, c)
			}
			counts[c]++
		}

		if tx.BlockTime == nil {
			continue
		}
		if first == nil || *tx.BlockTime < *first {
			first = tx.BlockTime
		}
		if last == nil || *tx.BlockTime > *last {
			last = tx.BlockTime
		}
	}

	top := make([]domain.CounterpartyCount, 0, len(order))
	for _, addr := range order {
		top = append(top, domain.CounterpartyCount{Address: addr, Count: counts[addr]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})

	recent := txs
	if recent == nil {
		recent = []domain.Transaction{}
	}

	return domain.WalletProfile{
		Subject:              subject,
		TxCount:              len(txs),
		UniqueCounterparties: len(counts),
		TopCounterparties:    top,
		RecentTransactions:   recent,
		FirstSeen:            unixTime(first),
		LastSeen:             unixTime(last),
	}
}

func unixTime(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}
