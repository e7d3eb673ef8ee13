// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"solana-wallet-forensics/internal/domain"
)

// Addr derives a deterministic, syntactically valid address from seed.
func Addr(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return base58.Encode(sum[:])
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Tx builds a transaction with a single counterpart at unix time ts.
// A zero ts leaves the block time unset.
func Tx(sig string, ts int64, counterparts ...string) domain.Transaction {
	tx := domain.Transaction{
		Signature:    sig,
		Counterparts: counterparts,
	}
	if ts != 0 {
		tx.BlockTime = Ptr(ts)
	}
	return tx
}
