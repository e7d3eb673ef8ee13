package domain

import "time"

// CounterpartyCount is one entry of a wallet's counterparty tally.
type CounterpartyCount struct {
	Address string `json:"address"`
	Count   int    `json:"count"`
}

// WalletProfile summarises a bounded, recency-ordered transaction sample.
// UniqueCounterparties never exceeds TxCount and known entities are never counted.
type WalletProfile struct {
	Subject              string              `json:"subject"`
	TxCount              int                 `json:"tx_count"`
	UniqueCounterparties int                 `json:"unique_counterparties"`
	TopCounterparties    []CounterpartyCount `json:"top_counterparties"`
	RecentTransactions   []Transaction       `json:"recent_transactions"`
	FirstSeen            *time.Time          `json:"first_seen"`
	LastSeen             *time.Time          `json:"last_seen"`
}
