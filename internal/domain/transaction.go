package domain

// Transaction is one sampled transaction involving the subject wallet.
// Produced by the fetcher; raw RPC payloads never leave the fetcher.
type Transaction struct {
	Signature    string   `json:"signature"`
	Slot         int64    `json:"slot"`
	BlockTime    *int64   `json:"block_time"`         // unix seconds, nil when unknown
	Counterparts []string `json:"counterparts"`       // account keys, excluding subject and invoked programs
	Programs     []string `json:"programs,omitempty"` // invoked program ids
	Failed       bool     `json:"failed,omitempty"`   // on-chain execution error
	Partial      bool     `json:"partial,omitempty"`  // details unavailable, signature data only
}

// HasTimestamp reports whether the transaction carries a block time.
func (t *Transaction) HasTimestamp() bool {
	return t.BlockTime != nil
}

// InvokesProgram reports whether program was invoked by the transaction.
func (t *Transaction) InvokesProgram(program string) bool {
	for _, p := range t.Programs {
		if p == program {
			return true
		}
	}
	return false
}
