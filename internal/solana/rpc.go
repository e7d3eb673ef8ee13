package solana

import "context"

// RPCClient defines the Solana JSON-RPC methods the fetcher relies on.
type RPCClient interface {
	// GetSignaturesForAddress retrieves signatures for an address, most recent first.
	GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) ([]SignatureInfo, error)

	// GetTransaction retrieves a transaction by signature.
	// Returns nil, nil when the transaction is unknown to the node.
	GetTransaction(ctx context.Context, signature string) (*Transaction, error)

	// GetTokenAccountsByOwner retrieves parsed token accounts owned by owner
	// under the given token program.
	GetTokenAccountsByOwner(ctx context.Context, owner, programID string) ([]TokenAccount, error)

	// GetBalance retrieves the lamport balance of an account.
	GetBalance(ctx context.Context, address string) (uint64, error)
}

// Transaction represents a Solana transaction.
type Transaction struct {
	Slot      int64
	Signature string
	BlockTime *int64 // Unix timestamp (seconds), nil if the node did not record one
	Meta      *TransactionMeta
	Message   *TransactionMessage
}

// TransactionMeta contains transaction metadata.
type TransactionMeta struct {
	Err            interface{}
	LogMessages    []string
	LoadedWritable []string // address lookup table keys (v0 transactions)
	LoadedReadonly []string

	// TokenOwners maps token account keys touched by the transaction to
	// their owning wallet, from pre and post token balances.
	TokenOwners map[string]string
}

// TokenBalance is one entry of a transaction's pre or post token balances.
type TokenBalance struct {
	AccountIndex int    `json:"accountIndex"`
	Mint         string `json:"mint"`
	Owner        string `json:"owner"`
}

// TransactionMessage contains the decoded transaction message.
type TransactionMessage struct {
	AccountKeys  []string
	Instructions []Instruction
}

// Instruction is a compiled instruction referencing account key indexes.
type Instruction struct {
	ProgramIDIndex int
	Accounts       []int
}

// AllAccountKeys returns static account keys followed by loaded addresses,
// matching the index space used by compiled instructions.
func (tx *Transaction) AllAccountKeys() []string {
	if tx.Message == nil {
		return nil
	}
	keys := make([]string, 0, len(tx.Message.AccountKeys))
	keys = append(keys, tx.Message.AccountKeys...)
	if tx.Meta != nil {
		keys = append(keys, tx.Meta.LoadedWritable...)
		keys = append(keys, tx.Meta.LoadedReadonly...)
	}
	return keys
}

// ProgramIDs returns the distinct program ids invoked by top-level instructions,
// in instruction order.
func (tx *Transaction) ProgramIDs() []string {
	if tx.Message == nil {
		return nil
	}
	keys := tx.AllAccountKeys()
	seen := make(map[string]bool)
	var programs []string
	for _, ix := range tx.Message.Instructions {
		if ix.ProgramIDIndex < 0 || ix.ProgramIDIndex >= len(keys) {
			continue
		}
		p := keys[ix.ProgramIDIndex]
		if !seen[p] {
			seen[p] = true
			programs = append(programs, p)
		}
	}
	return programs
}
