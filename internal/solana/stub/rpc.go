package stub

import (
	"context"
	"sync"

	"solana-wallet-forensics/internal/solana"
)

// RPCClient implements solana.RPCClient for testing. It is safe for
// concurrent use once populated.
type RPCClient struct {
	mu            sync.Mutex
	Transactions  map[string]*solana.Transaction
	Signatures    map[string][]solana.SignatureInfo
	TokenAccounts map[string][]solana.TokenAccount
	Balances      map[string]uint64

	// Failures maps an address or signature to the error returned for it.
	Failures map[string]error

	calls map[string]int
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Transactions:  make(map[string]*solana.Transaction),
		Signatures:    make(map[string][]solana.SignatureInfo),
		TokenAccounts: make(map[string][]solana.TokenAccount),
		Balances:      make(map[string]uint64),
		Failures:      make(map[string]error),
		calls:         make(map[string]int),
	}
}

func (c *RPCClient) record(method, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[method]++
	return c.Failures[key]
}

// Calls returns how many times method was invoked.
func (c *RPCClient) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// GetSignaturesForAddress retrieves signatures for an address from the stub store.
func (c *RPCClient) GetSignaturesForAddress(ctx context.Context, address string, opts *solana.SignaturesOpts) ([]solana.SignatureInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.record("getSignaturesForAddress", address); err != nil {
		return nil, err
	}

	sigs := c.Signatures[address]

	// Apply limit if specified
	if opts != nil && opts.Limit > 0 && opts.Limit < len(sigs) {
		return sigs[:opts.Limit], nil
	}

	return sigs, nil
}

// GetTransaction retrieves a transaction by signature from the stub store.
// Unknown signatures return nil, nil like the real node.
func (c *RPCClient) GetTransaction(ctx context.Context, signature string) (*solana.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.record("getTransaction", signature); err != nil {
		return nil, err
	}
	return c.Transactions[signature], nil
}

// GetTokenAccountsByOwner returns the stubbed token accounts for owner.
func (c *RPCClient) GetTokenAccountsByOwner(ctx context.Context, owner, _ string) ([]solana.TokenAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.record("getTokenAccountsByOwner", owner); err != nil {
		return nil, err
	}
	return c.TokenAccounts[owner], nil
}

// GetBalance returns the stubbed lamport balance for address.
func (c *RPCClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := c.record("getBalance", address); err != nil {
		return 0, err
	}
	return c.Balances[address], nil
}

// AddTransaction adds a transaction and appends its signature to the
// signature list of address, so callers add transactions most recent first.
func (c *RPCClient) AddTransaction(address string, tx *solana.Transaction) {
	c.Transactions[tx.Signature] = tx
	c.Signatures[address] = append(c.Signatures[address], solana.SignatureInfo{
		Signature: tx.Signature,
		Slot:      tx.Slot,
		BlockTime: tx.BlockTime,
	})
}

// AddTransfer records a transaction between from and to under both addresses.
// The transaction invokes the System Program.
func (c *RPCClient) AddTransfer(signature, from, to string, blockTime *int64) {
	tx := &solana.Transaction{
		Signature: signature,
		BlockTime: blockTime,
		Message: &solana.TransactionMessage{
			AccountKeys: []string{from, to, systemProgram},
			Instructions: []solana.Instruction{
				{ProgramIDIndex: 2, Accounts: []int{0, 1}},
			},
		},
	}
	c.AddTransaction(from, tx)
	c.AddTransaction(to, tx)
}

const systemProgram = "11111111111111111111111111111111"

var _ solana.RPCClient = (*RPCClient)(nil)
