package solana

// SignatureInfo from getSignaturesForAddress.
type SignatureInfo struct {
	Signature string
	Slot      int64
	BlockTime *int64
	Err       interface{}
}

// SignaturesOpts defines optional pagination parameters for getSignaturesForAddress.
type SignaturesOpts struct {
	Before string // Start searching backwards from this signature
	Until  string // Search until this signature
	Limit  int    // Maximum number of signatures to return
}

// TokenAccount is a parsed SPL token account from getTokenAccountsByOwner.
type TokenAccount struct {
	Pubkey         string
	Mint           string
	Owner          string
	Amount         string // raw integer amount
	Decimals       int
	UIAmountString string // decimal amount adjusted for decimals
}

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000
