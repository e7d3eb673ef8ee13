package domain

import "github.com/shopspring/decimal"

// TokenHolding is a non-zero SPL token balance.
type TokenHolding struct {
	Mint     string          `json:"mint"`
	Amount   decimal.Decimal `json:"amount"`
	Decimals int             `json:"decimals"`
	Label    string          `json:"label,omitempty"`
	Category Category        `json:"category,omitempty"`
}
