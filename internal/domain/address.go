package domain

import (
	"fmt"
	"regexp"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Address length bounds for base58-encoded Solana public keys.
const (
	MinAddressLen = 32
	MaxAddressLen = 44
)

// AddressPattern matches a single, complete base58 address.
var AddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// ValidateAddress checks address syntax only. No upstream lookup is made.
func ValidateAddress(address string) error {
	if !AddressPattern.MatchString(address) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}

// IsValidAddress reports whether address passes syntax validation.
func IsValidAddress(address string) bool {
	return AddressPattern.MatchString(address)
}

// DecodedAddress is a syntactically valid address decoded to its key bytes.
type DecodedAddress struct {
	Address string
	Key     []byte
	OnCurve bool // true for keypair accounts, false for program-derived addresses
}

// DecodeAddress validates and base58-decodes address.
// Addresses that do not decode to exactly 32 bytes are rejected.
func DecodeAddress(address string) (*DecodedAddress, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	key, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", ErrInvalidAddress, address, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: %q decodes to %d bytes", ErrInvalidAddress, address, len(key))
	}

	return &DecodedAddress{
		Address: address,
		Key:     key,
		OnCurve: isOnCurve(key),
	}, nil
}

func isOnCurve(key []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(key)
	return err == nil
}
