// Package registry holds the static table of well-known Solana addresses
// (programs, exchanges, bridges, exploiters) used to filter infrastructure
// out of behavioural analysis and to label counterparties and token mints.
package registry

import "solana-wallet-forensics/internal/domain"

// Well-known program ids referenced outside the table.
const (
	SystemProgram  = "11111111111111111111111111111111"
	TokenProgram   = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	PumpFunProgram = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	WrappedSOLMint = "So11111111111111111111111111111111111111112"
)

// categoryColor maps a category to its display colour.
var categoryColor = map[domain.Category]string{
	domain.CategoryExchange:  "#2563eb",
	domain.CategoryExploiter: "#c0392b",
	domain.CategoryBridge:    "#7c3aed",
	domain.CategoryMixer:     "#dc2626",
	domain.CategoryProtocol:  "#16a34a",
	domain.CategoryPumpFun:   "#ea580c",
	domain.CategoryInfra:     "#64748b",
}

const defaultColor = "#555"

// LabelInfo is a display label for a known address.
type LabelInfo struct {
	Address  string          `json:"address"`
	Label    string          `json:"label"`
	Category domain.Category `json:"category"`
	Color    string          `json:"color"`
}

// Registry is a read-only address lookup table.
// It is built once and never mutated, so it is safe for concurrent use.
type Registry struct {
	entries map[string]domain.KnownEntity
}

// New builds a registry from entries. Later duplicates are ignored.
func New(entries []domain.KnownEntity) *Registry {
	r := &Registry{entries: make(map[string]domain.KnownEntity, len(entries))}
	for _, e := range entries {
		if _, exists := r.entries[e.Address]; exists {
			continue
		}
		r.entries[e.Address] = e
	}
	return r
}

// Default returns the registry built from the bundled entity table.
func Default() *Registry {
	return New(defaultEntities)
}

// Classify returns the known entity for address, if any.
func (r *Registry) Classify(address string) (domain.KnownEntity, bool) {
	e, ok := r.entries[address]
	return e, ok
}

// IsKnown reports whether address is a registered entity.
func (r *Registry) IsKnown(address string) bool {
	_, ok := r.entries[address]
	return ok
}

// IsPumpFun reports whether program belongs to the pump.fun launchpad.
func (r *Registry) IsPumpFun(program string) bool {
	e, ok := r.entries[program]
	return ok && e.Category == domain.CategoryPumpFun
}

// Lookup returns display info for address, or nil when it is unknown.
func (r *Registry) Lookup(address string) *LabelInfo {
	e, ok := r.entries[address]
	if !ok {
		return nil
	}
	color, ok := categoryColor[e.Category]
	if !ok {
		color = defaultColor
	}
	return &LabelInfo{
		Address:  e.Address,
		Label:    e.Label,
		Category: e.Category,
		Color:    color,
	}
}

// BatchLookup returns display info for the known addresses among addresses.
func (r *Registry) BatchLookup(addresses []string) map[string]*LabelInfo {
	out := make(map[string]*LabelInfo)
	for _, addr := range addresses {
		if info := r.Lookup(addr); info != nil {
			out[addr] = info
		}
	}
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.entries)
}
