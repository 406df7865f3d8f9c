// Package token resolves user supplied token identifiers.
package token

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"quoteScope/internal/model"
)

// WrappedNativeSymbol is the registry entry backing the native asset in pools.
const WrappedNativeSymbol = "WETH"

// Registry maps symbols to token descriptors. It is read-only after NewRegistry.
type Registry struct {
	bySymbol map[string]model.TokenDescriptor
	symbols  []string
	native   model.TokenDescriptor
}

// NewRegistry builds a registry from entries; later entries override earlier ones
// with the same symbol.
func NewRegistry(entries []Entry) (*Registry, error) {
	bySymbol := make(map[string]model.TokenDescriptor, len(entries))
	for _, entry := range entries {
		symbol := strings.ToUpper(strings.TrimSpace(entry.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("token entry with empty symbol")
		}
		if symbol == model.NativeSymbol {
			return nil, fmt.Errorf("symbol %s is reserved for the native asset", symbol)
		}
		address, ok := ParseAddress(entry.Address)
		if !ok {
			return nil, fmt.Errorf("token %s: invalid address %q", symbol, entry.Address)
		}
		bySymbol[symbol] = model.TokenDescriptor{
			Symbol:   symbol,
			Address:  address,
			Decimals: entry.Decimals,
			Resolved: true,
		}
	}

	wrapped, ok := bySymbol[WrappedNativeSymbol]
	if !ok {
		return nil, fmt.Errorf("registry requires a %s entry", WrappedNativeSymbol)
	}

	symbols := make([]string, 0, len(bySymbol)+1)
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	symbols = append(symbols, model.NativeSymbol)
	sort.Strings(symbols)

	return &Registry{
		bySymbol: bySymbol,
		symbols:  symbols,
		native: model.TokenDescriptor{
			Symbol:   model.NativeSymbol,
			Address:  wrapped.Address,
			Decimals: model.NativeDecimals,
			Native:   true,
			Resolved: true,
		},
	}, nil
}

// Default returns the registry of DefaultEntries.
func Default() *Registry {
	reg, err := NewRegistry(DefaultEntries)
	if err != nil {
		panic(err)
	}
	return reg
}

// Resolve accepts a symbol (case-insensitive) or a 0x-prefixed address literal.
func (r *Registry) Resolve(identifier string) (model.TokenDescriptor, error) {
	trimmed := strings.TrimSpace(identifier)
	if looksLikeAddress(trimmed) {
		address, ok := ParseAddress(trimmed)
		if !ok {
			return model.TokenDescriptor{}, model.ErrUnknownSymbol(identifier)
		}
		return model.TokenDescriptor{Address: address}, nil
	}

	if desc, ok := r.Lookup(trimmed); ok {
		return desc, nil
	}
	return model.TokenDescriptor{}, model.ErrUnknownSymbol(identifier)
}

// Lookup finds a symbol without parsing address literals.
func (r *Registry) Lookup(symbol string) (model.TokenDescriptor, bool) {
	symbol = strings.ToUpper(symbol)
	if symbol == model.NativeSymbol {
		return r.native, true
	}
	desc, ok := r.bySymbol[symbol]
	return desc, ok
}

// Native returns the native asset sentinel.
func (r *Registry) Native() model.TokenDescriptor {
	return r.native
}

// Symbols returns every supported symbol in sorted order.
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// Tokens returns the descriptors in symbol order.
func (r *Registry) Tokens() []model.TokenDescriptor {
	out := make([]model.TokenDescriptor, 0, len(r.symbols))
	for _, symbol := range r.symbols {
		desc, _ := r.Lookup(symbol)
		out = append(out, desc)
	}
	return out
}

func looksLikeAddress(s string) bool {
	return len(s) == 42 && strings.HasPrefix(s, "0x")
}

// ParseAddress requires 0x plus 40 hex digits. Mixed-case input must carry a
// valid EIP-55 checksum.
func ParseAddress(s string) (common.Address, bool) {
	if !looksLikeAddress(s) || !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	address := common.HexToAddress(s)
	digits := s[2:]
	if digits != strings.ToLower(digits) && digits != strings.ToUpper(digits) {
		if address.Hex() != s {
			return common.Address{}, false
		}
	}
	return address, true
}
