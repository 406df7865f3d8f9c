package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NativeSymbol is the reserved symbol of the chain's native asset.
const NativeSymbol = "ETH"

// NativeDecimals is fixed for the native asset.
const NativeDecimals uint8 = 18

// TokenMeta captures ERC20 metadata read from chain.
type TokenMeta struct {
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
}

// TokenDescriptor identifies a token for a single request.
//
// Resolved is false when the descriptor was parsed from a raw address literal and
// Symbol/Decimals still have to be read through the chain data port. Native marks
// the ETH sentinel; its Address points at the wrapped token and is only used for
// pool lookups.
type TokenDescriptor struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals"`
	Native   bool           `json:"native,omitempty"`
	Resolved bool           `json:"-"`
}

// WithMeta returns a resolved copy carrying the fetched metadata. The symbol is
// canonicalized to upper case.
func (d TokenDescriptor) WithMeta(meta TokenMeta) TokenDescriptor {
	d.Symbol = strings.ToUpper(strings.TrimSpace(meta.Symbol))
	d.Decimals = meta.Decimals
	d.Resolved = true
	return d
}
