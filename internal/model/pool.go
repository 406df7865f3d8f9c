package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PoolVersion names the AMM design a pool follows.
type PoolVersion string

const (
	PoolV2 PoolVersion = "v2"
	PoolV3 PoolVersion = "v3"
)

// ParsePoolVersion accepts "v2" or "v3"; an empty value selects v2.
func ParsePoolVersion(input string) (PoolVersion, bool) {
	switch PoolVersion(input) {
	case "", PoolV2:
		return PoolV2, true
	case PoolV3:
		return PoolV3, true
	default:
		return "", false
	}
}

// PoolState is a read-only snapshot of pool reserves oriented for one swap direction.
//
// v2 pools fill ReserveIn/ReserveOut. v3 pools fill SqrtPriceX96 (Q64.96 square root of
// the out-per-in price) and Liquidity.
type PoolState struct {
	Version      PoolVersion    `json:"version"`
	Address      common.Address `json:"address"`
	ReserveIn    *big.Int       `json:"reserve_in,omitempty"`
	ReserveOut   *big.Int       `json:"reserve_out,omitempty"`
	SqrtPriceX96 *big.Int       `json:"sqrt_price_x96,omitempty"`
	Liquidity    *big.Int       `json:"liquidity,omitempty"`
	FeeBps       uint32         `json:"fee_bps"`
}

// Label identifies the pool in error details.
func (p PoolState) Label() string {
	version := p.Version
	if version == "" {
		version = PoolV2
	}
	if p.Address == (common.Address{}) {
		return string(version) + " pool"
	}
	return string(version) + " pool " + p.Address.Hex()
}
