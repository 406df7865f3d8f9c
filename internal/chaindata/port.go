// Package chaindata defines the chain data capability consumed by the engine.
package chaindata

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"quoteScope/internal/model"
)

// Pair selects the single pool used for a swap direction.
type Pair struct {
	TokenIn  common.Address
	TokenOut common.Address
	Version  model.PoolVersion
	// FeeTier is the v3 fee tier in hundredths of a bip. Ignored for v2.
	FeeTier uint32
}

// GasOperation describes the swap call to simulate.
type GasOperation struct {
	From         common.Address
	TokenIn      common.Address
	TokenOut     common.Address
	AmountIn     *big.Int
	MinAmountOut *big.Int
	Version      model.PoolVersion
	FeeTier      uint32
	// NativeIn sends AmountIn as call value instead of a token transfer.
	NativeIn bool
}

// Port supplies balances, metadata and pool state. Implementations must be safe for
// concurrent use.
type Port interface {
	NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error)
	TokenMetadata(ctx context.Context, token common.Address) (model.TokenMeta, error)
	PoolState(ctx context.Context, pair Pair) (model.PoolState, error)
	EstimateGas(ctx context.Context, op GasOperation) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
}
