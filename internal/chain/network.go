package chain

import (
	"context"
	"fmt"
	"math/big"
)

// MainnetChainID is the EIP-155 chain id of Ethereum mainnet.
const MainnetChainID uint64 = 1

// ChainIDReader reports the chain id a node serves. *Client implements it.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// VerifyChainID fails when the node serves a chain other than want. Zero skips the check.
func VerifyChainID(ctx context.Context, reader ChainIDReader, want uint64) error {
	if want == 0 {
		return nil
	}
	got, err := reader.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("read chain id: %w", err)
	}
	if got == nil || !got.IsUint64() || got.Uint64() != want {
		return fmt.Errorf("rpc serves chain %v, want %d", got, want)
	}
	return nil
}
