package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ExactInputSingleParams mirrors ISwapRouter.ExactInputSingleParams.
type ExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

// PackV2Swap encodes a router call swapping amountIn along path. When native is set
// the input is sent as call value through swapExactETHForTokens.
func PackV2Swap(native bool, amountIn, minOut *big.Int, path []common.Address, to common.Address, deadline *big.Int) ([]byte, error) {
	parsed, err := V2RouterABI()
	if err != nil {
		return nil, fmt.Errorf("parse v2 router abi: %w", err)
	}
	if native {
		data, err := parsed.Pack("swapExactETHForTokens", minOut, path, to, deadline)
		if err != nil {
			return nil, fmt.Errorf("pack swapExactETHForTokens: %w", err)
		}
		return data, nil
	}
	data, err := parsed.Pack("swapExactTokensForTokens", amountIn, minOut, path, to, deadline)
	if err != nil {
		return nil, fmt.Errorf("pack swapExactTokensForTokens: %w", err)
	}
	return data, nil
}

// PackV3ExactInputSingle encodes a SwapRouter exactInputSingle call.
func PackV3ExactInputSingle(params ExactInputSingleParams) ([]byte, error) {
	parsed, err := V3RouterABI()
	if err != nil {
		return nil, fmt.Errorf("parse v3 router abi: %w", err)
	}
	if params.SqrtPriceLimitX96 == nil {
		params.SqrtPriceLimitX96 = new(big.Int)
	}
	data, err := parsed.Pack("exactInputSingle", params)
	if err != nil {
		return nil, fmt.Errorf("pack exactInputSingle: %w", err)
	}
	return data, nil
}
