package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/model"
	"quoteScope/internal/units"
)

// Typical router gas usage, reported when no sender is given to simulate with.
const (
	TypicalV2SwapGas uint64 = 150000
	TypicalV3SwapGas uint64 = 185000
)

const (
	gasSourceSimulated = "simulated"
	gasSourceTypical   = "typical"
)

// estimateGas simulates the swap for from. Without a sender, or for a zero amount
// that the router would reject, the typical figure for the pool version is priced
// instead. A failed simulation is returned as an error.
func (e *Engine) estimateGas(ctx context.Context, from *common.Address, tokenIn, tokenOut model.TokenDescriptor, amountIn, minOut *big.Int, version model.PoolVersion) (model.GasEstimate, error) {
	gasUnits, source := TypicalV2SwapGas, gasSourceTypical
	if version == model.PoolV3 {
		gasUnits = TypicalV3SwapGas
	}

	if from != nil && amountIn.Sign() > 0 {
		simulated, err := e.port.EstimateGas(ctx, chaindata.GasOperation{
			From:         *from,
			TokenIn:      tokenIn.Address,
			TokenOut:     tokenOut.Address,
			AmountIn:     amountIn,
			MinAmountOut: minOut,
			Version:      version,
			FeeTier:      e.feeTier,
			NativeIn:     tokenIn.Native,
		})
		if err != nil {
			return model.GasEstimate{}, err
		}
		gasUnits, source = simulated, gasSourceSimulated
	}

	price, err := e.port.GasPrice(ctx)
	if err != nil {
		return model.GasEstimate{}, err
	}
	return gasCost(gasUnits, price, source), nil
}

func gasCost(gasUnits uint64, price *big.Int, source string) model.GasEstimate {
	cost := new(big.Int).Mul(new(big.Int).SetUint64(gasUnits), price)
	return model.GasEstimate{
		Units:    gasUnits,
		PriceWei: new(big.Int).Set(price),
		CostWei:  cost,
		CostETH:  units.ToDecimal(cost, model.NativeDecimals),
		Source:   source,
	}
}
