// Package amm quotes swaps against constant-product pool snapshots.
package amm

import (
	"fmt"
	"math/big"
	"strconv"

	"quoteScope/internal/model"
)

// MaxBps is 100% in basis points.
const MaxBps = 10000

var bpsDenominator = big.NewInt(MaxBps)

// Quote computes the output of swapping amountIn against pool.
//
// All steps use integer division truncating toward zero, so the estimate never
// exceeds what the pool would pay.
func Quote(pool model.PoolState, amountIn *big.Int, slippageBps uint16) (model.SwapQuote, error) {
	if slippageBps > MaxBps {
		return model.SwapQuote{}, model.ErrInvalidSlippage(strconv.FormatUint(uint64(slippageBps), 10))
	}
	if pool.FeeBps > MaxBps {
		return model.SwapQuote{}, model.ErrInternal(fmt.Errorf("pool fee %d bps out of range", pool.FeeBps))
	}
	if amountIn == nil || amountIn.Sign() < 0 {
		return model.SwapQuote{}, model.ErrInternal(fmt.Errorf("amount in must be non-negative"))
	}

	reserveIn, reserveOut, err := reserves(pool)
	if err != nil {
		return model.SwapQuote{}, err
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return model.SwapQuote{}, model.ErrInsufficientLiquidity(pool.Label())
	}

	rate := model.Rate{Num: new(big.Int).Set(reserveOut), Den: new(big.Int).Set(reserveIn)}
	if amountIn.Sign() == 0 {
		return model.SwapQuote{
			EstimatedOutput: new(big.Int),
			MinimumOutput:   new(big.Int),
			ExchangeRate:    rate,
		}, nil
	}

	afterFee := applyBps(amountIn, MaxBps-pool.FeeBps)

	estimated := new(big.Int).Mul(reserveOut, afterFee)
	estimated.Quo(estimated, new(big.Int).Add(reserveIn, afterFee))
	if estimated.Cmp(reserveOut) >= 0 {
		return model.SwapQuote{}, model.ErrInsufficientLiquidity(pool.Label())
	}

	minimum := applyBps(estimated, MaxBps-uint32(slippageBps))

	return model.SwapQuote{
		EstimatedOutput: estimated,
		MinimumOutput:   minimum,
		PriceImpactBps:  priceImpactBps(amountIn, estimated, reserveIn, reserveOut),
		ExchangeRate:    rate,
	}, nil
}

func reserves(pool model.PoolState) (*big.Int, *big.Int, error) {
	switch pool.Version {
	case model.PoolV3:
		if isZero(pool.SqrtPriceX96) || isZero(pool.Liquidity) {
			return nil, nil, model.ErrInsufficientLiquidity(pool.Label())
		}
		in, out := VirtualReserves(pool.SqrtPriceX96, pool.Liquidity)
		return in, out, nil
	case model.PoolV2, "":
		if isZero(pool.ReserveIn) || isZero(pool.ReserveOut) {
			return nil, nil, model.ErrInsufficientLiquidity(pool.Label())
		}
		return pool.ReserveIn, pool.ReserveOut, nil
	default:
		return nil, nil, model.ErrInternal(fmt.Errorf("unsupported pool version %q", pool.Version))
	}
}

// priceImpactBps = 10000 - estimated*reserveIn*10000 / (amountIn*reserveOut), clamped.
func priceImpactBps(amountIn, estimated, reserveIn, reserveOut *big.Int) uint32 {
	num := new(big.Int).Mul(estimated, reserveIn)
	num.Mul(num, bpsDenominator)
	den := new(big.Int).Mul(amountIn, reserveOut)
	ratio := num.Quo(num, den)

	if ratio.Cmp(bpsDenominator) >= 0 {
		return 0
	}
	return uint32(MaxBps - ratio.Int64())
}

func applyBps(value *big.Int, bps uint32) *big.Int {
	out := new(big.Int).Mul(value, big.NewInt(int64(bps)))
	return out.Quo(out, bpsDenominator)
}

func isZero(value *big.Int) bool {
	return value == nil || value.Sign() == 0
}
