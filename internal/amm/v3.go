package amm

import "math/big"

var (
	q96  = new(big.Int).Lsh(big.NewInt(1), 96)
	q192 = new(big.Int).Lsh(big.NewInt(1), 192)
)

// VirtualReserves maps a concentrated-liquidity position onto an equivalent
// constant-product pool: in = L / sqrtP, out = L * sqrtP.
//
// This ignores tick boundaries and is only suitable for estimates.
func VirtualReserves(sqrtPriceX96, liquidity *big.Int) (*big.Int, *big.Int) {
	in := new(big.Int).Mul(liquidity, q96)
	in.Quo(in, sqrtPriceX96)

	out := new(big.Int).Mul(liquidity, sqrtPriceX96)
	out.Quo(out, q96)
	return in, out
}

// OrientSqrtPrice returns the Q64.96 square root price of out per in. Pools report
// token1 per token0, so swaps from token1 invert it.
func OrientSqrtPrice(sqrtPriceX96 *big.Int, zeroForOne bool) *big.Int {
	if zeroForOne || sqrtPriceX96.Sign() == 0 {
		return new(big.Int).Set(sqrtPriceX96)
	}
	return new(big.Int).Quo(q192, sqrtPriceX96)
}

// FeeTierToBps converts a v3 fee tier in hundredths of a bip to basis points.
func FeeTierToBps(feeTier uint32) uint32 {
	return feeTier / 100
}
