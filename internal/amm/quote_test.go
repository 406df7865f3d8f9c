package amm

import (
	"math/big"
	"testing"

	"quoteScope/internal/model"
)

func v2Pool(reserveIn, reserveOut int64, feeBps uint32) model.PoolState {
	return model.PoolState{
		Version:    model.PoolV2,
		ReserveIn:  big.NewInt(reserveIn),
		ReserveOut: big.NewInt(reserveOut),
		FeeBps:     feeBps,
	}
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad int %s", s)
	}
	return v
}

func TestQuoteScenario(t *testing.T) {
	quote, err := Quote(v2Pool(1_000_000, 330_500, 30), big.NewInt(1000), 50)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	// after fee 997, estimate 330500*997/1000997
	if quote.EstimatedOutput.Int64() != 329 {
		t.Fatalf("estimated mismatch: %s", quote.EstimatedOutput)
	}
	if quote.MinimumOutput.Int64() != 329*9950/10000 {
		t.Fatalf("minimum mismatch: %s", quote.MinimumOutput)
	}
	if quote.PriceImpactBps != 46 {
		t.Fatalf("impact mismatch: %d", quote.PriceImpactBps)
	}
	if quote.ExchangeRate.Num.Int64() != 330_500 || quote.ExchangeRate.Den.Int64() != 1_000_000 {
		t.Fatalf("rate mismatch: %s/%s", quote.ExchangeRate.Num, quote.ExchangeRate.Den)
	}
}

func TestQuoteZeroInput(t *testing.T) {
	for _, slippage := range []uint16{0, 50, 10000} {
		quote, err := Quote(v2Pool(1_000_000, 330_500, 30), big.NewInt(0), slippage)
		if err != nil {
			t.Fatalf("zero input: %v", err)
		}
		if quote.EstimatedOutput.Sign() != 0 || quote.MinimumOutput.Sign() != 0 || quote.PriceImpactBps != 0 {
			t.Fatalf("zero input quote mismatch: %+v", quote)
		}
	}
}

func TestQuoteZeroReserve(t *testing.T) {
	_, err := Quote(v2Pool(0, 330_500, 30), big.NewInt(1000), 50)
	if !model.IsKind(err, model.KindInsufficientLiquidity) {
		t.Fatalf("expected InsufficientLiquidity, got %v", err)
	}

	_, err = Quote(model.PoolState{Version: model.PoolV2, FeeBps: 30}, big.NewInt(1000), 50)
	if !model.IsKind(err, model.KindInsufficientLiquidity) {
		t.Fatalf("nil reserves: expected InsufficientLiquidity, got %v", err)
	}
}

func TestQuoteInvalidSlippage(t *testing.T) {
	_, err := Quote(v2Pool(0, 0, 30), big.NewInt(1000), 10001)
	if !model.IsKind(err, model.KindInvalidSlippage) {
		t.Fatalf("expected InvalidSlippage, got %v", err)
	}
}

func TestQuoteInvalidFee(t *testing.T) {
	_, err := Quote(v2Pool(1000, 1000, 10001), big.NewInt(10), 0)
	if !model.IsKind(err, model.KindInternal) {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestQuoteMonotonic(t *testing.T) {
	reserve := mustBig(t, "1000000000000000000000")
	pool := model.PoolState{Version: model.PoolV2, ReserveIn: reserve, ReserveOut: reserve, FeeBps: 30}

	prevOut := big.NewInt(0)
	prevImpact := uint32(0)
	amount := mustBig(t, "1000000000000000")
	for i := 0; i < 7; i++ {
		quote, err := Quote(pool, amount, 100)
		if err != nil {
			t.Fatalf("quote %s: %v", amount, err)
		}
		if quote.EstimatedOutput.Cmp(prevOut) < 0 {
			t.Fatalf("output decreased at %s", amount)
		}
		if quote.PriceImpactBps < prevImpact {
			t.Fatalf("impact decreased at %s: %d < %d", amount, quote.PriceImpactBps, prevImpact)
		}
		prevOut = quote.EstimatedOutput
		prevImpact = quote.PriceImpactBps
		amount = new(big.Int).Mul(amount, big.NewInt(10))
	}
	if prevImpact == 0 {
		t.Fatalf("large trades should move the price")
	}
}

func TestQuoteSlippageFloor(t *testing.T) {
	pool := v2Pool(5_000_000, 7_000_000, 30)
	amount := big.NewInt(12_345)

	for _, slippage := range []uint16{0, 1, 50, 500, 9999, 10000} {
		quote, err := Quote(pool, amount, slippage)
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		if quote.EstimatedOutput.Sign() == 0 {
			t.Fatalf("estimate should be positive")
		}
		cmp := quote.MinimumOutput.Cmp(quote.EstimatedOutput)
		if cmp > 0 {
			t.Fatalf("minimum above estimate at %d bps", slippage)
		}
		if (cmp == 0) != (slippage == 0) {
			t.Fatalf("minimum equals estimate iff slippage is zero, slippage=%d", slippage)
		}
	}
}

func TestQuoteFeeConservation(t *testing.T) {
	quote, err := Quote(v2Pool(1000, 2000, 0), big.NewInt(1000), 0)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	lhs := new(big.Int).Mul(quote.EstimatedOutput, big.NewInt(1000+1000))
	rhs := new(big.Int).Mul(big.NewInt(2000), big.NewInt(1000))
	if lhs.Cmp(rhs) != 0 {
		t.Fatalf("conservation mismatch: %s != %s", lhs, rhs)
	}

	// truncation bounds the product from below by at most one unit of output
	cases := [][3]int64{{1_000_000, 330_500, 1000}, {777, 1_234_567, 89}, {10, 10, 3}}
	for _, c := range cases {
		quote, err := Quote(v2Pool(c[0], c[1], 0), big.NewInt(c[2]), 0)
		if err != nil {
			t.Fatalf("quote %v: %v", c, err)
		}
		total := big.NewInt(c[0] + c[2])
		product := new(big.Int).Mul(big.NewInt(c[1]), big.NewInt(c[2]))
		low := new(big.Int).Mul(quote.EstimatedOutput, total)
		high := new(big.Int).Mul(new(big.Int).Add(quote.EstimatedOutput, big.NewInt(1)), total)
		if low.Cmp(product) > 0 || high.Cmp(product) <= 0 {
			t.Fatalf("conservation bound violated for %v", c)
		}
	}
}

func TestQuoteV3MatchesVirtualReserves(t *testing.T) {
	liquidity := mustBig(t, "1000000000000000000")
	pool := model.PoolState{
		Version:      model.PoolV3,
		SqrtPriceX96: new(big.Int).Set(q96),
		Liquidity:    liquidity,
		FeeBps:       FeeTierToBps(3000),
	}
	amount := mustBig(t, "1000000000000000")

	got, err := Quote(pool, amount, 50)
	if err != nil {
		t.Fatalf("v3 quote: %v", err)
	}
	want, err := Quote(model.PoolState{Version: model.PoolV2, ReserveIn: liquidity, ReserveOut: liquidity, FeeBps: 30}, amount, 50)
	if err != nil {
		t.Fatalf("v2 quote: %v", err)
	}
	if got.EstimatedOutput.Cmp(want.EstimatedOutput) != 0 || got.PriceImpactBps != want.PriceImpactBps {
		t.Fatalf("v3 approximation mismatch: %+v != %+v", got, want)
	}
}

func TestQuoteV3ZeroLiquidity(t *testing.T) {
	pool := model.PoolState{Version: model.PoolV3, SqrtPriceX96: new(big.Int).Set(q96), Liquidity: big.NewInt(0), FeeBps: 30}
	if _, err := Quote(pool, big.NewInt(1), 0); !model.IsKind(err, model.KindInsufficientLiquidity) {
		t.Fatalf("expected InsufficientLiquidity, got %v", err)
	}
}

func TestVirtualReservesPrice(t *testing.T) {
	// sqrtP = 2 * 2^96 means out per in = 4
	sqrtPrice := new(big.Int).Lsh(big.NewInt(2), 96)
	in, out := VirtualReserves(sqrtPrice, big.NewInt(1_000_000))
	if in.Int64() != 500_000 || out.Int64() != 2_000_000 {
		t.Fatalf("virtual reserves mismatch: %s %s", in, out)
	}
}

func TestOrientSqrtPrice(t *testing.T) {
	sqrtPrice := new(big.Int).Lsh(big.NewInt(2), 96)
	if got := OrientSqrtPrice(sqrtPrice, true); got.Cmp(sqrtPrice) != 0 {
		t.Fatalf("zeroForOne should keep price")
	}
	want := new(big.Int).Lsh(big.NewInt(1), 95)
	if got := OrientSqrtPrice(sqrtPrice, false); got.Cmp(want) != 0 {
		t.Fatalf("inverted price mismatch: %s != %s", got, want)
	}
}
