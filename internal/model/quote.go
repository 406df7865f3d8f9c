package model

import "math/big"

// Rate is an exact rational exchange rate, output units per input unit.
type Rate struct {
	Num *big.Int `json:"numerator"`
	Den *big.Int `json:"denominator"`
}

// SwapQuote is the pure result of quoting a trade against a PoolState.
type SwapQuote struct {
	EstimatedOutput *big.Int `json:"estimated_output"`
	MinimumOutput   *big.Int `json:"minimum_output"`
	PriceImpactBps  uint32   `json:"price_impact_bps"`
	ExchangeRate    Rate     `json:"exchange_rate"`
}
