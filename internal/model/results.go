package model

import "math/big"

// BalanceResult answers a balance query.
type BalanceResult struct {
	Address   string   `json:"address"`
	Token     string   `json:"token,omitempty"`
	Symbol    string   `json:"symbol"`
	Decimals  uint8    `json:"decimals"`
	Raw       *big.Int `json:"raw"`
	Formatted string   `json:"formatted"`
}

// PriceResult answers a price query. Prices are display strings.
type PriceResult struct {
	Symbol    string `json:"symbol"`
	Address   string `json:"address"`
	Decimals  uint8  `json:"decimals"`
	PriceETH  string `json:"price_eth"`
	PriceUSD  string `json:"price_usd"`
	Timestamp int64  `json:"timestamp"`
}

// TokenRef names one side of a quoted swap.
type TokenRef struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
}

// Amount pairs a raw amount with its decimal rendering.
type Amount struct {
	Raw       *big.Int `json:"raw"`
	Formatted string   `json:"formatted"`
}

// GasEstimate reports the gas needed to execute a quoted swap.
type GasEstimate struct {
	Units    uint64   `json:"units"`
	PriceWei *big.Int `json:"price_wei"`
	CostWei  *big.Int `json:"cost_wei"`
	CostETH  string   `json:"cost_eth"`
	Source   string   `json:"source"`
}

// SwapQuoteResult answers a swap quotation request.
type SwapQuoteResult struct {
	From            TokenRef    `json:"from"`
	To              TokenRef    `json:"to"`
	AmountIn        Amount      `json:"amount_in"`
	EstimatedOutput Amount      `json:"estimated_output"`
	MinimumOutput   Amount      `json:"minimum_output"`
	PriceImpactBps  uint32      `json:"price_impact_bps"`
	ExchangeRate    string      `json:"exchange_rate"`
	SlippageBps     uint16      `json:"slippage_bps"`
	PoolVersion     PoolVersion `json:"pool_version"`
	FeeBps          uint32      `json:"fee_bps"`
	Approximate     bool        `json:"approximate"`
	Gas             GasEstimate `json:"gas"`
}
