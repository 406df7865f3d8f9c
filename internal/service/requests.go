package service

import (
	"encoding/json"
	"math/big"
	"strings"

	"quoteScope/internal/amm"
	"quoteScope/internal/model"
)

// DefaultSlippageBps applies when a swap request omits the tolerance.
const DefaultSlippageBps uint16 = 50

// BalanceRequest asks for the balance of Address. A nil or empty Token means ETH.
type BalanceRequest struct {
	Address string  `json:"address"`
	Token   *string `json:"token,omitempty"`
}

// PriceRequest must set exactly one of Symbol and ContractAddress.
type PriceRequest struct {
	Symbol          *string `json:"symbol,omitempty"`
	ContractAddress *string `json:"contract_address,omitempty"`
}

// SwapRequest asks for a quote. Amount is a decimal string in FromToken units.
type SwapRequest struct {
	FromToken   string       `json:"from_token"`
	ToToken     string       `json:"to_token"`
	Amount      string       `json:"amount"`
	SlippageBps *json.Number `json:"slippage_tolerance_bps,omitempty"`
	PoolVersion string       `json:"pool_version,omitempty"`
	FromAddress *string      `json:"from_address,omitempty"`
}

func present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

// slippageBps range-checks the requested tolerance. Anything but an integer in
// [0, 10000] reports InvalidSlippage.
func slippageBps(raw *json.Number) (uint16, error) {
	if raw == nil || strings.TrimSpace(raw.String()) == "" {
		return DefaultSlippageBps, nil
	}
	text := strings.TrimSpace(raw.String())
	value, ok := new(big.Int).SetString(text, 10)
	if !ok || value.Sign() < 0 || value.Cmp(big.NewInt(amm.MaxBps)) > 0 {
		return 0, model.ErrInvalidSlippage(text)
	}
	return uint16(value.Uint64()), nil
}
