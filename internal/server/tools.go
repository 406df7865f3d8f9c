package server

import (
	"bytes"
	"context"
	"encoding/json"

	"quoteScope/internal/model"
	"quoteScope/internal/service"
	"quoteScope/internal/token"
)

// Engine is the set of operations the tools dispatch to. *service.Engine implements it.
type Engine interface {
	Balance(ctx context.Context, req service.BalanceRequest) (model.BalanceResult, error)
	Price(ctx context.Context, req service.PriceRequest) (model.PriceResult, error)
	SwapQuote(ctx context.Context, req service.SwapRequest) (model.SwapQuoteResult, error)
	Registry() *token.Registry
}

type toolFunc func(ctx context.Context, engine Engine, args []byte) (any, error)

type tool struct {
	info ToolInfo
	call toolFunc
}

var tools = []tool{
	{
		info: ToolInfo{
			Name:        "get_balance",
			Description: "ETH or ERC-20 balance of a wallet.",
			Arguments:   []string{"address", "token"},
		},
		call: func(ctx context.Context, engine Engine, args []byte) (any, error) {
			var req service.BalanceRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			return engine.Balance(ctx, req)
		},
	},
	{
		info: ToolInfo{
			Name:        "get_token_price",
			Description: "Token price in ETH and USD from Uniswap v2 reserves.",
			Arguments:   []string{"symbol", "contract_address"},
		},
		call: func(ctx context.Context, engine Engine, args []byte) (any, error) {
			var req service.PriceRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			return engine.Price(ctx, req)
		},
	},
	{
		info: ToolInfo{
			Name:        "swap_tokens",
			Description: "Quote a single-pool swap with slippage floor, price impact and gas.",
			Arguments:   []string{"from_token", "to_token", "amount", "slippage_tolerance_bps", "pool_version", "from_address"},
		},
		call: func(ctx context.Context, engine Engine, args []byte) (any, error) {
			var req service.SwapRequest
			if err := decodeArgs(args, &req); err != nil {
				return nil, err
			}
			return engine.SwapQuote(ctx, req)
		},
	},
}

func findTool(name string) (tool, bool) {
	for _, t := range tools {
		if t.info.Name == name {
			return t, true
		}
	}
	return tool{}, false
}

// decodeArgs unmarshals a JSON object. An empty body decodes as {}.
func decodeArgs(args []byte, dst any) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return model.ErrInvalidRequest("invalid json arguments: " + err.Error())
	}
	return nil
}
