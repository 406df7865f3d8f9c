package service

import (
	"context"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quoteScope/internal/model"
	"quoteScope/internal/token"
	"quoteScope/internal/units"
)

// Balance returns the native or token balance of an address.
func (e *Engine) Balance(ctx context.Context, req BalanceRequest) (model.BalanceResult, error) {
	owner, ok := token.ParseAddress(strings.TrimSpace(req.Address))
	if !ok {
		return model.BalanceResult{}, e.fail("balance", model.ErrInvalidRequest("invalid wallet address"))
	}

	desc := e.registry.Native()
	if present(req.Token) {
		resolved, err := e.registry.Resolve(*req.Token)
		if err != nil {
			return model.BalanceResult{}, e.fail("balance", err)
		}
		desc = resolved
	}

	var raw *big.Int
	switch {
	case desc.Native:
		balance, err := e.port.NativeBalance(ctx, owner)
		if err != nil {
			return model.BalanceResult{}, e.fail("balance", err)
		}
		raw = balance
	case desc.Resolved:
		balance, err := e.port.TokenBalance(ctx, desc.Address, owner)
		if err != nil {
			return model.BalanceResult{}, e.fail("balance", err)
		}
		raw = balance
	default:
		var meta model.TokenMeta
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			meta, err = e.port.TokenMetadata(gctx, desc.Address)
			return err
		})
		g.Go(func() error {
			var err error
			raw, err = e.port.TokenBalance(gctx, desc.Address, owner)
			return err
		})
		if err := g.Wait(); err != nil {
			return model.BalanceResult{}, e.fail("balance", err)
		}
		desc = desc.WithMeta(meta)
	}

	result := model.BalanceResult{
		Address:   owner.Hex(),
		Symbol:    desc.Symbol,
		Decimals:  desc.Decimals,
		Raw:       raw,
		Formatted: units.ToDecimal(raw, desc.Decimals),
	}
	if !desc.Native {
		result.Token = desc.Address.Hex()
	}

	e.logger.Debug("balance",
		zap.String("owner", result.Address),
		zap.String("symbol", result.Symbol),
		zap.String("raw", raw.String()),
	)
	return result, nil
}
