package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/model"
	"quoteScope/internal/token"
)

// Price returns the ETH and USD price of a token from v2 reserves against WETH.
func (e *Engine) Price(ctx context.Context, req PriceRequest) (model.PriceResult, error) {
	hasSymbol, hasAddress := present(req.Symbol), present(req.ContractAddress)
	if hasSymbol == hasAddress {
		return model.PriceResult{}, e.fail("price", model.ErrInvalidRequest("exactly one of symbol or contract_address is required"))
	}

	var desc model.TokenDescriptor
	if hasSymbol {
		symbol := strings.TrimSpace(*req.Symbol)
		found, ok := e.registry.Lookup(symbol)
		if !ok {
			return model.PriceResult{}, e.fail("price", model.ErrUnknownSymbol(symbol))
		}
		desc = found
	} else {
		address, ok := token.ParseAddress(strings.TrimSpace(*req.ContractAddress))
		if !ok {
			return model.PriceResult{}, e.fail("price", model.ErrInvalidRequest("invalid contract address"))
		}
		desc = model.TokenDescriptor{Address: address}
	}

	isWrapped := desc.Native || desc.Address == e.wrapped.Address

	var (
		meta      model.TokenMeta
		usdPool   model.PoolState
		tokenPool model.PoolState
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		usdPool, err = e.port.PoolState(gctx, chaindata.Pair{TokenIn: e.wrapped.Address, TokenOut: e.quote.Address, Version: model.PoolV2})
		return err
	})
	if !desc.Resolved {
		g.Go(func() error {
			var err error
			meta, err = e.port.TokenMetadata(gctx, desc.Address)
			return err
		})
	}
	if !isWrapped {
		g.Go(func() error {
			var err error
			tokenPool, err = e.port.PoolState(gctx, chaindata.Pair{TokenIn: desc.Address, TokenOut: e.wrapped.Address, Version: model.PoolV2})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return model.PriceResult{}, e.fail("price", err)
	}
	if !desc.Resolved {
		desc = desc.WithMeta(meta)
	}

	ethUSD, ok := ratio(usdPool.ReserveOut, e.quote.Decimals, usdPool.ReserveIn, e.wrapped.Decimals)
	if !ok || usdPool.ReserveOut.Sign() == 0 {
		return model.PriceResult{}, e.fail("price", model.ErrInsufficientLiquidity(usdPool.Label()))
	}

	priceETH := decimal.NewFromInt(1)
	if !isWrapped {
		price, ok := ratio(tokenPool.ReserveOut, e.wrapped.Decimals, tokenPool.ReserveIn, desc.Decimals)
		if !ok || tokenPool.ReserveOut.Sign() == 0 {
			return model.PriceResult{}, e.fail("price", model.ErrInsufficientLiquidity(tokenPool.Label()))
		}
		priceETH = price
	}

	result := model.PriceResult{
		Symbol:    desc.Symbol,
		Address:   desc.Address.Hex(),
		Decimals:  desc.Decimals,
		PriceETH:  displayString(priceETH),
		PriceUSD:  displayString(priceETH.Mul(ethUSD)),
		Timestamp: e.now().Unix(),
	}

	e.logger.Debug("price",
		zap.String("symbol", result.Symbol),
		zap.String("price_eth", result.PriceETH),
		zap.String("price_usd", result.PriceUSD),
	)
	return result, nil
}
