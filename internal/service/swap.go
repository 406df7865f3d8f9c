package service

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quoteScope/internal/amm"
	"quoteScope/internal/chaindata"
	"quoteScope/internal/model"
	"quoteScope/internal/token"
	"quoteScope/internal/units"
)

// SwapQuote simulates a single-pool swap and reports output, slippage floor,
// price impact and gas.
func (e *Engine) SwapQuote(ctx context.Context, req SwapRequest) (model.SwapQuoteResult, error) {
	slippage, err := slippageBps(req.SlippageBps)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}

	version, ok := model.ParsePoolVersion(strings.ToLower(strings.TrimSpace(req.PoolVersion)))
	if !ok {
		return model.SwapQuoteResult{}, e.fail("swap_quote", model.ErrInvalidRequest("pool_version must be v2 or v3"))
	}

	var from *common.Address
	if present(req.FromAddress) {
		address, ok := token.ParseAddress(strings.TrimSpace(*req.FromAddress))
		if !ok {
			return model.SwapQuoteResult{}, e.fail("swap_quote", model.ErrInvalidRequest("invalid from_address"))
		}
		from = &address
	}

	tokenIn, err := e.registry.Resolve(req.FromToken)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}
	tokenOut, err := e.registry.Resolve(req.ToToken)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}
	if tokenIn.Address == tokenOut.Address {
		return model.SwapQuoteResult{}, e.fail("swap_quote", model.ErrInvalidRequest("from_token and to_token must differ"))
	}

	tokenIn, tokenOut, err = e.resolvePair(ctx, tokenIn, tokenOut)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}

	amountIn, err := units.ToRaw(strings.TrimSpace(req.Amount), tokenIn.Decimals)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}

	pool, err := e.port.PoolState(ctx, chaindata.Pair{
		TokenIn:  tokenIn.Address,
		TokenOut: tokenOut.Address,
		Version:  version,
		FeeTier:  e.feeTier,
	})
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}

	quote, err := amm.Quote(pool, amountIn, slippage)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}

	gas, err := e.estimateGas(ctx, from, tokenIn, tokenOut, amountIn, quote.MinimumOutput, version)
	if err != nil {
		return model.SwapQuoteResult{}, e.fail("swap_quote", err)
	}

	rate := "0"
	if value, ok := ratio(quote.ExchangeRate.Num, tokenOut.Decimals, quote.ExchangeRate.Den, tokenIn.Decimals); ok {
		rate = displayString(value)
	}

	result := model.SwapQuoteResult{
		From:            tokenRef(tokenIn),
		To:              tokenRef(tokenOut),
		AmountIn:        amount(amountIn, tokenIn.Decimals),
		EstimatedOutput: amount(quote.EstimatedOutput, tokenOut.Decimals),
		MinimumOutput:   amount(quote.MinimumOutput, tokenOut.Decimals),
		PriceImpactBps:  quote.PriceImpactBps,
		ExchangeRate:    rate,
		SlippageBps:     slippage,
		PoolVersion:     version,
		FeeBps:          pool.FeeBps,
		Approximate:     version == model.PoolV3,
		Gas:             gas,
	}

	e.logger.Debug("swap quote",
		zap.String("from", tokenIn.Symbol),
		zap.String("to", tokenOut.Symbol),
		zap.String("amount_in", amountIn.String()),
		zap.String("estimated", quote.EstimatedOutput.String()),
		zap.Uint32("impact_bps", quote.PriceImpactBps),
		zap.String("pool", pool.Label()),
	)
	return result, nil
}

// resolvePair fetches metadata for unresolved address literals concurrently.
func (e *Engine) resolvePair(ctx context.Context, tokenIn, tokenOut model.TokenDescriptor) (model.TokenDescriptor, model.TokenDescriptor, error) {
	if tokenIn.Resolved && tokenOut.Resolved {
		return tokenIn, tokenOut, nil
	}

	var metaIn, metaOut model.TokenMeta
	g, gctx := errgroup.WithContext(ctx)
	if !tokenIn.Resolved {
		g.Go(func() error {
			var err error
			metaIn, err = e.port.TokenMetadata(gctx, tokenIn.Address)
			return err
		})
	}
	if !tokenOut.Resolved {
		g.Go(func() error {
			var err error
			metaOut, err = e.port.TokenMetadata(gctx, tokenOut.Address)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return tokenIn, tokenOut, err
	}

	if !tokenIn.Resolved {
		tokenIn = tokenIn.WithMeta(metaIn)
	}
	if !tokenOut.Resolved {
		tokenOut = tokenOut.WithMeta(metaOut)
	}
	return tokenIn, tokenOut, nil
}

func tokenRef(desc model.TokenDescriptor) model.TokenRef {
	return model.TokenRef{Symbol: desc.Symbol, Address: desc.Address.Hex(), Decimals: desc.Decimals}
}

func amount(raw *big.Int, decimals uint8) model.Amount {
	return model.Amount{Raw: raw, Formatted: units.ToDecimal(raw, decimals)}
}
