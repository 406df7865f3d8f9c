// Package service implements the balance, price and swap quote operations.
package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/model"
	"quoteScope/internal/token"
)

// QuoteSymbol is the stablecoin used to price ETH in USD.
const QuoteSymbol = "USDC"

// Options configures an Engine.
type Options struct {
	// V3FeeTier selects the v3 pool, in hundredths of a bip. Zero means 3000.
	V3FeeTier uint32
	Logger    *zap.Logger
	Now       func() time.Time
}

// Engine answers requests against a chain data port. It holds no per-request state.
type Engine struct {
	registry *token.Registry
	port     chaindata.Port
	feeTier  uint32
	logger   *zap.Logger
	now      func() time.Time

	wrapped model.TokenDescriptor
	quote   model.TokenDescriptor
}

// NewEngine wires an Engine. The registry must contain WETH and USDC.
func NewEngine(registry *token.Registry, port chaindata.Port, opts Options) (*Engine, error) {
	if registry == nil || port == nil {
		return nil, fmt.Errorf("registry and port are required")
	}
	wrapped, ok := registry.Lookup(token.WrappedNativeSymbol)
	if !ok {
		return nil, fmt.Errorf("registry has no %s entry", token.WrappedNativeSymbol)
	}
	quote, ok := registry.Lookup(QuoteSymbol)
	if !ok {
		return nil, fmt.Errorf("registry has no %s entry", QuoteSymbol)
	}

	feeTier := opts.V3FeeTier
	if feeTier == 0 {
		feeTier = 3000
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		registry: registry,
		port:     port,
		feeTier:  feeTier,
		logger:   logger,
		now:      now,
		wrapped:  wrapped,
		quote:    quote,
	}, nil
}

// Registry exposes the token table.
func (e *Engine) Registry() *token.Registry {
	return e.registry
}

// fail translates err and logs anything classified as internal.
func (e *Engine) fail(op string, err error) error {
	svcErr := Translate(err)
	if svcErr.Kind == model.KindInternal {
		e.logger.Error("internal error", zap.String("op", op), zap.Error(err))
	} else {
		e.logger.Debug("request failed", zap.String("op", op), zap.String("kind", string(svcErr.Kind)), zap.Error(err))
	}
	return svcErr
}
