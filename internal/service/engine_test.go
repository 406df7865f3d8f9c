package service

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/model"
	"quoteScope/internal/token"
)

const testWallet = "0x742d35cc6634c0532925a3b844bc454e4438f44e"

func newTestEngine(t *testing.T) (*Engine, *chaindata.Static) {
	t.Helper()
	port := chaindata.NewStatic()
	engine, err := NewEngine(token.Default(), port, Options{
		Now: func() time.Time { return time.Unix(1700000000, 0) },
	})
	require.NoError(t, err)
	return engine, port
}

func lookup(t *testing.T, engine *Engine, symbol string) model.TokenDescriptor {
	t.Helper()
	desc, ok := engine.Registry().Lookup(symbol)
	require.True(t, ok, symbol)
	return desc
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, s)
	return v
}

func strPtr(s string) *string {
	return &s
}

func requireKind(t *testing.T, err error, kind model.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := model.AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %T: %v", err, err)
	require.Equal(t, kind, svcErr.Kind, svcErr.Error())
}

func TestNewEngineRequiresQuoteTokens(t *testing.T) {
	reg, err := token.NewRegistry([]token.Entry{
		{Symbol: "WETH", Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", Decimals: 18},
	})
	require.NoError(t, err)

	_, err = NewEngine(reg, chaindata.NewStatic(), Options{})
	require.Error(t, err)

	_, err = NewEngine(nil, chaindata.NewStatic(), Options{})
	require.Error(t, err)
}
