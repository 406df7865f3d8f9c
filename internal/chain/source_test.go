package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/dex"
	"quoteScope/internal/model"
)

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

type fakeBackend struct {
	responses map[common.Address]map[string][]byte
	balances  map[common.Address]*big.Int
	gas       uint64
	gasPrice  *big.Int
	callErr   error
	lastGas   ethereum.CallMsg
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		responses: make(map[common.Address]map[string][]byte),
		balances:  make(map[common.Address]*big.Int),
	}
}

func (f *fakeBackend) set(t *testing.T, to common.Address, parsed abi.ABI, method string, outputs ...interface{}) {
	t.Helper()
	data, err := parsed.Methods[method].Outputs.Pack(outputs...)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	if f.responses[to] == nil {
		f.responses[to] = make(map[string][]byte)
	}
	f.responses[to][string(parsed.Methods[method].ID)] = data
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	return f.responses[*msg.To][string(msg.Data[:4])], nil
}

func (f *fakeBackend) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	if balance, ok := f.balances[account]; ok {
		return balance, nil
	}
	return new(big.Int), nil
}

func (f *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.lastGas = msg
	return f.gas, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return f.gasPrice, nil
}

var (
	tokenA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenB = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	pairAB = common.HexToAddress("0x3333333333333333333333333333333333333333")
	poolAB = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

func newTestSource(backend *fakeBackend) *Source {
	source := NewSource(backend, MainnetContracts(), nopLogger())
	source.now = func() time.Time { return time.Unix(1700000000, 0) }
	return source
}

func TestSourceV2PoolStateOrientation(t *testing.T) {
	factoryABI, _ := dex.V2FactoryABI()
	pairABI, _ := dex.V2PairABI()

	backend := newFakeBackend()
	backend.set(t, MainnetContracts().V2Factory, factoryABI, "getPair", pairAB)
	backend.set(t, pairAB, pairABI, "token0", tokenA)
	backend.set(t, pairAB, pairABI, "getReserves", big.NewInt(100), big.NewInt(900), uint32(0))

	source := newTestSource(backend)

	forward, err := source.PoolState(context.Background(), chaindata.Pair{TokenIn: tokenA, TokenOut: tokenB, Version: model.PoolV2})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if forward.ReserveIn.Int64() != 100 || forward.ReserveOut.Int64() != 900 || forward.FeeBps != 30 || forward.Address != pairAB {
		t.Fatalf("forward mismatch: %+v", forward)
	}

	reverse, err := source.PoolState(context.Background(), chaindata.Pair{TokenIn: tokenB, TokenOut: tokenA, Version: model.PoolV2})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if reverse.ReserveIn.Int64() != 900 || reverse.ReserveOut.Int64() != 100 {
		t.Fatalf("reverse mismatch: %+v", reverse)
	}
}

func TestSourceV2PoolMissing(t *testing.T) {
	factoryABI, _ := dex.V2FactoryABI()
	backend := newFakeBackend()
	backend.set(t, MainnetContracts().V2Factory, factoryABI, "getPair", common.Address{})

	_, err := newTestSource(backend).PoolState(context.Background(), chaindata.Pair{TokenIn: tokenA, TokenOut: tokenB, Version: model.PoolV2})
	if chaindata.KindOf(err) != chaindata.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSourceV3PoolState(t *testing.T) {
	factoryABI, _ := dex.V3FactoryABI()
	poolABI, _ := dex.V3PoolABI()
	sqrtPrice := new(big.Int).Lsh(big.NewInt(2), 96)

	backend := newFakeBackend()
	backend.set(t, MainnetContracts().V3Factory, factoryABI, "getPool", poolAB)
	backend.set(t, poolAB, poolABI, "token0", tokenA)
	backend.set(t, poolAB, poolABI, "slot0", sqrtPrice, big.NewInt(0), uint16(0), uint16(0), uint16(0), uint8(0), true)
	backend.set(t, poolAB, poolABI, "liquidity", big.NewInt(1_000_000))

	source := newTestSource(backend)

	state, err := source.PoolState(context.Background(), chaindata.Pair{TokenIn: tokenB, TokenOut: tokenA, Version: model.PoolV3, FeeTier: 500})
	if err != nil {
		t.Fatalf("pool state: %v", err)
	}
	want := new(big.Int).Lsh(big.NewInt(1), 95)
	if state.SqrtPriceX96.Cmp(want) != 0 {
		t.Fatalf("one-for-zero should invert the price: %s", state.SqrtPriceX96)
	}
	if state.FeeBps != 5 || state.Version != model.PoolV3 || state.Liquidity.Int64() != 1_000_000 {
		t.Fatalf("state mismatch: %+v", state)
	}
}

func TestSourceTokenBalanceNoContract(t *testing.T) {
	_, err := newTestSource(newFakeBackend()).TokenBalance(context.Background(), tokenA, tokenB)
	if chaindata.KindOf(err) != chaindata.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSourceTransportFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.callErr = errors.New("dial tcp: connection refused")

	_, err := newTestSource(backend).TokenMetadata(context.Background(), tokenA)
	if chaindata.KindOf(err) != chaindata.KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestSourceEstimateGasNativeV2(t *testing.T) {
	backend := newFakeBackend()
	backend.gas = 123456
	from := common.HexToAddress("0x5555555555555555555555555555555555555555")

	gas, err := newTestSource(backend).EstimateGas(context.Background(), chaindata.GasOperation{
		From:     from,
		TokenIn:  tokenA,
		TokenOut: tokenB,
		AmountIn: big.NewInt(1000),
		Version:  model.PoolV2,
		NativeIn: true,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if gas != 123456 {
		t.Fatalf("gas mismatch: %d", gas)
	}

	router, _ := dex.V2RouterABI()
	msg := backend.lastGas
	if *msg.To != MainnetContracts().V2Router || msg.From != from {
		t.Fatalf("call target mismatch")
	}
	if string(msg.Data[:4]) != string(router.Methods["swapExactETHForTokens"].ID) {
		t.Fatalf("expected swapExactETHForTokens")
	}
	if msg.Value == nil || msg.Value.Int64() != 1000 {
		t.Fatalf("native input should be sent as value")
	}
}

func TestSourceEstimateGasV3(t *testing.T) {
	backend := newFakeBackend()
	backend.gas = 185000

	_, err := newTestSource(backend).EstimateGas(context.Background(), chaindata.GasOperation{
		From:     common.HexToAddress("0x5555555555555555555555555555555555555555"),
		TokenIn:  tokenA,
		TokenOut: tokenB,
		AmountIn: big.NewInt(1000),
		Version:  model.PoolV3,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	router, _ := dex.V3RouterABI()
	args, err := router.Methods["exactInputSingle"].Inputs.Unpack(backend.lastGas.Data[4:])
	if err != nil {
		t.Fatalf("unpack calldata: %v", err)
	}
	if len(args) != 1 {
		t.Fatalf("args mismatch: %d", len(args))
	}
	if *backend.lastGas.To != MainnetContracts().V3Router {
		t.Fatalf("expected v3 router")
	}
}
