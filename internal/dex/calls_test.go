package dex

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// fakeCaller answers eth_call by target address and method selector.
type fakeCaller struct {
	responses map[common.Address]map[string][]byte
	failures  map[string]error
	calls     int
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		responses: make(map[common.Address]map[string][]byte),
		failures:  make(map[string]error),
	}
}

func (f *fakeCaller) fail(parsed abi.ABI, method string, err error) {
	f.failures[string(parsed.Methods[method].ID)] = err
}

func (f *fakeCaller) set(t *testing.T, to common.Address, parsed abi.ABI, method string, outputs ...interface{}) {
	t.Helper()
	data, err := parsed.Methods[method].Outputs.Pack(outputs...)
	if err != nil {
		t.Fatalf("pack %s outputs: %v", method, err)
	}
	if f.responses[to] == nil {
		f.responses[to] = make(map[string][]byte)
	}
	f.responses[to][string(parsed.Methods[method].ID)] = data
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls++
	if err, ok := f.failures[string(msg.Data[:4])]; ok {
		return nil, err
	}
	byMethod, ok := f.responses[*msg.To]
	if !ok {
		return nil, nil
	}
	return byMethod[string(msg.Data[:4])], nil
}

func TestFetchTokenMeta(t *testing.T) {
	erc20, err := ERC20ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	token := common.HexToAddress("0x1111111111111111111111111111111111111111")

	caller := newFakeCaller()
	caller.set(t, token, erc20, "decimals", uint8(6))
	caller.set(t, token, erc20, "symbol", "USDX")

	meta, err := FetchTokenMeta(context.Background(), caller, token)
	if err != nil {
		t.Fatalf("fetch meta: %v", err)
	}
	if meta.Decimals != 6 || meta.Symbol != "USDX" {
		t.Fatalf("meta mismatch: %+v", meta)
	}
}

func TestFetchTokenMetaBytes32Symbol(t *testing.T) {
	erc20, _ := ERC20ABI()
	legacy, err := erc20ABIBytes32Instance()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	token := common.HexToAddress("0x9f8f72aa9304c8b593d555f12ef6589cc3a579a2")

	var symbol [32]byte
	copy(symbol[:], "MKR")

	caller := newFakeCaller()
	caller.set(t, token, erc20, "decimals", uint8(18))
	caller.set(t, token, legacy, "symbol", symbol)

	meta, err := FetchTokenMeta(context.Background(), caller, token)
	if err != nil {
		t.Fatalf("fetch meta: %v", err)
	}
	if meta.Symbol != "MKR" || meta.Decimals != 18 {
		t.Fatalf("meta mismatch: %+v", meta)
	}
}

func TestFetchTokenMetaSymbolCallFails(t *testing.T) {
	erc20, _ := ERC20ABI()
	token := common.HexToAddress("0x3333333333333333333333333333333333333333")
	refused := errors.New("dial tcp: connection refused")

	caller := newFakeCaller()
	caller.set(t, token, erc20, "decimals", uint8(6))
	caller.fail(erc20, "symbol", refused)

	meta, err := FetchTokenMeta(context.Background(), caller, token)
	if !errors.Is(err, refused) {
		t.Fatalf("expected transport error, got meta=%+v err=%v", meta, err)
	}
	if caller.calls != 2 {
		t.Fatalf("bytes32 retry should be skipped, calls=%d", caller.calls)
	}
}

func TestFetchTokenMetaMissingSymbol(t *testing.T) {
	erc20, _ := ERC20ABI()
	token := common.HexToAddress("0x4444444444444444444444444444444444444444")

	caller := newFakeCaller()
	caller.set(t, token, erc20, "decimals", uint8(18))

	if _, err := FetchTokenMeta(context.Background(), caller, token); !errors.Is(err, ErrNoContract) {
		t.Fatalf("expected missing symbol error, got %v", err)
	}
}

func TestFetchTokenMetaNoContract(t *testing.T) {
	_, err := FetchTokenMeta(context.Background(), newFakeCaller(), common.HexToAddress("0x2222222222222222222222222222222222222222"))
	if !errors.Is(err, ErrNoContract) {
		t.Fatalf("expected ErrNoContract, got %v", err)
	}
}

func TestFetchV2PairAndReserves(t *testing.T) {
	factoryABI, _ := V2FactoryABI()
	pairABI, _ := V2PairABI()

	factory := common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	pair := common.HexToAddress("0x3333333333333333333333333333333333333333")
	tokenA := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenB := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

	caller := newFakeCaller()
	caller.set(t, factory, factoryABI, "getPair", pair)
	caller.set(t, pair, pairABI, "token0", tokenA)
	caller.set(t, pair, pairABI, "getReserves", big.NewInt(1_000_000), big.NewInt(330_500), uint32(1700000000))

	got, err := FetchV2Pair(context.Background(), caller, factory, tokenA, tokenB)
	if err != nil {
		t.Fatalf("get pair: %v", err)
	}
	if got != pair {
		t.Fatalf("pair mismatch: %s", got.Hex())
	}

	reserves, err := FetchV2Reserves(context.Background(), caller, pair)
	if err != nil {
		t.Fatalf("reserves: %v", err)
	}
	if reserves.Token0 != tokenA || reserves.Reserve0.Int64() != 1_000_000 || reserves.Reserve1.Int64() != 330_500 {
		t.Fatalf("reserves mismatch: %+v", reserves)
	}
}

func TestFetchV2PairMissing(t *testing.T) {
	factoryABI, _ := V2FactoryABI()
	factory := common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")

	caller := newFakeCaller()
	caller.set(t, factory, factoryABI, "getPair", common.Address{})

	_, err := FetchV2Pair(context.Background(), caller, factory, common.Address{1}, common.Address{2})
	if !errors.Is(err, ErrNoPool) {
		t.Fatalf("expected ErrNoPool, got %v", err)
	}
}

func TestFetchV3Slot(t *testing.T) {
	poolABI, _ := V3PoolABI()
	pool := common.HexToAddress("0x4444444444444444444444444444444444444444")
	token0 := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	sqrtPrice := new(big.Int).Lsh(big.NewInt(1), 96)

	caller := newFakeCaller()
	caller.set(t, pool, poolABI, "token0", token0)
	caller.set(t, pool, poolABI, "slot0", sqrtPrice, big.NewInt(-12), uint16(1), uint16(2), uint16(3), uint8(0), true)
	caller.set(t, pool, poolABI, "liquidity", big.NewInt(5_000_000))

	slot, err := FetchV3Slot(context.Background(), caller, pool)
	if err != nil {
		t.Fatalf("slot: %v", err)
	}
	if slot.Token0 != token0 || slot.SqrtPriceX96.Cmp(sqrtPrice) != 0 || slot.Liquidity.Int64() != 5_000_000 {
		t.Fatalf("slot mismatch: %+v", slot)
	}
}

func TestPackRouterCalls(t *testing.T) {
	v2Router, _ := V2RouterABI()
	v3Router, _ := V3RouterABI()
	path := []common.Address{{1}, {2}}

	data, err := PackV2Swap(false, big.NewInt(1000), big.NewInt(990), path, common.Address{3}, big.NewInt(1700000000))
	if err != nil {
		t.Fatalf("pack v2: %v", err)
	}
	if !bytes.Equal(data[:4], v2Router.Methods["swapExactTokensForTokens"].ID) {
		t.Fatalf("v2 selector mismatch")
	}

	data, err = PackV2Swap(true, big.NewInt(1000), big.NewInt(990), path, common.Address{3}, big.NewInt(1700000000))
	if err != nil {
		t.Fatalf("pack v2 eth: %v", err)
	}
	if !bytes.Equal(data[:4], v2Router.Methods["swapExactETHForTokens"].ID) {
		t.Fatalf("v2 eth selector mismatch")
	}

	data, err = PackV3ExactInputSingle(ExactInputSingleParams{
		TokenIn:          common.Address{1},
		TokenOut:         common.Address{2},
		Fee:              big.NewInt(3000),
		Recipient:        common.Address{3},
		Deadline:         big.NewInt(1700000000),
		AmountIn:         big.NewInt(1000),
		AmountOutMinimum: big.NewInt(990),
	})
	if err != nil {
		t.Fatalf("pack v3: %v", err)
	}
	if !bytes.Equal(data[:4], v3Router.Methods["exactInputSingle"].ID) {
		t.Fatalf("v3 selector mismatch")
	}
	if len(data) != 4+8*32 {
		t.Fatalf("v3 calldata length mismatch: %d", len(data))
	}
}
