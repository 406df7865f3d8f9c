package dex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"quoteScope/internal/model"
)

var (
	// ErrNoContract is returned when a call to an address yields no return data.
	ErrNoContract = errors.New("no contract code at address")
	// ErrNoPool is returned when a factory reports the zero address for a pair.
	ErrNoPool = errors.New("pool does not exist")
	// ErrDecode is returned when return data does not match the ABI.
	ErrDecode = errors.New("decode return data")
)

// Caller executes eth_call against a node.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

func callMethod(ctx context.Context, caller Caller, to common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), ErrNoContract)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w: %w", method, ErrDecode, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: %w: no values", method, ErrDecode)
	}
	return values, nil
}

// FetchTokenMeta loads decimals and symbol via ERC20 calls. Both are required;
// legacy bytes32 symbols are accepted.
func FetchTokenMeta(ctx context.Context, caller Caller, token common.Address) (model.TokenMeta, error) {
	stringABI, err := ERC20ABI()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	values, err := callMethod(ctx, caller, token, stringABI, "decimals")
	if err != nil {
		return model.TokenMeta{}, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("decimals: %w: %w", ErrDecode, err)
	}

	meta := model.TokenMeta{Decimals: decimals}
	symbol, err := fetchSymbol(ctx, caller, token, stringABI, bytes32ABI)
	if err != nil {
		return model.TokenMeta{}, err
	}
	meta.Symbol = symbol
	return meta, nil
}

// fetchSymbol reads symbol() as a string, retrying as bytes32 only when the
// response does not decode as a string.
func fetchSymbol(ctx context.Context, caller Caller, token common.Address, stringABI, bytes32ABI abi.ABI) (string, error) {
	values, err := callMethod(ctx, caller, token, stringABI, "symbol")
	if err == nil {
		symbol, ok := values[0].(string)
		if !ok {
			return "", fmt.Errorf("symbol: %w: unexpected type %T", ErrDecode, values[0])
		}
		return symbol, nil
	}
	if !errors.Is(err, ErrDecode) {
		return "", err
	}

	values, err = callMethod(ctx, caller, token, bytes32ABI, "symbol")
	if err != nil {
		return "", err
	}
	symbol, ok := bytes32ToString(values[0])
	if !ok {
		return "", fmt.Errorf("symbol: %w: unexpected type %T", ErrDecode, values[0])
	}
	return symbol, nil
}

// FetchBalanceOf returns the ERC20 balance of owner.
func FetchBalanceOf(ctx context.Context, caller Caller, token common.Address, owner common.Address) (*big.Int, error) {
	parsed, err := ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := callMethod(ctx, caller, token, parsed, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	balance, err := asBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("balanceOf: %w: %w", ErrDecode, err)
	}
	return balance, nil
}

// FetchV2Pair looks up the pair address for two tokens.
func FetchV2Pair(ctx context.Context, caller Caller, factory common.Address, tokenA, tokenB common.Address) (common.Address, error) {
	parsed, err := V2FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse v2 factory abi: %w", err)
	}
	values, err := callMethod(ctx, caller, factory, parsed, "getPair", tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	return nonZeroPool(values[0], "getPair")
}

// V2Reserves is a pair snapshot in the pair's own token order.
type V2Reserves struct {
	Token0   common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// FetchV2Reserves reads token0 and getReserves from a pair.
func FetchV2Reserves(ctx context.Context, caller Caller, pair common.Address) (V2Reserves, error) {
	parsed, err := V2PairABI()
	if err != nil {
		return V2Reserves{}, fmt.Errorf("parse v2 pair abi: %w", err)
	}

	values, err := callMethod(ctx, caller, pair, parsed, "token0")
	if err != nil {
		return V2Reserves{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return V2Reserves{}, fmt.Errorf("token0: %w: %w", ErrDecode, err)
	}

	values, err = callMethod(ctx, caller, pair, parsed, "getReserves")
	if err != nil {
		return V2Reserves{}, err
	}
	if len(values) < 2 {
		return V2Reserves{}, fmt.Errorf("getReserves: %w: got %d values", ErrDecode, len(values))
	}
	reserve0, err := asBigInt(values[0])
	if err != nil {
		return V2Reserves{}, fmt.Errorf("reserve0: %w: %w", ErrDecode, err)
	}
	reserve1, err := asBigInt(values[1])
	if err != nil {
		return V2Reserves{}, fmt.Errorf("reserve1: %w: %w", ErrDecode, err)
	}

	return V2Reserves{Token0: token0, Reserve0: reserve0, Reserve1: reserve1}, nil
}

// FetchV3Pool looks up the pool address for two tokens at a fee tier.
func FetchV3Pool(ctx context.Context, caller Caller, factory common.Address, tokenA, tokenB common.Address, feeTier uint32) (common.Address, error) {
	parsed, err := V3FactoryABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse v3 factory abi: %w", err)
	}
	values, err := callMethod(ctx, caller, factory, parsed, "getPool", tokenA, tokenB, new(big.Int).SetUint64(uint64(feeTier)))
	if err != nil {
		return common.Address{}, err
	}
	return nonZeroPool(values[0], "getPool")
}

// V3Slot is the subset of v3 pool state used for quoting.
type V3Slot struct {
	Token0       common.Address
	SqrtPriceX96 *big.Int
	Liquidity    *big.Int
}

// FetchV3Slot reads token0, slot0 and liquidity from a v3 pool.
func FetchV3Slot(ctx context.Context, caller Caller, pool common.Address) (V3Slot, error) {
	parsed, err := V3PoolABI()
	if err != nil {
		return V3Slot{}, fmt.Errorf("parse pool abi: %w", err)
	}

	values, err := callMethod(ctx, caller, pool, parsed, "token0")
	if err != nil {
		return V3Slot{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return V3Slot{}, fmt.Errorf("token0: %w: %w", ErrDecode, err)
	}

	values, err = callMethod(ctx, caller, pool, parsed, "slot0")
	if err != nil {
		return V3Slot{}, err
	}
	sqrtPrice, err := asBigInt(values[0])
	if err != nil {
		return V3Slot{}, fmt.Errorf("sqrt price: %w: %w", ErrDecode, err)
	}

	values, err = callMethod(ctx, caller, pool, parsed, "liquidity")
	if err != nil {
		return V3Slot{}, err
	}
	liquidity, err := asBigInt(values[0])
	if err != nil {
		return V3Slot{}, fmt.Errorf("liquidity: %w: %w", ErrDecode, err)
	}

	return V3Slot{Token0: token0, SqrtPriceX96: sqrtPrice, Liquidity: liquidity}, nil
}

func nonZeroPool(value interface{}, method string) (common.Address, error) {
	address, err := asAddress(value)
	if err != nil {
		return common.Address{}, fmt.Errorf("%s: %w: %w", method, ErrDecode, err)
	}
	if address == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%s: %w", method, ErrNoPool)
	}
	return address, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case *big.Int:
		if !v.IsUint64() || v.Uint64() > 255 {
			return 0, fmt.Errorf("decimals out of range: %s", v)
		}
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
