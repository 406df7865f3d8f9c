package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"quoteScope/internal/amm"
	"quoteScope/internal/chaindata"
	"quoteScope/internal/dex"
	"quoteScope/internal/model"
)

const (
	// DefaultV3FeeTier is the 0.3% tier.
	DefaultV3FeeTier uint32 = 3000
	// v2FeeBps is the fixed Uniswap v2 swap fee.
	v2FeeBps uint32 = 30

	swapDeadline = time.Hour
)

// Contracts are the DEX deployments used for pool lookups and gas simulation.
type Contracts struct {
	V2Factory common.Address
	V2Router  common.Address
	V3Factory common.Address
	V3Router  common.Address
}

// MainnetContracts returns the Uniswap deployments on Ethereum mainnet.
func MainnetContracts() Contracts {
	return Contracts{
		V2Factory: common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
		V2Router:  common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
		V3Factory: common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
		V3Router:  common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564"),
	}
}

// Backend is the node access Source needs. *Client implements it.
type Backend interface {
	dex.Caller
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// Source implements chaindata.Port on top of an Ethereum node.
type Source struct {
	backend   Backend
	contracts Contracts
	logger    *zap.Logger
	now       func() time.Time
}

var _ chaindata.Port = (*Source)(nil)

// NewSource builds a Source for the given deployments.
func NewSource(backend Backend, contracts Contracts, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{backend: backend, contracts: contracts, logger: logger, now: time.Now}
}

func (s *Source) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	balance, err := s.backend.BalanceAt(ctx, owner, nil)
	if err != nil {
		return nil, wrap("eth_getBalance", err)
	}
	return balance, nil
}

func (s *Source) TokenBalance(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error) {
	balance, err := dex.FetchBalanceOf(ctx, s.backend, token, owner)
	if err != nil {
		return nil, wrap("balanceOf", err)
	}
	return balance, nil
}

func (s *Source) TokenMetadata(ctx context.Context, token common.Address) (model.TokenMeta, error) {
	meta, err := dex.FetchTokenMeta(ctx, s.backend, token)
	if err != nil {
		return model.TokenMeta{}, wrap("token metadata", err)
	}
	if meta.Symbol == "" {
		s.logger.Debug("token has no symbol", zap.String("token", token.Hex()))
	}
	return meta, nil
}

// PoolState resolves the pool for pair with one factory lookup and reads its state,
// oriented so that TokenIn is the input side.
func (s *Source) PoolState(ctx context.Context, pair chaindata.Pair) (model.PoolState, error) {
	switch pair.Version {
	case model.PoolV2, "":
		return s.v2PoolState(ctx, pair)
	case model.PoolV3:
		return s.v3PoolState(ctx, pair)
	default:
		return model.PoolState{}, chaindata.NewError(chaindata.KindNotFound, "pool state", fmt.Errorf("unsupported pool version %q", pair.Version))
	}
}

func (s *Source) v2PoolState(ctx context.Context, pair chaindata.Pair) (model.PoolState, error) {
	address, err := dex.FetchV2Pair(ctx, s.backend, s.contracts.V2Factory, pair.TokenIn, pair.TokenOut)
	if err != nil {
		return model.PoolState{}, wrap("getPair", err)
	}
	reserves, err := dex.FetchV2Reserves(ctx, s.backend, address)
	if err != nil {
		return model.PoolState{}, wrap("getReserves", err)
	}

	state := model.PoolState{
		Version:    model.PoolV2,
		Address:    address,
		ReserveIn:  reserves.Reserve0,
		ReserveOut: reserves.Reserve1,
		FeeBps:     v2FeeBps,
	}
	if reserves.Token0 != pair.TokenIn {
		state.ReserveIn, state.ReserveOut = reserves.Reserve1, reserves.Reserve0
	}
	return state, nil
}

func (s *Source) v3PoolState(ctx context.Context, pair chaindata.Pair) (model.PoolState, error) {
	feeTier := pair.FeeTier
	if feeTier == 0 {
		feeTier = DefaultV3FeeTier
	}

	address, err := dex.FetchV3Pool(ctx, s.backend, s.contracts.V3Factory, pair.TokenIn, pair.TokenOut, feeTier)
	if err != nil {
		return model.PoolState{}, wrap("getPool", err)
	}
	slot, err := dex.FetchV3Slot(ctx, s.backend, address)
	if err != nil {
		return model.PoolState{}, wrap("slot0", err)
	}

	return model.PoolState{
		Version:      model.PoolV3,
		Address:      address,
		SqrtPriceX96: amm.OrientSqrtPrice(slot.SqrtPriceX96, slot.Token0 == pair.TokenIn),
		Liquidity:    slot.Liquidity,
		FeeBps:       amm.FeeTierToBps(feeTier),
	}, nil
}

// EstimateGas simulates the router call that would execute the swap.
func (s *Source) EstimateGas(ctx context.Context, op chaindata.GasOperation) (uint64, error) {
	msg, err := s.swapCall(op)
	if err != nil {
		return 0, chaindata.NewError(chaindata.KindMalformed, "eth_estimateGas", err)
	}
	gas, err := s.backend.EstimateGas(ctx, msg)
	if err != nil {
		return 0, wrap("eth_estimateGas", err)
	}
	return gas, nil
}

func (s *Source) GasPrice(ctx context.Context) (*big.Int, error) {
	price, err := s.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, wrap("eth_gasPrice", err)
	}
	return price, nil
}

func (s *Source) swapCall(op chaindata.GasOperation) (ethereum.CallMsg, error) {
	deadline := big.NewInt(s.now().Add(swapDeadline).Unix())
	minOut := op.MinAmountOut
	if minOut == nil {
		minOut = new(big.Int)
	}

	var (
		router common.Address
		data   []byte
		err    error
	)
	switch op.Version {
	case model.PoolV3:
		feeTier := op.FeeTier
		if feeTier == 0 {
			feeTier = DefaultV3FeeTier
		}
		router = s.contracts.V3Router
		data, err = dex.PackV3ExactInputSingle(dex.ExactInputSingleParams{
			TokenIn:          op.TokenIn,
			TokenOut:         op.TokenOut,
			Fee:              new(big.Int).SetUint64(uint64(feeTier)),
			Recipient:        op.From,
			Deadline:         deadline,
			AmountIn:         op.AmountIn,
			AmountOutMinimum: minOut,
		})
	default:
		router = s.contracts.V2Router
		data, err = dex.PackV2Swap(op.NativeIn, op.AmountIn, minOut, []common.Address{op.TokenIn, op.TokenOut}, op.From, deadline)
	}
	if err != nil {
		return ethereum.CallMsg{}, err
	}

	msg := ethereum.CallMsg{From: op.From, To: &router, Data: data}
	if op.NativeIn {
		msg.Value = new(big.Int).Set(op.AmountIn)
	}
	return msg, nil
}

func wrap(op string, err error) error {
	return chaindata.NewError(Classify(err), op, err)
}
