package chaindata

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"quoteScope/internal/model"
)

// Static is an in-memory Port backed by fixed tables. Missing entries report
// KindNotFound; Fail entries override every lookup for a method.
type Static struct {
	mu sync.RWMutex

	NativeBalances map[common.Address]*big.Int
	TokenBalances  map[common.Address]map[common.Address]*big.Int
	Metadata       map[common.Address]model.TokenMeta
	Pools          map[PairKey]model.PoolState
	Gas            uint64
	Price          *big.Int

	// Fail maps a method name ("NativeBalance", "PoolState", ...) to a forced error.
	Fail map[string]error

	calls map[string]int
}

// PairKey indexes Static pools.
type PairKey struct {
	TokenIn  common.Address
	TokenOut common.Address
	Version  model.PoolVersion
}

// NewStatic returns an empty Static port.
func NewStatic() *Static {
	return &Static{
		NativeBalances: make(map[common.Address]*big.Int),
		TokenBalances:  make(map[common.Address]map[common.Address]*big.Int),
		Metadata:       make(map[common.Address]model.TokenMeta),
		Pools:          make(map[PairKey]model.PoolState),
		Fail:           make(map[string]error),
		calls:          make(map[string]int),
	}
}

// SetTokenBalance records a balance for owner.
func (s *Static) SetTokenBalance(token, owner common.Address, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TokenBalances[token] == nil {
		s.TokenBalances[token] = make(map[common.Address]*big.Int)
	}
	s.TokenBalances[token][owner] = amount
}

// SetPool records a pool for both orientations of a v2 pair.
func (s *Static) SetPool(tokenIn, tokenOut common.Address, pool model.PoolState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pools[PairKey{TokenIn: tokenIn, TokenOut: tokenOut, Version: pool.Version}] = pool
	if pool.Version == model.PoolV2 {
		reversed := pool
		reversed.ReserveIn, reversed.ReserveOut = pool.ReserveOut, pool.ReserveIn
		key := PairKey{TokenIn: tokenOut, TokenOut: tokenIn, Version: pool.Version}
		if _, ok := s.Pools[key]; !ok {
			s.Pools[key] = reversed
		}
	}
}

// Calls returns how many times method was invoked.
func (s *Static) Calls(method string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[method]
}

func (s *Static) enter(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	return s.Fail[method]
}

func (s *Static) NativeBalance(ctx context.Context, owner common.Address) (*big.Int, error) {
	if err := s.begin(ctx, "NativeBalance"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if amount, ok := s.NativeBalances[owner]; ok {
		return new(big.Int).Set(amount), nil
	}
	return new(big.Int), nil
}

func (s *Static) TokenBalance(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error) {
	if err := s.begin(ctx, "TokenBalance"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	holders, ok := s.TokenBalances[token]
	if !ok {
		return nil, NewError(KindNotFound, "balanceOf", fmt.Errorf("no contract at %s", token.Hex()))
	}
	if amount, ok := holders[owner]; ok {
		return new(big.Int).Set(amount), nil
	}
	return new(big.Int), nil
}

func (s *Static) TokenMetadata(ctx context.Context, token common.Address) (model.TokenMeta, error) {
	if err := s.begin(ctx, "TokenMetadata"); err != nil {
		return model.TokenMeta{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.Metadata[token]
	if !ok {
		return model.TokenMeta{}, NewError(KindNotFound, "decimals", fmt.Errorf("no contract at %s", token.Hex()))
	}
	return meta, nil
}

func (s *Static) PoolState(ctx context.Context, pair Pair) (model.PoolState, error) {
	if err := s.begin(ctx, "PoolState"); err != nil {
		return model.PoolState{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.Pools[PairKey{TokenIn: pair.TokenIn, TokenOut: pair.TokenOut, Version: pair.Version}]
	if !ok {
		return model.PoolState{}, NewError(KindNotFound, "getPair", fmt.Errorf("no %s pool for %s/%s", pair.Version, pair.TokenIn.Hex(), pair.TokenOut.Hex()))
	}
	return pool, nil
}

func (s *Static) EstimateGas(ctx context.Context, op GasOperation) (uint64, error) {
	if err := s.begin(ctx, "EstimateGas"); err != nil {
		return 0, err
	}
	return s.Gas, nil
}

func (s *Static) GasPrice(ctx context.Context) (*big.Int, error) {
	if err := s.begin(ctx, "GasPrice"); err != nil {
		return nil, err
	}
	if s.Price == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(s.Price), nil
}

func (s *Static) begin(ctx context.Context, method string) error {
	if err := s.enter(method); err != nil {
		return err
	}
	return ctx.Err()
}
