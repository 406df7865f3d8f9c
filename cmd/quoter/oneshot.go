package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quoteScope/internal/config"
	"quoteScope/internal/service"
)

// oneShot runs op against a freshly wired engine and prints its JSON result.
// Failures are printed as {"error": {...}} before being returned.
func oneShot(cmd *cobra.Command, op func(ctx context.Context, engine *service.Engine) (any, error)) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, closeClient, err := newEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	result, err := op(ctx, engine)
	if err != nil {
		svcErr := service.Translate(err)
		logger.Debug("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		_ = writeJSON(cmd.OutOrStdout(), map[string]any{"error": svcErr})
		return svcErr
	}
	return writeJSON(cmd.OutOrStdout(), result)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func runBalance(cmd *cobra.Command, args []string) error {
	req := service.BalanceRequest{Address: args[0]}
	if len(args) > 1 {
		req.Token = &args[1]
	}
	return oneShot(cmd, func(ctx context.Context, engine *service.Engine) (any, error) {
		return engine.Balance(ctx, req)
	})
}

func runPrice(cmd *cobra.Command, _ []string) error {
	var req service.PriceRequest
	if cmd.Flags().Changed("symbol") {
		symbol, _ := cmd.Flags().GetString("symbol")
		req.Symbol = &symbol
	}
	if cmd.Flags().Changed("contract-address") {
		address, _ := cmd.Flags().GetString("contract-address")
		req.ContractAddress = &address
	}
	return oneShot(cmd, func(ctx context.Context, engine *service.Engine) (any, error) {
		return engine.Price(ctx, req)
	})
}

func runQuote(cmd *cobra.Command, args []string) error {
	slippage, _ := cmd.Flags().GetInt64("slippage-bps")
	slippageBps := json.Number(strconv.FormatInt(slippage, 10))
	version, _ := cmd.Flags().GetString("pool-version")
	req := service.SwapRequest{
		FromToken:   args[0],
		ToToken:     args[1],
		Amount:      args[2],
		SlippageBps: &slippageBps,
		PoolVersion: version,
	}
	if cmd.Flags().Changed("from-address") {
		from, _ := cmd.Flags().GetString("from-address")
		req.FromAddress = &from
	}
	return oneShot(cmd, func(ctx context.Context, engine *service.Engine) (any, error) {
		return engine.SwapQuote(ctx, req)
	})
}

// runTokens needs no node connection.
func runTokens(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	registry, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), map[string]any{"tokens": registry.Tokens()})
}
