package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quoteScope/internal/chain"
	"quoteScope/internal/config"
	"quoteScope/internal/service"
	"quoteScope/internal/token"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "Ethereum balance, price and swap quote engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotEnv(".env")
		},
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "Ethereum RPC URL")
	root.PersistentFlags().Uint64("chain-id", chain.MainnetChainID, "expected chain id of the RPC node (0 skips the check)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Int("max-retries", 0, "retry attempts after a transport failure (0 disables)")
	root.PersistentFlags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	root.PersistentFlags().Uint32("v3-fee-tier", chain.DefaultV3FeeTier, "Uniswap v3 fee tier in hundredths of a bip")
	root.PersistentFlags().StringSlice("token", nil, "extra tokens as SYMBOL=0xADDRESS:DECIMALS (comma-separated)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quote tools over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().String("listen", "0.0.0.0:8000", "listen address")
	serveCmd.Flags().Duration("request-timeout", 15*time.Second, "per-request timeout")
	serveCmd.Flags().String("api-key", "", "require this X-API-Key on /v1 routes")
	serveCmd.Flags().Bool("dev-mode", false, "include error causes in responses")
	root.AddCommand(serveCmd)

	balanceCmd := &cobra.Command{
		Use:   "balance <address> [token]",
		Short: "Print the ETH or token balance of a wallet",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runBalance,
	}
	root.AddCommand(balanceCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Print the ETH and USD price of a token",
		Args:  cobra.NoArgs,
		RunE:  runPrice,
	}
	priceCmd.Flags().String("symbol", "", "token symbol")
	priceCmd.Flags().String("contract-address", "", "token contract address")
	root.AddCommand(priceCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote <from> <to> <amount>",
		Short: "Print a swap quote",
		Args:  cobra.ExactArgs(3),
		RunE:  runQuote,
	}
	quoteCmd.Flags().Int64("slippage-bps", int64(service.DefaultSlippageBps), "slippage tolerance in basis points")
	quoteCmd.Flags().String("pool-version", "v2", "pool version (v2 or v3)")
	quoteCmd.Flags().String("from-address", "", "sender to simulate gas for")
	root.AddCommand(quoteCmd)

	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the supported token table",
		Args:  cobra.NoArgs,
		RunE:  runTokens,
	}
	root.AddCommand(tokensCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func newRegistry(cfg config.Config) (*token.Registry, error) {
	entries := make([]token.Entry, 0, len(token.DefaultEntries)+len(cfg.Tokens))
	entries = append(entries, token.DefaultEntries...)
	entries = append(entries, cfg.Tokens...)
	return token.NewRegistry(entries)
}

// newEngine dials the node and wires the engine. The returned func closes the client.
func newEngine(ctx context.Context, cfg config.Config, logger *zap.Logger) (*service.Engine, func(), error) {
	if cfg.RPCURL == "" {
		return nil, nil, fmt.Errorf("rpc url is required")
	}

	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL, chain.Options{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Logger:       logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect rpc: %w", err)
	}
	if err := chain.VerifyChainID(ctx, client, cfg.ChainID); err != nil {
		client.Close()
		return nil, nil, err
	}

	source := chain.NewSource(client, cfg.Contracts, logger)
	engine, err := service.NewEngine(registry, source, service.Options{
		V3FeeTier: cfg.V3FeeTier,
		Logger:    logger,
	})
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return engine, client.Close, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
