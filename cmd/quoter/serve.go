package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quoteScope/internal/server"
)

func runServe(cmd *cobra.Command, _ []string) error {
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

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: &server.Handlers{
			Engine:         engine,
			RequestTimeout: cfg.RequestTimeout,
			Logger:         logger,
		},
		Config: server.ServerConfig{
			Addr:    cfg.Listen,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey,
		},
	})
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("quoter start",
		zap.String("listen", cfg.Listen),
		zap.String("rpc", cfg.RPCURL),
		zap.Int("tokens", len(engine.Registry().Symbols())),
		zap.Uint32("v3_fee_tier", cfg.V3FeeTier),
		zap.Bool("auth", cfg.APIKey != ""),
	)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return srv.WaitClosed(context.Background())
}
