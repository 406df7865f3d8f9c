package chain

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"quoteScope/internal/chaindata"
	"quoteScope/internal/metrics"
)

// do runs fn, retrying transport failures with exponential backoff when enabled.
func (c *Client) do(ctx context.Context, method string, fn func(context.Context) error) error {
	return withRetry(ctx, method, c.opts.MaxRetries, c.opts.RetryBackoff, c.logger, fn)
}

func withRetry(ctx context.Context, method string, maxRetries int, baseDelay time.Duration, logger *zap.Logger, fn func(context.Context) error) error {
	if maxRetries <= 0 {
		err := fn(ctx)
		metrics.ObserveChainCall(method, outcome(err))
		return err
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = baseDelay
	policy.MaxInterval = baseDelay * 10

	operation := func() (struct{}, error) {
		err := fn(ctx)
		metrics.ObserveChainCall(method, outcome(err))
		if err != nil && Classify(err) != chaindata.KindUnavailable {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	notify := func(err error, delay time.Duration) {
		metrics.ObserveChainRetry(method)
		logger.Debug("rpc retry", zap.String("method", method), zap.Duration("backoff", delay), zap.Error(err))
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(maxRetries)+1),
		backoff.WithNotify(notify))
	return err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return Classify(err).String()
}
