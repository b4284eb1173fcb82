package backoff_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/pkg/retrier"
	"github.com/cenkalti/backoff/v4"
)

type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	var b backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	if r.config.MaxAttempts > 0 {
		// WithMaxRetries считает повторы, первая попытка не входит
		b = backoff.WithMaxRetries(b, r.config.MaxAttempts-1)
	}

	var (
		attempt  uint64
		retrying bool
	)

	operation := func() error {
		attempt++

		err := r.attempt(ctx, fn)
		if err == nil {
			return nil
		}

		// отмена внешнего контекста - не повод ретраить
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}

		retrying = true
		return err
	}

	notify := func(err error, next time.Duration) {
		if r.config.OnRetry != nil {
			r.config.OnRetry(err, attempt, next)
		}
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if err == nil {
		return nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}

	if retrying && ctx.Err() == nil && r.config.MaxAttempts > 0 && attempt >= r.config.MaxAttempts {
		return fmt.Errorf("%w (attempts=%d): %w", retrier.ErrAttemptsExhausted, attempt, err)
	}
	return err
}

func (r *Retrier) attempt(ctx context.Context, fn func(context.Context) error) error {
	if r.config.AttemptTimeout <= 0 {
		return fn(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, r.config.AttemptTimeout)
	defer cancel()

	return fn(attemptCtx)
}
