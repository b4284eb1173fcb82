package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/pkg/logger"
	retrierconfig "fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fulfillment/internal/workflow/activity"

const (
	defaultStartToCloseTimeout = 30 * time.Second
	defaultMaxAttempts         = 3
	defaultInitialInterval     = 1 * time.Second
	defaultBackoffCoefficient  = 2.0
	defaultRandomization       = 0.2
)

type Config struct {
	StartToCloseTimeout time.Duration
	MaxAttempts         uint64
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	BackoffCoefficient  float64
}

func DefaultConfig() Config {
	return Config{
		StartToCloseTimeout: defaultStartToCloseTimeout,
		MaxAttempts:         defaultMaxAttempts,
		InitialInterval:     defaultInitialInterval,
		MaxInterval:         100 * defaultInitialInterval,
		BackoffCoefficient:  defaultBackoffCoefficient,
	}
}

// Executor вызывает активности с дедлайном на попытку и ограниченным числом попыток.
// Не хранит состояния конкретного выполнения, один экземпляр обслуживает все workflow.
type Executor struct {
	log    handlerLogger
	config Config
	tracer trace.Tracer
}

func New(log handlerLogger, config Config) *Executor {
	defaults := DefaultConfig()
	if config.StartToCloseTimeout <= 0 {
		config.StartToCloseTimeout = defaults.StartToCloseTimeout
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = defaults.InitialInterval
	}
	if config.MaxInterval < config.InitialInterval {
		config.MaxInterval = 100 * config.InitialInterval
	}
	if config.BackoffCoefficient < 1 {
		config.BackoffCoefficient = defaults.BackoffCoefficient
	}

	return &Executor{
		log:    log.With(),
		config: config,
		tracer: otel.Tracer(tracerName),
	}
}

func (e *Executor) Config() Config {
	return e.config
}

// Invoke выполняет активность name.
//
// Любая ошибка fn (включая превышение дедлайна попытки и панику) считается сбоем
// транспорта и повторяется, пока не кончится бюджет попыток. Бизнес-отказ должен
// возвращаться внутри T: такой результат отдаётся сразу, без повторов.
func Invoke[T any](ctx context.Context, e *Executor, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := e.tracer.Start(ctx, "activity."+name,
		trace.WithAttributes(attribute.String("activity.name", name)),
	)
	defer span.End()

	activityLog := e.log.With(
		logger.NewField("activity", name),
	)

	var (
		result  T
		attempt uint64
	)

	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: e.config.InitialInterval,
		MaxInterval:     e.config.MaxInterval,
		MaxElapsedTime:  0, // ограничиваемся числом попыток
		Randomization:   defaultRandomization,
		Multiplier:      e.config.BackoffCoefficient,
		MaxAttempts:     e.config.MaxAttempts,
		AttemptTimeout:  e.config.StartToCloseTimeout,
		ShouldRetry: func(err error) bool {
			return !IsNonRetryable(err)
		},
		OnRetry: func(err error, attempt uint64, next time.Duration) {
			activityLog.Warn("activity attempt failed, retrying",
				logger.NewField("attempt", attempt),
				logger.NewField("next_attempt_in", next.String()),
				logger.NewField("error", err),
			)
		},
	})

	start := time.Now()
	err := retrier.ExecuteWithContext(ctx, func(attemptCtx context.Context) error {
		attempt++
		ActivityAttemptsTotal.WithLabelValues(name).Inc()

		value, err := runAttempt(attemptCtx, fn)
		if err != nil {
			return err
		}
		result = value
		return nil
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ActivityDuration.WithLabelValues(name, outcome).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		ActivityRetriesTotal.WithLabelValues(name, outcome).Inc()
	}
	span.SetAttributes(attribute.Int64("activity.attempts", int64(attempt)))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		activityLog.Error("activity failed",
			logger.NewField("attempts", attempt),
			logger.NewField("error", err),
		)

		var zero T
		return zero, fmt.Errorf("activity %s: %w", name, err)
	}

	return result, nil
}

// runAttempt отдаёт результат только если fn успела до дедлайна ctx.
// Опоздавшая горутина дописывает в буферизованный канал и завершается сама.
func runAttempt[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type attemptResult struct {
		value T
		err   error
	}

	done := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptResult{err: fmt.Errorf("%w: %v", ErrActivityPanic, r)}
			}
		}()

		value, err := fn(ctx)
		done <- attemptResult{value: value, err: err}
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w: %w", ErrAttemptTimeout, ctx.Err())
		}
		return zero, ctx.Err()
	}
}
