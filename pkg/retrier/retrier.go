package retrier

import (
	"context"
	"errors"
	"time"
)

// ErrAttemptsExhausted возвращается (обёрнутой вместе с последней ошибкой),
// когда бюджет попыток исчерпан.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type (
	ShouldRetryFunc func(error) bool

	// NotifyFunc вызывается перед каждой повторной попыткой.
	NotifyFunc func(err error, attempt uint64, next time.Duration)
)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration // 0 - без ограничения по общему времени
	Randomization   float64
	Multiplier      float64

	// MaxAttempts общее число попыток, включая первую. 0 - без ограничения.
	MaxAttempts uint64

	// AttemptTimeout дедлайн одной попытки. Превышение считается обычной ошибкой и тратит попытку.
	AttemptTimeout time.Duration

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc

	OnRetry NotifyFunc
}
