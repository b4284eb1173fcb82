package activity

import (
	"errors"

	"fulfillment/pkg/retrier"
)

var (
	// ErrRetryExhausted все попытки вызова активности завершились сбоем транспорта.
	ErrRetryExhausted = retrier.ErrAttemptsExhausted

	ErrAttemptTimeout = errors.New("activity attempt timed out")
	ErrActivityPanic  = errors.New("activity panicked")
)

type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string {
	return e.err.Error()
}

func (e *nonRetryableError) Unwrap() error {
	return e.err
}

// NonRetryable помечает ошибку, которую нет смысла повторять (например, невалидные аргументы).
func NonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &nonRetryableError{err: err}
}

func IsNonRetryable(err error) bool {
	var target *nonRetryableError
	return errors.As(err, &target)
}
