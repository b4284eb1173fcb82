//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=engine_test
package engine

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/workflow/orchestrator"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Orchestrator interface {
	Execute(
		ctx context.Context,
		order entities.Order,
		cancellation orchestrator.CancellationSource,
		sink orchestrator.EventSink,
	) entities.OrderResult
}

// Store хранит записи о выполнениях. Get возвращает последний запуск workflow.
type Store interface {
	Create(ctx context.Context, execution entities.Execution, order entities.Order) error
	Complete(ctx context.Context, runID string, result entities.OrderResult, closeTime time.Time) error
	Get(ctx context.Context, workflowID string) (*entities.Execution, error)
	List(ctx context.Context, limit uint64) ([]entities.Execution, error)
	DeleteClosedBefore(ctx context.Context, before time.Time) (int64, error)
}

// Release снимает блокировку, полученную через Locker.
type Release = func(ctx context.Context) error

// Locker гарантирует одно выполнение на заказ между процессами.
// Если блокировка уже занята, возвращает ErrAlreadyStarted.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

type EventSink interface {
	Emit(event entities.Event)
}
