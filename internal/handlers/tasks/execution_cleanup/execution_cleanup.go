package execution_cleanup

import (
	"context"
	"time"

	"fulfillment/pkg/logger"
)

type Service interface {
	CleanupClosedBefore(ctx context.Context, before time.Time) (int64, error)
}

// ExecutionCleanup удаляет записи о закрытых выполнениях старше retention.
type ExecutionCleanup struct {
	log       logger.Logger
	service   Service
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

func NewExecutionCleanup(log logger.Logger, service Service, interval, retention time.Duration) *ExecutionCleanup {
	return &ExecutionCleanup{
		log:       log,
		service:   service,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

func (e *ExecutionCleanup) TTL() time.Duration {
	return e.interval
}

func (e *ExecutionCleanup) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.interval)
	defer cancel()

	before := e.now().Add(-e.retention)
	deleted, err := e.service.CleanupClosedBefore(ctxWithTimeout, before)

	if deleted > 0 {
		e.log.With(
			logger.NewField("deleted_executions", deleted),
			logger.NewField("closed_before", before),
		).Info("execution cleanup")
	}

	return err
}

func (e *ExecutionCleanup) Info() string {
	return "execution cleanup"
}
