package workflow

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
)

const maxListLimit = 1000

type Service struct {
	engine Engine
}

func New(engine Engine) *Service {
	return &Service{
		engine: engine,
	}
}

func (s *Service) StartWorkflow(ctx context.Context, order entities.Order) (entities.WorkflowRef, error) {
	handle, err := s.engine.Start(ctx, order)
	if err != nil {
		return entities.WorkflowRef{}, err
	}

	return entities.WorkflowRef{
		WorkflowID: handle.WorkflowID,
		RunID:      handle.RunID,
	}, nil
}

func (s *Service) ListWorkflows(ctx context.Context, limit uint64) ([]entities.Execution, error) {
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.engine.List(ctx, limit)
}

func (s *Service) DescribeWorkflow(ctx context.Context, workflowID string) (entities.Execution, error) {
	handle, err := s.engine.GetHandle(ctx, workflowID)
	if err != nil {
		return entities.Execution{}, err
	}
	return handle.Describe(ctx)
}

// WorkflowResult возвращает состояние выполнения, предварительно подождав его завершения
// не дольше wait. Если workflow за это время не закрылся, возвращается статус RUNNING.
func (s *Service) WorkflowResult(ctx context.Context, workflowID string, wait time.Duration) (entities.Execution, error) {
	handle, err := s.engine.GetHandle(ctx, workflowID)
	if err != nil {
		return entities.Execution{}, err
	}

	if wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		_, err := handle.Result(waitCtx)
		cancel()

		// истечение wait не ошибка, а вот отмена самого запроса ошибка
		if err != nil && ctx.Err() != nil {
			return entities.Execution{}, fmt.Errorf("wait result: %w", ctx.Err())
		}
	}

	return handle.Describe(ctx)
}

func (s *Service) CancelWorkflow(ctx context.Context, workflowID, reason string) error {
	handle, err := s.engine.GetHandle(ctx, workflowID)
	if err != nil {
		return err
	}
	return handle.Signal(ctx, reason)
}
