package workflow

import (
	"context"

	"fulfillment/internal/engine"
	"fulfillment/internal/entities"
)

type Engine interface {
	Start(ctx context.Context, order entities.Order) (*engine.Handle, error)
	GetHandle(ctx context.Context, workflowID string) (*engine.Handle, error)
	List(ctx context.Context, limit uint64) ([]entities.Execution, error)
}
