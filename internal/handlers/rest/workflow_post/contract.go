//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=workflow_post_test
package workflow_post

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	StartWorkflow(ctx context.Context, order entities.Order) (entities.WorkflowRef, error)
}
