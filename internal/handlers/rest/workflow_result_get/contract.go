//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=workflow_result_get_test
package workflow_result_get

import (
	"context"
	"time"

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
	WorkflowResult(ctx context.Context, workflowID string, wait time.Duration) (entities.Execution, error)
}
