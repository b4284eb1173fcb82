//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=workflow_cancel_post_test
package workflow_cancel_post

import (
	"context"

	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CancelWorkflow(ctx context.Context, workflowID, reason string) error
}
