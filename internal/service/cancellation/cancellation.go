package cancellation

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/engine"
	"fulfillment/internal/entities"
	"fulfillment/internal/gateway/http/workflow"
)

// Service передаёт запросы на отмену заказов из других систем в сервис workflow.
type Service struct {
	gateway WorkflowGateway
}

func New(gateway WorkflowGateway) *Service {
	return &Service{
		gateway: gateway,
	}
}

func (s *Service) CancelOrder(ctx context.Context, orderID string, request entities.CancellationRequest) error {
	if orderID == "" || request.Reason == "" {
		return ErrMissingRequiredFields
	}

	workflowID := engine.WorkflowID(orderID)

	err := s.gateway.CancelWorkflow(ctx, workflowID, request.Reason)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrWorkflowNotFound):
			return fmt.Errorf("%w: %s", ErrWorkflowNotFound, orderID)
		case errors.Is(err, workflow.ErrWorkflowNotRunning):
			return fmt.Errorf("%w: %s", ErrWorkflowClosed, orderID)
		case errors.Is(err, workflow.ErrInvalidRequest):
			return fmt.Errorf("%w: %w", ErrMissingRequiredFields, err)
		default:
			return fmt.Errorf("cancel workflow %s: %w", workflowID, err)
		}
	}
	return nil
}
