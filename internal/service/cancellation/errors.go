package cancellation

import "errors"

var (
	ErrMissingRequiredFields = errors.New("order id and reason are required")
	ErrWorkflowNotFound      = errors.New("no workflow for order")
	ErrWorkflowClosed        = errors.New("workflow for order already closed")
)
