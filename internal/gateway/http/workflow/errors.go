package workflow

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidRequest         = errors.New("workflow service rejected request")
	ErrWorkflowNotFound       = errors.New("workflow not found")
	ErrWorkflowNotRunning     = errors.New("workflow is not running")
	ErrWorkflowAlreadyStarted = errors.New("workflow already started")
)

// statusError неожиданный HTTP статус от сервиса workflow.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("workflow service responded %d %s", e.code, http.StatusText(e.code))
}
