package engine

import "errors"

var (
	ErrInvalidOrder      = errors.New("invalid order")
	ErrAlreadyStarted    = errors.New("workflow already started for order")
	ErrNotFound          = errors.New("workflow execution not found")
	ErrNotRunning        = errors.New("workflow execution is not running")
	ErrResultUnavailable = errors.New("workflow result is not available")
	ErrShuttingDown      = errors.New("engine is shutting down")
	ErrNotOwned          = errors.New("workflow execution is running in another process")
	ErrEmptyReason       = errors.New("cancellation reason is required")
)
