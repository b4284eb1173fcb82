package entities

import "time"

type ExecutionStatus string

const (
	ExecutionRunning   ExecutionStatus = "RUNNING"
	ExecutionCompleted ExecutionStatus = "COMPLETED"
	ExecutionCancelled ExecutionStatus = "CANCELLED"
	ExecutionFailed    ExecutionStatus = "FAILED"
)

func (s ExecutionStatus) String() string {
	return string(s)
}

// ExecutionStatusOf переводит итог заказа в статус выполнения workflow.
func ExecutionStatusOf(result OrderResult) ExecutionStatus {
	switch result.Status {
	case OrderDelivered:
		return ExecutionCompleted
	case OrderCancelled:
		return ExecutionCancelled
	default:
		return ExecutionFailed
	}
}

type Execution struct {
	WorkflowID string
	RunID      string
	OrderID    string
	Status     ExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
	Result     *OrderResult
}

func (e Execution) IsClosed() bool {
	return e.Status != ExecutionRunning
}

type WorkflowRef struct {
	WorkflowID string
	RunID      string
}
