package execution

import "time"

type ExecutionDB struct {
	RunID      string
	WorkflowID string
	OrderID    string
	Status     string
	StartTime  time.Time
	CloseTime  *time.Time
	// Result и Order хранятся как jsonb
	Result []byte
	Order  []byte
}
