package entities

import "time"

type EventType string

const (
	EventWorkflowStarted   EventType = "workflow_started"
	EventWorkflowCreated   EventType = "workflow_created"
	EventWorkflowCompleted EventType = "workflow_completed"
	EventWorkflowCancelled EventType = "workflow_cancelled"
	EventActivityStarted   EventType = "activity_started"
	EventActivityCompleted EventType = "activity_completed"
	EventActivityFailed    EventType = "activity_failed"
	EventLog               EventType = "log"
	EventError             EventType = "error"
	EventStatus            EventType = "status"

	// сообщения websocket-моста, не события workflow
	EventWelcome          EventType = "welcome"
	EventCancellationSent EventType = "cancellation_sent"
)

func (t EventType) String() string {
	return string(t)
}

// Event структурированное событие о ходе выполнения workflow.
// Type, Message и Timestamp заполнены всегда, остальные поля по ситуации.
type Event struct {
	Type       EventType   `json:"type"`
	Message    string      `json:"message"`
	Timestamp  time.Time   `json:"timestamp"`
	WorkflowID string      `json:"workflowId,omitempty"`
	RunID      string      `json:"runId,omitempty"`
	OrderID    string      `json:"orderId,omitempty"`
	Activity   string      `json:"activity,omitempty"`
	Status     OrderStatus `json:"status,omitempty"`
	Attempt    uint64      `json:"attempt,omitempty"`
}
