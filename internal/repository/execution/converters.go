package execution

import (
	"encoding/json"
	"fmt"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
	"github.com/AlekSi/pointer"
)

func ToDomain(e *ExecutionDB) (*entities.Execution, error) {
	if e == nil {
		return nil, nil
	}

	execution := &entities.Execution{
		WorkflowID: e.WorkflowID,
		RunID:      e.RunID,
		OrderID:    e.OrderID,
		Status:     entities.ExecutionStatus(e.Status),
		StartTime:  e.StartTime,
		CloseTime:  e.CloseTime,
	}

	if len(e.Result) > 0 {
		var result dto.OrderResult
		if err := json.Unmarshal(e.Result, &result); err != nil {
			return nil, fmt.Errorf("decode result of run %s: %w", e.RunID, err)
		}
		execution.Result = pointer.To(dto.ToDomainResult(result))
	}

	return execution, nil
}

func FromDomain(execution entities.Execution, order entities.Order) (*ExecutionDB, error) {
	orderJSON, err := json.Marshal(dto.FromDomainOrder(order))
	if err != nil {
		return nil, fmt.Errorf("encode order %s: %w", order.ID, err)
	}

	return &ExecutionDB{
		RunID:      execution.RunID,
		WorkflowID: execution.WorkflowID,
		OrderID:    execution.OrderID,
		Status:     execution.Status.String(),
		StartTime:  execution.StartTime,
		CloseTime:  execution.CloseTime,
		Order:      orderJSON,
	}, nil
}

func resultToJSON(result entities.OrderResult) ([]byte, error) {
	return json.Marshal(dto.FromDomainResult(result))
}
