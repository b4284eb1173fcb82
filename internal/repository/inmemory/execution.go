package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fulfillment/internal/engine"
	"fulfillment/internal/entities"
	"github.com/AlekSi/pointer"
)

type record struct {
	execution entities.Execution
	order     entities.Order
}

// ExecutionRepository хранит выполнения в памяти процесса.
// Используется, когда PostgreSQL не настроен.
type ExecutionRepository struct {
	mu sync.RWMutex
	// runs по run id, latest по workflow id указывает на последний запуск
	runs   map[string]*record
	latest map[string]string
}

func NewExecutionRepository() *ExecutionRepository {
	return &ExecutionRepository{
		runs:   make(map[string]*record),
		latest: make(map[string]string),
	}
}

func (r *ExecutionRepository) Create(_ context.Context, execution entities.Execution, order entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if runID, ok := r.latest[execution.WorkflowID]; ok && !r.runs[runID].execution.IsClosed() {
		return fmt.Errorf("%w: %s", engine.ErrAlreadyStarted, execution.WorkflowID)
	}

	r.runs[execution.RunID] = &record{
		execution: execution,
		order:     order,
	}
	r.latest[execution.WorkflowID] = execution.RunID
	return nil
}

func (r *ExecutionRepository) Complete(_ context.Context, runID string, result entities.OrderResult, closeTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.runs[runID]
	if !ok {
		return fmt.Errorf("%w: run %s", engine.ErrNotFound, runID)
	}

	rec.execution.Status = entities.ExecutionStatusOf(result)
	rec.execution.CloseTime = pointer.To(closeTime)
	rec.execution.Result = pointer.To(result)
	return nil
}

func (r *ExecutionRepository) Get(_ context.Context, workflowID string) (*entities.Execution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runID, ok := r.latest[workflowID]
	if !ok {
		return nil, engine.ErrNotFound
	}

	execution := copyExecution(r.runs[runID].execution)
	return &execution, nil
}

// List возвращает последние запуски, новые первыми.
func (r *ExecutionRepository) List(_ context.Context, limit uint64) ([]entities.Execution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	executions := make([]entities.Execution, 0, len(r.latest))
	for _, runID := range r.latest {
		executions = append(executions, copyExecution(r.runs[runID].execution))
	}

	sort.Slice(executions, func(i, j int) bool {
		return executions[i].StartTime.After(executions[j].StartTime)
	})

	if uint64(len(executions)) > limit {
		executions = executions[:limit]
	}
	return executions, nil
}

func (r *ExecutionRepository) DeleteClosedBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for runID, rec := range r.runs {
		closeTime := rec.execution.CloseTime
		if closeTime == nil || !closeTime.Before(before) {
			continue
		}

		delete(r.runs, runID)
		if r.latest[rec.execution.WorkflowID] == runID {
			delete(r.latest, rec.execution.WorkflowID)
		}
		deleted++
	}
	return deleted, nil
}

func copyExecution(execution entities.Execution) entities.Execution {
	if execution.CloseTime != nil {
		execution.CloseTime = pointer.To(*execution.CloseTime)
	}
	if execution.Result != nil {
		execution.Result = pointer.To(*execution.Result)
	}
	return execution
}
