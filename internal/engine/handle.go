package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/workflow/cancellation"
	"github.com/AlekSi/pointer"
)

const resultPollInterval = 500 * time.Millisecond

// execution состояние выполнения, запущенного этим процессом.
type execution struct {
	ref       entities.WorkflowRef
	orderID   string
	startTime time.Time
	cancel    *cancellation.Channel
	done      chan struct{}

	mu        sync.RWMutex
	closeTime *time.Time
	result    *entities.OrderResult
}

func newExecution(ref entities.WorkflowRef, orderID string, startTime time.Time) *execution {
	return &execution{
		ref:       ref,
		orderID:   orderID,
		startTime: startTime,
		cancel:    cancellation.New(),
		done:      make(chan struct{}),
	}
}

func (x *execution) finish(res entities.OrderResult, closeTime time.Time) {
	x.mu.Lock()
	x.result = &res
	x.closeTime = pointer.To(closeTime)
	x.mu.Unlock()

	close(x.done)
}

func (x *execution) closed() bool {
	select {
	case <-x.done:
		return true
	default:
		return false
	}
}

func (x *execution) snapshot() entities.Execution {
	x.mu.RLock()
	defer x.mu.RUnlock()

	snapshot := entities.Execution{
		WorkflowID: x.ref.WorkflowID,
		RunID:      x.ref.RunID,
		OrderID:    x.orderID,
		Status:     entities.ExecutionRunning,
		StartTime:  x.startTime,
		CloseTime:  x.closeTime,
	}
	if x.result != nil {
		res := *x.result
		snapshot.Result = &res
		snapshot.Status = entities.ExecutionStatusOf(res)
	}
	return snapshot
}

// Handle ссылка на выполнение workflow. Для выполнений, которые ведёт этот процесс,
// exec заполнен, для остальных состояние читается из Store.
type Handle struct {
	WorkflowID string
	RunID      string

	engine *Engine
	exec   *execution
}

// Result ждёт завершения выполнения и возвращает итог заказа.
func (h *Handle) Result(ctx context.Context) (entities.OrderResult, error) {
	if h.exec != nil {
		select {
		case <-h.exec.done:
			return *h.exec.snapshot().Result, nil
		case <-ctx.Done():
			return entities.OrderResult{}, fmt.Errorf("wait for %s: %w", h.WorkflowID, ctx.Err())
		}
	}

	ticker := time.NewTicker(resultPollInterval)
	defer ticker.Stop()

	for {
		record, err := h.engine.store.Get(ctx, h.WorkflowID)
		if err != nil {
			return entities.OrderResult{}, fmt.Errorf("get execution %s: %w", h.WorkflowID, err)
		}
		if record.IsClosed() {
			if record.Result == nil {
				return entities.OrderResult{}, fmt.Errorf("%w: %s", ErrResultUnavailable, h.WorkflowID)
			}
			return *record.Result, nil
		}

		select {
		case <-ctx.Done():
			return entities.OrderResult{}, fmt.Errorf("wait for %s: %w", h.WorkflowID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// TryResult возвращает итог, не дожидаясь завершения. ok=false пока выполнение идёт.
func (h *Handle) TryResult(ctx context.Context) (entities.OrderResult, bool, error) {
	execution, err := h.Describe(ctx)
	if err != nil {
		return entities.OrderResult{}, false, err
	}
	if !execution.IsClosed() || execution.Result == nil {
		return entities.OrderResult{}, false, nil
	}
	return *execution.Result, true, nil
}

// Signal передаёт запрос на отмену. Workflow заметит его на ближайшей границе шага.
// Сигнал доходит только до выполнений этого процесса; для идущего в другом
// процессе возвращается ErrNotOwned.
func (h *Handle) Signal(ctx context.Context, reason string) error {
	if reason == "" {
		WorkflowSignalsTotal.WithLabelValues("rejected").Inc()
		return ErrEmptyReason
	}

	if h.exec == nil {
		WorkflowSignalsTotal.WithLabelValues("rejected").Inc()
		return h.remoteSignalError(ctx)
	}
	if h.exec.closed() {
		WorkflowSignalsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: %s", ErrNotRunning, h.WorkflowID)
	}

	h.exec.cancel.Signal(reason)
	WorkflowSignalsTotal.WithLabelValues("accepted").Inc()

	h.engine.emit(h.exec, entities.EventLog, "Cancellation signal received: "+reason)
	return nil
}

// remoteSignalError объясняет, почему сигнал не доставлен выполнению,
// которого нет в этом процессе.
func (h *Handle) remoteSignalError(ctx context.Context) error {
	record, err := h.engine.store.Get(ctx, h.WorkflowID)
	if err != nil {
		return fmt.Errorf("signal %s: %w", h.WorkflowID, err)
	}
	if !record.IsClosed() {
		return fmt.Errorf("%w: %s", ErrNotOwned, h.WorkflowID)
	}
	return fmt.Errorf("%w: %s", ErrNotRunning, h.WorkflowID)
}

func (h *Handle) Describe(ctx context.Context) (entities.Execution, error) {
	if h.exec != nil {
		return h.exec.snapshot(), nil
	}

	record, err := h.engine.store.Get(ctx, h.WorkflowID)
	if err != nil {
		return entities.Execution{}, fmt.Errorf("describe %s: %w", h.WorkflowID, err)
	}
	return *record, nil
}
