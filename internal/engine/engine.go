package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
	"github.com/google/uuid"
)

const (
	workflowIDPrefix = "order-"
	lockKeyPrefix    = "fulfillment:workflow:"

	defaultLockTTL      = time.Hour
	defaultStoreTimeout = 5 * time.Second
	defaultListLimit    = 100
)

type Config struct {
	// LockTTL страховка на случай падения процесса, держащего блокировку.
	LockTTL time.Duration
	// StoreTimeout дедлайн записи итога выполнения.
	StoreTimeout time.Duration
}

// WorkflowID идентификатор workflow для заказа.
func WorkflowID(orderID string) string {
	return workflowIDPrefix + orderID
}

// Engine запускает выполнения workflow и даёт к ним доступ через Handle.
type Engine struct {
	log          handlerLogger
	orchestrator Orchestrator
	store        Store
	locker       Locker
	sink         EventSink
	config       Config
	now          func() time.Time

	mu       sync.Mutex
	running  map[string]*execution
	stopping bool
	wg       sync.WaitGroup

	// baseCtx живёт дольше любого запроса: выполнение не должно прерываться вместе с HTTP запросом.
	baseCtx context.Context
	abort   context.CancelFunc
}

func New(
	log handlerLogger,
	orchestrator Orchestrator,
	store Store,
	locker Locker,
	sink EventSink,
	config Config,
) *Engine {
	if config.LockTTL <= 0 {
		config.LockTTL = defaultLockTTL
	}
	if config.StoreTimeout <= 0 {
		config.StoreTimeout = defaultStoreTimeout
	}
	if locker == nil {
		locker = localLocker{}
	}
	if sink == nil {
		sink = discardSink{}
	}

	baseCtx, abort := context.WithCancel(context.Background())

	return &Engine{
		log:          log.With(logger.NewField("component", "workflow-engine")),
		orchestrator: orchestrator,
		store:        store,
		locker:       locker,
		sink:         sink,
		config:       config,
		now:          time.Now,
		running:      make(map[string]*execution),
		baseCtx:      baseCtx,
		abort:        abort,
	}
}

// Start запускает выполнение для заказа. Ошибка возвращается только если
// выполнение не удалось запустить: итог самого заказа доступен через Handle.Result.
func (e *Engine) Start(ctx context.Context, order entities.Order) (*Handle, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	workflowID := WorkflowID(order.ID)
	exec := newExecution(entities.WorkflowRef{
		WorkflowID: workflowID,
		RunID:      uuid.NewString(),
	}, order.ID, e.now())

	e.mu.Lock()
	if e.stopping {
		e.mu.Unlock()
		return nil, ErrShuttingDown
	}
	if _, ok := e.running[workflowID]; ok {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrAlreadyStarted, order.ID)
	}
	// резервируем слот до похода во внешние системы, Shutdown ждёт и его
	e.running[workflowID] = exec
	e.wg.Add(1)
	e.mu.Unlock()

	release, err := e.locker.Acquire(ctx, lockKeyPrefix+workflowID, e.config.LockTTL)
	if err != nil {
		e.forget(exec)
		e.wg.Done()
		return nil, fmt.Errorf("acquire workflow lock: %w", err)
	}

	err = e.store.Create(ctx, exec.snapshot(), order)
	if err != nil {
		e.forget(exec)
		e.releaseLock(release, workflowID)
		e.wg.Done()
		return nil, fmt.Errorf("store execution: %w", err)
	}

	WorkflowsStartedTotal.Inc()
	WorkflowsRunning.Inc()

	// workflow_created уходит до первого события оркестратора
	e.emit(exec, entities.EventWorkflowCreated, fmt.Sprintf("Workflow %s created for order %s", workflowID, order.ID))

	go e.run(exec, order, release)

	e.log.With(
		logger.NewField("workflow_id", workflowID),
		logger.NewField("run_id", exec.ref.RunID),
		logger.NewField("order", order.ID),
	).Info("workflow started")

	return &Handle{
		WorkflowID: workflowID,
		RunID:      exec.ref.RunID,
		engine:     e,
		exec:       exec,
	}, nil
}

// GetHandle возвращает Handle для выполняющегося или уже завершённого workflow.
func (e *Engine) GetHandle(ctx context.Context, workflowID string) (*Handle, error) {
	e.mu.Lock()
	exec, ok := e.running[workflowID]
	e.mu.Unlock()

	if ok {
		return &Handle{
			WorkflowID: workflowID,
			RunID:      exec.ref.RunID,
			engine:     e,
			exec:       exec,
		}, nil
	}

	record, err := e.store.Get(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("get execution %s: %w", workflowID, err)
	}

	return &Handle{
		WorkflowID: record.WorkflowID,
		RunID:      record.RunID,
		engine:     e,
	}, nil
}

func (e *Engine) List(ctx context.Context, limit uint64) ([]entities.Execution, error) {
	if limit == 0 {
		limit = defaultListLimit
	}

	executions, err := e.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	return executions, nil
}

// CleanupClosedBefore удаляет записи о выполнениях, закрытых раньше before.
func (e *Engine) CleanupClosedBefore(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := e.store.DeleteClosedBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("cleanup executions: %w", err)
	}
	return deleted, nil
}

// Shutdown перестаёт принимать новые заказы и ждёт текущие выполнения.
// Если ctx истёк раньше, выполнения прерываются и завершаются системной ошибкой.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.stopping = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.abort()
		return nil
	case <-ctx.Done():
		e.log.Warn("shutdown deadline reached, aborting running workflows")
		e.abort()
		<-done
		return ctx.Err()
	}
}

func (e *Engine) run(exec *execution, order entities.Order, release Release) {
	defer e.wg.Done()
	defer WorkflowsRunning.Dec()

	res := e.orchestrator.Execute(e.baseCtx, order, exec.cancel, executionSink{exec: exec, sink: e.sink, now: e.now})

	closeTime := e.now()
	exec.finish(res, closeTime)

	WorkflowsClosedTotal.WithLabelValues(res.Status.String()).Inc()
	WorkflowDuration.Observe(closeTime.Sub(exec.startTime).Seconds())

	runLog := e.log.With(
		logger.NewField("workflow_id", exec.ref.WorkflowID),
		logger.NewField("run_id", exec.ref.RunID),
		logger.NewField("order", order.ID),
		logger.NewField("status", res.Status.String()),
	)
	runLog.Info("workflow closed", logger.NewField("message", res.Message))

	// контекст независим от baseCtx: итог нужно записать и при остановке
	storeCtx, cancel := context.WithTimeout(context.Background(), e.config.StoreTimeout)
	defer cancel()

	if err := e.store.Complete(storeCtx, exec.ref.RunID, res, closeTime); err != nil {
		runLog.Error("failed to store workflow result", logger.NewField("error", err))
	}
	e.releaseLock(release, exec.ref.WorkflowID)
	e.forget(exec)
}

func (e *Engine) forget(exec *execution) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if current, ok := e.running[exec.ref.WorkflowID]; ok && current == exec {
		delete(e.running, exec.ref.WorkflowID)
	}
}

func (e *Engine) releaseLock(release Release, workflowID string) {
	ctx, cancel := context.WithTimeout(context.Background(), e.config.StoreTimeout)
	defer cancel()

	if err := release(ctx); err != nil {
		e.log.With(
			logger.NewField("workflow_id", workflowID),
			logger.NewField("error", err),
		).Warn("failed to release workflow lock")
	}
}

func (e *Engine) emit(exec *execution, eventType entities.EventType, message string) {
	executionSink{exec: exec, sink: e.sink, now: e.now}.Emit(entities.Event{
		Type:    eventType,
		Message: message,
		OrderID: exec.orderID,
	})
}

// executionSink дописывает в события идентификаторы выполнения.
type executionSink struct {
	exec *execution
	sink EventSink
	now  func() time.Time
}

func (s executionSink) Emit(event entities.Event) {
	event.WorkflowID = s.exec.ref.WorkflowID
	event.RunID = s.exec.ref.RunID
	if event.OrderID == "" {
		event.OrderID = s.exec.orderID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.sink.Emit(event)
}

type discardSink struct{}

func (discardSink) Emit(entities.Event) {}

// localLocker достаточно для одного процесса: дубликаты отсекает карта running.
type localLocker struct{}

func (localLocker) Acquire(context.Context, string, time.Duration) (Release, error) {
	return func(context.Context) error { return nil }, nil
}

// IsClientError ошибки Start/Signal, вызванные входными данными, а не инфраструктурой.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrAlreadyStarted) ||
		errors.Is(err, ErrNotRunning) ||
		errors.Is(err, ErrEmptyReason)
}
