package orchestrator

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/internal/workflow/activity"
	"fulfillment/internal/workflow/result"
	"fulfillment/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fulfillment/internal/workflow/orchestrator"

const defaultDeliveryTransitWait = time.Minute

// failureNoticeTimeout ограничивает уведомление о системной ошибке,
// которое отправляется и после отмены контекста workflow.
const failureNoticeTimeout = 10 * time.Second

type Config struct {
	// DeliveryTransitWait время "в пути" между отправкой и доставкой.
	DeliveryTransitWait time.Duration
}

type Orchestrator struct {
	log         handlerLogger
	executor    *activity.Executor
	activities  Activities
	notifier    Notifier
	timer       Timer
	config      Config
	transitions map[entities.OrderStatus]transition
	tracer      trace.Tracer
}

func New(
	log handlerLogger,
	executor *activity.Executor,
	activities Activities,
	notifier Notifier,
	timer Timer,
	config Config,
) *Orchestrator {
	if config.DeliveryTransitWait < 0 {
		config.DeliveryTransitWait = defaultDeliveryTransitWait
	}
	if timer == nil {
		timer = SystemTimer{}
	}

	o := &Orchestrator{
		log:        log.With(),
		executor:   executor,
		activities: activities,
		notifier:   notifier,
		timer:      timer,
		config:     config,
		tracer:     otel.Tracer(tracerName),
	}
	o.transitions = o.transitionTable()

	return o
}

// run состояние одного выполнения. Живёт только внутри Execute.
type run struct {
	order     entities.Order
	builder   *result.Builder
	sink      EventSink
	packageID string
}

func (r *run) emit(eventType entities.EventType, activityName, message string) {
	r.sink.Emit(entities.Event{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		OrderID:   r.order.ID,
		Activity:  activityName,
		Status:    r.builder.Status(),
	})
}

type noopSink struct{}

func (noopSink) Emit(entities.Event) {}

// Execute проводит заказ через все шаги и всегда возвращает итог.
// Бизнес-отказы, отмена и системные ошибки (включая панику) превращаются в OrderResult
// со статусом CANCELLED, наружу ошибка не уходит.
func (o *Orchestrator) Execute(
	ctx context.Context,
	order entities.Order,
	cancellation CancellationSource,
	sink EventSink,
) (res entities.OrderResult) {
	if sink == nil {
		sink = noopSink{}
	}

	ctx, span := o.tracer.Start(ctx, "workflow.order",
		trace.WithAttributes(attribute.String("order.id", order.ID)),
	)
	defer func() {
		span.SetAttributes(attribute.String("order.status", res.Status.String()))
		span.End()
	}()

	r := &run{
		order:   order,
		builder: result.New(order.ID),
		sink:    sink,
	}

	defer func() {
		if p := recover(); p != nil {
			res = o.systemFailure(ctx, r, fmt.Errorf("%w: %v", ErrPanic, p))
			span.SetStatus(codes.Error, res.Message)
		}
	}()

	r.emit(entities.EventWorkflowStarted, "", fmt.Sprintf("Processing order %s", order.ID))

	for {
		from := r.builder.Status()
		if from.IsTerminal() {
			break
		}

		t, ok := o.transitions[from]
		if !ok {
			return o.systemFailure(ctx, r, fmt.Errorf("%w: %s", ErrNoTransition, from))
		}

		outcome, err := t.run(ctx, r)
		if err != nil {
			span.RecordError(err)
			return o.systemFailure(ctx, r, err)
		}

		if !outcome.ok {
			if t.external {
				r.emit(entities.EventActivityFailed, t.activity, outcome.message)
			}
			return o.domainFailure(ctx, r, outcome.message)
		}

		if !entities.CanTransition(from, t.to) {
			return o.systemFailure(ctx, r, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, t.to))
		}

		r.builder.Advance(t.to, outcome.message)
		if outcome.apply != nil {
			outcome.apply(r.builder)
		}
		if t.external {
			r.emit(entities.EventActivityCompleted, t.activity, outcome.message)
		}
		r.emit(entities.EventStatus, "", outcome.message)

		if t.onEnter != nil {
			t.onEnter(ctx, r)
		}

		// граница шага: отмена наблюдается только здесь
		if t.checkCancel {
			if reason, cancelled := cancellation.Peek(); cancelled {
				return o.cancel(ctx, r, reason)
			}
		}
	}

	res = r.builder.Build()
	r.emit(entities.EventWorkflowCompleted, "", res.Message)
	return res
}

func (o *Orchestrator) domainFailure(ctx context.Context, r *run, message string) entities.OrderResult {
	r.builder.Cancel(message)
	r.emit(entities.EventStatus, "", message)

	o.notify(ctx, r, noticeCancelled(r.order.ID, message))

	res := r.builder.Build()
	r.emit(entities.EventWorkflowCancelled, "", res.Message)
	return res
}

func (o *Orchestrator) cancel(ctx context.Context, r *run, reason string) entities.OrderResult {
	o.log.With(
		logger.NewField("order", r.order.ID),
		logger.NewField("reason", reason),
		logger.NewField("status", r.builder.Status().String()),
	).Info("cancellation observed at step boundary")
	r.emit(entities.EventLog, "", "Cancellation requested: "+reason)

	outcome, err := invoke(ctx, o, r, entities.ActivityCancelOrder,
		func(ctx context.Context) (entities.CancellationOutcome, error) {
			return o.activities.CancelOrder(ctx, r.order.ID, reason)
		},
	)
	if err != nil {
		return o.systemFailure(ctx, r, err)
	}

	message := msgCancelled(reason, outcome.RefundAmount)
	r.emit(entities.EventActivityCompleted, entities.ActivityCancelOrder, message)

	r.builder.Cancel(message)
	r.emit(entities.EventStatus, "", message)

	o.notify(ctx, r, noticeCancelled(r.order.ID, reason))

	res := r.builder.Build()
	r.emit(entities.EventWorkflowCancelled, "", res.Message)
	return res
}

func (o *Orchestrator) systemFailure(ctx context.Context, r *run, err error) entities.OrderResult {
	o.log.With(
		logger.NewField("order", r.order.ID),
		logger.NewField("status", r.builder.Status().String()),
		logger.NewField("error", err),
	).Error("workflow system error")

	message := msgSystemError(err)
	r.builder.Cancel(message)
	r.emit(entities.EventError, "", message)

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureNoticeTimeout)
	defer cancel()

	o.notify(notifyCtx, r, noticeSystemError(r.order.ID))

	res := r.builder.Build()
	r.emit(entities.EventWorkflowCancelled, "", res.Message)
	return res
}

func (o *Orchestrator) notify(ctx context.Context, r *run, message string) {
	outcome := o.notifier.Notify(ctx, r.order.Customer.Email, message, r.order.ID)
	if outcome.Notified {
		r.emit(entities.EventLog, entities.ActivityNotifyCustomer, "Customer notified: "+message)
		return
	}
	r.emit(entities.EventLog, entities.ActivityNotifyCustomer, "Customer notification failed")
}

// invoke вызывает активность через Executor и отмечает это в событиях.
func invoke[T any](
	ctx context.Context,
	o *Orchestrator,
	r *run,
	name string,
	fn func(context.Context) (T, error),
) (T, error) {
	r.emit(entities.EventActivityStarted, name, "Activity "+name+" started")

	value, err := activity.Invoke(ctx, o.executor, name, fn)
	if err != nil {
		r.emit(entities.EventActivityFailed, name, err.Error())
	}
	return value, err
}

type SystemTimer struct{}

func (SystemTimer) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
