package notification

import (
	"context"

	"fulfillment/internal/entities"
	"fulfillment/internal/workflow/activity"
	"fulfillment/pkg/logger"
)

// Dispatcher отправляет уведомления клиенту по принципу best-effort:
// ошибки логируются и никогда не прерывают оркестрацию.
type Dispatcher struct {
	log      handlerLogger
	executor *activity.Executor
	notifier Notifier
}

func New(log handlerLogger, executor *activity.Executor, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		log:      log.With(),
		executor: executor,
		notifier: notifier,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, email, message, orderID string) entities.NotificationOutcome {
	outcome, err := activity.Invoke(ctx, d.executor, entities.ActivityNotifyCustomer,
		func(ctx context.Context) (entities.NotificationOutcome, error) {
			return d.notifier.NotifyCustomer(ctx, email, message, orderID)
		},
	)
	if err != nil {
		d.log.With(
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		).Warn("customer notification failed")
		return entities.NotificationOutcome{Notified: false}
	}

	if !outcome.Notified {
		d.log.With(
			logger.NewField("order", orderID),
		).Warn("customer notification was not delivered")
	}
	return outcome
}
