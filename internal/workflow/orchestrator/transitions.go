package orchestrator

import (
	"context"
	"fmt"

	"fulfillment/internal/entities"
	"fulfillment/internal/workflow/result"
	"github.com/AlekSi/pointer"
)

type stepOutcome struct {
	ok      bool
	message string
	apply   func(b *result.Builder)
}

func succeeded(message string) stepOutcome {
	return stepOutcome{ok: true, message: message}
}

func failed(message string) stepOutcome {
	return stepOutcome{ok: false, message: message}
}

type stepFn func(ctx context.Context, r *run) (stepOutcome, error)

// transition одна строка таблицы переходов: из статуса-ключа шаг run ведёт в статус to.
type transition struct {
	activity string
	// external шаг вызывает внешнюю активность (для событий activity_*)
	external bool
	to       entities.OrderStatus
	run      stepFn
	// onEnter уведомление, привязанное к новому статусу
	onEnter func(ctx context.Context, r *run)
	// checkCancel после шага проверяется сигнал отмены
	checkCancel bool
}

// transitionTable после отправки отмена уже не проверяется: сигнал, пришедший
// во время отправки или ожидания доставки, игнорируется и заказ завершается как DELIVERED.
func (o *Orchestrator) transitionTable() map[entities.OrderStatus]transition {
	return map[entities.OrderStatus]transition{
		entities.OrderCreated: {
			activity:    entities.ActivityCheckInventory,
			external:    true,
			to:          entities.OrderInventoryChecked,
			run:         o.checkInventory,
			checkCancel: true,
		},
		entities.OrderInventoryChecked: {
			activity:    entities.ActivityProcessPayment,
			external:    true,
			to:          entities.OrderPaymentProcessed,
			run:         o.processPayment,
			checkCancel: true,
		},
		entities.OrderPaymentProcessed: {
			activity:    entities.ActivityPrepareShipment,
			external:    true,
			to:          entities.OrderPreparingForShipment,
			run:         o.prepareShipment,
			checkCancel: true,
		},
		entities.OrderPreparingForShipment: {
			activity: entities.ActivityShipOrder,
			external: true,
			to:       entities.OrderShipped,
			run:      o.shipOrder,
		},
		entities.OrderShipped: {
			activity: entities.ActivityAwaitDelivery,
			to:       entities.OrderDelivered,
			run:      o.awaitDelivery,
			onEnter:  o.notifyDelivered,
		},
	}
}

func (o *Orchestrator) checkInventory(ctx context.Context, r *run) (stepOutcome, error) {
	check, err := invoke(ctx, o, r, entities.ActivityCheckInventory,
		func(ctx context.Context) (entities.InventoryCheck, error) {
			return o.activities.CheckInventory(ctx, r.order.Items)
		},
	)
	if err != nil {
		return stepOutcome{}, err
	}

	if !check.Available {
		return failed(msgItemsUnavailable(check.UnavailableItems)), nil
	}
	return succeeded(msgInventoryChecked), nil
}

func (o *Orchestrator) processPayment(ctx context.Context, r *run) (stepOutcome, error) {
	payment, err := invoke(ctx, o, r, entities.ActivityProcessPayment,
		func(ctx context.Context) (entities.PaymentOutcome, error) {
			return o.activities.ProcessPayment(ctx, r.order.Payment, r.order.TotalAmount)
		},
	)
	if err != nil {
		return stepOutcome{}, err
	}

	if !payment.Success {
		return failed(msgPaymentFailed(payment.Error)), nil
	}
	return succeeded(msgPaymentProcessed(pointer.Get(payment.TransactionID))), nil
}

func (o *Orchestrator) prepareShipment(ctx context.Context, r *run) (stepOutcome, error) {
	preparation, err := invoke(ctx, o, r, entities.ActivityPrepareShipment,
		func(ctx context.Context) (entities.PreparationOutcome, error) {
			return o.activities.PrepareOrderForShipment(ctx, r.order.ID, r.order.Items)
		},
	)
	if err != nil {
		return stepOutcome{}, err
	}

	if !preparation.Ready {
		return failed(msgPreparationFailed), nil
	}
	if preparation.PackageID == nil || *preparation.PackageID == "" {
		return stepOutcome{}, fmt.Errorf("%s: %w", entities.ActivityPrepareShipment, ErrMissingPackageID)
	}

	r.packageID = *preparation.PackageID
	return succeeded(msgPrepared(r.packageID)), nil
}

func (o *Orchestrator) shipOrder(ctx context.Context, r *run) (stepOutcome, error) {
	shipment, err := invoke(ctx, o, r, entities.ActivityShipOrder,
		func(ctx context.Context) (entities.ShipmentOutcome, error) {
			return o.activities.ShipOrder(ctx, r.order.ID, r.packageID, r.order.Customer.Address)
		},
	)
	if err != nil {
		return stepOutcome{}, err
	}

	if !shipment.Shipped {
		return failed(msgShippingFailed), nil
	}

	outcome := succeeded(msgShipped(pointer.Get(shipment.TrackingNumber)))
	outcome.apply = func(b *result.Builder) {
		b.Shipment(shipment.TrackingNumber, shipment.EstimatedDelivery)
	}
	return outcome, nil
}

func (o *Orchestrator) awaitDelivery(ctx context.Context, r *run) (stepOutcome, error) {
	res := r.builder.Build()
	o.notify(ctx, r, noticeShipped(r.order.ID, pointer.Get(res.TrackingNumber), res.EstimatedDelivery))

	r.emit(entities.EventLog, "", fmt.Sprintf("Waiting for delivery of order %s", r.order.ID))
	if err := o.timer.Sleep(ctx, o.config.DeliveryTransitWait); err != nil {
		return stepOutcome{}, fmt.Errorf("%s: %w", entities.ActivityAwaitDelivery, err)
	}

	return succeeded(msgDelivered), nil
}

func (o *Orchestrator) notifyDelivered(ctx context.Context, r *run) {
	o.notify(ctx, r, noticeDelivered(r.order.ID))
}
