package simulated

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
	"github.com/AlekSi/pointer"
)

const (
	transactionTokenLength = 9
	trackingTokenLength    = 12
	deliveryPeriod         = 3 * 24 * time.Hour
)

// Latency искусственные задержки операций.
type Latency struct {
	Inventory    time.Duration
	Payment      time.Duration
	Preparation  time.Duration
	Shipping     time.Duration
	Notification time.Duration
	Cancellation time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		Inventory:    1 * time.Second,
		Payment:      2 * time.Second,
		Preparation:  1500 * time.Millisecond,
		Shipping:     1 * time.Second,
		Notification: 500 * time.Millisecond,
		Cancellation: 800 * time.Millisecond,
	}
}

// Scale умножает все задержки на factor. factor <= 0 убирает задержки совсем.
func (l Latency) Scale(factor float64) Latency {
	if factor <= 0 {
		return Latency{}
	}

	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * factor)
	}
	return Latency{
		Inventory:    scale(l.Inventory),
		Payment:      scale(l.Payment),
		Preparation:  scale(l.Preparation),
		Shipping:     scale(l.Shipping),
		Notification: scale(l.Notification),
		Cancellation: scale(l.Cancellation),
	}
}

// Activities имитация склада, платёжного шлюза, службы доставки и канала уведомлений.
type Activities struct {
	log      handlerLogger
	outcomes OutcomeSource
	latency  Latency
	now      func() time.Time
}

func New(log handlerLogger, outcomes OutcomeSource, latency Latency) *Activities {
	return &Activities{
		log:      log.With(logger.NewField("component", "simulated-activities")),
		outcomes: outcomes,
		latency:  latency,
		now:      time.Now,
	}
}

// WithClock подменяет источник времени для идентификаторов и даты доставки.
func (a *Activities) WithClock(now func() time.Time) *Activities {
	a.now = now
	return a
}

func (a *Activities) CheckInventory(ctx context.Context, items []entities.OrderItem) (entities.InventoryCheck, error) {
	if err := a.simulate(ctx, entities.ActivityCheckInventory, a.latency.Inventory); err != nil {
		return entities.InventoryCheck{}, err
	}

	unavailable := make([]string, 0)
	for _, item := range items {
		if !a.outcomes.ItemAvailable(item) {
			unavailable = append(unavailable, item.ProductName)
		}
	}

	a.log.Info("inventory checked",
		logger.NewField("items", len(items)),
		logger.NewField("unavailable", unavailable),
	)

	return entities.InventoryCheck{
		Available:        len(unavailable) == 0,
		UnavailableItems: unavailable,
	}, nil
}

func (a *Activities) ProcessPayment(ctx context.Context, payment entities.PaymentInfo, amount int64) (entities.PaymentOutcome, error) {
	if err := a.simulate(ctx, entities.ActivityProcessPayment, a.latency.Payment); err != nil {
		return entities.PaymentOutcome{}, err
	}

	if !a.outcomes.PaymentApproved(payment, amount) {
		a.log.Warn("payment declined",
			logger.NewField("method", payment.Method.String()),
			logger.NewField("amount", amount),
		)
		return entities.PaymentOutcome{
			Success: false,
			Error:   pointer.To(paymentDeclinedReason),
		}, nil
	}

	transactionID := fmt.Sprintf("TXN_%d_%s", a.now().UnixMilli(), a.outcomes.Token(transactionTokenLength))
	a.log.Info("payment processed",
		logger.NewField("transaction", transactionID),
		logger.NewField("amount", amount),
	)

	return entities.PaymentOutcome{
		Success:       true,
		TransactionID: pointer.To(transactionID),
	}, nil
}

func (a *Activities) PrepareOrderForShipment(ctx context.Context, orderID string, items []entities.OrderItem) (entities.PreparationOutcome, error) {
	if err := a.simulate(ctx, entities.ActivityPrepareShipment, a.latency.Preparation); err != nil {
		return entities.PreparationOutcome{}, err
	}

	packageID := "PKG_" + orderID + "_" + strconv.FormatInt(a.now().UnixMilli(), 10)
	a.log.Info("order prepared for shipment",
		logger.NewField("order", orderID),
		logger.NewField("package", packageID),
		logger.NewField("items", len(items)),
	)

	return entities.PreparationOutcome{
		Ready:     true,
		PackageID: pointer.To(packageID),
	}, nil
}

func (a *Activities) ShipOrder(ctx context.Context, orderID, packageID, address string) (entities.ShipmentOutcome, error) {
	if err := a.simulate(ctx, entities.ActivityShipOrder, a.latency.Shipping); err != nil {
		return entities.ShipmentOutcome{}, err
	}

	trackingNumber := "TRK_" + strings.ToUpper(a.outcomes.Token(trackingTokenLength))
	estimatedDelivery := a.now().Add(deliveryPeriod)

	a.log.Info("order shipped",
		logger.NewField("order", orderID),
		logger.NewField("package", packageID),
		logger.NewField("tracking", trackingNumber),
		logger.NewField("address", address),
	)

	return entities.ShipmentOutcome{
		Shipped:           true,
		TrackingNumber:    pointer.To(trackingNumber),
		EstimatedDelivery: pointer.To(estimatedDelivery),
	}, nil
}

func (a *Activities) NotifyCustomer(ctx context.Context, email, message, orderID string) (entities.NotificationOutcome, error) {
	if err := a.simulate(ctx, entities.ActivityNotifyCustomer, a.latency.Notification); err != nil {
		return entities.NotificationOutcome{}, err
	}

	a.log.Info("customer notified",
		logger.NewField("order", orderID),
		logger.NewField("email", email),
		logger.NewField("message", message),
	)

	return entities.NotificationOutcome{Notified: true}, nil
}

func (a *Activities) CancelOrder(ctx context.Context, orderID, reason string) (entities.CancellationOutcome, error) {
	if err := a.simulate(ctx, entities.ActivityCancelOrder, a.latency.Cancellation); err != nil {
		return entities.CancellationOutcome{}, err
	}

	refund := a.outcomes.RefundAmount(orderID)
	a.log.Info("order cancelled",
		logger.NewField("order", orderID),
		logger.NewField("reason", reason),
		logger.NewField("refund", refund.StringFixed(2)),
	)

	return entities.CancellationOutcome{
		Cancelled:    true,
		RefundAmount: pointer.To(refund),
	}, nil
}

// simulate выдерживает задержку с учётом ctx и, если так решил OutcomeSource, падает как сбой транспорта.
func (a *Activities) simulate(ctx context.Context, activity string, latency time.Duration) error {
	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if a.outcomes.TransportFault(activity) {
		a.log.Warn("simulated transport fault",
			logger.NewField("activity", activity),
		)
		return fmt.Errorf("%s: %w", activity, ErrTransportFault)
	}
	return nil
}
