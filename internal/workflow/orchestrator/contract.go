//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orchestrator_test
package orchestrator

import (
	"context"
	"time"

	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Activities внешние операции, которые вызывает workflow.
type Activities interface {
	CheckInventory(ctx context.Context, items []entities.OrderItem) (entities.InventoryCheck, error)
	ProcessPayment(ctx context.Context, payment entities.PaymentInfo, amount int64) (entities.PaymentOutcome, error)
	PrepareOrderForShipment(ctx context.Context, orderID string, items []entities.OrderItem) (entities.PreparationOutcome, error)
	ShipOrder(ctx context.Context, orderID, packageID, address string) (entities.ShipmentOutcome, error)
	CancelOrder(ctx context.Context, orderID, reason string) (entities.CancellationOutcome, error)
}

type Notifier interface {
	Notify(ctx context.Context, email, message, orderID string) entities.NotificationOutcome
}

// CancellationSource читается только на границах шагов.
type CancellationSource interface {
	Peek() (string, bool)
}

type EventSink interface {
	Emit(event entities.Event)
}

// Timer ожидание доставки. Возвращает ошибку, если ctx отменён раньше.
type Timer interface {
	Sleep(ctx context.Context, d time.Duration) error
}
