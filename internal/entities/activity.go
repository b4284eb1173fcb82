package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Результаты активностей. Бизнес-отказ (нет товара, отказ банка) возвращается
// внутри результата, ошибка активности означает сбой транспорта.
type (
	InventoryCheck struct {
		Available        bool
		UnavailableItems []string
	}

	PaymentOutcome struct {
		Success       bool
		TransactionID *string
		Error         *string
	}

	PreparationOutcome struct {
		Ready     bool
		PackageID *string
	}

	ShipmentOutcome struct {
		Shipped           bool
		TrackingNumber    *string
		EstimatedDelivery *time.Time
	}

	NotificationOutcome struct {
		Notified bool
	}

	CancellationOutcome struct {
		Cancelled    bool
		RefundAmount *decimal.Decimal
	}
)

// Имена активностей, они же метки в метриках и событиях.
const (
	ActivityCheckInventory  = "checkInventory"
	ActivityProcessPayment  = "processPayment"
	ActivityPrepareShipment = "prepareOrderForShipment"
	ActivityShipOrder       = "shipOrder"
	ActivityNotifyCustomer  = "notifyCustomer"
	ActivityCancelOrder     = "cancelOrder"
	ActivityAwaitDelivery   = "awaitDelivery"
)
