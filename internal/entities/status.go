package entities

type OrderStatus string

const (
	OrderCreated              OrderStatus = "CREATED"
	OrderInventoryChecked     OrderStatus = "INVENTORY_CHECKED"
	OrderPaymentProcessed     OrderStatus = "PAYMENT_PROCESSED"
	OrderPreparingForShipment OrderStatus = "PREPARING_FOR_SHIPMENT"
	OrderShipped              OrderStatus = "SHIPPED"
	OrderDelivered            OrderStatus = "DELIVERED"
	OrderCancelled            OrderStatus = "CANCELLED"
)

// порядок продвижения заказа, CANCELLED сюда не входит
var statusRank = map[OrderStatus]int{
	OrderCreated:              0,
	OrderInventoryChecked:     1,
	OrderPaymentProcessed:     2,
	OrderPreparingForShipment: 3,
	OrderShipped:              4,
	OrderDelivered:            5,
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCancelled || s == OrderDelivered
}

// CanTransition разрешает переход только на следующий статус по порядку,
// либо в CANCELLED из любого нетерминального статуса.
func CanTransition(from, to OrderStatus) bool {
	if from.IsTerminal() || !from.IsValid() {
		return false
	}
	if to == OrderCancelled {
		return true
	}

	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}
