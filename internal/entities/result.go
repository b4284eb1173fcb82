package entities

import "time"

type OrderResult struct {
	OrderID           string
	Status            OrderStatus
	Message           string
	TrackingNumber    *string
	EstimatedDelivery *time.Time
}
