package result

import (
	"time"

	"fulfillment/internal/entities"
)

const MessageCreated = "Order created"

// Builder накапливает итог выполнения. Проверка допустимости переходов
// остаётся на стороне оркестратора, сам Builder никогда не возвращает ошибок.
type Builder struct {
	result entities.OrderResult
}

func New(orderID string) *Builder {
	return &Builder{
		result: entities.OrderResult{
			OrderID: orderID,
			Status:  entities.OrderCreated,
			Message: MessageCreated,
		},
	}
}

func (b *Builder) Status() entities.OrderStatus {
	return b.result.Status
}

func (b *Builder) Message() string {
	return b.result.Message
}

func (b *Builder) Advance(status entities.OrderStatus, message string) *Builder {
	b.result.Status = status
	b.result.Message = message
	return b
}

// Shipment запоминает трек-номер и ожидаемую дату доставки.
func (b *Builder) Shipment(trackingNumber *string, estimatedDelivery *time.Time) *Builder {
	b.result.TrackingNumber = cloneString(trackingNumber)
	b.result.EstimatedDelivery = cloneTime(estimatedDelivery)
	return b
}

func (b *Builder) Cancel(message string) *Builder {
	return b.Advance(entities.OrderCancelled, message)
}

// Build возвращает копию, последующие вызовы Builder её не меняют.
func (b *Builder) Build() entities.OrderResult {
	res := b.result
	res.TrackingNumber = cloneString(b.result.TrackingNumber)
	res.EstimatedDelivery = cloneTime(b.result.EstimatedDelivery)
	return res
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
