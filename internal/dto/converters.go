package dto

import (
	"time"

	"fulfillment/internal/entities"
	"github.com/AlekSi/pointer"
)

// ToDomainOrder переводит заказ из запроса. Отсутствующая сумма считается по
// позициям, пустые даты берутся из now.
func ToDomainOrder(o Order, now time.Time) entities.Order {
	items := make([]entities.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, entities.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	// переданная сумма, даже нулевая, проверяется валидацией заказа
	total := entities.TotalOf(items)
	if o.TotalAmount != nil {
		total = *o.TotalAmount
	}

	status := entities.OrderStatus(o.Status)
	if status == "" {
		status = entities.OrderCreated
	}

	return entities.Order{
		ID: o.ID,
		Customer: entities.CustomerInfo{
			ID:      o.Customer.ID,
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Items: items,
		Payment: entities.PaymentInfo{
			Method:     entities.PaymentMethod(o.Payment.Method),
			CardNumber: o.Payment.CardNumber,
			ExpiryDate: o.Payment.ExpiryDate,
			CVV:        o.Payment.CVV,
			Amount:     o.Payment.Amount,
		},
		TotalAmount: total,
		Status:      status,
		CreatedAt:   timeOr(o.CreatedAt, now),
		UpdatedAt:   timeOr(o.UpdatedAt, now),
	}
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return *t
}

func FromDomainOrder(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return Order{
		ID: o.ID,
		Customer: CustomerInfo{
			ID:      o.Customer.ID,
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
		},
		Items: items,
		Payment: PaymentInfo{
			Method:     o.Payment.Method.String(),
			CardNumber: o.Payment.CardNumber,
			ExpiryDate: o.Payment.ExpiryDate,
			CVV:        o.Payment.CVV,
			Amount:     o.Payment.Amount,
		},
		TotalAmount: pointer.To(o.TotalAmount),
		Status:      o.Status.String(),
		CreatedAt:   pointer.To(o.CreatedAt),
		UpdatedAt:   pointer.To(o.UpdatedAt),
	}
}

func FromDomainResult(r entities.OrderResult) OrderResult {
	return OrderResult{
		OrderID:           r.OrderID,
		Status:            r.Status.String(),
		Message:           r.Message,
		TrackingNumber:    r.TrackingNumber,
		EstimatedDelivery: r.EstimatedDelivery,
	}
}

func ToDomainResult(r OrderResult) entities.OrderResult {
	return entities.OrderResult{
		OrderID:           r.OrderID,
		Status:            entities.OrderStatus(r.Status),
		Message:           r.Message,
		TrackingNumber:    r.TrackingNumber,
		EstimatedDelivery: r.EstimatedDelivery,
	}
}

func FromDomainExecution(e entities.Execution) Execution {
	execution := Execution{
		WorkflowID: e.WorkflowID,
		RunID:      e.RunID,
		OrderID:    e.OrderID,
		Status:     e.Status.String(),
		StartTime:  e.StartTime,
		CloseTime:  e.CloseTime,
	}
	if e.Result != nil {
		execution.Result = pointer.To(FromDomainResult(*e.Result))
	}
	return execution
}

func ToDomainExecution(e Execution) entities.Execution {
	execution := entities.Execution{
		WorkflowID: e.WorkflowID,
		RunID:      e.RunID,
		OrderID:    e.OrderID,
		Status:     entities.ExecutionStatus(e.Status),
		StartTime:  e.StartTime,
		CloseTime:  e.CloseTime,
	}
	if e.Result != nil {
		execution.Result = pointer.To(ToDomainResult(*e.Result))
	}
	return execution
}
