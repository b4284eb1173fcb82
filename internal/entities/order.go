package entities

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrEmptyOrderID          = errors.New("order id is required")
	ErrNoItems               = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("item quantity must be positive")
	ErrInvalidPrice          = errors.New("item price must not be negative")
	ErrInvalidTotal          = errors.New("total amount does not match items")
	ErrPaymentAmountMismatch = errors.New("payment amount does not match total amount")
	ErrInvalidPaymentMethod  = errors.New("unsupported payment method")
	ErrMissingCustomerEmail  = errors.New("customer email is required")
	ErrAmountOverflow        = errors.New("order amount overflows int64")
)

type Order struct {
	ID          string
	Customer    CustomerInfo
	Items       []OrderItem
	Payment     PaymentInfo
	TotalAmount int64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem цена в минимальных единицах валюты (копейки).
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       int64
}

type CustomerInfo struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
}

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentBankTransfer:
		return true
	default:
		return false
	}
}

type PaymentInfo struct {
	Method     PaymentMethod
	CardNumber *string
	ExpiryDate *string
	CVV        *string
	Amount     int64
}

// NewOrder собирает заказ в статусе CREATED, считает итоговую сумму и проверяет инварианты.
func NewOrder(id string, customer CustomerInfo, items []OrderItem, payment PaymentInfo, now time.Time) (Order, error) {
	order := Order{
		ID:          id,
		Customer:    customer,
		Items:       append([]OrderItem(nil), items...),
		Payment:     payment,
		TotalAmount: TotalOf(items),
		Status:      OrderCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := order.Validate(); err != nil {
		return Order{}, err
	}
	return order, nil
}

// TotalOf сумма price×quantity. При переполнении возвращает 0, проверку
// делает Validate через SumItems.
func TotalOf(items []OrderItem) int64 {
	total, err := SumItems(items)
	if err != nil {
		return 0
	}
	return total
}

// SumItems считает сумму заказа и отказывает, если она не помещается в int64.
// Ожидает уже проверенные неотрицательные цены и положительные количества.
func SumItems(items []OrderItem) (int64, error) {
	var total int64
	for _, item := range items {
		if item.Quantity > 0 && item.Price > math.MaxInt64/int64(item.Quantity) {
			return 0, fmt.Errorf("%w: %s price %d × %d", ErrAmountOverflow, item.ProductID, item.Price, item.Quantity)
		}
		line := item.Price * int64(item.Quantity)
		if total > math.MaxInt64-line {
			return 0, fmt.Errorf("%w: items sum", ErrAmountOverflow)
		}
		total += line
	}
	return total, nil
}

func (o Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyOrderID
	}
	if o.Customer.Email == "" {
		return ErrMissingCustomerEmail
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}

	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidQuantity, item.ProductID)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidPrice, item.ProductID)
		}
	}

	total, err := SumItems(o.Items)
	if err != nil {
		return err
	}
	if o.TotalAmount != total {
		return fmt.Errorf("%w: got %d, items sum to %d", ErrInvalidTotal, o.TotalAmount, total)
	}
	if o.Payment.Amount != o.TotalAmount {
		return fmt.Errorf("%w: got %d, want %d", ErrPaymentAmountMismatch, o.Payment.Amount, o.TotalAmount)
	}
	if !o.Payment.Method.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, o.Payment.Method)
	}
	return nil
}

// ItemNames возвращает названия товаров в порядке заказа.
func (o Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.ProductName)
	}
	return names
}

type CancellationRequest struct {
	Reason string
}
