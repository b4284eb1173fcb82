//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=simulated_test
package simulated

import (
	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
	"github.com/shopspring/decimal"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// OutcomeSource решает исход каждой имитируемой операции.
// В проде случайный (RandomOutcomes), в тестах детерминированный.
type OutcomeSource interface {
	ItemAvailable(item entities.OrderItem) bool
	PaymentApproved(payment entities.PaymentInfo, amount int64) bool
	RefundAmount(orderID string) decimal.Decimal
	// TransportFault true означает, что вызов должен упасть как недоступный сервис.
	TransportFault(activity string) bool
	// Token случайная строка из [0-9a-z] длины n.
	Token(n int) string
}
