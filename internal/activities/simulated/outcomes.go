package simulated

import (
	"math/rand/v2"
	"strings"

	"fulfillment/internal/entities"
	"github.com/shopspring/decimal"
)

const (
	DefaultItemUnavailableProbability = 0.1
	DefaultPaymentDeclineProbability  = 0.05

	refundBase   = 50
	refundSpread = 100

	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

type Probabilities struct {
	ItemUnavailable float64
	PaymentDecline  float64
	TransportFault  float64
}

func DefaultProbabilities() Probabilities {
	return Probabilities{
		ItemUnavailable: DefaultItemUnavailableProbability,
		PaymentDecline:  DefaultPaymentDeclineProbability,
	}
}

// RandomOutcomes исходы по заданным вероятностям. Безопасен для конкурентного использования.
type RandomOutcomes struct {
	p Probabilities
}

func NewRandomOutcomes(p Probabilities) *RandomOutcomes {
	return &RandomOutcomes{p: p}
}

func (r *RandomOutcomes) ItemAvailable(entities.OrderItem) bool {
	return rand.Float64() >= r.p.ItemUnavailable
}

func (r *RandomOutcomes) PaymentApproved(entities.PaymentInfo, int64) bool {
	return rand.Float64() >= r.p.PaymentDecline
}

func (r *RandomOutcomes) RefundAmount(string) decimal.Decimal {
	return decimal.NewFromFloat(rand.Float64()*refundSpread + refundBase).Round(2)
}

func (r *RandomOutcomes) TransportFault(string) bool {
	return r.p.TransportFault > 0 && rand.Float64() < r.p.TransportFault
}

func (r *RandomOutcomes) Token(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(tokenAlphabet[rand.IntN(len(tokenAlphabet))])
	}
	return sb.String()
}
