package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const deliveryDateLayout = "02.01.2006"

const (
	msgInventoryChecked     = "Inventory checked, all items are available"
	msgPreparationFailed    = "Failed to prepare order for shipment"
	msgShippingFailed       = "Failed to ship order"
	msgDelivered            = "Order delivered"
	msgDeliveryDateUnknown  = "not specified"
	msgUnknownPaymentReason = "unknown error"
)

func msgItemsUnavailable(items []string) string {
	return "Items unavailable: " + strings.Join(items, ", ")
}

func msgPaymentFailed(reason *string) string {
	if reason == nil || *reason == "" {
		return "Payment processing error: " + msgUnknownPaymentReason
	}
	return "Payment processing error: " + *reason
}

func msgPaymentProcessed(transactionID string) string {
	return "Payment processed successfully. Transaction: " + transactionID
}

func msgPrepared(packageID string) string {
	return "Order prepared for shipment. Package ID: " + packageID
}

func msgShipped(trackingNumber string) string {
	return "Order shipped. Tracking number: " + trackingNumber
}

func msgCancelled(reason string, refund *decimal.Decimal) string {
	msg := "Order cancelled: " + reason
	if refund != nil && !refund.IsZero() {
		msg += ". Refund amount: " + refund.StringFixed(2)
	}
	return msg
}

func msgSystemError(err error) string {
	return fmt.Sprintf("System error: %v", err)
}

// уведомления клиенту

func noticeCancelled(orderID, reason string) string {
	return fmt.Sprintf("Your order %s has been cancelled: %s", orderID, reason)
}

func noticeShipped(orderID, trackingNumber string, estimatedDelivery *time.Time) string {
	date := msgDeliveryDateUnknown
	if estimatedDelivery != nil {
		date = estimatedDelivery.Format(deliveryDateLayout)
	}
	return fmt.Sprintf("Your order %s has been shipped! Tracking number: %s. Expected delivery: %s",
		orderID, trackingNumber, date)
}

func noticeDelivered(orderID string) string {
	return fmt.Sprintf("Your order %s has been delivered! Thank you for your purchase.", orderID)
}

func noticeSystemError(orderID string) string {
	return fmt.Sprintf("An error occurred while processing your order %s. We will contact you to resolve the issue.", orderID)
}
