package dto

import "time"

type CustomerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type PaymentInfo struct {
	Method     string  `json:"method"`
	CardNumber *string `json:"cardNumber,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
	CVV        *string `json:"cvv,omitempty"`
	Amount     int64   `json:"amount"`
}

type Order struct {
	ID          string       `json:"id"`
	Customer    CustomerInfo `json:"customer"`
	Items       []OrderItem  `json:"items"`
	Payment     PaymentInfo  `json:"payment"`
	TotalAmount *int64       `json:"totalAmount,omitempty"`
	Status      string       `json:"status,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

type OrderResult struct {
	OrderID           string     `json:"orderId"`
	Status            string     `json:"status"`
	Message           string     `json:"message"`
	TrackingNumber    *string    `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type Execution struct {
	WorkflowID string       `json:"workflowId"`
	RunID      string       `json:"runId"`
	OrderID    string       `json:"orderId"`
	Status     string       `json:"status"`
	StartTime  time.Time    `json:"startTime"`
	CloseTime  *time.Time   `json:"closeTime,omitempty"`
	Result     *OrderResult `json:"result,omitempty"`
}

type StartWorkflowResponse struct {
	WorkflowID string `json:"workflowId"`
	RunID      string `json:"runId"`
}

type CancelWorkflowRequest struct {
	Reason string `json:"reason"`
}

type WorkflowResultResponse struct {
	WorkflowID string       `json:"workflowId"`
	Status     string       `json:"status"`
	Result     *OrderResult `json:"result,omitempty"`
}

// OrderCancelRequested сообщение из топика запросов на отмену.
type OrderCancelRequested struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message *string    `json:"message,omitempty"`
	Service string     `json:"service"`
	Time    *time.Time `json:"time,omitempty"`
}
