package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/internal/entities"
	workflowGateway "fulfillment/internal/gateway/http/workflow"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/logger/zap_adapter"
	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
)

const (
	defaultBaseURL = "http://localhost:8080"

	cancelDelay    = 3 * time.Second
	describeDelay  = 2 * time.Second
	cancelReason   = "Клиент передумал"
	orderIDLength  = 8
	customerLength = 6
)

func main() {
	var (
		baseURL    string
		withCancel bool
	)
	flag.StringVar(&baseURL, "addr", envOr("WORKFLOW_SERVICE_BASE_URL", defaultBaseURL), "fulfillment service base URL")
	flag.BoolVar(&withCancel, "cancel", false, "after the first order start a second one and cancel it")
	flag.Parse()

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	var log logger.Logger = zapLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// без таймаута клиента: long poll результата ограничивает сервер
	gateway := workflowGateway.New(baseURL, &http.Client{})

	if err := runOrder(ctx, log, gateway); err != nil {
		log.Error("order demo failed", logger.NewField("error", err))
		os.Exit(1)
	}

	if !withCancel {
		return
	}

	if err := runCancellation(ctx, log, gateway); err != nil {
		log.Error("cancellation demo failed", logger.NewField("error", err))
		os.Exit(1)
	}
}

// runOrder запускает заказ и ждёт его итог.
func runOrder(ctx context.Context, log logger.Logger, gateway *workflowGateway.WorkflowGateway) error {
	order, err := sampleOrder("ORD_"+shortID(orderIDLength), time.Now())
	if err != nil {
		return err
	}

	log.Info("order created",
		logger.NewField("order", order.ID),
		logger.NewField("customer", order.Customer.Name),
		logger.NewField("items", order.ItemNames()),
		logger.NewField("total_amount", order.TotalAmount),
	)

	ref, err := gateway.StartWorkflow(ctx, order)
	if err != nil {
		return err
	}
	log.Info("workflow started",
		logger.NewField("workflow_id", ref.WorkflowID),
		logger.NewField("run_id", ref.RunID),
	)

	log.Info("waiting for workflow result")
	execution, err := awaitResult(ctx, gateway, ref.WorkflowID)
	if err != nil {
		return err
	}

	result := execution.Result
	fields := []logger.Field{
		logger.NewField("order", result.OrderID),
		logger.NewField("status", result.Status.String()),
		logger.NewField("message", result.Message),
	}
	if result.TrackingNumber != nil {
		fields = append(fields, logger.NewField("tracking_number", *result.TrackingNumber))
	}
	if result.EstimatedDelivery != nil {
		fields = append(fields, logger.NewField("estimated_delivery", result.EstimatedDelivery.Format(time.RFC3339)))
	}
	log.Info("workflow finished", fields...)

	return nil
}

// runCancellation запускает второй заказ, через cancelDelay отменяет его и печатает состояние выполнения.
func runCancellation(ctx context.Context, log logger.Logger, gateway *workflowGateway.WorkflowGateway) error {
	order, err := sampleOrder("ORD_CANCEL_"+shortID(customerLength), time.Now())
	if err != nil {
		return err
	}

	ref, err := gateway.StartWorkflow(ctx, order)
	if err != nil {
		return err
	}
	log.Info("workflow to cancel started", logger.NewField("workflow_id", ref.WorkflowID))

	if err := sleep(ctx, cancelDelay); err != nil {
		return err
	}

	err = gateway.CancelWorkflow(ctx, ref.WorkflowID, cancelReason)
	switch {
	case errors.Is(err, workflowGateway.ErrWorkflowNotRunning):
		log.Warn("workflow finished before the cancellation signal", logger.NewField("workflow_id", ref.WorkflowID))
	case err != nil:
		return err
	default:
		log.Info("cancellation signal sent", logger.NewField("workflow_id", ref.WorkflowID))
	}

	if err := sleep(ctx, describeDelay); err != nil {
		return err
	}

	execution, err := gateway.DescribeWorkflow(ctx, ref.WorkflowID)
	if err != nil {
		return err
	}

	fields := []logger.Field{
		logger.NewField("workflow_id", execution.WorkflowID),
		logger.NewField("status", execution.Status.String()),
		logger.NewField("start_time", execution.StartTime.Format(time.RFC3339)),
	}
	if execution.CloseTime != nil {
		fields = append(fields,
			logger.NewField("close_time", execution.CloseTime.Format(time.RFC3339)),
			logger.NewField("execution_time", execution.CloseTime.Sub(execution.StartTime).String()),
		)
	}
	log.Info("workflow status", fields...)

	return nil
}

// awaitResult повторяет long poll, пока сервер не вернёт итог.
func awaitResult(ctx context.Context, gateway *workflowGateway.WorkflowGateway, workflowID string) (entities.Execution, error) {
	for {
		execution, err := gateway.WorkflowResult(ctx, workflowID, true)
		if err != nil {
			return entities.Execution{}, err
		}
		if execution.Result != nil {
			return execution, nil
		}
		if ctx.Err() != nil {
			return entities.Execution{}, ctx.Err()
		}
	}
}

func sampleOrder(orderID string, now time.Time) (entities.Order, error) {
	customer := entities.CustomerInfo{
		ID:      "CUST_" + shortID(customerLength),
		Name:    "Иван Петров",
		Email:   "ivan.petrov@example.com",
		Phone:   "+7 (999) 123-45-67",
		Address: "г. Москва, ул. Примерная, д. 123, кв. 45",
	}

	items := []entities.OrderItem{
		{ProductID: "PROD_001", ProductName: "Смартфон Samsung Galaxy S23", Quantity: 1, Price: 79999},
		{ProductID: "PROD_002", ProductName: "Чехол для смартфона", Quantity: 1, Price: 1999},
		{ProductID: "PROD_003", ProductName: "Защитное стекло", Quantity: 2, Price: 899},
	}

	payment := entities.PaymentInfo{
		Method:     entities.PaymentCreditCard,
		CardNumber: pointer.To("**** **** **** 1234"),
		ExpiryDate: pointer.To("12/25"),
		CVV:        pointer.To("***"),
		Amount:     entities.TotalOf(items),
	}

	return entities.NewOrder(orderID, customer, items, payment, now)
}

func shortID(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:n])
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
