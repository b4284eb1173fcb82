package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fulfillment/internal/dto"
	"fulfillment/internal/entities"
	retrierconfig "fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "workflow-service"
	tracerName  = "fulfillment/gateway/workflow"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type WorkflowGateway struct {
	baseURL string
	client  client
	retrier retrier
	tracer  trace.Tracer
}

func New(baseURL string, client client) *WorkflowGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &WorkflowGateway{
		baseURL: baseURL,
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		tracer:  otel.Tracer(tracerName),
	}
}

func (g *WorkflowGateway) StartWorkflow(ctx context.Context, order entities.Order) (entities.WorkflowRef, error) {
	var response dto.StartWorkflowResponse

	err := g.executeWithMetrics(ctx, "StartWorkflow", func(ctx context.Context) (int, error) {
		return g.do(ctx, http.MethodPost, "/workflows", dto.FromDomainOrder(order), &response, http.StatusCreated)
	})
	if err != nil {
		return entities.WorkflowRef{}, fmt.Errorf("gateway workflow, start %s: %w", order.ID, err)
	}

	return entities.WorkflowRef{
		WorkflowID: response.WorkflowID,
		RunID:      response.RunID,
	}, nil
}

func (g *WorkflowGateway) DescribeWorkflow(ctx context.Context, workflowID string) (entities.Execution, error) {
	var response dto.Execution

	err := g.executeWithMetrics(ctx, "DescribeWorkflow", func(ctx context.Context) (int, error) {
		return g.do(ctx, http.MethodGet, "/workflows/"+url.PathEscape(workflowID), nil, &response, http.StatusOK)
	})
	if err != nil {
		return entities.Execution{}, fmt.Errorf("gateway workflow, describe %s: %w", workflowID, err)
	}

	return dto.ToDomainExecution(response), nil
}

// WorkflowResult при wait=true сервер держит запрос до завершения workflow
// или своего таймаута. Status RUNNING в ответе означает, что итога ещё нет.
func (g *WorkflowGateway) WorkflowResult(ctx context.Context, workflowID string, wait bool) (entities.Execution, error) {
	path := "/workflows/" + url.PathEscape(workflowID) + "/result"
	if wait {
		path += "?wait=true"
	}

	var response dto.WorkflowResultResponse

	err := g.executeWithMetrics(ctx, "WorkflowResult", func(ctx context.Context) (int, error) {
		return g.do(ctx, http.MethodGet, path, nil, &response, http.StatusOK, http.StatusAccepted)
	})
	if err != nil {
		return entities.Execution{}, fmt.Errorf("gateway workflow, result %s: %w", workflowID, err)
	}

	execution := entities.Execution{
		WorkflowID: response.WorkflowID,
		Status:     entities.ExecutionStatus(response.Status),
	}
	if response.Result != nil {
		result := dto.ToDomainResult(*response.Result)
		execution.OrderID = result.OrderID
		execution.Result = &result
	}
	return execution, nil
}

func (g *WorkflowGateway) CancelWorkflow(ctx context.Context, workflowID, reason string) error {
	request := dto.CancelWorkflowRequest{
		Reason: reason,
	}

	err := g.executeWithMetrics(ctx, "CancelWorkflow", func(ctx context.Context) (int, error) {
		return g.do(ctx, http.MethodPost, "/workflows/"+url.PathEscape(workflowID)+"/cancel", request, nil, http.StatusAccepted)
	})
	if err != nil {
		return fmt.Errorf("gateway workflow, cancel %s: %w", workflowID, err)
	}
	return nil
}

// do выполняет один HTTP запрос. Тело запроса собирается заново на каждую попытку.
func (g *WorkflowGateway) do(
	ctx context.Context,
	method, path string,
	body, out any,
	expected ...int,
) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	for _, code := range expected {
		if resp.StatusCode != code {
			continue
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
		}
		return resp.StatusCode, nil
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return resp.StatusCode, ErrInvalidRequest
	case http.StatusNotFound:
		return resp.StatusCode, ErrWorkflowNotFound
	case http.StatusConflict:
		if method == http.MethodPost && path == "/workflows" {
			return resp.StatusCode, ErrWorkflowAlreadyStarted
		}
		return resp.StatusCode, ErrWorkflowNotRunning
	default:
		return resp.StatusCode, &statusError{code: resp.StatusCode}
	}
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		switch se.code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	// сетевые ошибки транспорта (connection refused, reset) ретраим
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// executeWithMetrics latency metric -> attempts metric -> span -> retrier -> http
func (g *WorkflowGateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) (int, error)) error {
	ctx, span := g.tracer.Start(ctx, "gateway."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("peer.service", serviceName)),
	)
	defer span.End()

	var (
		attempt uint64
		code    int
	)
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		var err error
		code, err = fn(ctx)
		return err
	})

	httpCode := httpCodeLabel(code, err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, httpCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, httpCode).Inc()
	}

	span.SetAttributes(attribute.Int64("gateway.attempts", int64(attempt)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func httpCodeLabel(code int, err error) string {
	if code != 0 {
		return strconv.Itoa(code)
	}
	if err != nil {
		return "TRANSPORT"
	}
	return "OK"
}
