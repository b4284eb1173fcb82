package tracing

import (
	"context"
	"fmt"

	"fulfillment/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Shutdown сбрасывает накопленные спаны и останавливает экспорт.
type Shutdown func(ctx context.Context) error

// Init регистрирует глобальный TracerProvider с экспортом в Jaeger.
// При пустом endpoint остаётся noop провайдер otel, спаны никуда не уходят.
func Init(log logger.Logger, serviceName, endpoint string) (Shutdown, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if endpoint == "" {
		log.Info("tracing disabled, JAEGER_ENDPOINT is not set")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	if err != nil {
		return nil, fmt.Errorf("jaeger exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	log.With(
		logger.NewField("service", serviceName),
		logger.NewField("endpoint", endpoint),
	).Info("tracing initialized")

	return tp.Shutdown, nil
}
