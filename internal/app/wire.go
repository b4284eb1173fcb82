//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"net/http"

	"fulfillment/internal/engine"
	workflowGateway "fulfillment/internal/gateway/http/workflow"
	"fulfillment/internal/handlers/tasks/execution_cleanup"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/kafka"
	"fulfillment/internal/pkg/metrics"
	cancellationService "fulfillment/internal/service/cancellation"
	workflowService "fulfillment/internal/service/workflow"
	"fulfillment/internal/workflow/telemetry"
	"fulfillment/pkg/logger"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// InitializeApplication для HTTP сервиса (cmd/service).
// pool, redisClient и publisher могут быть nil: тогда выполнения хранятся в памяти,
// блокировка берётся в процессе, а события в Kafka не уходят.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *redis.Client,
	publisher *kafka.EventPublisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideExecutionStore,
		provideLocker,

		telemetry.NewHub,
		provideEventSink,

		provideActivities,
		provideActivityExecutor,
		provideNotificationDispatcher,
		provideOrchestrator,
		provideEngine,
		workflowService.New,

		provideProbes,
		provideExecutionCleanupTask,
		metrics.NewSystemCollector,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceWorkflow), new(*workflowService.Service)),
		wire.Bind(new(workflowService.Engine), new(*engine.Engine)),
		wire.Bind(new(execution_cleanup.Service), new(*engine.Engine)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-cancel-requested)
func InitializeKafkaWorkerApp(httpClient *http.Client, cfg *config.Config) (*KafkaWorkerApp, error) {
	wire.Build(
		provideWorkflowGateway,
		cancellationService.New,

		wire.Bind(new(cancellationService.WorkflowGateway), new(*workflowGateway.WorkflowGateway)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
