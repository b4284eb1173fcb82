package app

import (
	"context"
	"net/http"

	"fulfillment/internal/activities/simulated"
	"fulfillment/internal/engine"
	workflowGateway "fulfillment/internal/gateway/http/workflow"
	"fulfillment/internal/handlers/rest/healthcheck_head"
	"fulfillment/internal/handlers/rest/workflow_cancel_post"
	"fulfillment/internal/handlers/rest/workflow_get"
	"fulfillment/internal/handlers/rest/workflow_post"
	"fulfillment/internal/handlers/rest/workflow_result_get"
	"fulfillment/internal/handlers/rest/workflows_get"
	"fulfillment/internal/handlers/tasks/execution_cleanup"
	"fulfillment/internal/handlers/ws/workflow_events"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/kafka"
	"fulfillment/internal/pkg/metrics"
	"fulfillment/internal/pkg/redislock"
	executionRepo "fulfillment/internal/repository/execution"
	"fulfillment/internal/repository/inmemory"
	cancellationService "fulfillment/internal/service/cancellation"
	"fulfillment/internal/workflow/activity"
	"fulfillment/internal/workflow/notification"
	"fulfillment/internal/workflow/orchestrator"
	"fulfillment/internal/workflow/telemetry"
	"fulfillment/pkg/background"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/querier"
	"fulfillment/pkg/tx"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Application struct {
	Engine            *engine.Engine
	ServiceWorkflow   ServiceWorkflow
	Hub               *telemetry.Hub
	Probes            []healthcheck_head.Probe
	BackgroundWorkers *background.Worker
}

type ServiceWorkflow interface {
	workflow_post.Service
	workflows_get.Service
	workflow_get.Service
	workflow_result_get.Service
	workflow_cancel_post.Service
	workflow_events.Service
}

type KafkaWorkerApp struct {
	CancellationService *cancellationService.Service
}

func provideExecutionStore(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) engine.Store {
	if pool == nil {
		return inmemory.NewExecutionRepository()
	}
	return executionRepo.New(querier.New(pool, getter), tx.New(pool))
}

// provideLocker без redis возвращает nil, и engine берёт блокировку в памяти процесса.
func provideLocker(redisClient *redis.Client) engine.Locker {
	if redisClient == nil {
		return nil
	}
	return redislock.New(redisClient)
}

func provideEventSink(log logger.Logger, hub *telemetry.Hub, publisher *kafka.EventPublisher) telemetry.Sink {
	sinks := []telemetry.Sink{
		telemetry.NewLogSink(log),
		telemetry.MetricsSink{},
		hub,
	}
	if publisher != nil {
		sinks = append(sinks, publisher)
	}
	return telemetry.Multi(sinks...)
}

func provideActivities(log logger.Logger, cfg *config.Config) *simulated.Activities {
	outcomes := simulated.NewRandomOutcomes(simulated.Probabilities{
		ItemUnavailable: cfg.Simulation.ItemUnavailableProbability,
		PaymentDecline:  cfg.Simulation.PaymentDeclineProbability,
		TransportFault:  cfg.Simulation.TransportFaultProbability,
	})
	latency := simulated.DefaultLatency().Scale(cfg.Simulation.LatencyFactor)

	return simulated.New(log, outcomes, latency)
}

func provideActivityExecutor(log logger.Logger, cfg *config.Config) *activity.Executor {
	return activity.New(log, activity.Config{
		StartToCloseTimeout: cfg.Workflow.StartToCloseTimeout,
		MaxAttempts:         cfg.Workflow.MaxAttempts,
		InitialInterval:     cfg.Workflow.InitialInterval,
	})
}

func provideNotificationDispatcher(
	log logger.Logger,
	executor *activity.Executor,
	activities *simulated.Activities,
) *notification.Dispatcher {
	return notification.New(log, executor, activities)
}

func provideOrchestrator(
	log logger.Logger,
	executor *activity.Executor,
	activities *simulated.Activities,
	dispatcher *notification.Dispatcher,
	cfg *config.Config,
) *orchestrator.Orchestrator {
	return orchestrator.New(
		log,
		executor,
		activities,
		dispatcher,
		orchestrator.SystemTimer{},
		orchestrator.Config{DeliveryTransitWait: cfg.Workflow.DeliveryTransitWait},
	)
}

func provideEngine(
	log logger.Logger,
	orch *orchestrator.Orchestrator,
	store engine.Store,
	locker engine.Locker,
	sink telemetry.Sink,
	cfg *config.Config,
) *engine.Engine {
	return engine.New(log, orch, store, locker, sink, engine.Config{
		LockTTL: cfg.Workflow.LockTTL,
	})
}

type redisProbe struct {
	client *redis.Client
}

func (p redisProbe) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func provideProbes(pool *pgxpool.Pool, redisClient *redis.Client) []healthcheck_head.Probe {
	probes := make([]healthcheck_head.Probe, 0, 2)
	if pool != nil {
		probes = append(probes, pool)
	}
	if redisClient != nil {
		probes = append(probes, redisProbe{client: redisClient})
	}
	return probes
}

func provideExecutionCleanupTask(
	log logger.Logger,
	service execution_cleanup.Service,
	cfg *config.Config,
) *execution_cleanup.ExecutionCleanup {
	return execution_cleanup.NewExecutionCleanup(log, service, cfg.Tasks.ExecutionCleanupInterval, cfg.Workflow.Retention)
}

func provideTaskList(
	executionCleanupTask *execution_cleanup.ExecutionCleanup,
	systemCollector *metrics.SystemCollector,
) []background.Task {
	return []background.Task{
		executionCleanupTask,
		systemCollector,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

func provideWorkflowGateway(cfg *config.Config, httpClient *http.Client) *workflowGateway.WorkflowGateway {
	return workflowGateway.New(cfg.WorkflowService.BaseURL, httpClient)
}
