package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "fulfillment/internal/app"
	"fulfillment/internal/handlers/rest/healthcheck_head"
	"fulfillment/internal/handlers/rest/ping_get"
	"fulfillment/internal/handlers/rest/workflow_cancel_post"
	"fulfillment/internal/handlers/rest/workflow_get"
	"fulfillment/internal/handlers/rest/workflow_post"
	"fulfillment/internal/handlers/rest/workflow_result_get"
	"fulfillment/internal/handlers/rest/workflows_get"
	"fulfillment/internal/handlers/ws/workflow_events"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/dotenv"
	"fulfillment/internal/pkg/kafka"
	"fulfillment/internal/pkg/middlewares/graceful_shutdown"
	"fulfillment/internal/pkg/middlewares/metrics"
	"fulfillment/internal/pkg/middlewares/rate_limiter"
	"fulfillment/internal/pkg/middlewares/timeout"
	"fulfillment/internal/pkg/postgres"
	"fulfillment/internal/pkg/redislock"
	"fulfillment/internal/pkg/tracing"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/logger/zap_adapter"
	"fulfillment/pkg/token_bucket"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// запас, чтобы долгий опрос результата отвечал 202 раньше, чем сработает таймаут middleware
const longPollMargin = 5 * time.Second

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting fulfillment application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	shutdownTracer, err := tracing.Init(log, cfg.Jaeger.ServiceName, cfg.Jaeger.Endpoint)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownHardPeriod)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			runLog.Error("failed to flush spans", logger.NewField("error", err))
		}
	}()

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = postgres.Open(ctx, log, &cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
	} else {
		runLog.Warn("POSTGRES_HOST is not set, executions are kept in memory")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redislock.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				runLog.Error("failed to close redis client", logger.NewField("error", err))
			}
		}()
	}

	var publisher *kafka.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewAsyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		publisher = kafka.NewEventPublisher(log, producer, cfg.Kafka.EventsTopic)
		// закрывается после engine.Shutdown: последние события workflow тоже должны уйти
		defer func() {
			if err := publisher.Close(); err != nil {
				runLog.Error("failed to close kafka producer", logger.NewField("error", err))
			}
		}()
	}

	// workersCtx живёт до конца run: фоновые задачи и hub останавливаются после HTTP сервера
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	businessApp, err := application.InitializeApplication(
		workersCtx,
		log,
		pool,
		pgxv5.DefaultCtxGetter,
		redisClient,
		publisher,
		cfg,
	)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	go businessApp.Hub.Run(workersCtx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.ResultLongPollTimeout + longPollMargin,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	// выполнения доживают в пределах того же shutdownCtx, остальные прерываются
	if err := businessApp.Engine.Shutdown(shutdownCtx); err != nil {
		runLog.Error("workflow engine shutdown", logger.NewField("error", err))
	} else {
		runLog.Info("running workflows finished")
	}

	stopWorkers()
	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown))
	router.Use(metrics.Middleware(log))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Probes...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	// websocket живёт дольше любого таймаута запроса, поэтому вне api
	router.Handle("/ws/events", workflow_events.New(log, app.Hub, app.ServiceWorkflow)).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(timeout.Middleware(cfg.RequestTimeout, cfg.ResultLongPollTimeout))

	limiter := rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS)))
	api.Handle("/workflows", limiter(workflow_post.New(log, app.ServiceWorkflow))).Methods("POST")
	api.Handle("/workflows", workflows_get.New(log, app.ServiceWorkflow)).Methods("GET")
	api.Handle("/workflows/{id}", workflow_get.New(log, app.ServiceWorkflow)).Methods("GET")
	api.Handle("/workflows/{id}/result", workflow_result_get.New(log, app.ServiceWorkflow, resultWait(cfg))).Methods("GET")
	api.Handle("/workflows/{id}/cancel", workflow_cancel_post.New(log, app.ServiceWorkflow)).Methods("POST")

	return router
}

func resultWait(cfg config.HTTPServer) time.Duration {
	wait := cfg.ResultLongPollTimeout - longPollMargin
	if wait <= 0 {
		return cfg.ResultLongPollTimeout / 2
	}
	return wait
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
