package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultShutdownTimeout        = 30 * time.Second
	defaultResultLongPollTimeout  = 2 * time.Minute
	defaultStartToCloseTimeout    = 30 * time.Second
	defaultMaxAttempts            = 3
	defaultInitialInterval        = time.Second
	defaultDeliveryTransitWait    = time.Minute
	defaultLockTTL                = time.Hour
	defaultRetention              = 24 * time.Hour
	defaultCleanupInterval        = 10 * time.Minute
	defaultItemUnavailable        = 0.1
	defaultPaymentDecline         = 0.05
	defaultLatencyFactor          = 1.0
	defaultProcessTimeout         = 10 * time.Second
	defaultGatewayRequestTimeout  = 5 * time.Second
	defaultJaegerServiceName      = "fulfillment"
	defaultKafkaSaramaVersion     = "3.6.0"
	defaultKafkaEventsTopic       = "workflow-events"
	defaultKafkaCancelTopic       = "order-cancel-requested"
	defaultKafkaConsumerGroup     = "fulfillment-order-cancel-requested"
	defaultKafkaHealthcheckPort   = "8081"
	defaultWorkflowServiceBaseURL = "http://localhost:8080"
)

type (
	Tasks struct {
		ExecutionCleanupInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter refill per second
		RateLimiterBurst int           // middleware rate limiter capacity
		PprofEnabled     bool
		PprofPort        string
		ShutdownTimeout  time.Duration

		// ResultLongPollTimeout таймаут GET /workflows/{id}/result?wait=true
		ResultLongPollTimeout time.Duration
	}

	Workflow struct {
		StartToCloseTimeout time.Duration
		MaxAttempts         uint64
		InitialInterval     time.Duration
		DeliveryTransitWait time.Duration
		LockTTL             time.Duration
		Retention           time.Duration
	}

	Simulation struct {
		ItemUnavailableProbability float64
		PaymentDeclineProbability  float64
		TransportFaultProbability  float64
		// LatencyFactor множитель искусственных задержек активностей, 0 отключает их
		LatencyFactor float64
	}

	// Database опционален: без POSTGRES_HOST выполнения хранятся в памяти.
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Jaeger struct {
		Endpoint    string
		ServiceName string
	}

	WorkflowService struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		EventsTopic     string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderCancelRequested OrderCancelRequested
	}

	OrderCancelRequested struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		LogLevel        string
		Tasks           Tasks
		Server          HTTPServer
		Workflow        Workflow
		Simulation      Simulation
		Database        Database
		Redis           Redis
		Jaeger          Jaeger
		WorkflowService WorkflowService
		Kafka           Kafka
	}
)

func (d Database) Enabled() bool {
	return d.Host != ""
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}

func (j Jaeger) Enabled() bool {
	return j.Endpoint != ""
}

func (k Kafka) Enabled() bool {
	return k.Brokers != ""
}

// Load конфигурация сервиса workflow.
func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadWorker конфигурация воркера запросов на отмену. Kafka для него обязательна.
func LoadWorker() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateWorkerConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	cleanupInterval, err := osGetEnvDurationOr("BACKGROUND_EXECUTION_CLEANUP_INTERVAL", defaultCleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	shutdownTimeout, err := osGetEnvDurationOr("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	longPollTimeout, err := osGetEnvDurationOr("MIDDLEWARE_RESULT_LONG_POLL_TIMEOUT", defaultResultLongPollTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	workflow, err := loadWorkflow()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	simulation, err := loadSimulation()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	gatewayTimeout, err := osGetEnvDurationOr("WORKFLOW_SERVICE_REQUEST_TIMEOUT", defaultGatewayRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cancelRequestedTimeout, err := osGetEnvDurationOr("KAFKA_HANDLER_ORDER_CANCEL_REQUESTED_PROCESS_TIMEOUT", defaultProcessTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		LogLevel: os.Getenv("LOG_LEVEL"),
		Tasks: Tasks{
			ExecutionCleanupInterval: cleanupInterval,
		},
		Server: HTTPServer{
			Port:                  os.Getenv("PORT"),
			RequestTimeout:        requestTimeout,
			RateLimiterQPS:        rateLimiterQPS,
			RateLimiterBurst:      rateLimiterBurst,
			ResultLongPollTimeout: longPollTimeout,
			PprofEnabled:          pprofEnabled,
			PprofPort:             os.Getenv("PPROF_PORT"),
			ShutdownTimeout:       shutdownTimeout,
		},
		Workflow:   workflow,
		Simulation: simulation,
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Jaeger: Jaeger{
			Endpoint:    os.Getenv("JAEGER_ENDPOINT"),
			ServiceName: osGetEnvOr("JAEGER_SERVICE_NAME", defaultJaegerServiceName),
		},
		WorkflowService: WorkflowService{
			BaseURL:        osGetEnvOr("WORKFLOW_SERVICE_BASE_URL", defaultWorkflowServiceBaseURL),
			RequestTimeout: gatewayTimeout,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           osGetEnvOr("KAFKA_TOPIC", defaultKafkaCancelTopic),
			EventsTopic:     osGetEnvOr("KAFKA_EVENTS_TOPIC", defaultKafkaEventsTopic),
			ConsumerGroup:   osGetEnvOr("KAFKA_CONSUMER_GROUP", defaultKafkaConsumerGroup),
			PortHealthcheck: osGetEnvOr("KAFKA_HTTP_HEALTHCHECK_PORT", defaultKafkaHealthcheckPort),
			Sarama: Sarama{
				Version:                   osGetEnvOr("KAFKA_SARAMA_VERSION", defaultKafkaSaramaVersion),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderCancelRequested: OrderCancelRequested{
					ProcessTimeout: cancelRequestedTimeout,
				},
			},
		},
	}, nil
}

func loadWorkflow() (Workflow, error) {
	startToClose, err := osGetEnvDurationOr("ACTIVITY_START_TO_CLOSE_TIMEOUT", defaultStartToCloseTimeout)
	if err != nil {
		return Workflow{}, err
	}

	maxAttempts, err := osGetInt("ACTIVITY_MAX_ATTEMPTS")
	if err != nil {
		return Workflow{}, err
	}
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	if maxAttempts < 0 {
		return Workflow{}, fmt.Errorf("ACTIVITY_MAX_ATTEMPTS must be positive, got %d", maxAttempts)
	}

	initialInterval, err := osGetEnvDurationOr("ACTIVITY_INITIAL_INTERVAL", defaultInitialInterval)
	if err != nil {
		return Workflow{}, err
	}

	// 0 допустим: доставка без ожидания
	transitWait, err := osGetEnvDurationOr("WORKFLOW_DELIVERY_TRANSIT_WAIT", defaultDeliveryTransitWait)
	if err != nil {
		return Workflow{}, err
	}

	lockTTL, err := osGetEnvDurationOr("WORKFLOW_LOCK_TTL", defaultLockTTL)
	if err != nil {
		return Workflow{}, err
	}

	retention, err := osGetEnvDurationOr("WORKFLOW_RETENTION", defaultRetention)
	if err != nil {
		return Workflow{}, err
	}

	return Workflow{
		StartToCloseTimeout: startToClose,
		MaxAttempts:         uint64(maxAttempts),
		InitialInterval:     initialInterval,
		DeliveryTransitWait: transitWait,
		LockTTL:             lockTTL,
		Retention:           retention,
	}, nil
}

func loadSimulation() (Simulation, error) {
	itemUnavailable, err := osGetFloatOr("SIMULATION_ITEM_UNAVAILABLE_PROBABILITY", defaultItemUnavailable)
	if err != nil {
		return Simulation{}, err
	}

	paymentDecline, err := osGetFloatOr("SIMULATION_PAYMENT_DECLINE_PROBABILITY", defaultPaymentDecline)
	if err != nil {
		return Simulation{}, err
	}

	transportFault, err := osGetFloatOr("SIMULATION_TRANSPORT_FAULT_PROBABILITY", 0)
	if err != nil {
		return Simulation{}, err
	}

	latencyFactor, err := osGetFloatOr("SIMULATION_LATENCY_FACTOR", defaultLatencyFactor)
	if err != nil {
		return Simulation{}, err
	}

	return Simulation{
		ItemUnavailableProbability: itemUnavailable,
		PaymentDeclineProbability:  paymentDecline,
		TransportFaultProbability:  transportFault,
		LatencyFactor:              latencyFactor,
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Workflow.StartToCloseTimeout <= 0 {
		return errors.New("ACTIVITY_START_TO_CLOSE_TIMEOUT must be positive")
	}
	if cfg.Workflow.DeliveryTransitWait < 0 {
		return errors.New("WORKFLOW_DELIVERY_TRANSIT_WAIT must not be negative")
	}
	if cfg.Workflow.Retention <= 0 {
		return errors.New("WORKFLOW_RETENTION must be positive")
	}
	if cfg.Tasks.ExecutionCleanupInterval <= 0 {
		return errors.New("BACKGROUND_EXECUTION_CLEANUP_INTERVAL must be positive")
	}

	if err := validateSimulation(cfg.Simulation); err != nil {
		return err
	}

	if cfg.Database.Enabled() {
		if err := validateDatabase(cfg.Database); err != nil {
			return err
		}
	}

	if cfg.Kafka.Enabled() && cfg.Kafka.EventsTopic == "" {
		return errors.New("KAFKA_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return nil
}

func validateWorkerConfig(cfg *Config) error {
	if cfg.WorkflowService.BaseURL == "" {
		return errors.New("WORKFLOW_SERVICE_BASE_URL is required")
	}
	if cfg.WorkflowService.RequestTimeout <= 0 {
		return errors.New("WORKFLOW_SERVICE_REQUEST_TIMEOUT must be positive")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if cfg.Kafka.Handlers.OrderCancelRequested.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_ORDER_CANCEL_REQUESTED_PROCESS_TIMEOUT must be positive")
	}

	return nil
}

func validateDatabase(db Database) error {
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func validateSimulation(s Simulation) error {
	probabilities := map[string]float64{
		"SIMULATION_ITEM_UNAVAILABLE_PROBABILITY": s.ItemUnavailableProbability,
		"SIMULATION_PAYMENT_DECLINE_PROBABILITY":  s.PaymentDeclineProbability,
		"SIMULATION_TRANSPORT_FAULT_PROBABILITY":  s.TransportFaultProbability,
	}
	for name, p := range probabilities {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, p)
		}
	}
	if s.LatencyFactor < 0 {
		return errors.New("SIMULATION_LATENCY_FACTOR must not be negative")
	}
	return nil
}

func osGetEnvOr(s, def string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return def
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloatOr(s string, def float64) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	return osGetEnvDurationOr(s, 0)
}

func osGetEnvDurationOr(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
