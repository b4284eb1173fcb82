package kafka

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/pkg/logger"
	retrierconfig "fulfillment/pkg/retrier"
	"fulfillment/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

var ErrTopicMissing = errors.New("kafka topic does not exist")

// SplitBrokers разбирает KAFKA_BROKERS вида "host1:9092, host2:9092".
func SplitBrokers(raw string) []string {
	brokers := make([]string, 0)
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// MissingTopics возвращает топики из want, которых нет в кластере.
func MissingTopics(existing, want []string) []string {
	missing := make([]string, 0)
	for _, topic := range want {
		if !slices.Contains(existing, topic) {
			missing = append(missing, topic)
		}
	}
	return missing
}

// connect ждёт доступности брокеров и проверяет, что нужные топики созданы.
// Отсутствие топика не ретраится: авто-создание в кластере выключено.
func connect(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config, topics []string) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry: func(err error) bool {
			return !errors.Is(err, ErrTopicMissing)
		},
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting Kafka connection")

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close Kafka connection",
					logger.NewField("error", err),
				)
			}
		}()

		existing, err := client.Topics()
		if err != nil {
			return err
		}
		if missing := MissingTopics(existing, topics); len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrTopicMissing, strings.Join(missing, ", "))
		}
		return nil
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Kafka connection failed")
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("Kafka connection established")
	return nil
}
