package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/config"
	"fulfillment/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_workflow_events_published_total",
		Help: "Total number of workflow events handed to Kafka by result",
	},
	[]string{"result"},
)

// EventPublisher отправляет события workflow в топик. Emit не блокирует
// выполнение: ошибки доставки только логируются.
type EventPublisher struct {
	log      logger.Logger
	producer sarama.AsyncProducer
	topic    string

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	// события одного workflow попадают в одну партицию и сохраняют порядок
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	return cfg, nil
}

func NewAsyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.AsyncProducer, error) {
	brokers := SplitBrokers(cfg.Brokers)

	saramaConfig, err := NewProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build producer config: %w", err)
	}

	producerLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.EventsTopic),
	)

	if err := connect(ctx, producerLog, brokers, saramaConfig, []string{cfg.EventsTopic}); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewAsyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, nil
}

func NewEventPublisher(log logger.Logger, producer sarama.AsyncProducer, topic string) *EventPublisher {
	p := &EventPublisher{
		log:      log.With(logger.NewField("topic", topic)),
		producer: producer,
		topic:    topic,
	}

	p.wg.Add(2)
	go p.drainSuccesses()
	go p.drainErrors()

	return p
}

func (p *EventPublisher) Emit(event entities.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		EventsPublishedTotal.WithLabelValues("encode_error").Inc()
		p.log.Error("encode workflow event",
			logger.NewField("error", err),
			logger.NewField("type", event.Type.String()),
		)
		return
	}

	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.WorkflowID),
		Value: sarama.ByteEncoder(payload),
	}
}

// Close дожидается отправки буфера продюсера.
func (p *EventPublisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.producer.Close()
		p.wg.Wait()
	})
	return err
}

func (p *EventPublisher) drainSuccesses() {
	defer p.wg.Done()

	for range p.producer.Successes() {
		EventsPublishedTotal.WithLabelValues("ok").Inc()
	}
}

func (p *EventPublisher) drainErrors() {
	defer p.wg.Done()

	for producerErr := range p.producer.Errors() {
		EventsPublishedTotal.WithLabelValues("error").Inc()
		p.log.Warn("failed to publish workflow event",
			logger.NewField("error", producerErr.Err),
		)
	}
}
