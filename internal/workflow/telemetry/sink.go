package telemetry

import (
	"fulfillment/internal/entities"
	"fulfillment/pkg/logger"
)

// Sink принимает типизированные события workflow. Emit не должен блокировать оркестратор.
type Sink interface {
	Emit(event entities.Event)
}

type SinkFunc func(event entities.Event)

func (f SinkFunc) Emit(event entities.Event) {
	f(event)
}

type multiSink []Sink

// Multi рассылает каждое событие во все sinks по порядку. nil пропускаются.
func Multi(sinks ...Sink) Sink {
	res := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			res = append(res, s)
		}
	}
	return res
}

func (m multiSink) Emit(event entities.Event) {
	for _, s := range m {
		s.Emit(event)
	}
}

type LogSink struct {
	log logger.Logger
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log.With(logger.NewField("component", "workflow-events"))}
}

func (l *LogSink) Emit(event entities.Event) {
	fields := []logger.Field{
		logger.NewField("type", event.Type.String()),
		logger.NewField("workflow_id", event.WorkflowID),
		logger.NewField("order", event.OrderID),
	}
	if event.Activity != "" {
		fields = append(fields, logger.NewField("activity", event.Activity))
	}
	if event.Status != "" {
		fields = append(fields, logger.NewField("status", event.Status.String()))
	}

	if event.Type == entities.EventError {
		l.log.Error(event.Message, fields...)
		return
	}
	l.log.Info(event.Message, fields...)
}

type MetricsSink struct{}

func (MetricsSink) Emit(event entities.Event) {
	WorkflowEventsTotal.WithLabelValues(event.Type.String()).Inc()
}
