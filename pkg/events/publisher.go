package events

import (
	"context"
	"fmt"

	"agenda/pkg/config"
	"agenda/pkg/kafka"
	kafka_config "agenda/pkg/kafka/config"
	kafka_middleware "agenda/pkg/kafka/middleware"
)

// Event types emitted by the scheduling services
const (
	TypeRecurringApplied         = "schedule.recurring_applied"
	TypeExceptionSet             = "schedule.exception_set"
	TypeScheduleDeleted          = "schedule.deleted"
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
	TypeResourceCreated          = "resource.created"
	TypeResourceUpdated          = "resource.updated"
)

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, eventType string, key string, payload interface{}) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

// NewPublisher creates a Kafka-backed publisher. All events go to a single
// topic (<prefix>.events) keyed by entity ID, with the event type carried in
// headers so consumers can filter without extra topics.
func NewPublisher(cfg *config.Config, serviceName string) (Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return NewNoop(), nil
	}

	kcfg := kafka_config.Load()
	kcfg.Brokers = cfg.KafkaBrokers

	topic := fmt.Sprintf("%s.events", cfg.KafkaTopicPrefix)
	dlqTopic := fmt.Sprintf("%s.events.dlq", cfg.KafkaTopicPrefix)

	producer, err := kafka.NewProducer(kcfg, topic, dlqTopic)
	if err != nil {
		return nil, err
	}

	if kcfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
	}

	return &kafkaPublisher{
		producer: producer,
		source:   serviceName,
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, key string, payload interface{}) error {
	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventID("").
		WithEventType(eventType).
		WithSchemaVersion("1").
		WithSource(p.source).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher discards all events. Used when event publishing is disabled
// and as a default in tests.
type NoopPublisher struct{}

func NewNoop() *NoopPublisher {
	return &NoopPublisher{}
}

func (*NoopPublisher) Publish(ctx context.Context, eventType string, key string, payload interface{}) error {
	return nil
}

func (*NoopPublisher) Close() error {
	return nil
}
