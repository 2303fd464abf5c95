package events

import (
	"fmt"

	"agenda/pkg/config"
	"agenda/pkg/kafka"
	kafka_config "agenda/pkg/kafka/config"
	kafka_middleware "agenda/pkg/kafka/middleware"
)

// NewConsumer creates a consumer bound to the shared events topic. The group
// ID is derived from the service name so each service tracks its own offsets.
func NewConsumer(cfg *config.Config, serviceName string, handler kafka.MessageHandler) (*kafka.Consumer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}

	kcfg := kafka_config.Load()
	kcfg.Brokers = cfg.KafkaBrokers

	topic := fmt.Sprintf("%s.events", cfg.KafkaTopicPrefix)
	dlqTopic := fmt.Sprintf("%s.events.dlq", cfg.KafkaTopicPrefix)
	groupID := fmt.Sprintf("%s-consumer-group", serviceName)

	consumer, err := kafka.NewConsumer(kcfg, topic, groupID, dlqTopic, handler)
	if err != nil {
		return nil, err
	}

	if kcfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware())
	}

	return consumer, nil
}
