package kafka

import (
	"errors"
	"fmt"
	"strings"
)

// Common Kafka errors
var (
	ErrProducerClosed    = errors.New("producer is closed")
	ErrConsumerClosed    = errors.New("consumer is closed")
	ErrInvalidMessage    = errors.New("invalid message")
	ErrEmptyKey          = errors.New("message key cannot be empty")
	ErrEmptyValue        = errors.New("message value cannot be empty")
	ErrPublishTimeout    = errors.New("publish timeout")
	ErrConsumeTimeout    = errors.New("consume timeout")
	ErrMaxRetriesReached = errors.New("max retries reached")
	ErrConnectionFailed  = errors.New("connection to kafka failed")
)

// KafkaError wraps Kafka-related errors with context
type KafkaError struct {
	Operation string // Operation that failed (e.g., "publish", "consume")
	Topic     string // Topic involved
	Err       error  // Underlying error
	Retriable bool   // Whether the operation can be retried
}

func (e *KafkaError) Error() string {
	if e.Topic != "" {
		return fmt.Sprintf("kafka %s failed for topic %s: %v", e.Operation, e.Topic, e.Err)
	}
	return fmt.Sprintf("kafka %s failed: %v", e.Operation, e.Err)
}

func (e *KafkaError) Unwrap() error {
	return e.Err
}

// NewKafkaError creates a new KafkaError
func NewKafkaError(operation, topic string, err error, retriable bool) *KafkaError {
	return &KafkaError{
		Operation: operation,
		Topic:     topic,
		Err:       err,
		Retriable: retriable,
	}
}

// ShouldRetry reports whether a failed delivery should be attempted again
func ShouldRetry(err error, retries, maxRetries int) bool {
	if retries >= maxRetries {
		return false
	}
	return IsRetriable(err)
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var kafkaErr *KafkaError
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Retriable
	}

	// Network and timeout errors are generally retriable
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "unavailable")
}
