package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives checkout-completed events.
const DefaultTopic = "checkout.completed"

const eventTypeCheckoutCompleted = "checkout.completed"

// Producer publishes checkout events.
type Producer interface {
	// PublishCheckoutCompleted enqueues the event and returns without waiting
	// for the broker. Delivery failures are logged.
	PublishCheckoutCompleted(ctx context.Context, event domain.CheckoutCompleted) error
	Close() error
}

// Envelope is the message value written to the topic.
type Envelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	domain.CheckoutCompleted
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaProducer struct {
	writer messageWriter
	log    *logger.Logger
}

// NewKafkaProducer creates an asynchronous producer writing to topic.
func NewKafkaProducer(brokers []string, topic string, log *logger.Logger) (Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Errorw("Failed to deliver checkout events", "error", err, "topic", topic, "count", len(messages))
				return
			}
			log.Debugw("Delivered checkout events", "topic", topic, "count", len(messages))
		},
	}

	log.Infow("Kafka producer initialized", "brokers", brokers, "topic", topic)
	return newProducer(writer, log), nil
}

func newProducer(writer messageWriter, log *logger.Logger) *kafkaProducer {
	return &kafkaProducer{writer: writer, log: log}
}

// PublishCheckoutCompleted keys the message by customer so that events of one
// customer stay ordered.
func (k *kafkaProducer) PublishCheckoutCompleted(ctx context.Context, event domain.CheckoutCompleted) error {
	envelope := Envelope{
		ID:                uuid.NewString(),
		Type:              eventTypeCheckoutCompleted,
		CheckoutCompleted: event,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("kafka: failed to marshal checkout event: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CustomerID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(envelope.ID)},
			{Key: "event-type", Value: []byte(envelope.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka: failed to write checkout event: %w", err)
	}

	k.log.Debugw("Enqueued checkout event", "eventID", envelope.ID, "subscriptionID", event.SubscriptionID)
	return nil
}

// Close flushes pending messages.
func (k *kafkaProducer) Close() error {
	k.log.Infow("Closing Kafka producer writer")
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	return nil
}
