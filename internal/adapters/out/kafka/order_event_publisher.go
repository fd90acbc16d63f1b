// Package kafka publishes committed order changes to a Kafka topic so that
// downstream services (notifications, payouts, analytics) can follow the
// order lifecycle without polling.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"ordering/internal/core/domain/model/order"
)

// OrderChangedMessage is the JSON body of every record on the order-changed topic.
type OrderChangedMessage struct {
	OrderID       string    `json:"orderId"`
	TenantID      string    `json:"tenantId"`
	CustomerID    string    `json:"customerId"`
	PartnerID     *string   `json:"partnerId,omitempty"`
	Kind          string    `json:"kind"`
	State         string    `json:"state"`
	PaymentStatus string    `json:"paymentStatus"`
	Version       int64     `json:"version"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewOrderChangedMessage flattens a domain event into its wire form.
func NewOrderChangedMessage(e order.ChangedEvent) OrderChangedMessage {
	msg := OrderChangedMessage{
		OrderID:       e.OrderID.String(),
		TenantID:      e.TenantID.String(),
		CustomerID:    e.CustomerID.String(),
		Kind:          string(e.Kind),
		State:         e.State.String(),
		PaymentStatus: e.PaymentStatus.String(),
		Version:       e.Version,
		OccurredAt:    e.OccurredAt,
	}
	if e.PartnerID != nil {
		id := e.PartnerID.String()
		msg.PartnerID = &id
	}
	return msg
}

// OrderEventPublisher sends order change events with a sarama SyncProducer.
// Records are keyed by order id, so every change of one order lands on the
// same partition and consumers see versions in order.
type OrderEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerConfig returns the sarama settings the publisher relies on:
// acknowledged by all in-sync replicas and successes reported back.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Partitioner = sarama.NewHashPartitioner
	return config
}

// NewOrderEventPublisher dials the brokers.
//
// Example:
//
//	publisher, err := kafka.NewOrderEventPublisher([]string{"localhost:9092"}, "orders.changed")
//	if err != nil {
//	    return err
//	}
//	defer publisher.Close()
func NewOrderEventPublisher(brokers []string, topic string) (*OrderEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: at least one broker is required")
	}
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return NewOrderEventPublisherWithProducer(producer, topic), nil
}

// NewOrderEventPublisherWithProducer wraps an existing producer.
func NewOrderEventPublisherWithProducer(producer sarama.SyncProducer, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{producer: producer, topic: topic}
}

// Publish sends the events as one batch.
func (p *OrderEventPublisher) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(NewOrderChangedMessage(e))
		if err != nil {
			return fmt.Errorf("kafka: marshal %s event: %w", e.Kind, err)
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(e.OrderID.String()),
			Value: sarama.ByteEncoder(data),
			Headers: []sarama.RecordHeader{
				{Key: []byte("kind"), Value: []byte(e.Kind)},
			},
			Timestamp: e.OccurredAt,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("kafka: send %d order events: %w", len(messages), err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.producer.Close()
}
