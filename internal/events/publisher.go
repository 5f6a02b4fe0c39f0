package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/config"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderPlaced EventType = "order.placed"
)

// Publisher announces checked-out orders.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, receipt *models.Receipt) error
}

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*MockEventPublisher)(nil)
)

// OrderEvent represents an order-related event.
type OrderEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	OrderID   string            `json:"order_id"`
	Data      json.RawMessage   `json:"data"`
	Metadata  map[string]string `json:"metadata"`
	Timestamp time.Time         `json:"timestamp"`
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer  *kafka.Writer
	brokers []string
	topic   string
	logger  *logging.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer:  writer,
		brokers: cfg.Brokers,
		topic:   cfg.OrdersTopic,
		logger:  logger,
	}
}

// Ping dials the first reachable broker.
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no kafka brokers configured")
	}
	return lastErr
}

// PublishOrderPlaced publishes an order placed event.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, receipt *models.Receipt) error {
	event, err := NewOrderPlacedEvent(receipt)
	if err != nil {
		return err
	}
	return p.publish(ctx, event)
}

// NewOrderPlacedEvent wraps a receipt in an order.placed envelope.
func NewOrderPlacedEvent(receipt *models.Receipt) (*OrderEvent, error) {
	data, err := json.Marshal(receipt)
	if err != nil {
		return nil, err
	}

	return &OrderEvent{
		ID:      "evt_" + uuid.NewString(),
		Type:    EventTypeOrderPlaced,
		OrderID: receipt.ID,
		Data:    data,
		Metadata: map[string]string{
			"channel": string(receipt.Channel),
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"order_id":   event.OrderID,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"order_id":   event.OrderID,
		"topic":      p.topic,
	})
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// MockEventPublisher records events in memory.
type MockEventPublisher struct {
	Events []*OrderEvent
	Err    error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]*OrderEvent, 0),
	}
}

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, receipt *models.Receipt) error {
	if m.Err != nil {
		return m.Err
	}
	event, err := NewOrderPlacedEvent(receipt)
	if err != nil {
		return err
	}
	m.Events = append(m.Events, event)
	return nil
}
