package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	CartItemAdded   = "cart_item_added"
	CartItemUpdated = "cart_item_updated"
	CartItemRemoved = "cart_item_removed"
	CartCleared     = "cart_cleared"
)

type CartEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	CartID     int64     `json:"cart_id"`
	ProductID  *int64    `json:"product_id,omitempty"`
	Quantity   *int64    `json:"quantity,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewCartEvent(typ string, userID, cartID int64) CartEvent {
	return CartEvent{
		EventID:    uuid.NewString(),
		Type:       typ,
		UserID:     userID,
		CartID:     cartID,
		OccurredAt: time.Now().UTC(),
	}
}

// WithItem attaches the product line the event refers to.
func (e CartEvent) WithItem(productID, quantity int64) CartEvent {
	e.ProductID = &productID
	e.Quantity = &quantity
	return e
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	topic  string
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka: empty topic")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: w, topic: topic}, nil
}

func (p *Producer) PublishCartEvent(ctx context.Context, ev CartEvent) error {
	return p.PublishEvent(ctx, strconv.FormatInt(ev.UserID, 10), ev)
}

func (p *Producer) PublishEvent(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
