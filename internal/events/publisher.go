package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Message é o envelope publicado na exchange. Type também é a routing key.
type Message struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Entity     string    `json:"entity"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	UserID     *uint     `json:"user_id,omitempty"`
	Data       any       `json:"data,omitempty"`
}

// RoutingKey converte a ação de auditoria em routing key:
// "booking_status_changed" vira "booking.status_changed".
func RoutingKey(action string) string {
	return strings.Replace(action, "_", ".", 1)
}

func NewMessage(action, entity string, entityID, userID *uint, data any, now time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Type:       RoutingKey(action),
		OccurredAt: now.UTC(),
		Entity:     entity,
		EntityID:   entityID,
		UserID:     userID,
		Data:       data,
	}
}

// ======================================================
// RABBITMQ
// ======================================================

type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, msg.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    msg.OccurredAt,
		Type:         msg.Type,
		Body:         body,
	})
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// ======================================================
// NOOP
// ======================================================

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Message) error { return nil }
func (NopPublisher) Close() error                           { return nil }

var (
	_ Publisher = (*RabbitPublisher)(nil)
	_ Publisher = NopPublisher{}
)
