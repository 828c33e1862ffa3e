package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "order.events"

// RabbitMirror republishes drained events onto a topic exchange so
// out-of-process consumers (reporting, email) can follow along. Same
// best-effort contract as the websocket side: the hub logs and drops
// on failure.
type RabbitMirror struct {
	ch *amqp.Channel
}

// NewRabbitMirror declares the exchange once at startup.
func NewRabbitMirror(ch *amqp.Channel) (*RabbitMirror, error) {
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitMirror{ch: ch}, nil
}

var _ Mirror = (*RabbitMirror)(nil)

// Publish sends the event with its type as routing key, e.g.
// "order.events" / "order_created".
func (m *RabbitMirror) Publish(ctx context.Context, ev usecase.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		Body:         body,
	}
	if err := m.ch.PublishWithContext(ctx, exchangeName, ev.Type, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
