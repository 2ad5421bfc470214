// Package events announces placed orders to other services.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mytheresa/go-storefront/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderPlaced is the message body published for every new order.
type OrderPlaced struct {
	OrderID       string        `json:"order_id"`
	CustomerEmail string        `json:"customer_email"`
	SessionID     string        `json:"session_id,omitempty"`
	Total         float64       `json:"total"`
	Status        string        `json:"status"`
	Items         []OrderedItem `json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
}

type OrderedItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type Publisher interface {
	PublishOrder(ctx context.Context, order *models.Order) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrder(context.Context, *models.Order) error { return nil }

func (NopPublisher) Close() error { return nil }

// AMQPPublisher publishes order events to a durable RabbitMQ queue through
// the default exchange.
type AMQPPublisher struct {
	conn  *amqp.Connection
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %q: %w", queue, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *AMQPPublisher) PublishOrder(ctx context.Context, order *models.Order) error {
	body, err := json.Marshal(NewOrderPlaced(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    order.PublicID,
			Timestamp:    order.CreatedAt,
			Type:         "order.placed",
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", order.PublicID, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return p.conn.Close()
}

// NewOrderPlaced builds the event for order.
func NewOrderPlaced(order *models.Order) OrderPlaced {
	items := make([]OrderedItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = OrderedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal.InexactFloat64(),
		}
	}
	return OrderPlaced{
		OrderID:       order.PublicID,
		CustomerEmail: order.CustomerEmail,
		SessionID:     order.SessionID,
		Total:         order.Total.InexactFloat64(),
		Status:        order.Status,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}
