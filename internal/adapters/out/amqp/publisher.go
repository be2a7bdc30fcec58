// Package amqp publishes order tracking snapshots to a RabbitMQ topic
// exchange so out-of-process consumers (notification services, analytics)
// can follow order progress.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"dispatch/internal/core/application/usecases/queries"
)

const exchangeName = "order_tracking"

// Client owns the connection and channel used for publishing.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and declares the tracking exchange.
func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchangeName, err)
	}

	return &Client{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// SnapshotPublisher pushes tracking snapshots to the exchange. It satisfies
// the broadcaster's Sink interface; routing keys follow
// "order.tracking.<status>" so consumers can bind per phase.
type SnapshotPublisher struct {
	client *Client
}

// NewSnapshotPublisher creates a publisher on top of an open client.
func NewSnapshotPublisher(client *Client) *SnapshotPublisher {
	return &SnapshotPublisher{client: client}
}

// Deliver publishes one snapshot as a persistent JSON message.
func (p *SnapshotPublisher) Deliver(ctx context.Context, snapshot queries.OrderTrackingSnapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	routingKey := "order.tracking." + snapshot.Status.String()
	if err := p.client.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		return fmt.Errorf("failed to publish snapshot for order %s: %w", snapshot.OrderID.String(), err)
	}

	return nil
}
