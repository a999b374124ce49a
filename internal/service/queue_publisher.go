package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/bookshop/internal/queue"
)

// EventPublisher delivers review events to downstream consumers.
type EventPublisher interface {
	PublishReviewEvent(ctx context.Context, ev q.ReviewEvent) error
}

// NopPublisher drops every event. It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishReviewEvent(context.Context, q.ReviewEvent) error { return nil }

// AMQPPublisher publishes ReviewEvents to the review queue on RabbitMQ.
// A connection is dialled per event; review writes are rare enough that
// a long lived channel is not worth the reconnect handling.
type AMQPPublisher struct {
	URL         string
	Queue       string
	DialTimeout time.Duration
	Logger      *slog.Logger
}

// NewAMQPPublisher returns a publisher for url using the default review queue.
func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPPublisher{URL: url, Queue: q.ReviewQueueName, DialTimeout: 2 * time.Second, Logger: logger}
}

// PublishReviewEvent publishes ev as a persistent JSON message. Errors are
// logged and returned so the caller can choose to ignore them.
func (p *AMQPPublisher) PublishReviewEvent(ctx context.Context, ev q.ReviewEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		p.Logger.Warn("rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		p.Logger.Warn("rabbitmq: queue declare failed", "queue", p.Queue, "err", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		p.Logger.Warn("rabbitmq: publish failed", "queue", p.Queue, "err", err)
		return err
	}
	return nil
}
