// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lhoska/venue-seating-planner/internal/model"
	q "github.com/lhoska/venue-seating-planner/internal/queue"
)

// Bus publishes plan snapshots on the change feed. It dials per publish:
// flushes are infrequent enough that holding a connection open buys
// nothing, and a fresh dial survives broker restarts without reconnect
// bookkeeping. Origin identifies this instance so the consumer side can
// skip messages it published itself.
type Bus struct {
	URL    string
	Origin string
}

// NewBus creates a publisher for the given broker URL.
func NewBus(url, origin string) *Bus {
	return &Bus{URL: url, Origin: origin}
}

// PublishPlanUpdated publishes a PlanUpdatedEvent on the
// seating.plan.updated fanout exchange. Fanout matters here: every
// planner instance binds its own queue, so each one receives its own
// copy of the snapshot instead of competing for deliveries on a shared
// queue. The function never panics; any error is logged and returned so
// the caller can choose to ignore it.
func (b *Bus) PublishPlanUpdated(ctx context.Context, doc *model.PlanDocument, actorID string) error {
	conn, err := amqp.Dial(b.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the exchange exists (idempotent). Durable so the topology
	// survives broker restarts; the per-instance queues bound to it are
	// declared by the consumers themselves.
	if err := ch.ExchangeDeclare(
		q.PlanFeedExchange, // name
		"fanout",           // kind
		true,               // durable
		false,              // autoDelete
		false,              // internal
		false,              // noWait
		nil,                // args
	); err != nil {
		log.Printf("rabbitmq: exchange declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(q.PlanUpdatedEvent{
		PlanID:    doc.ID,
		EventID:   doc.EventID,
		ActorID:   actorID,
		Origin:    b.Origin,
		UpdatedAt: doc.UpdatedAt,
		Plan:      doc,
	})
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType: "application/json",
		// Transient on purpose: the feed queues are per-instance and
		// transient themselves, and a missed snapshot is recovered on the
		// next plan read.
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		q.PlanFeedExchange, // exchange
		"",                 // routing key ignored by fanout
		false,              // mandatory
		false,              // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
