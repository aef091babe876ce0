// Package service publishes domain events to RabbitMQ.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/healthycorner/site-api/internal/queue"
)

// Publisher delivers an event envelope.
type Publisher interface {
	Publish(ctx context.Context, env queue.Envelope) error
}

// RabbitPublisher opens a short-lived connection per event.
type RabbitPublisher struct {
	url         string
	dialTimeout time.Duration
}

func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{url: url, dialTimeout: 2 * time.Second}
}

// Publish declares the durable notification queue and sends env as a
// persistent JSON message.
func (p *RabbitPublisher) Publish(ctx context.Context, env queue.Envelope) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", queue.QueueName, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     env.EventID,
		CorrelationId: env.CorrelationID,
		Type:          env.EventType,
		Timestamp:     env.OccurredAt,
		Body:          body,
	})
}

// NopPublisher drops events; used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.Envelope) error { return nil }

// Producer is the value written to Envelope.Producer.
const Producer = "site-api"

// Emit wraps payload in an envelope and publishes it.  Failures are only
// logged.
func Emit(ctx context.Context, p Publisher, eventType, traceID, correlationID string, payload any) {
	if p == nil {
		return
	}
	env, err := queue.NewEnvelope(eventType, Producer, traceID, correlationID, payload)
	if err != nil {
		log.Printf("events: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.Publish(ctx, env); err != nil {
		log.Printf("events: publish %s failed: %v", eventType, err)
	}
}
