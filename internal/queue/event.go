// Package queue defines the events exchanged over RabbitMQ and the
// consumer that turns them into notifications.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QueueName is the durable queue every site event is published to.
const QueueName = "site.notifications"

const (
	EventBookingCreated  = "booking.created"
	EventContactReceived = "contact.received"
	EventOrderPlaced     = "order.placed"
)

// Envelope wraps every event payload.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload into a v1 envelope with a fresh id.
func NewEnvelope(eventType, producer, traceID, correlationID string, payload any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       body,
	}, nil
}

// UnwrapPayload decodes the payload of env into T.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(env.Payload, &t); err != nil {
		return t, fmt.Errorf("decode %s payload: %w", env.EventType, err)
	}
	return t, nil
}

type BookingCreated struct {
	BookingID uint64 `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Guests    int    `json:"guests"`
}

type ContactReceived struct {
	MessageID uint64 `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type OrderLine struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"total_cents"`
}

type OrderPlaced struct {
	OrderID     uint64      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	TotalCents  int64       `json:"total_cents"`
	Items       []OrderLine `json:"items"`
}
