package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/healthycorner/site-api/internal/notify"
)

// Consumer reads site events, appends one line per event to
// <LogDir>/notifications.log and, when a mailer is set, emails the
// customer and the site owner.
type Consumer struct {
	URL        string
	LogDir     string
	AdminEmail string
	Mailer     notify.Sender // nil disables email

	mu sync.Mutex
}

// Run connects to the broker and consumes until ctx is cancelled,
// reconnecting with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Printf("notify-consumer: dial failed: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("notify-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Printf("notify-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	for d := range msgs {
		if err := c.Handle(d.Body); err != nil {
			log.Printf("notify-consumer: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// Handle processes one raw message.  Email failures are logged but do not
// fail the message; the log line has already been written.
func (c *Consumer) Handle(body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	line, mails, err := c.render(env)
	if err != nil {
		return err
	}
	if err := c.appendLog(fmt.Sprintf("[%s] %s | event_id=%s | %s\n",
		env.OccurredAt.UTC().Format(time.RFC3339), env.EventType, env.EventID, line)); err != nil {
		return err
	}
	if c.Mailer == nil {
		return nil
	}
	for _, m := range mails {
		if m.To == "" {
			continue
		}
		if err := c.Mailer.Send(m); err != nil {
			log.Printf("notify-consumer: mail %s to %s: %v", env.EventType, m.To, err)
		}
	}
	return nil
}

func (c *Consumer) appendLog(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	dir := c.LogDir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "notifications.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func euros(cents int64) string {
	return fmt.Sprintf("%d.%02d EUR", cents/100, cents%100)
}

// render builds the log summary and outgoing mail for env.
func (c *Consumer) render(env Envelope) (string, []notify.Mail, error) {
	switch env.EventType {
	case EventBookingCreated:
		p, err := UnwrapPayload[BookingCreated](env)
		if err != nil {
			return "", nil, err
		}
		line := fmt.Sprintf("booking_id=%d | name=%q | email=%s | service=%q | date=%s %s | guests=%d",
			p.BookingID, p.Name, p.Email, p.Service, p.Date, p.Time, p.Guests)
		return line, []notify.Mail{
			{
				To:      p.Email,
				Subject: "We received your booking request",
				Body: fmt.Sprintf("Hi %s,\n\nthank you for booking %s on %s %s for %d guest(s). We will confirm shortly.\n\nHealthy Corner",
					p.Name, p.Service, p.Date, p.Time, p.Guests),
			},
			{
				To:      c.AdminEmail,
				Subject: fmt.Sprintf("New booking #%d", p.BookingID),
				Body:    line,
			},
		}, nil

	case EventContactReceived:
		p, err := UnwrapPayload[ContactReceived](env)
		if err != nil {
			return "", nil, err
		}
		line := fmt.Sprintf("message_id=%d | name=%q | email=%s | subject=%q", p.MessageID, p.Name, p.Email, p.Subject)
		return line, []notify.Mail{{
			To:      c.AdminEmail,
			Subject: "New contact message: " + p.Subject,
			Body:    fmt.Sprintf("From: %s <%s>\n\n%s", p.Name, p.Email, p.Message),
		}}, nil

	case EventOrderPlaced:
		p, err := UnwrapPayload[OrderPlaced](env)
		if err != nil {
			return "", nil, err
		}
		var items []string
		for _, it := range p.Items {
			items = append(items, fmt.Sprintf("%dx %s (%s)", it.Quantity, it.Name, euros(it.TotalCents)))
		}
		line := fmt.Sprintf("order=%s | email=%s | total=%s | items=[%s]",
			p.OrderNumber, p.Email, euros(p.TotalCents), strings.Join(items, ", "))
		return line, []notify.Mail{
			{
				To:      p.Email,
				Subject: "Order confirmation " + p.OrderNumber,
				Body: fmt.Sprintf("Hi %s,\n\nthank you for your order %s.\n\n%s\n\nTotal: %s\n\nHealthy Corner",
					p.Name, p.OrderNumber, strings.Join(items, "\n"), euros(p.TotalCents)),
			},
			{
				To:      c.AdminEmail,
				Subject: "New order " + p.OrderNumber,
				Body:    line,
			},
		}, nil
	}
	return "", nil, fmt.Errorf("unknown event type %q", env.EventType)
}
