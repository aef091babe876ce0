// Package notify sends plain-text notification email.
package notify

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/healthycorner/site-api/internal/config"
)

// Mail is a single outgoing message.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers mail.
type Sender interface {
	Send(m Mail) error
}

// SMTPMailer sends through the relay in config.MailConfig.
type SMTPMailer struct {
	cfg  config.MailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns nil when no SMTP host is configured.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	if !cfg.Enabled() {
		return nil
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Build renders the RFC 5322 message for m.
func (s *SMTPMailer) Build(m Mail) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.cfg.From + "\r\n")
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// Send delivers m.
func (s *SMTPMailer) Send(m Mail) error {
	if strings.ContainsAny(m.To, "\r\n") || strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("smtp send: invalid header value")
	}
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	if err := s.send(s.cfg.Host+":"+s.cfg.Port, auth, envelopeFrom(s.cfg.From), []string{m.To}, s.Build(m)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// envelopeFrom extracts the bare address from "Name <addr>".
func envelopeFrom(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return strings.TrimSpace(from)
}
