package model

import "time"

const (
	MessageUnread  = "unread"
	MessageRead    = "read"
	MessageReplied = "replied"
)

var MessageStatuses = []string{MessageUnread, MessageRead, MessageReplied}

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscriber is a newsletter sign-up.
type Subscriber struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
