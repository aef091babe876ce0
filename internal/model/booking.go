package model

import "time"

// Booking statuses as shown in the admin status dropdown.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// BookingStatuses lists every accepted booking status.
var BookingStatuses = []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

// Booking is a retreat/class booking request submitted from the public
// booking form.  Date is YYYY-MM-DD and Time is HH:MM.
type Booking struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Guests    int       `json:"guests"`
	Message   *string   `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
