package model

import (
	"lodge/shared/money"
	"time"
)

type EventType string

const (
	EventBookingCreated           EventType = "booking.created"
	EventBookingStatusChanged     EventType = "booking.status_changed"
	EventReservationCreated       EventType = "reservation.created"
	EventReservationStatusChanged EventType = "reservation.status_changed"
)

// Event is published after a reservation write commits. Consumers turn it into an email.
type Event struct {
	ID            string       `json:"id"`
	Type          EventType    `json:"type"`
	Reference     string       `json:"reference"`
	Recipient     string       `json:"recipient"`
	RecipientName string       `json:"recipient_name"`
	Resource      string       `json:"resource"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	Total         money.Amount `json:"total"`
	Status        string       `json:"status"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// Key partitions events of one booking or reservation together.
func (e Event) Key() string {
	return e.Reference
}
