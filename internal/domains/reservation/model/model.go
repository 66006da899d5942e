package model

import (
	"time"

	"lodge/internal/domains/pricing"
	"lodge/shared/daterange"
	"lodge/shared/lifecycle"
	"lodge/shared/model"
	"lodge/shared/money"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	LineTableName  = "reservation_rooms"
	LineEntityName = "reservation room"

	FieldID                = "id"
	FieldReservationNumber = "reservation_number"
	FieldVenueID           = "venue_id"
	FieldEventType         = "event_type"
	FieldEventDate         = "event_date"
	FieldCheckInDate       = "check_in_date"
	FieldCheckOutDate      = "check_out_date"
	FieldEmail             = "email"
	FieldStatus            = "status"
	FieldAdminNotes        = "admin_notes"
	FieldTotalAmount       = "total_amount"

	FieldReservationID = "reservation_id"

	// NumberPrefix starts every reservation number, followed by YYYYMMDD and four hex digits.
	NumberPrefix = "VG"
)

// Reservation books a venue for a single day event or a multi day event, optionally with rooms attached.
type Reservation struct {
	ID                string            `db:"id"`
	ReservationNumber string            `db:"reservation_number"`
	VenueID           string            `db:"venue_id"`
	VenueName         string            `db:"venue_name"`
	EventType         pricing.EventType `db:"event_type"`
	EventDate         *time.Time        `db:"event_date"`
	CheckInDate       *time.Time        `db:"check_in_date"`
	CheckOutDate      *time.Time        `db:"check_out_date"`
	Nights            int               `db:"nights"`
	Attendees         int               `db:"attendees"`
	NeedsRooms        bool              `db:"needs_rooms"`
	Organization      string            `db:"organization"`
	EventName         string            `db:"event_name"`
	ContactPerson     string            `db:"contact_person"`
	Position          string            `db:"position"`
	Email             string            `db:"email"`
	Phone             string            `db:"phone"`
	Details           string            `db:"details"`
	VenueTotal        money.Amount      `db:"venue_total"`
	RoomsTotal        money.Amount      `db:"rooms_total"`
	TotalAmount       money.Amount      `db:"total_amount"`
	Status            lifecycle.Status  `db:"status"`
	AdminNotes        string            `db:"admin_notes"`
	model.Metadata
}

// Range is the occupied interval. A single event occupies [event_date, event_date+1).
func (r Reservation) Range() daterange.Range {
	if r.EventType == pricing.EventSingle && r.EventDate != nil {
		return daterange.SingleDay(*r.EventDate)
	}

	if r.CheckInDate == nil || r.CheckOutDate == nil {
		return daterange.Range{}
	}

	return daterange.Range{Start: *r.CheckInDate, End: *r.CheckOutDate}
}

// Line is a room attached to a reservation. Rate and subtotal are snapshots.
type Line struct {
	ID            string       `db:"id"`
	ReservationID string       `db:"reservation_id"`
	RoomID        string       `db:"room_id"`
	RoomName      string       `db:"room_name"`
	Quantity      int          `db:"quantity"`
	Nights        int          `db:"nights"`
	PricePerNight money.Amount `db:"price_per_night"`
	Subtotal      money.Amount `db:"subtotal"`
	CreatedAt     time.Time    `db:"created_at"`
}
