package model

import (
	"lodge/shared/daterange"
	"lodge/shared/lifecycle"
	"lodge/shared/model"
	"lodge/shared/money"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldRoomID          = "room_id"
	FieldRoomName        = "room_name"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldGuests          = "guests"
	FieldNights          = "nights"
	FieldPricePerNight   = "price_per_night"
	FieldTotalPrice      = "total_price"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

// Booking is a room stay over [CheckIn, CheckOut). Price fields are snapshots taken at creation.
type Booking struct {
	ID              string           `db:"id"`
	UserID          string           `db:"user_id"`
	RoomID          string           `db:"room_id"`
	RoomName        string           `db:"room_name"`
	CheckIn         time.Time        `db:"check_in"`
	CheckOut        time.Time        `db:"check_out"`
	Guests          int              `db:"guests"`
	Nights          int              `db:"nights"`
	PricePerNight   money.Amount     `db:"price_per_night"`
	TotalPrice      money.Amount     `db:"total_price"`
	Status          lifecycle.Status `db:"status"`
	SpecialRequests string           `db:"special_requests"`
	model.Metadata
}

func (b Booking) Range() daterange.Range {
	return daterange.Range{Start: b.CheckIn, End: b.CheckOut}
}
