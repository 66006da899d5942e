package pricing

import (
	"errors"

	"lodge/shared/daterange"
	"lodge/shared/money"
)

var (
	ErrNegativeRate     = errors.New("pricing: rate must not be negative")
	ErrInvalidQuantity  = errors.New("pricing: quantity must be at least 1")
	ErrNoNights         = errors.New("pricing: a stay needs at least one night")
	ErrUnknownEventType = errors.New("pricing: unknown event type")
)

type EventType string

const (
	EventSingle EventType = "single"
	EventMulti  EventType = "multi"
)

// Stay is the price of a room booking.
type Stay struct {
	Nights int
	Rate   money.Amount
	Total  money.Amount
}

// RoomStay prices rate x nights for the half-open range.
func RoomStay(rate money.Amount, rng daterange.Range) (Stay, error) {
	if rate < 0 {
		return Stay{}, ErrNegativeRate
	}

	nights := rng.Nights()
	if nights < 1 {
		return Stay{}, ErrNoNights
	}

	return Stay{
		Nights: nights,
		Rate:   rate,
		Total:  rate.Mul(int64(nights)),
	}, nil
}

// RoomLine is a room attached to a venue reservation.
type RoomLine struct {
	RoomID   string
	RoomName string
	Rate     money.Amount
	Quantity int
}

type Line struct {
	RoomLine
	Nights   int
	Subtotal money.Amount
}

type Quote struct {
	EventType  EventType
	Nights     int
	Days       int
	VenueRate  money.Amount
	VenueTotal money.Amount
	Lines      []Line
	RoomsTotal money.Amount
	GrandTotal money.Amount
}

// VenueEvent prices a venue reservation and its attached rooms.
// A single event is one day with zero nights, so attached rooms add nothing to it.
func VenueEvent(eventType EventType, venueRate money.Amount, rng daterange.Range, rooms []RoomLine) (Quote, error) {
	if venueRate < 0 {
		return Quote{}, ErrNegativeRate
	}

	quote := Quote{EventType: eventType, VenueRate: venueRate}

	switch eventType {
	case EventSingle:
		quote.Nights = 0
		quote.Days = 1
	case EventMulti:
		quote.Nights = rng.Nights()
		if quote.Nights < 1 {
			return Quote{}, ErrNoNights
		}

		quote.Days = quote.Nights
	default:
		return Quote{}, ErrUnknownEventType
	}

	quote.VenueTotal = venueRate.Mul(int64(quote.Days))

	for _, room := range rooms {
		if room.Rate < 0 {
			return Quote{}, ErrNegativeRate
		}

		if room.Quantity < 1 {
			return Quote{}, ErrInvalidQuantity
		}

		line := Line{
			RoomLine: room,
			Nights:   quote.Nights,
			Subtotal: room.Rate.Mul(int64(room.Quantity)).Mul(int64(quote.Nights)),
		}

		quote.Lines = append(quote.Lines, line)
		quote.RoomsTotal = quote.RoomsTotal.Add(line.Subtotal)
	}

	quote.GrandTotal = quote.VenueTotal.Add(quote.RoomsTotal)

	return quote, nil
}
