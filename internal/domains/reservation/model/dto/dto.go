package dto

import (
	"strings"
	"time"

	"lodge/internal/domains/pricing"
	"lodge/internal/domains/reservation/model"
	venueModel "lodge/internal/domains/venue/model"
	venueDto "lodge/internal/domains/venue/model/dto"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/lifecycle"
	gModel "lodge/shared/model"
	"lodge/shared/money"

	"github.com/google/uuid"
)

type RoomRequest struct {
	RoomID   string `json:"room_id"  validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateReservationRequest struct {
	VenueID string `json:"venue_id" validate:"required"`
	venueDto.EventSchedule
	Attendees     int           `json:"attendees"      validate:"required,min=1"`
	NeedsRooms    bool          `json:"needs_rooms"`
	Rooms         []RoomRequest `json:"rooms"          validate:"required_if=NeedsRooms true,omitempty,dive"`
	Organization  string        `json:"organization"   validate:"required,max=255"`
	EventName     string        `json:"event_name"     validate:"required,max=255"`
	ContactPerson string        `json:"contact_person" validate:"required,max=255"`
	Position      string        `json:"position"       validate:"omitempty,max=255"`
	Email         string        `json:"email"          validate:"required,email,max=255"`
	Phone         string        `json:"phone"          validate:"required,max=50"`
	Details       string        `json:"details"        validate:"omitempty,max=5000"`
}

// AttachedRooms returns the requested rooms, or nothing when the organiser does not need rooms.
func (c *CreateReservationRequest) AttachedRooms() []RoomRequest {
	if !c.NeedsRooms {
		return nil
	}

	return c.Rooms
}

func (c *CreateReservationRequest) ToModel(number, actor string, venue venueModel.Venue, quote pricing.Quote, rng daterange.Range, now time.Time) model.Reservation {
	reservation := model.Reservation{
		ID:                uuid.NewString(),
		ReservationNumber: number,
		VenueID:           venue.ID,
		VenueName:         venue.Name,
		EventType:         quote.EventType,
		Nights:            quote.Nights,
		Attendees:         c.Attendees,
		NeedsRooms:        len(c.AttachedRooms()) > 0,
		Organization:      strings.TrimSpace(c.Organization),
		EventName:         strings.TrimSpace(c.EventName),
		ContactPerson:     strings.TrimSpace(c.ContactPerson),
		Position:          strings.TrimSpace(c.Position),
		Email:             strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:             strings.TrimSpace(c.Phone),
		Details:           strings.TrimSpace(c.Details),
		VenueTotal:        quote.VenueTotal,
		RoomsTotal:        quote.RoomsTotal,
		TotalAmount:       quote.GrandTotal,
		Status:            lifecycle.StatusPending,
		Metadata:          gModel.NewMetadata(actor, now),
	}

	if quote.EventType == pricing.EventSingle {
		date := rng.Start
		reservation.EventDate = &date
	} else {
		start, end := rng.Start, rng.End
		reservation.CheckInDate = &start
		reservation.CheckOutDate = &end
	}

	return reservation
}

// Lines turns the priced rooms of quote into rows owned by reservationID.
func Lines(reservationID string, quote pricing.Quote, now time.Time) []model.Line {
	lines := make([]model.Line, 0, len(quote.Lines))

	for _, line := range quote.Lines {
		lines = append(lines, model.Line{
			ID:            uuid.NewString(),
			ReservationID: reservationID,
			RoomID:        line.RoomID,
			RoomName:      line.RoomName,
			Quantity:      line.Quantity,
			Nights:        line.Nights,
			PricePerNight: line.Rate,
			Subtotal:      line.Subtotal,
			CreatedAt:     now,
		})
	}

	return lines
}

type CheckAvailabilityRequest struct {
	VenueID string `json:"venue_id" validate:"required"`
	venueDto.EventSchedule
}

type UpdateStatusRequest struct {
	Status     string  `json:"status"      validate:"required,oneof=pending confirmed cancelled completed"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=5000"`
}

type LineResponse struct {
	RoomID        string       `json:"room_id"`
	RoomName      string       `json:"room_name"`
	Quantity      int          `json:"quantity"`
	Nights        int          `json:"nights"`
	PricePerNight money.Amount `json:"price_per_night" swaggertype:"string" example:"100.00"`
	Subtotal      money.Amount `json:"subtotal"        swaggertype:"string" example:"400.00"`
}

type ReservationResponse struct {
	ID                string         `json:"id"`
	ReservationNumber string         `json:"reservation_number"`
	VenueID           string         `json:"venue_id"`
	VenueName         string         `json:"venue_name"`
	EventType         string         `json:"event_type"`
	EventDate         string         `json:"event_date,omitempty"`
	CheckInDate       string         `json:"check_in_date,omitempty"`
	CheckOutDate      string         `json:"check_out_date,omitempty"`
	Nights            int            `json:"nights"`
	Attendees         int            `json:"attendees"`
	NeedsRooms        bool           `json:"needs_rooms"`
	Organization      string         `json:"organization"`
	EventName         string         `json:"event_name"`
	ContactPerson     string         `json:"contact_person"`
	Position          string         `json:"position"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Details           string         `json:"details"`
	VenueTotal        money.Amount   `json:"venue_total"  swaggertype:"string" example:"500.00"`
	RoomsTotal        money.Amount   `json:"rooms_total"  swaggertype:"string" example:"0.00"`
	TotalAmount       money.Amount   `json:"total_amount" swaggertype:"string" example:"500.00"`
	Status            string         `json:"status"`
	AdminNotes        string         `json:"admin_notes"`
	Rooms             []LineResponse `json:"rooms"`
	CanCancel         bool           `json:"can_cancel"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation, lines []model.Line) {
	r.ID = model.ID
	r.ReservationNumber = model.ReservationNumber
	r.VenueID = model.VenueID
	r.VenueName = model.VenueName
	r.EventType = string(model.EventType)
	r.EventDate = formatDate(model.EventDate)
	r.CheckInDate = formatDate(model.CheckInDate)
	r.CheckOutDate = formatDate(model.CheckOutDate)
	r.Nights = model.Nights
	r.Attendees = model.Attendees
	r.NeedsRooms = model.NeedsRooms
	r.Organization = model.Organization
	r.EventName = model.EventName
	r.ContactPerson = model.ContactPerson
	r.Position = model.Position
	r.Email = model.Email
	r.Phone = model.Phone
	r.Details = model.Details
	r.VenueTotal = model.VenueTotal
	r.RoomsTotal = model.RoomsTotal
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status.String()
	r.AdminNotes = model.AdminNotes
	r.Metadata.FromModel(model.Metadata)

	r.Rooms = make([]LineResponse, len(lines))
	for i, line := range lines {
		r.Rooms[i] = LineResponse{
			RoomID:        line.RoomID,
			RoomName:      line.RoomName,
			Quantity:      line.Quantity,
			Nights:        line.Nights,
			PricePerNight: line.PricePerNight,
			Subtotal:      line.Subtotal,
		}
	}
}

// StartDate is the first occupied day, used for the cancellation window.
func (r *ReservationResponse) StartDate() string {
	if r.EventDate != constant.Empty {
		return r.EventDate
	}

	return r.CheckInDate
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

// FromModels builds the listing. Line items are only returned by the detail endpoints.
func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod, nil)
	}
}

func formatDate(date *time.Time) string {
	if date == nil {
		return constant.Empty
	}

	return date.Format(constant.DateOnlyFormat)
}
