package dto

import (
	"lodge/internal/domains/booking/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/internal/domains/pricing"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/lifecycle"
	gModel "lodge/shared/model"
	"lodge/shared/money"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"required"`
	CheckIn         string `json:"check_in"         validate:"required,date"`
	CheckOut        string `json:"check_out"        validate:"required,date"`
	Guests          int    `json:"guests"           validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

// Range parses the stay. A check-out on or before the check-in is rejected.
func (c *CreateBookingRequest) Range() (daterange.Range, error) {
	rng, err := daterange.Parse(c.CheckIn, c.CheckOut)
	if err != nil {
		return rng, failure.BadRequest(err) // nolint:wrapcheck
	}

	return rng, nil
}

func (c *CreateBookingRequest) ToModel(user string, room roomModel.Room, stay pricing.Stay, rng daterange.Range, now time.Time) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		UserID:          user,
		RoomID:          room.ID,
		RoomName:        room.Name,
		CheckIn:         rng.Start,
		CheckOut:        rng.End,
		Guests:          c.Guests,
		Nights:          stay.Nights,
		PricePerNight:   stay.Rate,
		TotalPrice:      stay.Total,
		Status:          lifecycle.StatusPending,
		SpecialRequests: strings.TrimSpace(c.SpecialRequests),
		Metadata:        gModel.NewMetadata(user, now),
	}
}

type CheckAvailabilityRequest struct {
	RoomID   string `json:"room_id"   validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}

func (c *CheckAvailabilityRequest) Range() (daterange.Range, error) {
	rng, err := daterange.Parse(c.CheckIn, c.CheckOut)
	if err != nil {
		return rng, failure.BadRequest(err) // nolint:wrapcheck
	}

	return rng, nil
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Nights    int    `json:"nights"`
	Message   string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type BookingResponse struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	RoomID          string       `json:"room_id"`
	RoomName        string       `json:"room_name"`
	CheckIn         string       `json:"check_in"`
	CheckOut        string       `json:"check_out"`
	Guests          int          `json:"guests"`
	Nights          int          `json:"nights"`
	PricePerNight   money.Amount `json:"price_per_night" swaggertype:"string" example:"100.00"`
	TotalPrice      money.Amount `json:"total_price"     swaggertype:"string" example:"300.00"`
	Status          string       `json:"status"`
	SpecialRequests string       `json:"special_requests"`
	CanCancel       bool         `json:"can_cancel"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Guests = model.Guests
	r.Nights = model.Nights
	r.PricePerNight = model.PricePerNight
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status.String()
	r.SpecialRequests = model.SpecialRequests
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
