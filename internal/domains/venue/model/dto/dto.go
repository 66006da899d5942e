package dto

import (
	"errors"
	"lodge/internal/domains/pricing"
	"lodge/internal/domains/venue/model"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/money"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrEventDateRequired = errors.New("event_date is required for a single day event")
	ErrStayDatesRequired = errors.New("check_in_date and check_out_date are required for a multi day event")
)

type CreateVenueRequest struct {
	Name        string                `json:"name"        validate:"required,max=255"`
	Description string                `json:"description" validate:"required"`
	Price       money.Amount          `json:"price"       validate:"gt=0"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	Size        string                `json:"size"        validate:"required,max=50"`
	Amenities   []string              `json:"amenities"   validate:"required,min=1,dive,required,max=100"`
	Images      []string              `json:"images"      validate:"omitempty,dive,url"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5" swaggerignore:"true"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"is_active"   validate:"omitempty"`
}

func (c *CreateVenueRequest) ToModel(user, slug, imageURL string, now time.Time) model.Venue {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Venue{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Slug:        slug,
		Description: c.Description,
		Price:       c.Price,
		Capacity:    c.Capacity,
		Size:        c.Size,
		Amenities:   pq.StringArray(c.Amenities),
		Image:       imageURL,
		Images:      pq.StringArray(nonNil(c.Images)),
		Active:      active,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type UpdateVenueRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Description string                `db:"description" json:"description"`
	Price       *money.Amount         `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Size        string                `db:"size"        json:"size"        validate:"omitempty,max=50"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,required,max=100"`
	Images      pq.StringArray        `db:"images"      json:"images"      validate:"omitempty,dive,url"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5" swaggerignore:"true"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"is_active"   json:"is_active"`
}

func (u *UpdateVenueRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.Price == nil && u.Capacity == nil && u.Size == "" &&
		u.Amenities == nil && u.Images == nil && u.Image == nil && u.Active == nil
}

// EventSchedule is how a venue booking names its dates: one event_date, or a check-in/check-out pair.
type EventSchedule struct {
	EventType    string `json:"event_type"     validate:"required,oneof=single multi"`
	EventDate    string `json:"event_date"     validate:"omitempty,date"`
	CheckInDate  string `json:"check_in_date"  validate:"omitempty,date"`
	CheckOutDate string `json:"check_out_date" validate:"omitempty,date"`
}

// Range returns the occupied interval. A single event occupies [event_date, event_date+1).
func (e *EventSchedule) Range() (daterange.Range, error) {
	switch pricing.EventType(e.EventType) {
	case pricing.EventSingle:
		if e.EventDate == constant.Empty {
			return daterange.Range{}, failure.BadRequest(ErrEventDateRequired) // nolint:wrapcheck
		}

		date, err := daterange.ParseDate(e.EventDate)
		if err != nil {
			return daterange.Range{}, failure.BadRequest(err) // nolint:wrapcheck
		}

		return daterange.SingleDay(date), nil
	case pricing.EventMulti:
		if e.CheckInDate == constant.Empty || e.CheckOutDate == constant.Empty {
			return daterange.Range{}, failure.BadRequest(ErrStayDatesRequired) // nolint:wrapcheck
		}

		rng, err := daterange.Parse(e.CheckInDate, e.CheckOutDate)
		if err != nil {
			return rng, failure.BadRequest(err) // nolint:wrapcheck
		}

		return rng, nil
	default:
		return daterange.Range{}, failure.BadRequest(pricing.ErrUnknownEventType) // nolint:wrapcheck
	}
}

type CheckAvailabilityRequest struct {
	EventSchedule
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	VenueID   string `json:"venue_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
	Message   string `json:"message"`
}

type VenueResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price"       swaggertype:"string" example:"500.00"`
	Capacity    int          `json:"capacity"`
	Size        string       `json:"size"`
	Amenities   []string     `json:"amenities"`
	Image       string       `json:"image"`
	Images      []string     `json:"images"`
	Active      bool         `json:"is_active"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(model model.Venue) {
	r.ID = model.ID
	r.Name = model.Name
	r.Slug = model.Slug
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Size = model.Size
	r.Amenities = nonNil(model.Amenities)
	r.Image = model.Image
	r.Images = nonNil(model.Images)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
