package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/money"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	Name        string                `json:"name"        validate:"required,max=255"`
	Description string                `json:"description" validate:"required"`
	Price       money.Amount          `json:"price"       validate:"gt=0"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	Size        string                `json:"size"        validate:"required,max=50"`
	BedType     string                `json:"bed_type"    validate:"required,max=50"`
	Amenities   []string              `json:"amenities"   validate:"required,min=1,dive,required,max=100"`
	Images      []string              `json:"images"      validate:"omitempty,dive,url"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5" swaggerignore:"true"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"is_active"   validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user, slug, imageURL string, now time.Time) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Slug:        slug,
		Description: c.Description,
		Price:       c.Price,
		Capacity:    c.Capacity,
		Size:        c.Size,
		BedType:     c.BedType,
		Amenities:   pq.StringArray(c.Amenities),
		Image:       imageURL,
		Images:      pq.StringArray(nonNil(c.Images)),
		Active:      active,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=255"`
	Description string                `db:"description" json:"description"`
	Price       *money.Amount         `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Size        string                `db:"size"        json:"size"        validate:"omitempty,max=50"`
	BedType     string                `db:"bed_type"    json:"bed_type"    validate:"omitempty,max=50"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,required,max=100"`
	Images      pq.StringArray        `db:"images"      json:"images"      validate:"omitempty,dive,url"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5" swaggerignore:"true"`
	ImageFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"is_active"   json:"is_active"`
}

// IsEmpty reports whether the request changes nothing.
func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Name == "" && u.Description == "" && u.Price == nil && u.Capacity == nil && u.Size == "" &&
		u.BedType == "" && u.Amenities == nil && u.Images == nil && u.Image == nil && u.Active == nil
}

type RoomResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price"        swaggertype:"string" example:"100.00"`
	Capacity    int          `json:"capacity"`
	Size        string       `json:"size"`
	BedType     string       `json:"bed_type"`
	Amenities   []string     `json:"amenities"`
	Image       string       `json:"image"`
	Images      []string     `json:"images"`
	Active      bool         `json:"is_active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Slug = model.Slug
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Size = model.Size
	r.BedType = model.BedType
	r.Amenities = nonNil(model.Amenities)
	r.Image = model.Image
	r.Images = nonNil(model.Images)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
