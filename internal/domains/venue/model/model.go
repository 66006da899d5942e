package model

import (
	"lodge/shared/model"
	"lodge/shared/money"

	"github.com/lib/pq"
)

const (
	TableName  = "venues"
	EntityName = "venue"
	// ImageDirectory is the object storage prefix for venue photos.
	ImageDirectory = "venues"

	FieldID          = "id"
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldSize        = "size"
	FieldAmenities   = "amenities"
	FieldImage       = "image"
	FieldImages      = "images"
	FieldActive      = "is_active"
)

// Venue is an event space rented by the day.
type Venue struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description string         `db:"description"`
	Price       money.Amount   `db:"price"`
	Capacity    int            `db:"capacity"`
	Size        string         `db:"size"`
	Amenities   pq.StringArray `db:"amenities"`
	Image       string         `db:"image"`
	Images      pq.StringArray `db:"images"`
	Active      bool           `db:"is_active"`
	model.Metadata
}
