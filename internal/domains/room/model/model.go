package model

import (
	"lodge/shared/model"
	"lodge/shared/money"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"
	// ImageDirectory is the object storage prefix for room photos.
	ImageDirectory = "rooms"

	FieldID          = "id"
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldSize        = "size"
	FieldBedType     = "bed_type"
	FieldAmenities   = "amenities"
	FieldImage       = "image"
	FieldImages      = "images"
	FieldActive      = "is_active"
)

type Room struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Description string         `db:"description"`
	Price       money.Amount   `db:"price"`
	Capacity    int            `db:"capacity"`
	Size        string         `db:"size"`
	BedType     string         `db:"bed_type"`
	Amenities   pq.StringArray `db:"amenities"`
	Image       string         `db:"image"`
	Images      pq.StringArray `db:"images"`
	Active      bool           `db:"is_active"`
	model.Metadata
}
