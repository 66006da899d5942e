package model

import (
	"time"

	"lodge/shared/daterange"
)

type ResourceType string

const (
	ResourceRoom  ResourceType = "room"
	ResourceVenue ResourceType = "venue"
)

const (
	EntityName = "availability"

	FieldID         = "id"
	FieldResourceID = "resource_id"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldStatus     = "status"

	ArgWindowStart = "window_start"
	ArgWindowEnd   = "window_end"
	ArgExclude     = "exclude"
)

const (
	MessageRoomUnavailable  = "This room is not available for the selected dates."
	MessageVenueUnavailable = "Venue is not available for selected dates"
)

// Resource identifies something that can be reserved.
type Resource struct {
	Type ResourceType
	ID   string
}

func Room(id string) Resource {
	return Resource{Type: ResourceRoom, ID: id}
}

func Venue(id string) Resource {
	return Resource{Type: ResourceVenue, ID: id}
}

// LockKey is hashed into the advisory lock that serialises writers of one resource.
func (r Resource) LockKey() string {
	return string(r.Type) + ":" + r.ID
}

func (r Resource) UnavailableMessage() string {
	if r.Type == ResourceVenue {
		return MessageVenueUnavailable
	}

	return MessageRoomUnavailable
}

// Interval is one active occupation of a resource as [Start, End).
type Interval struct {
	ID     string    `db:"id"`
	Start  time.Time `db:"start_date"`
	End    time.Time `db:"end_date"`
	Status string    `db:"status"`
}

func (i Interval) Range() daterange.Range {
	return daterange.Range{Start: i.Start, End: i.End}
}
