package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldSubject     = "subject"
	FieldStatus      = "status"
	FieldSubmittedAt = "submitted_at"
)

// Status tracks how far the back office got with a message.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Contact is a message left through the public contact form.
type Contact struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	Subject     string    `db:"subject"`
	Message     string    `db:"message"`
	Status      Status    `db:"status"`
	SubmittedAt time.Time `db:"submitted_at"`
	model.Metadata
}
