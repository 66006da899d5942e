package dto

import (
	"lodge/shared/constant"
	"lodge/shared/model"
	"lodge/shared/timezone"
)

// Metadata is the audit trail rendered in the hotel's zone. Actors are user ids or "guest".
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(metadata model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(metadata.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(metadata.ModifiedAt, constant.DateFormat),
		CreatedBy:  metadata.CreatedBy,
		ModifiedBy: metadata.ModifiedBy,
	}
}
