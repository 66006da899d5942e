package dto

import (
	"strings"
	"time"

	"lodge/internal/domains/contact/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (c *CreateContactRequest) ToModel(actor string, now time.Time) model.Contact {
	return model.Contact{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		Email:       strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:       strings.TrimSpace(c.Phone),
		Subject:     strings.TrimSpace(c.Subject),
		Message:     strings.TrimSpace(c.Message),
		Status:      model.StatusNew,
		SubmittedAt: now,
		Metadata:    gModel.NewMetadata(actor, now),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

type ContactResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Subject = model.Subject
	r.Message = model.Message
	r.Status = model.Status.String()
	r.SubmittedAt = model.SubmittedAt.Format(constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

// ReceiptResponse is what the public form gets back.
type ReceiptResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

func (r *ReceiptResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Subject = model.Subject
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
