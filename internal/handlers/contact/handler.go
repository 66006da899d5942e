package contact

import (
	"net/http"
	"strings"

	"lodge/infras/otel"
	"lodge/internal/domains/contact/model"
	"lodge/internal/domains/contact/model/dto"
	"lodge/internal/domains/contact/service"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortableFields = []string{model.FieldName, model.FieldStatus, model.FieldSubmittedAt, constant.FieldCreatedAt}

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/contact", handler.SubmitContact)

	router.Route("/contacts", func(r chi.Router) {
		r.Get("/", handler.GetContacts)
		r.Get("/{id}", handler.GetContactByID)
		r.Patch("/{id}/status", handler.UpdateContactStatus)
		r.Delete("/{id}", handler.DeleteContact)
	})
}

// SubmitContact stores a message from the public contact form.
// @Summary Send a message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact form"
// @Success 201 {object} response.Data[dto.ReceiptResponse] "Message received"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact [post]
func (handler *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit contact")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetContacts lists messages, newest first by default.
// @Summary List messages
// @Tags Contact
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (new, read, replied, archived)"
// @Param email query string false "Filter by sender email"
// @Success 200 {object} response.Data[dto.GetContactsResponse] "List of messages"
// @Failure 500 {object} response.Error
// @Router /v1/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSort(sortableFields...)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AppendIfPresent(
		gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldStatus), Table: model.TableName},
		gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorEq, Value: strings.ToLower(query.Get(model.FieldEmail)), Table: model.TableName},
	)

	contacts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contacts)
}

// GetContactByID retrieves one message.
// @Summary Get a message by ID
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Data[dto.ContactResponse] "Message"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	contact, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// UpdateContactStatus moves a message through new, read, replied and archived.
// @Summary Update message status
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact status updated by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Status updated successfully")
}

// DeleteContact removes a message.
// @Summary Delete a message
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Message "Contact deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact deleted by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Contact deleted successfully")
}
