package venue

import (
	"mime/multipart"
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/venue/model"
	"lodge/internal/domains/venue/model/dto"
	"lodge/internal/domains/venue/service"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/money"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	formImage        = "image"
	queryMinCapacity = "min_capacity"
)

var sortableFields = []string{model.FieldName, model.FieldPrice, model.FieldCapacity, constant.FieldCreatedAt}

type Handler struct {
	service service.Venue
	otel    otel.Otel
}

func New(service service.Venue, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/venues", func(r chi.Router) {
		r.Post("/", handler.CreateVenue)
		r.Get("/", handler.GetVenues)
		r.Get("/{id}", handler.GetVenueByID)
		r.Patch("/{id}", handler.UpdateVenue)
		r.Delete("/{id}", handler.DeactivateVenue)
		r.Post("/{id}/check-availability", handler.CheckAvailability)
	})
}

// venueForm is the multipart body shared by create and update.
type venueForm struct {
	name, description, size string
	price                   *money.Amount
	capacity                *int
	amenities, images       []string
	active                  *bool
	file                    multipart.File
	header                  *multipart.FileHeader
}

func parseVenueForm(r *http.Request) (venueForm, error) {
	form := venueForm{}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return form, failure.BadRequest(err) // nolint:wrapcheck
	}

	form.name = r.FormValue(model.FieldName)
	form.description = r.FormValue(model.FieldDescription)
	form.size = r.FormValue(model.FieldSize)
	form.amenities = r.MultipartForm.Value[model.FieldAmenities]
	form.images = r.MultipartForm.Value[model.FieldImages]
	form.active = shared.ConvertStringToBool(r.FormValue(model.FieldActive))

	if value := r.FormValue(model.FieldPrice); value != constant.Empty {
		price, err := money.ParseNonNegative(value)
		if err != nil {
			return form, failure.BadRequest(err) // nolint:wrapcheck
		}

		form.price = &price
	}

	if value := r.FormValue(model.FieldCapacity); value != constant.Empty {
		capacity, err := shared.ConvertStringToInt(value)
		if err != nil {
			return form, failure.BadRequestFromString("capacity must be a number") // nolint:wrapcheck
		}

		form.capacity = &capacity
	}

	if file, header, err := r.FormFile(formImage); err == nil {
		form.file = file
		form.header = header
	}

	return form, nil
}

func (f venueForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// CreateVenue handles the creation of a new venue.
// @Summary Create a venue
// @Description Create a venue with an optional photo. The slug is derived from the name.
// @Tags Venue
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Venue name"
// @Param description formData string true "Description"
// @Param price formData string true "Daily rate, e.g. 500.00"
// @Param capacity formData integer true "Maximum attendees"
// @Param size formData string true "Venue size"
// @Param amenities formData []string true "Amenities" collectionFormat(multi)
// @Param is_active formData boolean false "Bookable"
// @Param image formData file false "Venue photo"
// @Success 201 {object} response.Data[dto.VenueResponse] "Venue created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [post]
// @Security BearerAuth
func (handler *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVenue")
	defer scope.End()

	form, err := parseVenueForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}
	defer form.close()

	req := dto.CreateVenueRequest{
		Name:        form.name,
		Description: form.description,
		Size:        form.size,
		Amenities:   form.amenities,
		Images:      form.images,
		Image:       form.header,
		ImageFile:   form.file,
		Active:      form.active,
	}

	if form.price != nil {
		req.Price = *form.price
	}

	if form.capacity != nil {
		req.Capacity = *form.capacity
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue created successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetVenues lists venues.
// @Summary List venues
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param min_capacity query integer false "Minimum capacity"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetVenuesResponse] "List of venues"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
func (handler *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.AllowSort(sortableFields...)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AppendIfPresent(
		gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldName), Table: model.TableName},
		gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: shared.ConvertStringToBool(query.Get(model.FieldActive)), Table: model.TableName},
	)

	if value := query.Get(queryMinCapacity); value != constant.Empty {
		capacity, err := shared.ConvertStringToInt(value)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("min_capacity must be a number"))

			return
		}

		filterGroup.AppendIfPresent(gDto.Filter{Field: model.FieldCapacity, Operator: gDto.FilterOperatorGreaterEq, Value: capacity, Table: model.TableName})
	}

	venues, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venues")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venues retrieved successfully")

	response.WithJSON(w, http.StatusOK, venues)
}

// GetVenueByID retrieves a venue by its ID.
// @Summary Get a venue by ID
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Data[dto.VenueResponse] "Venue details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
func (handler *Handler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	venue, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue retrieved successfully")

	response.WithJSON(w, http.StatusOK, venue)
}

// UpdateVenue updates an existing venue by its ID.
// @Summary Update a venue
// @Description Only the fields present in the form are changed. A new photo replaces the previous one.
// @Tags Venue
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Venue ID"
// @Param name formData string false "Venue name"
// @Param description formData string false "Description"
// @Param price formData string false "Daily rate"
// @Param capacity formData integer false "Maximum attendees"
// @Param size formData string false "Venue size"
// @Param amenities formData []string false "Amenities" collectionFormat(multi)
// @Param is_active formData boolean false "Bookable"
// @Param image formData file false "Venue photo"
// @Success 200 {object} response.Message "Venue updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVenue")
	defer scope.End()

	form, err := parseVenueForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}
	defer form.close()

	req := dto.UpdateVenueRequest{
		Name:        form.name,
		Description: form.description,
		Price:       form.price,
		Capacity:    form.capacity,
		Size:        form.size,
		Image:       form.header,
		ImageFile:   form.file,
		Active:      form.active,
	}

	if form.amenities != nil {
		req.Amenities = pq.StringArray(form.amenities)
	}

	if form.images != nil {
		req.Images = pq.StringArray(form.images)
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue updated successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Venue updated successfully")
}

// DeactivateVenue takes a venue out of service. Venues referenced by reservations are never deleted.
// @Summary Deactivate a venue
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue deactivated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateVenue")
	defer scope.End()

	if err := handler.service.Deactivate(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue deactivated successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Venue deactivated successfully")
}

// CheckAvailability reports whether a venue is free for an event.
// @Summary Check venue availability
// @Description A single event occupies its event_date. A multi day event occupies [check_in_date, check_out_date).
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.CheckAvailabilityRequest true "Check Availability Request"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/check-availability [post]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckVenueAvailability")
	defer scope.End()

	req := dto.CheckAvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check venue availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
