package room

import (
	"mime/multipart"
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
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
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(r chi.Router) {
		r.Post("/", handler.CreateRoom)
		r.Get("/", handler.GetRooms)
		r.Get("/{id}", handler.GetRoomByID)
		r.Patch("/{id}", handler.UpdateRoom)
		r.Delete("/{id}", handler.DeactivateRoom)
	})
}

// roomForm is the multipart body shared by create and update.
type roomForm struct {
	name, description, size, bedType string
	price                            *money.Amount
	capacity                         *int
	amenities, images                []string
	active                           *bool
	file                             multipart.File
	header                           *multipart.FileHeader
}

func parseRoomForm(r *http.Request) (roomForm, error) {
	form := roomForm{}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return form, failure.BadRequest(err) // nolint:wrapcheck
	}

	form.name = r.FormValue(model.FieldName)
	form.description = r.FormValue(model.FieldDescription)
	form.size = r.FormValue(model.FieldSize)
	form.bedType = r.FormValue(model.FieldBedType)
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

func (f roomForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// CreateRoom handles the creation of a new room.
// @Summary Create a room
// @Description Create a room with an optional photo. The slug is derived from the name.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param description formData string true "Description"
// @Param price formData string true "Nightly rate, e.g. 100.00"
// @Param capacity formData integer true "Maximum guests"
// @Param size formData string true "Room size"
// @Param bed_type formData string true "Bed type"
// @Param amenities formData []string true "Amenities" collectionFormat(multi)
// @Param is_active formData boolean false "Bookable"
// @Param image formData file false "Room photo"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}
	defer form.close()

	req := dto.CreateRoomRequest{
		Name:        form.name,
		Description: form.description,
		Size:        form.size,
		BedType:     form.bedType,
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
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created successfully by user " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRooms lists rooms.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param min_capacity query integer false "Minimum capacity"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
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

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room
// @Description Only the fields present in the form are changed. A new photo replaces the previous one.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param description formData string false "Description"
// @Param price formData string false "Nightly rate"
// @Param capacity formData integer false "Maximum guests"
// @Param size formData string false "Room size"
// @Param bed_type formData string false "Bed type"
// @Param amenities formData []string false "Amenities" collectionFormat(multi)
// @Param is_active formData boolean false "Bookable"
// @Param image formData file false "Room photo"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}
	defer form.close()

	req := dto.UpdateRoomRequest{
		Name:        form.name,
		Description: form.description,
		Price:       form.price,
		Capacity:    form.capacity,
		Size:        form.size,
		BedType:     form.bedType,
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
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room updated successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeactivateRoom takes a room out of service. Rooms referenced by bookings are never deleted.
// @Summary Deactivate a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deactivated successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateRoom")
	defer scope.End()

	if err := handler.service.Deactivate(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room deactivated successfully by user " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Room deactivated successfully")
}
