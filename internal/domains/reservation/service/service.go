package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	availabilityModel "lodge/internal/domains/availability/model"
	availabilityService "lodge/internal/domains/availability/service"
	notificationModel "lodge/internal/domains/notification/model"
	notificationService "lodge/internal/domains/notification/service"
	"lodge/internal/domains/pricing"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	venueModel "lodge/internal/domains/venue/model"
	venueDto "lodge/internal/domains/venue/model/dto"
	venueRepo "lodge/internal/domains/venue/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/clock"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/lifecycle"
	gRepo "lodge/shared/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	errReservationNotFound = "reservation not found"
	argCurrentStatus       = "current_status"
	argToday               = "today"

	numberAttempts   = 3
	numberDateLayout = "20060102"
	numberSuffixLen  = 4
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetByNumber(ctx context.Context, number, email string) (dto.ReservationResponse, error)
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (venueDto.AvailabilityResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	CompleteFinished(ctx context.Context) error
}

type serviceImpl struct {
	repo      repository.Reservation
	lineRepo  repository.Line
	venueRepo venueRepo.Venue
	roomRepo  roomRepo.Room
	checker   availabilityService.Checker
	tx        gRepo.Transaction
	notifier  notificationService.Notifier
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	clock     clock.Clock
}

func New(
	repo repository.Reservation,
	lineRepo repository.Line,
	venueRepo venueRepo.Venue,
	roomRepo roomRepo.Room,
	checker availabilityService.Checker,
	tx gRepo.Transaction,
	notifier notificationService.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock clock.Clock,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		lineRepo:  lineRepo,
		venueRepo: venueRepo,
		roomRepo:  roomRepo,
		checker:   checker,
		tx:        tx,
		notifier:  notifier,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		clock:     clock,
	}
}

// Create books the venue and its attached rooms in one transaction.
// A reservation number collision reruns the whole transaction with a fresh number.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rng, err := req.Range()
	if err != nil {
		return res, err
	}

	if rng.Start.Before(s.clock.Today()) {
		return res, failure.BadRequestFromString("event date cannot be in the past") // nolint:wrapcheck
	}

	var (
		reservation model.Reservation
		lines       []model.Line
	)

	for attempt := 1; attempt <= numberAttempts; attempt++ {
		reservation, lines, err = s.create(ctx, req, rng, s.newNumber())
		if err == nil || !gRepo.IsUniqueViolation(err, model.FieldReservationNumber) {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("reservation number already taken")
	}

	if err != nil {
		if gRepo.IsUniqueViolation(err, model.FieldReservationNumber) {
			log.Error().Err(err).Msg("failed to allocate a reservation number")

			return res, fmt.Errorf("failed to allocate a reservation number: %w", err)
		}

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
		s.notifier.Notify(c, s.event(notificationModel.EventReservationCreated, reservation))
	}()

	return s.toResponse(reservation, lines), nil
}

func (s *serviceImpl) create(ctx context.Context, req dto.CreateReservationRequest, rng daterange.Range, number string) (model.Reservation, []model.Line, error) {
	var (
		reservation model.Reservation
		lines       []model.Line
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		venue, err := s.venueRepo.GetTx(ctx, tx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get venue")

			return fmt.Errorf("failed to get venue: %w", err)
		}

		if venue.ID == constant.Empty {
			return failure.NotFound("venue not found") // nolint:wrapcheck
		}

		if !venue.Active {
			return failure.Unprocessable("venue is not available for reservation") // nolint:wrapcheck
		}

		if req.Attendees > venue.Capacity {
			return failure.BadRequestFromString(fmt.Sprintf("this venue accommodates at most %d attendees", venue.Capacity)) // nolint:wrapcheck
		}

		rooms, err := s.attachedRooms(ctx, tx, req.AttachedRooms())
		if err != nil {
			return err
		}

		if err = s.checker.EnsureAvailableTx(ctx, tx, availabilityModel.Venue(venue.ID), rng); err != nil {
			return err
		}

		quote, err := pricing.VenueEvent(pricing.EventType(req.EventType), venue.Price, rng, rooms)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		now := s.clock.Now()
		reservation = req.ToModel(number, shared.Actor(ctx), venue, quote, rng, now)
		lines = dto.Lines(reservation.ID, quote, now)

		if err = s.repo.InsertTx(ctx, tx, reservation); err != nil {
			log.Error().Err(err).Msg("failed to insert reservation")

			return fmt.Errorf("failed to insert reservation: %w", err)
		}

		if err = s.lineRepo.InsertBulkTx(ctx, tx, lines); err != nil {
			log.Error().Err(err).Msg("failed to insert reservation rooms")

			return fmt.Errorf("failed to insert reservation rooms: %w", err)
		}

		return nil
	})

	return reservation, lines, err //nolint:wrapcheck
}

// attachedRooms resolves the requested rooms and snapshots their nightly rates.
func (s *serviceImpl) attachedRooms(ctx context.Context, tx *sqlx.Tx, requested []dto.RoomRequest) ([]pricing.RoomLine, error) {
	rooms := make([]pricing.RoomLine, 0, len(requested))

	for _, item := range requested {
		room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(item.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return nil, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return nil, failure.NotFound("room not found") // nolint:wrapcheck
		}

		if !room.Active {
			return nil, failure.Unprocessable(fmt.Sprintf("room %s is not available for reservation", room.Name)) // nolint:wrapcheck
		}

		rooms = append(rooms, pricing.RoomLine{
			RoomID:   room.ID,
			RoomName: room.Name,
			Rate:     room.Price,
			Quantity: item.Quantity,
		})
	}

	return rooms, nil
}

// GetAll lists reservations newest first, a page of the configured size unless the caller asks otherwise.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Page == 0 {
		req.Page = constant.DefaultValuePage
	}

	if req.Limit == 0 {
		req.Limit = s.cfg.Booking.ReservationPageSize
	}

	if req.SortBy == constant.Empty {
		req.SortBy = constant.DefaultValueSortBy
		req.SortDir = constant.DefaultValueSortDir
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		s.refreshCanCancel(res.Reservations)

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)
	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	res.Reservations = append([]dto.ReservationResponse(nil), cached.Reservations...)
	s.refreshCanCancel(res.Reservations)

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

// Get returns the reservation with its rooms to its creator or an administrator.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if !s.canAccess(ctx, res.CreatedBy) {
		return dto.ReservationResponse{}, failure.NotFound(errReservationNotFound) // nolint:wrapcheck
	}

	return res, nil
}

// GetByNumber is the public lookup. The email must match the one given at booking time.
func (s *serviceImpl) GetByNumber(ctx context.Context, number, email string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByNumber")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldReservationNumber, Value: strings.ToUpper(strings.TrimSpace(number)), Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldEmail, Value: strings.ToLower(strings.TrimSpace(email)), Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation by number")

		return res, fmt.Errorf("failed to get reservation by number: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound(errReservationNotFound) // nolint:wrapcheck
	}

	lines, err := s.lines(ctx, reservation.ID)
	if err != nil {
		return res, err
	}

	return s.toResponse(reservation, lines), nil
}

// CheckAvailability is a read without locks. The answer may be stale by the time a reservation is made.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res venueDto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rng, err := req.Range()
	if err != nil {
		return res, err
	}

	exist, err := s.venueRepo.Exist(ctx, shared.FilterByID(req.VenueID, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return res, fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	resource := availabilityModel.Venue(req.VenueID)

	available, err := s.checker.IsAvailable(ctx, resource, rng)
	if err != nil {
		return res, fmt.Errorf("failed to check venue availability: %w", err)
	}

	res = venueDto.AvailabilityResponse{
		Available: available,
		VenueID:   req.VenueID,
		StartDate: rng.Start.Format(constant.DateOnlyFormat),
		EndDate:   rng.End.Format(constant.DateOnlyFormat),
		Days:      rng.Nights(),
		Message:   "Venue is available",
	}

	if !available {
		res.Message = resource.UnavailableMessage()
	}

	return res, nil
}

// UpdateStatus is the administrative path. Notes are replaced only when given.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	status := lifecycle.Status(req.Status)
	if !status.Valid() {
		return res, failure.BadRequestFromString("invalid reservation status") // nolint:wrapcheck
	}

	extra := map[string]any{}
	if req.AdminNotes != nil {
		extra[model.FieldAdminNotes] = strings.TrimSpace(*req.AdminNotes)
	}

	reservation, err := s.transition(ctx, id, func(current model.Reservation) error {
		if s.cfg.Booking.StrictAdminTransitions && current.Status != status {
			return lifecycle.CheckTransition(current.Status, status) // nolint:wrapcheck
		}

		return nil
	}, status, extra)
	if err != nil {
		return res, err
	}

	lines, err := s.lines(ctx, reservation.ID)
	if err != nil {
		return res, err
	}

	return s.toResponse(reservation, lines), nil
}

// Cancel is open to the creator and administrators, gated by the cancellation window.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservation, err := s.transition(ctx, id, func(current model.Reservation) error {
		if !s.canAccess(ctx, current.CreatedBy) {
			return failure.NotFound(errReservationNotFound) // nolint:wrapcheck
		}

		now := s.clock.Now()

		return lifecycle.CheckCancellable(current.Status, clock.StartOfDay(current.Range().Start, now.Location()), now, s.cancelWindow()) // nolint:wrapcheck
	}, lifecycle.StatusCancelled, nil)
	if err != nil {
		return res, err
	}

	lines, err := s.lines(ctx, reservation.ID)
	if err != nil {
		return res, err
	}

	return s.toResponse(reservation, lines), nil
}

// CompleteFinished marks confirmed reservations whose last occupied day has passed as completed.
func (s *serviceImpl) CompleteFinished(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteFinished")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := s.clock.Today()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, ArgName: argCurrentStatus, Value: lifecycle.StatusConfirmed, Operator: gDto.FilterOperatorEq},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.FilterGroup{Filters: []any{
						gDto.Filter{Field: model.FieldEventType, ArgName: "single_type", Value: pricing.EventSingle, Operator: gDto.FilterOperatorEq},
						gDto.Filter{Field: model.FieldEventDate, ArgName: argToday, Value: today, Operator: gDto.FilterOperatorLess},
					}},
					gDto.FilterGroup{Filters: []any{
						gDto.Filter{Field: model.FieldEventType, ArgName: "multi_type", Value: pricing.EventMulti, Operator: gDto.FilterOperatorEq},
						gDto.Filter{Field: model.FieldCheckOutDate, ArgName: argToday, Value: today, Operator: gDto.FilterOperatorLessEq},
					}},
				},
			},
		},
	}

	updatedFields := map[string]any{
		model.FieldStatus:        lifecycle.StatusCompleted,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: constant.OtelSchedulerScopeName,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to complete finished reservations")

		return fmt.Errorf("failed to complete finished reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
		shared.InvalidateCaches(c, s.cache, cacheGetReservation)
	}()

	return nil
}

// transition locks the row, lets check veto the change and writes the new status in one transaction.
// Reactivating a cancelled or completed reservation re-checks availability, ignoring its own interval.
func (s *serviceImpl) transition(ctx context.Context, id string, check func(model.Reservation) error, status lifecycle.Status, extra map[string]any) (model.Reservation, error) {
	var reservation model.Reservation

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get reservation")

			return fmt.Errorf("failed to get reservation: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound(errReservationNotFound) // nolint:wrapcheck
		}

		if err = check(current); err != nil {
			return err
		}

		if status.IsActive() && !current.Status.IsActive() {
			if err = s.checker.EnsureAvailableTx(ctx, tx, availabilityModel.Venue(current.VenueID), current.Range(), current.ID); err != nil {
				return err //nolint:wrapcheck
			}
		}

		now := s.clock.Now()
		updatedFields := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		for field, value := range extra {
			updatedFields[field] = value
		}

		if err = s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update reservation status")

			return fmt.Errorf("failed to update reservation status: %w", err)
		}

		reservation = current
		reservation.Status = status
		reservation.ModifiedAt = now
		reservation.ModifiedBy = shared.Actor(ctx)

		if notes, ok := extra[model.FieldAdminNotes].(string); ok {
			reservation.AdminNotes = notes
		}

		return nil
	})
	if err != nil {
		return reservation, err //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, reservation.ID)
		s.notifier.Notify(c, s.event(notificationModel.EventReservationStatusChanged, reservation))
	}()

	return reservation, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		res.CanCancel = s.canCancelResponse(res)

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound(errReservationNotFound) // nolint:wrapcheck
	}

	lines, err := s.lines(ctx, reservation.ID)
	if err != nil {
		return res, err
	}

	res = s.toResponse(reservation, lines)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) lines(ctx context.Context, reservationID string) ([]model.Line, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldReservationID, Value: reservationID, Operator: gDto.FilterOperatorEq, Table: model.LineTableName},
		},
	}

	lines, err := s.lineRepo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation rooms")

		return nil, fmt.Errorf("failed to get reservation rooms: %w", err)
	}

	return lines, nil
}

// newNumber is VG, the current date and four random hex digits.
func (s *serviceImpl) newNumber() string {
	suffix := strings.ToUpper(uuid.NewString()[:numberSuffixLen])

	return model.NumberPrefix + s.clock.Now().Format(numberDateLayout) + suffix
}

func (s *serviceImpl) toResponse(reservation model.Reservation, lines []model.Line) dto.ReservationResponse {
	var res dto.ReservationResponse

	res.FromModel(reservation, lines)
	res.CanCancel = s.canCancel(reservation.Status, reservation.Range().Start)

	return res
}

func (s *serviceImpl) canCancel(status lifecycle.Status, start time.Time) bool {
	if start.IsZero() {
		return false
	}

	now := s.clock.Now()

	return lifecycle.CheckCancellable(status, clock.StartOfDay(start, now.Location()), now, s.cancelWindow()) == nil
}

func (s *serviceImpl) canCancelResponse(res dto.ReservationResponse) bool {
	start, err := time.Parse(constant.DateOnlyFormat, res.StartDate())
	if err != nil {
		return false
	}

	return s.canCancel(lifecycle.Status(res.Status), start)
}

func (s *serviceImpl) refreshCanCancel(reservations []dto.ReservationResponse) {
	for i := range reservations {
		reservations[i].CanCancel = s.canCancelResponse(reservations[i])
	}
}

func (s *serviceImpl) cancelWindow() time.Duration {
	return time.Duration(s.cfg.Booking.CancelWindowHours) * time.Hour
}

// canAccess lets administrators and the signed in creator through. Anonymous reservations belong to no one.
func (s *serviceImpl) canAccess(ctx context.Context, creator string) bool {
	if shared.IsAdmin(ctx) {
		return true
	}

	user := shared.UserIDFromContext(ctx)

	return user != constant.Empty && creator == user
}

func (s *serviceImpl) event(eventType notificationModel.EventType, reservation model.Reservation) notificationModel.Event {
	rng := reservation.Range()

	endDate := rng.End.Format(constant.DateOnlyFormat)
	if reservation.EventType == pricing.EventSingle {
		endDate = rng.Start.Format(constant.DateOnlyFormat)
	}

	return notificationModel.Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Reference:     reservation.ReservationNumber,
		Recipient:     reservation.Email,
		RecipientName: reservation.ContactPerson,
		Resource:      reservation.VenueName,
		StartDate:     rng.Start.Format(constant.DateOnlyFormat),
		EndDate:       endDate,
		Total:         reservation.TotalAmount,
		Status:        reservation.Status.String(),
		OccurredAt:    s.clock.Now(),
	}
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReservation)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation from cache")
	}

	s.invalidateLists(ctx)
}
