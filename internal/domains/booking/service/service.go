package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	availabilityModel "lodge/internal/domains/availability/model"
	availabilityService "lodge/internal/domains/availability/service"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	notificationModel "lodge/internal/domains/notification/model"
	notificationService "lodge/internal/domains/notification/service"
	"lodge/internal/domains/pricing"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/clock"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/lifecycle"
	gRepo "lodge/shared/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	errBookingNotFound = "booking not found"
	argCurrentStatus   = "current_status"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	CompleteFinished(ctx context.Context) error
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	checker  availabilityService.Checker
	tx       gRepo.Transaction
	notifier notificationService.Notifier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    clock.Clock
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	checker availabilityService.Checker,
	tx gRepo.Transaction,
	notifier notificationService.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock clock.Clock,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		checker:  checker,
		tx:       tx,
		notifier: notifier,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rng, err := req.Range()
	if err != nil {
		return res, err
	}

	if rng.Start.Before(s.clock.Today()) {
		return res, failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
	}

	if s.cfg.Booking.MaxGuests > 0 && req.Guests > s.cfg.Booking.MaxGuests {
		return res, failure.BadRequestFromString(fmt.Sprintf("a booking allows at most %d guests", s.cfg.Booking.MaxGuests)) // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if !room.Active {
			return failure.Unprocessable("room is not available for booking") // nolint:wrapcheck
		}

		if req.Guests > room.Capacity {
			return failure.BadRequestFromString(fmt.Sprintf("this room accommodates at most %d guests", room.Capacity)) // nolint:wrapcheck
		}

		if err = s.checker.EnsureAvailableTx(ctx, tx, availabilityModel.Room(room.ID), rng); err != nil {
			return err
		}

		stay, err := pricing.RoomStay(room.Price, rng)
		if err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}

		booking = req.ToModel(shared.Actor(ctx), room, stay, rng, s.clock.Now())

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			log.Error().Err(err).Msg("failed to insert booking")

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
		s.notifier.Notify(c, s.event(c, notificationModel.EventBookingCreated, booking))
	}()

	res = s.toResponse(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = s.scopeToOwner(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		s.refreshCanCancel(res.Bookings)

		return res, nil
	}

	total, err := s.count(ctx, filter, req)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)
	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	res.Bookings = append([]dto.BookingResponse(nil), cached.Bookings...)
	s.refreshCanCancel(res.Bookings)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.count(ctx, s.scopeToOwner(ctx, filter), req)
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup, req gDto.QueryParams) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Get hides bookings of other users behind a not found.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if !s.canAccess(ctx, res.UserID) {
			return dto.BookingResponse{}, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
		}

		res.CanCancel = s.canCancelResponse(res)

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty || !s.canAccess(ctx, booking.UserID) {
		return res, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	res = s.toResponse(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// CheckAvailability is a read without locks. The answer may be stale by the time a booking is made.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rng, err := req.Range()
	if err != nil {
		return res, err
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	resource := availabilityModel.Room(req.RoomID)

	available, err := s.checker.IsAvailable(ctx, resource, rng)
	if err != nil {
		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	res = dto.AvailabilityResponse{
		Available: available,
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Nights:    rng.Nights(),
		Message:   "Room is available for the selected dates.",
	}

	if !available {
		res.Message = resource.UnavailableMessage()
	}

	return res, nil
}

// UpdateStatus is the administrative path. Any status may be set unless strict transitions are configured.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	status := lifecycle.Status(req.Status)
	if !status.Valid() {
		return res, failure.BadRequestFromString("invalid booking status") // nolint:wrapcheck
	}

	booking, err := s.transition(ctx, id, func(current model.Booking) error {
		if s.cfg.Booking.StrictAdminTransitions && current.Status != status {
			return lifecycle.CheckTransition(current.Status, status) // nolint:wrapcheck
		}

		return nil
	}, status)
	if err != nil {
		return res, err
	}

	return s.toResponse(booking), nil
}

// Cancel is the guest path, limited to the owner and gated by the cancellation window.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.transition(ctx, id, func(current model.Booking) error {
		if !s.canAccess(ctx, current.UserID) {
			return failure.NotFound(errBookingNotFound) // nolint:wrapcheck
		}

		now := s.clock.Now()

		return lifecycle.CheckCancellable(current.Status, clock.StartOfDay(current.CheckIn, now.Location()), now, s.cancelWindow()) // nolint:wrapcheck
	}, lifecycle.StatusCancelled)
	if err != nil {
		return res, err
	}

	return s.toResponse(booking), nil
}

// CompleteFinished marks confirmed stays whose check-out day has arrived as completed.
func (s *serviceImpl) CompleteFinished(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteFinished")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, ArgName: argCurrentStatus, Value: lifecycle.StatusConfirmed, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldCheckOut, Value: s.clock.Today(), Operator: gDto.FilterOperatorLessEq},
		},
	}

	updatedFields := map[string]any{
		model.FieldStatus:        lifecycle.StatusCompleted,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: constant.OtelSchedulerScopeName,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to complete finished bookings")

		return fmt.Errorf("failed to complete finished bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateLists(c)
		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
	}()

	return nil
}

// transition locks the row, lets check veto the change and writes the new status in one transaction.
// Reactivating a cancelled or completed booking re-checks availability, ignoring its own interval.
func (s *serviceImpl) transition(ctx context.Context, id string, check func(model.Booking) error, status lifecycle.Status) (model.Booking, error) {
	var booking model.Booking

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err := s.tx.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return fmt.Errorf("failed to get booking: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound(errBookingNotFound) // nolint:wrapcheck
		}

		if err = check(current); err != nil {
			return err
		}

		if status.IsActive() && !current.Status.IsActive() {
			if err = s.checker.EnsureAvailableTx(ctx, tx, availabilityModel.Room(current.RoomID), current.Range(), current.ID); err != nil {
				return err //nolint:wrapcheck
			}
		}

		now := s.clock.Now()
		updatedFields := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if err = s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking status")

			return fmt.Errorf("failed to update booking status: %w", err)
		}

		booking = current
		booking.Status = status
		booking.ModifiedAt = now
		booking.ModifiedBy = shared.Actor(ctx)

		return nil
	})
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, booking.ID)
		s.notifier.Notify(c, s.event(c, notificationModel.EventBookingStatusChanged, booking))
	}()

	return booking, nil
}

func (s *serviceImpl) toResponse(booking model.Booking) dto.BookingResponse {
	var res dto.BookingResponse

	res.FromModel(booking)
	res.CanCancel = s.canCancel(booking.Status, booking.CheckIn)

	return res
}

func (s *serviceImpl) canCancel(status lifecycle.Status, checkIn time.Time) bool {
	now := s.clock.Now()

	return lifecycle.CheckCancellable(status, clock.StartOfDay(checkIn, now.Location()), now, s.cancelWindow()) == nil
}

func (s *serviceImpl) canCancelResponse(res dto.BookingResponse) bool {
	checkIn, err := time.Parse(constant.DateOnlyFormat, res.CheckIn)
	if err != nil {
		return false
	}

	return s.canCancel(lifecycle.Status(res.Status), checkIn)
}

// refreshCanCancel recomputes the time dependent flag of cached responses.
func (s *serviceImpl) refreshCanCancel(bookings []dto.BookingResponse) {
	for i := range bookings {
		bookings[i].CanCancel = s.canCancelResponse(bookings[i])
	}
}

func (s *serviceImpl) cancelWindow() time.Duration {
	return time.Duration(s.cfg.Booking.CancelWindowHours) * time.Hour
}

func (s *serviceImpl) canAccess(ctx context.Context, owner string) bool {
	return shared.IsAdmin(ctx) || owner == shared.UserIDFromContext(ctx)
}

// scopeToOwner limits non admin callers to their own bookings.
func (s *serviceImpl) scopeToOwner(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	if shared.IsAdmin(ctx) {
		return filter
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldUserID,
		ArgName:  "owner_id",
		Value:    shared.UserIDFromContext(ctx),
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return filter
}

// event addresses the mail to the caller only when the caller owns the booking.
func (s *serviceImpl) event(ctx context.Context, eventType notificationModel.EventType, booking model.Booking) notificationModel.Event {
	recipient := constant.Empty
	if booking.UserID == shared.UserIDFromContext(ctx) {
		recipient = shared.UserEmailFromContext(ctx)
	}

	return notificationModel.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Reference:  booking.ID,
		Recipient:  recipient,
		Resource:   booking.RoomName,
		StartDate:  booking.CheckIn.Format(constant.DateOnlyFormat),
		EndDate:    booking.CheckOut.Format(constant.DateOnlyFormat),
		Total:      booking.TotalPrice,
		Status:     booking.Status.String(),
		OccurredAt: s.clock.Now(),
	}
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	s.invalidateLists(ctx)
}
