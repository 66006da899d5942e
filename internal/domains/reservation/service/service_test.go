package service_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	availabilityMocks "lodge/internal/domains/availability/mocks"
	availabilityModel "lodge/internal/domains/availability/model"
	notificationMocks "lodge/internal/domains/notification/mocks"
	notificationModel "lodge/internal/domains/notification/model"
	notificationService "lodge/internal/domains/notification/service"
	"lodge/internal/domains/pricing"
	reservationMocks "lodge/internal/domains/reservation/mocks"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	venueMocks "lodge/internal/domains/venue/mocks"
	venueModel "lodge/internal/domains/venue/model"
	venueDto "lodge/internal/domains/venue/model/dto"
	cacheMocks "lodge/shared/cache/mocks"
	clockMocks "lodge/shared/clock/mocks"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/lifecycle"
	gModel "lodge/shared/model"
	"lodge/shared/money"
	gRepo "lodge/shared/repository"
	txMocks "lodge/shared/repository/mocks"
)

var (
	now           = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	numberPattern = regexp.MustCompile(`^VG20250601[0-9A-F]{4}$`)
)

type fixture struct {
	repo      *reservationMocks.MockReservation
	lineRepo  *reservationMocks.MockLine
	venueRepo *venueMocks.MockVenue
	roomRepo  *roomMocks.MockRoom
	checker   *availabilityMocks.MockChecker
	tx        *txMocks.MockTransaction
	notifier  *notificationMocks.MockNotifier
	cache     *cacheMocks.MockRedisCache
	cfg       *config.Config
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      reservationMocks.NewMockReservation(ctrl),
		lineRepo:  reservationMocks.NewMockLine(ctrl),
		venueRepo: venueMocks.NewMockVenue(ctrl),
		roomRepo:  roomMocks.NewMockRoom(ctrl),
		checker:   availabilityMocks.NewMockChecker(ctrl),
		tx:        txMocks.NewMockTransaction(ctrl),
		notifier:  notificationMocks.NewMockNotifier(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		cfg:       &config.Config{},
	}

	f.cfg.Booking.CancelWindowHours = 24
	f.cfg.Booking.ReservationPageSize = 15

	f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn gRepo.TxFunc) error {
		return fn(ctx, nil)
	}).AnyTimes()

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) service() service.Reservation {
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).AnyTimes()

	return f.serviceWithNotifier(f.notifier)
}

func (f fixture) serviceWithNotifier(notifier notificationService.Notifier) service.Reservation {
	return service.New(f.repo, f.lineRepo, f.venueRepo, f.roomRepo, f.checker, f.tx, notifier, f.cfg, f.cache, mocks.NewOtel(), clockMocks.NewClock(now))
}

func userContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func date(value string) time.Time {
	d, err := daterange.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return d
}

func ballroom() venueModel.Venue {
	return venueModel.Venue{ID: "venue-1", Name: "Ballroom", Price: money.MustParse("500.00"), Capacity: 100, Active: true}
}

func deluxe() roomModel.Room {
	return roomModel.Room{ID: "room-1", Name: "Deluxe", Price: money.MustParse("100.00"), Capacity: 2, Active: true}
}

func request(schedule venueDto.EventSchedule) dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		VenueID:       "venue-1",
		EventSchedule: schedule,
		Attendees:     80,
		Organization:  "Acme",
		EventName:     "Annual Gala",
		ContactPerson: "Jane Doe",
		Email:         " Jane@Example.com ",
		Phone:         "+62 811 000",
	}
}

func multiDay(start, end string) venueDto.EventSchedule {
	return venueDto.EventSchedule{EventType: string(pricing.EventMulti), CheckInDate: start, CheckOutDate: end}
}

func singleDay(day string) venueDto.EventSchedule {
	return venueDto.EventSchedule{EventType: string(pricing.EventSingle), EventDate: day}
}

func storedReservation(status lifecycle.Status, checkIn, checkOut string) model.Reservation {
	in, out := date(checkIn), date(checkOut)

	return model.Reservation{
		ID:                "res-1",
		ReservationNumber: "VG20250601ABCD",
		VenueID:           "venue-1",
		VenueName:         "Ballroom",
		EventType:         pricing.EventMulti,
		CheckInDate:       &in,
		CheckOutDate:      &out,
		Nights:            2,
		Attendees:         80,
		ContactPerson:     "Jane Doe",
		Email:             "jane@example.com",
		VenueTotal:        money.MustParse("1000.00"),
		TotalAmount:       money.MustParse("1000.00"),
		Status:            status,
		Metadata:          gModel.NewMetadata("user-1", now),
	}
}

func TestReservationService_CreateMultiDayWithRooms(t *testing.T) {
	f := newFixture(t)

	f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
	f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), availabilityModel.Venue("venue-1"), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, _ availabilityModel.Resource, rng daterange.Range, _ ...string) error {
			assert.Equal(t, date("2025-06-10"), rng.Start)
			assert.Equal(t, date("2025-06-13"), rng.End)

			return nil
		})
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
		assert.Equal(t, "jane@example.com", r.Email)
		assert.Equal(t, lifecycle.StatusPending, r.Status)
		assert.Nil(t, r.EventDate)

		return nil
	})
	f.lineRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lines []model.Line) error {
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Nights)
		assert.Equal(t, money.MustParse("600.00"), lines[0].Subtotal)

		return nil
	})

	req := request(multiDay("2025-06-10", "2025-06-13"))
	req.NeedsRooms = true
	req.Rooms = []dto.RoomRequest{{RoomID: "room-1", Quantity: 2}}

	res, err := f.service().Create(userContext("user-1"), req)
	require.NoError(t, err)

	assert.Regexp(t, numberPattern, res.ReservationNumber)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, money.MustParse("1500.00"), res.VenueTotal)
	assert.Equal(t, money.MustParse("600.00"), res.RoomsTotal)
	assert.Equal(t, money.MustParse("2100.00"), res.TotalAmount)
	assert.Equal(t, "2025-06-10", res.CheckInDate)
	assert.Equal(t, "2025-06-13", res.CheckOutDate)
	assert.True(t, res.NeedsRooms)
	assert.True(t, res.CanCancel)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, "Deluxe", res.Rooms[0].RoomName)
}

func TestReservationService_CreateSingleDay(t *testing.T) {
	f := newFixture(t)

	f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
	f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), daterange.SingleDay(date("2025-06-10"))).Return(nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.lineRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	req := request(singleDay("2025-06-10"))
	req.NeedsRooms = true
	req.Rooms = []dto.RoomRequest{{RoomID: "room-1", Quantity: 3}}

	res, err := f.service().Create(context.Background(), req)
	require.NoError(t, err)

	// a one day event has no nights, so attached rooms are free
	assert.Equal(t, "2025-06-10", res.EventDate)
	assert.Empty(t, res.CheckInDate)
	assert.Equal(t, 0, res.Nights)
	assert.Equal(t, money.MustParse("500.00"), res.TotalAmount)
	assert.Equal(t, money.MustParse("0.00"), res.RoomsTotal)
	assert.Equal(t, constant.ContextGuest, res.CreatedBy)
}

func TestReservationService_CreateIgnoresRoomsWhenNotNeeded(t *testing.T) {
	f := newFixture(t)

	f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
	f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.lineRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(0)).Return(nil)

	req := request(multiDay("2025-06-10", "2025-06-12"))
	req.Rooms = []dto.RoomRequest{{RoomID: "room-1", Quantity: 2}}

	res, err := f.service().Create(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.NeedsRooms)
	assert.Empty(t, res.Rooms)
	assert.Equal(t, money.MustParse("1000.00"), res.TotalAmount)
}

func TestReservationService_CreateValidation(t *testing.T) {
	inactiveVenue := ballroom()
	inactiveVenue.Active = false

	inactiveRoom := deluxe()
	inactiveRoom.Active = false

	tests := []struct {
		name     string
		req      func() dto.CreateReservationRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:     "event in the past",
			req:      func() dto.CreateReservationRequest { return request(singleDay("2025-05-31")) },
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "single event without a date",
			req:      func() dto.CreateReservationRequest { return request(venueDto.EventSchedule{EventType: "single"}) },
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "check out before check in",
			req:      func() dto.CreateReservationRequest { return request(multiDay("2025-06-12", "2025-06-10")) },
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown venue",
			req:  func() dto.CreateReservationRequest { return request(singleDay("2025-06-10")) },
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(venueModel.Venue{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive venue",
			req:  func() dto.CreateReservationRequest { return request(singleDay("2025-06-10")) },
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inactiveVenue, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "more attendees than the venue holds",
			req: func() dto.CreateReservationRequest {
				req := request(singleDay("2025-06-10"))
				req.Attendees = 150

				return req
			},
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inactive room",
			req: func() dto.CreateReservationRequest {
				req := request(multiDay("2025-06-10", "2025-06-12"))
				req.NeedsRooms = true
				req.Rooms = []dto.RoomRequest{{RoomID: "room-1", Quantity: 1}}

				return req
			},
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
				f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(inactiveRoom, nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown room",
			req: func() dto.CreateReservationRequest {
				req := request(multiDay("2025-06-10", "2025-06-12"))
				req.NeedsRooms = true
				req.Rooms = []dto.RoomRequest{{RoomID: "missing", Quantity: 1}}

				return req
			},
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
				f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "venue already taken",
			req:  func() dto.CreateReservationRequest { return request(singleDay("2025-06-10")) },
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
				f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict(availabilityModel.MessageVenueUnavailable))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "line items fail",
			req: func() dto.CreateReservationRequest {
				req := request(multiDay("2025-06-10", "2025-06-12"))
				req.NeedsRooms = true
				req.Rooms = []dto.RoomRequest{{RoomID: "room-1", Quantity: 1}}

				return req
			},
			setup: func(f fixture) {
				f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
				f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.lineRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.service().Create(context.Background(), tt.req())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestReservationService_CreateRetriesTakenNumber(t *testing.T) {
	taken := &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: "reservations_reservation_number_key"}

	t.Run("second number is free", func(t *testing.T) {
		f := newFixture(t)

		numbers := []string{}

		f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil).Times(2)
		f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.lineRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		gomock.InOrder(
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
				numbers = append(numbers, r.ReservationNumber)

				return taken
			}),
			f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
				numbers = append(numbers, r.ReservationNumber)

				return nil
			}),
		)

		res, err := f.service().Create(context.Background(), request(singleDay("2025-06-10")))
		require.NoError(t, err)
		require.Len(t, numbers, 2)
		assert.Equal(t, numbers[1], res.ReservationNumber)
		assert.Regexp(t, numberPattern, numbers[0])
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		f := newFixture(t)

		f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil).Times(3)
		f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(taken).Times(3)

		_, err := f.service().Create(context.Background(), request(singleDay("2025-06-10")))
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.ErrorContains(t, err, "failed to allocate a reservation number")
	})

	t.Run("other unique violations are not retried", func(t *testing.T) {
		f := newFixture(t)

		f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
		f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: "reservations_pkey"})

		_, err := f.service().Create(context.Background(), request(singleDay("2025-06-10")))
		require.Error(t, err)
	})
}

func TestReservationService_CreateNotifiesContact(t *testing.T) {
	f := newFixture(t)

	events := make(chan notificationModel.Event, 1)

	notifier := notificationMocks.NewMockNotifier(gomock.NewController(t))
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event notificationModel.Event) {
		events <- event
	})

	f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(ballroom(), nil)
	f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.lineRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.serviceWithNotifier(notifier).Create(context.Background(), request(singleDay("2025-06-10")))
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, notificationModel.EventReservationCreated, event.Type)
		assert.Equal(t, res.ReservationNumber, event.Reference)
		assert.Equal(t, "jane@example.com", event.Recipient)
		assert.Equal(t, "Jane Doe", event.RecipientName)
		assert.Equal(t, "2025-06-10", event.StartDate)
		assert.Equal(t, "2025-06-10", event.EndDate)
	case <-time.After(time.Second):
		t.Fatal("no notification sent")
	}
}

func TestReservationService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "creator", ctx: userContext("user-1")},
		{name: "admin", ctx: adminContext()},
		{name: "another user", ctx: userContext("user-2"), wantCode: http.StatusNotFound},
		{name: "anonymous", ctx: context.Background(), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), "reservation:get:res-1", gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedReservation(lifecycle.StatusConfirmed, "2025-06-10", "2025-06-12"), nil)
			f.lineRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Line{{RoomID: "room-1", RoomName: "Deluxe", Quantity: 1}}, nil)

			res, err := f.service().Get(tt.ctx, "res-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "VG20250601ABCD", res.ReservationNumber)
			assert.Len(t, res.Rooms, 1)
			assert.True(t, res.CanCancel)
		})
	}
}

func TestReservationService_GetByNumber(t *testing.T) {
	t.Run("number and email match", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Reservation, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "VG20250601ABCD", args[model.FieldReservationNumber])
			assert.Equal(t, "jane@example.com", args[model.FieldEmail])

			return storedReservation(lifecycle.StatusPending, "2025-06-10", "2025-06-12"), nil
		})
		f.lineRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.service().GetByNumber(context.Background(), " vg20250601abcd", "JANE@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "res-1", res.ID)
		assert.Equal(t, []dto.LineResponse{}, res.Rooms)
	})

	t.Run("wrong email", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.service().GetByNumber(context.Background(), "VG20250601ABCD", "someone@example.com")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservationService_GetAllDefaults(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(20, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 15, params.Limit)
			assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
			assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)

			return []model.Reservation{storedReservation(lifecycle.StatusCancelled, "2025-06-10", "2025-06-12")}, nil
		})

	res, err := f.service().GetAll(adminContext(), gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 20, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Reservations, 1)
	assert.False(t, res.Reservations[0].CanCancel)
}

func TestReservationService_CheckAvailability(t *testing.T) {
	f := newFixture(t)

	f.venueRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.checker.EXPECT().IsAvailable(gomock.Any(), availabilityModel.Venue("venue-1"), gomock.Any()).Return(false, nil)

	res, err := f.service().CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
		VenueID:       "venue-1",
		EventSchedule: multiDay("2025-06-10", "2025-06-13"),
	})
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, 3, res.Days)
	assert.Equal(t, "2025-06-13", res.EndDate)
	assert.Equal(t, availabilityModel.MessageVenueUnavailable, res.Message)
}

func TestReservationService_Cancel(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		status   lifecycle.Status
		checkIn  string
		wantCode int
	}{
		{name: "creator well ahead", ctx: userContext("user-1"), status: lifecycle.StatusConfirmed, checkIn: "2025-06-10"},
		{name: "admin on behalf of the organiser", ctx: adminContext(), status: lifecycle.StatusPending, checkIn: "2025-06-10"},
		{name: "another user", ctx: userContext("user-2"), status: lifecycle.StatusConfirmed, checkIn: "2025-06-10", wantCode: http.StatusNotFound},
		{name: "inside the window", ctx: userContext("user-1"), status: lifecycle.StatusConfirmed, checkIn: "2025-06-02", wantCode: http.StatusBadRequest},
		{name: "already cancelled", ctx: userContext("user-1"), status: lifecycle.StatusCancelled, checkIn: "2025-06-10", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedReservation(tt.status, tt.checkIn, "2025-06-12"), nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, lifecycle.StatusCancelled, fields[model.FieldStatus])
						assert.Equal(t, now, fields[constant.FieldModifiedAt])

						return nil
					})
				f.lineRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			}

			res, err := f.service().Cancel(tt.ctx, "res-1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, lifecycle.StatusCancelled.String(), res.Status)
			assert.False(t, res.CanCancel)
		})
	}
}

func TestReservationService_UpdateStatus(t *testing.T) {
	t.Run("confirm with notes", func(t *testing.T) {
		f := newFixture(t)

		notes := "  deposit received  "

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedReservation(lifecycle.StatusPending, "2025-06-10", "2025-06-12"), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, lifecycle.StatusConfirmed, fields[model.FieldStatus])
				assert.Equal(t, "deposit received", fields[model.FieldAdminNotes])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})
		f.lineRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.service().UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: "confirmed", AdminNotes: &notes}, "res-1")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
		assert.Equal(t, "deposit received", res.AdminNotes)
	})

	t.Run("notes untouched when absent", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedReservation(lifecycle.StatusCompleted, "2025-05-10", "2025-05-12"), nil)
		f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), availabilityModel.Venue("venue-1"), gomock.Any(), "res-1").Return(nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.NotContains(t, fields, model.FieldAdminNotes)

				return nil
			})
		f.lineRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.service().UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: "pending"}, "res-1")
		require.NoError(t, err)
		assert.Equal(t, "pending", res.Status)
	})

	t.Run("reopening a single event checks its day against the venue", func(t *testing.T) {
		f := newFixture(t)

		stored := storedReservation(lifecycle.StatusCancelled, "2025-06-10", "2025-06-12")
		eventDate := date("2025-06-20")
		stored.EventType = pricing.EventSingle
		stored.EventDate = &eventDate
		stored.CheckInDate, stored.CheckOutDate = nil, nil

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(stored, nil)
		f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Any(), availabilityModel.Venue("venue-1"), gomock.Any(), "res-1").DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, _ availabilityModel.Resource, rng daterange.Range, _ ...string) error {
				assert.Equal(t, date("2025-06-20"), rng.Start)
				assert.Equal(t, date("2025-06-21"), rng.End)

				return failure.Conflict(availabilityModel.MessageVenueUnavailable)
			})

		_, err := f.service().UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: "confirmed"}, "res-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, availabilityModel.MessageVenueUnavailable, err.Error())
	})

	t.Run("strict transitions reject reopening", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Booking.StrictAdminTransitions = true

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(storedReservation(lifecycle.StatusCompleted, "2025-05-10", "2025-05-12"), nil)

		_, err := f.service().UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: "pending"}, "res-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.service().UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: "confirmed"}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service().UpdateStatus(adminContext(), dto.UpdateStatusRequest{Status: "archived"}, "res-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_CompleteFinished(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
		assert.Equal(t, lifecycle.StatusCompleted, fields[model.FieldStatus])
		assert.Equal(t, constant.OtelSchedulerScopeName, fields[constant.FieldModifiedBy])

		where, args := filter.GetWhereClause()
		assert.Contains(t, where, "event_date < :today")
		assert.Contains(t, where, "check_out_date <= :today")
		assert.Equal(t, lifecycle.StatusConfirmed, args["current_status"])
		assert.Equal(t, pricing.EventSingle, args["single_type"])
		assert.Equal(t, pricing.EventMulti, args["multi_type"])
		assert.Equal(t, date("2025-06-01"), args["today"])

		return nil
	})

	require.NoError(t, f.service().CompleteFinished(context.Background()))
}
