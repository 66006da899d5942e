package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/infras/otel/mocks"
	"lodge/infras/postgres"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/repository"
	"lodge/internal/domains/reservation/service"
	clockMocks "lodge/shared/clock/mocks"
	gRepo "lodge/shared/repository"
)

// A failing line item insert must leave neither the reservation nor any room behind.
func TestReservationService_CreateRollsBackOnLineFailure(t *testing.T) {
	f := newFixture(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })

	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}
	otel := mocks.NewOtel()

	f.venueRepo.EXPECT().GetTx(gomock.Any(), gomock.Not(gomock.Nil()), gomock.Any()).Return(ballroom(), nil)
	f.roomRepo.EXPECT().GetTx(gomock.Any(), gomock.Not(gomock.Nil()), gomock.Any()).Return(deluxe(), nil)
	f.checker.EXPECT().EnsureAvailableTx(gomock.Any(), gomock.Not(gomock.Nil()), gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO reservations \(`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO reservation_rooms \(`).WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	svc := service.New(
		repository.New(conn, otel),
		repository.NewLine(conn, otel),
		f.venueRepo,
		f.roomRepo,
		f.checker,
		gRepo.NewTransaction(conn, otel),
		f.notifier,
		f.cfg,
		f.cache,
		otel,
		clockMocks.NewClock(now),
	)

	req := request(multiDay("2025-06-10", "2025-06-12"))
	req.NeedsRooms = true
	req.Rooms = []dto.RoomRequest{{RoomID: "room-1", Quantity: 1}}

	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to insert reservation rooms")
	assert.NoError(t, mock.ExpectationsWereMet())
}
