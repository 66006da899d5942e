package repository_test

import (
	"context"
	"testing"
	"time"

	"lodge/infras/otel/mocks"
	"lodge/infras/postgres"
	"lodge/internal/domains/availability/model"
	"lodge/internal/domains/availability/repository"
	"lodge/shared/daterange"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (repository.Interval, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), sqlxDB, mock
}

func TestListActiveRooms(t *testing.T) {
	repo, _, mock := setup(t)
	rng, _ := daterange.Parse("2025-06-03", "2025-06-05")

	rows := sqlmock.NewRows([]string{"id", "start_date", "end_date", "status"}).
		AddRow("b-1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), "confirmed")

	mock.ExpectPrepare(`FROM \(SELECT id, room_id AS resource_id, check_in AS start_date, check_out AS end_date, status FROM bookings\) AS intervals WHERE \(resource_id = \$1 AND status IN \(\$2, \$3\)  AND start_date < \$4 AND end_date > \$5\)`).
		ExpectQuery().
		WithArgs("room-1", "pending", "confirmed", rng.End, rng.Start).
		WillReturnRows(rows)

	intervals, err := repo.ListActive(context.Background(), model.Room("room-1"), rng)

	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, "b-1", intervals[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveTxVenuesExcludingSelf(t *testing.T) {
	repo, db, mock := setup(t)
	rng := daterange.SingleDay(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectPrepare(`CASE WHEN event_type = 'single' THEN event_date \+ 1 ELSE check_out_date END AS end_date.*id NOT IN \(\$6\)`).
		ExpectQuery().
		WithArgs("venue-1", "pending", "confirmed", rng.End, rng.Start, "r-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "status"}))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	intervals, err := repo.ListActiveTx(context.Background(), tx, model.Venue("venue-1"), rng, "r-1")

	require.NoError(t, err)
	assert.Empty(t, intervals)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockTx(t *testing.T) {
	repo, db, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("room:room-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	assert.NoError(t, repo.LockTx(context.Background(), tx, model.Room("room-1")))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
