package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/availability/model"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/lifecycle"
	"lodge/shared/logger"

	"github.com/jmoiron/sqlx"
)

const lockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

// Each source projects a reservation table onto (id, resource_id, start_date, end_date, status).
// A single day venue event occupies [event_date, event_date + 1).
var sources = map[model.ResourceType]string{
	model.ResourceRoom: `SELECT id, room_id AS resource_id, check_in AS start_date, check_out AS end_date, status FROM bookings`,
	model.ResourceVenue: `SELECT id, venue_id AS resource_id,
		CASE WHEN event_type = 'single' THEN event_date ELSE check_in_date END AS start_date,
		CASE WHEN event_type = 'single' THEN event_date + 1 ELSE check_out_date END AS end_date,
		status FROM reservations`,
}

type namedPreparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

type Interval interface {
	ListActive(ctx context.Context, resource model.Resource, window daterange.Range, excludeIDs ...string) ([]model.Interval, error)
	ListActiveTx(ctx context.Context, sqltx *sqlx.Tx, resource model.Resource, window daterange.Range, excludeIDs ...string) ([]model.Interval, error)
	LockTx(ctx context.Context, sqltx *sqlx.Tx, resource model.Resource) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Interval {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) ListActive(ctx context.Context, resource model.Resource, window daterange.Range, excludeIDs ...string) ([]model.Interval, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ListActive")
	defer scope.End()

	return r.listActive(ctx, r.db.Read, resource, window, excludeIDs)
}

// ListActiveTx reads inside the writer's transaction, after LockTx.
func (r *repositoryImpl) ListActiveTx(ctx context.Context, sqltx *sqlx.Tx, resource model.Resource, window daterange.Range, excludeIDs ...string) ([]model.Interval, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.ListActiveTx")
	defer scope.End()

	return r.listActive(ctx, sqltx, resource, window, excludeIDs)
}

// LockTx holds a transaction scoped advisory lock on the resource until commit or rollback.
func (r *repositoryImpl) LockTx(ctx context.Context, sqltx *sqlx.Tx, resource model.Resource) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.LockTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	if _, err := sqltx.ExecContext(ctx, lockQuery, resource.LockKey()); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock %s: %w", resource.LockKey(), err)
	}

	return nil
}

func (r *repositoryImpl) listActive(ctx context.Context, prep namedPreparer, resource model.Resource, window daterange.Range, excludeIDs []string) ([]model.Interval, error) {
	source, ok := sources[resource.Type]
	if !ok {
		return nil, fmt.Errorf("unknown resource type %q", resource.Type)
	}

	filter := activeFilter(resource, window, excludeIDs)
	where, args := filter.GetWhereClause()

	query := fmt.Sprintf("SELECT id, start_date, end_date, status FROM (%s) AS intervals WHERE %s ORDER BY start_date", source, where)

	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.listActive")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	intervals := []model.Interval{}

	if err = prepare.SelectContext(ctx, &intervals, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list active intervals (%s): %w", resource.LockKey(), err)
	}

	return intervals, nil
}

// activeFilter selects active rows of one resource, narrowed to those touching window when it is set.
func activeFilter(resource model.Resource, window daterange.Range, excludeIDs []string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldResourceID, Value: resource.ID, Operator: gDto.FilterOperatorEq},
		gDto.Filter{Field: model.FieldStatus, Value: lifecycle.ActiveStatuses(), Operator: gDto.FilterOperatorIn},
	}

	if !window.Start.IsZero() && !window.End.IsZero() {
		filters = append(filters,
			gDto.Filter{Field: model.FieldStartDate, ArgName: model.ArgWindowEnd, Value: window.End, Operator: gDto.FilterOperatorLess},
			gDto.Filter{Field: model.FieldEndDate, ArgName: model.ArgWindowStart, Value: window.Start, Operator: gDto.FilterOperatorGreater},
		)
	}

	if len(excludeIDs) > 0 {
		filters = append(filters, gDto.Filter{Field: model.FieldID, ArgName: model.ArgExclude, Value: excludeIDs, Operator: gDto.FilterOperatorNotIn})
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}
