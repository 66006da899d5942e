package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/infras/otel"
	"lodge/internal/domains/availability/model"
	"lodge/internal/domains/availability/repository"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	"lodge/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Checker is shared by room bookings and venue reservations.
type Checker interface {
	IsAvailable(ctx context.Context, resource model.Resource, rng daterange.Range, excludeIDs ...string) (bool, error)
	EnsureAvailableTx(ctx context.Context, sqltx *sqlx.Tx, resource model.Resource, rng daterange.Range, excludeIDs ...string) error
}

type serviceImpl struct {
	repo repository.Interval
	otel otel.Otel
}

func New(repo repository.Interval, otel otel.Otel) Checker {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// IsAvailable is the read only path used by check-availability endpoints.
func (s *serviceImpl) IsAvailable(ctx context.Context, resource model.Resource, rng daterange.Range, excludeIDs ...string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	intervals, err := s.repo.ListActive(ctx, resource, rng, excludeIDs...)
	if err != nil {
		log.Error().Err(err).Str("resource", resource.LockKey()).Msg("failed to list active intervals")

		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return len(FindConflicts(intervals, rng)) == 0, nil
}

// EnsureAvailableTx locks the resource, then fails with a conflict when rng overlaps an active interval.
// The lock is released when sqltx ends, so the caller's insert is covered by the same lock.
func (s *serviceImpl) EnsureAvailableTx(ctx context.Context, sqltx *sqlx.Tx, resource model.Resource, rng daterange.Range, excludeIDs ...string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureAvailableTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.LockTx(ctx, sqltx, resource); err != nil {
		log.Error().Err(err).Str("resource", resource.LockKey()).Msg("failed to lock resource")

		return fmt.Errorf("failed to lock resource: %w", err)
	}

	intervals, err := s.repo.ListActiveTx(ctx, sqltx, resource, rng, excludeIDs...)
	if err != nil {
		log.Error().Err(err).Str("resource", resource.LockKey()).Msg("failed to list active intervals")

		return fmt.Errorf("failed to check availability: %w", err)
	}

	if conflicts := FindConflicts(intervals, rng); len(conflicts) > 0 {
		log.Info().Str("resource", resource.LockKey()).Str("range", rng.String()).Str("conflict", conflicts[0].ID).Msg("resource unavailable")

		return failure.Conflict(resource.UnavailableMessage()) // nolint:wrapcheck
	}

	return nil
}

// FindConflicts returns every interval that overlaps rng.
func FindConflicts(intervals []model.Interval, rng daterange.Range) []model.Interval {
	var conflicts []model.Interval

	for _, interval := range intervals {
		if daterange.Overlaps(rng.Start, rng.End, interval.Start, interval.End) {
			conflicts = append(conflicts, interval)
		}
	}

	return conflicts
}
