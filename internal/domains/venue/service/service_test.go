package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	availabilityMocks "lodge/internal/domains/availability/mocks"
	availabilityModel "lodge/internal/domains/availability/model"
	mediaMocks "lodge/internal/domains/media/mocks"
	venueMocks "lodge/internal/domains/venue/mocks"
	"lodge/internal/domains/venue/model"
	"lodge/internal/domains/venue/model/dto"
	"lodge/internal/domains/venue/service"
	cacheMocks "lodge/shared/cache/mocks"
	clockMocks "lodge/shared/clock/mocks"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/money"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *venueMocks.MockVenue
	cache   *cacheMocks.MockRedisCache
	media   *mediaMocks.MockMedia
	checker *availabilityMocks.MockChecker
	svc     service.Venue
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    venueMocks.NewMockVenue(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		media:   mediaMocks.NewMockMedia(ctrl),
		checker: availabilityMocks.NewMockChecker(ctrl),
	}

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel(), f.media, clockMocks.NewClock(now), f.checker)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestVenueService_Create(t *testing.T) {
	f := newFixture(t)

	// "grand-hall" is taken, the next candidate is free
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, venue model.Venue) error {
		assert.Equal(t, "grand-hall-2", venue.Slug)
		assert.True(t, venue.Active)
		assert.Equal(t, now, venue.CreatedAt)

		return nil
	})

	res, err := f.svc.Create(context.Background(), dto.CreateVenueRequest{
		Name:        "Grand Hall",
		Description: "Ballroom",
		Price:       money.MustParse("500.00"),
		Capacity:    200,
		Size:        "400 sqm",
		Amenities:   []string{"stage"},
	})
	require.NoError(t, err)
	assert.Equal(t, "grand-hall-2", res.Slug)
	assert.Equal(t, []string{}, res.Images)
}

func TestVenueService_CreateRemovesImageOnInsertFailure(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.media.EXPECT().Store(gomock.Any(), model.ImageDirectory, gomock.Any(), gomock.Any()).Return("https://cdn.example.com/venues/a.png", nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	f.media.EXPECT().Remove(gomock.Any(), model.ImageDirectory, "https://cdn.example.com/venues/a.png").Return(nil)

	req := dto.CreateVenueRequest{Name: "Garden", Description: "Outdoor", Price: money.MustParse("250.00"), Capacity: 80, Size: "1 ha", Amenities: []string{"lawn"}}
	req.Image = &multipart.FileHeader{Filename: "a.png"}

	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestVenueService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(context.Background(), dto.UpdateVenueRequest{}, "venue-1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown venue", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{}, nil)

		err := f.svc.Update(context.Background(), dto.UpdateVenueRequest{Description: "new"}, "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rename regenerates the slug", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Venue{ID: "venue-1", Name: "Garden", Slug: "garden"}, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "rose-garden", fields[model.FieldSlug])
			assert.Equal(t, now, fields["modified_at"])

			return nil
		})

		require.NoError(t, f.svc.Update(context.Background(), dto.UpdateVenueRequest{Name: "Rose Garden"}, "venue-1"))
	})
}

func TestVenueService_Deactivate(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
		assert.Equal(t, false, fields[model.FieldActive])

		return nil
	})

	require.NoError(t, f.svc.Deactivate(context.Background(), "venue-1"))
}

func TestVenueService_CheckAvailability(t *testing.T) {
	t.Run("single event occupies one day", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.checker.EXPECT().IsAvailable(gomock.Any(), availabilityModel.Venue("venue-1"), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ availabilityModel.Resource, rng daterange.Range, _ ...string) (bool, error) {
				assert.Equal(t, "2025-06-10", rng.Start.Format(time.DateOnly))
				assert.Equal(t, "2025-06-11", rng.End.Format(time.DateOnly))

				return false, nil
			})

		res, err := f.svc.CheckAvailability(context.Background(), "venue-1", dto.CheckAvailabilityRequest{
			EventSchedule: dto.EventSchedule{EventType: "single", EventDate: "2025-06-10"},
		})
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, 1, res.Days)
		assert.Equal(t, availabilityModel.MessageVenueUnavailable, res.Message)
	})

	t.Run("single event without a date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CheckAvailability(context.Background(), "venue-1", dto.CheckAvailabilityRequest{
			EventSchedule: dto.EventSchedule{EventType: "single"},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown venue", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.CheckAvailability(context.Background(), "missing", dto.CheckAvailabilityRequest{
			EventSchedule: dto.EventSchedule{EventType: "multi", CheckInDate: "2025-06-10", CheckOutDate: "2025-06-12"},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
