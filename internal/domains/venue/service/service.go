package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Venue=MockVenueService

import (
	"context"
	"errors"
	"fmt"

	"lodge/config"
	"lodge/infras/otel"
	availabilityModel "lodge/internal/domains/availability/model"
	availabilityService "lodge/internal/domains/availability/service"
	mediaService "lodge/internal/domains/media/service"
	"lodge/internal/domains/venue/model"
	"lodge/internal/domains/venue/model/dto"
	"lodge/internal/domains/venue/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/clock"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/slug"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetVenue    = "venue:get"
	cacheGetAllVenue = "venue:gets"
	cacheCountVenue  = "venue:count"
)

type Venue interface {
	Create(ctx context.Context, req dto.CreateVenueRequest) (dto.VenueResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVenuesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VenueResponse, error)
	Update(ctx context.Context, req dto.UpdateVenueRequest, id string) error
	Deactivate(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, id string, req dto.CheckAvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo    repository.Venue
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	media   mediaService.Media
	clock   clock.Clock
	checker availabilityService.Checker
}

func New(repo repository.Venue, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, media mediaService.Media, clock clock.Clock, checker availabilityService.Checker) Venue {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		media:   media,
		clock:   clock,
		checker: checker,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVenueRequest) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	venueSlug, err := slug.Unique(ctx, req.Name, s.slugTaken(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate venue slug")

		return res, slugFailure(err)
	}

	imageURL := constant.Empty
	if req.Image != nil {
		imageURL, err = s.media.Store(ctx, model.ImageDirectory, req.ImageFile, req.Image)
		if err != nil {
			return res, err
		}
	}

	venue := req.ToModel(shared.Actor(ctx), venueSlug, imageURL, s.clock.Now())

	if err = s.repo.Insert(ctx, venue); err != nil {
		log.Error().Err(err).Msg("failed to insert venue")

		if imageURL != constant.Empty {
			_ = s.media.Remove(context.WithoutCancel(ctx), model.ImageDirectory, imageURL)
		}

		return res, fmt.Errorf("failed to insert venue: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllVenue)
		shared.InvalidateCaches(c, s.cache, cacheCountVenue)
	}()

	res.FromModel(venue)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVenuesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVenue, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venues")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venues")

		return res, fmt.Errorf("failed to get venues: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venues to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVenue, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venue count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count venues")

		return res, fmt.Errorf("failed to count venues: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetVenue, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for venue")

		return res, nil
	}

	venue, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return res, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	res.FromModel(venue)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVenueRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return fmt.Errorf("failed to get venue: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("venue not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))
	updatedFields[constant.FieldModifiedAt] = s.clock.Now()

	if req.Name != constant.Empty && req.Name != current.Name {
		venueSlug, err := slug.Unique(ctx, req.Name, s.slugTaken(current.ID))
		if err != nil {
			log.Error().Err(err).Msg("failed to generate venue slug")

			return slugFailure(err)
		}

		updatedFields[model.FieldSlug] = venueSlug
	}

	imageURL := constant.Empty
	if req.Image != nil {
		imageURL, err = s.media.Store(ctx, model.ImageDirectory, req.ImageFile, req.Image)
		if err != nil {
			return err
		}

		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update venue")

		if imageURL != constant.Empty {
			_ = s.media.Remove(context.WithoutCancel(ctx), model.ImageDirectory, imageURL)
		}

		return fmt.Errorf("failed to update venue: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		// the previous photo is only dropped once the new URL is committed
		if imageURL != constant.Empty && current.Image != constant.Empty {
			_ = s.media.Remove(c, model.ImageDirectory, current.Image)
		}

		s.invalidate(c, current.ID)
	}()

	return nil
}

// Deactivate hides a venue from new bookings. Venues are never removed because reservations reference them.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !exist {
		return failure.NotFound("venue not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate venue")

		return fmt.Errorf("failed to deactivate venue: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

// CheckAvailability answers without locking. Reservation creation re-checks under the venue lock.
func (s *serviceImpl) CheckAvailability(ctx context.Context, id string, req dto.CheckAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rng, err := req.Range()
	if err != nil {
		return res, err
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if venue exists")

		return res, fmt.Errorf("failed to check if venue exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("venue not found") // nolint:wrapcheck
	}

	resource := availabilityModel.Venue(id)

	available, err := s.checker.IsAvailable(ctx, resource, rng)
	if err != nil {
		return res, fmt.Errorf("failed to check venue availability: %w", err)
	}

	res = dto.AvailabilityResponse{
		Available: available,
		VenueID:   id,
		StartDate: rng.Start.Format(constant.DateOnlyFormat),
		EndDate:   rng.End.Format(constant.DateOnlyFormat),
		Days:      rng.Nights(),
		Message:   "Venue is available for selected dates",
	}

	if !available {
		res.Message = resource.UnavailableMessage()
	}

	return res, nil
}

func (s *serviceImpl) slugTaken(excludeID string) slug.Taken {
	return func(ctx context.Context, candidate string) (bool, error) {
		filter := gDto.FilterGroup{}
		filter.AppendIfPresent(
			gDto.Filter{Field: model.FieldSlug, Value: candidate, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		)

		exist, err := s.repo.Exist(ctx, filter)
		if err != nil {
			return false, fmt.Errorf("failed to check venue slug: %w", err)
		}

		return exist, nil
	}
}

func slugFailure(err error) error {
	if errors.Is(err, slug.ErrEmptySlug) {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	return fmt.Errorf("failed to generate venue slug: %w", err)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetVenue, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete venue from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllVenue)
	shared.InvalidateCaches(ctx, s.cache, cacheCountVenue)
}
