//go:build wireinject
// +build wireinject

package di

import (
	"lodge/config"
	"lodge/infras/amqp"
	"lodge/infras/jwt"
	"lodge/infras/kafka"
	"lodge/infras/mail"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/infras/s3"
	infraScheduler "lodge/infras/scheduler"
	"lodge/permissions"
	"lodge/shared/cache"
	"lodge/shared/clock"
	gRepo "lodge/shared/repository"
	"lodge/transport/event"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"
	"lodge/transport/scheduler"

	"github.com/google/wire"

	authService "lodge/internal/domains/auth/service"
	availabilityRepository "lodge/internal/domains/availability/repository"
	availabilityService "lodge/internal/domains/availability/service"
	bookingRepository "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	contactRepository "lodge/internal/domains/contact/repository"
	contactService "lodge/internal/domains/contact/service"
	mediaService "lodge/internal/domains/media/service"
	notificationService "lodge/internal/domains/notification/service"
	reservationRepository "lodge/internal/domains/reservation/repository"
	reservationService "lodge/internal/domains/reservation/service"
	roomRepository "lodge/internal/domains/room/repository"
	roomService "lodge/internal/domains/room/service"
	userRepository "lodge/internal/domains/user/repository"
	userService "lodge/internal/domains/user/service"
	venueRepository "lodge/internal/domains/venue/repository"
	venueService "lodge/internal/domains/venue/service"

	authHandler "lodge/internal/handlers/auth"
	bookingHandler "lodge/internal/handlers/booking"
	contactHandler "lodge/internal/handlers/contact"
	reservationHandler "lodge/internal/handlers/reservation"
	roomHandler "lodge/internal/handlers/room"
	userHandler "lodge/internal/handlers/user"
	venueHandler "lodge/internal/handlers/venue"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	mail.New,
	kafka.New,
	amqp.New,
	infraScheduler.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.Revocation), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
	gRepo.NewTransaction,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var inventoryDomain = wire.NewSet(
	mediaService.New,
	roomRepository.New,
	roomService.New,
	venueRepository.New,
	venueService.New,
	availabilityRepository.New,
	availabilityService.New,
)

var reservationDomain = wire.NewSet(
	notificationService.New,
	bookingRepository.New,
	bookingService.New,
	reservationRepository.New,
	reservationRepository.NewLine,
	reservationService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var domains = wire.NewSet(
	authDomain,
	inventoryDomain,
	reservationDomain,
	contactDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	venueHandler.New,
	bookingHandler.New,
	reservationHandler.New,
	contactHandler.New,
	router.New,
)

var workers = wire.NewSet(
	scheduler.New,
	event.New,
	wire.Struct(new(http.Workers), "*"),
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		workers,
		http.New,
	)

	return &http.HTTP{}
}
