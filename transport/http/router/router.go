package router

import (
	"lodge/internal/handlers/auth"
	"lodge/internal/handlers/booking"
	"lodge/internal/handlers/contact"
	"lodge/internal/handlers/reservation"
	"lodge/internal/handlers/room"
	"lodge/internal/handlers/user"
	"lodge/internal/handlers/venue"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Room        room.Handler
	Venue       venue.Handler
	Booking     booking.Handler
	Reservation reservation.Handler
	Contact     contact.Handler
}

// routable is satisfied by every domain handler.
type routable interface {
	Router(router chi.Router)
}

func (d *DomainHandlers) all() []routable {
	return []routable{&d.Auth, &d.User, &d.Room, &d.Venue, &d.Booking, &d.Reservation, &d.Contact}
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain under the versioned prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		for _, handler := range r.DomainHandlers.all() {
			handler.Router(routerGroup)
		}
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
