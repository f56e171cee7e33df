package router

import (
	"bayleaf/infras/metrics"
	"bayleaf/internal/handlers/auth"
	"bayleaf/internal/handlers/contactform"
	"bayleaf/internal/handlers/contactmessage"
	"bayleaf/internal/handlers/health"
	"bayleaf/internal/handlers/menuitem"
	"bayleaf/internal/handlers/reservation"
	"bayleaf/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "bayleaf/docs" // swagger docs
)

type DomainHandlers struct {
	Auth           auth.Handler
	ContactForm    contactform.Handler
	Reservation    reservation.Handler
	ContactMessage contactmessage.Handler
	MenuItem       menuitem.Handler
	Health         health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	metrics        *metrics.Metrics
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		r.app.Tracing,
		r.app.Metrics,
		r.app.Recover,
		r.app.CORS(),
	)

	r.DomainHandlers.Health.Router(router)
	router.Handle("/metrics", r.metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.RateLimit())

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.ContactForm.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.ContactMessage.Router(routerGroup)
		r.DomainHandlers.MenuItem.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, metrics *metrics.Metrics) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		metrics:        metrics,
	}
}
