//go:build wireinject
// +build wireinject

package di

import (
	"bayleaf/config"
	"bayleaf/infras/jwt"
	"bayleaf/infras/kafka"
	"bayleaf/infras/metrics"
	"bayleaf/infras/otel"
	"bayleaf/infras/postgres"
	"bayleaf/infras/redis"
	"bayleaf/infras/s3"
	"bayleaf/shared/cache"
	"bayleaf/transport/http"
	"bayleaf/transport/http/middleware"
	"bayleaf/transport/http/router"

	authService "bayleaf/internal/domains/auth/service"
	"bayleaf/internal/domains/contactform/notifier"
	contactFormService "bayleaf/internal/domains/contactform/service"
	contactMessageRepository "bayleaf/internal/domains/contactmessage/repository"
	contactMessageService "bayleaf/internal/domains/contactmessage/service"
	menuItemRepository "bayleaf/internal/domains/menuitem/repository"
	menuItemService "bayleaf/internal/domains/menuitem/service"
	reservationRepository "bayleaf/internal/domains/reservation/repository"
	reservationService "bayleaf/internal/domains/reservation/service"

	authHandler "bayleaf/internal/handlers/auth"
	contactFormHandler "bayleaf/internal/handlers/contactform"
	contactMessageHandler "bayleaf/internal/handlers/contactmessage"
	healthHandler "bayleaf/internal/handlers/health"
	menuItemHandler "bayleaf/internal/handlers/menuitem"
	reservationHandler "bayleaf/internal/handlers/reservation"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	metrics.New,
	wire.Struct(new(http.Resources), "*"),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var contactMessageDomain = wire.NewSet(
	contactMessageRepository.New,
	contactMessageService.New,
)

var menuItemDomain = wire.NewSet(
	menuItemRepository.New,
	menuItemService.New,
)

var contactFormDomain = wire.NewSet(
	notifier.New,
	contactFormService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	reservationDomain,
	contactMessageDomain,
	menuItemDomain,
	contactFormDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	contactFormHandler.New,
	reservationHandler.New,
	contactMessageHandler.New,
	menuItemHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
