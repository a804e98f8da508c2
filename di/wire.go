//go:build wireinject
// +build wireinject

package di

import (
	"homestay/config"
	"homestay/infras/dialogflow"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/infras/redis"
	"homestay/infras/s3"
	"homestay/infras/sheets"
	"homestay/shared/cache"
	"homestay/transport/http"
	"homestay/transport/http/middleware"
	"homestay/transport/http/router"

	"homestay/internal/domains/booking/media"
	bookingRepository "homestay/internal/domains/booking/repository"
	bookingService "homestay/internal/domains/booking/service"
	intentService "homestay/internal/domains/intent/service"

	bookingHandler "homestay/internal/handlers/booking"
	webhookHandler "homestay/internal/handlers/webhook"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	dialogflow.New,
	sheets.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var intentDomain = wire.NewSet(
	intentService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	media.New,
	bookingService.New,
)

var domains = wire.NewSet(
	intentDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	webhookHandler.New,
	bookingHandler.New,
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
