//go:build wireinject
// +build wireinject

package di

import (
	"resort/config"
	"resort/helper"
	"resort/infras/jwt"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/infras/redis"
	"resort/infras/s3"
	"resort/infras/snowflake"
	"resort/internal/events"
	"resort/permissions"
	"resort/shared/cache"
	gRepo "resort/shared/repository"
	"resort/transport/http"
	"resort/transport/http/middleware"
	"resort/transport/http/router"

	"github.com/google/wire"

	authService "resort/internal/domains/auth/service"
	bookingRepository "resort/internal/domains/booking/repository"
	bookingService "resort/internal/domains/booking/service"
	foodRepository "resort/internal/domains/food/repository"
	foodService "resort/internal/domains/food/service"
	invoiceRepository "resort/internal/domains/invoice/repository"
	invoiceService "resort/internal/domains/invoice/service"
	resortRepository "resort/internal/domains/resort/repository"
	resortService "resort/internal/domains/resort/service"
	roomRepository "resort/internal/domains/room/repository"
	roomService "resort/internal/domains/room/service"
	userRepository "resort/internal/domains/user/repository"
	userService "resort/internal/domains/user/service"
	authHandler "resort/internal/handlers/auth"
	bookingHandler "resort/internal/handlers/booking"
	foodHandler "resort/internal/handlers/food"
	invoiceHandler "resort/internal/handlers/invoice"
	resortHandler "resort/internal/handlers/resort"
	roomHandler "resort/internal/handlers/room"
	userHandler "resort/internal/handlers/user"
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
	kafka.New,
	s3.New,
	snowflake.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var repositories = wire.NewSet(
	userRepository.New,
	resortRepository.New,
	roomRepository.New,
	foodRepository.New,
	bookingRepository.New,
	invoiceRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	resortService.New,
	roomService.New,
	foodService.New,
	bookingService.New,
	invoiceService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	resortHandler.New,
	roomHandler.New,
	foodHandler.New,
	bookingHandler.New,
	invoiceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *events.Consumer {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		s3.New,
		cache.NewRedisCache,
		invoiceRepository.New,
		invoiceService.New,
		events.NewConsumer,
	)

	return &events.Consumer{}
}

func InitializeSeeder() *helper.Seeder {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		repositories,
		helper.NewSeeder,
	)

	return &helper.Seeder{}
}
