package main

import (
	"resort/config"
	"resort/di"
	"resort/shared/logger"
)

// @title Resort Booking API
// @version 1.0
// @description Resorts, rooms, meal plans, bookings and invoices.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
