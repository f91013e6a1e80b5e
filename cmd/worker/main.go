package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"resort/config"
	"resort/di"
	"resort/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, the booking event worker has nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	if err := worker.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Booking event consumer stopped")
	}

	log.Info().Msg("Worker shut down")
}
