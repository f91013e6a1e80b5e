package main

import (
	"context"

	"resort/config"
	"resort/di"
	"resort/helper"
	"resort/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	data, err := helper.LoadSeed(cfg.Seed.File)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Seed.File).Msg("Failed to load seed file")
	}

	if _, err = di.InitializeSeeder().Run(context.Background(), data); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}
