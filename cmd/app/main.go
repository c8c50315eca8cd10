package main

import (
	"context"
	"resort/config"
	"resort/di"
	"resort/helper"
	"resort/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

// @title Resort Booking API
// @version 1.0
// @description Room catalog, bookings and account administration for the resort.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bootstrap := cfg.App.BootstrapAdmin
	if err := app.User.EnsureAdmin(ctx, bootstrap.Username, bootstrap.Password); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	go app.DB.Monitor(ctx, time.Duration(cfg.DB.PingIntervalSeconds)*time.Second)

	app.HTTP.Serve()

	cancel()

	if err := app.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka client")
	}

	if err := app.Otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to shut down tracer provider")
	}

	if err := app.DB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}
}
