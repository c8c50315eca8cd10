package main

import (
	"context"
	"os/signal"
	"resort/di"
	"resort/internal/handlers/event"
	"resort/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	worker := di.InitializeWorker()

	logger.SetLogLevel(worker.Config)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := event.New(worker.Otel)

	log.Info().Str("topic", worker.Config.Kafka.Topic).Msg("Starting booking event consumer.")

	worker.Kafka.Consume(ctx, worker.Config.Kafka.ConsumerGroup, worker.Config.Kafka.Topic, handler.BookingEvent)

	if err := worker.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka client")
	}

	if err := worker.Otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to shut down tracer provider")
	}
}
