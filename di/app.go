package di

import (
	"resort/config"
	"resort/infras/database"
	"resort/infras/kafka"
	"resort/infras/otel"
	userService "resort/internal/domains/user/service"
	"resort/transport/http"
)

// App bundles the server with the resources the process must start and release.
type App struct {
	Config *config.Config
	HTTP   *http.HTTP
	DB     *database.Connection
	Otel   otel.Otel
	Kafka  kafka.Client
	User   userService.User
}

// Worker is the event consumer process.
type Worker struct {
	Config *config.Config
	Kafka  kafka.Client
	Otel   otel.Otel
}
