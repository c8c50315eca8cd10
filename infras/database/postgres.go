package database

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"resort/config"

	_ "github.com/lib/pq"
)

func postgresDSN(cfg *config.Config, endpoint config.DBEndpoint) string {
	sslMode := endpoint.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(endpoint.Username),
		url.QueryEscape(endpoint.Password),
		net.JoinHostPort(endpoint.Host, endpoint.Port),
		cfg.DBName(endpoint.Name),
		sslMode,
	)

	if endpoint.Timezone != "" {
		dsn += "&timezone=" + url.QueryEscape(endpoint.Timezone)
	}

	return dsn
}
