package database

import (
	"context"
	"fmt"
	"resort/config"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnection = 10
	maxOpenConnection = 10
)

// Connection holds the read and write pools of the configured driver.
type Connection struct {
	Driver string
	Read   *sqlx.DB
	Write  *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	read, write := cfg.Endpoints()

	var readDSN, writeDSN string

	switch cfg.DB.Driver {
	case config.DriverMySQL:
		readDSN = mysqlDSN(cfg, read)
		writeDSN = mysqlDSN(cfg, write)
	case config.DriverPostgres:
		readDSN = postgresDSN(cfg, read)
		writeDSN = postgresDSN(cfg, write)
	default:
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("Unsupported database driver")
	}

	conn := &Connection{
		Driver: cfg.DB.Driver,
		Read:   connect(cfg, "read", readDSN, read),
		Write:  connect(cfg, "write", writeDSN, write),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("Failed to connect to database")
	}

	return conn
}

func connect(cfg *config.Config, name, dsn string, endpoint config.DBEndpoint) *sqlx.DB {
	for retry := range max(cfg.DB.MaxRetry, 1) {
		sqlDB, err := sqlx.Connect(cfg.DB.Driver, dsn)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("driver", cfg.DB.Driver).
				Str("host", endpoint.Host).
				Str("port", endpoint.Port).
				Str("dbName", cfg.DBName(endpoint.Name)).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(maxIdleConnection)
			sqlDB.SetMaxOpenConns(maxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("driver", cfg.DB.Driver).
			Str("host", endpoint.Host).
			Str("port", endpoint.Port).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.RetryWaitTime) * time.Second)
	}

	return nil
}

// BeginTx starts a transaction on the write pool.
func (c *Connection) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return tx, nil
}

// Monitor pings both pools every interval until ctx is done. database/sql
// replaces broken connections on the next use, so failures are only logged.
func (c *Connection) Monitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.ping(ctx)
		}
	}
}

func (c *Connection) ping(ctx context.Context) {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if err := db.PingContext(ctx); err != nil {
			log.Error().Err(err).Str("name", name).Str("driver", c.Driver).Msg("Database ping failed")

			continue
		}

		log.Debug().Str("name", name).Str("driver", c.Driver).Msg("Database ping succeeded")
	}
}

// Close closes both pools.
func (c *Connection) Close() error {
	if err := c.Read.Close(); err != nil {
		return fmt.Errorf("failed to close read pool: %w", err)
	}

	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("failed to close write pool: %w", err)
	}

	return nil
}

// Ping checks the write pool.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
