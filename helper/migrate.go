package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"resort/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	migrationSource = "file://migrations/%s"
)

// migrationURL builds the golang-migrate database URL for the configured driver.
func migrationURL(cfg *config.Config) (string, error) {
	_, write := cfg.Endpoints()
	address := net.JoinHostPort(write.Host, write.Port)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
			write.Username,
			write.Password,
			address,
			cfg.DBName(write.Name),
			write.SSLMode,
			cfg.DB.MigrationTable,
		), nil
	case config.DriverMySQL:
		return fmt.Sprintf("mysql://%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&x-migrations-table=%s",
			write.Username,
			write.Password,
			address,
			cfg.DBName(write.Name),
			cfg.DB.MigrationTable,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	connectionString, err := migrationURL(cfg)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.New(fmt.Sprintf(migrationSource, cfg.DB.Driver), connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(cfg *config.Config, action string) error {
	mig, err := getConnection(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", cfg.DB.Driver).Msg("Database migrations completed successfully")
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", cfg.DB.Driver).Msg("Database migrations rolled back successfully")
	case "step-up":
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", cfg.DB.Driver).Msg("Database migrations completed successfully")
	case "drop":
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", cfg.DB.Driver).Msg("Database migrations rolled back successfully")
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, "up")
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, "step-up")
}

func Down(cfg *config.Config) error {
	return Runner(cfg, "down")
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, "drop")
}
