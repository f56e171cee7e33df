package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"bayleaf/config"
	"bayleaf/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
	ActionStatus = "status"

	migrationSource = "file://migrations/postgres"
)

var ErrStoreNotConfigured = errors.New("table store url and access key are required to run migrations")

// ConnectionString builds the migrate database url, carrying the custom migrations table.
func ConnectionString(config *config.Config) (string, error) {
	if !config.StoreConfigured() {
		return "", ErrStoreNotConfigured
	}

	descriptor, err := postgres.Descriptor(config.DB.Postgres.URL, config.DB.Postgres.AccessKey)
	if err != nil {
		return "", fmt.Errorf("error building connection string: %w", err)
	}

	if config.DB.Postgres.MigrationTable == "" {
		return descriptor, nil
	}

	parsed, err := url.Parse(descriptor)
	if err != nil {
		return "", fmt.Errorf("error building connection string: %w", err)
	}

	query := parsed.Query()
	query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString, err := ConnectionString(config)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.New(migrationSource, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionStatus:
		version, dirty, err := mig.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", err)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration status")

		return nil
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return nil
}
