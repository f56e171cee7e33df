package postgres

//nolint:revive
import (
	"fmt"
	"net/url"
	"time"

	"bayleaf/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	driverName                = "postgres"
)

// Connection is the table store handle shared by every repository. A nil *Connection
// means the store is not configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New returns nil, after a single warning, when the endpoint or the access key is missing.
func New(config *config.Config) *Connection {
	if !config.StoreConfigured() {
		log.Warn().
			Bool("url_set", config.DB.Postgres.URL != "").
			Bool("access_key_set", config.DB.Postgres.AccessKey != "").
			Msg("Table store is not configured, running in demo mode")

		return nil
	}

	write := CreatePostgresConnection("write", config.DB.Postgres.URL, *config)
	read := write

	if config.DB.Postgres.ReadURL != "" {
		read = CreatePostgresConnection("read", config.DB.Postgres.ReadURL, *config)
	}

	return &Connection{
		Read:  read,
		Write: write,
	}
}

// NewFromDB wraps an already opened handle for both reads and writes.
func NewFromDB(db *sqlx.DB) *Connection {
	return &Connection{Read: db, Write: db}
}

// Close releases both handles. Closing a nil Connection is a no-op.
func (c *Connection) Close() error {
	if c == nil {
		return nil
	}

	var err error
	if c.Write != nil {
		err = c.Write.Close()
	}

	if c.Read != nil && c.Read != c.Write {
		if readErr := c.Read.Close(); readErr != nil && err == nil {
			err = readErr
		}
	}

	return err //nolint:wrapcheck
}

// Descriptor injects the access key as the password of the endpoint URL.
func Descriptor(endpoint, accessKey string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to parse table store url: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("table store url %q has no scheme or host", parsed.Redacted())
	}

	username := ""
	if parsed.User != nil {
		username = parsed.User.Username()
	}

	parsed.User = url.UserPassword(username, accessKey)

	return parsed.String(), nil
}

// CreatePostgresConnection connects with retries. When every attempt fails the handle is
// still opened lazily, so calls fail per request instead of switching to demo mode.
func CreatePostgresConnection(name, endpoint string, config config.Config) *sqlx.DB {
	descriptor, err := Descriptor(endpoint, config.DB.Postgres.AccessKey)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Invalid table store url")

		descriptor = endpoint
	}

	maxRetry := max(config.DB.Postgres.MaxRetry, 1)
	waitTime := config.DB.Postgres.RetryWaitTime

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(driverName, descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			configure(sqlDB)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		if retry+1 < maxRetry {
			time.Sleep(time.Duration(waitTime) * time.Second)
		}
	}

	log.Error().Str("name", name).Msg("Database unreachable, requests will fail until it recovers")

	sqlDB, err := sqlx.Open(driverName, descriptor)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to open database handle")

		return nil
	}

	configure(sqlDB)

	return sqlDB
}

func configure(db *sqlx.DB) {
	db.SetMaxIdleConns(postgresMaxIdleConnection)
	db.SetMaxOpenConns(postgresMaxOpenConnection)
}
