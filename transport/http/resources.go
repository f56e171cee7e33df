package http

import (
	"errors"
	"io"

	"bayleaf/infras/kafka"
	"bayleaf/infras/postgres"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Resources are the client connections released once the server has stopped.
// Any of them may be nil when the matching backend is not configured.
type Resources struct {
	Postgres *postgres.Connection
	Redis    *goRedis.Client
	Kafka    kafka.Client
}

func (r Resources) closers() map[string]io.Closer {
	closers := map[string]io.Closer{}

	if r.Postgres != nil {
		closers["postgres"] = r.Postgres
	}

	if r.Redis != nil {
		closers["redis"] = r.Redis
	}

	if r.Kafka != nil {
		closers["kafka"] = r.Kafka
	}

	return closers
}

// Close closes every configured client, keeps going past failures and returns them joined.
func (r Resources) Close() error {
	var errs []error

	for name, closer := range r.closers() {
		if err := closer.Close(); err != nil {
			log.Error().Err(err).Str("client", name).Msg("Failed to close client")

			errs = append(errs, err)

			continue
		}

		log.Info().Str("client", name).Msg("Closed client")
	}

	return errors.Join(errs...)
}
