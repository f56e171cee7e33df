package redis

import (
	"context"
	"net"
	"time"

	"bayleaf/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 3 * time.Second

// New returns nil when no host is configured. A failed ping is logged but the client is
// still returned, go-redis reconnects on its own.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	if primary.Host == "" {
		log.Warn().Msg("Redis is not configured, caching and shared rate limits are disabled")

		return nil
	}

	port := primary.Port
	if port == "" {
		port = "6379"
	}

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("host", primary.Host).Msg("Failed to connect to Redis")

		return client
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", port).
		Msg("Connected to Redis")

	return client
}
