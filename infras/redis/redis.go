package redis

import (
	"context"
	"net"
	"time"

	"lodge/config"

	"github.com/cenkalti/backoff/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const retryWait = time.Second

// Options maps the cache config onto client options.
func Options(config *config.Config) *goRedis.Options {
	redis := config.Cache.Redis

	return &goRedis.Options{
		Addr:        net.JoinHostPort(redis.Primary.Host, redis.Primary.Port),
		Password:    redis.Primary.Password,
		DB:          redis.Primary.DB,
		PoolSize:    redis.PoolSize,
		DialTimeout: time.Duration(redis.DialTimeoutSeconds) * time.Second,
	}
}

func New(config *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(config))

	if err := Ping(context.Background(), client, uint(max(config.Cache.Redis.MaxRetry, 1))); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", config.Cache.Redis.Primary.DB).
		Str("addr", client.Options().Addr).
		Msg("Connected to Redis")

	return client
}

// Ping waits until the server answers PING or maxTries is exhausted.
func Ping(ctx context.Context, client *goRedis.Client, maxTries uint) error {
	_, err := backoff.Retry(ctx, func() (string, error) {
		return client.Ping(ctx).Result()
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(retryWait)),
		backoff.WithMaxTries(maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().Err(err).Dur("retry_in", next).Msg("Redis not ready, retrying")
		}),
	)

	return err
}
