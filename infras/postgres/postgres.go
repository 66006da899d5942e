package postgres

//nolint:revive
import (
	"context"
	"time"

	"lodge/config"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Pool holds the database/sql pool limits applied to every connection.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Retry bounds how long Connect waits for the server to come up.
type Retry struct {
	MaxTries uint
	Wait     time.Duration
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	pool := Pool{
		MaxOpenConns:    pg.MaxOpenConns,
		MaxIdleConns:    pg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(pg.ConnMaxLifetimeMinutes) * time.Minute,
	}

	retry := Retry{
		MaxTries: uint(max(pg.MaxRetry, 1)),
		Wait:     time.Duration(pg.RetryWaitTime) * time.Second,
	}

	ctx := context.Background()

	write, err := Connect(ctx, "write", pg.Write.DSN(pg.Prefix, nil), pool, retry)
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Write.Host).Msg("Failed to connect to write database")
	}

	read, err := Connect(ctx, "read", pg.Read.DSN(pg.Prefix, nil), pool, retry)
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Read.Host).Msg("Failed to connect to read database")
	}

	return &Connection{Read: read, Write: write}
}

// Connect opens a pool to dsn, retrying at a constant interval until the server answers.
func Connect(ctx context.Context, name, dsn string, pool Pool, retry Retry) (*sqlx.DB, error) {
	attempt := 0

	db, err := backoff.Retry(ctx, func() (*sqlx.DB, error) {
		attempt++

		return sqlx.ConnectContext(ctx, driverName, dsn)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(retry.Wait)),
		backoff.WithMaxTries(retry.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().
				Err(err).
				Str("name", name).
				Int("attempt", attempt).
				Dur("retry_in", next).
				Msg("Failed connecting to database, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	log.Info().Str("name", name).Int("attempts", attempt).Msg("Connected to database")

	return db, nil
}
