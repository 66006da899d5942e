package config_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/config"
)

func TestPostgresNode_DSN(t *testing.T) {
	node := config.PostgresNode{
		Host:     "db.internal",
		Port:     "5432",
		Username: "lodge",
		Password: "s3cr#t",
		Name:     "bookings",
		Timezone: "Asia/Jakarta",
		SSLMode:  "require",
	}

	t.Run("prefix and session options", func(t *testing.T) {
		parsed, err := url.Parse(node.DSN("staging_", nil))
		require.NoError(t, err)

		password, _ := parsed.User.Password()

		assert.Equal(t, "s3cr#t", password)
		assert.Equal(t, "db.internal:5432", parsed.Host)
		assert.Equal(t, "/staging_bookings", parsed.Path)
		assert.Equal(t, "require", parsed.Query().Get("sslmode"))
		assert.Equal(t, "Asia/Jakarta", parsed.Query().Get("timezone"))
	})

	t.Run("extra values", func(t *testing.T) {
		parsed, err := url.Parse(node.DSN("", url.Values{"x-migrations-table": {"lodge_migrations"}}))
		require.NoError(t, err)

		assert.Equal(t, "/bookings", parsed.Path)
		assert.Equal(t, "lodge_migrations", parsed.Query().Get("x-migrations-table"))
	})

	t.Run("empty options are omitted", func(t *testing.T) {
		parsed, err := url.Parse(config.PostgresNode{Host: "localhost", Port: "5432", Name: "lodge"}.DSN("", nil))
		require.NoError(t, err)

		assert.Empty(t, parsed.RawQuery)
	})
}
