package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"lodge/config"
)

func restore(t *testing.T) {
	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	InitLogger()

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	ErrorWithStack(errors.New("insert failed"))

	assert.Contains(t, buf.String(), "insert failed")
	assert.Equal(t, "error", gjson.Get(buf.String(), "level").String())
}

func TestConfigure(t *testing.T) {
	t.Run("production logs json with service fields", func(t *testing.T) {
		restore(t)

		cfg := &config.Config{}
		cfg.Server.Env = "production"
		cfg.Server.LogLevel = "info"
		cfg.App.Name = "lodge"

		var buf bytes.Buffer
		configure(cfg, &buf)

		log.Info().Msg("reservation created")
		log.Debug().Msg("hidden")

		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		assert.Equal(t, "lodge", gjson.Get(buf.String(), "service").String())
		assert.Equal(t, "production", gjson.Get(buf.String(), "env").String())
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("unknown level falls back to trace", func(t *testing.T) {
		restore(t)

		cfg := &config.Config{}
		cfg.Server.LogLevel = "loud"

		configure(cfg, &bytes.Buffer{})

		assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	})
}
