package logger

import (
	"io"
	"os"
	"time"

	"lodge/config"
	"lodge/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger. SetLogLevel switches to JSON outside development.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	configure(config, os.Stdout)
}

func configure(config *config.Config, out io.Writer) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == constant.Empty {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)

	if config.Server.Env != constant.Empty && config.Server.Env != constant.ServerEnvDevelopment {
		log.Logger = zerolog.New(out).With().
			Timestamp().
			Str("service", config.App.Name).
			Str("env", config.Server.Env).
			Logger()
	}

	log.Debug().Str("loglevel", level.String()).Msg("Log level configured")
}
