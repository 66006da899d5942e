// Package timezone resolves the hotel's local time. The zone comes from APP_TIMEZONE and defaults to UTC.
package timezone

import (
	"sync"
	"time"

	"lodge/config"
	"lodge/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	location *time.Location
	once     sync.Once
)

// Resolve loads an IANA zone name. Unknown or empty names resolve to UTC.
func Resolve(name string) *time.Location {
	if name == constant.Empty {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	return loc
}

// GetLocation returns the configured zone, loading it on first use.
func GetLocation() *time.Location {
	once.Do(func() {
		location = Resolve(config.Get().App.Timezone)

		log.Info().Str("location", location.String()).Msg("Application timezone initialized")
	})

	return location
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Format renders t as seen in the hotel's zone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
