package timezone

import (
	"time"

	"bayleaf/config"
	"bayleaf/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	Setup(config.Get().App.Timezone)
}

// Setup loads the named location, falling back to UTC.
func Setup(name string) {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		appLocation = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Europe/Berlin', 'UTC'")
		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", name).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Today returns the current calendar date as YYYY-MM-DD.
func Today() string {
	return Now().Format(constant.ISODateFormat)
}

// IsPastDate reports whether an ISO date lies before today. Unparseable input counts as past.
func IsPastDate(date string) bool {
	d, err := Parse(constant.ISODateFormat, date)
	if err != nil {
		return true
	}

	return date != Today() && d.Before(Now())
}
