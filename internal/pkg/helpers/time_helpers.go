package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for activity dates.
const DateLayout = "2006-01-02"

// MonthLayout is the bucket key format for monthly aggregates.
const MonthLayout = "2006-01"

// ParseDuration parses a duration string, returning a default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses an activity date in DateLayout format.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// MonthKey returns the monthly bucket key for a timestamp.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
