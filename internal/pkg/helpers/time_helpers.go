package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the DD-MM-YYYY wire format used by student, teacher and semester records
const DateLayout = "02-01-2006"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a DD-MM-YYYY date
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must use the DD-MM-YYYY format", value)
	}
	return t, nil
}

// FormatDate renders t as DD-MM-YYYY
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate accepts DD-MM-YYYY, D/M/YYYY, DD/MM/YYYY or YYYY-MM-DD and returns DD-MM-YYYY.
// Spreadsheet imports use it; API payloads are validated with ParseDate.
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	layouts := []string{DateLayout, "2/1/2006", "02/01/2006", "2006-01-02", time.RFC3339}
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return FormatDate(t), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", value)
}
