package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Layouts accepted for absolute timestamps in fixture files, most specific first
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseTimestamp parses a fixture timestamp and returns the layout it matched
func ParseTimestamp(value string) (time.Time, string, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unrecognised timestamp %q", value)
}

// ShiftTimestamp moves a timestamp by whole days and keeps its original layout.
// Empty or unparseable values are returned unchanged.
func ShiftTimestamp(value string, days int) string {
	if value == "" || days == 0 {
		return value
	}
	t, layout, err := ParseTimestamp(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("Leaving timestamp unshifted")
		return value
	}
	return t.AddDate(0, 0, days).Format(layout)
}
