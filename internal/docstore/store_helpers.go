package docstore

import (
	"errors"
	"time"
)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// commentValue maps an optional comment to its column value. A nil comment
// stores NULL while an empty comment stores the empty string; serializers
// treat the two differently, so the distinction must survive a round trip.
func commentValue(comment *string) any {
	if comment == nil {
		return nil
	}
	return *comment
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
