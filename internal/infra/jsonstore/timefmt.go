package jsonstore

import (
	"fmt"
	"time"
)

// layouts accepted when reading timestamps. RFC 3339 is what Save writes;
// the naive forms are plain ISO-8601 without a zone offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// parseTime parses an ISO-8601 timestamp. Values without an offset are
// interpreted in local time.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
