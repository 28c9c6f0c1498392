package models

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone read as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// ParseTimestamp reads play and window bounds such as "2014-10-21T18:41:00"
// or any RFC 3339 value. The result is always in UTC. A missing or malformed
// value is ErrInvalidWindow, since every timestamp bounds a play or a window.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("timestamp is required: %w", ErrInvalidWindow)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, ErrInvalidWindow)
}
