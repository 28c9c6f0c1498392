package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"radio-charts/internal/models"
)

// Timestamp accepts "2014-10-21T18:41:00" or an RFC 3339 value in JSON bodies.
type Timestamp time.Time

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", models.ErrInvalidWindow)
	}
	parsed, err := parseTime(s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

func (t Timestamp) Time() time.Time { return time.Time(t) }

func parseTime(s string) (time.Time, error) {
	return models.ParseTimestamp(s)
}

// parseChannels flattens the channels query values. Each value may be a
// single name, a comma separated list, or a list literal such as
// ['Channel2', 'Channel3'].
func parseChannels(values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "[") {
			names, err := parseListLiteral(v)
			if err != nil {
				return nil, err
			}
			out = append(out, names...)
			continue
		}
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func parseListLiteral(v string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(strings.ReplaceAll(v, "'", `"`)), &names); err != nil {
		return nil, fmt.Errorf("invalid channels list %q: %w", v, models.ErrInvalidChannelSet)
	}
	return names, nil
}

// parseLimit reads the limit parameter. Missing means def; zero or anything
// above max is capped to max. Zero is read as "no limit" and never yields an
// empty report.
func parseLimit(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid limit %q: %w", raw, models.ErrInvalidInput)
	}
	if n < 0 {
		return 0, fmt.Errorf("limit must not be negative, got %d: %w", n, models.ErrInvalidInput)
	}
	if n == 0 || n > max {
		return max, nil
	}
	return n, nil
}

// parsePeriod reads a Go duration ("168h") or a whole number of days ("7").
// Missing returns zero, which leaves the engine default in place.
func parsePeriod(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	var d time.Duration
	if days, err := strconv.Atoi(raw); err == nil {
		d = time.Duration(days) * 24 * time.Hour
	} else if d, err = time.ParseDuration(raw); err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", raw, models.ErrInvalidInput)
	}
	if d <= 0 {
		return 0, fmt.Errorf("period must be positive, got %s: %w", raw, models.ErrInvalidWindow)
	}
	return d, nil
}
