package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Data sets selectable for export.
const (
	DataTypeMeasurements = "measurements"
	DataTypeContinuous   = "continuous"
	DataTypeCampaign     = "campaign"
)

// Filters narrows collections by region, time window, level and data set.
// Zero values mean "no constraint".
type Filters struct {
	Region   string
	From     *time.Time
	To       *time.Time
	Level    Level
	DataType string
}

// FiltersFromQuery parses the query parameters used by both the browser API and the backend.
// Dates may be RFC 3339 instants or plain YYYY-MM-DD days.
func FiltersFromQuery(q url.Values) (Filters, error) {
	var f Filters

	if region := strings.TrimSpace(q.Get("region")); region != "" && !strings.EqualFold(region, "all") {
		f.Region = region
	}

	level, err := ParseLevel(q.Get("level"))
	if err != nil {
		return Filters{}, err
	}
	f.Level = level

	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		t, _, err := parseInstant(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("models: invalid from: %w", err)
		}
		f.From = &t
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		t, dateOnly, err := parseInstant(raw)
		if err != nil {
			return Filters{}, fmt.Errorf("models: invalid to: %w", err)
		}
		if dateOnly {
			t = EndOfDay(t)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filters{}, fmt.Errorf("models: to %s is before from %s", f.To.Format(time.RFC3339), f.From.Format(time.RFC3339))
	}

	switch dt := strings.ToLower(strings.TrimSpace(q.Get("dataType"))); dt {
	case "", DataTypeMeasurements:
		f.DataType = ""
	case DataTypeContinuous, DataTypeCampaign:
		f.DataType = dt
	default:
		return Filters{}, fmt.Errorf("models: unknown data type %q", dt)
	}

	return f, nil
}

// Query encodes the filters as backend query parameters. Unset fields are omitted.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Region != "" {
		q.Set("region", f.Region)
	}
	if f.From != nil {
		q.Set("from", f.From.UTC().Format(time.RFC3339Nano))
	}
	if f.To != nil {
		q.Set("to", f.To.UTC().Format(time.RFC3339Nano))
	}
	if f.Level != "" && f.Level != LevelAll {
		q.Set("level", string(f.Level))
	}
	if f.DataType != "" {
		q.Set("dataType", f.DataType)
	}
	return q
}

// CacheKey is a stable textual form of the filters.
func (f Filters) CacheKey() string {
	key := f.Query().Encode()
	if key == "" {
		return "_"
	}
	return key
}

// EndOfDay returns the last instant of the UTC day of t.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// parseInstant reports whether raw was a plain day rather than an instant.
func parseInstant(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(DateLayout, raw)
	return t, true, err
}
