package derive

import (
	"strings"
	"time"
)

// RangeKey names a chart window on the continuous monitoring page.
type RangeKey string

const (
	Range24h RangeKey = "24h"
	Range7d  RangeKey = "7d"
	Range30d RangeKey = "30d"
)

// ParseRangeKey normalizes a key; unknown keys fall back to Range24h.
func ParseRangeKey(raw string) RangeKey {
	switch k := RangeKey(strings.ToLower(strings.TrimSpace(raw))); k {
	case Range24h, Range7d, Range30d:
		return k
	default:
		return Range24h
	}
}

// DeriveTimeRangeStart returns the start of the window ending at now. Days are calendar
// days, so the time of day is kept.
func DeriveTimeRangeStart(key RangeKey, now time.Time) time.Time {
	switch ParseRangeKey(string(key)) {
	case Range7d:
		return now.AddDate(0, 0, -7)
	case Range30d:
		return now.AddDate(0, 0, -30)
	default:
		return now.AddDate(0, 0, -1)
	}
}
