package models

import (
	"fmt"
	"strings"
)

// Level is the three-tier severity of a reading. It is always derived from a value.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
	// LevelAll is only meaningful as a filter.
	LevelAll Level = "all"
)

// Levels lists the severity levels in ascending order.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

// ParseLevel parses a level filter. Empty input means LevelAll.
func ParseLevel(raw string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(raw))); l {
	case "":
		return LevelAll, nil
	case LevelLow, LevelMedium, LevelHigh, LevelAll:
		return l, nil
	default:
		return "", fmt.Errorf("models: unknown level %q", raw)
	}
}
