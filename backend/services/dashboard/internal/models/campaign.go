package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by campaigns, stations and documents.
const DateLayout = "2006-01-02"

// CampaignStats summarises the points of a campaign. It is derived, never entered.
type CampaignStats struct {
	MaxValue    float64 `json:"maxValue"`
	AvgValue    float64 `json:"avgValue"`
	Unit        string  `json:"unit"`
	PointsCount int     `json:"pointsCount"`
}

// Campaign is a bounded mobile measurement effort. Points are in route order.
type Campaign struct {
	ID       ID                 `json:"id"`
	Name     string             `json:"name"`
	Region   string             `json:"region"`
	Date     string             `json:"date"`
	Duration string             `json:"duration"`
	Points   []MeasurementPoint `json:"points"`
	Stats    CampaignStats      `json:"stats"`
}

// Validate checks identity and the campaign date.
func (c Campaign) Validate() error {
	if c.ID.IsZero() {
		return ErrMissingID
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("models: campaign %s has no name", c.ID)
	}
	if _, err := c.Day(); err != nil {
		return fmt.Errorf("models: campaign %s: %w", c.ID, err)
	}
	return nil
}

// Day parses Date.
func (c Campaign) Day() (time.Time, error) {
	return time.Parse(DateLayout, c.Date)
}
