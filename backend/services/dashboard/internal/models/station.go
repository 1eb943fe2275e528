package models

import (
	"fmt"
	"strings"
)

// StationStatus is the operating state of a fixed monitoring station.
type StationStatus string

const (
	StationActive      StationStatus = "active"
	StationMaintenance StationStatus = "maintenance"
)

// Station is a fixed, continuously operating measurement installation.
type Station struct {
	ID          ID            `json:"id"`
	Name        string        `json:"name"`
	Location    Location      `json:"location"`
	Status      StationStatus `json:"status"`
	InstallDate string        `json:"installDate"`
}

// Validate checks identity, status and location.
func (s Station) Validate() error {
	if s.ID.IsZero() {
		return ErrMissingID
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("models: station %s has no name", s.ID)
	}
	switch s.Status {
	case StationActive, StationMaintenance:
	default:
		return fmt.Errorf("models: station %s has unknown status %q", s.ID, s.Status)
	}
	return s.Location.Validate()
}
