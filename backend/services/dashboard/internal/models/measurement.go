package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// UnitVPerM is the field strength unit produced by every data source.
const UnitVPerM = "V/m"

var (
	ErrInvalidLocation = errors.New("models: location out of range")
	ErrInvalidValue    = errors.New("models: value must be non-negative")
	ErrMissingUnit     = errors.New("models: unit is required")
	ErrMissingID       = errors.New("models: id is required")
)

// Location is a WGS84 coordinate with an optional postal address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Validate checks coordinate ranges.
func (l Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 || l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("%w: lat=%f lng=%f", ErrInvalidLocation, l.Lat, l.Lng)
	}
	return nil
}

// MeasurementPoint is one geolocated field strength reading.
type MeasurementPoint struct {
	ID        ID        `json:"id"`
	Location  Location  `json:"location"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Level     Level     `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the fields a point must carry. Level is not checked, it is recomputed.
func (p MeasurementPoint) Validate() error {
	if p.ID.IsZero() {
		return ErrMissingID
	}
	if p.Value < 0 {
		return fmt.Errorf("%w: %f", ErrInvalidValue, p.Value)
	}
	if strings.TrimSpace(p.Unit) == "" {
		return ErrMissingUnit
	}
	return p.Location.Validate()
}

// SensorReading is one element of a station time series.
type SensorReading struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
}

// Validate checks value and unit.
func (r SensorReading) Validate() error {
	if r.Value < 0 {
		return fmt.Errorf("%w: %f", ErrInvalidValue, r.Value)
	}
	if strings.TrimSpace(r.Unit) == "" {
		return ErrMissingUnit
	}
	return nil
}

// TimeRange bounds a sensor series request.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
