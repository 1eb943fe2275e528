package service

import (
	"time"

	"emfmonitor/backend/services/dashboard/internal/derive"
	"emfmonitor/backend/services/dashboard/internal/locale"
	"emfmonitor/backend/services/dashboard/internal/models"
)

// Marker is a point ready for the map, with its level labelled in the request locale.
type Marker struct {
	models.MeasurementPoint
	LevelLabel string `json:"levelLabel"`
}

// LevelCount is one legend entry.
type LevelCount struct {
	Level models.Level `json:"level"`
	Label string       `json:"label"`
	Count int          `json:"count"`
}

// MapView backs the home page map.
type MapView struct {
	Locale string       `json:"locale"`
	Points []Marker     `json:"points"`
	Levels []LevelCount `json:"levels"`
}

// CampaignSummary is a campaign without its points.
type CampaignSummary struct {
	ID       models.ID            `json:"id"`
	Name     string               `json:"name"`
	Region   string               `json:"region"`
	Date     string               `json:"date"`
	Duration string               `json:"duration"`
	Stats    models.CampaignStats `json:"stats"`
}

// CampaignView backs the campaign page: the full route, stats over every point and the
// points passing the level filter.
type CampaignView struct {
	Locale   string          `json:"locale"`
	Campaign CampaignSummary `json:"campaign"`
	Route    derive.Route    `json:"route"`
	Points   []Marker        `json:"points"`
	Levels   []LevelCount    `json:"levels"`
}

// StationView is a station with its status labelled.
type StationView struct {
	models.Station
	StatusLabel string `json:"statusLabel"`
}

// StationMonitoringView backs the continuous monitoring page for one station.
type StationMonitoringView struct {
	Locale  string             `json:"locale"`
	Station StationView        `json:"station"`
	Range   derive.RangeKey    `json:"range"`
	From    time.Time          `json:"from"`
	To      time.Time          `json:"to"`
	Series  derive.ChartSeries `json:"series"`
	Latest  *Marker            `json:"latest,omitempty"`
	Message string             `json:"message,omitempty"`
}

// MeasurementDetailsView backs the chart opened from a map point: the point's own series
// over the source's default window.
type MeasurementDetailsView struct {
	Locale  string             `json:"locale"`
	PointID models.ID          `json:"pointId"`
	Series  derive.ChartSeries `json:"series"`
	Message string             `json:"message,omitempty"`
}

// DocumentTab is one tab of the legal documents page.
type DocumentTab struct {
	Type   models.DocumentType `json:"type"`
	Label  string              `json:"label"`
	Active bool                `json:"active"`
}

// LegalDocument is a document with its category labelled.
type LegalDocument struct {
	models.LegalDocument
	TypeLabel string `json:"typeLabel"`
}

// LegalDocumentsView backs the legal regulations page.
type LegalDocumentsView struct {
	Locale    string          `json:"locale"`
	Tabs      []DocumentTab   `json:"tabs"`
	Documents []LegalDocument `json:"documents"`
	Message   string          `json:"message,omitempty"`
}

var documentTabs = []models.DocumentType{"", models.DocumentInternational, models.DocumentEU, models.DocumentNational}

func markers(points []models.MeasurementPoint, loc locale.Locale) []Marker {
	out := make([]Marker, 0, len(points))
	for _, p := range points {
		out = append(out, Marker{MeasurementPoint: p, LevelLabel: loc.Level(p.Level)})
	}
	return out
}

func levelCounts(points []models.MeasurementPoint, loc locale.Locale) []LevelCount {
	counts := derive.CountByLevel(points)
	out := make([]LevelCount, 0, len(models.Levels))
	for _, level := range models.Levels {
		out = append(out, LevelCount{Level: level, Label: loc.Level(level), Count: counts[level]})
	}
	return out
}

func summarize(c models.Campaign) CampaignSummary {
	return CampaignSummary{
		ID:       c.ID,
		Name:     c.Name,
		Region:   c.Region,
		Date:     c.Date,
		Duration: c.Duration,
		Stats:    c.Stats,
	}
}
