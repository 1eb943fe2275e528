package derive

import (
	"strings"
	"time"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// FilterByLevel keeps points whose recomputed level equals level. LevelAll and the empty
// level return points unchanged.
func FilterByLevel(points []models.MeasurementPoint, level models.Level) []models.MeasurementPoint {
	if level == models.LevelAll || level == "" {
		return points
	}
	out := make([]models.MeasurementPoint, 0, len(points))
	for _, p := range points {
		if ClassifyLevel(p.Value, p.Unit) == level {
			out = append(out, p)
		}
	}
	return out
}

// FilterByTimeWindow keeps points with from <= timestamp <= to. Nil bounds are open.
func FilterByTimeWindow(points []models.MeasurementPoint, from, to *time.Time) []models.MeasurementPoint {
	if from == nil && to == nil {
		return points
	}
	out := make([]models.MeasurementPoint, 0, len(points))
	for _, p := range points {
		if inWindow(p.Timestamp, from, to) {
			out = append(out, p)
		}
	}
	return out
}

// FilterPoints applies the level and time window of f.
func FilterPoints(points []models.MeasurementPoint, f models.Filters) []models.MeasurementPoint {
	return FilterByLevel(FilterByTimeWindow(points, f.From, f.To), f.Level)
}

// FilterCampaigns keeps campaigns in f.Region (case-insensitive) whose date falls within the
// window of f, compared by calendar day. Campaigns with unparsable dates only pass when no
// window is set.
func FilterCampaigns(campaigns []models.Campaign, f models.Filters) []models.Campaign {
	if f.Region == "" && f.From == nil && f.To == nil {
		return campaigns
	}
	from, to := dayBounds(f.From, f.To)
	out := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if f.Region != "" && !strings.EqualFold(c.Region, f.Region) {
			continue
		}
		if from != nil || to != nil {
			day, err := c.Day()
			if err != nil || !inWindow(day, from, to) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// FilterDocumentsByType keeps documents of type t; the empty type keeps all.
func FilterDocumentsByType(docs []models.LegalDocument, t models.DocumentType) []models.LegalDocument {
	if t == "" {
		return docs
	}
	out := make([]models.LegalDocument, 0, len(docs))
	for _, d := range docs {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

func inWindow(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}

// dayBounds truncates the window to whole UTC days.
func dayBounds(from, to *time.Time) (*time.Time, *time.Time) {
	var f, t *time.Time
	if from != nil {
		d := truncateDay(*from)
		f = &d
	}
	if to != nil {
		d := truncateDay(*to)
		t = &d
	}
	return f, t
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
