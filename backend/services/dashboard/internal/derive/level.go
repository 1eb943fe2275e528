// Package derive turns raw readings into leveled, aggregated and filtered shapes.
// Every function is pure; callers own the slices they pass in and get new slices back.
package derive

import "emfmonitor/backend/services/dashboard/internal/models"

// Thresholds in V/m. A value equal to a threshold belongs to the upper level.
const (
	MediumThreshold = 2.0
	HighThreshold   = 6.0
)

// ClassifyLevel maps a reading to its severity level. The V/m thresholds are applied to
// every unit since no other unit is produced by the data sources.
func ClassifyLevel(value float64, unit string) models.Level {
	switch {
	case value < MediumThreshold:
		return models.LevelLow
	case value < HighThreshold:
		return models.LevelMedium
	default:
		return models.LevelHigh
	}
}

// RelevelPoint returns p with Level recomputed from Value.
func RelevelPoint(p models.MeasurementPoint) models.MeasurementPoint {
	p.Level = ClassifyLevel(p.Value, p.Unit)
	return p
}

// Relevel returns a copy of points with every Level recomputed.
func Relevel(points []models.MeasurementPoint) []models.MeasurementPoint {
	out := make([]models.MeasurementPoint, len(points))
	for i, p := range points {
		out[i] = RelevelPoint(p)
	}
	return out
}

// CountByLevel tallies points per recomputed level.
func CountByLevel(points []models.MeasurementPoint) map[models.Level]int {
	counts := make(map[models.Level]int, len(models.Levels))
	for _, l := range models.Levels {
		counts[l] = 0
	}
	for _, p := range points {
		counts[ClassifyLevel(p.Value, p.Unit)]++
	}
	return counts
}
