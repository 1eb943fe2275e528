package derive

import (
	"fmt"
	"sort"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// ChartSeries is the line chart shape of a station time series.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Unit   string    `json:"unit"`
}

// SortReadings returns readings ordered by ascending timestamp. Equal timestamps keep
// their input order.
func SortReadings(readings []models.SensorReading) []models.SensorReading {
	out := make([]models.SensorReading, len(readings))
	copy(out, readings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// LatestReading returns the reading with the greatest timestamp.
func LatestReading(readings []models.SensorReading) (models.SensorReading, bool) {
	if len(readings) == 0 {
		return models.SensorReading{}, false
	}
	latest := readings[0]
	for _, r := range readings[1:] {
		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return latest, true
}

// MarkerFromReading builds the map marker of a station from its most recent reading.
func MarkerFromReading(id models.ID, loc models.Location, r models.SensorReading) models.MeasurementPoint {
	return RelevelPoint(models.MeasurementPoint{
		ID:        id,
		Location:  loc,
		Value:     r.Value,
		Unit:      r.Unit,
		Timestamp: r.Timestamp,
	})
}

// BuildChartSeries labels each reading as "M/D H:00" in UTC. Readings are sorted first.
func BuildChartSeries(readings []models.SensorReading) ChartSeries {
	sorted := SortReadings(readings)
	series := ChartSeries{
		Labels: make([]string, len(sorted)),
		Values: make([]float64, len(sorted)),
		Unit:   models.UnitVPerM,
	}
	for i, r := range sorted {
		ts := r.Timestamp.UTC()
		series.Labels[i] = fmt.Sprintf("%d/%d %d:00", int(ts.Month()), ts.Day(), ts.Hour())
		series.Values[i] = r.Value
	}
	if len(sorted) > 0 && sorted[0].Unit != "" {
		series.Unit = sorted[0].Unit
	}
	return series
}
