package derive

import (
	"errors"
	"math"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// ErrEmptyCollection is returned by aggregations that have no defined result for no input.
var ErrEmptyCollection = errors.New("derive: empty collection")

// AggregateStats computes max, 2-decimal average, unit and count. The unit is taken from the
// first point; collections are expected to be homogeneous.
func AggregateStats(points []models.MeasurementPoint) (models.CampaignStats, error) {
	if len(points) == 0 {
		return models.CampaignStats{}, ErrEmptyCollection
	}

	maxValue := points[0].Value
	var sum float64
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
		sum += p.Value
	}

	return models.CampaignStats{
		MaxValue:    maxValue,
		AvgValue:    Round2(sum / float64(len(points))),
		Unit:        points[0].Unit,
		PointsCount: len(points),
	}, nil
}

// RecomputeStats returns c with levels and stats derived from its points. A campaign without
// points gets zero stats carrying the V/m unit.
func RecomputeStats(c models.Campaign) models.Campaign {
	c.Points = Relevel(c.Points)
	stats, err := AggregateStats(c.Points)
	if err != nil {
		stats = models.CampaignStats{Unit: models.UnitVPerM}
	}
	c.Stats = stats
	return c
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
