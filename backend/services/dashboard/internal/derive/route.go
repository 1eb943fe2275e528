package derive

import "emfmonitor/backend/services/dashboard/internal/models"

// Route is the connected path drawn for a campaign.
type Route struct {
	Path []models.Location `json:"path"`
}

// BucketRouteFromPoints keeps input order as path order, without reordering or dedup.
func BucketRouteFromPoints(points []models.MeasurementPoint) Route {
	path := make([]models.Location, len(points))
	for i, p := range points {
		path[i] = p.Location
	}
	return Route{Path: path}
}
