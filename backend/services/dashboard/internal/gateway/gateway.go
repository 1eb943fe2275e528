// Package gateway is the single data access point of the dashboard. Views depend on the
// Gateway interface only; the backing source is chosen once when the gateway is built.
package gateway

import (
	"context"
	"errors"
	"time"

	"emfmonitor/backend/libs/metrics"
	"emfmonitor/backend/services/dashboard/internal/models"
)

var (
	// ErrTransport wraps network and HTTP failures of the remote backend.
	ErrTransport = errors.New("gateway: transport failure")
	// ErrNotFound marks a single-entity lookup miss.
	ErrNotFound = errors.New("gateway: not found")
	// ErrSubmission wraps failures of write operations.
	ErrSubmission = errors.New("gateway: submission failed")
)

// Source names used in logs and metrics.
const (
	SourceRemote    = "remote"
	SourceSynthetic = "synthetic"
)

// Resource names used in logs, metrics and cache keys.
const (
	resourceMeasurements = "measurements"
	resourceSensorData   = "sensor_data"
	resourceStations     = "stations"
	resourceCampaigns    = "campaigns"
	resourceCampaign     = "campaign"
	resourceLegal        = "legal_documents"
	resourceExport       = "export"
	resourceContact      = "contact"
)

// Gateway provides one operation per resource kind.
//
// Read operations never fail: on any lower-level error they log and return an empty slice,
// or nil for single-entity lookups. ExportData reports nothing to the caller either.
// SubmitContactForm returns an error wrapping ErrSubmission.
type Gateway interface {
	FetchMeasurementPoints(ctx context.Context, filters models.Filters) []models.MeasurementPoint
	FetchSensorData(ctx context.Context, sensorID models.ID, tr *models.TimeRange) []models.SensorReading
	FetchMonitoringStations(ctx context.Context) []models.Station
	FetchCampaigns(ctx context.Context, filters models.Filters) []models.Campaign
	FetchCampaignDetails(ctx context.Context, id models.ID) *models.Campaign
	FetchLegalDocuments(ctx context.Context) []models.LegalDocument
	ExportData(ctx context.Context, format models.ExportFormat, filters models.Filters, sink Sink)
	SubmitContactForm(ctx context.Context, form models.ContactForm) (models.ContactResult, error)
}

// Sink receives a finished download, the server-side equivalent of a browser "save as".
type Sink interface {
	Save(filename, contentType string, body []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(filename, contentType string, body []byte) error

// Save implements Sink.
func (f SinkFunc) Save(filename, contentType string, body []byte) error {
	return f(filename, contentType, body)
}

func observe(m *metrics.Metrics, source, resource string, start time.Time, n int, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case n == 0:
		outcome = metrics.OutcomeEmpty
	}
	m.ObserveGatewayCall(source, resource, outcome, time.Since(start))
}
