package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// List is a decoded collection response. Elements that failed to decode are reported in
// Rejected instead of failing the whole response.
type List[T any] struct {
	Items    []T
	Rejected []error
}

func decodeList[T any](raw []json.RawMessage) List[T] {
	list := List[T]{Items: make([]T, 0, len(raw))}
	for i, elem := range raw {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			list.Rejected = append(list.Rejected, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		list.Items = append(list.Items, item)
	}
	return list
}

func getList[T any](ctx context.Context, base *BaseClient, path string, query url.Values) (List[T], error) {
	var raw []json.RawMessage
	if err := base.GetJSON(ctx, path, query, &raw); err != nil {
		return List[T]{}, err
	}
	return decodeList[T](raw), nil
}

// EMFClient talks to the measurement backend REST API.
type EMFClient struct {
	base *BaseClient
}

// NewEMFClient returns client.
func NewEMFClient(baseURL string, httpClient HTTPDoer) *EMFClient {
	return &EMFClient{base: NewBaseClient(baseURL, httpClient)}
}

// ListMeasurements fetches GET /measurements.
func (c *EMFClient) ListMeasurements(ctx context.Context, filters models.Filters) (List[models.MeasurementPoint], error) {
	return getList[models.MeasurementPoint](ctx, c.base, "/measurements", filters.Query())
}

// SensorData fetches GET /sensors/{id}/data.
func (c *EMFClient) SensorData(ctx context.Context, sensorID models.ID, tr *models.TimeRange) (List[models.SensorReading], error) {
	query := url.Values{}
	if tr != nil {
		query.Set("from", tr.From.UTC().Format(time.RFC3339))
		query.Set("to", tr.To.UTC().Format(time.RFC3339))
	}
	return getList[models.SensorReading](ctx, c.base, "/sensors/"+url.PathEscape(sensorID.String())+"/data", query)
}

// ListStations fetches GET /stations.
func (c *EMFClient) ListStations(ctx context.Context) (List[models.Station], error) {
	return getList[models.Station](ctx, c.base, "/stations", nil)
}

// ListCampaigns fetches GET /campaigns.
func (c *EMFClient) ListCampaigns(ctx context.Context, filters models.Filters) (List[models.Campaign], error) {
	return getList[models.Campaign](ctx, c.base, "/campaigns", filters.Query())
}

// GetCampaign fetches GET /campaigns/{id}.
func (c *EMFClient) GetCampaign(ctx context.Context, id models.ID) (*models.Campaign, error) {
	var out models.Campaign
	if err := c.base.GetJSON(ctx, "/campaigns/"+url.PathEscape(id.String()), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLegalDocuments fetches GET /legal-documents.
func (c *EMFClient) ListLegalDocuments(ctx context.Context) (List[models.LegalDocument], error) {
	return getList[models.LegalDocument](ctx, c.base, "/legal-documents", nil)
}

// Download fetches GET /download and returns the blob with its content type.
func (c *EMFClient) Download(ctx context.Context, format models.ExportFormat, filters models.Filters) ([]byte, string, error) {
	query := filters.Query()
	query.Set("format", string(format))
	return c.base.GetRaw(ctx, "/download", query)
}

// SubmitContact posts POST /contact.
func (c *EMFClient) SubmitContact(ctx context.Context, form models.ContactForm) (models.ContactResult, error) {
	var out models.ContactResult
	if err := c.base.PostJSON(ctx, "/contact", form, &out); err != nil {
		return models.ContactResult{}, err
	}
	return out, nil
}
