package gateway

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"emfmonitor/backend/services/dashboard/internal/models"
)

const exportSheet = "EMF data"

// ExportFilename names a download after the UTC calendar day of now.
func ExportFilename(format models.ExportFormat, now time.Time) string {
	return fmt.Sprintf("emf-data-%s.%s", now.UTC().Format(models.DateLayout), format)
}

// StationSeries is a station together with its readings, the continuous-monitoring export row set.
type StationSeries struct {
	StationID    models.ID              `json:"stationId"`
	StationName  string                 `json:"stationName"`
	Location     models.Location        `json:"location"`
	Measurements []models.SensorReading `json:"measurements"`
}

// Dataset is one exportable entity set. Exactly one of the slices is used, chosen by DataType.
type Dataset struct {
	DataType  string
	Points    []models.MeasurementPoint
	Stations  []StationSeries
	Campaigns []models.Campaign
}

// Encode serializes the dataset in the requested format.
func (d Dataset) Encode(format models.ExportFormat) ([]byte, error) {
	switch format {
	case models.FormatJSON, "":
		return json.MarshalIndent(d.payload(), "", "  ")
	case models.FormatCSV:
		return encodeCSV(d.table())
	case models.FormatXLSX:
		return encodeXLSX(d.table())
	default:
		return nil, fmt.Errorf("gateway: unsupported export format %q", format)
	}
}

func (d Dataset) payload() interface{} {
	switch d.DataType {
	case models.DataTypeContinuous:
		if d.Stations == nil {
			return []StationSeries{}
		}
		return d.Stations
	case models.DataTypeCampaign:
		if d.Campaigns == nil {
			return []models.Campaign{}
		}
		return d.Campaigns
	default:
		if d.Points == nil {
			return []models.MeasurementPoint{}
		}
		return d.Points
	}
}

type table struct {
	header []string
	rows   [][]interface{}
}

var pointColumns = []string{"id", "lat", "lng", "address", "value", "unit", "level", "timestamp"}

func pointCells(p models.MeasurementPoint) []interface{} {
	return []interface{}{
		p.ID.String(), p.Location.Lat, p.Location.Lng, p.Location.Address,
		p.Value, p.Unit, string(p.Level), p.Timestamp.UTC().Format(time.RFC3339),
	}
}

// table flattens the dataset into one row per point or reading.
func (d Dataset) table() table {
	switch d.DataType {
	case models.DataTypeContinuous:
		t := table{header: []string{"stationId", "stationName", "lat", "lng", "timestamp", "value", "unit"}}
		for _, s := range d.Stations {
			for _, r := range s.Measurements {
				t.rows = append(t.rows, []interface{}{
					s.StationID.String(), s.StationName, s.Location.Lat, s.Location.Lng,
					r.Timestamp.UTC().Format(time.RFC3339), r.Value, r.Unit,
				})
			}
		}
		return t
	case models.DataTypeCampaign:
		header := append([]string{"campaignId", "campaignName", "region", "date"}, pointColumns...)
		t := table{header: header}
		for _, c := range d.Campaigns {
			for _, p := range c.Points {
				row := []interface{}{c.ID.String(), c.Name, c.Region, c.Date}
				t.rows = append(t.rows, append(row, pointCells(p)...))
			}
		}
		return t
	default:
		t := table{header: pointColumns}
		for _, p := range d.Points {
			t.rows = append(t.rows, pointCells(p))
		}
		return t
	}
}

func encodeCSV(t table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.header); err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("gateway: encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCell(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func encodeXLSX(t table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("gateway: name sheet: %w", err)
	}

	header := make([]interface{}, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	rows := append([][]interface{}{header}, t.rows...)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("gateway: write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("gateway: encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
