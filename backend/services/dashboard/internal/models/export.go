package models

import (
	"fmt"
	"strings"
)

// ExportFormat selects the serialization of a data download.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat parses a format name. Empty input means JSON.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("models: unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
