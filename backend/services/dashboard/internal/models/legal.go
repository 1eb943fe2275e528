package models

import (
	"fmt"
	"strings"
)

// DocumentType is the jurisdiction of a legal document.
type DocumentType string

const (
	DocumentInternational DocumentType = "international"
	DocumentEU            DocumentType = "eu"
	DocumentNational      DocumentType = "national"
)

// LegalDocument is immutable reference data shown on the regulations page.
type LegalDocument struct {
	ID          ID           `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        DocumentType `json:"type"`
	URL         string       `json:"url"`
	Date        string       `json:"date"`
}

// Validate checks identity and type.
func (d LegalDocument) Validate() error {
	if d.ID.IsZero() {
		return ErrMissingID
	}
	switch d.Type {
	case DocumentInternational, DocumentEU, DocumentNational:
		return nil
	default:
		return fmt.Errorf("models: document %s has unknown type %q", d.ID, d.Type)
	}
}

// ParseDocumentType parses a tab filter; empty or "all" yields "".
func ParseDocumentType(raw string) (DocumentType, error) {
	switch t := DocumentType(strings.ToLower(strings.TrimSpace(raw))); t {
	case "", "all":
		return "", nil
	case DocumentInternational, DocumentEU, DocumentNational:
		return t, nil
	default:
		return "", fmt.Errorf("models: unknown document type %q", raw)
	}
}
