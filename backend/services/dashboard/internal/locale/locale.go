// Package locale resolves the language of a request and labels view values in it.
// A Locale is a plain value passed to whoever renders; there is no process-wide language.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// Locale is a supported display language.
type Locale struct {
	Tag  language.Tag
	code string
}

// Supported locales, the first is the fallback.
var (
	English         = Locale{Tag: language.English, code: "en"}
	SerbianLatin    = Locale{Tag: language.MustParse("sr-Latn"), code: "sr-Latn"}
	SerbianCyrillic = Locale{Tag: language.MustParse("sr-Cyrl"), code: "sr-Cyrl"}

	supported = []Locale{English, SerbianLatin, SerbianCyrillic}
	matcher   = language.NewMatcher([]language.Tag{English.Tag, SerbianLatin.Tag, SerbianCyrillic.Tag})
)

// Code is the short name used in URLs and responses.
func (l Locale) Code() string {
	if l.code == "" {
		return English.code
	}
	return l.code
}

// Resolve picks the locale from an explicit lang query value, then the Accept-Language header.
// Anything unsupported or unparsable ends up as English.
func Resolve(query, acceptLanguage string) Locale {
	if q := strings.TrimSpace(query); q != "" {
		if tag, err := language.Parse(q); err == nil {
			if l, ok := match(tag); ok {
				return l
			}
		}
	}
	if accepted, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(accepted) > 0 {
		if l, ok := match(accepted...); ok {
			return l
		}
	}
	return English
}

func match(tags ...language.Tag) (Locale, bool) {
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return Locale{}, false
	}
	return supported[idx], true
}

// Label translates a catalog key, falling back to English and then to the key itself.
func (l Locale) Label(key string) string {
	if msg, ok := catalog[l.Code()][key]; ok {
		return msg
	}
	if msg, ok := catalog[English.code][key]; ok {
		return msg
	}
	return key
}

// Level labels a threshold level.
func (l Locale) Level(level models.Level) string {
	switch level {
	case models.LevelLow:
		return l.Label(KeyLevelLow)
	case models.LevelMedium:
		return l.Label(KeyLevelMedium)
	case models.LevelHigh:
		return l.Label(KeyLevelHigh)
	default:
		return l.Label(KeyAllLevels)
	}
}

// StationStatus labels a station status.
func (l Locale) StationStatus(status models.StationStatus) string {
	if status == models.StationMaintenance {
		return l.Label(KeyStatusMaintenance)
	}
	return l.Label(KeyStatusActive)
}

// DocumentType labels a legal document category. The empty type stands for all documents.
func (l Locale) DocumentType(t models.DocumentType) string {
	switch t {
	case models.DocumentInternational:
		return l.Label(KeyDocInternational)
	case models.DocumentEU:
		return l.Label(KeyDocEU)
	case models.DocumentNational:
		return l.Label(KeyDocNational)
	default:
		return l.Label(KeyAllDocuments)
	}
}
