package generator

import "emfmonitor/backend/services/dashboard/internal/models"

// LegalDocuments returns the fixed regulations reference list.
func (g *Generator) LegalDocuments() []models.LegalDocument {
	docs := []models.LegalDocument{
		{ID: "1", Title: "ITU-T K.83 Recommendation", Description: "Monitoring of electromagnetic field levels", Type: models.DocumentInternational, URL: "#", Date: "2011-03-22"},
		{ID: "2", Title: "ICNIRP Guidelines", Description: "Guidelines for limiting exposure to electromagnetic fields (100 kHz to 300 GHz)", Type: models.DocumentInternational, URL: "#", Date: "2020-03-11"},
		{ID: "3", Title: "EU Directive 2013/35/EU", Description: "Minimum health and safety requirements regarding the exposure of workers to risks arising from electromagnetic fields", Type: models.DocumentEU, URL: "#", Date: "2013-06-26"},
		{ID: "4", Title: "EU Recommendation 1999/519/EC", Description: "Limitation of exposure of the general public to electromagnetic fields (0 Hz to 300 GHz)", Type: models.DocumentEU, URL: "#", Date: "1999-07-12"},
		{ID: "5", Title: "Law on Non-Ionizing Radiation Protection", Description: "National law regulating protection from non-ionizing radiation including EMF", Type: models.DocumentNational, URL: "#", Date: "2019-05-10"},
		{ID: "6", Title: "Rulebook on Limits of Exposure to Non-Ionizing Radiation", Description: "Detailed technical standards and exposure limits for various frequency ranges", Type: models.DocumentNational, URL: "#", Date: "2020-02-15"},
		{ID: "7", Title: "Rulebook on Sources of Non-Ionizing Radiation of Special Interest", Description: "Criteria for determining EMF sources that require special monitoring and assessment", Type: models.DocumentNational, URL: "#", Date: "2020-03-01"},
		{ID: "8", Title: "WHO Environmental Health Criteria 238", Description: "Extremely Low Frequency Fields", Type: models.DocumentInternational, URL: "#", Date: "2007-06-01"},
	}
	return docs
}
