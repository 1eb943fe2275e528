package locale

// Catalog keys.
const (
	KeyLevelLow          = "map.levelLow"
	KeyLevelMedium       = "map.levelMedium"
	KeyLevelHigh         = "map.levelHigh"
	KeyAllLevels         = "filters.allLevels"
	KeyStatusActive      = "stations.active"
	KeyStatusMaintenance = "stations.maintenance"
	KeyDocInternational  = "legalRegulations.international"
	KeyDocEU             = "legalRegulations.eu"
	KeyDocNational       = "legalRegulations.national"
	KeyAllDocuments      = "legalRegulations.allDocuments"
	KeyNoData            = "continuousMonitoring.noData"
	KeyNoDocuments       = "legalRegulations.noDocuments"
)

var catalog = map[string]map[string]string{
	"en": {
		KeyLevelLow:          "Low",
		KeyLevelMedium:       "Medium",
		KeyLevelHigh:         "High",
		KeyAllLevels:         "All levels",
		KeyStatusActive:      "Active",
		KeyStatusMaintenance: "Maintenance",
		KeyDocInternational:  "International",
		KeyDocEU:             "European Union",
		KeyDocNational:       "National",
		KeyAllDocuments:      "All documents",
		KeyNoData:            "No data available for the selected period",
		KeyNoDocuments:       "No documents found",
	},
	"sr-Latn": {
		KeyLevelLow:          "Nizak",
		KeyLevelMedium:       "Srednji",
		KeyLevelHigh:         "Visok",
		KeyAllLevels:         "Svi nivoi",
		KeyStatusActive:      "Aktivna",
		KeyStatusMaintenance: "Održavanje",
		KeyDocInternational:  "Međunarodni",
		KeyDocEU:             "Evropska unija",
		KeyDocNational:       "Nacionalni",
		KeyAllDocuments:      "Svi dokumenti",
		KeyNoData:            "Nema podataka za izabrani period",
		KeyNoDocuments:       "Nema pronađenih dokumenata",
	},
	"sr-Cyrl": {
		KeyLevelLow:          "Низак",
		KeyLevelMedium:       "Средњи",
		KeyLevelHigh:         "Висок",
		KeyAllLevels:         "Сви нивои",
		KeyStatusActive:      "Активна",
		KeyStatusMaintenance: "Одржавање",
		KeyDocInternational:  "Међународни",
		KeyDocEU:             "Европска унија",
		KeyDocNational:       "Национални",
		KeyAllDocuments:      "Сви документи",
		KeyNoData:            "Нема података за изабрани период",
	},
}
