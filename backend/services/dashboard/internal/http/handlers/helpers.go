package handlers

import (
	"encoding/json"
	"net/http"

	"emfmonitor/backend/services/dashboard/internal/locale"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requestLocale resolves the ?lang= parameter and Accept-Language header of r.
func requestLocale(w http.ResponseWriter, r *http.Request) locale.Locale {
	loc := locale.Resolve(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", loc.Code())
	return loc
}
