package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware lets the browser dashboard call the API. An empty origin list allows any origin.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Accept-Language", RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", RequestIDHeader},
		MaxAge:         600,
	})
	return c.Handler
}

// OriginChecker returns the websocket origin check matching the CORS policy.
func OriginChecker(origins []string) func(*http.Request) bool {
	allowAll := len(origins) == 0
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if allowAll || origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
