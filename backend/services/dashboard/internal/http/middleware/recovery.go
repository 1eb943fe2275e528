package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryMiddleware turns handler panics into 500 responses.
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				fields := []zap.Field{zap.Any("panic", rec), zap.String("path", r.URL.Path), zap.Stack("stack")}
				if id, ok := RequestIDFromContext(r.Context()); ok {
					fields = append(fields, zap.String("request_id", id))
				}
				logger.Error("handler panic recovered", fields...)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
