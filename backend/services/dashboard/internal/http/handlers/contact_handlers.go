package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"emfmonitor/backend/services/dashboard/internal/gateway"
	"emfmonitor/backend/services/dashboard/internal/models"
	"emfmonitor/backend/services/dashboard/internal/service"
)

const maxContactBytes = 64 << 10

// ContactHandlers accepts contact form submissions.
type ContactHandlers struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewContactHandlers returns handler.
func NewContactHandlers(svc DashboardService, logger *zap.Logger) *ContactHandlers {
	return &ContactHandlers{svc: svc, logger: logger}
}

type fieldErrorResponse struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type validationErrorResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields"`
}

// Submit handles POST /api/contact.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var form models.ContactForm
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBytes))
	if err := dec.Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	result, err := h.svc.SubmitContact(r.Context(), form)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, service.ErrInvalidContact):
		resp := validationErrorResponse{Error: "invalid contact form"}
		for _, fe := range service.FieldErrors(err) {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: fe.Field, Reason: fe.Reason})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, gateway.ErrSubmission):
		writeError(w, http.StatusBadGateway, "contact submission failed")
	default:
		h.logger.Error("contact submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
