// Package handlers contains the HTTP handlers for the tablefront API.
// Handlers are grouped by concern (themes, sections) and receive their
// dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tablefront/internal/validation"
)

// errorBody is the uniform shape of non-validation error responses.
type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

// respondValidation writes a failed validation result as 422. Callers must
// only pass results with at least one error.
func respondValidation(w http.ResponseWriter, result validation.ValidationResult) {
	respondJSON(w, http.StatusUnprocessableEntity, result)
}
