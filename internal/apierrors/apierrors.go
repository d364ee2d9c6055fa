// Package apierrors standardizes JSON error and success responses across the
// API handlers.
package apierrors

import (
	"encoding/json"
	"net/http"

	"github.com/agencydesk/api-agency/internal/validation"
)

// Response is the wire shape of every error body.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a plain error body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Response{Error: msg})
}

// Validation writes a 400 carrying per-field messages.
func Validation(w http.ResponseWriter, ferr *validation.FieldErrors) {
	JSON(w, http.StatusBadRequest, Response{Error: "validation failed", Fields: ferr.Fields})
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Internal writes a 500.
func Internal(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}
