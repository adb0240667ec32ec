package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// OkResponse reports a completed mutation, optionally carrying the id it touched
type OkResponse struct {
	Ok        bool `json:"ok"`
	ProductID int  `json:"product_id,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, logging is all that is left
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToStatus maps domain errors to HTTP status codes and
// user-facing messages. Stock and recipe failures surface as 400 with the
// wrapped message (it names the offending resource); absent campaign entities
// are 404; anything unrecognized becomes a generic 500 with the detail kept in
// the logs only.
func mapServiceErrorToStatus(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "Unknown error"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrNoExtractionMapping),
		errors.Is(err, domain.ErrElementNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrMaterialNotFound),
		errors.Is(err, domain.ErrCharacterNotFound),
		errors.Is(err, domain.ErrQuestNotFound),
		errors.Is(err, domain.ErrNpcNotFound),
		errors.Is(err, domain.ErrLoreNotFound),
		errors.Is(err, domain.ErrCoinNotFound),
		errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgLoginFailed
	}

	return http.StatusInternalServerError, "Something went wrong"
}

// respondServiceError logs the failure and writes the mapped error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, msg := mapServiceErrorToStatus(err)
	respondError(w, status, msg)
}
