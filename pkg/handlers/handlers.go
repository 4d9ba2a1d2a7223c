// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written for failed requests.
// Fields carries per-field validation messages when present.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	RespondFields(w, logger, status, err, nil)
}

// RespondFields writes an error response that includes field messages.
// Client errors log at warn and server errors at error.
func RespondFields(w http.ResponseWriter, logger *slog.Logger, status int, err error, fields map[string]string) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("handler error", "error", err, "status", status)
	}
	RespondJSON(w, status, ErrorResponse{Error: err.Error(), Fields: fields})
}

// DecodeJSON decodes the request body into T, rejecting unknown fields and trailing data.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return v, fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return v, fmt.Errorf("invalid request body: %w", err)
	}

	if dec.More() {
		return v, errors.New("invalid request body: unexpected trailing data")
	}
	return v, nil
}
