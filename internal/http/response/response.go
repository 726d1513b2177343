// Package response provides consistent HTTP response utilities.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/whwar9739/dramcellar/internal/errors"
)

// Envelope is the standard response wrapper for all API endpoints.
type Envelope struct {
	Data    any       `json:"data,omitempty"`
	Error   *ErrorDoc `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Success bool      `json:"success"`
}

// ErrorDoc is the wire representation of an error.
type ErrorDoc struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a success response with the given status and data.
func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Data: data, Success: true})
}

// Created writes a 201 response with the given data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK writes a 200 response with the given data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// NoContent writes a 204 response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Message writes a 200 response with a message and no data.
func Message(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, Envelope{Message: msg, Success: true})
}

// HandleError maps a domain error to the appropriate HTTP response.
// Unknown errors are logged and reported as 500 without leaking internals.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		status := domainErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			logger.Error("internal error", "error", err)
		}
		writeJSON(w, status, Envelope{
			Error: &ErrorDoc{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Details: domainErr.Details,
			},
			Success: false,
		})
		return
	}

	logger.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, Envelope{
		Error: &ErrorDoc{
			Code:    string(domainerrors.CodeInternal),
			Message: "an internal error occurred",
		},
		Success: false,
	})
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		// Headers already sent, nothing else to do
		slog.Error("failed to encode response", "error", err)
	}
}
