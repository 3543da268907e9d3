// Package respond writes the JSON envelope shared by every endpoint:
// {success, data?, error?, message?}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// Error reports err with the status of its kind. Unexpected errors are
// logged and carry their underlying message.
func Error(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	write(w, status, envelope{Error: apperr.Message(err)})
}

// Conflict reports a 409 that carries details about the conflicting input.
func Conflict(w http.ResponseWriter, msg string, data any) {
	write(w, http.StatusConflict, envelope{Error: msg, Data: data})
}

func BadRequest(w http.ResponseWriter, msg string) {
	write(w, http.StatusBadRequest, envelope{Error: msg})
}

func Unauthorized(w http.ResponseWriter) {
	write(w, http.StatusUnauthorized, envelope{Error: "Unauthorized"})
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
