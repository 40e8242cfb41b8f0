// internal/app/features/errors/errors.go

// Package errors provides the JSON error surface shared by all feature
// handlers, and an ErrorLogger that pairs the response with a zap log
// line so server-side failures are never silently swallowed.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// body is the uniform error payload.
type body struct {
	Error string `json:"error"`
}

func write(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{Error: msg})
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	write(w, http.StatusBadRequest, msg)
}

// NotFound writes a 404 with the given message.
func NotFound(w http.ResponseWriter, msg string) {
	write(w, http.StatusNotFound, msg)
}

// Forbidden writes a 403 with the given message.
func Forbidden(w http.ResponseWriter, msg string) {
	write(w, http.StatusForbidden, msg)
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(w http.ResponseWriter, msg string) {
	write(w, http.StatusUnauthorized, msg)
}

// ServerError writes a 500 with the given message.
func ServerError(w http.ResponseWriter, msg string) {
	write(w, http.StatusInternalServerError, msg)
}

// ErrorLogger logs handler failures and writes the matching JSON error.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the underlying error with context and answers 500
// with the user-facing message.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, logMsg string, err error, userMsg string) {
	el.log.Error(logMsg, zap.Error(err))
	ServerError(w, userMsg)
}

// LogBadRequest logs the underlying error and answers 400.
func (el *ErrorLogger) LogBadRequest(w http.ResponseWriter, logMsg string, err error, userMsg string) {
	el.log.Warn(logMsg, zap.Error(err))
	BadRequest(w, userMsg)
}
