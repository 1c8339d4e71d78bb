// Package httpx provides HTTP request and response utilities.
package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error attaches a client-safe message to one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation returns an ErrValidation carrying a formatted message.
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound naming the missing resource.
func NotFound(resource string) error {
	return &Error{Kind: ErrNotFound, Message: resource + " not found"}
}

// Forbidden returns an ErrForbidden with the given reason.
func Forbidden(reason string) error {
	return &Error{Kind: ErrForbidden, Message: reason}
}

// Unauthorized returns an ErrUnauthorized with the given reason. The reason
// is logged but never sent to the client.
func Unauthorized(reason string) error {
	return &Error{Kind: ErrUnauthorized, Message: reason}
}

// StatusOf maps an error onto the response status it produces.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrPoolExhausted), errors.Is(err, db.ErrTxConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to HTTP responses.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	switch status {
	case http.StatusUnauthorized:
		JSON(w, status, messageBody{Message: "Unauthorized"})
	case http.StatusForbidden:
		msg := "Forbidden"
		if reason := messageOf(err); reason != "" {
			msg += ": " + reason
		}
		JSON(w, status, messageBody{Message: msg})
	case http.StatusBadRequest:
		JSON(w, status, errorBody{Error: messageOr(err, "Invalid request")})
	case http.StatusNotFound:
		JSON(w, status, errorBody{Error: messageOr(err, "Resource not found")})
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", "1")
		JSON(w, status, errorBody{Error: "Service busy, retry shortly"})
	default:
		JSON(w, status, errorBody{Error: "Internal server error"})
	}
}

// Fail logs err with request attributes and writes the mapped response.
// Server-side failures are logged at error level, client failures at warn.
func Fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, err error) {
	if logger != nil {
		attrs := []any{
			slog.String("op", op),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		}
		if StatusOf(err) >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}
	}
	RespondError(w, err)
}

func messageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

func messageOr(err error, fallback string) string {
	if msg := messageOf(err); msg != "" {
		return msg
	}
	return fallback
}
