// Package httpapi exposes the service layer over an HTTP JSON API. Handlers
// are thin: they decode the request, call one service operation, and write
// the response envelope. All error translation happens here, in one place.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campkeeper/campkeeper/internal/common"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, fields envelope) {
	body := envelope{"status": statusSuccess}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeFailure(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{"status": statusFailure, "message": message})
}

// writeError maps a service error onto the caller-visible taxonomy. The
// sub-causes of an authentication failure are never distinguished for the
// caller; infrastructure detail is logged server-side by the services.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Login failed.")
	case errors.Is(err, common.ErrTokenExpired):
		writeFailure(w, http.StatusUnauthorized, "Token expired. Please log in again.")
	case errors.Is(err, common.ErrAuthenticationFailed), errors.Is(err, common.ErrInvalidToken):
		writeFailure(w, http.StatusUnauthorized, "Authentication failed.")
	case errors.Is(err, common.ErrAccessDenied):
		writeFailure(w, http.StatusForbidden, "Access denied.")
	case errors.Is(err, common.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, common.ErrInvalidArgument):
		writeFailure(w, http.StatusBadRequest, "Invalid request.")
	default:
		writeFailure(w, http.StatusInternalServerError, "Application error.")
	}
}
