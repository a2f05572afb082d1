package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"venuebooking/internal/apperr"
	"venuebooking/internal/logger"
)

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, APIError{Code: code, Message: message})
}

func writeEnvelope(w http.ResponseWriter, status int, e APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorEnvelope{Error: e})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidAction, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindPermissionDenied:
		return http.StatusForbidden
	case apperr.KindInvalidTransition, apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders workflow errors with their own code and hides
// everything else behind INTERNAL.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		WriteError(w, StatusFor(ae.Kind), ae.Code, ae.Message)
		return
	}

	logger.WithContext(r.Context()).Error("request failed", zap.Error(err))
	WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
