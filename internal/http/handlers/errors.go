package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"catalog-api/internal/db"

	"github.com/rs/zerolog/hlog"
)

// APIError is an error with an HTTP status. It is rendered as
// {"error": Message} plus any Details keys.
type APIError struct {
	Status  int
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	return e.Message
}

func BadRequest(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// WriteError renders err. Store sentinels that reach here without being
// translated by the handler still get a 4xx; anything else is logged and
// reported as a 500 without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, db.ErrNotFound):
		apiErr = NotFound("Resource not found.")
	case errors.Is(err, db.ErrConflict):
		apiErr = BadRequest("Resource already exists.")
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		apiErr = &APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
	}

	body := make(map[string]any, len(apiErr.Details)+1)
	for k, v := range apiErr.Details {
		body[k] = v
	}
	body["error"] = apiErr.Message
	WriteJSON(w, apiErr.Status, body)
}
