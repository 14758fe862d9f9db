package internal

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/social/middlewares"
)

// HTTPError is the JSON error body.
type HTTPError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *HTTPError) Error() string { return e.Message }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	writeJSON(w, code, &HTTPError{
		Code:      code,
		Message:   message,
		RequestID: middlewares.GetRequestID(r.Context()),
	})
}

// internalError logs err and responds with a generic 500.
func internalError(log *slog.Logger, w http.ResponseWriter, r *http.Request, msg string, err error) {
	log.ErrorContext(r.Context(), msg, slog.String("error", err.Error()))
	writeError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
