package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/leeyosep19/portfolio-shopping/pkg/errors"
	"github.com/leeyosep19/portfolio-shopping/pkg/logger"
	"github.com/leeyosep19/portfolio-shopping/pkg/validator"
)

// ErrorBody is the JSON error shape returned by every endpoint: a fixed
// user-facing message plus the raw underlying error text. Validation
// failures additionally carry a field-to-message map.
type ErrorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageBody is the JSON body for plain confirmation responses.
type MessageBody struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the fixed-shape error body. The summary is
// the endpoint's user-facing message; the underlying error text is passed
// through verbatim in the `error` field. Validation errors become 400 with
// per-field messages, AppErrors keep their status and message, and anything
// else is a 500 logged through the request-scoped logger.
func WriteError(w http.ResponseWriter, r *http.Request, summary string, err error, fallback *slog.Logger) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{
			Message: summary,
			Error:   valErr.Error(),
			Fields:  valErr.Fields(),
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status != http.StatusInternalServerError {
		WriteJSON(w, appErr.Status, ErrorBody{Message: appErr.Message})
		return
	}

	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	WriteJSON(w, http.StatusInternalServerError, ErrorBody{
		Message: summary,
		Error:   err.Error(),
	})
}
