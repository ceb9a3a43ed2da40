package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/util"
)

type errorResponse struct {
	Error         string `json:"error"`
	Code          string `json:"code"`
	ActivityCount int64  `json:"activityCount,omitempty"`
	RequestID     string `json:"requestId,omitempty"`
}

// listResponse is the envelope every listing endpoint returns.
type listResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      code,
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

// respondError maps the application error taxonomy onto HTTP statuses.
// Validation and business-rule errors carry their message to the caller;
// upstream failures are logged with detail and surfaced generically.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *app.ValidationError
	var iu *app.InUseError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error())
	case errors.Is(err, app.ErrDuplicateName):
		writeError(w, http.StatusBadRequest, "DUPLICATE_NAME", app.ErrDuplicateName.Error())
	case errors.As(err, &iu):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:         iu.Error(),
			Code:          "CATEGORY_IN_USE",
			ActivityCount: iu.Count,
			RequestID:     strings.TrimSpace(w.Header().Get("X-Request-Id")),
		})
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "request timed out")
	default:
		util.LoggerFromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, "SYSTEM_INTERNAL_ERROR", "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "SYSTEM_METHOD_NOT_ALLOWED", "method not allowed")
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
}
