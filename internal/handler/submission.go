package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/saqify/backend/internal/apperr"
)

const (
	msgInternal         = "Internal server error"
	msgValidationFailed = "Validation failed"

	maxFormBodyBytes = 1 << 20
)

var errTrailingData = errors.New("unexpected data after JSON body")

// validationResponse is the 400 body for rejected submissions.
type validationResponse struct {
	Error   string             `json:"error"`
	Details apperr.FieldErrors `json:"details"`
}

// submitResponse is the 200 body for accepted submissions.
type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// decodeForm reads a JSON object from the request body. A body that is not
// exactly one JSON value is an internal fault; JSON that is not an object fails validation with
// no field details. It writes the response itself when ok is false.
func decodeForm(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var raw any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBodyBytes))
	err := dec.Decode(&raw)
	if err == nil {
		// 本文は JSON 値ひとつだけ。後ろに何か続けば不正
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errTrailingData
		}
	}
	if err != nil {
		slog.Error("failed to decode form body",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return nil, false
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: msgValidationFailed, Details: apperr.FieldErrors{}})
		return nil, false
	}
	return obj, true
}

// writeSubmitError reports validation details and hides everything else.
func writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := apperr.FieldErrorsOf(err); ok {
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: msgValidationFailed, Details: fe})
		return
	}
	slog.Error("submission failed",
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}
