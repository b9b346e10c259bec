// Package apperr classifies the errors that cross the service boundary.
//
// Three kinds exist: validation errors (returned to the client with field
// details), sink delivery errors (logged, never returned), and internal faults
// (returned as a generic 500).
package apperr

import (
	"net/http"
	"sort"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeValidation   = "VALIDATION_FAILED"
	TextCodeSinkDelivery = "SINK_DELIVERY_FAILED"
	TextCodeInternal     = "INTERNAL_ERROR"
	TextCodeUnauthorized = "UNAUTHORIZED"
	TextCodeConflict     = "CONFLICT"
	TextCodeBadInput     = "BAD_INPUT"
)

// FieldErrors maps a field name to every message raised for it.
type FieldErrors map[string][]string

// Add appends msg to field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Fields returns the field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validation wraps fe into a validation envelope. Field order is stable.
func Validation(fe FieldErrors) error {
	var list []goerrors.FieldError
	for _, field := range fe.Fields() {
		for _, msg := range fe[field] {
			list = append(list, goerrors.FieldError{Field: field, Message: msg})
		}
	}
	return goerrors.NewValidation("validation failed", list...).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeValidation)
}

// SinkDelivery marks err as a failed hand-off to the named sink.
func SinkDelivery(sink string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "sink delivery failed").
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeSinkDelivery).
		WithMetadata(map[string]any{"sink": sink})
}

// Internal marks err as an unexpected fault.
func Internal(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeInternal)
}

// Unauthorized is a credential failure whose message is safe to show.
func Unauthorized(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(TextCodeUnauthorized)
}

// Conflict is a rejected write whose message is safe to show.
func Conflict(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusConflict).
		WithTextCode(TextCodeConflict)
}

// BadInput is a malformed request whose message is safe to show.
func BadInput(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeBadInput)
}

// FieldErrorsOf extracts the field details of a validation envelope.
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Category != goerrors.CategoryValidation {
		return nil, false
	}
	fe := FieldErrors{}
	for _, v := range rich.AllValidationErrors() {
		fe.Add(v.Field, v.Message)
	}
	return fe, true
}

// IsSinkDelivery reports whether err is a sink delivery failure.
func IsSinkDelivery(err error) bool {
	var rich *goerrors.Error
	return goerrors.As(err, &rich) && rich.TextCode == TextCodeSinkDelivery
}

// Public returns the HTTP status and the client-facing message for err.
// ok is false for anything that must be reported as an internal fault.
func Public(err error) (status int, message string, ok bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return http.StatusInternalServerError, "", false
	}
	switch rich.Category {
	case goerrors.CategoryAuth, goerrors.CategoryBadInput:
		return rich.Code, rich.Message, true
	}
	return http.StatusInternalServerError, "", false
}
