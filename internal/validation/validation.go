// Package validation checks raw form submissions against the intake rules.
//
// Input is the decoded JSON object exactly as the client sent it. Every
// violation is collected so the form can show all problems in one round trip.
package validation

import (
	"fmt"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
)

const (
	msgRequired = "Required"
	msgName     = "Name must be at least 2 characters"
	msgEmail    = "Invalid email address"
	msgSubject  = "Subject is required"
	msgMessage  = "Message is required"
	msgService  = "Please select a service"
	msgDetails  = "Please provide more details about your project"
)

// minLength fails strings shorter than n code points, including "".
// ozzo's RuneLength treats empty values as valid, so Required carries the same message.
func minLength(n int, msg string) []ozzo.Rule {
	return []ozzo.Rule{
		ozzo.Required.Error(msg),
		ozzo.RuneLength(n, 0).Error(msg),
	}
}

var (
	nameRules    = minLength(2, msgName)
	emailRules   = []ozzo.Rule{ozzo.Required.Error(msgEmail), is.EmailFormat.Error(msgEmail)}
	subjectRules = minLength(1, msgSubject)
	messageRules = minLength(1, msgMessage)
	serviceRules = minLength(1, msgService)
	detailsRules = minLength(10, msgDetails)
)

// ValidateContact validates a contact form payload.
func ValidateContact(input map[string]any) (*model.ContactMessage, apperr.FieldErrors) {
	fe := apperr.FieldErrors{}
	msg := &model.ContactMessage{
		Name:    requiredString(input, "name", nameRules, fe),
		Email:   requiredString(input, "email", emailRules, fe),
		Subject: requiredString(input, "subject", subjectRules, fe),
		Message: requiredString(input, "message", messageRules, fe),
	}
	if len(fe) > 0 {
		return nil, fe
	}
	return msg, nil
}

// ValidateOrder validates an order form payload.
func ValidateOrder(input map[string]any) (*model.OrderRequest, apperr.FieldErrors) {
	fe := apperr.FieldErrors{}
	req := &model.OrderRequest{
		Name:    requiredString(input, "name", nameRules, fe),
		Email:   requiredString(input, "email", emailRules, fe),
		Service: requiredString(input, "service", serviceRules, fe),
		Details: requiredString(input, "details", detailsRules, fe),
	}
	req.Phone, req.HasPhone = optionalString(input, "phone", fe)
	req.Budget, req.HasBudget = optionalString(input, "budget", fe)
	if len(fe) > 0 {
		return nil, fe
	}
	return req, nil
}

func requiredString(input map[string]any, field string, rules []ozzo.Rule, fe apperr.FieldErrors) string {
	raw, present := input[field]
	if !present {
		fe.Add(field, msgRequired)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		fe.Add(field, typeMismatch(raw))
		return ""
	}
	if err := ozzo.Validate(s, rules...); err != nil {
		fe.Add(field, err.Error())
	}
	return s
}

// optionalString reports the value and whether the field was sent as a string.
func optionalString(input map[string]any, field string, fe apperr.FieldErrors) (string, bool) {
	raw, present := input[field]
	if !present {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		fe.Add(field, typeMismatch(raw))
		return "", false
	}
	return s, true
}

func typeMismatch(v any) string {
	return fmt.Sprintf("Expected string, received %s", jsonType(v))
}

// jsonType names the JSON type of a value produced by encoding/json.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
