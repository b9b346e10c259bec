package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/forwarder"
	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/validation"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	forwarder SubmissionForwarder
	timeout   time.Duration
}

// NewContactService creates a ContactService that forwards through f.
// timeout caps each hand-off; zero means DefaultForwardTimeout.
func NewContactService(f SubmissionForwarder, timeout time.Duration) ContactService {
	return &contactServiceImpl{forwarder: f, timeout: timeout}
}

func (s *contactServiceImpl) Submit(ctx context.Context, input map[string]any) (*model.ContactMessage, error) {
	msg, fe := validation.ValidateContact(input)
	if fe != nil {
		return nil, apperr.Validation(fe)
	}

	out := forwardDetached(ctx, s.forwarder, forwarder.ContactSubmission(msg), s.timeout)
	slog.Info("contact message received",
		"subject", msg.Subject,
		"delivered", out.Delivered,
		"failed_sinks", len(out.Failed),
	)
	return msg, nil
}
