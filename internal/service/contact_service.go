package service

import (
	"context"

	"github.com/saqify/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates the raw payload and forwards it. It returns a
	// validation error for bad input; sink failures are never returned.
	Submit(ctx context.Context, input map[string]any) (*model.ContactMessage, error)
}
