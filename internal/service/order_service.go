package service

import (
	"context"

	"github.com/saqify/backend/internal/model"
)

// OrderService defines the business logic for order intake and listing.
type OrderService interface {
	// Submit validates the raw payload, assigns an identifier and forwards the
	// record. Sink failures are never returned.
	Submit(ctx context.Context, input map[string]any) (*model.OrderRecord, error)

	// List returns every stored order, newest first.
	List(ctx context.Context) ([]*model.OrderRecord, error)
}
