package forwarder

import (
	"context"

	"github.com/saqify/backend/internal/repository"
)

// OrderStoreSink appends order records to the order collection.
type OrderStoreSink struct {
	repo repository.OrderRepository
}

// NewOrderStoreSink creates an OrderStoreSink.
func NewOrderStoreSink(repo repository.OrderRepository) *OrderStoreSink {
	return &OrderStoreSink{repo: repo}
}

func (s *OrderStoreSink) Name() string { return "order_store" }

func (s *OrderStoreSink) Deliver(ctx context.Context, sub Submission) error {
	if sub.Kind != KindOrder {
		return nil
	}
	return s.repo.Append(ctx, sub.Order)
}

// ContactStoreSink saves contact messages.
type ContactStoreSink struct {
	repo repository.ContactRepository
}

// NewContactStoreSink creates a ContactStoreSink.
func NewContactStoreSink(repo repository.ContactRepository) *ContactStoreSink {
	return &ContactStoreSink{repo: repo}
}

func (s *ContactStoreSink) Name() string { return "contact_store" }

func (s *ContactStoreSink) Deliver(ctx context.Context, sub Submission) error {
	if sub.Kind != KindContact {
		return nil
	}
	return s.repo.Save(ctx, sub.Contact)
}
