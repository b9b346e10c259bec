package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/forwarder"
	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/repository"
	"github.com/saqify/backend/internal/validation"
)

type orderServiceImpl struct {
	forwarder SubmissionForwarder
	repo      repository.OrderRepository
	ids       *OrderIDGenerator
	now       func() time.Time
	timeout   time.Duration
}

// NewOrderService creates an OrderService. repo is the read side for List and
// may be nil when no order store is configured. timeout caps each hand-off.
func NewOrderService(f SubmissionForwarder, repo repository.OrderRepository, ids *OrderIDGenerator, timeout time.Duration) OrderService {
	if ids == nil {
		ids = NewOrderIDGenerator()
	}
	return &orderServiceImpl{forwarder: f, repo: repo, ids: ids, now: time.Now, timeout: timeout}
}

func (s *orderServiceImpl) Submit(ctx context.Context, input map[string]any) (*model.OrderRecord, error) {
	req, fe := validation.ValidateOrder(input)
	if fe != nil {
		return nil, apperr.Validation(fe)
	}

	// ID と createdAt は同じ時刻から作る
	now := s.now().UTC().Truncate(time.Millisecond)
	rec := &model.OrderRecord{
		ID:           s.ids.NextAt(now),
		OrderRequest: *req,
		CreatedAt:    now,
		Status:       model.OrderStatusPending,
	}

	out := forwardDetached(ctx, s.forwarder, forwarder.OrderSubmission(rec), s.timeout)
	slog.Info("order received",
		"order_id", rec.ID,
		"service", rec.Service,
		"delivered", out.Delivered,
		"failed_sinks", len(out.Failed),
	)
	return rec, nil
}

func (s *orderServiceImpl) List(ctx context.Context) ([]*model.OrderRecord, error) {
	if s.repo == nil {
		return []*model.OrderRecord{}, nil
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list orders")
	}
	if orders == nil {
		orders = []*model.OrderRecord{}
	}
	return orders, nil
}
