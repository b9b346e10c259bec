package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/forwarder"
	"github.com/saqify/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockOrderRepository — in-memory stub for testing
// ---------------------------------------------------------------------------

type mockOrderRepository struct {
	appendFunc func(ctx context.Context, rec *model.OrderRecord) error
	listFunc   func(ctx context.Context) ([]*model.OrderRecord, error)
}

func (m *mockOrderRepository) Append(ctx context.Context, rec *model.OrderRecord) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, rec)
	}
	return nil
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*model.OrderRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func validOrderInput() map[string]any {
	return map[string]any{
		"name":    "Sara",
		"email":   "sara@example.com",
		"service": "Portrait",
		"budget":  "$200-$500",
		"details": "0123456789",
	}
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestOrderService_Submit_BuildsPendingRecord(t *testing.T) {
	var stored *model.OrderRecord
	repo := &mockOrderRepository{
		appendFunc: func(ctx context.Context, rec *model.OrderRecord) error {
			stored = rec
			return nil
		},
	}
	svc := NewOrderService(forwarder.New(forwarder.NewOrderStoreSink(repo)), repo, nil, time.Second)

	before := time.Now().Add(-time.Millisecond)
	rec, err := svc.Submit(context.Background(), validOrderInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !orderIDPattern.MatchString(rec.ID) {
		t.Errorf("unexpected id %q", rec.ID)
	}
	if rec.Status != model.OrderStatusPending {
		t.Errorf("expected pending, got %q", rec.Status)
	}
	if rec.CreatedAt.Before(before) || rec.CreatedAt.After(time.Now()) {
		t.Errorf("CreatedAt %v out of range", rec.CreatedAt)
	}
	if rec.Budget != "$200-$500" || rec.Phone != "" {
		t.Errorf("unexpected optional fields: %+v", rec.OrderRequest)
	}
	if stored != rec {
		t.Error("expected the record to be appended to the store")
	}
}

func TestOrderService_Submit_ValidationError(t *testing.T) {
	sink := &mockSink{name: "relay"}
	svc := NewOrderService(forwarder.New(sink), nil, nil, time.Second)

	in := validOrderInput()
	in["details"] = "too short"
	_, err := svc.Submit(context.Background(), in)
	fe, ok := apperr.FieldErrorsOf(err)
	if !ok || len(fe["details"]) == 0 {
		t.Fatalf("expected details validation error, got %v", err)
	}
	if len(sink.got) != 0 {
		t.Error("invalid order must not be forwarded")
	}
}

func TestOrderService_Submit_StoreAndRelayFailuresAreSwallowed(t *testing.T) {
	repo := &mockOrderRepository{
		appendFunc: func(ctx context.Context, rec *model.OrderRecord) error {
			return errors.New("disk full")
		},
	}
	relay := &mockSink{
		name: "relay",
		deliverFunc: func(ctx context.Context, sub forwarder.Submission) error {
			return errors.New("dial tcp: connection refused")
		},
	}
	svc := NewOrderService(forwarder.New(relay, forwarder.NewOrderStoreSink(repo)), repo, nil, time.Second)

	rec, err := svc.Submit(context.Background(), validOrderInput())
	if err != nil {
		t.Fatalf("sink failures must not surface, got %v", err)
	}
	if rec.ID == "" {
		t.Error("expected an order id even when every sink failed")
	}
}

func TestOrderService_Submit_IDAndCreatedAtShareOneClockReading(t *testing.T) {
	svc := NewOrderService(forwarder.New(), nil, nil, time.Second).(*orderServiceImpl)
	// 呼ばれるたびに 1ms 進む時計
	tick := time.UnixMilli(1700000000123)
	svc.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	for range 3 {
		rec, err := svc.Submit(context.Background(), validOrderInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		prefix := fmt.Sprintf("ORD-%d-", rec.CreatedAt.UnixMilli())
		if !strings.HasPrefix(rec.ID, prefix) {
			t.Errorf("id %q does not match createdAt %v", rec.ID, rec.CreatedAt)
		}
	}
}

func TestOrderService_Submit_HungSinkIsCutOff(t *testing.T) {
	hung := &mockSink{
		name: "relay",
		deliverFunc: func(ctx context.Context, sub forwarder.Submission) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	svc := NewOrderService(forwarder.New(hung), nil, nil, 50*time.Millisecond)

	start := time.Now()
	rec, err := svc.Submit(context.Background(), validOrderInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected an order id after a timed-out sink")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Submit took %v, want it bounded by the forwarding timeout", elapsed)
	}
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestOrderService_List_NoStore(t *testing.T) {
	svc := NewOrderService(forwarder.New(), nil, nil, time.Second)
	orders, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Errorf("expected empty non-nil list, got %v", orders)
	}
}

func TestOrderService_List_RepositoryError(t *testing.T) {
	repo := &mockOrderRepository{
		listFunc: func(ctx context.Context) ([]*model.OrderRecord, error) {
			return nil, errors.New("read failed")
		},
	}
	svc := NewOrderService(forwarder.New(), repo, nil, time.Second)
	if _, err := svc.List(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestOrderService_List_NilBecomesEmpty(t *testing.T) {
	svc := NewOrderService(forwarder.New(), &mockOrderRepository{}, nil, time.Second)
	orders, err := svc.List(context.Background())
	if err != nil || orders == nil {
		t.Errorf("expected empty non-nil list, got %v (err=%v)", orders, err)
	}
}
