package forwarder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/pkg/formrelay"
)

// captureRelay は 受信したリクエストボディを記録するテスト用リレー
func captureRelay(t *testing.T, status int) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode relay body: %v", err)
		}
		w.WriteHeader(status)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestRelaySink_Contact(t *testing.T) {
	srv, got := captureRelay(t, http.StatusOK)
	sink := NewRelaySink(formrelay.NewClient(srv.URL, time.Second))

	if err := sink.Deliver(context.Background(), contactSub()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := *got
	if body["_subject"] != "New Contact: Hi" {
		t.Errorf("unexpected subject %v", body["_subject"])
	}
	if body["message"] != "Hello" || body["email"] != "a@b.com" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRelaySink_OrderOmitsEmptyOptionalFields(t *testing.T) {
	srv, got := captureRelay(t, http.StatusOK)
	sink := NewRelaySink(formrelay.NewClient(srv.URL, time.Second))

	rec := &model.OrderRecord{
		ID: "ORD-1-1",
		OrderRequest: model.OrderRequest{
			Name: "Sara", Email: "s@e.com", Service: "Portrait", Details: "0123456789",
		},
		Status: model.OrderStatusPending,
	}
	if err := sink.Deliver(context.Background(), OrderSubmission(rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := *got
	if body["_subject"] != "New Order: Portrait (ORD-1-1)" {
		t.Errorf("unexpected subject %v", body["_subject"])
	}
	if body["orderId"] != "ORD-1-1" {
		t.Errorf("expected orderId, got %v", body["orderId"])
	}
	if _, ok := body["phone"]; ok {
		t.Error("empty phone should be omitted")
	}
	if _, ok := body["budget"]; ok {
		t.Error("empty budget should be omitted")
	}
}

func TestRelaySink_OrderKeepsSentEmptyOptionalFields(t *testing.T) {
	srv, got := captureRelay(t, http.StatusOK)
	sink := NewRelaySink(formrelay.NewClient(srv.URL, time.Second))

	rec := &model.OrderRecord{
		ID: "ORD-1-2",
		OrderRequest: model.OrderRequest{
			Name: "Sara", Email: "s@e.com", Service: "Portrait", Details: "0123456789",
			Phone: "", HasPhone: true,
			Budget: "", HasBudget: true,
		},
		Status: model.OrderStatusPending,
	}
	if err := sink.Deliver(context.Background(), OrderSubmission(rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := *got
	if v, ok := body["phone"]; !ok || v != "" {
		t.Errorf("phone: got %v (present=%v), want empty string", v, ok)
	}
	if v, ok := body["budget"]; !ok || v != "" {
		t.Errorf("budget: got %v (present=%v), want empty string", v, ok)
	}
}

func TestRelaySink_RejectionIsAnError(t *testing.T) {
	srv, _ := captureRelay(t, http.StatusUnprocessableEntity)
	sink := NewRelaySink(formrelay.NewClient(srv.URL, time.Second))
	if err := sink.Deliver(context.Background(), contactSub()); err == nil {
		t.Error("expected error for non-2xx relay response")
	}
}
