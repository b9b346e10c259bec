package forwarder

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
)

type fakeSink struct {
	name  string
	err   error
	panic any
	calls int
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(ctx context.Context, sub Submission) error {
	f.calls++
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

func contactSub() Submission {
	return ContactSubmission(&model.ContactMessage{Name: "Al", Email: "a@b.com", Subject: "Hi", Message: "Hello"})
}

func TestForward_AllSinksDelivered(t *testing.T) {
	a, b := &fakeSink{name: "a"}, &fakeSink{name: "b"}
	out := New(a, b).Forward(context.Background(), contactSub())

	if !out.OK() {
		t.Fatalf("expected OK outcome, got %+v", out.Failed)
	}
	if !reflect.DeepEqual(out.Delivered, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", out.Delivered)
	}
}

func TestForward_FailureDoesNotStopLaterSinks(t *testing.T) {
	a := &fakeSink{name: "relay", err: errors.New("timeout")}
	b := &fakeSink{name: "order_store"}
	out := New(a, b).Forward(context.Background(), contactSub())

	if b.calls != 1 {
		t.Errorf("expected later sink to run once, ran %d", b.calls)
	}
	if out.OK() {
		t.Fatal("expected failed outcome")
	}
	err := out.Failed["relay"]
	if !apperr.IsSinkDelivery(err) {
		t.Errorf("expected sink delivery error, got %v", err)
	}
	if !reflect.DeepEqual(out.Delivered, []string{"order_store"}) {
		t.Errorf("expected [order_store], got %v", out.Delivered)
	}
}

func TestForward_PanickingSinkIsIsolated(t *testing.T) {
	a := &fakeSink{name: "telegram", panic: "boom"}
	b := &fakeSink{name: "relay"}
	out := New(a, b).Forward(context.Background(), contactSub())

	if b.calls != 1 {
		t.Error("expected the sink after a panic to run")
	}
	err, ok := out.Failed["telegram"]
	if !ok || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected panic recorded as failure, got %v", err)
	}
}

func TestNew_SkipsNilSinks(t *testing.T) {
	f := New(&fakeSink{name: "a"}, nil)
	if got := f.Sinks(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("expected [a], got %v", got)
	}
}

func TestForward_NoSinks(t *testing.T) {
	out := New().Forward(context.Background(), contactSub())
	if !out.OK() || len(out.Delivered) != 0 {
		t.Errorf("expected empty OK outcome, got %+v", out)
	}
}
