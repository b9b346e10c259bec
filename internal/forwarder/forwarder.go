// Package forwarder hands validated submissions to external sinks.
//
// Delivery is best-effort: a sink failure is logged and recorded in the
// Outcome but never returned to the caller. The client is told its submission
// succeeded once validation passes, whether or not any sink received it.
package forwarder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
)

// Kind identifies the form a submission came from.
type Kind string

const (
	KindContact Kind = "contact"
	KindOrder   Kind = "order"
)

// Submission is one validated record. Exactly one of Contact and Order is set.
type Submission struct {
	Kind    Kind
	Contact *model.ContactMessage
	Order   *model.OrderRecord
}

// ContactSubmission wraps a contact message.
func ContactSubmission(msg *model.ContactMessage) Submission {
	return Submission{Kind: KindContact, Contact: msg}
}

// OrderSubmission wraps an order record.
func OrderSubmission(rec *model.OrderRecord) Submission {
	return Submission{Kind: KindOrder, Order: rec}
}

// Sink receives submissions. Sinks that do not handle a Kind return nil.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, sub Submission) error
}

// Outcome reports what happened to each sink.
type Outcome struct {
	Delivered []string
	Failed    map[string]error
}

// OK reports whether every sink accepted the submission.
func (o Outcome) OK() bool { return len(o.Failed) == 0 }

// Forwarder delivers each submission to all sinks in order.
type Forwarder struct {
	sinks []Sink
}

// New creates a Forwarder. Nil sinks are skipped.
func New(sinks ...Sink) *Forwarder {
	f := &Forwarder{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Sinks returns the configured sink names.
func (f *Forwarder) Sinks() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name()
	}
	return names
}

// Forward runs every sink to completion. It never fails.
func (f *Forwarder) Forward(ctx context.Context, sub Submission) Outcome {
	out := Outcome{}
	for _, s := range f.sinks {
		if err := deliver(ctx, s, sub); err != nil {
			wrapped := apperr.SinkDelivery(s.Name(), err)
			slog.Error("sink delivery failed",
				"sink", s.Name(),
				"kind", string(sub.Kind),
				"error", wrapped,
			)
			if out.Failed == nil {
				out.Failed = make(map[string]error)
			}
			out.Failed[s.Name()] = wrapped
			continue
		}
		out.Delivered = append(out.Delivered, s.Name())
	}
	return out
}

// deliver isolates a panicking sink so the remaining sinks still run.
func deliver(ctx context.Context, s Sink, sub Submission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return s.Deliver(ctx, sub)
}

type panicError struct{ value any }

func (e *panicError) Error() string { return fmt.Sprintf("sink panicked: %v", e.value) }
