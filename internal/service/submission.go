package service

import (
	"context"
	"time"

	"github.com/saqify/backend/internal/forwarder"
)

// SubmissionForwarder hands a validated submission to the configured sinks.
// Implemented by *forwarder.Forwarder.
type SubmissionForwarder interface {
	Forward(ctx context.Context, sub forwarder.Submission) forwarder.Outcome
}

// DefaultForwardTimeout bounds one hand-off when the caller passes no timeout.
const DefaultForwardTimeout = 30 * time.Second

// forwardDetached runs the forwarder on a context that the client cannot cancel
// but that still expires after timeout, so a hung sink cannot pin the request.
func forwardDetached(ctx context.Context, f SubmissionForwarder, sub forwarder.Submission, timeout time.Duration) forwarder.Outcome {
	if timeout <= 0 {
		timeout = DefaultForwardTimeout
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	return f.Forward(ctx, sub)
}
