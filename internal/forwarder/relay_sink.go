package forwarder

import (
	"context"
	"fmt"

	"github.com/saqify/backend/pkg/formrelay"
)

// RelaySink forwards submissions to the form relay.
type RelaySink struct {
	client formrelay.Client
}

// NewRelaySink creates a RelaySink.
func NewRelaySink(client formrelay.Client) *RelaySink {
	return &RelaySink{client: client}
}

func (s *RelaySink) Name() string { return "relay" }

func (s *RelaySink) Deliver(ctx context.Context, sub Submission) error {
	switch sub.Kind {
	case KindContact:
		m := sub.Contact
		return s.client.Submit(ctx, "New Contact: "+m.Subject, map[string]any{
			"name":    m.Name,
			"email":   m.Email,
			"subject": m.Subject,
			"message": m.Message,
		})
	case KindOrder:
		o := sub.Order
		fields := map[string]any{
			"name":    o.Name,
			"email":   o.Email,
			"service": o.Service,
			"details": o.Details,
			"orderId": o.ID,
		}
		// 送信されたオプション項目は空文字でもそのまま渡す
		if o.HasPhone || o.Phone != "" {
			fields["phone"] = o.Phone
		}
		if o.HasBudget || o.Budget != "" {
			fields["budget"] = o.Budget
		}
		return s.client.Submit(ctx, fmt.Sprintf("New Order: %s (%s)", o.Service, o.ID), fields)
	}
	return nil
}
