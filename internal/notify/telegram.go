// Package notify pushes submission alerts to the studio's Telegram chat.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/saqify/backend/internal/forwarder"
)

// messageSender is the part of *tgbotapi.BotAPI the sink uses.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink sends a short text alert for every submission.
type TelegramSink struct {
	api    messageSender
	chatID int64
}

// NewTelegramSink authorizes the bot token and returns a sink posting to chatID.
// Every Bot API call, including the initial getMe, is bounded by timeout.
func NewTelegramSink(token string, chatID int64, timeout time.Duration) (*TelegramSink, error) {
	return newTelegramSink(token, chatID, tgbotapi.APIEndpoint, timeout)
}

func newTelegramSink(token string, chatID int64, endpoint string, timeout time.Duration) (*TelegramSink, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramSink{api: api, chatID: chatID}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

// Deliver sends the alert. The bot API has no context support, so the send
// runs in a goroutine and Deliver gives up when ctx is done.
func (s *TelegramSink) Deliver(ctx context.Context, sub forwarder.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := formatAlert(sub)
	if text == "" {
		return nil
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.DisableWebPagePreview = true

	done := make(chan error, 1)
	go func() {
		_, err := s.api.Send(msg)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telegram send: %w", ctx.Err())
	}
}

func formatAlert(sub forwarder.Submission) string {
	var b strings.Builder
	switch sub.Kind {
	case forwarder.KindContact:
		m := sub.Contact
		fmt.Fprintf(&b, "📩 New contact: %s\n", m.Subject)
		fmt.Fprintf(&b, "From: %s <%s>\n\n", m.Name, m.Email)
		b.WriteString(m.Message)
	case forwarder.KindOrder:
		o := sub.Order
		fmt.Fprintf(&b, "🎨 New order %s\n", o.ID)
		fmt.Fprintf(&b, "Service: %s\n", o.Service)
		fmt.Fprintf(&b, "From: %s <%s>\n", o.Name, o.Email)
		if o.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
		}
		if o.Budget != "" {
			fmt.Fprintf(&b, "Budget: %s\n", o.Budget)
		}
		b.WriteString("\n")
		b.WriteString(o.Details)
	}
	return b.String()
}
