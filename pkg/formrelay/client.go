// Package formrelay posts form submissions to a Formspree-compatible relay.
// Uses raw HTTP calls; the relay API is a single JSON POST.
package formrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SubjectField is the relay's reserved key for the notification e-mail subject.
const SubjectField = "_subject"

// ErrNotConfigured is returned when no relay endpoint is set.
var ErrNotConfigured = errors.New("formrelay: not configured")

// Client は フォーム中継サービスへの送信インターフェース
type Client interface {
	// Submit posts fields plus the _subject key to the relay.
	Submit(ctx context.Context, subject string, fields map[string]any) error
}

// RealClient is the HTTP implementation of Client.
type RealClient struct {
	Endpoint   string
	httpClient *http.Client
}

// NewClient creates a RealClient for endpoint (e.g. https://formspree.io/f/<form-id>).
func NewClient(endpoint string, timeout time.Duration) *RealClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RealClient{
		Endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ Client = (*RealClient)(nil)

// Submit sends one submission. Any non-2xx response is an error.
func (c *RealClient) Submit(ctx context.Context, subject string, fields map[string]any) error {
	if c.Endpoint == "" {
		return ErrNotConfigured
	}

	body := make(map[string]any, len(fields)+1)
	body[SubjectField] = subject
	for k, v := range fields {
		body[k] = v
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("formrelay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var result struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &result) == nil && result.Error != "" {
			return fmt.Errorf("formrelay: status %d: %s", resp.StatusCode, result.Error)
		}
		return fmt.Errorf("formrelay: status %d", resp.StatusCode)
	}
	return nil
}
