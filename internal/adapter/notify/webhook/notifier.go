// Package webhook posts significant mood transitions to an external endpoint.
// Delivery is best-effort: the caller logs and moves on when a post fails.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"npcmind/internal/domain/emotion"
)

const defaultTimeout = 5 * time.Second

type Notifier struct {
	URL    string
	Client *http.Client
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		URL:    url,
		Client: &http.Client{Timeout: defaultTimeout},
	}
}

func (n *Notifier) NotifyTransition(ctx context.Context, tr emotion.Transition) error {
	body, err := json.Marshal(tr)
	if err != nil {
		return fmt.Errorf("encode transition: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier drops transitions. Used when no webhook URL is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyTransition(context.Context, emotion.Transition) error {
	return nil
}
