package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/aijukucho/internal/webhook"
)

const (
	summaryPostTimeout = 10 * time.Second
	userAgent          = "aijukucho-bot"
	// error bodies are quoted in the returned error up to this many bytes
	maxErrorBodyBytes = 512
)

// HTTPSender posts summaries as JSON. An empty URL turns every send into a no-op.
type HTTPSender struct {
	url    string
	client *http.Client
}

func NewHTTPSender(url string) webhook.Sender {
	return &HTTPSender{
		url:    url,
		client: &http.Client{Timeout: summaryPostTimeout},
	}
}

func (s *HTTPSender) SendSummary(ctx context.Context, payload webhook.SummaryWebhookPayload) error {
	if s.url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode summary payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post summary: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("summary webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	slog.Info("summary webhook delivered", "channel_id", payload.ChannelID, "period", payload.Period, "status", resp.StatusCode)
	return nil
}
