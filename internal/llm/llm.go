package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/aijukucho/internal/metrics"
)

// FallbackReply is what users see when the model call fails.
const FallbackReply = "エラーが発生しました。"

type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Client struct {
	model   Model
	metrics metrics.Recorder
}

func NewClient(model Model, recorder metrics.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Client{model: model, metrics: recorder}
}

// Ask never fails: model errors are logged and replaced with FallbackReply.
func (c *Client) Ask(ctx context.Context, prompt string) string {
	start := time.Now()
	text, err := c.model.GenerateText(ctx, prompt)
	if err != nil {
		c.metrics.ObserveModelCall("error", time.Since(start))
		slog.Error("language model call failed", "error", err, "prompt_chars", len([]rune(prompt)))
		return FallbackReply
	}
	c.metrics.ObserveModelCall("ok", time.Since(start))
	return text
}
