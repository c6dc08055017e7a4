package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockModel struct {
	prompts []string
	text    string
	err     error
}

func (m *mockModel) GenerateText(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.text, m.err
}

type mockRecorder struct {
	statuses []string
}

func (m *mockRecorder) ObserveCommand(string, string, time.Duration) {}
func (m *mockRecorder) ObserveModelCall(status string, _ time.Duration) {
	m.statuses = append(m.statuses, status)
}
func (m *mockRecorder) AddHistoryPages(int) {}

func TestAsk_ReturnsModelTextVerbatim(t *testing.T) {
	model := &mockModel{text: "  **回答**\n"}
	rec := &mockRecorder{}
	c := NewClient(model, rec)

	got := c.Ask(context.Background(), "質問")
	if got != "  **回答**\n" {
		t.Fatalf("unexpected reply: %q", got)
	}
	if len(model.prompts) != 1 || model.prompts[0] != "質問" {
		t.Fatalf("unexpected prompts: %q", model.prompts)
	}
	if len(rec.statuses) != 1 || rec.statuses[0] != "ok" {
		t.Fatalf("unexpected model call statuses: %v", rec.statuses)
	}
}

func TestAsk_NetworkErrorBecomesFallback(t *testing.T) {
	model := &mockModel{err: errors.New("dial tcp: connection refused")}
	rec := &mockRecorder{}
	c := NewClient(model, rec)

	got := c.Ask(context.Background(), "質問")
	if got != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", got)
	}
	if len(model.prompts) != 1 {
		t.Fatalf("expected exactly one attempt, got %d", len(model.prompts))
	}
	if len(rec.statuses) != 1 || rec.statuses[0] != "error" {
		t.Fatalf("unexpected model call statuses: %v", rec.statuses)
	}
}

func TestNewClient_NilRecorder(t *testing.T) {
	c := NewClient(&mockModel{text: "ok"}, nil)
	if got := c.Ask(context.Background(), "p"); got != "ok" {
		t.Fatalf("unexpected reply: %q", got)
	}
}
