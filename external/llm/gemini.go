package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"github.com/foxseedlab/aijukucho/internal/config"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var errEmptyResponse = errors.New("gemini returned no candidates")

type GeminiConfig struct {
	Backend         string
	APIKey          string
	Model           string
	ProjectID       string
	Location        string
	CredentialsJSON string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	}
	switch cfg.Backend {
	case config.GeminiBackendVertex:
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsJSON: []byte(cfg.CredentialsJSON),
			Scopes:          []string{cloudPlatformScope},
		})
		if err != nil {
			return nil, fmt.Errorf("detect credentials: %w", err)
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.ProjectID
		cc.Location = cfg.Location
		cc.Credentials = creds
	default:
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	slog.Info("gemini client initialized", "backend", cfg.Backend, "model", cfg.Model, "location", cfg.Location)
	return &GeminiModel{client: client, model: cfg.Model}, nil
}

func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", m.model, err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", errEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", errEmptyResponse
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", fmt.Errorf("%w: finish reason %s", errEmptyResponse, resp.Candidates[0].FinishReason)
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no text parts, finish reason %s", errEmptyResponse, resp.Candidates[0].FinishReason)
	}
	return b.String(), nil
}
