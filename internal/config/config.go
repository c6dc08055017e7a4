package config

import "fmt"

const (
	GeminiBackendAPI    = "gemini"
	GeminiBackendVertex = "vertex"
)

type Config struct {
	Env                        string
	DiscordToken               string
	DiscordGuildID             string
	QuestionChannelID          string
	GeminiBackend              string
	GeminiAPIKey               string
	GeminiModel                string
	GoogleCloudProjectID       string
	GoogleCloudLocation        string
	GoogleCloudCredentialsJSON string
	HistoryMaxPages            int
	DatabaseURL                string
	SummaryWebhookURL          string
	MetricsAddr                string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	switch c.GeminiBackend {
	case GeminiBackendAPI:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when GEMINI_BACKEND=%s", GeminiBackendAPI)
		}
	case GeminiBackendVertex:
		if c.GoogleCloudProjectID == "" || c.GoogleCloudLocation == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID and GOOGLE_CLOUD_LOCATION are required when GEMINI_BACKEND=%s", GeminiBackendVertex)
		}
		if c.GoogleCloudCredentialsJSON == "" {
			return fmt.Errorf("GOOGLE_CLOUD_CREDENTIALS_JSON is required when GEMINI_BACKEND=%s", GeminiBackendVertex)
		}
	default:
		return fmt.Errorf("GEMINI_BACKEND must be %q or %q, got %q", GeminiBackendAPI, GeminiBackendVertex, c.GeminiBackend)
	}
	if c.HistoryMaxPages < 0 {
		return fmt.Errorf("HISTORY_MAX_PAGES must not be negative, got %d", c.HistoryMaxPages)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "DISCORD_TOKEN", value: c.DiscordToken},
		{name: "QUESTION_CHANNEL_ID", value: c.QuestionChannelID},
		{name: "GEMINI_MODEL", value: c.GeminiModel},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// RegistersGlobally reports whether slash commands go to every guild instead of DiscordGuildID.
func (c *Config) RegistersGlobally() bool {
	return c.DiscordGuildID == ""
}
