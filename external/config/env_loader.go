package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/aijukucho/internal/config"
	"github.com/joho/godotenv"
)

const dotenvPath = ".env"

type envConfig struct {
	Env                        string `env:"ENV" envDefault:"production"`
	DiscordToken               string `env:"DISCORD_TOKEN,required"`
	DiscordGuildID             string `env:"DISCORD_GUILD_ID"`
	QuestionChannelID          string `env:"QUESTION_CHANNEL_ID,required"`
	GeminiBackend              string `env:"GEMINI_BACKEND" envDefault:"gemini"`
	GeminiAPIKey               string `env:"GEMINI_API_KEY"`
	GeminiModel                string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GoogleCloudProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudLocation        string `env:"GOOGLE_CLOUD_LOCATION" envDefault:"asia-northeast1"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	HistoryMaxPages            int    `env:"HISTORY_MAX_PAGES" envDefault:"0"`
	DatabaseURL                string `env:"DATABASE_URL"`
	SummaryWebhookURL          string `env:"SUMMARY_WEBHOOK_URL"`
	MetricsAddr                string `env:"METRICS_ADDR"`
}

func Load() (*internalconfig.Config, error) {
	if err := loadDotenv(dotenvPath); err != nil {
		return nil, err
	}

	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		DiscordToken:               raw.DiscordToken,
		DiscordGuildID:             raw.DiscordGuildID,
		QuestionChannelID:          raw.QuestionChannelID,
		GeminiBackend:              raw.GeminiBackend,
		GeminiAPIKey:               raw.GeminiAPIKey,
		GeminiModel:                raw.GeminiModel,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudLocation:        raw.GoogleCloudLocation,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		HistoryMaxPages:            raw.HistoryMaxPages,
		DatabaseURL:                raw.DatabaseURL,
		SummaryWebhookURL:          raw.SummaryWebhookURL,
		MetricsAddr:                raw.MetricsAddr,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Values already present in the process environment win over the file.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
