package webhook

import "context"

const SummaryWebhookSchemaVersion = "2026-10-19"

type SummaryWebhookPayload struct {
	SchemaVersion string `json:"schema_version"`
	GuildID       string `json:"guild_id"`
	ChannelID     string `json:"channel_id"`
	RequestedBy   string `json:"requested_by"`
	Period        string `json:"period"`
	PeriodLabel   string `json:"period_label"`
	MessageCount  int    `json:"message_count"`
	GeneratedAt   string `json:"generated_at"`
	Summary       string `json:"summary"`
}

type Sender interface {
	SendSummary(ctx context.Context, payload SummaryWebhookPayload) error
}
