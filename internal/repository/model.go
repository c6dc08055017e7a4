package repository

import "time"

type InvocationOutcome string

const (
	InvocationOutcomeOK            InvocationOutcome = "ok"
	InvocationOutcomeWrongChannel  InvocationOutcome = "wrong_channel"
	InvocationOutcomeHistoryFetch  InvocationOutcome = "history_fetch"
	InvocationOutcomeInvalidOption InvocationOutcome = "invalid_option"
	InvocationOutcomeReply         InvocationOutcome = "reply"
	InvocationOutcomeUnexpected    InvocationOutcome = "unexpected"
)

// Invocation is one handled command. It never holds message content.
type Invocation struct {
	ID           string
	Command      string
	GuildID      string
	ChannelID    string
	UserID       string
	Period       string
	MessageCount int
	Outcome      InvocationOutcome
	StartedAt    time.Time
	EndedAt      time.Time
	CreatedAt    time.Time
}
