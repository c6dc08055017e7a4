package repository

import (
	"context"
	"time"
)

type RecordInvocationInput struct {
	Command      string
	GuildID      string
	ChannelID    string
	UserID       string
	Period       string
	MessageCount int
	Outcome      InvocationOutcome
	StartedAt    time.Time
	EndedAt      time.Time
}

type InvocationRepository interface {
	RecordInvocation(ctx context.Context, input RecordInvocationInput) (*Invocation, error)
}

type Repository interface {
	InvocationRepository
}
