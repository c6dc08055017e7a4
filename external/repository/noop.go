package repository

import (
	"context"

	"github.com/foxseedlab/aijukucho/internal/repository"
)

// DiscardRepository is used when DATABASE_URL is not configured.
type DiscardRepository struct{}

func NewDiscardRepository() repository.Repository {
	return DiscardRepository{}
}

func (DiscardRepository) RecordInvocation(_ context.Context, input repository.RecordInvocationInput) (*repository.Invocation, error) {
	return &repository.Invocation{
		Command:      input.Command,
		GuildID:      input.GuildID,
		ChannelID:    input.ChannelID,
		UserID:       input.UserID,
		Period:       input.Period,
		MessageCount: input.MessageCount,
		Outcome:      input.Outcome,
		StartedAt:    input.StartedAt,
		EndedAt:      input.EndedAt,
	}, nil
}
