package repository

import (
	"context"

	"github.com/foxseedlab/aijukucho/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) RecordInvocation(ctx context.Context, input repository.RecordInvocationInput) (*repository.Invocation, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO command_invocations (command, guild_id, channel_id, user_id, period, message_count, outcome, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, command, guild_id, channel_id, user_id, period, message_count, outcome, started_at, ended_at, created_at`,
		input.Command, input.GuildID, input.ChannelID, input.UserID, input.Period, input.MessageCount, string(input.Outcome), input.StartedAt, input.EndedAt)
	var inv repository.Invocation
	var outcome string
	err := row.Scan(&inv.ID, &inv.Command, &inv.GuildID, &inv.ChannelID, &inv.UserID, &inv.Period, &inv.MessageCount, &outcome, &inv.StartedAt, &inv.EndedAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	inv.Outcome = repository.InvocationOutcome(outcome)
	return &inv, nil
}
