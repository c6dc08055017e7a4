package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE invocation_outcome AS ENUM ('ok', 'wrong_channel', 'history_fetch', 'invalid_option', 'reply', 'unexpected'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS command_invocations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		command TEXT NOT NULL,
		guild_id TEXT NOT NULL DEFAULT '',
		channel_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		period TEXT NOT NULL DEFAULT '',
		message_count INTEGER NOT NULL DEFAULT 0,
		outcome invocation_outcome NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_command_invocations_channel ON command_invocations (channel_id, started_at DESC)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
