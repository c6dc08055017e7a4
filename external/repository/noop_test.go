package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/aijukucho/internal/repository"
)

func TestDiscardRepository_EchoesInput(t *testing.T) {
	repo := NewDiscardRepository()
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	inv, err := repo.RecordInvocation(context.Background(), repository.RecordInvocationInput{
		Command:      "summarize",
		ChannelID:    "channel-1",
		UserID:       "user-1",
		Period:       "week",
		MessageCount: 40,
		Outcome:      repository.InvocationOutcomeOK,
		StartedAt:    started,
		EndedAt:      started.Add(3 * time.Second),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Command != "summarize" || inv.MessageCount != 40 || inv.Outcome != repository.InvocationOutcomeOK {
		t.Fatalf("unexpected invocation: %+v", inv)
	}
}

func TestMigrationStatements_CoverEveryOutcome(t *testing.T) {
	outcomes := []repository.InvocationOutcome{
		repository.InvocationOutcomeOK,
		repository.InvocationOutcomeWrongChannel,
		repository.InvocationOutcomeHistoryFetch,
		repository.InvocationOutcomeInvalidOption,
		repository.InvocationOutcomeReply,
		repository.InvocationOutcomeUnexpected,
	}
	for _, o := range outcomes {
		found := false
		for _, stmt := range migrationStatements {
			if strings.Contains(stmt, "'"+string(o)+"'") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("outcome %q missing from invocation_outcome enum", o)
		}
	}
}
