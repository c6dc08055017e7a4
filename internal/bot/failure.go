package bot

import (
	"log/slog"

	"github.com/foxseedlab/aijukucho/internal/repository"
)

// failureKind classifies how a command ended. Model failures never show up here:
// the language model client already turned them into a fallback reply.
type failureKind int

const (
	failureNone failureKind = iota
	failureWrongChannel
	failureHistoryFetch
	failureInvalidOption
	failureReply
	failureUnexpected
)

func (k failureKind) outcome() repository.InvocationOutcome {
	switch k {
	case failureNone:
		return repository.InvocationOutcomeOK
	case failureWrongChannel:
		return repository.InvocationOutcomeWrongChannel
	case failureHistoryFetch:
		return repository.InvocationOutcomeHistoryFetch
	case failureInvalidOption:
		return repository.InvocationOutcomeInvalidOption
	case failureReply:
		return repository.InvocationOutcomeReply
	default:
		return repository.InvocationOutcomeUnexpected
	}
}

// deliver sends content and returns kind, or failureReply when a successful command could not answer.
func deliver(send func(content string) error, content string, kind failureKind) failureKind {
	if err := send(content); err != nil {
		slog.Error("failed to send reply", "error", err)
		if kind == failureNone {
			return failureReply
		}
	}
	return kind
}
