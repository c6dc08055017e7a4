package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/foxseedlab/aijukucho/internal/config"
	"github.com/foxseedlab/aijukucho/internal/discord"
	"github.com/foxseedlab/aijukucho/internal/history"
	"github.com/foxseedlab/aijukucho/internal/llm"
	"github.com/foxseedlab/aijukucho/internal/metrics"
	"github.com/foxseedlab/aijukucho/internal/prompt"
	"github.com/foxseedlab/aijukucho/internal/repository"
	"github.com/foxseedlab/aijukucho/internal/webhook"
)

type Router struct {
	cfg     *config.Config
	history *history.Fetcher
	llm     *llm.Client
	repo    repository.Repository
	webhook webhook.Sender
	metrics metrics.Recorder
	now     func() time.Time

	mu        sync.RWMutex
	botUserID string
}

type invocation struct {
	command      string
	guildID      string
	channelID    string
	userID       string
	period       string
	messageCount int
	startedAt    time.Time
}

func NewRouter(cfg *config.Config, fetcher *history.Fetcher, llmClient *llm.Client, repo repository.Repository, wh webhook.Sender, recorder metrics.Recorder) *Router {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Router{
		cfg:     cfg,
		history: fetcher,
		llm:     llmClient,
		repo:    repo,
		webhook: wh,
		metrics: recorder,
		now:     time.Now,
	}
}

func (r *Router) SetBotUserID(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.botUserID = userID
}

func (r *Router) BotUserID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.botUserID
}

// Handle dispatches one gateway event. It blocks until every triggered action has replied.
func (r *Router) Handle(event discord.Event) {
	switch ev := event.(type) {
	case discord.MessageEvent:
		r.handleMessage(ev)
	case discord.SlashCommandEvent:
		r.handleSlashCommand(ev)
	default:
		slog.Warn("ignoring unsupported event", "event", event)
	}
}

func (r *Router) handleMessage(ev discord.MessageEvent) {
	slog.Debug("message received", "channel_id", ev.ChannelID, "author_id", ev.AuthorID, "content", ev.Content)

	if ev.Content == triggerFetchLogs {
		inv := r.newInvocation(commandFetchLogs, ev.GuildID, ev.ChannelID, ev.AuthorID)
		r.run(inv, ev.Reply, func(ctx context.Context) failureKind {
			return r.fetchLogs(ctx, ev, inv)
		})
	}

	if r.isQuestion(ev) {
		inv := r.newInvocation(commandQuestion, ev.GuildID, ev.ChannelID, ev.AuthorID)
		r.run(inv, ev.Reply, func(ctx context.Context) failureKind {
			return r.answerQuestion(ctx, ev)
		})
	}
}

func (r *Router) isQuestion(ev discord.MessageEvent) bool {
	return ev.ChannelID == r.cfg.QuestionChannelID &&
		ev.Mentions(r.BotUserID()) &&
		!ev.AuthorIsBot
}

func (r *Router) fetchLogs(ctx context.Context, ev discord.MessageEvent, inv *invocation) failureKind {
	if !ev.ChannelKind.IsGuildText() {
		return deliver(ev.Reply, messageFetchLogsTextChannelOnly, failureWrongChannel)
	}
	logs, err := r.history.FetchAll(ctx, ev.ChannelID)
	if err != nil {
		slog.Error("failed to fetch channel logs", "error", err, "channel_id", ev.ChannelID)
		return deliver(ev.Reply, messageFetchLogsFailed, failureHistoryFetch)
	}
	inv.messageCount = len(logs)
	slog.Info("channel logs fetched", "channel_id", ev.ChannelID, "messages", len(logs))
	return deliver(ev.Reply, fetchLogsDoneMessage(len(logs)), failureNone)
}

func (r *Router) answerQuestion(ctx context.Context, ev discord.MessageEvent) failureKind {
	slog.Info("answering question", "channel_id", ev.ChannelID, "author_id", ev.AuthorID)
	answer := r.llm.Ask(ctx, prompt.Question(ev.Content))
	return deliver(ev.Reply, answer, failureNone)
}

func (r *Router) handleSlashCommand(ev discord.SlashCommandEvent) {
	switch ev.CommandName {
	case commandPing:
		inv := r.newInvocation(commandPing, ev.GuildID, ev.ChannelID, ev.UserID)
		r.run(inv, ev.Respond, func(context.Context) failureKind {
			return deliver(ev.Respond, messagePong, failureNone)
		})
	case commandSummarize:
		inv := r.newInvocation(commandSummarize, ev.GuildID, ev.ChannelID, ev.UserID)
		reply := &interactionReply{event: ev}
		r.run(inv, reply.send, func(ctx context.Context) failureKind {
			return r.summarize(ctx, ev, reply, inv)
		})
	default:
		slog.Debug("ignoring unknown slash command", "command", ev.CommandName, "guild_id", ev.GuildID)
	}
}

func (r *Router) summarize(ctx context.Context, ev discord.SlashCommandEvent, reply *interactionReply, inv *invocation) failureKind {
	if !ev.ChannelKind.IsTextCapable() {
		return deliver(reply.send, messageSummarizeTextChannelOnly, failureWrongChannel)
	}
	period, err := history.ParsePeriod(ev.Options[optionPeriod])
	if err != nil {
		slog.Warn("invalid summarize period", "error", err, "channel_id", ev.ChannelID)
		return deliver(reply.send, messageSummarizeFailed, failureInvalidOption)
	}
	inv.period = string(period)

	if err := reply.deferReply(); err != nil {
		slog.Error("failed to defer summarize reply", "error", err, "channel_id", ev.ChannelID)
		return failureReply
	}

	transcript, err := r.history.FetchTranscript(ctx, ev.ChannelID, period)
	if err != nil {
		slog.Error("failed to fetch channel logs for summary", "error", err, "channel_id", ev.ChannelID, "period", period)
		return deliver(reply.send, messageSummarizeFailed, failureHistoryFetch)
	}
	inv.messageCount = transcript.Len()
	slog.Info("summarizing channel", "channel_id", ev.ChannelID, "period", period, "messages", transcript.Len())

	summary := r.llm.Ask(ctx, prompt.Summary(period, transcript.String()))
	kind := deliver(reply.send, summary, failureNone)
	if kind == failureNone && summary != llm.FallbackReply {
		r.publishSummary(ctx, ev, period, transcript.Len(), summary)
	}
	return kind
}

func (r *Router) publishSummary(ctx context.Context, ev discord.SlashCommandEvent, period history.Period, messageCount int, summary string) {
	err := r.webhook.SendSummary(ctx, webhook.SummaryWebhookPayload{
		SchemaVersion: webhook.SummaryWebhookSchemaVersion,
		GuildID:       ev.GuildID,
		ChannelID:     ev.ChannelID,
		RequestedBy:   ev.UserID,
		Period:        string(period),
		PeriodLabel:   prompt.PeriodLabel(period),
		MessageCount:  messageCount,
		GeneratedAt:   r.now().Format(time.RFC3339),
		Summary:       summary,
	})
	if err != nil {
		slog.Error("failed to send summary webhook", "error", err, "channel_id", ev.ChannelID)
	}
}

func (r *Router) newInvocation(command, guildID, channelID, userID string) *invocation {
	return &invocation{
		command:   command,
		guildID:   guildID,
		channelID: channelID,
		userID:    userID,
		startedAt: r.now(),
	}
}

func (r *Router) run(inv *invocation, fallback func(content string) error, action func(ctx context.Context) failureKind) {
	ctx := context.Background()
	kind := r.runRecovered(ctx, inv, fallback, action)
	r.record(ctx, inv, kind)
}

func (r *Router) runRecovered(ctx context.Context, inv *invocation, fallback func(content string) error, action func(ctx context.Context) failureKind) (kind failureKind) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		slog.Error("command handler panicked", "command", inv.command, "channel_id", inv.channelID, "panic", p, "stack", string(debug.Stack()))
		kind = failureUnexpected
		if err := fallback(messageUnexpectedError); err != nil {
			slog.Error("failed to send error reply", "error", err, "command", inv.command)
		}
	}()
	return action(ctx)
}

func (r *Router) record(ctx context.Context, inv *invocation, kind failureKind) {
	endedAt := r.now()
	outcome := kind.outcome()
	r.metrics.ObserveCommand(inv.command, string(outcome), endedAt.Sub(inv.startedAt))
	_, err := r.repo.RecordInvocation(ctx, repository.RecordInvocationInput{
		Command:      inv.command,
		GuildID:      inv.guildID,
		ChannelID:    inv.channelID,
		UserID:       inv.userID,
		Period:       inv.period,
		MessageCount: inv.messageCount,
		Outcome:      outcome,
		StartedAt:    inv.startedAt,
		EndedAt:      endedAt,
	})
	if err != nil {
		slog.Error("failed to record command invocation", "error", err, "command", inv.command, "channel_id", inv.channelID)
	}
}

// interactionReply answers an interaction directly until it is deferred, then edits the deferred response.
type interactionReply struct {
	event    discord.SlashCommandEvent
	mu       sync.Mutex
	deferred bool
}

func (i *interactionReply) deferReply() error {
	if err := i.event.Defer(); err != nil {
		return err
	}
	i.mu.Lock()
	i.deferred = true
	i.mu.Unlock()
	return nil
}

func (i *interactionReply) send(content string) error {
	i.mu.Lock()
	deferred := i.deferred
	i.mu.Unlock()
	if deferred {
		return i.event.EditResponse(content)
	}
	return i.event.Respond(content)
}
