package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/foxseedlab/aijukucho/external/config"
	"github.com/foxseedlab/aijukucho/external/discord"
	llmimpl "github.com/foxseedlab/aijukucho/external/llm"
	metricsimpl "github.com/foxseedlab/aijukucho/external/metrics"
	repositoryimpl "github.com/foxseedlab/aijukucho/external/repository"
	webhookimpl "github.com/foxseedlab/aijukucho/external/webhook"
	"github.com/foxseedlab/aijukucho/internal/bot"
	"github.com/foxseedlab/aijukucho/internal/config"
	discordpkg "github.com/foxseedlab/aijukucho/internal/discord"
	"github.com/foxseedlab/aijukucho/internal/history"
	"github.com/samber/do/v2"
)

const (
	discordConnectTimeout = 20 * time.Second
	shutdownTimeout       = 5 * time.Second
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "gemini_backend", cfg.GeminiBackend, "gemini_model", cfg.GeminiModel)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching discord bot")
	runBot(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	metricsimpl.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	discord.RegisterDI(injector)
	llmimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	history.RegisterDI(injector)
	bot.RegisterDI(injector)

	return injector
}

func runBot(cfg *config.Config, injector do.Injector) {
	dc, err := do.Invoke[discordpkg.Client](injector)
	if err != nil {
		slog.Error("failed to resolve discord client", "error", err)
		os.Exit(1)
	}
	router, err := do.Invoke[*bot.Router](injector)
	if err != nil {
		slog.Error("failed to resolve command router", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), discordConnectTimeout)
	defer cancel()

	slog.Info("startup: connecting to discord gateway")
	if err := dc.Connect(ctx); err != nil {
		slog.Error("discord connect failed", "error", err)
		os.Exit(1)
	}
	slog.Info("startup: discord connected")
	defer func() {
		if err := dc.Close(); err != nil {
			slog.Error("discord close failed", "error", err)
		}
	}()

	botUserID, err := dc.GetBotUserID()
	if err != nil {
		slog.Error("failed to resolve bot user id", "error", err)
		os.Exit(1)
	}
	router.SetBotUserID(botUserID)

	if err := dc.UpsertSlashCommands(cfg.DiscordGuildID, bot.SlashCommandDefinitions()); err != nil {
		slog.Error("failed to upsert slash commands", "error", err, "guild_id", cfg.DiscordGuildID)
		os.Exit(1)
	}

	dc.RegisterEventHandler(router.Handle)
	slog.Info("discord handlers registered",
		"guild_id", cfg.DiscordGuildID,
		"global_commands", cfg.RegistersGlobally(),
		"commands", bot.SlashCommandNames(),
		"question_channel_id", cfg.QuestionChannelID,
	)

	if cfg.MetricsAddr != "" {
		server := do.MustInvoke[*metricsimpl.Server](injector)
		server.Start()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		slog.Info("startup: entering discord run loop")
		if err := dc.Run(); err != nil {
			slog.Error("discord run failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-done:
	}
}
