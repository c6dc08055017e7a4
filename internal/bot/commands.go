package bot

import (
	"github.com/foxseedlab/aijukucho/internal/discord"
	"github.com/foxseedlab/aijukucho/internal/history"
	"github.com/foxseedlab/aijukucho/internal/prompt"
)

const (
	commandPing      = "ping"
	commandSummarize = "summarize"
	optionPeriod     = "period"

	triggerFetchLogs = "!fetchLogs"

	// names used in metrics and invocation records for message-triggered actions
	commandFetchLogs = "fetch_logs"
	commandQuestion  = "question"
)

func SlashCommandDefinitions() []discord.SlashCommandDefinition {
	return []discord.SlashCommandDefinition{
		{
			Name:        commandPing,
			Description: slashCommandPingDescription,
		},
		{
			Name:        commandSummarize,
			Description: slashCommandSummarizeDescription,
			Options: []discord.SlashCommandOption{
				{
					Name:        optionPeriod,
					Description: slashOptionPeriodDescription,
					Required:    true,
					Choices: []discord.SlashCommandChoice{
						{Name: prompt.PeriodLabel(history.PeriodWeek), Value: string(history.PeriodWeek)},
						{Name: prompt.PeriodLabel(history.PeriodAll), Value: string(history.PeriodAll)},
					},
				},
			},
		},
	}
}

func SlashCommandNames() []string {
	defs := SlashCommandDefinitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}
