package bot

import "fmt"

const (
	slashCommandPingDescription      = "pong!"
	slashCommandSummarizeDescription = "チャンネルの内容を要約します。個別チャンネルで振り返りを行うことを想定しています。"
	slashOptionPeriodDescription     = "要約する期間を指定してください。"

	messagePong                     = "Pong!"
	messageFetchLogsTextChannelOnly = "このコマンドはテキストチャンネルでのみ使用可能です。"
	messageFetchLogsFailed          = "過去ログの取得に失敗しました。"
	messageSummarizeTextChannelOnly = "このコマンドはテキストチャンネルでのみ使用できます。"
	messageSummarizeFailed          = "要約中にエラーが発生しました。"
	messageUnexpectedError          = "エラーが発生しました。"

	messageFetchLogsDoneFormat = "過去ログを取得しました！ メッセージ数: %d"
)

func fetchLogsDoneMessage(count int) string {
	return fmt.Sprintf(messageFetchLogsDoneFormat, count)
}
