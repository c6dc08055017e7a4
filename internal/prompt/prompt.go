// Package prompt builds the instructions sent to the language model.
//
// User content is embedded verbatim. Nothing is escaped, so a question or a
// channel log can steer the model; the persona and constraints are advisory only.
package prompt

import (
	"fmt"

	"github.com/foxseedlab/aijukucho/internal/history"
)

const persona = "あなたはIT活用塾のAI塾長です。"

const questionTemplate = persona + `Discord上の質問チャンネル上で、以下のことを考慮して質問に回答せよ。
## 制約条件
- 塾生からの質問に対してわかりやすい答えを提供すること
- 調べたほうがいいこと(Webの検索ワード等も添える)、次に取るべきアクションの提案
- 倫理的に反することには回答しない
- 結果はDiscordのマークダウン形式でわかりやすく提供せよ

## 質問内容
%s`

const summaryTemplate = persona + `Discord上の個別の活動チャンネルに対して、以下のことを考慮して内容をまとめよ。
## 制約条件
- あなたの目的は塾生の活動ログをわかりやすくまとめ、塾生の振り返りの質を高めることです。
- 活動ログの期間は%s
- 塾生の活動に対してあなたの評価を述べてください。
- 調べたほうがいいこと(Webの検索ワード等も添える)、次に取るべきアクションの提案
- 倫理的に反することには回答しない
- 結果はDiscordのマークダウン形式でわかりやすく提供せよ

## 活動ログ
%s`

func Question(question string) string {
	return fmt.Sprintf(questionTemplate, question)
}

func Summary(period history.Period, transcript string) string {
	return fmt.Sprintf(summaryTemplate, PeriodLabel(period), transcript)
}

// PeriodLabel is the natural-language name of a period, also used as the slash command choice label.
func PeriodLabel(period history.Period) string {
	if period == history.PeriodWeek {
		return "1週間"
	}
	return "全期間"
}
