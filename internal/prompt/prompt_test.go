package prompt

import (
	"strings"
	"testing"

	"github.com/foxseedlab/aijukucho/internal/history"
)

func TestQuestion_AppendsQuestionVerbatim(t *testing.T) {
	q := "<@123> goroutine のリークを調べる方法は？ %s %d"
	got := Question(q)

	if !strings.HasPrefix(got, "あなたはIT活用塾のAI塾長です。") {
		t.Fatalf("missing persona: %q", got)
	}
	if !strings.HasSuffix(got, "## 質問内容\n"+q) {
		t.Fatalf("question not appended verbatim: %q", got)
	}
	if n := strings.Count(got, "\n- "); n != 4 {
		t.Fatalf("expected 4 constraints, got %d", n)
	}
	if !strings.Contains(got, "倫理的に反することには回答しない") {
		t.Fatal("missing ethics constraint")
	}
}

func TestSummary_PeriodLabelAndTranscript(t *testing.T) {
	transcript := "[alice] 今日は Go の勉強をした\n[bob] いいね"

	week := Summary(history.PeriodWeek, transcript)
	if !strings.Contains(week, "- 活動ログの期間は1週間\n") {
		t.Fatalf("week label missing: %q", week)
	}
	if !strings.HasSuffix(week, "## 活動ログ\n"+transcript) {
		t.Fatalf("transcript not appended verbatim: %q", week)
	}

	all := Summary(history.PeriodAll, transcript)
	if !strings.Contains(all, "- 活動ログの期間は全期間\n") {
		t.Fatalf("all label missing: %q", all)
	}
	if n := strings.Count(all, "\n- "); n != 6 {
		t.Fatalf("expected 6 constraint lines, got %d", n)
	}
}

func TestSummary_EmptyTranscript(t *testing.T) {
	got := Summary(history.PeriodAll, "")
	if !strings.HasSuffix(got, "## 活動ログ\n") {
		t.Fatalf("unexpected prompt tail: %q", got)
	}
}
