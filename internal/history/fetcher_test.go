package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/aijukucho/internal/discord"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// fakeChannel serves messages newest first, paging with before-ids like Discord does.
type fakeChannel struct {
	messages []discord.Message
	requests []string
	err      error
	failAt   int
}

func newFakeChannel(n int, createdAt func(i int) time.Time) *fakeChannel {
	msgs := make([]discord.Message, 0, n)
	for i := n - 1; i >= 0; i-- {
		msgs = append(msgs, discord.Message{
			ID:        fmt.Sprintf("m%03d", i),
			AuthorTag: fmt.Sprintf("user%d", i%3),
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: createdAt(i),
		})
	}
	return &fakeChannel{messages: msgs, failAt: -1}
}

func (c *fakeChannel) FetchMessages(_ context.Context, _ string, beforeID string, limit int) ([]discord.Message, error) {
	c.requests = append(c.requests, beforeID)
	if c.err != nil && len(c.requests)-1 == c.failAt {
		return nil, c.err
	}
	start := 0
	if beforeID != "" {
		start = len(c.messages)
		for i, m := range c.messages {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(c.messages) {
		end = len(c.messages)
	}
	return c.messages[start:end], nil
}

func newTestFetcher(reader MessageReader, maxPages int) *Fetcher {
	f := NewFetcher(reader, nil, maxPages)
	f.now = func() time.Time { return testNow }
	return f
}

func TestFetchTranscript_WeekScenario(t *testing.T) {
	// 250 messages, the newest 40 inside the last week.
	ch := newFakeChannel(250, func(i int) time.Time {
		if i >= 210 {
			return testNow.Add(-time.Duration(250-i) * time.Hour)
		}
		return testNow.Add(-30 * 24 * time.Hour).Add(time.Duration(i) * time.Minute)
	})
	f := newTestFetcher(ch, 0)

	transcript, err := f.FetchTranscript(context.Background(), "channel-1", PeriodWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript.Len() != 40 {
		t.Fatalf("expected 40 lines, got %d", transcript.Len())
	}
	if transcript.Lines[0] != "[user0] message 249" {
		t.Fatalf("unexpected first line: %q", transcript.Lines[0])
	}
	wantRequests := []string{"", "m150", "m050", "m000"}
	if strings.Join(ch.requests, ",") != strings.Join(wantRequests, ",") {
		t.Fatalf("unexpected page cursors: %v", ch.requests)
	}
}

func TestFetchWindow_WeekBoundaryIsExclusive(t *testing.T) {
	ch := &fakeChannel{failAt: -1, messages: []discord.Message{
		{ID: "3", AuthorTag: "a", Content: "inside", CreatedAt: testNow.Add(-weekWindow).Add(time.Nanosecond)},
		{ID: "2", AuthorTag: "b", Content: "boundary", CreatedAt: testNow.Add(-weekWindow)},
		{ID: "1", AuthorTag: "c", Content: "outside", CreatedAt: testNow.Add(-weekWindow).Add(-time.Second)},
	}}
	f := newTestFetcher(ch, 0)

	got, err := f.FetchWindow(context.Background(), "channel-1", PeriodWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[a] inside" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}

func TestFetchWindow_AllMatchesFetchAll(t *testing.T) {
	ch := newFakeChannel(130, func(i int) time.Time {
		return testNow.Add(-time.Duration(400-i) * 24 * time.Hour)
	})
	f := newTestFetcher(ch, 0)

	all, err := f.FetchAll(context.Background(), "channel-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	window, err := f.FetchWindow(context.Background(), "channel-1", PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	windowLines := strings.Split(window, "\n")
	if len(all) != 130 || len(windowLines) != 130 {
		t.Fatalf("unexpected counts: all=%d window=%d", len(all), len(windowLines))
	}
	for i := range all {
		if strings.Replace(all[i], "]: ", "] ", 1) != windowLines[i] {
			t.Fatalf("line %d differs: %q vs %q", i, all[i], windowLines[i])
		}
	}
}

func TestFetchAll_LineFormat(t *testing.T) {
	ch := &fakeChannel{failAt: -1, messages: []discord.Message{
		{ID: "1", AuthorTag: "alice", Content: "hello", CreatedAt: testNow},
	}}
	f := newTestFetcher(ch, 0)

	lines, err := f.FetchAll(context.Background(), "channel-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "[alice]: hello" {
		t.Fatalf("unexpected lines: %q", lines)
	}
	window, err := f.FetchWindow(context.Background(), "channel-1", PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != "[alice] hello" {
		t.Fatalf("unexpected window transcript: %q", window)
	}
}

func TestFetchWindow_EmptyChannel(t *testing.T) {
	ch := &fakeChannel{failAt: -1}
	f := newTestFetcher(ch, 0)

	got, err := f.FetchWindow(context.Background(), "channel-1", PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
	if len(ch.requests) != 1 {
		t.Fatalf("expected a single request, got %d", len(ch.requests))
	}
}

func TestFetch_ExactMultipleOfPageSize(t *testing.T) {
	ch := newFakeChannel(200, func(int) time.Time { return testNow })
	f := newTestFetcher(ch, 0)

	lines, err := f.FetchAll(context.Background(), "channel-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 200 {
		t.Fatalf("expected 200 lines, got %d", len(lines))
	}
	if len(ch.requests) != 3 {
		t.Fatalf("expected 2 full pages plus one empty page, got %d requests", len(ch.requests))
	}
}

func TestFetch_PropagatesPageError(t *testing.T) {
	boom := errors.New("missing access")
	ch := newFakeChannel(150, func(int) time.Time { return testNow })
	ch.err = boom
	ch.failAt = 1
	f := newTestFetcher(ch, 0)

	if _, err := f.FetchAll(context.Background(), "channel-1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped page error, got %v", err)
	}
	ch.requests = nil
	if _, err := f.FetchWindow(context.Background(), "channel-1", PeriodWeek); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped page error, got %v", err)
	}
}

func TestFetch_StopsAtPageCap(t *testing.T) {
	ch := newFakeChannel(450, func(int) time.Time { return testNow })
	f := newTestFetcher(ch, 2)

	lines, err := f.FetchAll(context.Background(), "channel-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 200 {
		t.Fatalf("expected lines from two pages, got %d", len(lines))
	}
	if len(ch.requests) != 2 {
		t.Fatalf("expected two requests, got %d", len(ch.requests))
	}
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"week", "all"} {
		p, err := ParsePeriod(s)
		if err != nil || string(p) != s {
			t.Fatalf("ParsePeriod(%q) = %q, %v", s, p, err)
		}
	}
	for _, s := range []string{"", "Week", "month"} {
		if _, err := ParsePeriod(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestPeriodCutoff(t *testing.T) {
	cutoff, ok := PeriodWeek.Cutoff(testNow)
	if !ok || !cutoff.Equal(testNow.Add(-168*time.Hour)) {
		t.Fatalf("unexpected week cutoff: %v %v", cutoff, ok)
	}
	if _, ok := PeriodAll.Cutoff(testNow); ok {
		t.Fatal("all must have no cutoff")
	}
}
