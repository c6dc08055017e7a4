package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foxseedlab/aijukucho/internal/discord"
	"github.com/foxseedlab/aijukucho/internal/metrics"
)

const PageSize = 100

type MessageReader interface {
	FetchMessages(ctx context.Context, channelID, beforeID string, limit int) ([]discord.Message, error)
}

type Transcript struct {
	Lines []string
}

func (t Transcript) String() string {
	return strings.Join(t.Lines, "\n")
}

func (t Transcript) Len() int {
	return len(t.Lines)
}

type Fetcher struct {
	reader   MessageReader
	metrics  metrics.Recorder
	maxPages int
	now      func() time.Time
}

// NewFetcher builds a Fetcher. maxPages <= 0 walks the whole channel.
func NewFetcher(reader MessageReader, recorder metrics.Recorder, maxPages int) *Fetcher {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Fetcher{
		reader:   reader,
		metrics:  recorder,
		maxPages: maxPages,
		now:      time.Now,
	}
}

// FetchAll returns every message of the channel as "[tag]: content" lines.
func (f *Fetcher) FetchAll(ctx context.Context, channelID string) ([]string, error) {
	lines := make([]string, 0)
	err := f.walk(ctx, channelID, func(msg discord.Message) {
		lines = append(lines, fmt.Sprintf("[%s]: %s", msg.AuthorTag, msg.Content))
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FetchWindow returns the newline-joined "[tag] content" transcript for period.
func (f *Fetcher) FetchWindow(ctx context.Context, channelID string, period Period) (string, error) {
	t, err := f.FetchTranscript(ctx, channelID, period)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func (f *Fetcher) FetchTranscript(ctx context.Context, channelID string, period Period) (Transcript, error) {
	now := f.now()
	var t Transcript
	err := f.walk(ctx, channelID, func(msg discord.Message) {
		if period.Includes(msg.CreatedAt, now) {
			t.Lines = append(t.Lines, fmt.Sprintf("[%s] %s", msg.AuthorTag, msg.Content))
		}
	})
	if err != nil {
		return Transcript{}, err
	}
	return t, nil
}

func (f *Fetcher) walk(ctx context.Context, channelID string, visit func(discord.Message)) error {
	cursor := ""
	pages := 0
	total := 0
	for {
		if f.maxPages > 0 && pages >= f.maxPages {
			slog.Warn("history page cap reached; transcript is truncated", "channel_id", channelID, "max_pages", f.maxPages, "messages", total)
			return nil
		}
		page, err := f.reader.FetchMessages(ctx, channelID, cursor, PageSize)
		if err != nil {
			return fmt.Errorf("fetch messages before %q in channel %s: %w", cursor, channelID, err)
		}
		pages++
		f.metrics.AddHistoryPages(1)
		if len(page) == 0 {
			break
		}
		for _, msg := range page {
			visit(msg)
		}
		total += len(page)
		cursor = page[len(page)-1].ID
	}
	slog.Debug("history fetched", "channel_id", channelID, "pages", pages, "messages", total)
	return nil
}
