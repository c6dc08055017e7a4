package discord

import (
	"strings"
	"unicode/utf8"
)

// SplitContent breaks content into chunks of at most limit runes, preferring line breaks.
func SplitContent(content string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(content) <= limit {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0
	flush := func() {
		if currentLen == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		currentLen = 0
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		lineLen := utf8.RuneCountInString(line)
		if currentLen+lineLen <= limit {
			current.WriteString(line)
			currentLen += lineLen
			continue
		}
		flush()
		for lineLen > limit {
			head, rest := splitRunes(line, limit)
			chunks = append(chunks, head)
			line = rest
			lineLen -= limit
		}
		current.WriteString(line)
		currentLen = lineLen
	}
	flush()
	return dropBlankChunks(chunks)
}

// dropBlankChunks removes whitespace-only chunks, which Discord rejects as empty messages.
func dropBlankChunks(chunks []string) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
