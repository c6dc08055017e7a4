package discord

import (
	"context"
	"slices"
	"time"
)

// MessageContentLimit is the maximum number of characters Discord accepts in one message.
const MessageContentLimit = 2000

type ChannelKind int

const (
	ChannelKindOther ChannelKind = iota
	// ChannelKindGuildText is a plain guild text channel.
	ChannelKindGuildText
	// ChannelKindTextCapable covers announcement channels, threads, voice chat and DMs.
	ChannelKindTextCapable
)

func (k ChannelKind) IsGuildText() bool {
	return k == ChannelKindGuildText
}

func (k ChannelKind) IsTextCapable() bool {
	return k == ChannelKindGuildText || k == ChannelKindTextCapable
}

type Message struct {
	ID        string
	AuthorTag string
	Content   string
	CreatedAt time.Time
}

type SlashCommandChoice struct {
	Name  string
	Value string
}

type SlashCommandOption struct {
	Name        string
	Description string
	Required    bool
	Choices     []SlashCommandChoice
}

type SlashCommandDefinition struct {
	Name        string
	Description string
	Options     []SlashCommandOption
}

// Event is either a MessageEvent or a SlashCommandEvent.
type Event interface {
	isEvent()
}

type MessageEvent struct {
	GuildID          string
	ChannelID        string
	ChannelKind      ChannelKind
	MessageID        string
	AuthorID         string
	AuthorIsBot      bool
	Content          string
	MentionedUserIDs []string
	MentionEveryone  bool
	MentionedRoleIDs []string
	// BotRoleIDs are the roles the bot holds in the guild; filled only when the message mentions roles.
	BotRoleIDs []string
	// ReplyToAuthorID is the author of the message this one replies to.
	ReplyToAuthorID string
	Reply           func(content string) error
}

func (MessageEvent) isEvent() {}

// Mentions reports whether the message addresses userID: directly, through @everyone,
// through a role listed in BotRoleIDs, or by replying to one of its messages.
func (e MessageEvent) Mentions(userID string) bool {
	if userID == "" {
		return false
	}
	if e.MentionEveryone || e.ReplyToAuthorID == userID {
		return true
	}
	if slices.Contains(e.MentionedUserIDs, userID) {
		return true
	}
	for _, roleID := range e.MentionedRoleIDs {
		if slices.Contains(e.BotRoleIDs, roleID) {
			return true
		}
	}
	return false
}

type SlashCommandEvent struct {
	GuildID     string
	ChannelID   string
	ChannelKind ChannelKind
	CommandName string
	UserID      string
	Options     map[string]string
	Respond     func(content string) error
	Defer       func() error
	// EditResponse replaces the deferred response; overflow goes out as follow-ups.
	EditResponse func(content string) error
}

func (SlashCommandEvent) isEvent() {}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	RegisterEventHandler(handler func(Event))
	UpsertSlashCommands(guildID string, defs []SlashCommandDefinition) error
	// FetchMessages returns up to limit messages older than beforeID, newest first.
	// An empty beforeID starts from the most recent message.
	FetchMessages(ctx context.Context, channelID, beforeID string, limit int) ([]Message, error)
	GetBotUserID() (string, error)
	Run() error
}
