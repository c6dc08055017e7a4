package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/aijukucho/internal/discord"
)

const gatewayIntents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

type Client struct {
	session   *discordgo.Session
	token     string
	botUserID string
}

func NewClient(token string) discordpkg.Client {
	return &Client{
		token: token,
	}
}

func (c *Client) Connect(ctx context.Context) error {
	_ = ctx
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	c.session = s
	s.Identify.Intents = discordgo.MakeIntent(gatewayIntents)
	if err := s.Open(); err != nil {
		return err
	}
	userID, err := c.GetBotUserID()
	if err != nil {
		return err
	}
	c.botUserID = userID
	return nil
}

func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *Client) RegisterEventHandler(handler func(discordpkg.Event)) {
	c.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m == nil || m.Message == nil || m.Author == nil {
			return
		}
		handler(c.messageEvent(s, m.Message))
	})
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		ev, ok := c.slashCommandEvent(s, ic)
		if !ok {
			return
		}
		slog.Info("slash command interaction received", "guild_id", ev.GuildID, "channel_id", ev.ChannelID, "command", ev.CommandName, "user_id", ev.UserID)
		handler(ev)
	})
}

func (c *Client) messageEvent(s *discordgo.Session, m *discordgo.Message) discordpkg.MessageEvent {
	mentioned := make([]string, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		if u != nil && u.ID != "" {
			mentioned = append(mentioned, u.ID)
		}
	}
	replyTo := ""
	if m.ReferencedMessage != nil && m.ReferencedMessage.Author != nil {
		replyTo = m.ReferencedMessage.Author.ID
	}
	var botRoles []string
	if len(m.MentionRoles) > 0 {
		botRoles = c.botRoleIDs(m.GuildID)
	}
	return discordpkg.MessageEvent{
		GuildID:          m.GuildID,
		ChannelID:        m.ChannelID,
		ChannelKind:      c.resolveChannelKind(m.ChannelID),
		MessageID:        m.ID,
		AuthorID:         m.Author.ID,
		AuthorIsBot:      m.Author.Bot,
		Content:          m.Content,
		MentionedUserIDs: mentioned,
		MentionEveryone:  m.MentionEveryone,
		MentionedRoleIDs: m.MentionRoles,
		BotRoleIDs:       botRoles,
		ReplyToAuthorID:  replyTo,
		Reply: func(content string) error {
			chunks := discordpkg.SplitContent(content, discordpkg.MessageContentLimit)
			if _, err := s.ChannelMessageSendReply(m.ChannelID, chunks[0], m.Reference()); err != nil {
				return err
			}
			for _, chunk := range chunks[1:] {
				if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// botRoleIDs returns the roles the bot member holds in guildID, from state when cached.
func (c *Client) botRoleIDs(guildID string) []string {
	if guildID == "" || c.botUserID == "" || c.session == nil {
		return nil
	}
	if c.session.State != nil {
		if member, err := c.session.State.Member(guildID, c.botUserID); err == nil && member != nil {
			return member.Roles
		}
	}
	member, err := c.session.GuildMember(guildID, c.botUserID)
	if err != nil {
		slog.Warn("failed to fetch bot member roles", "error", err, "guild_id", guildID)
		return nil
	}
	return member.Roles
}

func (c *Client) slashCommandEvent(s *discordgo.Session, ic *discordgo.InteractionCreate) (discordpkg.SlashCommandEvent, bool) {
	data := ic.ApplicationCommandData()
	if data.Name == "" {
		return discordpkg.SlashCommandEvent{}, false
	}
	userID := ""
	if ic.Member != nil && ic.Member.User != nil {
		userID = ic.Member.User.ID
	}
	if userID == "" && ic.User != nil {
		userID = ic.User.ID
	}
	if userID == "" {
		return discordpkg.SlashCommandEvent{}, false
	}

	options := make(map[string]string, len(data.Options))
	for _, opt := range data.Options {
		if opt == nil {
			continue
		}
		if opt.Type == discordgo.ApplicationCommandOptionString {
			options[opt.Name] = opt.StringValue()
			continue
		}
		options[opt.Name] = fmt.Sprint(opt.Value)
	}

	followups := func(chunks []string) error {
		for _, chunk := range chunks {
			if _, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{Content: chunk}); err != nil {
				return err
			}
		}
		return nil
	}

	return discordpkg.SlashCommandEvent{
		GuildID:     ic.GuildID,
		ChannelID:   ic.ChannelID,
		ChannelKind: c.resolveChannelKind(ic.ChannelID),
		CommandName: data.Name,
		UserID:      userID,
		Options:     options,
		Respond: func(content string) error {
			slog.Info("responding to slash interaction", "command", data.Name, "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "user_id", userID)
			chunks := discordpkg.SplitContent(content, discordpkg.MessageContentLimit)
			err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{Content: chunks[0]},
			})
			if err != nil {
				return err
			}
			return followups(chunks[1:])
		},
		Defer: func() error {
			return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			})
		},
		EditResponse: func(content string) error {
			chunks := discordpkg.SplitContent(content, discordpkg.MessageContentLimit)
			if _, err := s.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{Content: &chunks[0]}); err != nil {
				return err
			}
			return followups(chunks[1:])
		},
	}, true
}

func (c *Client) UpsertSlashCommands(guildID string, defs []discordpkg.SlashCommandDefinition) error {
	appID := c.applicationID()
	if appID == "" {
		return fmt.Errorf("discord application id is not available")
	}
	existing, err := c.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}
	existingByName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		if cmd == nil || cmd.Name == "" {
			continue
		}
		existingByName[cmd.Name] = cmd
	}
	defined := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		defined[def.Name] = struct{}{}
		if err := c.upsertSlashCommand(appID, guildID, def, existingByName); err != nil {
			return fmt.Errorf("upsert slash command %s: %w", def.Name, err)
		}
	}
	for name, cmd := range existingByName {
		if _, ok := defined[name]; ok {
			continue
		}
		slog.Info("deleting stale slash command", "command", name, "guild_id", guildID)
		if err := c.session.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			return fmt.Errorf("delete slash command %s: %w", name, err)
		}
	}
	return nil
}

func (c *Client) upsertSlashCommand(appID, guildID string, def discordpkg.SlashCommandDefinition, existingByName map[string]*discordgo.ApplicationCommand) error {
	if def.Name == "" {
		return nil
	}
	payload := applicationCommandPayload(def)
	cmd, ok := existingByName[def.Name]
	if !ok {
		slog.Info("creating slash command", "command", def.Name, "guild_id", guildID)
		_, err := c.session.ApplicationCommandCreate(appID, guildID, payload)
		return err
	}
	if cmd.Description == def.Description && sameOptions(cmd.Options, payload.Options) {
		return nil
	}
	slog.Info("updating slash command", "command", def.Name, "guild_id", guildID)
	_, err := c.session.ApplicationCommandEdit(appID, guildID, cmd.ID, payload)
	return err
}

func applicationCommandPayload(def discordpkg.SlashCommandDefinition) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(def.Options))
	for _, opt := range def.Options {
		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(opt.Choices))
		for _, ch := range opt.Choices {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.Value})
		}
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
			Choices:     choices,
		})
	}
	return &discordgo.ApplicationCommand{
		Name:        def.Name,
		Description: def.Description,
		Options:     options,
	}
}

func sameOptions(a, b []*discordgo.ApplicationCommandOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			return false
		}
		if a[i].Type != b[i].Type || a[i].Name != b[i].Name || a[i].Description != b[i].Description || a[i].Required != b[i].Required {
			return false
		}
		if len(a[i].Choices) != len(b[i].Choices) {
			return false
		}
		for j := range a[i].Choices {
			ca, cb := a[i].Choices[j], b[i].Choices[j]
			if ca == nil || cb == nil || ca.Name != cb.Name || fmt.Sprint(ca.Value) != fmt.Sprint(cb.Value) {
				return false
			}
		}
	}
	return true
}

func (c *Client) FetchMessages(ctx context.Context, channelID, beforeID string, limit int) ([]discordpkg.Message, error) {
	if c.session == nil {
		return nil, fmt.Errorf("discord session is not initialized")
	}
	page, err := c.session.ChannelMessages(channelID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]discordpkg.Message, 0, len(page))
	for _, m := range page {
		if m == nil {
			continue
		}
		out = append(out, discordpkg.Message{
			ID:        m.ID,
			AuthorTag: authorTag(m.Author),
			Content:   m.Content,
			CreatedAt: m.Timestamp,
		})
	}
	return out, nil
}

// authorTag renders "name#1234", or just the username for accounts on the new username system.
func authorTag(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

func (c *Client) GetBotUserID() (string, error) {
	if c.botUserID != "" {
		return c.botUserID, nil
	}
	if c.session == nil {
		return "", fmt.Errorf("discord session is not initialized")
	}
	if c.session.State != nil && c.session.State.User != nil && c.session.State.User.ID != "" {
		c.botUserID = c.session.State.User.ID
		return c.botUserID, nil
	}
	u, err := c.session.User("@me")
	if err != nil {
		return "", err
	}
	c.botUserID = u.ID
	return c.botUserID, nil
}

func (c *Client) resolveChannelKind(channelID string) discordpkg.ChannelKind {
	channel := c.resolveChannel(channelID)
	if channel == nil {
		slog.Warn("discord channel could not be resolved", "channel_id", channelID)
		return discordpkg.ChannelKindOther
	}
	return channelKind(channel.Type)
}

func channelKind(t discordgo.ChannelType) discordpkg.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return discordpkg.ChannelKindGuildText
	case discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildNewsThread,
		discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildStageVoice,
		discordgo.ChannelTypeDM,
		discordgo.ChannelTypeGroupDM:
		return discordpkg.ChannelKindTextCapable
	default:
		return discordpkg.ChannelKindOther
	}
}

func (c *Client) resolveChannel(channelID string) *discordgo.Channel {
	if c.session == nil || channelID == "" {
		return nil
	}
	if c.session.State != nil {
		channel, err := c.session.State.Channel(channelID)
		if err == nil && channel != nil {
			return channel
		}
	}
	channel, err := c.session.Channel(channelID)
	if err != nil {
		if !isRESTNotFound(err) {
			slog.Warn("failed to fetch discord channel", "error", err, "channel_id", channelID)
		}
		return nil
	}
	return channel
}

func isRESTNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusNotFound
}

func (c *Client) applicationID() string {
	if c.session == nil || c.session.State == nil {
		return ""
	}
	if c.session.State.Application != nil && c.session.State.Application.ID != "" {
		return c.session.State.Application.ID
	}
	if c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}

func (c *Client) Run() error {
	select {}
}
