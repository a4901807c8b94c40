package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// severityEmbedColors map event severities to Discord embed colors.
var severityEmbedColors = map[string]int{
	"info":    0x439fe0,
	"warning": 0xffaa00,
	"success": 0x36a64f,
}

// discordSession abstracts the discordgo.Session methods we use, enabling
// test mocks.
type discordSession interface {
	Open() error
	Close() error
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts activity events to one Discord channel.
type DiscordNotifier struct {
	session discordSession
	channel string
}

// NewDiscord builds a DiscordNotifier from a bot token and channel ID and
// opens the gateway connection.
func NewDiscord(token, channel string) (*DiscordNotifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("notify: discord session: %w", err)
	}
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("notify: discord connect: %w", err)
	}
	return &DiscordNotifier{session: s, channel: channel}, nil
}

// Send posts the event as an embed.
func (n *DiscordNotifier) Send(ctx context.Context, ev Event) error {
	embed := &discordgo.MessageEmbed{
		Title:       ev.Title,
		Description: ev.Body,
		Color:       severityEmbedColors[ev.Severity],
	}
	for _, f := range ev.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: true,
		})
	}
	if _, err := n.session.ChannelMessageSendEmbed(n.channel, embed); err != nil {
		return fmt.Errorf("notify: discord post: %w", err)
	}
	return nil
}

// Close shuts down the gateway connection.
func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}
