package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// severityColors map event severities to Slack attachment sidebar colors.
var severityColors = map[string]string{
	"info":    "#439fe0",
	"warning": "#ffaa00",
	"success": "#36a64f",
}

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackNotifier posts activity events to one Slack channel.
type SlackNotifier struct {
	client  slackClient
	channel string
}

// NewSlack builds a SlackNotifier from a bot token and channel ID.
func NewSlack(token, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slackapi.New(token),
		channel: channel,
	}
}

// Send posts the event as an attachment message.
func (n *SlackNotifier) Send(ctx context.Context, ev Event) error {
	attachment := slackapi.Attachment{
		Title: ev.Title,
		Text:  ev.Body,
		Color: severityColors[ev.Severity],
	}
	for _, f := range ev.Fields {
		attachment.Fields = append(attachment.Fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: true,
		})
	}
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slackapi.MsgOptionAttachments(attachment))
	if err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}

// Close is a no-op; the Slack client is stateless HTTP.
func (n *SlackNotifier) Close() error { return nil }
