// Package slack is the messaging adapter: posting, reacting and pinning via
// the Slack Web API.
package slack

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/heartmarshall/secondbrain-backend/internal/config"
)

// Messenger talks to the Slack Web API with a bot token.
type Messenger struct {
	api *slack.Client
	log *slog.Logger
}

// New creates a Messenger. cfg.APIURL overrides the Slack endpoint (tests).
func New(cfg config.SlackConfig, logger *slog.Logger) *Messenger {
	var opts []slack.Option
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}

	return &Messenger{
		api: slack.New(cfg.BotToken, opts...),
		log: logger.With("adapter", "slack"),
	}
}

// PostMessage sends text to channel, as a thread reply when threadTS is set.
// It returns the timestamp of the posted message.
func (m *Messenger) PostMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := m.api.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return "", fmt.Errorf("slack: post message to %s: %w", channel, err)
	}

	m.log.DebugContext(ctx, "message posted",
		slog.String("channel", channel),
		slog.String("ts", ts),
		slog.String("thread_ts", threadTS),
	)
	return ts, nil
}

// AddReaction adds an emoji reaction (name without colons) to a message.
func (m *Messenger) AddReaction(ctx context.Context, channel, ts, name string) error {
	if err := m.api.AddReactionContext(ctx, name, slack.NewRefToMessage(channel, ts)); err != nil {
		return fmt.Errorf("slack: add reaction %s: %w", name, err)
	}
	return nil
}

// Pin pins a message in its channel.
func (m *Messenger) Pin(ctx context.Context, channel, ts string) error {
	if err := m.api.AddPinContext(ctx, channel, slack.NewRefToMessage(channel, ts)); err != nil {
		return fmt.Errorf("slack: pin %s: %w", ts, err)
	}
	return nil
}
