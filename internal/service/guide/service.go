package guide

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

type messenger interface {
	PostMessage(ctx context.Context, channel, text, threadTS string) (string, error)
	Pin(ctx context.Context, channel, ts string) error
}

// Service posts the capture quick reference.
type Service struct {
	log       *slog.Logger
	messenger messenger
}

func NewService(log *slog.Logger, m messenger) *Service {
	return &Service{
		log:       log.With("service", "guide"),
		messenger: m,
	}
}

// PinInstructions posts the quick reference to channel and pins it.
// It returns the timestamp of the posted message.
func (s *Service) PinInstructions(ctx context.Context, channel string) (string, error) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return "", domain.NewValidationError("channelId", "required")
	}

	ts, err := s.messenger.PostMessage(ctx, channel, Instructions(), "")
	if err != nil {
		return "", fmt.Errorf("post instructions: %w", err)
	}
	if err := s.messenger.Pin(ctx, channel, ts); err != nil {
		return ts, fmt.Errorf("pin instructions: %w", err)
	}

	s.log.InfoContext(ctx, "instructions pinned",
		slog.String("channel", channel),
		slog.String("ts", ts),
	)
	return ts, nil
}

// Instructions renders the quick reference text.
func Instructions() string {
	var b strings.Builder
	b.WriteString("*Second Brain quick reference*\n\n")
	b.WriteString("*Capturing:* just type a thought. It is classified and filed automatically.\n\n")
	b.WriteString("*Force a category with a prefix:*\n")
	for _, p := range prefixes {
		fmt.Fprintf(&b, "• %s → %s\n", p.keywords, p.label)
	}
	b.WriteString("\n*Examples:*\n```\n")
	for _, ex := range examples {
		b.WriteString(ex)
		b.WriteByte('\n')
	}
	b.WriteString("```\n\n")
	b.WriteString("*Corrections:* if something lands in the wrong place, reply in its thread with ")
	b.WriteString("`fix: <category>`, for example `fix: idea`.\n")
	b.WriteString("Reply `fix: delete` to drop it from the inbox log.")
	return b.String()
}

var prefixes = []struct {
	keywords string
	label    string
}{
	{"`person:` or `people:`", "People"},
	{"`project:` or `projects:`", "Projects"},
	{"`idea:` or `ideas:`", "Ideas"},
	{"`admin:`", "Admin tasks"},
	{"`vocab:`, `vocabulary:` or `word:`", "Vocabulary"},
}

var examples = []string{
	"person: Met Sarah at the conference, works at Acme Corp",
	"project: Build landing page - finish hero section first",
	"idea: What if we added AI search to the app?",
	"admin: Pick up dry cleaning Friday",
	"vocab: serendipity - finding something good without looking for it",
	"Call John tomorrow about the proposal",
}
