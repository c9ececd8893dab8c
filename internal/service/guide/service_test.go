package guide

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMessenger struct {
	PostMessageFunc func(ctx context.Context, channel, text, threadTS string) (string, error)
	PinFunc         func(ctx context.Context, channel, ts string) error
}

func (m *mockMessenger) PostMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	return m.PostMessageFunc(ctx, channel, text, threadTS)
}

func (m *mockMessenger) Pin(ctx context.Context, channel, ts string) error {
	return m.PinFunc(ctx, channel, ts)
}

func TestPinInstructions_PostsAndPins(t *testing.T) {
	t.Parallel()

	var posted, pinned string
	m := &mockMessenger{
		PostMessageFunc: func(_ context.Context, channel, text, threadTS string) (string, error) {
			assert.Equal(t, "C0GUIDE", channel)
			assert.Empty(t, threadTS)
			posted = text
			return "1700000700.000100", nil
		},
		PinFunc: func(_ context.Context, channel, ts string) error {
			assert.Equal(t, "C0GUIDE", channel)
			pinned = ts
			return nil
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), m)

	ts, err := svc.PinInstructions(context.Background(), " C0GUIDE ")
	require.NoError(t, err)
	assert.Equal(t, "1700000700.000100", ts)
	assert.Equal(t, ts, pinned)
	assert.Equal(t, Instructions(), posted)
}

func TestPinInstructions_RequiresChannel(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.New(slog.DiscardHandler), &mockMessenger{})

	_, err := svc.PinInstructions(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPinInstructions_PostFailureSkipsPin(t *testing.T) {
	t.Parallel()

	m := &mockMessenger{
		PostMessageFunc: func(context.Context, string, string, string) (string, error) {
			return "", errors.New("not_in_channel")
		},
	}
	svc := NewService(slog.New(slog.DiscardHandler), m)

	_, err := svc.PinInstructions(context.Background(), "C0GUIDE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post instructions")
}

func TestInstructions_MentionsEveryKeyword(t *testing.T) {
	t.Parallel()

	text := Instructions()
	for _, k := range []string{"person", "people", "project", "projects", "idea", "ideas", "admin", "vocab", "vocabulary", "word"} {
		_, err := domain.ResolveDestination(k)
		require.NoError(t, err, k)
		assert.Contains(t, text, "`"+k+":`")
	}
	assert.Contains(t, text, "fix: idea")
	assert.Contains(t, text, "fix: delete")
}
