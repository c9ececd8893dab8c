// Package classifier turns free text into a domain.Classification by asking a
// language model for strict JSON.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

type completer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// Observer receives the duration of every classifier call.
type Observer interface {
	ObserveClassification(d time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveClassification(time.Duration, error) {}

// Classifier is the classifier adapter.
type Classifier struct {
	llm       completer
	model     string
	maxTokens int
	observer  Observer
	log       *slog.Logger
}

// New creates a Classifier. observer may be nil.
func New(llm completer, model string, maxTokens int, observer Observer, logger *slog.Logger) *Classifier {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Classifier{
		llm:       llm,
		model:     model,
		maxTokens: maxTokens,
		observer:  observer,
		log:       logger.With("adapter", "classifier"),
	}
}

// Classify interprets text. A valid forced destination pins the destination
// and confidence (1.0); the model then only extracts title and fields.
// Every failure wraps domain.ErrClassification.
func (c *Classifier) Classify(ctx context.Context, text string, forced domain.Destination) (domain.Classification, error) {
	start := time.Now()

	cls, err := c.classify(ctx, text, forced)
	c.observer.ObserveClassification(time.Since(start), err)
	if err != nil {
		return domain.Classification{}, err
	}

	c.log.DebugContext(ctx, "classified",
		slog.String("destination", cls.Destination.String()),
		slog.Float64("confidence", cls.Confidence),
		slog.Bool("forced", forced.IsValid()),
	)
	return cls, nil
}

func (c *Classifier) classify(ctx context.Context, text string, forced domain.Destination) (domain.Classification, error) {
	raw, err := c.llm.Complete(ctx, c.model, buildPrompt(text, forced), c.maxTokens)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %w", domain.ErrClassification, err)
	}

	cls, err := domain.DecodeClassification([]byte(stripCodeFence(raw)), forced)
	if err != nil {
		return domain.Classification{}, err
	}
	return cls, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence and any prose
// around the JSON object.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}
