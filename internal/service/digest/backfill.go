package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const exampleMaxTokens = 150

// BackfillResult reports one word processed by BackfillExamples.
type BackfillResult struct {
	Word    string `json:"word"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BackfillReport is the outcome of a BackfillExamples run.
type BackfillReport struct {
	Candidates int              `json:"candidates"`
	Updated    int              `json:"updated"`
	Results    []BackfillResult `json:"results"`
}

// BackfillExamples asks the LLM for an example sentence for every word that
// has none. A failure on one word is recorded and the run continues.
func (s *Service) BackfillExamples(ctx context.Context) (*BackfillReport, error) {
	words, err := s.vocabulary.ListMissingExample(ctx)
	if err != nil {
		return nil, fmt.Errorf("backfill examples: %w", err)
	}

	report := &BackfillReport{Candidates: len(words), Results: make([]BackfillResult, 0, len(words))}
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := BackfillResult{Word: w.Word}
		example, err := s.generateExample(ctx, w.Word, w.Definition)
		if err == nil {
			_, err = s.vocabulary.Update(ctx, w.ID, vocabularyExample(example), s.now())
		}
		if err != nil {
			res.Error = err.Error()
			s.log.WarnContext(ctx, "example not generated",
				slog.String("word", w.Word),
				slog.String("error", err.Error()),
			)
		} else {
			res.Success = true
			report.Updated++
		}
		report.Results = append(report.Results, res)
	}

	s.log.InfoContext(ctx, "examples backfilled",
		slog.Int("candidates", report.Candidates),
		slog.Int("updated", report.Updated),
	)
	return report, nil
}

func (s *Service) generateExample(ctx context.Context, word, definition string) (string, error) {
	text, err := s.llm.Complete(ctx, s.opts.Model, fmt.Sprintf(examplePrompt, word, definition), exampleMaxTokens)
	if err != nil {
		return "", err
	}
	example := stripQuotes(strings.TrimSpace(text))
	if example == "" {
		return "", fmt.Errorf("empty example for %q", word)
	}
	return example, nil
}

// stripQuotes removes one leading and one trailing quote character.
func stripQuotes(s string) string {
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if n := len(s); n > 0 && (s[n-1] == '"' || s[n-1] == '\'') {
		s = s[:n-1]
	}
	return strings.TrimSpace(s)
}

func vocabularyExample(example string) domain.VocabularyPatch {
	return domain.VocabularyPatch{Example: &example}
}
