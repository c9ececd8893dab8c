package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const weeklyMaxTokens = 700

// DailyResult summarizes what went into a posted daily digest.
type DailyResult struct {
	ActiveProjects   int    `json:"activeProjects"`
	StalledProjects  int    `json:"stalledProjects"`
	OverdueAdmin     int    `json:"overdueAdmin"`
	PendingFollowUps int    `json:"pendingFollowUps"`
	Word             string `json:"word,omitempty"`
	MessageTS        string `json:"messageTs"`
}

// WeeklyResult summarizes what went into a posted weekly review.
type WeeklyResult struct {
	TotalCaptures  int    `json:"totalCaptures"`
	ActiveProjects int    `json:"activeProjects"`
	NewPeople      int    `json:"newPeople"`
	NewIdeas       int    `json:"newIdeas"`
	MessageTS      string `json:"messageTs"`
}

// Daily gathers today's snapshot, summarizes it and posts it to the digest
// channel. The word of the day is marked shown before summarizing.
func (s *Service) Daily(ctx context.Context) (*DailyResult, error) {
	if s.opts.Channel == "" {
		return nil, ErrNoChannel
	}

	now := s.now()
	data, err := s.gatherDaily(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("daily digest: %w", err)
	}
	if err := s.markWordShown(ctx, data); err != nil {
		return nil, fmt.Errorf("daily digest: %w", err)
	}

	ts, err := s.summarizeAndPost(ctx, dailyPrompt, data, s.opts.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("daily digest: %w", err)
	}

	res := &DailyResult{
		ActiveProjects:   len(data.ActiveProjects),
		StalledProjects:  len(data.StalledProjects),
		OverdueAdmin:     len(data.OverdueAdmin),
		PendingFollowUps: len(data.PendingFollowUps),
		MessageTS:        ts,
	}
	if data.VocabularyWord != nil {
		res.Word = data.VocabularyWord.Word
	}

	s.log.InfoContext(ctx, "daily digest posted",
		slog.Int("active_projects", res.ActiveProjects),
		slog.Int("stalled_projects", res.StalledProjects),
		slog.Int("overdue_admin", res.OverdueAdmin),
	)
	return res, nil
}

// Weekly gathers the weekly snapshot, summarizes it and posts it.
func (s *Service) Weekly(ctx context.Context) (*WeeklyResult, error) {
	if s.opts.Channel == "" {
		return nil, ErrNoChannel
	}

	now := s.now()
	data, err := s.gatherWeekly(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("weekly review: %w", err)
	}
	if err := s.markWordShown(ctx, data.DigestData); err != nil {
		return nil, fmt.Errorf("weekly review: %w", err)
	}

	ts, err := s.summarizeAndPost(ctx, weeklyPrompt, data, weeklyMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("weekly review: %w", err)
	}

	res := &WeeklyResult{
		TotalCaptures:  data.WeeklyActivity.Total,
		ActiveProjects: len(data.ActiveProjects),
		NewPeople:      data.NewPeople,
		NewIdeas:       data.NewIdeas,
		MessageTS:      ts,
	}

	s.log.InfoContext(ctx, "weekly review posted",
		slog.Int("total_captures", res.TotalCaptures),
		slog.Int("new_people", res.NewPeople),
		slog.Int("new_ideas", res.NewIdeas),
	)
	return res, nil
}

func (s *Service) markWordShown(ctx context.Context, data DigestData) error {
	if data.word == nil {
		return nil
	}
	if _, err := s.vocabulary.MarkShown(ctx, data.word.ID, s.now()); err != nil {
		return fmt.Errorf("mark word shown: %w", err)
	}
	return nil
}

func (s *Service) summarizeAndPost(ctx context.Context, prompt string, data any, maxTokens int) (string, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode data: %w", err)
	}

	text, err := s.llm.Complete(ctx, s.opts.Model, prompt+"\n\n"+string(payload), maxTokens)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	ts, err := s.poster.PostMessage(ctx, s.opts.Channel, text, "")
	if err != nil {
		return "", fmt.Errorf("post: %w", err)
	}
	return ts, nil
}
