package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

const day = 24 * time.Hour

// DigestData is the snapshot summarized into the daily digest.
type DigestData struct {
	ActiveProjects    []ActiveProject  `json:"activeProjects"`
	StalledProjects   []StalledProject `json:"stalledProjects"`
	OverdueAdmin      []OverdueTask    `json:"overdueAdmin"`
	DueToday          []string         `json:"dueToday"`
	PendingFollowUps  []FollowUp       `json:"pendingFollowUps"`
	RecentlyCompleted []string         `json:"recentlyCompleted"`
	VocabularyWord    *WordOfTheDay    `json:"vocabularyWord,omitempty"`

	word *domain.VocabularyWord
}

type ActiveProject struct {
	Name       string `json:"name"`
	NextAction string `json:"nextAction"`
	Status     string `json:"status"`
}

type StalledProject struct {
	Name            string `json:"name"`
	NextAction      string `json:"nextAction"`
	DaysSinceUpdate int    `json:"daysSinceUpdate"`
}

type OverdueTask struct {
	Task        string `json:"task"`
	DaysPastDue int    `json:"daysPastDue"`
}

type FollowUp struct {
	PersonName string   `json:"personName"`
	FollowUps  []string `json:"followUps"`
}

type WordOfTheDay struct {
	Word         string  `json:"word"`
	Definition   string  `json:"definition"`
	PartOfSpeech *string `json:"partOfSpeech,omitempty"`
	Example      *string `json:"example,omitempty"`
}

// WeeklyData extends the daily snapshot with activity over the lookback window.
type WeeklyData struct {
	DigestData
	WeeklyActivity  domain.InboxActivity `json:"weeklyActivity"`
	NewPeople       int                  `json:"newPeople"`
	NewIdeas        int                  `json:"newIdeas"`
	NewVocabulary   int                  `json:"newVocabulary"`
	TotalVocabulary int                  `json:"totalVocabulary"`
}

// gatherDaily runs the daily queries concurrently.
func (s *Service) gatherDaily(ctx context.Context, now time.Time) (DigestData, error) {
	var (
		active, stalled, completed []domain.Project
		overdue, dueToday          []domain.AdminTask
		followUps                  []domain.Person
		word                       *domain.VocabularyWord
	)

	today := now.Truncate(day)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		active, err = s.projects.ListByStatus(gctx, domain.ProjectStatusActive)
		return wrap("active projects", err)
	})
	g.Go(func() (err error) {
		stalled, err = s.projects.ListStalled(gctx, now.Add(-s.opts.StalledAfter))
		return wrap("stalled projects", err)
	})
	g.Go(func() (err error) {
		completed, err = s.projects.ListCompletedSince(gctx, now.Add(-s.opts.Lookback))
		return wrap("completed projects", err)
	})
	g.Go(func() (err error) {
		overdue, err = s.admin.ListOverdue(gctx, now)
		return wrap("overdue admin", err)
	})
	g.Go(func() (err error) {
		dueToday, err = s.admin.ListDueBetween(gctx, today, today.Add(day))
		return wrap("admin due today", err)
	})
	g.Go(func() (err error) {
		followUps, err = s.people.ListWithFollowUps(gctx)
		return wrap("follow-ups", err)
	})
	g.Go(func() error {
		w, err := s.vocabulary.PickForReview(gctx)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		word = w
		return wrap("word of the day", err)
	})
	if err := g.Wait(); err != nil {
		return DigestData{}, err
	}

	data := DigestData{
		ActiveProjects:    make([]ActiveProject, 0, len(active)),
		StalledProjects:   make([]StalledProject, 0, len(stalled)),
		OverdueAdmin:      make([]OverdueTask, 0, len(overdue)),
		DueToday:          make([]string, 0, len(dueToday)),
		PendingFollowUps:  make([]FollowUp, 0, len(followUps)),
		RecentlyCompleted: make([]string, 0, len(completed)),
	}
	for _, p := range active {
		data.ActiveProjects = append(data.ActiveProjects, ActiveProject{Name: p.Name, NextAction: p.NextAction, Status: p.Status.String()})
	}
	for _, p := range stalled {
		data.StalledProjects = append(data.StalledProjects, StalledProject{
			Name:            p.Name,
			NextAction:      p.NextAction,
			DaysSinceUpdate: daysBetween(p.UpdatedAt, now),
		})
	}
	for _, t := range overdue {
		days := 0
		if t.DueDate != nil {
			days = daysBetween(*t.DueDate, now)
		}
		data.OverdueAdmin = append(data.OverdueAdmin, OverdueTask{Task: t.Task, DaysPastDue: days})
	}
	for _, t := range dueToday {
		data.DueToday = append(data.DueToday, t.Task)
	}
	for _, p := range followUps {
		data.PendingFollowUps = append(data.PendingFollowUps, FollowUp{PersonName: p.Name, FollowUps: p.FollowUps})
	}
	for _, p := range completed {
		data.RecentlyCompleted = append(data.RecentlyCompleted, p.Name)
	}
	if word != nil {
		data.VocabularyWord = &WordOfTheDay{
			Word:         word.Word,
			Definition:   word.Definition,
			PartOfSpeech: word.PartOfSpeech,
			Example:      word.Example,
		}
		data.word = word
	}
	return data, nil
}

// gatherWeekly adds the weekly counters to the daily snapshot.
func (s *Service) gatherWeekly(ctx context.Context, now time.Time) (WeeklyData, error) {
	since := now.Add(-s.opts.Lookback)
	var out WeeklyData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.DigestData, err = s.gatherDaily(gctx, now)
		return err
	})
	g.Go(func() (err error) {
		out.WeeklyActivity, err = s.inbox.ActivitySince(gctx, since)
		return wrap("inbox activity", err)
	})
	g.Go(func() (err error) {
		out.NewPeople, err = s.people.CountSince(gctx, since)
		return wrap("new people", err)
	})
	g.Go(func() (err error) {
		out.NewIdeas, err = s.ideas.CountSince(gctx, since)
		return wrap("new ideas", err)
	})
	g.Go(func() (err error) {
		out.NewVocabulary, err = s.vocabulary.CountSince(gctx, since)
		return wrap("new vocabulary", err)
	})
	g.Go(func() (err error) {
		out.TotalVocabulary, err = s.vocabulary.Count(gctx)
		return wrap("total vocabulary", err)
	})
	if err := g.Wait(); err != nil {
		return WeeklyData{}, err
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / day)
}
