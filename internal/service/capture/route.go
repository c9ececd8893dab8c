package capture

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const defaultNextAction = "Define next action"

// routeAndCreate builds the record for cls.Destination, filling absent fields
// from the classification title, and stores it.
func (s *Service) routeAndCreate(ctx context.Context, cls domain.Classification, now time.Time) (domain.CapturedRecord, error) {
	switch cls.Destination {
	case domain.DestinationPeople:
		p := buildPerson(cls, now)
		created, err := s.people.Create(ctx, &p)
		if err != nil {
			return domain.CapturedRecord{}, err
		}
		return domain.CapturedRecord{Destination: cls.Destination, ID: created.ID, Title: created.Name}, nil

	case domain.DestinationProjects:
		p := buildProject(cls, now)
		created, err := s.projects.Create(ctx, &p)
		if err != nil {
			return domain.CapturedRecord{}, err
		}
		return domain.CapturedRecord{Destination: cls.Destination, ID: created.ID, Title: created.Name}, nil

	case domain.DestinationIdeas:
		i := buildIdea(cls, now)
		created, err := s.ideas.Create(ctx, &i)
		if err != nil {
			return domain.CapturedRecord{}, err
		}
		return domain.CapturedRecord{Destination: cls.Destination, ID: created.ID, Title: created.Title}, nil

	case domain.DestinationAdmin:
		t := buildAdminTask(cls, now)
		created, err := s.admin.Create(ctx, &t)
		if err != nil {
			return domain.CapturedRecord{}, err
		}
		return domain.CapturedRecord{Destination: cls.Destination, ID: created.ID, Title: created.Task}, nil

	case domain.DestinationVocabulary:
		w := buildVocabularyWord(cls, now)
		created, err := s.vocabulary.Create(ctx, &w)
		if err != nil {
			return domain.CapturedRecord{}, err
		}
		return domain.CapturedRecord{Destination: cls.Destination, ID: created.ID, Title: created.Word}, nil
	}
	return domain.CapturedRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownDestination, cls.Destination)
}

// Fields of the wrong variant are treated as absent.

func buildPerson(cls domain.Classification, now time.Time) domain.Person {
	f, _ := cls.Fields.(domain.PeopleFields)
	followUps := f.FollowUps
	if followUps == nil {
		followUps = []string{}
	}
	return domain.Person{
		ID:            uuid.New(),
		Name:          orDefault(f.Name, cls.Title),
		Context:       strings.TrimSpace(f.Context),
		FollowUps:     followUps,
		Tags:          []string{},
		LastTouchedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func buildProject(cls domain.Classification, now time.Time) domain.Project {
	f, _ := cls.Fields.(domain.ProjectFields)
	return domain.Project{
		ID:         uuid.New(),
		Name:       orDefault(f.Name, cls.Title),
		Status:     domain.ProjectStatusActive,
		NextAction: orDefault(f.NextAction, defaultNextAction),
		Notes:      strings.TrimSpace(f.Notes),
		Tags:       []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func buildIdea(cls domain.Classification, now time.Time) domain.Idea {
	f, _ := cls.Fields.(domain.IdeaFields)
	return domain.Idea{
		ID:        uuid.New(),
		Title:     orDefault(cls.Title, f.Title),
		OneLiner:  strings.TrimSpace(f.OneLiner),
		Notes:     strings.TrimSpace(f.Notes),
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func buildAdminTask(cls domain.Classification, now time.Time) domain.AdminTask {
	f, _ := cls.Fields.(domain.AdminFields)
	var due *time.Time
	if f.DueDate != nil {
		due = parseDueDate(*f.DueDate)
	}
	return domain.AdminTask{
		ID:        uuid.New(),
		Task:      orDefault(f.Task, cls.Title),
		DueDate:   due,
		Status:    domain.AdminStatusPending,
		Notes:     strings.TrimSpace(f.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func buildVocabularyWord(cls domain.Classification, now time.Time) domain.VocabularyWord {
	f, _ := cls.Fields.(domain.VocabularyFields)
	return domain.VocabularyWord{
		ID:           uuid.New(),
		Word:         orDefault(f.Word, cls.Title),
		Definition:   strings.TrimSpace(f.Definition),
		PartOfSpeech: nonEmpty(f.PartOfSpeech),
		Example:      nonEmpty(f.Example),
		Source:       nonEmpty(f.Source),
		Tags:         []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// parseDueDate accepts a calendar date or an RFC 3339 timestamp.
// Anything else leaves the due date unset.
func parseDueDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t
	}
	return nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
