package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedIdea inserts an idea with a unique title.
func SeedIdea(t *testing.T, pool *pgxpool.Pool) domain.Idea {
	t.Helper()

	ts := now()
	idea := domain.Idea{
		ID:        uuid.New(),
		Title:     "Idea " + uniqueSuffix(),
		OneLiner:  "one liner",
		Tags:      []string{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO ideas (id, title, one_liner, notes, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		idea.ID, idea.Title, idea.OneLiner, idea.Notes, idea.Tags, idea.CreatedAt, idea.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedIdea: %v", err)
	}
	return idea
}

// SeedProject inserts a project with the given status and updated_at.
func SeedProject(t *testing.T, pool *pgxpool.Pool, status domain.ProjectStatus, updatedAt time.Time) domain.Project {
	t.Helper()

	project := domain.Project{
		ID:         uuid.New(),
		Name:       "Project " + uniqueSuffix(),
		Status:     status,
		NextAction: "Define next action",
		Tags:       []string{},
		CreatedAt:  updatedAt,
		UpdatedAt:  updatedAt,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO projects (id, name, status, next_action, notes, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		project.ID, project.Name, string(project.Status), project.NextAction, project.Notes, project.Tags,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject: %v", err)
	}
	return project
}

// SeedAdminTask inserts a task with an optional due date.
func SeedAdminTask(t *testing.T, pool *pgxpool.Pool, status domain.AdminStatus, due *time.Time) domain.AdminTask {
	t.Helper()

	ts := now()
	task := domain.AdminTask{
		ID:        uuid.New(),
		Task:      "Task " + uniqueSuffix(),
		DueDate:   due,
		Status:    status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO admin_tasks (id, task, due_date, status, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.Task, task.DueDate, string(task.Status), task.Notes, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAdminTask: %v", err)
	}
	return task
}

// SeedVocabularyWord inserts a word with the given display counter.
func SeedVocabularyWord(t *testing.T, pool *pgxpool.Pool, timesShown int) domain.VocabularyWord {
	t.Helper()

	ts := now()
	word := domain.VocabularyWord{
		ID:         uuid.New(),
		Word:       "word-" + uniqueSuffix(),
		Definition: "a definition",
		Tags:       []string{},
		TimesShown: timesShown,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO vocabulary (id, word, definition, tags, times_shown, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		word.ID, word.Word, word.Definition, word.Tags, word.TimesShown, word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVocabularyWord: %v", err)
	}
	return word
}

// SeedInboxLog inserts an inbox log entry. A filed entry is linked to a freshly
// seeded idea; a needs_review entry has no record.
func SeedInboxLog(t *testing.T, pool *pgxpool.Pool, status domain.LogStatus) domain.InboxLogEntry {
	t.Helper()

	ts := now()
	entry := domain.InboxLogEntry{
		ID:             uuid.New(),
		OriginalText:   "text " + uniqueSuffix(),
		Destination:    domain.DestinationIdeas,
		Confidence:     0.9,
		Status:         status,
		SlackMessageID: "1700000000." + uniqueSuffix(),
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if status.HasRecord() {
		idea := SeedIdea(t, pool)
		entry.RecordID = &idea.ID
		entry.RecordTitle = idea.Title
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO inbox_log (id, original_text, destination, record_id, record_title, confidence, status,
		                        slack_message_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.OriginalText, string(entry.Destination), entry.RecordID, entry.RecordTitle,
		entry.Confidence, string(entry.Status), entry.SlackMessageID, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedInboxLog: %v", err)
	}
	return entry
}
