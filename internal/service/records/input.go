package records

import (
	"strings"
	"time"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const (
	maxNameLength  = 200
	maxTextLength  = 5000
	maxTags        = 20
	maxSearchTerm  = 100
	maxFollowUps   = 50
	maxWordLength  = 100
	maxShortLength = 500
)

type fieldErrors []domain.FieldError

func (e *fieldErrors) add(field, message string) {
	*e = append(*e, domain.FieldError{Field: field, Message: message})
}

func (e fieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return &domain.ValidationError{Errors: e}
}

func (e *fieldErrors) requireText(field, v string, limit int) {
	v = strings.TrimSpace(v)
	if v == "" {
		e.add(field, "required")
		return
	}
	e.maxLen(field, v, limit)
}

func (e *fieldErrors) maxLen(field, v string, limit int) {
	if len(v) > limit {
		e.add(field, "too long")
	}
}

func (e *fieldErrors) list(field string, items []string) {
	if len(items) > maxFollowUps {
		e.add(field, "too many items")
		return
	}
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			e.add(field, "empty item")
			return
		}
	}
}

func (e *fieldErrors) tags(tags []string) {
	if len(tags) > maxTags {
		e.add("tags", "too many tags")
		return
	}
	e.list("tags", tags)
}

// ---------------------------------------------------------------------------
// Create inputs
// ---------------------------------------------------------------------------

// CreatePersonInput holds the parameters for adding a person.
type CreatePersonInput struct {
	Name      string   `json:"name"`
	Context   string   `json:"context"`
	FollowUps []string `json:"followUps"`
	Tags      []string `json:"tags"`
}

// Validate checks all fields and collects all errors.
func (i CreatePersonInput) Validate() error {
	var errs fieldErrors
	errs.requireText("name", i.Name, maxNameLength)
	errs.maxLen("context", i.Context, maxTextLength)
	errs.list("followUps", i.FollowUps)
	errs.tags(i.Tags)
	return errs.err()
}

// CreateProjectInput holds the parameters for adding a project.
type CreateProjectInput struct {
	Name       string               `json:"name"`
	Status     domain.ProjectStatus `json:"status"`
	NextAction string               `json:"nextAction"`
	Notes      string               `json:"notes"`
	Tags       []string             `json:"tags"`
}

// Validate checks all fields and collects all errors.
func (i CreateProjectInput) Validate() error {
	var errs fieldErrors
	errs.requireText("name", i.Name, maxNameLength)
	if i.Status != "" && !i.Status.IsValid() {
		errs.add("status", "invalid value")
	}
	errs.maxLen("nextAction", i.NextAction, maxShortLength)
	errs.maxLen("notes", i.Notes, maxTextLength)
	errs.tags(i.Tags)
	return errs.err()
}

// CreateIdeaInput holds the parameters for adding an idea.
type CreateIdeaInput struct {
	Title    string   `json:"title"`
	OneLiner string   `json:"oneLiner"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
}

// Validate checks all fields and collects all errors.
func (i CreateIdeaInput) Validate() error {
	var errs fieldErrors
	errs.requireText("title", i.Title, maxNameLength)
	errs.maxLen("oneLiner", i.OneLiner, maxShortLength)
	errs.maxLen("notes", i.Notes, maxTextLength)
	errs.tags(i.Tags)
	return errs.err()
}

// CreateAdminTaskInput holds the parameters for adding an admin task.
type CreateAdminTaskInput struct {
	Task    string     `json:"task"`
	DueDate *time.Time `json:"dueDate"`
	Notes   string     `json:"notes"`
}

// Validate checks all fields and collects all errors.
func (i CreateAdminTaskInput) Validate() error {
	var errs fieldErrors
	errs.requireText("task", i.Task, maxShortLength)
	errs.maxLen("notes", i.Notes, maxTextLength)
	return errs.err()
}

// CreateVocabularyInput holds the parameters for adding a word.
type CreateVocabularyInput struct {
	Word         string   `json:"word"`
	Definition   string   `json:"definition"`
	PartOfSpeech *string  `json:"partOfSpeech"`
	Example      *string  `json:"example"`
	Source       *string  `json:"source"`
	Tags         []string `json:"tags"`
}

// Validate checks all fields and collects all errors.
func (i CreateVocabularyInput) Validate() error {
	var errs fieldErrors
	errs.requireText("word", i.Word, maxWordLength)
	errs.maxLen("definition", i.Definition, maxTextLength)
	if i.Example != nil {
		errs.maxLen("example", *i.Example, maxShortLength)
	}
	errs.tags(i.Tags)
	return errs.err()
}

// ---------------------------------------------------------------------------
// Patch validation
// ---------------------------------------------------------------------------

func validatePersonPatch(p domain.PersonPatch) error {
	var errs fieldErrors
	if p.Name != nil {
		errs.requireText("name", *p.Name, maxNameLength)
	}
	if p.Context != nil {
		errs.maxLen("context", *p.Context, maxTextLength)
	}
	if p.FollowUps != nil {
		errs.list("followUps", *p.FollowUps)
	}
	if p.Tags != nil {
		errs.tags(*p.Tags)
	}
	return errs.err()
}

func validateProjectPatch(p domain.ProjectPatch) error {
	var errs fieldErrors
	if p.Name != nil {
		errs.requireText("name", *p.Name, maxNameLength)
	}
	if p.Status != nil && !p.Status.IsValid() {
		errs.add("status", "invalid value")
	}
	if p.NextAction != nil {
		errs.maxLen("nextAction", *p.NextAction, maxShortLength)
	}
	if p.Notes != nil {
		errs.maxLen("notes", *p.Notes, maxTextLength)
	}
	if p.Tags != nil {
		errs.tags(*p.Tags)
	}
	return errs.err()
}

func validateIdeaPatch(p domain.IdeaPatch) error {
	var errs fieldErrors
	if p.Title != nil {
		errs.requireText("title", *p.Title, maxNameLength)
	}
	if p.OneLiner != nil {
		errs.maxLen("oneLiner", *p.OneLiner, maxShortLength)
	}
	if p.Notes != nil {
		errs.maxLen("notes", *p.Notes, maxTextLength)
	}
	if p.Tags != nil {
		errs.tags(*p.Tags)
	}
	return errs.err()
}

func validateAdminTaskPatch(p domain.AdminTaskPatch) error {
	var errs fieldErrors
	if p.Task != nil {
		errs.requireText("task", *p.Task, maxShortLength)
	}
	if p.Status != nil && !p.Status.IsValid() {
		errs.add("status", "invalid value")
	}
	if p.Notes != nil {
		errs.maxLen("notes", *p.Notes, maxTextLength)
	}
	return errs.err()
}

func validateVocabularyPatch(p domain.VocabularyPatch) error {
	var errs fieldErrors
	if p.Word != nil {
		errs.requireText("word", *p.Word, maxWordLength)
	}
	if p.Definition != nil {
		errs.maxLen("definition", *p.Definition, maxTextLength)
	}
	if p.Example != nil {
		errs.maxLen("example", *p.Example, maxShortLength)
	}
	if p.Tags != nil {
		errs.tags(*p.Tags)
	}
	return errs.err()
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
