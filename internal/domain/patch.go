package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patch types carry partial updates: nil fields are left untouched.

type PersonPatch struct {
	Name      *string   `json:"name"`
	Context   *string   `json:"context"`
	FollowUps *[]string `json:"followUps"`
	Tags      *[]string `json:"tags"`
}

type ProjectPatch struct {
	Name       *string        `json:"name"`
	Status     *ProjectStatus `json:"status"`
	NextAction *string        `json:"nextAction"`
	Notes      *string        `json:"notes"`
	Tags       *[]string      `json:"tags"`
}

type IdeaPatch struct {
	Title    *string   `json:"title"`
	OneLiner *string   `json:"oneLiner"`
	Notes    *string   `json:"notes"`
	Tags     *[]string `json:"tags"`
}

type AdminTaskPatch struct {
	Task    *string      `json:"task"`
	DueDate *time.Time   `json:"dueDate"`
	Status  *AdminStatus `json:"status"`
	Notes   *string      `json:"notes"`
}

// VocabularyPatch has no display counters: those change only through MarkShown.
type VocabularyPatch struct {
	Word         *string   `json:"word"`
	Definition   *string   `json:"definition"`
	PartOfSpeech *string   `json:"partOfSpeech"`
	Example      *string   `json:"example"`
	Source       *string   `json:"source"`
	Tags         *[]string `json:"tags"`
}

type InboxLogPatch struct {
	Destination         *Destination
	RecordID            *uuid.UUID
	RecordTitle         *string
	Status              *LogStatus
	CorrectionMessageID *string
}
