package domain

import (
	"time"

	"github.com/google/uuid"
)

// Person is a contact the user wants to remember or follow up with.
type Person struct {
	ID            uuid.UUID `db:"id"              json:"id"`
	Name          string    `db:"name"            json:"name"`
	Context       string    `db:"context"         json:"context"`
	FollowUps     []string  `db:"follow_ups"      json:"followUps"`
	Tags          []string  `db:"tags"            json:"tags"`
	LastTouchedAt time.Time `db:"last_touched_at" json:"lastTouchedAt"`
	CreatedAt     time.Time `db:"created_at"      json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at"      json:"updatedAt"`
}

// Project is a multi-step piece of ongoing work.
type Project struct {
	ID         uuid.UUID     `db:"id"          json:"id"`
	Name       string        `db:"name"        json:"name"`
	Status     ProjectStatus `db:"status"      json:"status"`
	NextAction string        `db:"next_action" json:"nextAction"`
	Notes      string        `db:"notes"       json:"notes"`
	Tags       []string      `db:"tags"        json:"tags"`
	CreatedAt  time.Time     `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time     `db:"updated_at"  json:"updatedAt"`
}

// Idea is a concept worth keeping for later.
type Idea struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	OneLiner  string    `db:"one_liner"  json:"oneLiner"`
	Notes     string    `db:"notes"      json:"notes"`
	Tags      []string  `db:"tags"       json:"tags"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// AdminTask is a one-off errand or to-do.
type AdminTask struct {
	ID        uuid.UUID   `db:"id"         json:"id"`
	Task      string      `db:"task"       json:"task"`
	DueDate   *time.Time  `db:"due_date"   json:"dueDate,omitempty"`
	Status    AdminStatus `db:"status"     json:"status"`
	Notes     string      `db:"notes"      json:"notes"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

// VocabularyWord is a word the user is learning.
// TimesShown and LastShownAt only move forward, via MarkShown.
type VocabularyWord struct {
	ID           uuid.UUID  `db:"id"             json:"id"`
	Word         string     `db:"word"           json:"word"`
	Definition   string     `db:"definition"     json:"definition"`
	PartOfSpeech *string    `db:"part_of_speech" json:"partOfSpeech,omitempty"`
	Example      *string    `db:"example"        json:"example,omitempty"`
	Source       *string    `db:"source"         json:"source,omitempty"`
	Tags         []string   `db:"tags"           json:"tags"`
	TimesShown   int        `db:"times_shown"    json:"timesShown"`
	LastShownAt  *time.Time `db:"last_shown_at"  json:"lastShownAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at"     json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at"     json:"updatedAt"`
}

// InboxLogEntry is the audit record of one inbound capture.
type InboxLogEntry struct {
	ID                  uuid.UUID   `db:"id"                    json:"id"`
	OriginalText        string      `db:"original_text"         json:"originalText"`
	Destination         Destination `db:"destination"           json:"destination"`
	RecordID            *uuid.UUID  `db:"record_id"             json:"recordId,omitempty"`
	RecordTitle         string      `db:"record_title"          json:"recordTitle"`
	Confidence          float64     `db:"confidence"            json:"confidence"`
	Status              LogStatus   `db:"status"                json:"status"`
	SlackMessageID      string      `db:"slack_message_id"      json:"slackMessageId"`
	CorrectionMessageID *string     `db:"correction_message_id" json:"correctionMessageId,omitempty"`
	CreatedAt           time.Time   `db:"created_at"            json:"createdAt"`
	UpdatedAt           time.Time   `db:"updated_at"            json:"updatedAt"`
}

// InboxActivity aggregates inbox log entries over a time window.
type InboxActivity struct {
	Total         int                 `json:"total"`
	ByDestination map[Destination]int `json:"byDestination"`
	NeedsReview   int                 `json:"needsReview"`
	Corrected     int                 `json:"corrected"`
}

// CapturedRecord identifies a record created from a capture.
type CapturedRecord struct {
	Destination Destination
	ID          uuid.UUID
	Title       string
}
