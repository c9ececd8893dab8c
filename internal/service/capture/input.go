package capture

import (
	"strings"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// Outcome is the terminal state of one pipeline run.
type Outcome string

const (
	OutcomeFiled         Outcome = "filed"
	OutcomeNeedsReview   Outcome = "needs_review"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeFailed        Outcome = "failed"
	OutcomeCorrected     Outcome = "corrected"
	OutcomeDeleted       Outcome = "deleted"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeInvalidTarget Outcome = "invalid_target"
	OutcomeRefused       Outcome = "refused"
	OutcomeIgnored       Outcome = "ignored"
)

func (o Outcome) String() string { return string(o) }

// CaptureInput is one inbound top-level chat message.
type CaptureInput struct {
	Text      string
	Channel   string
	MessageID string
	ThreadID  string
}

// Validate checks all fields and collects all errors.
func (i CaptureInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if i.Channel == "" {
		errs = append(errs, domain.FieldError{Field: "channel", Message: "required"})
	}
	if i.MessageID == "" {
		errs = append(errs, domain.FieldError{Field: "message_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// replyThread is the thread confirmations are posted into.
func (i CaptureInput) replyThread() string {
	if i.ThreadID != "" {
		return i.ThreadID
	}
	return i.MessageID
}

// CorrectionInput is a "fix:" reply in the thread of an earlier capture.
type CorrectionInput struct {
	Text      string
	Channel   string
	MessageID string
	ParentID  string
}

// Validate checks all fields and collects all errors.
func (i CorrectionInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if i.Channel == "" {
		errs = append(errs, domain.FieldError{Field: "channel", Message: "required"})
	}
	if i.MessageID == "" {
		errs = append(errs, domain.FieldError{Field: "message_id", Message: "required"})
	}
	if i.ParentID == "" {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
