package domain

// Destination is the record category a capture is routed to.
type Destination string

const (
	DestinationPeople     Destination = "people"
	DestinationProjects   Destination = "projects"
	DestinationIdeas      Destination = "ideas"
	DestinationAdmin      Destination = "admin"
	DestinationVocabulary Destination = "vocabulary"
)

// Destinations lists every destination in display order.
var Destinations = []Destination{
	DestinationPeople,
	DestinationProjects,
	DestinationIdeas,
	DestinationAdmin,
	DestinationVocabulary,
}

func (d Destination) String() string { return string(d) }

func (d Destination) IsValid() bool {
	switch d {
	case DestinationPeople, DestinationProjects, DestinationIdeas, DestinationAdmin, DestinationVocabulary:
		return true
	}
	return false
}

// LogStatus is the lifecycle state of an InboxLogEntry.
type LogStatus string

const (
	LogStatusFiled       LogStatus = "filed"
	LogStatusNeedsReview LogStatus = "needs_review"
	LogStatusCorrected   LogStatus = "corrected"
	LogStatusDeleted     LogStatus = "deleted"
)

func (s LogStatus) String() string { return string(s) }

func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusFiled, LogStatusNeedsReview, LogStatusCorrected, LogStatusDeleted:
		return true
	}
	return false
}

// HasRecord reports whether an entry in this status references a CaptureRecord.
func (s LogStatus) HasRecord() bool {
	switch s {
	case LogStatusFiled, LogStatusCorrected:
		return true
	case LogStatusNeedsReview, LogStatusDeleted:
		return false
	}
	return false
}

// ProjectStatus tracks where a project stands.
type ProjectStatus string

const (
	ProjectStatusActive  ProjectStatus = "active"
	ProjectStatusWaiting ProjectStatus = "waiting"
	ProjectStatusBlocked ProjectStatus = "blocked"
	ProjectStatusSomeday ProjectStatus = "someday"
	ProjectStatusDone    ProjectStatus = "done"
)

func (s ProjectStatus) String() string { return string(s) }

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusWaiting, ProjectStatusBlocked, ProjectStatusSomeday, ProjectStatusDone:
		return true
	}
	return false
}

// AdminStatus tracks completion of an admin task.
type AdminStatus string

const (
	AdminStatusPending AdminStatus = "pending"
	AdminStatusDone    AdminStatus = "done"
)

func (s AdminStatus) String() string { return string(s) }

func (s AdminStatus) IsValid() bool {
	switch s {
	case AdminStatusPending, AdminStatusDone:
		return true
	}
	return false
}
