package domain

import "testing"

func TestDestination_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dest Destination
		want bool
	}{
		{DestinationPeople, true},
		{DestinationProjects, true},
		{DestinationIdeas, true},
		{DestinationAdmin, true},
		{DestinationVocabulary, true},
		{Destination("tasks"), false},
		{Destination("People"), false},
		{Destination(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.dest), func(t *testing.T) {
			t.Parallel()
			if got := tt.dest.IsValid(); got != tt.want {
				t.Errorf("Destination(%q).IsValid() = %v, want %v", tt.dest, got, tt.want)
			}
		})
	}
}

func TestDestinations_AllValid(t *testing.T) {
	t.Parallel()

	if len(Destinations) != 5 {
		t.Fatalf("expected 5 destinations, got %d", len(Destinations))
	}
	for _, d := range Destinations {
		if !d.IsValid() {
			t.Errorf("destination %q should be valid", d)
		}
	}
}

func TestLogStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status LogStatus
		want   bool
	}{
		{LogStatusFiled, true},
		{LogStatusNeedsReview, true},
		{LogStatusCorrected, true},
		{LogStatusDeleted, true},
		{LogStatus("archived"), false},
		{LogStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("LogStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestLogStatus_HasRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status LogStatus
		want   bool
	}{
		{LogStatusFiled, true},
		{LogStatusCorrected, true},
		{LogStatusNeedsReview, false},
		{LogStatusDeleted, false},
	}
	for _, tt := range tests {
		if got := tt.status.HasRecord(); got != tt.want {
			t.Errorf("LogStatus(%q).HasRecord() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestProjectStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ProjectStatus{ProjectStatusActive, ProjectStatusWaiting, ProjectStatusBlocked, ProjectStatusSomeday, ProjectStatusDone} {
		if !s.IsValid() {
			t.Errorf("ProjectStatus(%q) should be valid", s)
		}
	}
	if ProjectStatus("paused").IsValid() {
		t.Error("ProjectStatus(paused) should be invalid")
	}
}

func TestAdminStatus_IsValid(t *testing.T) {
	t.Parallel()

	if !AdminStatusPending.IsValid() || !AdminStatusDone.IsValid() {
		t.Error("pending and done should be valid")
	}
	if AdminStatus("PENDING").IsValid() {
		t.Error("statuses are case-sensitive")
	}
}

func TestDestination_String(t *testing.T) {
	t.Parallel()
	if got := DestinationVocabulary.String(); got != "vocabulary" {
		t.Errorf("got %q, want vocabulary", got)
	}
}
