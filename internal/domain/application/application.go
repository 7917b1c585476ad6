// Package application holds the application record, its status workflow and
// the append-only audit trail. Everything here is pure; persistence and
// authorization of callers live in the repository and usecase layers.
package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated      = "Application Created"
	ActionManualUpdate = "Manual Status Update"
	ActionStatusUpdate = "Status Updated"
	ActionBot          = "Bot Automation"

	createdComment = "Application submitted with detailed information"
)

var (
	ErrInvalidExperience = errors.New("experience cannot be negative")
	ErrMissingJobRole    = errors.New("job role is required")
	ErrMissingApplicant  = errors.New("applicant is required")
	ErrHistoryMismatch   = errors.New("status does not match log history")
)

type Comment struct {
	Text       string    `json:"text"`
	AuthorRole Role      `json:"authorRole"`
	Timestamp  time.Time `json:"timestamp"`
}

// LogEntry is one immutable audit record. OldStatus is empty for the
// creation entry.
type LogEntry struct {
	Action    string    `json:"action"`
	OldStatus Status    `json:"oldStatus,omitempty"`
	NewStatus Status    `json:"newStatus,omitempty"`
	ByRole    Role      `json:"byRole"`
	Timestamp time.Time `json:"timestamp"`
	Comment   string    `json:"comment,omitempty"`
}

type Application struct {
	ID              uuid.UUID
	ApplicantID     uuid.UUID
	JobRoleID       uuid.UUID
	IsTechnical     bool
	Experience      *int
	Skills          []string
	AdditionalNotes string
	Status          Status
	Comments        []Comment
	Logs            []LogEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewInput struct {
	ApplicantID     uuid.UUID
	JobRoleID       uuid.UUID
	IsTechnical     bool
	Experience      int
	Skills          []string
	AdditionalNotes string
}

// New builds a freshly submitted application: status Applied and a single
// creation log entry authored by the applicant.
func New(in NewInput, at time.Time) (Application, error) {
	if in.ApplicantID == uuid.Nil {
		return Application{}, ErrMissingApplicant
	}
	if in.JobRoleID == uuid.Nil {
		return Application{}, ErrMissingJobRole
	}
	if in.Experience < 0 {
		return Application{}, ErrInvalidExperience
	}

	at = at.UTC()
	exp := in.Experience
	return Application{
		ID:              uuid.New(),
		ApplicantID:     in.ApplicantID,
		JobRoleID:       in.JobRoleID,
		IsTechnical:     in.IsTechnical,
		Experience:      &exp,
		Skills:          NormalizeSkills(in.Skills),
		AdditionalNotes: strings.TrimSpace(in.AdditionalNotes),
		Status:          StatusApplied,
		Comments:        []Comment{},
		Logs: []LogEntry{{
			Action:    ActionCreated,
			NewStatus: StatusApplied,
			ByRole:    RoleApplicant,
			Timestamp: at,
			Comment:   createdComment,
		}},
		CreatedAt: at,
		UpdatedAt: at,
	}, nil
}

func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (a Application) HasExperience() bool {
	return a.Experience != nil && *a.Experience >= 0
}

// LastLoggedStatus returns the newStatus of the most recent log entry that
// carries one.
func (a Application) LastLoggedStatus() (Status, bool) {
	for i := len(a.Logs) - 1; i >= 0; i-- {
		if a.Logs[i].NewStatus != "" {
			return a.Logs[i].NewStatus, true
		}
	}
	return "", false
}

// CheckHistory verifies the status is a known value and agrees with the tail
// of the log.
func (a Application) CheckHistory() error {
	if !a.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	last, ok := a.LastLoggedStatus()
	if ok && last != a.Status {
		return fmt.Errorf("%w: status=%s last_log=%s", ErrHistoryMismatch, a.Status, last)
	}
	return nil
}

// ExtendsHistory reports whether next keeps every comment and log entry of
// prev, in order, as a prefix.
func ExtendsHistory(prev, next Application) bool {
	if len(next.Comments) < len(prev.Comments) || len(next.Logs) < len(prev.Logs) {
		return false
	}
	for i := range prev.Comments {
		if !commentEqual(prev.Comments[i], next.Comments[i]) {
			return false
		}
	}
	for i := range prev.Logs {
		if !logEqual(prev.Logs[i], next.Logs[i]) {
			return false
		}
	}
	return true
}

func commentEqual(a, b Comment) bool {
	return a.Text == b.Text && a.AuthorRole == b.AuthorRole && a.Timestamp.Equal(b.Timestamp)
}

func logEqual(a, b LogEntry) bool {
	return a.Action == b.Action &&
		a.OldStatus == b.OldStatus &&
		a.NewStatus == b.NewStatus &&
		a.ByRole == b.ByRole &&
		a.Comment == b.Comment &&
		a.Timestamp.Equal(b.Timestamp)
}
