package dto

import (
	"time"

	"ats/internal/domain/application"
	"ats/internal/repository"

	"github.com/google/uuid"
)

type ApplicantSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type JobRoleSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Location   string    `json:"location,omitempty"`
	Department string    `json:"department,omitempty"`
}

type ApplicationResponse struct {
	ID              uuid.UUID              `json:"id"`
	Applicant       ApplicantSummary       `json:"applicant"`
	JobRole         JobRoleSummary         `json:"jobRole"`
	IsTechnical     bool                   `json:"isTechnical"`
	Experience      *int                   `json:"experience"`
	Skills          []string               `json:"skills"`
	AdditionalNotes string                 `json:"additionalNotes"`
	Status          string                 `json:"status"`
	Comments        []application.Comment  `json:"comments"`
	Logs            []application.LogEntry `json:"logs"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func NewApplicationResponse(d repository.ApplicationDetail) ApplicationResponse {
	comments := d.Comments
	if comments == nil {
		comments = []application.Comment{}
	}
	logs := d.Logs
	if logs == nil {
		logs = []application.LogEntry{}
	}
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return ApplicationResponse{
		ID:              d.ID,
		Applicant:       ApplicantSummary{ID: d.ApplicantID, Name: d.ApplicantName, Email: d.ApplicantEmail},
		JobRole:         JobRoleSummary{ID: d.JobRoleID, Title: d.JobRoleTitle, Location: d.JobRoleLocation, Department: d.JobRoleDept},
		IsTechnical:     d.IsTechnical,
		Experience:      d.Experience,
		Skills:          skills,
		AdditionalNotes: d.AdditionalNotes,
		Status:          d.Status.String(),
		Comments:        comments,
		Logs:            logs,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func NewApplicationListResponse(items []repository.ApplicationDetail) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewApplicationResponse(it))
	}
	return out
}
