package dto

import (
	"time"

	"ats/internal/usecase"

	"github.com/google/uuid"
)

type BotTransitionResponse struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	ApplicantName string    `json:"applicantName"`
	JobRole       string    `json:"jobRole"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
	Comment       string    `json:"comment"`
}

type BotPassResponse struct {
	ProcessedApplications int                     `json:"processedApplications"`
	Results               []BotTransitionResponse `json:"results"`
}

type BotLogResponse struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	ApplicantName string    `json:"applicantName"`
	JobRole       string    `json:"jobRole"`
	Action        string    `json:"action"`
	OldStatus     string    `json:"oldStatus,omitempty"`
	NewStatus     string    `json:"newStatus,omitempty"`
	ByRole        string    `json:"byRole"`
	Comment       string    `json:"comment,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewBotPassResponse(r usecase.BotPassResult) BotPassResponse {
	out := BotPassResponse{
		ProcessedApplications: r.ProcessedCount,
		Results:               make([]BotTransitionResponse, 0, len(r.Results)),
	}
	for _, it := range r.Results {
		out.Results = append(out.Results, BotTransitionResponse{
			ApplicationID: it.ApplicationID,
			ApplicantName: it.ApplicantName,
			JobRole:       it.JobRole,
			OldStatus:     it.OldStatus.String(),
			NewStatus:     it.NewStatus.String(),
			Comment:       it.Comment,
		})
	}
	return out
}

func NewBotLogListResponse(items []usecase.BotLogEntry) []BotLogResponse {
	out := make([]BotLogResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BotLogResponse{
			ApplicationID: it.ApplicationID,
			ApplicantName: it.ApplicantName,
			JobRole:       it.JobRole,
			Action:        it.Action,
			OldStatus:     it.OldStatus.String(),
			NewStatus:     it.NewStatus.String(),
			ByRole:        it.ByRole.String(),
			Comment:       it.Comment,
			Timestamp:     it.Timestamp,
		})
	}
	return out
}
