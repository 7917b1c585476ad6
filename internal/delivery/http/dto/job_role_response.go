package dto

import (
	"time"

	"ats/internal/domain/jobrole"

	"github.com/google/uuid"
)

type JobRoleResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Location           string    `json:"location"`
	ExperienceRequired string    `json:"experienceRequired"`
	IsTechnical        bool      `json:"isTechnical"`
	Department         string    `json:"department"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func NewJobRoleResponse(j jobrole.JobRole) JobRoleResponse {
	return JobRoleResponse{
		ID:                 j.ID,
		Title:              j.Title,
		Description:        j.Description,
		Location:           j.Location,
		ExperienceRequired: j.ExperienceRequired,
		IsTechnical:        j.IsTechnical,
		Department:         j.Department,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

func NewJobRoleListResponse(items []jobrole.JobRole) []JobRoleResponse {
	out := make([]JobRoleResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobRoleResponse(it))
	}
	return out
}
