package jobrole

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("job role not found")
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingLocation = errors.New("location is required")
	ErrMissingExpReq   = errors.New("experience requirement is required")
)

type JobRole struct {
	ID                 uuid.UUID
	Title              string
	Description        string
	Location           string
	ExperienceRequired string
	IsTechnical        bool
	Department         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Normalize trims free-text fields and checks the required ones.
func (j JobRole) Normalize() (JobRole, error) {
	j.Title = strings.TrimSpace(j.Title)
	j.Description = strings.TrimSpace(j.Description)
	j.Location = strings.TrimSpace(j.Location)
	j.ExperienceRequired = strings.TrimSpace(j.ExperienceRequired)
	j.Department = strings.TrimSpace(j.Department)

	switch {
	case j.Title == "":
		return JobRole{}, ErrMissingTitle
	case j.Location == "":
		return JobRole{}, ErrMissingLocation
	case j.ExperienceRequired == "":
		return JobRole{}, ErrMissingExpReq
	}
	return j, nil
}
