package applicant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("applicant not found")

// Applicant is the read model of a person known to the identity service.
type Applicant struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

type Repository interface {
	Upsert(ctx context.Context, a Applicant) error
	GetByID(ctx context.Context, id uuid.UUID) (Applicant, error)
	GetByEmail(ctx context.Context, email string) (Applicant, error)
}
