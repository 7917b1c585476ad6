package usecase

import (
	"context"
	"log"
	"time"

	"ats/internal/domain/application"
	"ats/internal/domain/jobrole"
	"ats/internal/repository"

	"github.com/google/uuid"
)

type JobRoleInput struct {
	Title              string
	Description        string
	Location           string
	ExperienceRequired string
	IsTechnical        bool
	Department         string
}

type JobRoleUsecase interface {
	ListPublic(ctx context.Context) ([]jobrole.JobRole, error)
	List(ctx context.Context, actor Actor) ([]jobrole.JobRole, error)
	Create(ctx context.Context, actor Actor, in JobRoleInput) (jobrole.JobRole, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in JobRoleInput) (jobrole.JobRole, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type JobRoles struct {
	repo repository.JobRoleRepository
	now  func() time.Time
	log  *log.Logger
}

func NewJobRoleUsecase(repo repository.JobRoleRepository, logger *log.Logger) *JobRoles {
	if logger == nil {
		logger = log.Default()
	}
	return &JobRoles{repo: repo, now: time.Now, log: logger}
}

func (u *JobRoles) ListPublic(ctx context.Context) ([]jobrole.JobRole, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (u *JobRoles) List(ctx context.Context, actor Actor) ([]jobrole.JobRole, error) {
	if err := actor.can(application.SurfaceManageJobRoles); err != nil {
		return nil, err
	}
	return u.ListPublic(ctx)
}

func (u *JobRoles) Create(ctx context.Context, actor Actor, in JobRoleInput) (jobrole.JobRole, error) {
	if err := actor.can(application.SurfaceManageJobRoles); err != nil {
		return jobrole.JobRole{}, err
	}
	now := u.now().UTC()
	j, err := in.toJobRole(uuid.New(), now).Normalize()
	if err != nil {
		return jobrole.JobRole{}, classify(err)
	}
	j.CreatedAt = now
	if err := u.repo.Create(ctx, j); err != nil {
		return jobrole.JobRole{}, classify(err)
	}
	u.log.Printf("job_role action=create id=%s title=%q technical=%t", j.ID, j.Title, j.IsTechnical)
	return j, nil
}

func (u *JobRoles) Update(ctx context.Context, actor Actor, id uuid.UUID, in JobRoleInput) (jobrole.JobRole, error) {
	if err := actor.can(application.SurfaceManageJobRoles); err != nil {
		return jobrole.JobRole{}, err
	}
	j, err := in.toJobRole(id, u.now().UTC()).Normalize()
	if err != nil {
		return jobrole.JobRole{}, classify(err)
	}
	out, err := u.repo.Update(ctx, j)
	if err != nil {
		return jobrole.JobRole{}, classify(err)
	}
	u.log.Printf("job_role action=update id=%s", id)
	return out, nil
}

// Delete refuses while applications still reference the role.
func (u *JobRoles) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.can(application.SurfaceManageJobRoles); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return classify(err)
	}
	u.log.Printf("job_role action=delete id=%s", id)
	return nil
}

func (in JobRoleInput) toJobRole(id uuid.UUID, at time.Time) jobrole.JobRole {
	return jobrole.JobRole{
		ID:                 id,
		Title:              in.Title,
		Description:        in.Description,
		Location:           in.Location,
		ExperienceRequired: in.ExperienceRequired,
		IsTechnical:        in.IsTechnical,
		Department:         in.Department,
		UpdatedAt:          at,
	}
}
