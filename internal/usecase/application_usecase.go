package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ats/internal/domain/application"
	"ats/internal/repository"

	"github.com/google/uuid"
)

var errExperienceRequired = errors.New("experience is required")

type CreateApplicationInput struct {
	JobRoleID       uuid.UUID
	Experience      *int
	Skills          []string
	AdditionalNotes string
}

type ListFilter struct {
	ApplicantID *uuid.UUID
	IsTechnical *bool
}

type StatusUpdateInput struct {
	ApplicationID uuid.UUID
	Status        string
	Comment       string
}

type ApplicationUsecase interface {
	Create(ctx context.Context, actor Actor, in CreateApplicationInput) (repository.ApplicationDetail, error)
	List(ctx context.Context, actor Actor, filter ListFilter) ([]repository.ApplicationDetail, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (repository.ApplicationDetail, error)
	UpdateStatusManual(ctx context.Context, actor Actor, in StatusUpdateInput) (repository.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, actor Actor, in StatusUpdateInput) (repository.ApplicationDetail, error)
}

type Applications struct {
	apps     repository.ApplicationRepository
	jobRoles repository.JobRoleRepository
	effects  afterCommit
	now      func() time.Time
	log      *log.Logger
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobRoles repository.JobRoleRepository,
	cache StatsCache,
	notifier StatusNotifier,
	logger *log.Logger,
) *Applications {
	if logger == nil {
		logger = log.Default()
	}
	return &Applications{
		apps:     apps,
		jobRoles: jobRoles,
		effects:  afterCommit{cache: cache, notifier: notifier, logf: logger.Printf},
		now:      time.Now,
		log:      logger,
	}
}

func (u *Applications) Create(ctx context.Context, actor Actor, in CreateApplicationInput) (repository.ApplicationDetail, error) {
	if err := actor.can(application.SurfaceCreate); err != nil {
		return repository.ApplicationDetail{}, err
	}
	if in.JobRoleID == uuid.Nil {
		return repository.ApplicationDetail{}, validationError(application.ErrMissingJobRole)
	}
	if in.Experience == nil {
		return repository.ApplicationDetail{}, validationError(errExperienceRequired)
	}

	role, err := u.jobRoles.FindByID(ctx, in.JobRoleID)
	if err != nil {
		return repository.ApplicationDetail{}, classify(err)
	}

	exists, err := u.apps.ExistsForApplicantAndJobRole(ctx, actor.UserID, in.JobRoleID)
	if err != nil {
		return repository.ApplicationDetail{}, classify(err)
	}
	if exists {
		return repository.ApplicationDetail{}, ErrDuplicateApplication
	}

	app, err := application.New(application.NewInput{
		ApplicantID:     actor.UserID,
		JobRoleID:       role.ID,
		IsTechnical:     role.IsTechnical,
		Experience:      *in.Experience,
		Skills:          in.Skills,
		AdditionalNotes: in.AdditionalNotes,
	}, u.now())
	if err != nil {
		return repository.ApplicationDetail{}, classify(err)
	}

	// The unique index still guards the race between the pre-check and here.
	if err := u.apps.Create(ctx, app); err != nil {
		u.log.Printf("application action=create applicant_id=%s job_role_id=%s status=error err=%v", actor.UserID, role.ID, err)
		return repository.ApplicationDetail{}, classify(err)
	}
	u.invalidateStats(ctx)

	u.log.Printf("application action=create application_id=%s applicant_id=%s job_role_id=%s technical=%t", app.ID, actor.UserID, role.ID, role.IsTechnical)
	return u.apps.FindByID(ctx, app.ID)
}

func (u *Applications) List(ctx context.Context, actor Actor, filter ListFilter) ([]repository.ApplicationDetail, error) {
	f := repository.ApplicationFilter{IsTechnical: filter.IsTechnical}

	switch actor.Role {
	case application.RoleApplicant:
		if err := actor.can(application.SurfaceListOwn); err != nil {
			return nil, err
		}
		if filter.ApplicantID != nil && *filter.ApplicantID != actor.UserID {
			return nil, ErrForbidden
		}
		id := actor.UserID
		f.ApplicantID = &id
	case application.RoleAdmin:
		surface := application.SurfaceListAll
		if filter.IsTechnical != nil && !*filter.IsTechnical {
			surface = application.SurfaceListNonTechnical
		}
		if err := actor.can(surface); err != nil {
			return nil, err
		}
		f.ApplicantID = filter.ApplicantID
	case application.RoleBot:
		if err := actor.can(application.SurfaceListTechnical); err != nil {
			return nil, err
		}
		if filter.IsTechnical != nil && !*filter.IsTechnical {
			return nil, ErrForbidden
		}
		technical := true
		f.IsTechnical = &technical
		f.ApplicantID = filter.ApplicantID
	default:
		return nil, ErrForbidden
	}

	items, err := u.apps.List(ctx, f)
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id uuid.UUID) (repository.ApplicationDetail, error) {
	if err := actor.can(application.SurfaceView); err != nil {
		return repository.ApplicationDetail{}, err
	}
	d, err := u.apps.FindByID(ctx, id)
	if err != nil {
		return repository.ApplicationDetail{}, classify(err)
	}
	switch actor.Role {
	case application.RoleApplicant:
		if d.ApplicantID != actor.UserID {
			return repository.ApplicationDetail{}, ErrForbidden
		}
	case application.RoleBot:
		if !d.IsTechnical {
			return repository.ApplicationDetail{}, ErrForbidden
		}
	}
	return d, nil
}

// UpdateStatusManual is the admin path for non-technical applications.
func (u *Applications) UpdateStatusManual(ctx context.Context, actor Actor, in StatusUpdateInput) (repository.ApplicationDetail, error) {
	return u.transition(ctx, actor, in, application.SurfaceManualStatusUpdate, application.ActionManualUpdate, func(current application.Application) error {
		if current.IsTechnical {
			return ErrInvalidOperation
		}
		return nil
	})
}

// UpdateStatus is the generic path available to admin and bot on any
// application.
func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, in StatusUpdateInput) (repository.ApplicationDetail, error) {
	return u.transition(ctx, actor, in, application.SurfaceStatusUpdate, application.ActionStatusUpdate, nil)
}

func (u *Applications) transition(
	ctx context.Context,
	actor Actor,
	in StatusUpdateInput,
	surface application.Surface,
	action string,
	gate func(current application.Application) error,
) (repository.ApplicationDetail, error) {
	if err := actor.can(surface); err != nil {
		return repository.ApplicationDetail{}, err
	}
	requested, err := application.ParseStatus(in.Status)
	if err != nil {
		return repository.ApplicationDetail{}, validationError(err)
	}
	comment := strings.TrimSpace(in.Comment)

	var before application.Application
	after, err := u.apps.Mutate(ctx, in.ApplicationID, func(current application.Application) (application.Application, error) {
		if gate != nil {
			if err := gate(current); err != nil {
				return application.Application{}, err
			}
		}
		d := application.Evaluate(application.Request{
			Current:     current.Status,
			Requested:   requested,
			Actor:       actor.Role,
			IsTechnical: current.IsTechnical,
			Mode:        application.ModeManual,
		})
		if !d.Allowed {
			return application.Application{}, d.Error()
		}
		before = current
		return application.Apply(current, application.Transition{
			Action:  action,
			To:      requested,
			By:      actor.Role,
			Comment: comment,
			At:      u.now(),
		}), nil
	})
	if err != nil {
		err = classify(err)
		u.log.Printf("application action=update_status application_id=%s role=%s requested=%s status=error err=%v", in.ApplicationID, actor.Role, requested, err)
		return repository.ApplicationDetail{}, err
	}

	u.effects.run(ctx, before, after)
	u.log.Printf("application action=update_status application_id=%s role=%s old=%s new=%s", after.ID, actor.Role, before.Status, after.Status)

	d, err := u.apps.FindByID(ctx, after.ID)
	if err != nil {
		return repository.ApplicationDetail{Application: after}, nil
	}
	return d, nil
}

func (u *Applications) invalidateStats(ctx context.Context) {
	if u.effects.cache == nil {
		return
	}
	if err := u.effects.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil {
		u.log.Printf("dashboard_cache action=invalidate status=error err=%v", err)
	}
}
