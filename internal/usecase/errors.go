package usecase

import (
	"errors"
	"fmt"

	"ats/internal/domain/application"
	"ats/internal/domain/jobrole"
	"ats/internal/repository"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrDuplicateApplication = errors.New("application already exists for this job role")
	ErrNotFound             = errors.New("not found")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrForbidden            = errors.New("forbidden")
	ErrPersistence          = errors.New("persistence failure")
	ErrBotPassInProgress    = errors.New("bot pass already in progress")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// classify folds repository and domain errors into the usecase taxonomy.
// Errors that already carry a usecase sentinel pass through unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateApplication),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrPersistence):
		return err
	case errors.Is(err, repository.ErrApplicationNotFound),
		errors.Is(err, repository.ErrApplicationJobRole),
		errors.Is(err, jobrole.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrApplicationDuplicate):
		return ErrDuplicateApplication
	case errors.Is(err, repository.ErrJobRoleInUse):
		return fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	case errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidExperience),
		errors.Is(err, application.ErrMissingJobRole),
		errors.Is(err, application.ErrMissingApplicant),
		errors.Is(err, jobrole.ErrMissingTitle),
		errors.Is(err, jobrole.ErrMissingLocation),
		errors.Is(err, jobrole.ErrMissingExpReq):
		return validationError(err)
	case errors.Is(err, application.ErrTerminalStatus),
		errors.Is(err, application.ErrIllegalTransition):
		return fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	case errors.Is(err, application.ErrUnknownActor):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
