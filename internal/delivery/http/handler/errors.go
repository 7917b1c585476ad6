package handler

import (
	"errors"

	"ats/internal/delivery/http/middleware"
	"ats/internal/domain/application"
	"ats/internal/pkg/response"
	"ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func actorFromCtx(c fiber.Ctx) (usecase.Actor, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(application.Role)
	return usecase.Actor{UserID: userID, Role: role}, nil
}

func parseIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, validationMessage(err), nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job role", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidOperation):
		return middleware.NewAppError(fiber.StatusBadRequest, invalidOperationMessage(err), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Access denied. Insufficient permissions.", nil, err)
	case errors.Is(err, usecase.ErrBotPassInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Bot pass already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func validationMessage(err error) string {
	if errors.Is(err, application.ErrInvalidStatus) {
		return "Invalid status"
	}
	return "Validation failed"
}

func invalidOperationMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrTerminalStatus):
		return "Application is already in a final status"
	case errors.Is(err, application.ErrIllegalTransition):
		return "Status transition not allowed"
	default:
		return "Operation not allowed"
	}
}
