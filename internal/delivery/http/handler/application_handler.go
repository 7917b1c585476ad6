package handler

import (
	"ats/internal/delivery/http/dto"
	"ats/internal/delivery/http/middleware"
	"ats/internal/domain/application"
	"ats/internal/pkg/response"
	"ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type createApplicationRequest struct {
	JobRoleID       uuid.UUID `json:"jobRoleId"`
	Experience      *int      `json:"experience"`
	Skills          []string  `json:"skills"`
	AdditionalNotes string    `json:"additionalNotes"`
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/applications")
	grp.Post("/", middleware.RequireRoles(application.RoleApplicant), h.Create)
	grp.Get("/", middleware.RequireRoles(application.RoleApplicant), h.ListOwn)
	grp.Get("/all", middleware.RequireRoles(application.RoleAdmin), h.ListAll)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", middleware.RequireRoles(application.RoleAdmin, application.RoleBot), h.UpdateStatus)
}

func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req createApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), actor, usecase.CreateApplicationInput{
		JobRoleID:       req.JobRoleID,
		Experience:      req.Experience,
		Skills:          req.Skills,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Application submitted successfully", dto.NewApplicationResponse(created))
}

func (h *ApplicationHandler) ListOwn(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), actor, usecase.ListFilter{ApplicantID: &actor.UserID})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewApplicationListResponse(items))
}

func (h *ApplicationHandler) ListAll(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), actor, usecase.ListFilter{})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewApplicationListResponse(items))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewApplicationResponse(item))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), actor, usecase.StatusUpdateInput{
		ApplicationID: id,
		Status:        req.Status,
		Comment:       req.Comment,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Application status updated successfully", dto.NewApplicationResponse(updated))
}
