package handler

import (
	"ats/internal/delivery/http/dto"
	"ats/internal/delivery/http/middleware"
	"ats/internal/pkg/response"
	"ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	apps      usecase.ApplicationUsecase
	jobRoles  usecase.JobRoleUsecase
	dashboard usecase.DashboardUsecase
}

type jobRoleRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Location           string `json:"location"`
	ExperienceRequired string `json:"experienceRequired"`
	IsTechnical        bool   `json:"isTechnical"`
	Department         string `json:"department"`
}

func (r jobRoleRequest) toInput() usecase.JobRoleInput {
	return usecase.JobRoleInput{
		Title:              r.Title,
		Description:        r.Description,
		Location:           r.Location,
		ExperienceRequired: r.ExperienceRequired,
		IsTechnical:        r.IsTechnical,
		Department:         r.Department,
	}
}

func NewAdminHandler(apps usecase.ApplicationUsecase, jobRoles usecase.JobRoleUsecase, dashboard usecase.DashboardUsecase) *AdminHandler {
	return &AdminHandler{apps: apps, jobRoles: jobRoles, dashboard: dashboard}
}

// RegisterRoutes expects r to already carry the admin role guard.
func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/job-roles", h.ListJobRoles)
	r.Post("/job-roles", h.CreateJobRole)
	r.Put("/job-roles/:id", h.UpdateJobRole)
	r.Delete("/job-roles/:id", h.DeleteJobRole)

	r.Get("/non-technical-applications", h.ListNonTechnical)
	r.Patch("/applications/:id/update-status", h.UpdateStatusManual)
	r.Get("/dashboard-stats", h.DashboardStats)
}

func (h *AdminHandler) ListJobRoles(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.jobRoles.List(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewJobRoleListResponse(items))
}

func (h *AdminHandler) CreateJobRole(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req jobRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.jobRoles.Create(c.Context(), actor, req.toInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Job role created successfully", dto.NewJobRoleResponse(created))
}

func (h *AdminHandler) UpdateJobRole(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req jobRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.jobRoles.Update(c.Context(), actor, id, req.toInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Job role updated successfully", dto.NewJobRoleResponse(updated))
}

func (h *AdminHandler) DeleteJobRole(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.jobRoles.Delete(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Job role deleted successfully", nil)
}

func (h *AdminHandler) ListNonTechnical(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	technical := false
	items, err := h.apps.List(c.Context(), actor, usecase.ListFilter{IsTechnical: &technical})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewApplicationListResponse(items))
}

func (h *AdminHandler) UpdateStatusManual(c fiber.Ctx) error {
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

	updated, err := h.apps.UpdateStatusManual(c.Context(), actor, usecase.StatusUpdateInput{
		ApplicationID: id,
		Status:        req.Status,
		Comment:       req.Comment,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Application status updated successfully", dto.NewApplicationResponse(updated))
}

func (h *AdminHandler) DashboardStats(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboard.Stats(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewDashboardStatsResponse(stats))
}
