package handler

import (
	"ats/internal/delivery/http/dto"
	"ats/internal/pkg/response"
	"ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// JobRoleHandler serves the unauthenticated job board listing.
type JobRoleHandler struct {
	uc usecase.JobRoleUsecase
}

func NewJobRoleHandler(uc usecase.JobRoleUsecase) *JobRoleHandler {
	return &JobRoleHandler{uc: uc}
}

func (h *JobRoleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/job-roles/public", h.ListPublic)
}

func (h *JobRoleHandler) ListPublic(c fiber.Ctx) error {
	items, err := h.uc.ListPublic(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewJobRoleListResponse(items))
}
