package handler

import (
	"ats/internal/delivery/http/dto"
	"ats/internal/pkg/response"
	"ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BotHandler struct {
	uc usecase.BotUsecase
}

func NewBotHandler(uc usecase.BotUsecase) *BotHandler {
	return &BotHandler{uc: uc}
}

// RegisterRoutes expects r to already carry the bot role guard.
func (h *BotHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/trigger", h.Trigger)
	r.Get("/technical-applications", h.ListTechnical)
	r.Get("/logs", h.Logs)
}

func (h *BotHandler) Trigger(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	res, err := h.uc.RunPass(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "Bot automation completed", dto.NewBotPassResponse(res))
}

func (h *BotHandler) ListTechnical(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListTechnicalApplications(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewApplicationListResponse(items))
}

func (h *BotHandler) Logs(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListLogs(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, "", dto.NewBotLogListResponse(items))
}
