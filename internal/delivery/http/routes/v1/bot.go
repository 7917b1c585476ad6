package v1

import (
	"ats/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterBot(r fiber.Router, botHandler *handler.BotHandler) {
	if r == nil {
		return
	}
	if botHandler == nil {
		return
	}

	botHandler.RegisterRoutes(r)
}
