package v1

import (
	"ats/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterApplications(r fiber.Router, applicationHandler *handler.ApplicationHandler) {
	if r == nil {
		return
	}
	if applicationHandler == nil {
		return
	}

	applicationHandler.RegisterRoutes(r)
}
