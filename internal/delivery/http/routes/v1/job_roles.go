package v1

import (
	"ats/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobRoles(r fiber.Router, jobRoleHandler *handler.JobRoleHandler) {
	if r == nil {
		return
	}
	if jobRoleHandler == nil {
		return
	}

	jobRoleHandler.RegisterRoutes(r)
}
