package v1

import (
	"ats/internal/delivery/http/handler"
	"ats/internal/delivery/http/middleware"
	"ats/internal/domain/application"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	JobRoles     *handler.JobRoleHandler
	Applications *handler.ApplicationHandler
	Admin        *handler.AdminHandler
	Bot          *handler.BotHandler
}

func Register(r fiber.Router, auth *middleware.AuthMiddleware, h Handlers) {
	if r == nil {
		return
	}

	RegisterJobRoles(r, h.JobRoles)

	if auth == nil {
		return
	}
	protected := r.Group("", auth.Middleware())

	RegisterApplications(protected, h.Applications)
	RegisterAdmin(protected.Group("/admin", middleware.RequireRoles(application.RoleAdmin)), h.Admin)
	RegisterBot(protected.Group("/bot", middleware.RequireRoles(application.RoleBot)), h.Bot)
}
