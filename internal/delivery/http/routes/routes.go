package routes

import (
	"ats/internal/delivery/http/handler"
	"ats/internal/delivery/http/middleware"
	v1 "ats/internal/delivery/http/routes/v1"
	"ats/internal/domain/application"
	"ats/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	auth   *middleware.AuthMiddleware
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, auth *middleware.AuthMiddleware, handlers v1.Handlers) *Registry {
	return &Registry{health: health, ws: wsHandler, auth: auth, v1: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil || r.auth == nil {
		return
	}
	// Events are not scoped per subscriber, so applicants may not subscribe.
	app.Get("/ws/applications",
		r.auth.WebSocketMiddleware(),
		middleware.RequireRoles(application.RoleAdmin, application.RoleBot),
		r.ws.HandleApplicationsWS,
	)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.auth, r.v1)
}
