package middleware

import (
	"log"
	"time"

	"ats/internal/domain/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger    *log.Logger
	skipPaths map[string]struct{}
}

// NewAccessLogMiddleware logs one line per request. Paths in skip (health
// checks, usually) are served without a log line.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skipPaths: make(map[string]struct{}, len(skip))}
	for _, p := range skip {
		m.skipPaths[p] = struct{}{}
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		if _, skip := m.skipPaths[c.Path()]; skip {
			return err
		}

		// Locals are set by the auth middleware further down the chain.
		userID := "-"
		if id, ok := c.Locals(CtxUserIDKey).(uuid.UUID); ok {
			userID = id.String()
		}
		role := "-"
		if r, ok := c.Locals(CtxRoleKey).(application.Role); ok {
			role = r.String()
		}

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user_id=%s role=%s resp_bytes=%d",
			rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), userID, role, len(c.Response().Body()),
		)
		return err
	}
}
