package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"ats/internal/domain/application"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   application.Role
}

func (a Actor) can(s application.Surface) error {
	if !application.Permit(s, a.Role) {
		return ErrForbidden
	}
	return nil
}

type StatsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type PassLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// StatusChange is published after a transition has been committed.
type StatusChange struct {
	ApplicationID uuid.UUID          `json:"applicationId"`
	ApplicantID   uuid.UUID          `json:"applicantId"`
	OldStatus     application.Status `json:"oldStatus"`
	NewStatus     application.Status `json:"newStatus"`
	Action        string             `json:"action"`
	ByRole        application.Role   `json:"byRole"`
	Timestamp     time.Time          `json:"timestamp"`
}

type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, change StatusChange)
}

// RandomSource is the bot's source of offer draws.
type RandomSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRandom draws from the process-wide generator.
func DefaultRandom() RandomSource { return globalRand{} }

const dashboardCachePattern = "dashboard:*"

// afterCommit runs the side effects of a committed transition. Failures are
// logged by the callee and never reach the caller.
type afterCommit struct {
	cache    StatsCache
	notifier StatusNotifier
	logf     func(format string, args ...any)
}

func (a afterCommit) run(ctx context.Context, before, after application.Application) {
	if a.cache != nil {
		if err := a.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil && a.logf != nil {
			a.logf("dashboard_cache action=invalidate status=error err=%v", err)
		}
	}
	if a.notifier == nil || len(after.Logs) == 0 {
		return
	}
	last := after.Logs[len(after.Logs)-1]
	a.notifier.NotifyStatusChanged(ctx, StatusChange{
		ApplicationID: after.ID,
		ApplicantID:   after.ApplicantID,
		OldStatus:     before.Status,
		NewStatus:     after.Status,
		Action:        last.Action,
		ByRole:        last.ByRole,
		Timestamp:     last.Timestamp,
	})
}
