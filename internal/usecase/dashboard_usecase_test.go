package usecase

import (
	"context"
	"errors"
	"testing"

	"ats/internal/domain/application"

	"github.com/google/uuid"
)

func TestDashboard_StatsAndCache(t *testing.T) {
	apps := newMemApps()
	clock := newStepClock()
	for i, tech := range []bool{true, true, false, true, false, false, true} {
		app, err := application.New(application.NewInput{
			ApplicantID: uuid.New(),
			JobRoleID:   uuid.New(),
			IsTechnical: tech,
			Experience:  i,
		}, clock.now())
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if i == 0 {
			app = application.Apply(app, application.Transition{Action: application.ActionBot, To: application.StatusReviewed, By: application.RoleBot, At: clock.now()})
		}
		apps.put(app)
	}

	repo := &memDashboard{apps: apps}
	cache := newMemCache()
	uc := NewDashboardUsecase(repo, apps, cache, 0, nil)
	admin := Actor{UserID: uuid.New(), Role: application.RoleAdmin}

	stats, err := uc.Stats(context.Background(), admin)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalApplications != 7 || stats.TechnicalApplications != 4 || stats.NonTechnicalApplications != 3 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if len(stats.StatusCounts) != 2 || stats.StatusCounts[0].Status != application.StatusApplied || stats.StatusCounts[0].Count != 6 {
		t.Fatalf("unexpected status counts: %+v", stats.StatusCounts)
	}
	if len(stats.RecentApplications) != dashboardRecentSize {
		t.Fatalf("recent = %d", len(stats.RecentApplications))
	}
	for i := 1; i < len(stats.RecentApplications); i++ {
		if stats.RecentApplications[i].CreatedAt.After(stats.RecentApplications[i-1].CreatedAt) {
			t.Fatalf("recent applications not newest first")
		}
	}

	if _, err := uc.Stats(context.Background(), admin); err != nil {
		t.Fatalf("cached stats: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected cached second call, repo calls = %d", repo.calls)
	}

	_ = cache.DeleteByPattern(context.Background(), dashboardCachePattern)
	if _, err := uc.Stats(context.Background(), admin); err != nil {
		t.Fatalf("stats after invalidation: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected recompute after invalidation, repo calls = %d", repo.calls)
	}
}

func TestDashboard_Forbidden(t *testing.T) {
	apps := newMemApps()
	uc := NewDashboardUsecase(&memDashboard{apps: apps}, apps, nil, 0, nil)

	for _, role := range []application.Role{application.RoleBot, application.RoleApplicant} {
		if _, err := uc.Stats(context.Background(), Actor{Role: role}); !errors.Is(err, ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestDashboard_StoreFailure(t *testing.T) {
	apps := newMemApps()
	apps.listErr = errors.New("timeout")
	uc := NewDashboardUsecase(&memDashboard{apps: apps}, apps, nil, 0, nil)

	if _, err := uc.Stats(context.Background(), Actor{Role: application.RoleAdmin}); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
