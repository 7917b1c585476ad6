package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"ats/internal/domain/application"
	"ats/internal/repository"

	"github.com/google/uuid"
)

const (
	dashboardStatsKey   = "dashboard:stats"
	dashboardRecentSize = 5
)

type StatusCountItem struct {
	Status application.Status `json:"status"`
	Count  int                `json:"count"`
}

type RecentApplication struct {
	ID            uuid.UUID          `json:"id"`
	ApplicantName string             `json:"applicantName"`
	JobRole       string             `json:"jobRole"`
	IsTechnical   bool               `json:"isTechnical"`
	Status        application.Status `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type DashboardStats struct {
	TotalApplications        int                 `json:"totalApplications"`
	TechnicalApplications    int                 `json:"technicalApplications"`
	NonTechnicalApplications int                 `json:"nonTechnicalApplications"`
	StatusCounts             []StatusCountItem   `json:"statusCounts"`
	RecentApplications       []RecentApplication `json:"recentApplications"`
}

type DashboardUsecase interface {
	Stats(ctx context.Context, actor Actor) (DashboardStats, error)
}

type Dashboard struct {
	repo  repository.DashboardRepository
	apps  repository.ApplicationRepository
	cache StatsCache
	ttl   time.Duration
	log   *log.Logger
}

func NewDashboardUsecase(repo repository.DashboardRepository, apps repository.ApplicationRepository, cache StatsCache, ttl time.Duration, logger *log.Logger) *Dashboard {
	if logger == nil {
		logger = log.Default()
	}
	return &Dashboard{repo: repo, apps: apps, cache: cache, ttl: ttl, log: logger}
}

func (u *Dashboard) Stats(ctx context.Context, actor Actor) (DashboardStats, error) {
	if err := actor.can(application.SurfaceDashboard); err != nil {
		return DashboardStats{}, err
	}

	if u.cache != nil {
		var cached DashboardStats
		hit, err := u.cache.GetJSON(ctx, dashboardStatsKey, &cached)
		if err != nil {
			u.log.Printf("dashboard_stats cache=get status=error err=%v", err)
		}
		if hit {
			return cached, nil
		}
	}

	var (
		totals repository.ApplicationTotals
		counts []repository.StatusCount
		recent []repository.ApplicationDetail

		errTotals error
		errCounts error
		errRecent error
	)

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		totals, errTotals = u.repo.GetTotals(ctx)
		if errTotals != nil {
			u.log.Printf("dashboard_stats step=totals status=error err=%v", errTotals)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		counts, errCounts = u.repo.CountByStatus(ctx)
		if errCounts != nil {
			u.log.Printf("dashboard_stats step=status_counts status=error err=%v", errCounts)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		recent, errRecent = u.apps.List(ctx, repository.ApplicationFilter{Limit: dashboardRecentSize})
		if errRecent != nil {
			u.log.Printf("dashboard_stats step=recent status=error err=%v", errRecent)
		}
	}()

	wg.Wait()

	for _, err := range []error{errTotals, errCounts, errRecent} {
		if err != nil {
			return DashboardStats{}, classify(err)
		}
	}

	out := DashboardStats{
		TotalApplications:        totals.Total,
		TechnicalApplications:    totals.Technical,
		NonTechnicalApplications: totals.NonTechnical,
		StatusCounts:             make([]StatusCountItem, 0, len(counts)),
		RecentApplications:       make([]RecentApplication, 0, len(recent)),
	}
	for _, c := range counts {
		out.StatusCounts = append(out.StatusCounts, StatusCountItem{Status: c.Status, Count: c.Count})
	}
	for _, r := range recent {
		out.RecentApplications = append(out.RecentApplications, RecentApplication{
			ID:            r.ID,
			ApplicantName: r.ApplicantName,
			JobRole:       r.JobRoleTitle,
			IsTechnical:   r.IsTechnical,
			Status:        r.Status,
			CreatedAt:     r.CreatedAt,
		})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, dashboardStatsKey, out, u.ttl); err != nil {
			u.log.Printf("dashboard_stats cache=set status=error err=%v", err)
		}
	}
	return out, nil
}
