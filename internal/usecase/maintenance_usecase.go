package usecase

import (
	"context"
	"log"
)

type BackfillResult struct {
	Found     int
	Updated   int64
	Remaining int
	DryRun    bool
}

type MaintenanceUsecase interface {
	BackfillMissingExperience(ctx context.Context, dryRun bool) (BackfillResult, error)
}

// ExperienceStore is the slice of the application repository the backfill needs.
type ExperienceStore interface {
	CountMissingExperience(ctx context.Context) (int, error)
	FillMissingExperience(ctx context.Context, value int) (int64, error)
}

type Maintenance struct {
	apps  ExperienceStore
	cache StatsCache
	log   *log.Logger
}

func NewMaintenanceUsecase(apps ExperienceStore, cache StatsCache, logger *log.Logger) *Maintenance {
	if logger == nil {
		logger = log.Default()
	}
	return &Maintenance{apps: apps, cache: cache, log: logger}
}

// BackfillMissingExperience sets experience to 0 on legacy rows that never
// had one, so the bot stops skipping them.
func (u *Maintenance) BackfillMissingExperience(ctx context.Context, dryRun bool) (BackfillResult, error) {
	found, err := u.apps.CountMissingExperience(ctx)
	if err != nil {
		return BackfillResult{}, classify(err)
	}
	u.log.Printf("backfill field=experience found=%d dry_run=%t", found, dryRun)

	out := BackfillResult{Found: found, Remaining: found, DryRun: dryRun}
	if dryRun || found == 0 {
		return out, nil
	}

	updated, err := u.apps.FillMissingExperience(ctx, 0)
	if err != nil {
		return BackfillResult{}, classify(err)
	}
	out.Updated = updated

	remaining, err := u.apps.CountMissingExperience(ctx)
	if err != nil {
		return BackfillResult{}, classify(err)
	}
	out.Remaining = remaining

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil {
			u.log.Printf("dashboard_cache action=invalidate status=error err=%v", err)
		}
	}
	u.log.Printf("backfill field=experience updated=%d remaining=%d", updated, remaining)
	return out, nil
}
