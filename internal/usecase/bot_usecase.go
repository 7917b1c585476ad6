package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"ats/internal/domain/application"
	"ats/internal/repository"

	"github.com/google/uuid"
)

const botPassLockKey = "bot:pass:lock"

var errCandidateMoved = errors.New("status changed since the pass started")

type BotTransitionResult struct {
	ApplicationID uuid.UUID
	ApplicantName string
	JobRole       string
	OldStatus     application.Status
	NewStatus     application.Status
	Comment       string
}

type BotPassResult struct {
	ProcessedCount int
	Results        []BotTransitionResult
}

type BotLogEntry struct {
	ApplicationID uuid.UUID
	ApplicantName string
	JobRole       string
	application.LogEntry
}

type BotUsecase interface {
	RunPass(ctx context.Context, actor Actor) (BotPassResult, error)
	ListTechnicalApplications(ctx context.Context, actor Actor) ([]repository.ApplicationDetail, error)
	ListLogs(ctx context.Context, actor Actor) ([]BotLogEntry, error)
}

type BotConfig struct {
	OfferProbability float64
	LockTTL          time.Duration
}

type Bot struct {
	apps    repository.ApplicationRepository
	locker  PassLocker
	random  RandomSource
	cfg     BotConfig
	effects afterCommit
	now     func() time.Time
	log     *log.Logger
}

func NewBotUsecase(
	apps repository.ApplicationRepository,
	locker PassLocker,
	random RandomSource,
	cfg BotConfig,
	cache StatsCache,
	notifier StatusNotifier,
	logger *log.Logger,
) *Bot {
	if logger == nil {
		logger = log.Default()
	}
	if random == nil {
		random = DefaultRandom()
	}
	if cfg.OfferProbability < 0 || cfg.OfferProbability > 1 {
		cfg.OfferProbability = 0.7
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	return &Bot{
		apps:    apps,
		locker:  locker,
		random:  random,
		cfg:     cfg,
		effects: afterCommit{cache: cache, notifier: notifier, logf: logger.Printf},
		now:     time.Now,
		log:     logger,
	}
}

// RunPass advances every technical, non-terminal application by exactly one
// automated step. Each application is written in its own transaction; a
// failure on one is logged and the pass moves on.
func (u *Bot) RunPass(ctx context.Context, actor Actor) (BotPassResult, error) {
	if err := actor.can(application.SurfaceBotPass); err != nil {
		return BotPassResult{}, err
	}

	if u.locker != nil {
		token, ok, err := u.locker.TryLock(ctx, botPassLockKey, u.cfg.LockTTL)
		switch {
		case err != nil && ctx.Err() != nil:
			return BotPassResult{}, err
		case err != nil:
			// Mutate still serializes each application on its row lock.
			u.log.Printf("bot_pass action=lock status=unavailable err=%v", err)
		case !ok:
			return BotPassResult{}, ErrBotPassInProgress
		default:
			defer func() {
				if err := u.locker.Unlock(context.WithoutCancel(ctx), botPassLockKey, token); err != nil {
					u.log.Printf("bot_pass action=unlock status=error err=%v", err)
				}
			}()
		}
	}

	technical := true
	candidates, err := u.apps.List(ctx, repository.ApplicationFilter{
		IsTechnical:     &technical,
		ExcludeStatuses: application.TerminalStatuses(),
	})
	if err != nil {
		return BotPassResult{}, classify(err)
	}

	started := u.now()
	out := BotPassResult{Results: make([]BotTransitionResult, 0, len(candidates))}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			u.log.Printf("bot_pass status=aborted processed=%d err=%v", len(out.Results), err)
			break
		}
		if !c.HasExperience() {
			u.log.Printf("bot_pass application_id=%s status=skipped reason=missing_experience", c.ID)
			continue
		}

		res, ok := u.advance(ctx, c)
		if !ok {
			continue
		}
		out.Results = append(out.Results, res)
	}
	out.ProcessedCount = len(out.Results)

	u.log.Printf("bot_pass status=done candidates=%d processed=%d duration=%s", len(candidates), out.ProcessedCount, u.now().Sub(started))
	return out, nil
}

func (u *Bot) advance(ctx context.Context, c repository.ApplicationDetail) (BotTransitionResult, bool) {
	step, ok := application.NextAutomatedStep(c.Status, u.drawOffer)
	if !ok {
		return BotTransitionResult{}, false
	}

	var before application.Application
	after, err := u.apps.Mutate(ctx, c.ID, func(current application.Application) (application.Application, error) {
		if current.Status != step.From {
			return application.Application{}, errCandidateMoved
		}
		if !current.HasExperience() {
			return application.Application{}, validationError(errExperienceRequired)
		}
		d := application.Evaluate(application.Request{
			Current:     current.Status,
			Requested:   step.To,
			Actor:       application.RoleBot,
			IsTechnical: current.IsTechnical,
			Mode:        application.ModeAutomated,
		})
		if !d.Allowed {
			return application.Application{}, d.Error()
		}
		before = current
		return application.Apply(current, application.Transition{
			Action:  application.ActionBot,
			To:      step.To,
			By:      application.RoleBot,
			Comment: step.Comment,
			At:      u.now(),
		}), nil
	})
	if err != nil {
		if errors.Is(err, errCandidateMoved) {
			u.log.Printf("bot_pass application_id=%s status=skipped reason=concurrent_update", c.ID)
		} else {
			u.log.Printf("bot_pass application_id=%s status=error from=%s to=%s err=%v", c.ID, step.From, step.To, err)
		}
		return BotTransitionResult{}, false
	}

	u.effects.run(ctx, before, after)
	return BotTransitionResult{
		ApplicationID: after.ID,
		ApplicantName: c.ApplicantName,
		JobRole:       c.JobRoleTitle,
		OldStatus:     before.Status,
		NewStatus:     after.Status,
		Comment:       step.Comment,
	}, true
}

func (u *Bot) drawOffer() bool {
	return u.random.Float64() < u.cfg.OfferProbability
}

func (u *Bot) ListTechnicalApplications(ctx context.Context, actor Actor) ([]repository.ApplicationDetail, error) {
	if err := actor.can(application.SurfaceListTechnical); err != nil {
		return nil, err
	}
	technical := true
	items, err := u.apps.List(ctx, repository.ApplicationFilter{IsTechnical: &technical})
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// ListLogs flattens every bot-authored log entry of technical applications,
// newest first.
func (u *Bot) ListLogs(ctx context.Context, actor Actor) ([]BotLogEntry, error) {
	if err := actor.can(application.SurfaceBotLogs); err != nil {
		return nil, err
	}
	technical := true
	items, err := u.apps.List(ctx, repository.ApplicationFilter{IsTechnical: &technical})
	if err != nil {
		return nil, classify(err)
	}

	out := make([]BotLogEntry, 0)
	for _, it := range items {
		for _, l := range it.Logs {
			if l.ByRole != application.RoleBot {
				continue
			}
			out = append(out, BotLogEntry{
				ApplicationID: it.ID,
				ApplicantName: it.ApplicantName,
				JobRole:       it.JobRoleTitle,
				LogEntry:      l,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
