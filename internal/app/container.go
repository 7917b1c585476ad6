package app

import (
	"context"
	"errors"
	"log"
	"time"

	"ats/internal/config"
	"ats/internal/database"
	"ats/internal/database/migration"
	dbpostgres "ats/internal/database/postgres"
	"ats/internal/database/seeder"
	"ats/internal/infrastructure/cache"
	"ats/internal/repository"
	"ats/internal/usecase"
	"ats/internal/ws"
)

// Container owns the process-wide dependencies shared by the HTTP server and
// the CLI.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger

	JobRoles     *usecase.JobRoles
	Applications *usecase.Applications
	Bot          *usecase.Bot
	Dashboard    *usecase.Dashboard
	Maintenance  *usecase.Maintenance
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)
	notifier := ws.NewNotifier(hub)

	appRepo := repository.NewPostgresApplicationRepository(db)
	jobRoleRepo := repository.NewPostgresJobRoleRepository(db)
	dashboardRepo := repository.NewPostgresDashboardRepository(db)

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Logger: logger,
	}
	c.JobRoles = usecase.NewJobRoleUsecase(jobRoleRepo, logger)
	c.Applications = usecase.NewApplicationUsecase(appRepo, jobRoleRepo, redisCache, notifier, logger)
	c.Bot = usecase.NewBotUsecase(
		appRepo,
		redisCache,
		usecase.DefaultRandom(),
		usecase.BotConfig{OfferProbability: cfg.Bot.OfferProbability, LockTTL: cfg.Bot.LockTTL},
		redisCache,
		notifier,
		logger,
	)
	c.Dashboard = usecase.NewDashboardUsecase(dashboardRepo, appRepo, redisCache, cfg.Redis.TTL, logger)
	c.Maintenance = usecase.NewMaintenanceUsecase(appRepo, redisCache, logger)

	return c, nil
}

func (c *Container) Migrate(ctx context.Context) (migration.Result, error) {
	r := migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
	return r.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Seed(ctx context.Context) error {
	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
	return r.Run(ctx, c.DB)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
